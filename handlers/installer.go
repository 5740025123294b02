package handlers

import (
	"log"
	"net/http"
	"os"

	"github.com/future-404/tavx-edge/pkg/installer"

	"github.com/gofiber/fiber/v2"
)

// Installer is a Fiber handler answering every request with either the landing
// page or the injected install script.
func Installer(i *installer.Installer) fiber.Handler {
	logRequests := os.Getenv("LOG_REQUESTS") == "true"

	return func(c *fiber.Ctx) error {
		headers := RequestHeaders(c)
		userAgent := headers.Get("User-Agent")

		if logRequests {
			kind := installer.Classify(userAgent, i.Config.CLIAgents)
			log.Printf("INFO: %s client %q from %s", kind, userAgent, c.IP())
		}

		resp := i.Serve(c.UserContext(), userAgent)

		c.Set(fiber.HeaderContentType, resp.ContentType)
		return c.Status(resp.Status).Send(resp.Body)
	}
}

// RequestHeaders converts the Fiber request headers to http.Header.
func RequestHeaders(c *fiber.Ctx) http.Header {
	headers := make(http.Header)
	c.Request().Header.VisitAll(func(key, value []byte) {
		headers.Add(string(key), string(value))
	})
	return headers
}
