package main

import (
	"fmt"
	"log"
	"os"

	"github.com/future-404/tavx-edge/handlers"
	"github.com/future-404/tavx-edge/pkg/installer"

	"github.com/akamensky/argparse"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/term"
)

type options struct {
	Port    string
	Config  string
	Prefork bool
}

func parseArgs(args []string) (options, error) {
	parser := argparse.NewParser("tavx-edge", "Serves the TAV-X installer to browsers and shells")

	portEnv := os.Getenv("PORT")
	if portEnv == "" {
		portEnv = "8080"
	}
	port := parser.String("p", "port", &argparse.Options{
		Required: false,
		Default:  portEnv,
		Help:     "Port the webserver will listen on",
	})

	config := parser.String("c", "config", &argparse.Options{
		Required: false,
		Default:  os.Getenv("CONFIG"),
		Help:     "YAML file overriding the default script location and install command",
	})

	prefork := parser.Flag("P", "prefork", &argparse.Options{
		Required: false,
		Help:     "This will spawn multiple processes listening",
	})

	if err := parser.Parse(args); err != nil {
		return options{}, fmt.Errorf("%s", parser.Usage(err))
	}

	return options{Port: *port, Config: *config, Prefork: *prefork}, nil
}

func newApp(i *installer.Installer, prefork bool) *fiber.App {
	app := fiber.New(fiber.Config{
		Prefork:               prefork,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		DisableColors: !term.IsTerminal(int(os.Stdout.Fd())),
	}))

	app.All("/*", handlers.Installer(i))
	return app
}

func main() {
	opts, err := parseArgs(os.Args)
	if err != nil {
		fmt.Print(err)
		os.Exit(1)
	}

	cfg, err := installer.LoadConfig(opts.Config)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}

	i, err := installer.NewInstaller(cfg)
	if err != nil {
		log.Fatalf("ERROR: Could not initialize installer: %v", err)
	}

	log.Printf("INFO: serving %s on :%s", cfg.ScriptURL, opts.Port)
	log.Fatal(newApp(i, opts.Prefork).Listen(":" + opts.Port))
}
