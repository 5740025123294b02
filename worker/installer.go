package main

import (
	"context"
	"log"
	"sync"
	"syscall/js"

	"github.com/future-404/tavx-edge/pkg/installer"
)

var (
	installerOnce     sync.Once
	installerInstance *installer.Installer
	installerErr      error
)

// initInstaller builds the shared installer from the Worker's env bindings.
func initInstaller(env js.Value) (*installer.Installer, error) {
	installerOnce.Do(func() {
		cfg := installer.ApplyEnv(installer.DefaultConfig(), func(key string) (string, bool) {
			v := getEnvVar(env, key, "")
			return v, v != ""
		})
		installerInstance, installerErr = installer.NewInstaller(cfg)
	})
	return installerInstance, installerErr
}

func handleRequest(request, env js.Value) js.Value {
	inst, err := initInstaller(env)
	if err != nil {
		log.Printf("ERROR: Could not initialize installer: %v", err)
		return createErrorResponse(500, "Could not initialize installer")
	}

	userAgent := ""
	if ua := request.Get("headers").Call("get", "user-agent"); !ua.IsNull() && !ua.IsUndefined() {
		userAgent = ua.String()
	}

	resp := inst.Serve(context.Background(), userAgent)
	return newResponse(resp.Status, resp.ContentType, string(resp.Body))
}

func getEnvVar(env js.Value, key, fallback string) string {
	if !env.IsUndefined() && !env.IsNull() && !env.Get(key).IsUndefined() {
		return env.Get(key).String()
	}
	return fallback
}
