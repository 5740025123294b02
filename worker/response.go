package main

import "syscall/js"

func newResponse(status int, contentType, body string) js.Value {
	headers := js.Global().Get("Object").New()
	headers.Set("Content-Type", contentType)

	responseInit := js.Global().Get("Object").New()
	responseInit.Set("status", status)
	responseInit.Set("headers", headers)

	return js.Global().Get("Response").New(body, responseInit)
}

// Utility function to create error responses for Workers
func createErrorResponse(status int, message string) js.Value {
	responseInit := js.Global().Get("Object").New()
	responseInit.Set("status", status)
	responseInit.Set("statusText", message)

	headers := js.Global().Get("Object").New()
	headers.Set("Content-Type", "text/plain")
	responseInit.Set("headers", headers)

	return js.Global().Get("Response").New(message, responseInit)
}
