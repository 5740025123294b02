package main

import (
	"fmt"
	"syscall/js"
)

func main() {
	fmt.Println("Go main() function starting...")

	// Export the fetch function to JavaScript
	js.Global().Set("goFetch", js.FuncOf(fetchHandler))

	fmt.Println("Go WASM module loaded and ready")

	// Keep the program running
	select {}
}

func fetchHandler(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.Global().Get("Promise").Call("reject", js.ValueOf("Expected 3 arguments: request, env, ctx"))
	}

	request := args[0]
	env := args[1]

	// Return a Promise that resolves with the response
	return js.Global().Get("Promise").New(js.FuncOf(func(this js.Value, promiseArgs []js.Value) interface{} {
		resolve := promiseArgs[0]
		reject := promiseArgs[1]

		// the script fetch blocks, so it must run off the JS event loop
		go func() {
			defer func() {
				if r := recover(); r != nil {
					reject.Invoke(js.ValueOf(fmt.Sprintf("Panic: %v", r)))
				}
			}()

			resolve.Invoke(handleRequest(request, env))
		}()

		return nil
	}))
}
