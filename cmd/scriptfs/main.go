// Command scriptfs runs script-style file operations from the shell.
package main

import (
	"os"

	"github.com/jmgilman/scriptfs/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func errorCode(err error) string {
	if code := errors.GetCode(err); code != errors.CodeUnknown {
		return string(code)
	}
	return ""
}

// errorMessage prefers the facade message and appends the provider cause.
func errorMessage(err error) string {
	var platformErr errors.PlatformError
	if !errors.As(err, &platformErr) {
		return err.Error()
	}
	if cause := platformErr.Unwrap(); cause != nil {
		return platformErr.Message() + ": " + cause.Error()
	}
	return platformErr.Message()
}
