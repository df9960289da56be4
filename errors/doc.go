// Package errors provides structured errors for filesystem operations.
//
// Every failure surfaced by the scriptfs facade is a PlatformError: it carries
// an ErrorCode derived from the underlying cause, a retry classification, a
// human-readable message naming the operation and the path(s) involved, and
// a context map holding the same details in machine-readable form.
//
// The package stays compatible with the standard library (errors.Is,
// errors.As, errors.Unwrap), so callers can still test for fs.ErrNotExist
// and friends through a PlatformError.
//
// # Creating errors
//
//	err := errors.New(errors.CodeInvalidInput, "mode string is empty")
//
//	// Derive the code from an io/fs cause
//	err := errors.Wrap(cause, errors.CodeFromFS(cause), "unable to open file")
//
// # Adding context
//
//	err = errors.WithContextMap(err, map[string]interface{}{
//	    "op":   "open",
//	    "path": path,
//	})
//
// # Inspecting errors
//
//	if errors.GetCode(err) == errors.CodeNotFound {
//	    // create it
//	}
//
//	if errors.Is(err, fs.ErrNotExist) {
//	    // same check against the provider cause
//	}
//
// # JSON
//
// ToJSON and MarshalJSON render the code, message, classification and
// context; the cause chain is left out.
package errors
