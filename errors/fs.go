package errors

import (
	"context"
	stderrors "errors"
	"io/fs"
	"net"
	"os"
)

// CodeFromFS derives an ErrorCode from an io/fs style error.
//
// The standard sentinels map onto resource and permission codes, timeouts
// and network failures onto retryable codes, and anything else onto CodeIO.
// A PlatformError anywhere in the chain keeps its own code.
// Returns CodeUnknown for a nil error.
func CodeFromFS(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}

	var platformErr PlatformError
	if stderrors.As(err, &platformErr) {
		return platformErr.Code()
	}

	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return CodeNotFound
	case stderrors.Is(err, fs.ErrExist):
		return CodeAlreadyExists
	case stderrors.Is(err, fs.ErrPermission):
		return CodeForbidden
	case stderrors.Is(err, fs.ErrInvalid):
		return CodeInvalidInput
	case stderrors.Is(err, stderrors.ErrUnsupported):
		return CodeNotImplemented
	case stderrors.Is(err, context.DeadlineExceeded), os.IsTimeout(err):
		return CodeTimeout
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return CodeNetwork
	}
	return CodeIO
}
