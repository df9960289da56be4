package scriptfs

import (
	stderrors "errors"
	"fmt"

	"github.com/jmgilman/scriptfs/errors"
	"github.com/jmgilman/scriptfs/fs/core"
)

// codeFor derives the error code for a provider failure.
func codeFor(err error) errors.ErrorCode {
	switch {
	case stderrors.Is(err, core.ErrNotEmpty),
		stderrors.Is(err, core.ErrIsDir),
		stderrors.Is(err, core.ErrNotDir):
		return errors.CodeConflict
	default:
		return errors.CodeFromFS(err)
	}
}

// fail wraps a provider failure in a PlatformError carrying the operation
// and path context, and logs it at debug level.
func (f *FileSystem) fail(cause error, ctx map[string]interface{}, format string, args ...interface{}) error {
	err := errors.WrapWithContext(cause, codeFor(cause), fmt.Sprintf(format, args...), ctx)
	f.logger.Debug("operation failed", "op", ctx["op"], "code", err.Code(), "error", cause)
	return err
}

func pathContext(op, path string) map[string]interface{} {
	return map[string]interface{}{
		"op":   op,
		"path": path,
	}
}

func copyContext(op, src, dst string) map[string]interface{} {
	return map[string]interface{}{
		"op":          op,
		"path":        src,
		"source":      src,
		"destination": dst,
	}
}
