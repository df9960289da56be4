package scriptfs

import (
	"log/slog"
	"strings"

	"github.com/jmgilman/scriptfs/fs/core"
)

// ModeOrOptions is either an OpenMode or an OpenOptions record. A nil value
// means no options.
type ModeOrOptions interface {
	options() core.Options
}

// OpenMode is an open mode string made of r, w, a/+ and b characters.
type OpenMode string

func (m OpenMode) options() core.Options {
	return core.Options{Mode: string(m)}
}

// OpenOptions carries an open mode and a charset name.
type OpenOptions struct {
	Mode    string
	Charset string
}

func (o OpenOptions) options() core.Options {
	return core.Options{Mode: o.Mode, Charset: o.Charset}
}

// normalizeOptions resolves v into a fresh options record. The caller's
// value is never shared with the provider.
func normalizeOptions(v ModeOrOptions) core.Options {
	v = deref(v)
	if v == nil {
		return core.Options{}
	}
	return v.options()
}

// deref replaces pointer variants with their values. Nil pointers become a
// nil ModeOrOptions.
func deref(v ModeOrOptions) ModeOrOptions {
	switch o := v.(type) {
	case *OpenMode:
		if o == nil {
			return nil
		}
		return *o
	case *OpenOptions:
		if o == nil {
			return nil
		}
		return *o
	}
	return v
}

// readOptions interprets v for Read: OpenMode("b") is the binary flag and
// any other OpenMode names a charset. Read access is always added.
func readOptions(v ModeOrOptions) core.Options {
	var opts core.Options
	if m, ok := deref(v).(OpenMode); ok {
		if strings.EqualFold(string(m), "b") {
			opts.Mode = "b"
		} else {
			opts.Charset = string(m)
		}
	} else {
		opts = normalizeOptions(v)
	}
	return forceMode(opts, 'r')
}

// writeOptions resolves v for Write, always adding write access.
func writeOptions(v ModeOrOptions) core.Options {
	return forceMode(normalizeOptions(v), 'w')
}

func forceMode(opts core.Options, flag byte) core.Options {
	if !opts.HasMode(flag) {
		opts.Mode += string(flag)
	}
	return opts
}

// Option configures a FileSystem.
type Option func(*FileSystem)

// WithLogger sets the logger used for debug output of every operation.
// The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(f *FileSystem) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithVerifiedMoves makes Move compare BLAKE3 digests of the source and the
// copy before removing the source.
func WithVerifiedMoves() Option {
	return func(f *FileSystem) {
		f.verifyMoves = true
	}
}
