package core

import (
	"os"
	"strings"
)

// Options is the canonical open options record passed to FileFS.Open.
type Options struct {
	// Mode is the open mode: a string made of r, w, a/+ and b characters.
	Mode string

	// Charset is a case-insensitive IANA charset name. Empty means UTF-8.
	// Ignored for binary modes.
	Charset string
}

// HasMode reports whether the mode string contains the given flag
// character, ignoring case.
func (o Options) HasMode(flag byte) bool {
	return strings.IndexByte(strings.ToLower(o.Mode), flag) >= 0
}

// Mode is a parsed open mode.
type Mode struct {
	Read   bool
	Write  bool
	Append bool
	Binary bool
}

// ParseMode parses an open mode string. Characters are matched without
// regard to case; unknown characters are ignored.
//
//   - r: read
//   - w: write
//   - a or +: append (implies write)
//   - b: binary, no charset transcoding
//
// A mode that grants neither read nor write access returns ErrInvalidMode.
func ParseMode(s string) (Mode, error) {
	o := Options{Mode: s}
	m := Mode{
		Read:   o.HasMode('r'),
		Write:  o.HasMode('w'),
		Append: o.HasMode('a') || o.HasMode('+'),
		Binary: o.HasMode('b'),
	}
	if m.Append {
		m.Write = true
	}
	if !m.Read && !m.Write {
		return Mode{}, ErrInvalidMode
	}
	return m, nil
}

// Flags returns the os.OpenFile flags for the mode.
//
// Write-only modes truncate. Read-write modes keep existing content, and
// append modes position every write at the end of the file.
func (m Mode) Flags() int {
	switch {
	case m.Append && m.Read:
		return os.O_RDWR | os.O_CREATE | os.O_APPEND
	case m.Append:
		return os.O_WRONLY | os.O_CREATE | os.O_APPEND
	case m.Read && m.Write:
		return os.O_RDWR | os.O_CREATE
	case m.Write:
		return os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	default:
		return os.O_RDONLY
	}
}

// String renders the mode in canonical r/w/a/b order.
func (m Mode) String() string {
	var b strings.Builder
	if m.Read {
		b.WriteByte('r')
	}
	if m.Write && !m.Append {
		b.WriteByte('w')
	}
	if m.Append {
		b.WriteByte('a')
	}
	if m.Binary {
		b.WriteByte('b')
	}
	return b.String()
}
