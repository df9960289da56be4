// Package handle implements core.Handle over any seekable stream.
//
// Providers open their native file (a go-billy file, an in-memory Buffer
// holding an object's bytes) and hand it to New together with the parsed
// mode and charset. The Handle takes care of whole-content reads, line I/O,
// charset transcoding through golang.org/x/text, and flush/close ordering.
package handle
