package handle

import (
	"fmt"
	"strings"

	"github.com/jmgilman/scriptfs/fs/core"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// LookupCharset resolves an IANA charset name.
//
// An empty name and UTF-8 return a nil Encoding, meaning bytes pass through
// unchanged. Unknown names, and names the index knows but cannot encode,
// return core.ErrInvalidCharset.
func LookupCharset(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return nil, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %q", core.ErrInvalidCharset, name)
	}
	return enc, nil
}
