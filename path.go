package scriptfs

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

var (
	redundantSeparators = regexp.MustCompile(`/+`)
	trailingSeparator   = regexp.MustCompile(`/$`)
)

// Join joins parts with "/".
//
// Each part is stringified with fmt.Sprint. Nil parts, typed nil pointers
// included, are dropped. An empty part is dropped unless it is the first
// argument, which keeps the leading separator of absolute paths. An empty
// result is ".".
//
//	Join("a", "", "b") // "a/b"
//	Join("", "a")      // "/a"
//	Join(nil, "a")     // "a"
//	Join()             // "."
func Join(parts ...any) string {
	kept := make([]string, 0, len(parts))
	for i, part := range parts {
		if isNil(part) {
			continue
		}
		s := fmt.Sprint(part)
		if s == "" && i != 0 {
			continue
		}
		kept = append(kept, s)
	}

	if joined := strings.Join(kept, "/"); joined != "" {
		return joined
	}
	return "."
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// Join joins parts with "/". See the package-level Join.
func (f *FileSystem) Join(parts ...any) string {
	return Join(parts...)
}

// Split splits path into its segments.
//
// The provider's native separators are converted to "/", redundant
// separators collapse and one trailing separator is dropped. Absolute paths
// keep a leading empty segment. A path that is not a string yields an empty
// slice.
//
//	Split("/a//b/") // ["", "a", "b"]
//	Split(42)       // []
func (f *FileSystem) Split(path any) []string {
	s, ok := path.(string)
	if !ok {
		return []string{}
	}

	s = f.native.FromNativeSeparators(s)
	s = redundantSeparators.ReplaceAllString(s, "/")
	s = trailingSeparator.ReplaceAllString(s, "")
	return strings.Split(s, "/")
}
