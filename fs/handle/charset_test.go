package handle

import (
	"testing"

	"github.com/jmgilman/scriptfs/fs/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCharset(t *testing.T) {
	for _, name := range []string{"", "UTF-8", "utf-8", "utf8", " UTF-8 "} {
		enc, err := LookupCharset(name)
		require.NoError(t, err, name)
		assert.Nil(t, enc, "%q should pass bytes through", name)
	}

	for _, name := range []string{"ISO-8859-1", "latin1", "windows-1252", "Shift_JIS"} {
		enc, err := LookupCharset(name)
		require.NoError(t, err, name)
		assert.NotNil(t, enc, name)
	}
}

func TestLookupCharset_Unknown(t *testing.T) {
	_, err := LookupCharset("klingon-8")
	assert.ErrorIs(t, err, core.ErrInvalidCharset)
}
