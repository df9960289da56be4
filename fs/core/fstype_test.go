package core_test

import (
	"testing"

	"github.com/jmgilman/scriptfs/fs/core"
)

// TestFSType_String verifies FSType.String() returns the provider names.
func TestFSType_String(t *testing.T) {
	tests := []struct {
		fsType   core.FSType
		expected string
	}{
		{core.FSTypeUnknown, "unknown"},
		{core.FSTypeLocal, "local"},
		{core.FSTypeMemory, "memory"},
		{core.FSTypeRemote, "remote"},
		{core.FSType(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.fsType.String(); got != tt.expected {
				t.Errorf("FSType(%d).String() = %q, want %q", tt.fsType, got, tt.expected)
			}
		})
	}
}

// TestFSType_ZeroValue verifies the zero value is FSTypeUnknown.
func TestFSType_ZeroValue(t *testing.T) {
	var zero core.FSType
	if zero != core.FSTypeUnknown {
		t.Errorf("zero FSType = %s, want unknown", zero)
	}
}
