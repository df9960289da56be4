package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(CodeNotFound, "file not found")

	require.Equal(t, CodeNotFound, err.Code())
	require.Equal(t, "file not found", err.Message())
	require.Equal(t, ClassificationPermanent, err.Classification())
	require.Nil(t, err.Context())
	require.Nil(t, err.Unwrap())
	require.Equal(t, "[NOT_FOUND] file not found", err.Error())
}

func TestNewf(t *testing.T) {
	err := Newf(CodeInvalidInput, "invalid mode %q", "xyz")
	require.Equal(t, `invalid mode "xyz"`, err.Message())
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("disk on fire")
	err := Wrap(cause, CodeIO, "write failed")

	require.NotNil(t, err)
	require.Equal(t, CodeIO, err.Code())
	require.Equal(t, "write failed", err.Message())
	require.Equal(t, cause, err.Unwrap())
	require.Equal(t, "[IO_ERROR] write failed: disk on fire", err.Error())
}

func TestWrap_NilError(t *testing.T) {
	require.Nil(t, Wrap(nil, CodeIO, "test"))
	require.Nil(t, Wrapf(nil, CodeIO, "test %s", "arg"))
	require.Nil(t, WrapWithContext(nil, CodeIO, "test", map[string]interface{}{"a": 1}))
}

func TestWrap_PreservesClassification(t *testing.T) {
	original := New(CodeTimeout, "timeout")
	require.True(t, original.Classification().IsRetryable())

	wrapped := Wrap(original, CodeIO, "read timed out")
	require.True(t, wrapped.Classification().IsRetryable())

	permanent := Wrap(New(CodeNotFound, "missing"), CodeTimeout, "timed out looking")
	require.False(t, permanent.Classification().IsRetryable())
}

func TestWrapWithContext_CopiesMap(t *testing.T) {
	ctx := map[string]interface{}{"path": "a.txt"}
	err := WrapWithContext(stderrors.New("boom"), CodeIO, "failed", ctx)

	ctx["path"] = "mutated"
	require.Equal(t, "a.txt", err.Context()["path"])

	got := err.Context()
	got["path"] = "mutated again"
	require.Equal(t, "a.txt", err.Context()["path"])
}

func TestWithContext(t *testing.T) {
	err := New(CodeIO, "copy failed")
	err = WithContext(err, "source", "a")
	err = WithContext(err, "destination", "b")

	require.Equal(t, map[string]interface{}{"source": "a", "destination": "b"}, err.Context())
	require.Equal(t, CodeIO, err.Code())
	require.Equal(t, "copy failed", err.Message())
}

func TestWithContextMap_OverridesAndConvertsStandardErrors(t *testing.T) {
	std := stderrors.New("plain")
	err := WithContextMap(std, map[string]interface{}{"op": "size"})

	require.Equal(t, CodeUnknown, err.Code())
	require.Equal(t, "plain", err.Message())
	require.True(t, stderrors.Is(err, std))

	err = WithContextMap(err, map[string]interface{}{"op": "open"})
	require.Equal(t, "open", err.Context()["op"])
}

func TestWithContext_Nil(t *testing.T) {
	require.Nil(t, WithContext(nil, "k", "v"))
	require.Nil(t, WithContextMap(nil, nil))
	require.Nil(t, WithClassification(nil, ClassificationRetryable))
}

func TestWithClassification(t *testing.T) {
	err := New(CodeIO, "flaky")
	require.False(t, IsRetryable(err))

	err = WithClassification(err, ClassificationRetryable)
	require.True(t, IsRetryable(err))
	require.Equal(t, CodeIO, err.Code())
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{name: "nil", err: nil, want: CodeUnknown},
		{name: "standard error", err: stderrors.New("x"), want: CodeUnknown},
		{name: "platform error", err: New(CodeConflict, "x"), want: CodeConflict},
		{name: "outermost wins", err: Wrap(New(CodeNotFound, "x"), CodeIO, "y"), want: CodeIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, GetCode(tt.err))
		})
	}
}

func TestDefaultClassification(t *testing.T) {
	retryable := []ErrorCode{CodeTimeout, CodeNetwork, CodeUnavailable}
	for _, code := range retryable {
		require.True(t, New(code, "x").Classification().IsRetryable(), code)
	}

	permanent := []ErrorCode{
		CodeNotFound, CodeAlreadyExists, CodeConflict, CodeForbidden,
		CodeInvalidInput, CodeIO, CodeNotImplemented, ErrorCode("SOMETHING_NEW"),
	}
	for _, code := range permanent {
		require.False(t, New(code, "x").Classification().IsRetryable(), code)
	}
}
