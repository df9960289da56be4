package errors

import (
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToJSON(t *testing.T) {
	err := WrapWithContext(stderrors.New("secret bucket detail"), CodeNotFound, "unable to open file 'a.txt'",
		map[string]interface{}{"op": "open", "path": "a.txt"})

	resp := ToJSON(err)
	require.NotNil(t, resp)
	require.Equal(t, "NOT_FOUND", resp.Code)
	require.Equal(t, "unable to open file 'a.txt'", resp.Message)
	require.Equal(t, "PERMANENT", resp.Classification)
	require.Equal(t, "a.txt", resp.Context["path"])
}

func TestToJSON_StandardError(t *testing.T) {
	resp := ToJSON(stderrors.New("something went wrong"))

	require.Equal(t, "UNKNOWN", resp.Code)
	require.Equal(t, "something went wrong", resp.Message)
	require.Equal(t, "PERMANENT", resp.Classification)
	require.Nil(t, resp.Context)
}

func TestToJSON_Nil(t *testing.T) {
	require.Nil(t, ToJSON(nil))
}

func TestMarshalJSON(t *testing.T) {
	err := WithContext(New(CodeConflict, "directory not empty"), "path", "dir")

	data, mErr := json.Marshal(err)
	require.NoError(t, mErr)
	require.JSONEq(t,
		`{"code":"CONFLICT","message":"directory not empty","classification":"PERMANENT","context":{"path":"dir"}}`,
		string(data))
}

func TestMarshalJSON_OmitsEmptyContext(t *testing.T) {
	data, err := json.Marshal(New(CodeTimeout, "slow"))
	require.NoError(t, err)
	require.JSONEq(t, `{"code":"TIMEOUT","message":"slow","classification":"RETRYABLE"}`, string(data))
}
