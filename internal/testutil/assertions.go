package testutil

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// APIResponse mirrors the canonical response envelope with Data left raw
// so tests can decode it into the shape they expect.
type APIResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// DecodeResponse decodes the envelope from an HTTP response.
func DecodeResponse(t *testing.T, resp *http.Response) APIResponse {
	t.Helper()

	var env APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

// DecodeData asserts a successful envelope and decodes its data field.
func DecodeData(t *testing.T, resp *http.Response, target any) APIResponse {
	t.Helper()

	env := DecodeResponse(t, resp)
	require.True(t, env.Success, "expected success envelope, got error: %s", env.Error)
	if target != nil {
		require.NoError(t, json.Unmarshal(env.Data, target))
	}
	return env
}

// AssertErrorEnvelope asserts a failed envelope carrying a non-empty
// localized error string.
func AssertErrorEnvelope(t *testing.T, resp *http.Response) APIResponse {
	t.Helper()

	env := DecodeResponse(t, resp)
	require.False(t, env.Success)
	require.NotEmpty(t, env.Error)
	return env
}
