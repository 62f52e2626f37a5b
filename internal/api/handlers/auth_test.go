package handlers_test

import (
	"net/http"
	"testing"

	"github.com/runclub/runtrack/internal/api/handlers"
	"github.com/runclub/runtrack/internal/api/response"
	"github.com/runclub/runtrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthAPI_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.Verifier.Allow("line-token-1", "U100", "Somchai", "https://cdn.line.test/somchai.jpg")

	t.Run("missing token", func(t *testing.T) {
		resp := ts.DoJSON(t, http.MethodPost, "/auth/login", "", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		testutil.AssertErrorEnvelope(t, resp)
	})

	t.Run("rejected token", func(t *testing.T) {
		resp := ts.DoJSON(t, http.MethodPost, "/auth/login", "", map[string]string{"lineIdToken": "forged"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		env := testutil.AssertErrorEnvelope(t, resp)
		assert.Equal(t, response.ErrLineVerify, env.Error)
	})

	t.Run("successful login", func(t *testing.T) {
		resp := ts.DoJSON(t, http.MethodPost, "/auth/login", "", map[string]string{"lineIdToken": "line-token-1"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var data handlers.LoginData
		env := testutil.DecodeData(t, resp, &data)
		assert.Equal(t, response.MsgLoginOK, env.Message)
		assert.Equal(t, "U100", data.User.LineID)
		assert.Equal(t, "Somchai", data.User.DisplayName)
		assert.NotEmpty(t, data.Token)

		// The token works against a protected route.
		profileResp := ts.DoJSON(t, http.MethodGet, "/auth/profile", data.Token, nil)
		assert.Equal(t, http.StatusOK, profileResp.StatusCode)
	})

	t.Run("repeat login reuses the user", func(t *testing.T) {
		first := ts.DoJSON(t, http.MethodPost, "/auth/login", "", map[string]string{"lineIdToken": "line-token-1"})
		var firstData handlers.LoginData
		testutil.DecodeData(t, first, &firstData)

		second := ts.DoJSON(t, http.MethodPost, "/auth/login", "", map[string]string{"lineIdToken": "line-token-1"})
		var secondData handlers.LoginData
		testutil.DecodeData(t, second, &secondData)

		assert.Equal(t, firstData.User.ID, secondData.User.ID)
	})
}

func TestAuthAPI_Register(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	token := ts.TokenFor(t, user)

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
	}{
		{
			name:       "missing phone number",
			body:       map[string]any{"birthDate": "1990-05-01"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing birth date",
			body:       map[string]any{"phoneNumber": "0812345678"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "phone number too short",
			body:       map[string]any{"phoneNumber": "081234", "birthDate": "1990-05-01"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "phone number with letters",
			body:       map[string]any{"phoneNumber": "08123456ab", "birthDate": "1990-05-01"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unparseable birth date",
			body:       map[string]any{"phoneNumber": "0812345678", "birthDate": "01/05/1990"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "birth date in the future",
			body:       map[string]any{"phoneNumber": "0812345678", "birthDate": "2990-05-01"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "valid registration",
			body:       map[string]any{"phoneNumber": "0812345678", "birthDate": "1990-05-01"},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.DoJSON(t, http.MethodPost, "/auth/register", token, tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus != http.StatusOK {
				testutil.AssertErrorEnvelope(t, resp)
				return
			}

			var data struct {
				User handlers.UserResponse `json:"user"`
			}
			testutil.DecodeData(t, resp, &data)
			require.NotNil(t, data.User.PhoneNumber)
			assert.Equal(t, "0812345678", *data.User.PhoneNumber)
			require.NotNil(t, data.User.BirthDate)
			assert.Equal(t, "1990-05-01", *data.User.BirthDate)
		})
	}
}

func TestAuthAPI_Profile(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user := testutil.NewUserBuilder().WithDisplayName("Runner A").Build(t, ts.DB.DB)
	token := ts.TokenFor(t, user)

	t.Run("get profile", func(t *testing.T) {
		resp := ts.DoJSON(t, http.MethodGet, "/auth/profile", token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var data handlers.UserResponse
		testutil.DecodeData(t, resp, &data)
		assert.Equal(t, user.ID.String(), data.ID)
		assert.Equal(t, "Runner A", data.DisplayName)
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		resp := ts.DoJSON(t, http.MethodPut, "/auth/profile", token, map[string]any{
			"phoneNumber": "0898765432",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var data handlers.UserResponse
		testutil.DecodeData(t, resp, &data)
		require.NotNil(t, data.PhoneNumber)
		assert.Equal(t, "0898765432", *data.PhoneNumber)
		assert.Equal(t, "Runner A", data.DisplayName)
		assert.Nil(t, data.BirthDate)
	})

	t.Run("invalid phone rejected", func(t *testing.T) {
		resp := ts.DoJSON(t, http.MethodPut, "/auth/profile", token, map[string]any{
			"phoneNumber": "123",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		testutil.AssertErrorEnvelope(t, resp)
	})
}
