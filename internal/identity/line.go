// Package identity verifies social-login ID tokens against the LINE
// platform and exposes the authenticated subject's display attributes.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrVerificationFailed covers every provider-side rejection: non-2xx
// responses, undecodable payloads and payloads without a subject id.
// Tokens are single-use, so callers must not retry.
var ErrVerificationFailed = errors.New("identity verification failed")

// Profile is the provider's view of a verified subject.
type Profile struct {
	SubjectID   string
	DisplayName string
	PictureURL  string
	Raw         json.RawMessage
}

type Verifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*Profile, error)
}

type LineClient struct {
	httpClient *http.Client
	verifyURL  string
	channelID  string
}

func NewLineClient(verifyURL, channelID string) *LineClient {
	return &LineClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		verifyURL:  verifyURL,
		channelID:  channelID,
	}
}

func (c *LineClient) VerifyIDToken(ctx context.Context, idToken string) (*Profile, error) {
	form := url.Values{
		"id_token":  {idToken},
		"client_id": {c.channelID},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: provider returned %d", ErrVerificationFailed, resp.StatusCode)
	}

	var payload struct {
		Sub     string `json:"sub"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	if payload.Sub == "" {
		return nil, fmt.Errorf("%w: missing subject id", ErrVerificationFailed)
	}

	return &Profile{
		SubjectID:   payload.Sub,
		DisplayName: payload.Name,
		PictureURL:  payload.Picture,
		Raw:         json.RawMessage(body),
	}, nil
}
