package testutil

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/runclub/runtrack/internal/identity"
)

// StubVerifier maps known ID tokens to provider profiles and rejects
// everything else, standing in for the LINE verify endpoint.
type StubVerifier struct {
	mu       sync.Mutex
	profiles map[string]identity.Profile
}

func NewStubVerifier() *StubVerifier {
	return &StubVerifier{profiles: make(map[string]identity.Profile)}
}

// Allow registers an ID token that verifies to the given subject.
func (v *StubVerifier) Allow(idToken, subjectID, displayName, pictureURL string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.profiles[idToken] = identity.Profile{
		SubjectID:   subjectID,
		DisplayName: displayName,
		PictureURL:  pictureURL,
		Raw:         []byte(fmt.Sprintf(`{"sub":%q,"name":%q,"picture":%q}`, subjectID, displayName, pictureURL)),
	}
}

func (v *StubVerifier) VerifyIDToken(ctx context.Context, idToken string) (*identity.Profile, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	profile, ok := v.profiles[idToken]
	if !ok {
		return nil, fmt.Errorf("%w: unknown token", identity.ErrVerificationFailed)
	}
	return &profile, nil
}

// MemoryStore is an in-memory ObjectStore double.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	base    string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects: make(map[string][]byte),
		base:    "https://storage.test/running-evidence",
	}
}

func (s *MemoryStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return s.base + "/" + key, nil
}

func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *MemoryStore) KeyFromURL(rawURL string) (string, bool) {
	key, ok := strings.CutPrefix(rawURL, s.base+"/")
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

// Has reports whether an object exists under key.
func (s *MemoryStore) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok
}

// Len returns the number of stored objects.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
