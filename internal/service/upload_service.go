package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/runclub/runtrack/internal/storage"
)

// MaxUploadBytes caps a single evidence image at 5 MB.
const MaxUploadBytes = 5 << 20

var ErrNotImage = errors.New("only image files are accepted")

type UploadService struct {
	store storage.ObjectStore
}

func NewUploadService(store storage.ObjectStore) *UploadService {
	return &UploadService{store: store}
}

// UploadImage stores one evidence image under a per-user prefix with a
// random name and returns its public URL.
func (s *UploadService) UploadImage(ctx context.Context, userID uuid.UUID, filename, contentType string, body io.Reader, size int64) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}

	key := userID.String() + "/" + uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	return s.store.Put(ctx, key, contentType, body, size)
}
