// Package storage holds evidence images in an S3-compatible bucket and
// hands out their public URLs.
package storage

import (
	"context"
	"io"
)

type ObjectStore interface {
	// Put streams body into the bucket under key and returns the public URL.
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	Remove(ctx context.Context, key string) error
	// KeyFromURL reverse-maps a public URL produced by Put back to its
	// object key. The second result is false for foreign URLs.
	KeyFromURL(rawURL string) (string, bool)
}
