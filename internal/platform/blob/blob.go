package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"
)

var (
	ErrObjectNotFound = errors.New("blob object not found")
	ErrBadObjectURL   = errors.New("object URL is not derivable to a key")
)

// Gateway is the object-storage collaborator. Upload returns a durable
// public URL; Delete removes the object under the given key.
type Gateway interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ObjectKey derives a collision-free storage key from the owning employee,
// the upload instant, and the original filename.
func ObjectKey(employeeID string, uploadedAt time.Time, filename string) string {
	return fmt.Sprintf("%s-%d-%s", employeeID, uploadedAt.UnixMilli(), filename)
}

// BuildURL renders the public URL for a key. The inverse is KeyFromURL;
// the pair must round-trip for deletion by URL to work.
func BuildURL(baseURL, bucket, key string) string {
	return fmt.Sprintf("%s/b/%s/o/%s?alt=media", strings.TrimRight(baseURL, "/"), bucket, url.QueryEscape(key))
}

// KeyFromURL recovers the storage key from a public URL produced by BuildURL.
func KeyFromURL(publicURL string) (string, error) {
	_, rest, found := strings.Cut(publicURL, "/o/")
	if !found || rest == "" {
		return "", ErrBadObjectURL
	}
	rest, _, _ = strings.Cut(rest, "?")
	key, err := url.QueryUnescape(rest)
	if err != nil || key == "" {
		return "", ErrBadObjectURL
	}
	return key, nil
}
