package blob

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps objects on the local filesystem under Dir. Keys are
// flattened to a single path segment so a crafted filename cannot escape
// the storage directory.
type FileStore struct {
	Dir     string
	Bucket  string
	BaseURL string
}

func NewFileStore(dir, bucket, baseURL string) *FileStore {
	return &FileStore{Dir: dir, Bucket: bucket, BaseURL: baseURL}
}

func (s *FileStore) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	path := s.objectPath(key)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return BuildURL(s.BaseURL, s.Bucket, key), nil
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.objectPath(key))
	if os.IsNotExist(err) {
		return ErrObjectNotFound
	}
	return err
}

func (s *FileStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := os.Stat(s.objectPath(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *FileStore) objectPath(key string) string {
	flat := strings.NewReplacer("/", "_", "\\", "_").Replace(key)
	return filepath.Join(s.Dir, filepath.Base(flat))
}
