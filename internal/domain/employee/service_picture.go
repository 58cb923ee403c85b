package employee

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"hrms/internal/platform/blob"
)

// UploadProfilePicture replaces the employee's picture. Ordering matters:
// the old blob is deleted first so a successful run never leaves a
// dangling URL, then the new blob is uploaded, then the record and both
// calendar projections are updated in one transaction.
func (s *Service) UploadProfilePicture(ctx context.Context, id, filename, contentType string, r io.Reader) (string, error) {
	emp, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		return "", err
	}

	if old := emp.ProfilePictureURL(); old != "" {
		key, err := blob.KeyFromURL(old)
		if err != nil {
			return "", err
		}
		if err := s.blobs.Delete(ctx, key); err != nil {
			return "", err
		}
	}

	key := blob.ObjectKey(emp.ID, time.Now(), filepath.Base(filename))
	publicURL, err := s.blobs.Upload(ctx, key, contentType, r)
	if err != nil {
		return "", err
	}

	if err := s.store.SetProfilePicture(ctx, id, &publicURL, true, s.branch); err != nil {
		return "", err
	}
	return publicURL, nil
}

func (s *Service) GetProfilePictureURL(ctx context.Context, id string) (string, error) {
	emp, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		return "", err
	}
	url := emp.ProfilePictureURL()
	if url == "" {
		return "", ErrNoProfilePicture
	}
	return url, nil
}

// DeleteProfilePicture mirrors the upload: remove the blob, then null the
// picture on the record and both calendar projections. Missing projection
// rows are silently left alone.
func (s *Service) DeleteProfilePicture(ctx context.Context, id string) error {
	emp, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		return err
	}
	url := emp.ProfilePictureURL()
	if url == "" {
		return ErrNoProfilePicture
	}

	key, err := blob.KeyFromURL(url)
	if err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, key); err != nil {
		return err
	}

	return s.store.SetProfilePicture(ctx, id, nil, false, s.branch)
}
