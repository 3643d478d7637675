package services

import (
	"context"
	"io"
	"path"

	"github.com/google/uuid"

	"github.com/rakasatria/folio/internal/storage"
	"github.com/rakasatria/folio/internal/utils"
)

// UploadService wraps the blob store with the dashboard's file-field
// semantics: replace-on-edit must not leave the prior object orphaned,
// clearing a field deletes the stored object.
type UploadService interface {
	Upload(ctx context.Context, ownerID, filename, contentType string, r io.Reader) (url string, err error)
	// Replace uploads the new object first, then deletes the prior one.
	Replace(ctx context.Context, ownerID, priorURL, filename, contentType string, r io.Reader) (url string, err error)
	Delete(ctx context.Context, url string) error
}

type uploadService struct {
	store storage.ObjectStore
}

func NewUploadService(store storage.ObjectStore) UploadService {
	return &uploadService{store: store}
}

func (s *uploadService) Upload(ctx context.Context, ownerID, filename, contentType string, r io.Reader) (string, error) {
	const op = "UploadService.Upload"

	if s.store == nil {
		return "", utils.E(utils.CodeInternal, op, "object store is not configured", nil)
	}
	if ownerID == "" {
		return "", utils.E(utils.CodeInvalidArgument, op, "owner_id is required", nil)
	}

	objectName := "uploads/" + ownerID + "/" + uuid.NewString() + path.Ext(filename)

	url, err := s.store.Upload(ctx, objectName, contentType, r)
	if err != nil {
		return "", utils.E(utils.CodeUnavailable, op, "failed to upload file", err)
	}
	return url, nil
}

func (s *uploadService) Replace(ctx context.Context, ownerID, priorURL, filename, contentType string, r io.Reader) (string, error) {
	const op = "UploadService.Replace"

	url, err := s.Upload(ctx, ownerID, filename, contentType, r)
	if err != nil {
		return "", err
	}

	if priorURL != "" {
		if name, ok := s.store.Resolve(priorURL); ok {
			if derr := s.store.Delete(ctx, name); derr != nil {
				return url, utils.E(utils.CodeUnavailable, op,
					"uploaded, but failed to delete prior object", derr)
			}
		}
	}
	return url, nil
}

func (s *uploadService) Delete(ctx context.Context, url string) error {
	const op = "UploadService.Delete"

	if s.store == nil {
		return utils.E(utils.CodeInternal, op, "object store is not configured", nil)
	}
	name, ok := s.store.Resolve(url)
	if !ok {
		return utils.E(utils.CodeInvalidArgument, op, "url is not a stored object", nil)
	}
	if err := s.store.Delete(ctx, name); err != nil {
		return utils.E(utils.CodeUnavailable, op, "failed to delete object", err)
	}
	return nil
}
