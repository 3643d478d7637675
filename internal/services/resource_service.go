package services

import (
	"context"
	"errors"

	pgrepo "github.com/rakasatria/folio/internal/repositories/postgres"
	"github.com/rakasatria/folio/internal/utils"
)

// entityPtr ties a content model to the server-side stamping every row
// receives on create (id, owner, timestamp).
type entityPtr[T any] interface {
	*T
	Stamp(ownerID string)
	RecordID() string
}

// Resource is the uniform gateway contract for the 0..N entity kinds:
// full-collection reads newest first, id-keyed writes, no optimistic
// anything. Every failure carries the entity kind in its message so the
// dashboard can surface it as-is.
type Resource[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, row *T) (*T, error)
	Update(ctx context.Context, id string, row *T) (*T, error)
	Delete(ctx context.Context, id string) error
}

type resourceService[T any, PT entityPtr[T]] struct {
	kind    string
	ownerID string
	repo    *pgrepo.EntityRepo[T]
}

func NewResourceService[T any, PT entityPtr[T]](kind, ownerID string, repo *pgrepo.EntityRepo[T]) Resource[T] {
	return &resourceService[T, PT]{kind: kind, ownerID: ownerID, repo: repo}
}

func (s *resourceService[T, PT]) GetAll(ctx context.Context) ([]T, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, "ResourceService.GetAll",
			"failed to list "+s.kind, err)
	}
	return rows, nil
}

func (s *resourceService[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	const op = "ResourceService.Get"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "id is required", nil)
	}
	row, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, s.kind+" not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get "+s.kind, err)
	}
	return row, nil
}

func (s *resourceService[T, PT]) Create(ctx context.Context, row *T) (*T, error) {
	const op = "ResourceService.Create"

	if row == nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "row is required", nil)
	}
	PT(row).Stamp(s.ownerID)

	if err := s.repo.Create(ctx, row); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create "+s.kind, err)
	}
	return row, nil
}

func (s *resourceService[T, PT]) Update(ctx context.Context, id string, row *T) (*T, error) {
	const op = "ResourceService.Update"

	if id == "" || row == nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "id and row are required", nil)
	}
	if got := PT(row).RecordID(); got != "" && got != id {
		return nil, utils.E(utils.CodeInvalidArgument, op, "row id does not match", nil)
	}

	// confirm existence first; Save on a missing row would insert
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, row); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update "+s.kind, err)
	}
	return row, nil
}

func (s *resourceService[T, PT]) Delete(ctx context.Context, id string) error {
	const op = "ResourceService.Delete"

	if id == "" {
		return utils.E(utils.CodeInvalidArgument, op, "id is required", nil)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, s.kind+" not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete "+s.kind, err)
	}
	return nil
}
