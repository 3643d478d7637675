package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rakasatria/folio/internal/utils"
)

// EntityRepo is the uniform per-entity table gateway: full-collection
// reads ordered newest first, single-row gets, id-keyed writes. One
// round trip per call, no retries, no caching at this layer.
type EntityRepo[T any] struct {
	db *gorm.DB
}

func NewEntityRepo[T any](db *gorm.DB) *EntityRepo[T] {
	return &EntityRepo[T]{db: db}
}

// List returns the full collection, newest first. The ordering is part
// of the contract, not incidental.
func (r *EntityRepo[T]) List(ctx context.Context) ([]T, error) {
	var rows []T
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// ListWhere is List with an equality filter, ex: ("is_featured = ?", true).
func (r *EntityRepo[T]) ListWhere(ctx context.Context, query string, args ...any) ([]T, error) {
	var rows []T
	err := r.db.WithContext(ctx).
		Where(query, args...).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *EntityRepo[T]) Get(ctx context.Context, id string) (*T, error) {
	var row T
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *EntityRepo[T]) Create(ctx context.Context, row *T) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// Save writes every column of an existing row. Callers must have
// confirmed existence; Save on a missing primary key would insert.
func (r *EntityRepo[T]) Save(ctx context.Context, row *T) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *EntityRepo[T]) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}
