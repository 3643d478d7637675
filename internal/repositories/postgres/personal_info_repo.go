package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rakasatria/folio/internal/models"
	"github.com/rakasatria/folio/internal/utils"
)

type PersonalInfoRepository interface {
	GetByOwnerID(ctx context.Context, ownerID string) (*models.PersonalInfo, error)
	Upsert(ctx context.Context, p *models.PersonalInfo) error
}

type personalInfoRepo struct {
	db *gorm.DB
}

func NewPersonalInfoRepo(db *gorm.DB) PersonalInfoRepository {
	return &personalInfoRepo{db: db}
}

func (r *personalInfoRepo) GetByOwnerID(ctx context.Context, ownerID string) (*models.PersonalInfo, error) {
	var p models.PersonalInfo
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &p, err
}

// Upsert is keyed on owner_id, not on the row id: repeated updates never
// grow the table beyond one row per owner.
func (r *personalInfoRepo) Upsert(ctx context.Context, p *models.PersonalInfo) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "owner_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "title", "description", "email", "phone", "whatsapp",
				"location", "avatar_url", "resume_url", "social_links", "updated_at",
			}),
		}).
		Create(p).Error
}
