package services

import (
	"context"
	"errors"
	"time"

	"github.com/rakasatria/folio/internal/models"
	pgrepo "github.com/rakasatria/folio/internal/repositories/postgres"
	"github.com/rakasatria/folio/internal/utils"
)

// PersonalInfoService manages the per-owner singleton: there is no
// id-keyed update, only an upsert keyed on the owner.
type PersonalInfoService interface {
	Get(ctx context.Context) (*models.PersonalInfo, error)
	Upsert(ctx context.Context, p *models.PersonalInfo) (*models.PersonalInfo, error)
}

type personalInfoService struct {
	ownerID string
	repo    pgrepo.PersonalInfoRepository
}

func NewPersonalInfoService(ownerID string, repo pgrepo.PersonalInfoRepository) PersonalInfoService {
	return &personalInfoService{ownerID: ownerID, repo: repo}
}

func (s *personalInfoService) Get(ctx context.Context) (*models.PersonalInfo, error) {
	const op = "PersonalInfoService.Get"

	p, err := s.repo.GetByOwnerID(ctx, s.ownerID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "personal info not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get personal info", err)
	}
	return p, nil
}

func (s *personalInfoService) Upsert(ctx context.Context, p *models.PersonalInfo) (*models.PersonalInfo, error) {
	const op = "PersonalInfoService.Upsert"

	if p == nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "personal info is required", nil)
	}

	p.OwnerID = s.ownerID
	p.Stamp(s.ownerID)
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to upsert personal info", err)
	}
	return p, nil
}
