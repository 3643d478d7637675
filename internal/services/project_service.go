package services

import (
	"context"

	"github.com/rakasatria/folio/internal/models"
	pgrepo "github.com/rakasatria/folio/internal/repositories/postgres"
	"github.com/rakasatria/folio/internal/utils"
)

type ProjectService interface {
	Resource[models.Project]

	// Featured is a filtered view over the same collection, not a
	// separate list.
	Featured(ctx context.Context) ([]models.Project, error)
}

type projectService struct {
	Resource[models.Project]
	repo *pgrepo.EntityRepo[models.Project]
}

func NewProjectService(ownerID string, repo *pgrepo.EntityRepo[models.Project]) ProjectService {
	return &projectService{
		Resource: NewResourceService[models.Project, *models.Project]("project", ownerID, repo),
		repo:     repo,
	}
}

func (s *projectService) Featured(ctx context.Context) ([]models.Project, error) {
	rows, err := s.repo.ListWhere(ctx, "is_featured = ?", true)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, "ProjectService.Featured",
			"failed to list featured projects", err)
	}
	return rows, nil
}
