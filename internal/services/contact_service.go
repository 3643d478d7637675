package services

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/rakasatria/folio/internal/models"
	pgrepo "github.com/rakasatria/folio/internal/repositories/postgres"
	"github.com/rakasatria/folio/internal/utils"
)

// ContactStream is the redis stream the notifier workers consume.
const ContactStream = "contact:stream"

// ContactService covers both sides of the contact entity: the public
// site may only submit, the dashboard may only list and delete.
type ContactService interface {
	Submit(ctx context.Context, msg *models.ContactMessage) (*models.ContactMessage, error)
	GetAll(ctx context.Context) ([]models.ContactMessage, error)
	Delete(ctx context.Context, id string) error
}

type contactService struct {
	ownerID string
	repo    *pgrepo.EntityRepo[models.ContactMessage]
	redis   *redis.Client // optional; nil disables notification enqueue
}

func NewContactService(ownerID string, repo *pgrepo.EntityRepo[models.ContactMessage], rdb *redis.Client) ContactService {
	return &contactService{ownerID: ownerID, repo: repo, redis: rdb}
}

func (s *contactService) Submit(ctx context.Context, msg *models.ContactMessage) (*models.ContactMessage, error) {
	const op = "ContactService.Submit"

	if msg == nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "message is required", nil)
	}
	if strings.TrimSpace(msg.Name) == "" ||
		strings.TrimSpace(msg.Email) == "" ||
		strings.TrimSpace(msg.Message) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "name, email, and message are required", nil)
	}

	msg.Stamp(s.ownerID)

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save contact message", err)
	}

	// best-effort: a lost notification never fails the submission
	if s.redis != nil {
		_ = s.redis.XAdd(ctx, &redis.XAddArgs{
			Stream: ContactStream,
			Values: map[string]any{
				"contact_id": msg.ID,
				"name":       msg.Name,
				"email":      msg.Email,
				"phone":      msg.Phone,
				"subject":    msg.Subject,
				"message":    msg.Message,
			},
		}).Err()
	}

	return msg, nil
}

func (s *contactService) GetAll(ctx context.Context) ([]models.ContactMessage, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, "ContactService.GetAll",
			"failed to list contact messages", err)
	}
	return rows, nil
}

func (s *contactService) Delete(ctx context.Context, id string) error {
	const op = "ContactService.Delete"

	if id == "" {
		return utils.E(utils.CodeInvalidArgument, op, "id is required", nil)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "contact message not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete contact message", err)
	}
	return nil
}
