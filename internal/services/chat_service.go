package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rakasatria/folio/internal/models"
	mongorepo "github.com/rakasatria/folio/internal/repositories/mongo"
	"github.com/rakasatria/folio/internal/utils"
)

type ChatService interface {
	// Append persists one message; the row id and timestamp are
	// assigned here, never by the sender.
	Append(ctx context.Context, senderID, senderName, body string) (*models.ChatMessage, error)
	History(ctx context.Context, limit int) ([]models.ChatMessage, error)
}

type chatService struct {
	messages mongorepo.MessageRepository
}

func NewChatService(messages mongorepo.MessageRepository) ChatService {
	return &chatService{messages: messages}
}

func (s *chatService) Append(ctx context.Context, senderID, senderName, body string) (*models.ChatMessage, error) {
	const op = "ChatService.Append"

	if senderID == "" || strings.TrimSpace(body) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "sender_id and body are required", nil)
	}

	m := &models.ChatMessage{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		SenderName: senderName,
		Body:       body,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.messages.Insert(ctx, m); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to persist message", err)
	}
	return m, nil
}

func (s *chatService) History(ctx context.Context, limit int) ([]models.ChatMessage, error) {
	rows, err := s.messages.LatestN(ctx, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, "ChatService.History",
			"failed to load chat history", err)
	}
	return rows, nil
}
