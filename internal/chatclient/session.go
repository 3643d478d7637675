// Package chatclient holds the sending side of the chat widget: an
// optimistic in-memory message list reconciled by server acks, a scroll
// anchor, and a debounced typing indicator. It backs the terminal chat
// client and mirrors what the web widget does.
package chatclient

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rakasatria/folio/internal/chat"
	"github.com/rakasatria/folio/internal/models"
)

// SendFunc issues the remote send; the matching ack arrives later
// through HandleAck. An immediate error fails the message in place.
type SendFunc func(tempID, body string) error

// Session owns one participant's ordered message list. Messages it
// sends enter as pending and are reconciled to delivered or error by
// temp id; their position never changes. Messages from other
// participants append in arrival order.
type Session struct {
	mu sync.Mutex

	selfID   string
	selfName string
	send     SendFunc
	onChange func()

	messages []models.ChatMessage
}

func NewSession(selfID, selfName string, send SendFunc, onChange func()) *Session {
	if onChange == nil {
		onChange = func() {}
	}
	return &Session{
		selfID:   selfID,
		selfName: selfName,
		send:     send,
		onChange: onChange,
	}
}

// Send appends a pending message immediately and issues the remote
// call. The returned temp id identifies the message until the ack
// assigns a server id.
func (s *Session) Send(body string) string {
	m := models.ChatMessage{
		TempID:     uuid.NewString(),
		SenderID:   s.selfID,
		SenderName: s.selfName,
		Body:       body,
		CreatedAt:  time.Now().UTC(),
		Status:     models.MessagePending,
	}

	s.mu.Lock()
	s.messages = append(s.messages, m)
	s.mu.Unlock()
	s.onChange()

	if err := s.send(m.TempID, body); err != nil {
		s.fail(m.TempID)
	}
	return m.TempID
}

// HandleAck reconciles a pending message in place. Acks for unknown or
// already-settled messages are ignored; no message re-enters pending.
func (s *Session) HandleAck(ack chat.Ack) {
	s.mu.Lock()
	for i := range s.messages {
		m := &s.messages[i]
		if m.TempID != ack.TempID || m.Status != models.MessagePending {
			continue
		}
		switch ack.Status {
		case models.MessageDelivered:
			m.ID = ack.ID
			m.Status = models.MessageDelivered
			if !ack.CreatedAt.IsZero() {
				m.CreatedAt = ack.CreatedAt
			}
		default:
			m.Status = models.MessageError
		}
		break
	}
	s.mu.Unlock()
	s.onChange()
}

// HandleEvent appends a pushed message from another participant.
// Authorship differs from anything sent locally, so no de-duplication
// is needed.
func (s *Session) HandleEvent(ev chat.Event) {
	if ev.Type != chat.EventMessage {
		return
	}
	m := ev.Message
	m.Status = models.MessageDelivered

	s.mu.Lock()
	s.messages = append(s.messages, m)
	s.mu.Unlock()
	s.onChange()
}

// HandleHistory replaces the list with the server's replay, which only
// ever precedes live traffic.
func (s *Session) HandleHistory(rows []models.ChatMessage) {
	for i := range rows {
		rows[i].Status = models.MessageDelivered
	}
	s.mu.Lock()
	s.messages = rows
	s.mu.Unlock()
	s.onChange()
}

// Messages returns a snapshot of the ordered list.
func (s *Session) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Session) fail(tempID string) {
	s.mu.Lock()
	for i := range s.messages {
		m := &s.messages[i]
		if m.TempID == tempID && m.Status == models.MessagePending {
			m.Status = models.MessageError
			break
		}
	}
	s.mu.Unlock()
	s.onChange()
}
