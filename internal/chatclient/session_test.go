package chatclient

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rakasatria/folio/internal/chat"
	"github.com/rakasatria/folio/internal/models"
)

func TestSendAppendsPendingImmediately(t *testing.T) {
	sent := ""
	sess := NewSession("me", "Me", func(tempID, body string) error {
		sent = body
		return nil
	}, nil)

	tempID := sess.Send("hello")

	msgs := sess.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, models.MessagePending, msgs[0].Status)
	assert.Equal(t, tempID, msgs[0].TempID)
	assert.Empty(t, msgs[0].ID, "server id is assigned by the ack")
	assert.Equal(t, "hello", sent)
}

func TestAckReconcilesInPlace(t *testing.T) {
	sess := NewSession("me", "Me", func(string, string) error { return nil }, nil)

	first := sess.Send("first")
	sess.Send("second")

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sess.HandleAck(chat.Ack{
		Type: "ack", TempID: first, ID: "srv-1",
		Status: models.MessageDelivered, CreatedAt: created,
	})

	msgs := sess.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, first, msgs[0].TempID, "reconciliation never reorders")
	assert.Equal(t, models.MessageDelivered, msgs[0].Status)
	assert.Equal(t, "srv-1", msgs[0].ID)
	assert.Equal(t, created, msgs[0].CreatedAt)
	assert.Equal(t, models.MessagePending, msgs[1].Status)
}

func TestAckErrorIsTerminal(t *testing.T) {
	sess := NewSession("me", "Me", func(string, string) error { return nil }, nil)

	tempID := sess.Send("doomed")
	sess.HandleAck(chat.Ack{Type: "ack", TempID: tempID, Status: models.MessageError})

	msgs := sess.Messages()
	assert.Equal(t, models.MessageError, msgs[0].Status)

	// a late delivered ack for a settled message is ignored
	sess.HandleAck(chat.Ack{Type: "ack", TempID: tempID, ID: "srv-1", Status: models.MessageDelivered})
	assert.Equal(t, models.MessageError, sess.Messages()[0].Status, "no retry, no resurrection")
}

func TestAckUnknownTempIDIgnored(t *testing.T) {
	sess := NewSession("me", "Me", func(string, string) error { return nil }, nil)
	sess.Send("one")

	sess.HandleAck(chat.Ack{Type: "ack", TempID: "nope", Status: models.MessageDelivered})
	assert.Equal(t, models.MessagePending, sess.Messages()[0].Status)
}

func TestSendFailureFailsInPlace(t *testing.T) {
	sess := NewSession("me", "Me", func(string, string) error {
		return errors.New("socket closed")
	}, nil)

	sess.Send("hello")

	msgs := sess.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, models.MessageError, msgs[0].Status)
}

func TestHandleEventAppends(t *testing.T) {
	sess := NewSession("me", "Me", func(string, string) error { return nil }, nil)

	sess.HandleEvent(chat.Event{
		Type: chat.EventMessage,
		Message: models.ChatMessage{
			ID: "srv-9", SenderID: "them", SenderName: "Them", Body: "hi",
		},
	})

	msgs := sess.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, models.MessageDelivered, msgs[0].Status)

	sess.HandleEvent(chat.Event{Type: "typing"})
	assert.Len(t, sess.Messages(), 1, "non-message events are ignored")
}

func TestHandleHistoryReplaces(t *testing.T) {
	sess := NewSession("me", "Me", func(string, string) error { return nil }, nil)

	sess.HandleHistory([]models.ChatMessage{
		{ID: "h1", Body: "old one"},
		{ID: "h2", Body: "old two"},
	})

	msgs := sess.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, models.MessageDelivered, msgs[0].Status)
	assert.Equal(t, "h1", msgs[0].ID)
}

func TestOnChangeFires(t *testing.T) {
	calls := 0
	sess := NewSession("me", "Me", func(string, string) error { return nil }, func() {
		calls++
	})

	tempID := sess.Send("hello")
	sess.HandleAck(chat.Ack{Type: "ack", TempID: tempID, ID: "srv-1", Status: models.MessageDelivered})

	assert.Equal(t, 2, calls, "one change for the append, one for the ack")
}
