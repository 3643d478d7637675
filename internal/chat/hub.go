// Package chat implements the realtime side of the site's chat widget:
// persist on send, ack the sender, and push to everyone else. A failed
// send degrades to an error ack; nothing is retried automatically.
package chat

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/rakasatria/folio/internal/models"
	"github.com/rakasatria/folio/internal/services"
)

const historyLimit = 50

// inbound is what a participant sends over the socket.
type inbound struct {
	Type   string `json:"type"`
	TempID string `json:"temp_id"`
	Body   string `json:"body"`
}

// Ack reconciles the sender's optimistic message by temp id.
type Ack struct {
	Type      string               `json:"type"` // "ack"
	TempID    string               `json:"temp_id"`
	ID        string               `json:"id,omitempty"`
	Status    models.MessageStatus `json:"status"`
	Error     string               `json:"error,omitempty"`
	CreatedAt time.Time            `json:"created_at,omitempty"`
}

type history struct {
	Type     string               `json:"type"` // "history"
	Messages []models.ChatMessage `json:"messages"`
}

type Hub struct {
	chat   services.ChatService
	broker Broker
	log    *logrus.Logger

	mu      sync.Mutex
	clients map[*Client]struct{}
}

func NewHub(chat services.ChatService, broker Broker, log *logrus.Logger) *Hub {
	if log == nil {
		log = logrus.New()
	}
	return &Hub{
		chat:    chat,
		broker:  broker,
		log:     log,
		clients: make(map[*Client]struct{}),
	}
}

// Run subscribes the hub to the broker; events arriving from any
// instance are delivered to this instance's clients.
func (h *Hub) Run(ctx context.Context) (func(), error) {
	return h.broker.Subscribe(ctx, h.deliver)
}

// deliver pushes one event to every connected participant except its
// author: the author reconciles through the ack alone, so no
// de-duplication is needed on the sending side.
func (h *Hub) deliver(ev Event) {
	h.mu.Lock()
	targets := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		if c.senderID == ev.Message.SenderID {
			continue
		}
		targets = append(targets, c)
	}
	h.mu.Unlock()

	for _, c := range targets {
		if err := c.writeJSON(ev); err != nil {
			h.log.WithError(err).Debug("chat: drop slow client")
		}
	}
}

// Client is one connected participant.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex

	senderID   string
	senderName string
}

func (c *Client) writeJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

// ServeConn owns one websocket for its lifetime: replay history, join
// the room, then loop on inbound sends until the peer goes away.
func (h *Hub) ServeConn(ctx context.Context, conn *websocket.Conn, senderID, senderName string) {
	defer conn.Close()

	client := &Client{conn: conn, senderID: senderID, senderName: senderName}

	if rows, err := h.chat.History(ctx, historyLimit); err == nil {
		_ = client.writeJSON(history{Type: "history", Messages: rows})
	} else {
		h.log.WithError(err).Warn("chat: history unavailable")
	}

	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, client)
		h.mu.Unlock()
	}()

	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var msg inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = client.writeJSON(Ack{Type: "ack", Status: models.MessageError, Error: "invalid json"})
			continue
		}

		switch msg.Type {
		case "send":
			h.handleSend(ctx, client, msg)
		default:
			_ = client.writeJSON(Ack{Type: "ack", TempID: msg.TempID,
				Status: models.MessageError, Error: "unknown message type"})
		}
	}
}

func (h *Hub) handleSend(ctx context.Context, client *Client, msg inbound) {
	stored, err := h.chat.Append(ctx, client.senderID, client.senderName, msg.Body)
	if err != nil {
		_ = client.writeJSON(Ack{
			Type:   "ack",
			TempID: msg.TempID,
			Status: models.MessageError,
			Error:  err.Error(),
		})
		return
	}

	_ = client.writeJSON(Ack{
		Type:      "ack",
		TempID:    msg.TempID,
		ID:        stored.ID,
		Status:    models.MessageDelivered,
		CreatedAt: stored.CreatedAt,
	})

	if err := h.broker.Publish(ctx, Event{Type: EventMessage, Message: *stored}); err != nil {
		h.log.WithError(err).Warn("chat: publish failed; message stored but not pushed")
	}
}
