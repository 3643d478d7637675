package chatclient

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rakasatria/folio/internal/chat"
	"github.com/rakasatria/folio/internal/models"
)

// WSClient speaks the hub's websocket protocol and feeds a Session.
type WSClient struct {
	conn *websocket.Conn
	sess *Session

	writeMu sync.Mutex
}

// Dial connects to /ws/chat and starts the read loop. onChange fires
// after every list mutation, like the widget's render hook.
func Dial(ctx context.Context, url, selfID, selfName string, onChange func()) (*WSClient, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	c := &WSClient{conn: conn}
	c.sess = NewSession(selfID, selfName, c.sendFrame, onChange)
	go c.readLoop()
	return c, nil
}

func (c *WSClient) Session() *Session { return c.sess }

func (c *WSClient) Close() error { return c.conn.Close() }

func (c *WSClient) sendFrame(tempID, body string) error {
	frame := map[string]string{"type": "send", "temp_id": tempID, "body": body}
	b, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

func (c *WSClient) readLoop() {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var head struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(data, &head); err != nil {
			continue
		}

		switch head.Type {
		case "ack":
			var ack chat.Ack
			if err := json.Unmarshal(data, &ack); err == nil {
				c.sess.HandleAck(ack)
			}
		case chat.EventMessage:
			var ev chat.Event
			if err := json.Unmarshal(data, &ev); err == nil {
				c.sess.HandleEvent(ev)
			}
		case "history":
			var h struct {
				Messages []models.ChatMessage `json:"messages"`
			}
			if err := json.Unmarshal(data, &h); err == nil {
				c.sess.HandleHistory(h.Messages)
			}
		}
	}
}
