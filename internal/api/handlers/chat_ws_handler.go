package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rakasatria/folio/internal/chat"
)

// ChatWSHandler upgrades /ws/chat connections and hands them to the
// hub. Visitors connect anonymously with a display name; a valid
// session token overrides both identity fields.
type ChatWSHandler struct {
	hub      *chat.Hub
	upgrader websocket.Upgrader
}

func NewChatWSHandler(hub *chat.Hub) *ChatWSHandler {
	return &ChatWSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

func (h *ChatWSHandler) Serve(c *gin.Context) {
	senderID, _ := c.Get("user_id")
	senderName, _ := c.Get("user_name")

	id, _ := senderID.(string)
	name, _ := senderName.(string)

	if id == "" {
		// guest identity lasts for the life of the connection
		id = "guest:" + uuid.NewString()
	}
	if name == "" {
		name = c.Query("name")
	}
	if name == "" {
		name = "Visitor"
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	h.hub.ServeConn(c.Request.Context(), conn, id, name)
}
