package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/rakasatria/folio/internal/dashboard"
	"github.com/rakasatria/folio/internal/registry"
)

// DashboardWSHandler runs one dashboard controller per connection and
// drives it from the read loop, so the controller never sees two
// commands at once.
type DashboardWSHandler struct {
	reg      *registry.Registry
	log      *logrus.Logger
	upgrader websocket.Upgrader
}

func NewDashboardWSHandler(reg *registry.Registry, log *logrus.Logger) *DashboardWSHandler {
	return &DashboardWSHandler{
		reg: reg,
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type dashCommand struct {
	Type  string          `json:"type"`
	Key   string          `json:"key,omitempty"`
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
}

type dashState struct {
	Type    string           `json:"type"` // "state"
	Tab     string           `json:"tab"`
	Phase   dashboard.Phase  `json:"phase"`
	Records []map[string]any `json:"records"`
	Draft   map[string]any   `json:"draft,omitempty"`
}

type dashNotice struct {
	Type   string           `json:"type"` // "notice"
	Notice dashboard.Notice `json:"notice"`
}

type dashConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *dashConn) writeJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteJSON(v)
}

func (h *DashboardWSHandler) Serve(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	wc := &dashConn{c: conn}

	ctrl := dashboard.NewController(h.reg, func(n dashboard.Notice) {
		if werr := wc.writeJSON(dashNotice{Type: "notice", Notice: n}); werr != nil {
			h.log.WithError(werr).Debug("dashboard notice write failed")
		}
	})

	pushState := func() error {
		return wc.writeJSON(dashState{
			Type:    "state",
			Tab:     ctrl.Tab(),
			Phase:   ctrl.Phase(),
			Records: ctrl.Records(),
			Draft:   ctrl.Draft(),
		})
	}

	if err := pushState(); err != nil {
		return
	}

	ctx := c.Request.Context()

	for {
		_ = conn.SetReadDeadline(time.Now().Add(10 * time.Minute))

		_, data, rerr := conn.ReadMessage()
		if rerr != nil {
			return
		}

		var cmd dashCommand
		if err := json.Unmarshal(data, &cmd); err != nil {
			_ = wc.writeJSON(dashNotice{Type: "notice", Notice: dashboard.Notice{
				Level: dashboard.LevelError, Message: "invalid command",
			}})
			continue
		}

		switch cmd.Type {
		case "switch_tab":
			ctrl.SwitchTab(ctx, cmd.Key)
		case "begin_create":
			ctrl.BeginCreate()
		case "begin_edit":
			ctrl.BeginEdit(cmd.ID)
		case "set_field":
			var v any
			if len(cmd.Value) > 0 {
				if err := json.Unmarshal(cmd.Value, &v); err != nil {
					_ = wc.writeJSON(dashNotice{Type: "notice", Notice: dashboard.Notice{
						Level: dashboard.LevelError, Message: "invalid field value",
					}})
					continue
				}
			}
			ctrl.SetField(cmd.Name, v)
		case "cancel_form":
			ctrl.CancelForm()
		case "submit":
			ctrl.Submit(ctx)
		case "request_delete":
			ctrl.RequestDelete(cmd.ID)
		case "cancel_delete":
			ctrl.CancelDelete()
		case "confirm_delete":
			ctrl.ConfirmDelete(ctx)
		default:
			_ = wc.writeJSON(dashNotice{Type: "notice", Notice: dashboard.Notice{
				Level: dashboard.LevelError, Message: "unknown command type " + cmd.Type,
			}})
			continue
		}

		if err := pushState(); err != nil {
			return
		}
	}
}
