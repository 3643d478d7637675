// Package dashboard holds the per-session state machine behind the
// admin UI: the active tab, the fetched record list, the in-progress
// draft, and the delete confirmation step. All mutations go through the
// entity registry and are followed by exactly one full refetch of the
// active collection; nothing is applied optimistically.
package dashboard

import (
	"context"

	"github.com/rakasatria/folio/internal/registry"
)

type Phase string

const (
	PhaseIdle             Phase = "idle"
	PhaseLoading          Phase = "loading"
	PhaseLoaded           Phase = "loaded"
	PhaseCreating         Phase = "creating"
	PhaseEditing          Phase = "editing"
	PhaseConfirmingDelete Phase = "confirming_delete"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notice is a transient, user-visible notification. It names the
// operation and entity kind; it never blocks.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Resolver is the slice of the entity registry the controller needs.
type Resolver interface {
	Lookup(key string) (registry.Gateway, bool)
}

// Controller is owned by exactly one dashboard session and is not safe
// for concurrent use; drive it from a single goroutine.
type Controller struct {
	resolver Resolver
	notify   func(Notice)

	tab      string
	phase    Phase
	records  []map[string]any
	draft    map[string]any
	editID   string
	deleteID string
}

func NewController(resolver Resolver, notify func(Notice)) *Controller {
	if notify == nil {
		notify = func(Notice) {}
	}
	return &Controller{
		resolver: resolver,
		notify:   notify,
		phase:    PhaseIdle,
	}
}

func (c *Controller) Tab() string   { return c.tab }
func (c *Controller) Phase() Phase  { return c.phase }
func (c *Controller) Draft() map[string]any {
	return c.draft
}

// Records returns the last server-confirmed list for the active tab.
func (c *Controller) Records() []map[string]any { return c.records }

// SwitchTab discards the previous tab's data and fetches the new tab's
// collection wholesale. An unknown tab key is a guarded miss.
func (c *Controller) SwitchTab(ctx context.Context, key string) {
	g, ok := c.resolver.Lookup(key)
	if !ok {
		c.notify(Notice{LevelError, "unknown section: " + key})
		return
	}

	c.tab = key
	c.records = nil
	c.draft = nil
	c.editID = ""
	c.deleteID = ""
	c.phase = PhaseLoading

	rows, err := g.List(ctx)
	if err != nil {
		c.phase = PhaseLoaded
		c.notify(Notice{LevelError, "failed to load " + g.Kind() + ": " + err.Error()})
		return
	}
	c.records = rows
	c.phase = PhaseLoaded
}

func (c *Controller) BeginCreate() {
	if c.phase != PhaseLoaded {
		return
	}
	c.draft = map[string]any{}
	c.phase = PhaseCreating
}

// BeginEdit pre-populates the draft from the selected record.
func (c *Controller) BeginEdit(id string) {
	if c.phase != PhaseLoaded {
		return
	}
	for _, rec := range c.records {
		if recID, _ := rec["id"].(string); recID == id {
			draft := make(map[string]any, len(rec))
			for k, v := range rec {
				draft[k] = v
			}
			c.draft = draft
			c.editID = id
			c.phase = PhaseEditing
			return
		}
	}
	c.notify(Notice{LevelError, "record not found: " + id})
}

// SetField records one field edit into the draft. The draft is the only
// thing a form edit ever touches; records stay server-confirmed.
func (c *Controller) SetField(name string, value any) {
	if c.phase != PhaseCreating && c.phase != PhaseEditing {
		return
	}
	c.draft[name] = value
}

func (c *Controller) CancelForm() {
	if c.phase != PhaseCreating && c.phase != PhaseEditing {
		return
	}
	c.draft = nil
	c.editID = ""
	c.phase = PhaseLoaded
}

// Submit sends the draft through the gateway. On success the form
// closes and the collection is refetched exactly once; on failure the
// form stays open, nothing is applied locally, and a notification names
// the operation and entity kind.
func (c *Controller) Submit(ctx context.Context) {
	g, ok := c.resolver.Lookup(c.tab)
	if !ok {
		return
	}

	switch c.phase {
	case PhaseCreating:
		if _, err := g.Create(ctx, c.draft); err != nil {
			c.notify(Notice{LevelError, "failed to create " + g.Kind() + ": " + err.Error()})
			return
		}
		c.notify(Notice{LevelInfo, g.Kind() + " created"})

	case PhaseEditing:
		if _, err := g.Update(ctx, c.editID, c.draft); err != nil {
			c.notify(Notice{LevelError, "failed to update " + g.Kind() + ": " + err.Error()})
			return
		}
		c.notify(Notice{LevelInfo, g.Kind() + " updated"})

	default:
		return
	}

	c.draft = nil
	c.editID = ""
	c.refetch(ctx, g)
}

// RequestDelete opens the confirmation step; the gateway is not called
// until ConfirmDelete.
func (c *Controller) RequestDelete(id string) {
	if c.phase != PhaseLoaded {
		return
	}
	c.deleteID = id
	c.phase = PhaseConfirmingDelete
}

func (c *Controller) CancelDelete() {
	if c.phase != PhaseConfirmingDelete {
		return
	}
	c.deleteID = ""
	c.phase = PhaseLoaded
}

func (c *Controller) ConfirmDelete(ctx context.Context) {
	if c.phase != PhaseConfirmingDelete {
		return
	}
	g, ok := c.resolver.Lookup(c.tab)
	if !ok {
		return
	}

	id := c.deleteID
	c.deleteID = ""

	if err := g.Delete(ctx, id); err != nil {
		c.phase = PhaseLoaded
		c.notify(Notice{LevelError, "failed to delete " + g.Kind() + ": " + err.Error()})
		return
	}
	c.notify(Notice{LevelInfo, g.Kind() + " deleted"})
	c.refetch(ctx, g)
}

// refetch replaces the record list with the server's view. A failed
// refetch keeps the previous in-memory list and raises its own notice.
func (c *Controller) refetch(ctx context.Context, g registry.Gateway) {
	c.phase = PhaseLoading
	rows, err := g.List(ctx)
	if err != nil {
		c.phase = PhaseLoaded
		c.notify(Notice{LevelError, "failed to refresh " + g.Kind() + " list: " + err.Error()})
		return
	}
	c.records = rows
	c.phase = PhaseLoaded
}
