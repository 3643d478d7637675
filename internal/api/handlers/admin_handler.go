package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rakasatria/folio/internal/cache"
	"github.com/rakasatria/folio/internal/registry"
	"github.com/rakasatria/folio/internal/schema"
	"github.com/rakasatria/folio/internal/utils"
)

// AdminHandler is one handler for every managed entity: the :entity
// path param selects a registry gateway, and the form schema tells the
// dashboard how to render it. Adding an entity never adds a route.
type AdminHandler struct {
	reg   *registry.Registry
	cache cache.Cache
	log   *logrus.Logger
}

func NewAdminHandler(reg *registry.Registry, c cache.Cache, log *logrus.Logger) *AdminHandler {
	return &AdminHandler{reg: reg, cache: c, log: log}
}

func (h *AdminHandler) gateway(c *gin.Context, op string) (registry.Gateway, bool) {
	key := c.Param("entity")
	g, ok := h.reg.Lookup(key)
	if !ok {
		writeError(c, utils.E(utils.CodeNotFound, op, "unknown entity "+key, nil))
		return nil, false
	}
	return g, true
}

// invalidate drops the public cache entries for a kind after a
// mutation; failures are logged, never surfaced.
func (h *AdminHandler) invalidate(c *gin.Context, kind string) {
	keys := []string{cache.Key(kind)}
	if kind == "projects" {
		keys = append(keys, cache.Key("projects:featured"))
	}
	if err := h.cache.Del(c.Request.Context(), keys...); err != nil {
		h.log.WithError(err).WithField("kind", kind).Warn("cache invalidation failed")
	}
}

// Entities lists the managed kinds with their form schemas, in the
// dashboard's tab order.
func (h *AdminHandler) Entities(c *gin.Context) {
	type entityInfo struct {
		Key  string      `json:"key"`
		Form schema.Form `json:"form"`
	}

	out := make([]entityInfo, 0, len(h.reg.Keys()))
	for _, key := range h.reg.Keys() {
		form, _ := schema.FormFor(key)
		out = append(out, entityInfo{Key: key, Form: form})
	}
	c.JSON(http.StatusOK, out)
}

// Schema serves one entity's form layout.
func (h *AdminHandler) Schema(c *gin.Context) {
	key := c.Param("entity")
	form, ok := schema.FormFor(key)
	if !ok {
		writeError(c, utils.E(utils.CodeNotFound, "AdminHandler.Schema", "unknown entity "+key, nil))
		return
	}
	c.JSON(http.StatusOK, form)
}

func (h *AdminHandler) List(c *gin.Context) {
	g, ok := h.gateway(c, "AdminHandler.List")
	if !ok {
		return
	}

	rows, err := g.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": rows})
}

// mutationResponse is the contract for every successful mutation: the
// stored row plus a fresh refetch of the full collection, so clients
// never patch their copy locally.
func (h *AdminHandler) mutationResponse(c *gin.Context, status int, g registry.Gateway, row map[string]any) {
	h.invalidate(c, g.Kind())

	rows, err := g.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(status, gin.H{"record": row, "records": rows})
}

func (h *AdminHandler) Create(c *gin.Context) {
	const op = "AdminHandler.Create"

	g, ok := h.gateway(c, op)
	if !ok {
		return
	}

	var draft map[string]any
	if err := c.ShouldBindJSON(&draft); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}

	row, err := g.Create(c.Request.Context(), draft)
	if err != nil {
		writeError(c, err)
		return
	}
	h.mutationResponse(c, http.StatusCreated, g, row)
}

func (h *AdminHandler) Update(c *gin.Context) {
	const op = "AdminHandler.Update"

	g, ok := h.gateway(c, op)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "missing id", nil))
		return
	}

	var draft map[string]any
	if err := c.ShouldBindJSON(&draft); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}

	row, err := g.Update(c.Request.Context(), id, draft)
	if err != nil {
		writeError(c, err)
		return
	}
	h.mutationResponse(c, http.StatusOK, g, row)
}

func (h *AdminHandler) Delete(c *gin.Context) {
	const op = "AdminHandler.Delete"

	g, ok := h.gateway(c, op)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "missing id", nil))
		return
	}

	if err := g.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	h.mutationResponse(c, http.StatusOK, g, nil)
}
