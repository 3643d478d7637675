// Package registry maps dashboard tab keys to their entity gateways.
// The mapping is closed: construction names all seven entity kinds
// explicitly, so adding or removing a kind is a compile-time change,
// and an unknown key is a guarded lookup miss, never a panic.
package registry

import (
	"context"
	"encoding/json"

	"github.com/rakasatria/folio/internal/models"
	"github.com/rakasatria/folio/internal/schema"
	"github.com/rakasatria/folio/internal/services"
	"github.com/rakasatria/folio/internal/utils"
)

// Gateway is the type-erased per-entity surface the dashboard
// dispatches through. Drafts are field-name keyed maps; they are
// coerced against the entity's form schema before any write.
type Gateway interface {
	Kind() string
	List(ctx context.Context) ([]map[string]any, error)
	Create(ctx context.Context, draft map[string]any) (map[string]any, error)
	Update(ctx context.Context, id string, draft map[string]any) (map[string]any, error)
	Delete(ctx context.Context, id string) error
}

// Services enumerates the entity kinds the dashboard manages.
type Services struct {
	Projects     services.ProjectService
	PersonalInfo services.PersonalInfoService
	Skills       services.Resource[models.Skill]
	Stats        services.Resource[models.Stat]
	Experiences  services.Resource[models.Experience]
	Educations   services.Resource[models.Education]
	Contacts     services.ContactService
}

type Registry struct {
	gateways map[string]Gateway
}

func New(s Services) *Registry {
	r := &Registry{gateways: make(map[string]Gateway, 7)}
	r.add(newResourceGateway[models.Project]("projects", s.Projects))
	r.add(&personalInfoGateway{svc: s.PersonalInfo})
	r.add(newResourceGateway[models.Skill]("skills", s.Skills))
	r.add(newResourceGateway[models.Stat]("stats", s.Stats))
	r.add(newResourceGateway[models.Experience]("experiences", s.Experiences))
	r.add(newResourceGateway[models.Education]("educations", s.Educations))
	r.add(&contactGateway{svc: s.Contacts})
	return r
}

func (r *Registry) add(g Gateway) { r.gateways[g.Kind()] = g }

// Lookup returns (nil, false) for unknown keys; callers must guard.
func (r *Registry) Lookup(key string) (Gateway, bool) {
	g, ok := r.gateways[key]
	return g, ok
}

// Keys returns the tab keys in dashboard order.
func (r *Registry) Keys() []string { return schema.Kinds() }

// ---- generic 0..N resource adapter ----

type resourceGateway[T any] struct {
	kind string
	form schema.Form
	svc  services.Resource[T]
}

func newResourceGateway[T any](kind string, svc services.Resource[T]) *resourceGateway[T] {
	form, ok := schema.FormFor(kind)
	if !ok {
		// construction-time programming error, not a runtime path
		panic("registry: no form schema for kind " + kind)
	}
	return &resourceGateway[T]{kind: kind, form: form, svc: svc}
}

func (g *resourceGateway[T]) Kind() string { return g.kind }

func (g *resourceGateway[T]) List(ctx context.Context) ([]map[string]any, error) {
	rows, err := g.svc.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return toMaps(rows)
}

func (g *resourceGateway[T]) Create(ctx context.Context, draft map[string]any) (map[string]any, error) {
	coerced, err := g.form.CoerceDraft(draft)
	if err != nil {
		return nil, err
	}

	var row T
	if err := decodeInto(coerced, &row); err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, "Gateway.Create",
			"invalid draft for "+g.kind, err)
	}

	created, err := g.svc.Create(ctx, &row)
	if err != nil {
		return nil, err
	}
	return toMap(created)
}

// Update merges the draft over the stored row, so partial drafts keep
// every unmentioned field.
func (g *resourceGateway[T]) Update(ctx context.Context, id string, draft map[string]any) (map[string]any, error) {
	existing, err := g.svc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	base, err := toMap(existing)
	if err != nil {
		return nil, err
	}
	for k, v := range draft {
		base[k] = v
	}

	coerced, err := g.form.CoerceDraft(base)
	if err != nil {
		return nil, err
	}

	row := *existing
	if err := decodeInto(coerced, &row); err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, "Gateway.Update",
			"invalid draft for "+g.kind, err)
	}

	updated, err := g.svc.Update(ctx, id, &row)
	if err != nil {
		return nil, err
	}
	return toMap(updated)
}

func (g *resourceGateway[T]) Delete(ctx context.Context, id string) error {
	return g.svc.Delete(ctx, id)
}

// ---- personal info: singleton, upsert keyed on owner ----

type personalInfoGateway struct {
	svc services.PersonalInfoService
}

func (g *personalInfoGateway) Kind() string { return "personal_info" }

func (g *personalInfoGateway) List(ctx context.Context) ([]map[string]any, error) {
	p, err := g.svc.Get(ctx)
	if err != nil {
		if utils.IsCode(err, utils.CodeNotFound) {
			return []map[string]any{}, nil
		}
		return nil, err
	}
	m, err := toMap(p)
	if err != nil {
		return nil, err
	}
	return []map[string]any{m}, nil
}

func (g *personalInfoGateway) Create(ctx context.Context, draft map[string]any) (map[string]any, error) {
	return g.upsert(ctx, draft)
}

// Update ignores the row id: the singleton is keyed on the owner.
func (g *personalInfoGateway) Update(ctx context.Context, _ string, draft map[string]any) (map[string]any, error) {
	return g.upsert(ctx, draft)
}

func (g *personalInfoGateway) upsert(ctx context.Context, draft map[string]any) (map[string]any, error) {
	form, _ := schema.FormFor("personal_info")

	base := map[string]any{}
	var row models.PersonalInfo
	if existing, err := g.svc.Get(ctx); err == nil {
		if base, err = toMap(existing); err != nil {
			return nil, err
		}
		row = *existing
	} else if !utils.IsCode(err, utils.CodeNotFound) {
		return nil, err
	}

	for k, v := range draft {
		base[k] = v
	}

	coerced, err := form.CoerceDraft(base)
	if err != nil {
		return nil, err
	}
	if err := decodeInto(coerced, &row); err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, "Gateway.Update",
			"invalid draft for personal_info", err)
	}

	saved, err := g.svc.Upsert(ctx, &row)
	if err != nil {
		return nil, err
	}
	return toMap(saved)
}

func (g *personalInfoGateway) Delete(ctx context.Context, _ string) error {
	return utils.E(utils.CodeInvalidArgument, "Gateway.Delete",
		"personal_info cannot be deleted from the dashboard", nil)
}

// ---- contact messages: list/delete only from the dashboard ----

type contactGateway struct {
	svc services.ContactService
}

func (g *contactGateway) Kind() string { return "contacts" }

func (g *contactGateway) List(ctx context.Context) ([]map[string]any, error) {
	rows, err := g.svc.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return toMaps(rows)
}

func (g *contactGateway) Create(ctx context.Context, _ map[string]any) (map[string]any, error) {
	return nil, utils.E(utils.CodeInvalidArgument, "Gateway.Create",
		"contact messages are created from the public site only", nil)
}

func (g *contactGateway) Update(ctx context.Context, _ string, _ map[string]any) (map[string]any, error) {
	return nil, utils.E(utils.CodeInvalidArgument, "Gateway.Update",
		"contact messages cannot be edited", nil)
}

func (g *contactGateway) Delete(ctx context.Context, id string) error {
	return g.svc.Delete(ctx, id)
}

// ---- json plumbing ----

func toMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func toMaps[T any](rows []T) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(rows))
	for i := range rows {
		m, err := toMap(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func decodeInto(m map[string]any, dst any) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}
