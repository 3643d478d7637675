package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rakasatria/folio/internal/registry"
)

type fakeGateway struct {
	kind string
	rows []map[string]any

	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int

	listErr   error
	createErr error
	updateErr error
	deleteErr error
}

func (g *fakeGateway) Kind() string { return g.kind }

func (g *fakeGateway) List(context.Context) ([]map[string]any, error) {
	g.listCalls++
	if g.listErr != nil {
		return nil, g.listErr
	}
	out := make([]map[string]any, len(g.rows))
	copy(out, g.rows)
	return out, nil
}

func (g *fakeGateway) Create(_ context.Context, draft map[string]any) (map[string]any, error) {
	g.createCalls++
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.rows = append(g.rows, draft)
	return draft, nil
}

func (g *fakeGateway) Update(_ context.Context, id string, draft map[string]any) (map[string]any, error) {
	g.updateCalls++
	if g.updateErr != nil {
		return nil, g.updateErr
	}
	for i, r := range g.rows {
		if r["id"] == id {
			g.rows[i] = draft
		}
	}
	return draft, nil
}

func (g *fakeGateway) Delete(_ context.Context, id string) error {
	g.deleteCalls++
	if g.deleteErr != nil {
		return g.deleteErr
	}
	kept := g.rows[:0]
	for _, r := range g.rows {
		if r["id"] != id {
			kept = append(kept, r)
		}
	}
	g.rows = kept
	return nil
}

type fakeResolver map[string]*fakeGateway

func (r fakeResolver) Lookup(key string) (registry.Gateway, bool) {
	g, ok := r[key]
	return g, ok
}

func newLoaded(t *testing.T, g *fakeGateway) (*Controller, *[]Notice) {
	t.Helper()

	notices := &[]Notice{}
	ctrl := NewController(fakeResolver{g.kind: g}, func(n Notice) {
		*notices = append(*notices, n)
	})
	ctrl.SwitchTab(context.Background(), g.kind)
	require.Equal(t, PhaseLoaded, ctrl.Phase())
	g.listCalls = 0
	return ctrl, notices
}

func TestSwitchTabLoads(t *testing.T) {
	g := &fakeGateway{kind: "projects", rows: []map[string]any{{"id": "a"}}}
	ctrl, _ := newLoaded(t, g)

	assert.Equal(t, "projects", ctrl.Tab())
	assert.Len(t, ctrl.Records(), 1)
}

func TestSwitchTabUnknownKey(t *testing.T) {
	g := &fakeGateway{kind: "projects"}
	ctrl, notices := newLoaded(t, g)

	ctrl.SwitchTab(context.Background(), "widgets")

	assert.Equal(t, "projects", ctrl.Tab(), "unknown tab is a guarded miss")
	require.Len(t, *notices, 1)
	assert.Equal(t, LevelError, (*notices)[0].Level)
}

func TestSwitchTabDiscardsPreviousData(t *testing.T) {
	a := &fakeGateway{kind: "projects", rows: []map[string]any{{"id": "a"}}}
	b := &fakeGateway{kind: "skills", listErr: errors.New("db down")}

	ctrl := NewController(fakeResolver{"projects": a, "skills": b}, nil)
	ctrl.SwitchTab(context.Background(), "projects")
	require.Len(t, ctrl.Records(), 1)

	ctrl.SwitchTab(context.Background(), "skills")
	assert.Empty(t, ctrl.Records(), "switching tabs discards the old list even when the load fails")
	assert.Equal(t, PhaseLoaded, ctrl.Phase())
}

func TestCreateFlow(t *testing.T) {
	g := &fakeGateway{kind: "projects"}
	ctrl, _ := newLoaded(t, g)

	ctrl.BeginCreate()
	require.Equal(t, PhaseCreating, ctrl.Phase())

	ctrl.SetField("id", "n1")
	ctrl.SetField("title", "new")
	ctrl.Submit(context.Background())

	assert.Equal(t, PhaseLoaded, ctrl.Phase())
	assert.Equal(t, 1, g.createCalls)
	assert.Equal(t, 1, g.listCalls, "exactly one refetch per successful mutation")
	assert.Nil(t, ctrl.Draft())
	assert.Len(t, ctrl.Records(), 1)
}

func TestEditFlowPrefillsDraft(t *testing.T) {
	g := &fakeGateway{kind: "projects", rows: []map[string]any{{"id": "a", "title": "old"}}}
	ctrl, _ := newLoaded(t, g)

	ctrl.BeginEdit("a")
	require.Equal(t, PhaseEditing, ctrl.Phase())
	assert.Equal(t, "old", ctrl.Draft()["title"])

	ctrl.SetField("title", "new")
	assert.Equal(t, "old", ctrl.Records()[0]["title"], "records stay server-confirmed while editing")

	ctrl.Submit(context.Background())
	assert.Equal(t, 1, g.updateCalls)
	assert.Equal(t, 1, g.listCalls)
	assert.Equal(t, "new", ctrl.Records()[0]["title"])
}

func TestEditUnknownRecord(t *testing.T) {
	g := &fakeGateway{kind: "projects", rows: []map[string]any{{"id": "a"}}}
	ctrl, notices := newLoaded(t, g)

	ctrl.BeginEdit("missing")
	assert.Equal(t, PhaseLoaded, ctrl.Phase())
	require.Len(t, *notices, 1)
}

func TestSubmitFailureKeepsFormOpen(t *testing.T) {
	g := &fakeGateway{kind: "projects", createErr: errors.New("boom")}
	ctrl, notices := newLoaded(t, g)

	ctrl.BeginCreate()
	ctrl.SetField("title", "new")
	ctrl.Submit(context.Background())

	assert.Equal(t, PhaseCreating, ctrl.Phase(), "failed submit keeps the form open")
	assert.Equal(t, "new", ctrl.Draft()["title"])
	assert.Equal(t, 0, g.listCalls, "no refetch after a failed mutation")
	require.Len(t, *notices, 1)
	assert.Equal(t, LevelError, (*notices)[0].Level)
	assert.Contains(t, (*notices)[0].Message, "projects")
}

func TestCancelFormDiscardsDraft(t *testing.T) {
	g := &fakeGateway{kind: "projects"}
	ctrl, _ := newLoaded(t, g)

	ctrl.BeginCreate()
	ctrl.SetField("title", "typed")
	ctrl.CancelForm()

	assert.Equal(t, PhaseLoaded, ctrl.Phase())
	assert.Nil(t, ctrl.Draft())
	assert.Equal(t, 0, g.createCalls)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	g := &fakeGateway{kind: "projects", rows: []map[string]any{{"id": "a"}}}
	ctrl, _ := newLoaded(t, g)

	ctrl.RequestDelete("a")
	require.Equal(t, PhaseConfirmingDelete, ctrl.Phase())
	assert.Equal(t, 0, g.deleteCalls, "requesting delete never calls the gateway")

	ctrl.CancelDelete()
	assert.Equal(t, PhaseLoaded, ctrl.Phase())
	assert.Equal(t, 0, g.deleteCalls, "cancelled delete never calls the gateway")
	assert.Len(t, ctrl.Records(), 1)
}

func TestConfirmDelete(t *testing.T) {
	g := &fakeGateway{kind: "projects", rows: []map[string]any{{"id": "a"}}}
	ctrl, _ := newLoaded(t, g)

	ctrl.RequestDelete("a")
	ctrl.ConfirmDelete(context.Background())

	assert.Equal(t, PhaseLoaded, ctrl.Phase())
	assert.Equal(t, 1, g.deleteCalls)
	assert.Equal(t, 1, g.listCalls)
	assert.Empty(t, ctrl.Records())
}

func TestConfirmDeleteFailure(t *testing.T) {
	g := &fakeGateway{kind: "projects", rows: []map[string]any{{"id": "a"}}, deleteErr: errors.New("boom")}
	ctrl, notices := newLoaded(t, g)

	ctrl.RequestDelete("a")
	ctrl.ConfirmDelete(context.Background())

	assert.Equal(t, PhaseLoaded, ctrl.Phase())
	assert.Equal(t, 0, g.listCalls, "no refetch after a failed delete")
	assert.Len(t, ctrl.Records(), 1)
	require.Len(t, *notices, 1)
}

func TestRefetchFailureKeepsPreviousList(t *testing.T) {
	g := &fakeGateway{kind: "projects", rows: []map[string]any{{"id": "a"}}}
	ctrl, notices := newLoaded(t, g)

	g.listErr = errors.New("db down")
	ctrl.BeginCreate()
	ctrl.SetField("id", "n1")
	ctrl.Submit(context.Background())

	assert.Equal(t, PhaseLoaded, ctrl.Phase())
	assert.Len(t, ctrl.Records(), 1, "failed refetch keeps the previous list")

	// success notice for the mutation plus an error notice for the refetch
	require.Len(t, *notices, 2)
	assert.Equal(t, LevelInfo, (*notices)[0].Level)
	assert.Equal(t, LevelError, (*notices)[1].Level)
}
