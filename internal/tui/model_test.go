package tui

import (
	"context"
	"fmt"
	"slices"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/erpdesk/internal/pages"
	"github.com/mesh-intelligence/erpdesk/pkg/types"
)

// memStore is an in-memory types.Store.
type memStore struct {
	data map[string][]types.Record
	fail bool
}

func (s *memStore) Fetch(_ context.Context, entity string) ([]types.Record, error) {
	if s.fail {
		return nil, types.ErrFetchFailed
	}
	return slices.Clone(s.data[entity]), nil
}

func (s *memStore) Create(context.Context, string, types.Record) (string, error) {
	return "", types.ErrMutationFailed
}

func (s *memStore) Update(context.Context, string, string, types.Record) error {
	return types.ErrMutationFailed
}

func (s *memStore) Delete(_ context.Context, entity, id string) error {
	for i, r := range s.data[entity] {
		if rid, _ := r.ID(types.DefaultIDField); rid == id {
			s.data[entity] = slices.Delete(s.data[entity], i, i+1)
			return nil
		}
	}
	return types.ErrNotFound
}

func newModel(t *testing.T, orders int) (Model, *memStore) {
	t.Helper()
	store := &memStore{data: map[string][]types.Record{
		types.EntitySuppliers: {
			{"id": 1, "name": "Fournitures Dupont"},
			{"id": 2, "name": "Acme Industrie"},
		},
	}}
	states := []string{"brouillon", "confirmer"}
	for i := 1; i <= orders; i++ {
		store.data[types.EntityPurchaseOrders] = append(store.data[types.EntityPurchaseOrders], types.Record{
			"id":      i,
			"name":    fmt.Sprintf("BC-2024-%03d", i),
			"partner": (i-1)%2 + 1,
			"state":   states[(i-1)%2],
		})
	}

	page, err := pages.Lookup("bons-commande")
	require.NoError(t, err)
	list, err := (&pages.Loader{Source: store, Gateway: store}).Open(context.Background(), page, 10)
	require.NoError(t, err)
	return New(context.Background(), list), store
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestPaging(t *testing.T) {
	m, _ := newModel(t, 25)
	assert.Equal(t, 1, m.list.Controller.View().Page)
	assert.Len(t, m.table.Rows(), 10)

	m = press(t, m, "n", "right")
	v := m.list.Controller.View()
	assert.Equal(t, 3, v.Page)
	assert.Len(t, m.table.Rows(), 5)

	m = press(t, m, "n")
	assert.Equal(t, 3, m.list.Controller.View().Page, "next on the last page stays put")

	m = press(t, m, "p")
	assert.Equal(t, 2, m.list.Controller.View().Page)
	assert.Contains(t, m.View(), "Page 2/3 · 25 record(s)")
}

func TestPageSizeKeys(t *testing.T) {
	m, _ := newModel(t, 25)
	m = press(t, m, "n", "n") // page 3 of 3

	m = press(t, m, "+")
	v := m.list.Controller.View()
	assert.Equal(t, 25, v.PageSize)
	assert.Equal(t, 1, v.Page, "page index clamps to the new page count")

	m = press(t, m, "+")
	assert.Equal(t, 50, m.list.Controller.View().PageSize)
	m = press(t, m, "+")
	assert.Equal(t, 50, m.list.Controller.View().PageSize, "largest size is kept")

	m = press(t, m, "-", "-", "-", "-", "-")
	assert.Equal(t, 5, m.list.Controller.View().PageSize)
}

func TestSearchInput(t *testing.T) {
	m, _ := newModel(t, 25)

	m = press(t, m, "/", "0", "0", "7", "enter")
	v := m.list.Controller.View()
	assert.Equal(t, "007", v.SearchTerm)
	assert.Equal(t, 1, v.TotalFiltered)
	assert.False(t, m.searching)

	m, _ = newModel(t, 25)
	m = press(t, m, "/", "x", "y", "z", "esc")
	assert.Empty(t, m.list.Controller.View().SearchTerm)
	assert.Equal(t, 25, m.list.Controller.View().TotalFiltered)
}

func TestSearchByReferenceLabel(t *testing.T) {
	m, _ := newModel(t, 25)
	m = press(t, m, "/", "a", "c", "m", "e", "enter")
	assert.Equal(t, 12, m.list.Controller.View().TotalFiltered)
}

func TestSelection(t *testing.T) {
	m, _ := newModel(t, 25)

	m = press(t, m, " ", "down", " ")
	assert.Equal(t, []string{"1", "2"}, m.list.Controller.View().Selected)
	assert.Equal(t, markSelected, m.table.Rows()[0][0])

	m = press(t, m, "a")
	v := m.list.Controller.View()
	assert.True(t, v.AllVisibleSelected)
	assert.Len(t, v.Selected, 10)

	m = press(t, m, "a")
	assert.Empty(t, m.list.Controller.View().Selected)
}

func TestCycleCriterion(t *testing.T) {
	m, _ := newModel(t, 25)

	m = press(t, m, "f")
	v := m.list.Controller.View()
	assert.Equal(t, "brouillon", v.Criteria[0].Value)
	assert.Equal(t, 13, v.TotalFiltered)

	m = press(t, m, "f")
	assert.Equal(t, 12, m.list.Controller.View().TotalFiltered)

	m = press(t, m, "f", "f", "f")
	assert.Equal(t, types.AllValue, m.list.Controller.View().Criteria[0].Value)
	assert.Equal(t, 25, m.list.Controller.View().TotalFiltered)

	m = press(t, m, "f", "x")
	assert.False(t, m.list.Controller.View().Criteria[0].Active())
}

func TestDeleteSelectedAsksFirst(t *testing.T) {
	m, store := newModel(t, 12)
	m = press(t, m, " ")

	m = press(t, m, "d")
	assert.True(t, m.confirming)
	m = press(t, m, "n")
	assert.Len(t, store.data[types.EntityPurchaseOrders], 12)
	assert.Equal(t, "delete cancelled", m.status)

	m = press(t, m, "d")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	require.NotNil(t, cmd)
	m = next.(Model)

	next, _ = m.Update(cmd())
	m = next.(Model)
	assert.Len(t, store.data[types.EntityPurchaseOrders], 11)
	assert.Equal(t, 11, m.list.Controller.View().TotalFiltered)
	assert.Empty(t, m.list.Controller.View().Selected)
	assert.Equal(t, "deleted 1 record(s)", m.status)
	assert.NoError(t, m.err)
}

func TestDeleteRunsOffTheEventLoop(t *testing.T) {
	m, store := newModel(t, 12)
	m = press(t, m, " ", "d")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	require.NotNil(t, cmd)
	m = next.(Model)
	assert.Len(t, store.data[types.EntityPurchaseOrders], 12, "nothing is deleted until the command runs")
	assert.Equal(t, 12, m.list.Controller.View().TotalFiltered)
	assert.Equal(t, []string{"1"}, m.list.Controller.View().Selected)

	msg := cmd()
	done, ok := msg.(deletedMsg)
	require.True(t, ok)
	assert.Equal(t, 1, done.n)
	assert.Len(t, store.data[types.EntityPurchaseOrders], 11)
	assert.Equal(t, 12, m.list.Controller.View().TotalFiltered, "controller waits for Update")

	next, _ = m.Update(msg)
	m = next.(Model)
	assert.Equal(t, 11, m.list.Controller.View().TotalFiltered)
}

func TestDeleteFailureIsReported(t *testing.T) {
	m, store := newModel(t, 3)
	m = press(t, m, " ", "d")
	store.data[types.EntityPurchaseOrders] = store.data[types.EntityPurchaseOrders][1:]

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	m = next.(Model)
	assert.ErrorIs(t, m.err, types.ErrNotFound)
	assert.Equal(t, "deleted 0 record(s)", m.status)
}

func TestDeleteWithoutSelectionIsNoop(t *testing.T) {
	m, _ := newModel(t, 3)
	m = press(t, m, "d")
	assert.False(t, m.confirming)
}

func TestRefreshAppliesLatestOnly(t *testing.T) {
	m, store := newModel(t, 3)

	stale := m.fetch()()
	store.data[types.EntityPurchaseOrders] = store.data[types.EntityPurchaseOrders][:1]
	fresh := m.fetch()()

	next, _ := m.Update(fresh)
	m = next.(Model)
	assert.Equal(t, 1, m.list.Controller.View().TotalFiltered)

	next, _ = m.Update(stale)
	m = next.(Model)
	assert.Equal(t, 1, m.list.Controller.View().TotalFiltered, "stale fetch is dropped")
}

func TestSupersededFetchErrorIsIgnored(t *testing.T) {
	m, store := newModel(t, 3)

	store.fail = true
	failed := m.fetch()()
	store.fail = false
	fresh := m.fetch()()

	next, _ := m.Update(fresh)
	m = next.(Model)
	next, _ = m.Update(failed)
	m = next.(Model)
	assert.NoError(t, m.err)

	store.fail = true
	next, _ = m.Update(m.fetch()())
	m = next.(Model)
	assert.Error(t, m.err, "the latest fetch failing is shown")
}

func TestRefreshKeyReturnsCommand(t *testing.T) {
	m, _ := newModel(t, 3)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)
	msg := cmd()
	_, ok := msg.(fetchedMsg)
	assert.True(t, ok)
	assert.Contains(t, next.(Model).status, "refreshing")
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t, 3)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewRendersLabels(t *testing.T) {
	m, _ := newModel(t, 3)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	out := next.(Model).View()
	assert.Contains(t, out, "Bons de commande")
	assert.Contains(t, out, "Fournitures Dupont")
	assert.Contains(t, out, "BC-2024-001")
	assert.Contains(t, out, "state=all")
}
