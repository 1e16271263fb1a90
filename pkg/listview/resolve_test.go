package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/erpdesk/pkg/types"
)

func suppliers() []types.Record {
	return []types.Record{
		{"id": float64(1), "name": "Fournitures Dupont"},
		{"id": float64(2), "name": "Acme"},
		{"id": float64(3), "code": "ZX"},
		{"id": float64(4)},
	}
}

func TestResolveLabel(t *testing.T) {
	tests := []struct {
		name string
		id   any
		want string
	}{
		{"numeric id", float64(1), "Fournitures Dupont"},
		{"string id matches numeric", "2", "Acme"},
		{"falls back to code", 3, "ZX"},
		{"record without label", 4, NotAvailable},
		{"unknown id", 99, NotAvailable},
		{"nil id", nil, NotAvailable},
		{"empty id", "", NotAvailable},
		{"nested object", map[string]any{"id": float64(2), "name": "stale"}, "Acme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveLabel(suppliers(), tt.id))
		})
	}
}

func TestResolveLabelEmptyCollection(t *testing.T) {
	assert.Equal(t, NotAvailable, ResolveLabel(nil, 1))
}

func TestResolverMatchesResolveLabel(t *testing.T) {
	r := NewResolver(2)
	r.SetCollection("suppliers", suppliers())

	for _, id := range []any{1, "2", 3, 4, 99, nil} {
		assert.Equal(t, ResolveLabel(suppliers(), id), r.Label("suppliers", id))
		// Second lookup hits the memo and must agree.
		assert.Equal(t, ResolveLabel(suppliers(), id), r.Label("suppliers", id))
	}
	assert.Equal(t, NotAvailable, r.Label("currencies", 1), "unknown collection")
}

func TestResolverReplaceCollection(t *testing.T) {
	r := NewResolver(0)
	r.SetCollection("suppliers", suppliers())
	assert.Equal(t, "Acme", r.Label("suppliers", 2))

	r.SetCollection("suppliers", []types.Record{{"id": 2, "name": "Acme SARL"}})
	assert.Equal(t, "Acme SARL", r.Label("suppliers", 2), "memoized label must not survive a reload")
	assert.Equal(t, 1, r.Len())
}

func TestResolverReplacePurgesOnlyThatCollection(t *testing.T) {
	r := NewResolver(0)
	r.SetCollection("suppliers", suppliers())
	r.SetCollection("currencies", []types.Record{{"id": "EUR", "name": "Euro"}})
	r.Label("suppliers", 1)
	r.Label("suppliers", 2)
	r.Label("currencies", "EUR")
	require.Equal(t, 3, r.labels.Len())

	r.SetCollection("suppliers", suppliers())
	assert.Equal(t, []labelKey{{collection: "currencies", id: "EUR"}}, r.labels.Keys())
}

func TestResolverMalformedCollection(t *testing.T) {
	r := NewResolver(0)
	r.SetCollection("suppliers", map[string]any{"error": "boom"})
	assert.Empty(t, r.Collection("suppliers"))
	assert.Equal(t, NotAvailable, r.Label("suppliers", 1))
}
