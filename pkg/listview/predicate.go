package listview

import (
	"strings"

	"github.com/mesh-intelligence/erpdesk/pkg/types"
)

// SearchField names a record field tested by the free-text search. When Ref
// is set the field holds a foreign identifier and the search runs against
// the label resolved from the Ref reference collection.
type SearchField struct {
	Field string
	Ref   string
}

// Predicate reports whether a record belongs to the filtered collection.
type Predicate func(types.Record) bool

// BuildPredicate combines the free-text search and the criteria into one
// predicate. An empty term matches everything; otherwise a record matches
// when any search field contains the term, ignoring case. Each active
// criterion must also match exactly. refs may be nil when no search field
// carries a Ref.
func BuildPredicate(term string, fields []SearchField, criteria []types.Criterion, refs *Resolver) Predicate {
	needle := strings.ToLower(strings.TrimSpace(term))

	active := make([]types.Criterion, 0, len(criteria))
	for _, c := range criteria {
		if c.Active() {
			active = append(active, c)
		}
	}

	searchFields := append([]SearchField(nil), fields...)

	return func(r types.Record) bool {
		if r == nil {
			return false
		}
		for _, c := range active {
			if r.String(c.Field) != c.Value {
				return false
			}
		}
		if needle == "" {
			return true
		}
		for _, f := range searchFields {
			if strings.Contains(strings.ToLower(fieldText(r, f, refs)), needle) {
				return true
			}
		}
		return false
	}
}

func fieldText(r types.Record, f SearchField, refs *Resolver) string {
	if f.Ref != "" && refs != nil {
		return refs.Label(f.Ref, r[f.Field])
	}
	return r.String(f.Field)
}

// Filter returns the records matching pred, in order, as a new slice.
func Filter(records []types.Record, pred Predicate) []types.Record {
	out := make([]types.Record, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}
