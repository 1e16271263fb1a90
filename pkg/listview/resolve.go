package listview

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mesh-intelligence/erpdesk/pkg/types"
)

// NotAvailable is the label shown for an identifier that resolves to nothing.
const NotAvailable = "N/A"

// DefaultLabelCacheSize bounds the number of memoized labels per Resolver.
const DefaultLabelCacheSize = 1024

// labelFields are tried in order; the first non-empty one is the label.
var labelFields = []string{"name", "label", "title", "libelle", "code"}

// ResolveLabel returns the display label of the record in collection whose
// identifier equals id, or NotAvailable when id is empty or unmatched.
// A nested object carrying its own "id" is accepted as the identifier.
func ResolveLabel(collection []types.Record, id any) string {
	key := referenceID(id)
	if key == "" {
		return NotAvailable
	}
	for _, r := range collection {
		if rid, ok := r.ID(types.DefaultIDField); ok && rid == key {
			return recordLabel(r)
		}
	}
	return NotAvailable
}

// referenceID extracts the identifier a foreign field points at.
func referenceID(v any) string {
	switch x := v.(type) {
	case map[string]any:
		return types.FormatValue(x[types.DefaultIDField])
	case types.Record:
		return types.FormatValue(x[types.DefaultIDField])
	default:
		return types.FormatValue(v)
	}
}

func recordLabel(r types.Record) string {
	for _, f := range labelFields {
		if s := r.String(f); s != "" {
			return s
		}
	}
	return NotAvailable
}

type labelKey struct {
	collection string
	id         string
}

// Resolver holds named reference collections and memoizes resolved labels.
// Replacing a collection purges its memoized labels. The result is always
// what ResolveLabel would return.
type Resolver struct {
	collections map[string][]types.Record
	labels      *lru.Cache[labelKey, string]
}

// NewResolver creates a Resolver memoizing up to size labels. A
// non-positive size selects DefaultLabelCacheSize.
func NewResolver(size int) *Resolver {
	if size <= 0 {
		size = DefaultLabelCacheSize
	}
	labels, err := lru.New[labelKey, string](size)
	if err != nil {
		// lru.New only fails for a non-positive size.
		panic(err)
	}
	return &Resolver{
		collections: make(map[string][]types.Record),
		labels:      labels,
	}
}

// SetCollection replaces the named reference collection. Malformed payloads
// are stored as empty collections.
func (r *Resolver) SetCollection(name string, payload any) {
	r.collections[name] = Normalize(payload)
	for _, key := range r.labels.Keys() {
		if key.collection == name {
			r.labels.Remove(key)
		}
	}
}

// Collection returns the named reference collection, or nil.
func (r *Resolver) Collection(name string) []types.Record {
	return r.collections[name]
}

// Len returns the number of collections loaded.
func (r *Resolver) Len() int {
	return len(r.collections)
}

// Label resolves id against the named collection.
func (r *Resolver) Label(name string, id any) string {
	key := labelKey{collection: name, id: referenceID(id)}
	if key.id == "" {
		return NotAvailable
	}
	if label, ok := r.labels.Get(key); ok {
		return label
	}
	label := ResolveLabel(r.collections[name], key.id)
	r.labels.Add(key, label)
	return label
}
