package listview

import "github.com/mesh-intelligence/erpdesk/pkg/types"

// Normalize coerces a fetched payload into a record slice. Slices of
// records, of maps, or of untyped values holding maps are accepted; elements
// that are not maps are dropped. Any other payload, such as an error object
// returned in place of a list, yields an empty collection.
func Normalize(payload any) []types.Record {
	switch p := payload.(type) {
	case []types.Record:
		out := make([]types.Record, 0, len(p))
		for _, r := range p {
			if r != nil {
				out = append(out, r)
			}
		}
		return out
	case []map[string]any:
		out := make([]types.Record, 0, len(p))
		for _, m := range p {
			if m != nil {
				out = append(out, types.Record(m))
			}
		}
		return out
	case []any:
		out := make([]types.Record, 0, len(p))
		for _, v := range p {
			if r, ok := asRecord(v); ok {
				out = append(out, r)
			}
		}
		return out
	default:
		return []types.Record{}
	}
}

func asRecord(v any) (types.Record, bool) {
	switch m := v.(type) {
	case types.Record:
		return m, m != nil
	case map[string]any:
		return types.Record(m), m != nil
	default:
		return nil, false
	}
}
