package pages

import (
	"slices"

	"github.com/mesh-intelligence/erpdesk/pkg/listview"
	"github.com/mesh-intelligence/erpdesk/pkg/types"
)

// CriterionValues returns the values a renderer cycles through for def:
// the declared values, or else the distinct values present in records,
// sorted. types.AllValue always comes first.
func CriterionValues(def listview.CriterionDef, records []types.Record) []string {
	values := slices.Clone(def.Values)
	if len(values) == 0 {
		seen := make(map[string]struct{})
		for _, r := range records {
			v := r.String(def.Field)
			if v == "" {
				continue
			}
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				values = append(values, v)
			}
		}
		slices.Sort(values)
	}
	return append([]string{types.AllValue}, values...)
}

// NextValue returns the value after current in values, wrapping around.
// An unknown or empty current starts from the first value.
func NextValue(values []string, current string) string {
	if len(values) == 0 {
		return ""
	}
	if current == "" {
		current = types.AllValue
	}
	i := slices.Index(values, current)
	return values[(i+1)%len(values)]
}
