package types

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// DefaultIDField is the identifier field used when a page does not name one.
const DefaultIDField = "id"

// AllValue is the criterion value that places no constraint on a field.
const AllValue = "all"

// Record is one business entity (a purchase order, an account, a language)
// as an opaque field map. Records handed to the list engine are read-only
// snapshots; only a Gateway creates, updates, or deletes them.
type Record map[string]any

// ID returns the record identifier stored in field, normalized with
// FormatValue. The second result is false when the field is absent or empty.
func (r Record) ID(field string) (string, bool) {
	if field == "" {
		field = DefaultIDField
	}
	v, ok := r[field]
	if !ok {
		return "", false
	}
	id := FormatValue(v)
	return id, id != ""
}

// String returns the value of field normalized with FormatValue.
func (r Record) String(field string) string {
	return FormatValue(r[field])
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// FormatValue renders a field value as the string the UI compares against.
// Values decoded from JSON arrive as float64, while filter inputs and
// identifiers typed by a user are strings, so integral numbers are rendered
// without a fractional part: 7.0 and "7" compare equal.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return formatFloat(x, 64)
	case float32:
		return formatFloat(float64(x), 32)
	case int:
		return strconv.Itoa(x)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case json.Number:
		return x.String()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(f float64, bits int) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

// Criterion is a named discrete-field filter: records match when the
// field's formatted value equals Value. An empty Value or AllValue places no
// constraint.
type Criterion struct {
	Name  string `json:"name" yaml:"name"`
	Field string `json:"field" yaml:"field"`
	Value string `json:"value" yaml:"value"`
}

// Active reports whether the criterion constrains the result set.
func (c Criterion) Active() bool {
	return c.Value != "" && c.Value != AllValue
}
