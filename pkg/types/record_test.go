package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "BC-2024-001", "BC-2024-001"},
		{"integral float from JSON", float64(7), "7"},
		{"fractional float", 1.25, "1.25"},
		{"negative integral float", float64(-3), "-3"},
		{"int", 42, "42"},
		{"int64", int64(9), "9"},
		{"uint8", uint8(5), "5"},
		{"bool", true, "true"},
		{"json number", json.Number("12"), "12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}

func TestRecordID(t *testing.T) {
	r := Record{"id": float64(12), "code": "FR", "empty": ""}

	id, ok := r.ID("")
	assert.True(t, ok, "empty field name falls back to id")
	assert.Equal(t, "12", id)

	id, ok = r.ID("code")
	assert.True(t, ok)
	assert.Equal(t, "FR", id)

	_, ok = r.ID("empty")
	assert.False(t, ok)

	_, ok = r.ID("missing")
	assert.False(t, ok)
}

func TestRecordClone(t *testing.T) {
	r := Record{"id": 1, "name": "Acme"}
	c := r.Clone()
	c["name"] = "Changed"
	assert.Equal(t, "Acme", r["name"], "clone must not alias the original")
}

func TestCriterionActive(t *testing.T) {
	assert.False(t, Criterion{Field: "state"}.Active())
	assert.False(t, Criterion{Field: "state", Value: AllValue}.Active())
	assert.True(t, Criterion{Field: "state", Value: "confirmer"}.Active())
}
