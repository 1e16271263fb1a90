package pages

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/mesh-intelligence/erpdesk/pkg/types"
)

var errBoom = errors.New("boom")

// fakeStore is an in-memory types.Store that can be told to fail.
type fakeStore struct {
	data       map[string][]types.Record
	failFetch  map[string]bool
	failDelete map[string]bool
	failCreate bool
	fetches    []string
	deletes    []string
	nextID     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		data:       make(map[string][]types.Record),
		failFetch:  make(map[string]bool),
		failDelete: make(map[string]bool),
		nextID:     100,
	}
}

func (f *fakeStore) Fetch(_ context.Context, entity string) ([]types.Record, error) {
	f.fetches = append(f.fetches, entity)
	if f.failFetch[entity] {
		return nil, errBoom
	}
	return slices.Clone(f.data[entity]), nil
}

func (f *fakeStore) Create(_ context.Context, entity string, rec types.Record) (string, error) {
	if f.failCreate {
		return "", fmt.Errorf("create: %w", types.ErrMutationFailed)
	}
	rec = rec.Clone()
	id, ok := rec.ID(types.DefaultIDField)
	if !ok {
		f.nextID++
		id = fmt.Sprint(f.nextID)
		rec[types.DefaultIDField] = id
	}
	f.data[entity] = append(f.data[entity], rec)
	return id, nil
}

func (f *fakeStore) Update(_ context.Context, entity, id string, rec types.Record) error {
	for i, r := range f.data[entity] {
		if rid, _ := r.ID(types.DefaultIDField); rid == id {
			rec = rec.Clone()
			rec[types.DefaultIDField] = r[types.DefaultIDField]
			f.data[entity][i] = rec
			return nil
		}
	}
	return types.ErrNotFound
}

func (f *fakeStore) Delete(_ context.Context, entity, id string) error {
	f.deletes = append(f.deletes, id)
	if f.failDelete[id] {
		return fmt.Errorf("server said no: %w", types.ErrMutationFailed)
	}
	recs := f.data[entity]
	for i, r := range recs {
		if rid, _ := r.ID(types.DefaultIDField); rid == id {
			f.data[entity] = slices.Delete(recs, i, i+1)
			return nil
		}
	}
	return types.ErrNotFound
}

// purchaseOrders seeds n orders cycling through four suppliers.
func (f *fakeStore) purchaseOrders(n int) {
	states := []string{"brouillon", "confirmer", "recu", "annule"}
	for i := 1; i <= n; i++ {
		f.data[types.EntityPurchaseOrders] = append(f.data[types.EntityPurchaseOrders], types.Record{
			"id":      float64(i),
			"name":    fmt.Sprintf("PO-%03d", i),
			"partner": float64((i-1)%4 + 1),
			"state":   states[(i-1)%4],
		})
	}
	f.data[types.EntitySuppliers] = []types.Record{
		{"id": float64(1), "name": "Fournitures Dupont"},
		{"id": float64(2), "name": "Acme Industrie"},
		{"id": float64(3), "name": "Papeterie du Cap-Vert"},
		{"id": float64(4), "name": "Bureau Express"},
	}
}
