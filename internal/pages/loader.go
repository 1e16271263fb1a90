package pages

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/mesh-intelligence/erpdesk/internal/logging"
	"github.com/mesh-intelligence/erpdesk/pkg/listview"
	"github.com/mesh-intelligence/erpdesk/pkg/types"
)

// errReadOnly is returned by mutations when the loader has no gateway.
var errReadOnly = fmt.Errorf("no mutation gateway configured: %w", types.ErrMutationFailed)

// Loader opens list pages against a data source and mutation gateway.
// Gateway may be nil for read-only use.
type Loader struct {
	Source  types.Source
	Gateway types.Gateway
	Logger  *log.Logger
}

// List is one opened page: its controller plus the fetch bookkeeping that
// keeps the controller in step with the backend. The controller is owned by
// a single goroutine; only Fetch may run concurrently with it.
type List struct {
	Page       Page
	Controller *listview.Controller

	loader *Loader
	seq    Sequencer
}

// Snapshot is the result of one fetch, applied with List.Apply.
type Snapshot struct {
	Token      uint64
	Records    []types.Record
	References map[string][]types.Record
}

// FetchError is a failed fetch together with the sequence token it held,
// so callers can tell whether a newer fetch has superseded it.
type FetchError struct {
	Token uint64
	Err   error
}

func (e *FetchError) Error() string { return e.Err.Error() }

func (e *FetchError) Unwrap() error { return e.Err }

// Open builds the page controller and performs the initial fetch.
func (l *Loader) Open(ctx context.Context, page Page, pageSize int) (*List, error) {
	if l.Source == nil {
		return nil, types.ErrStoreDetached
	}
	if l.Logger == nil {
		l.Logger = logging.Discard()
	}
	list := &List{
		Page:       page,
		Controller: listview.New(page.Options(pageSize)),
		loader:     l,
	}
	if err := list.Refresh(ctx); err != nil {
		return nil, err
	}
	return list, nil
}

// Fetch reads the primary collection, then each reference collection in
// turn. A failed primary fetch is returned as a *FetchError; a failed
// reference fetch is logged and leaves that collection empty. Fetch does not
// touch the controller, so it may run on another goroutine.
func (ls *List) Fetch(ctx context.Context) (*Snapshot, error) {
	token := ls.seq.Begin()
	logger := ls.loader.Logger.With("page", ls.Page.Name)

	records, err := ls.loader.Source.Fetch(ctx, ls.Page.Entity)
	if err != nil {
		return nil, &FetchError{Token: token, Err: fmt.Errorf("fetch %s: %w", ls.Page.Entity, err)}
	}

	snap := &Snapshot{
		Token:      token,
		Records:    records,
		References: make(map[string][]types.Record, len(ls.Page.References)),
	}
	for _, ref := range ls.Page.References {
		refs, err := ls.loader.Source.Fetch(ctx, ref.Entity)
		if err != nil {
			if ctx.Err() != nil {
				return nil, &FetchError{Token: token, Err: fmt.Errorf("fetch %s: %w", ref.Entity, ctx.Err())}
			}
			logger.Warn("reference fetch failed", "reference", ref.Name, "err", err)
			refs = []types.Record{}
		}
		snap.References[ref.Name] = refs
	}
	logger.Debug("fetched page", "records", len(records), "token", token)
	return snap, nil
}

// Apply installs the snapshot into the controller unless a newer fetch has
// begun since it was taken. It reports whether the snapshot was applied.
func (ls *List) Apply(snap *Snapshot) bool {
	if snap == nil || !ls.seq.Current(snap.Token) {
		if snap != nil {
			ls.loader.Logger.Debug("dropping stale response", "page", ls.Page.Name, "token", snap.Token)
		}
		return false
	}
	for _, ref := range ls.Page.References {
		ls.Controller.SetReferenceCollection(ref.Name, snap.References[ref.Name])
	}
	ls.Controller.SetRecords(snap.Records)
	return true
}

// Current reports whether token belongs to the most recent fetch.
func (ls *List) Current(token uint64) bool {
	return ls.seq.Current(token)
}

// Refresh fetches and applies in one step.
func (ls *List) Refresh(ctx context.Context) error {
	snap, err := ls.Fetch(ctx)
	if err != nil {
		return err
	}
	ls.Apply(snap)
	return nil
}

// Create stores a new record and refetches. On failure the controller is
// left untouched.
func (ls *List) Create(ctx context.Context, rec types.Record) (string, error) {
	if ls.loader.Gateway == nil {
		return "", errReadOnly
	}
	id, err := ls.loader.Gateway.Create(ctx, ls.Page.Entity, rec)
	if err != nil {
		return "", err
	}
	return id, ls.Refresh(ctx)
}

// Update replaces a record and refetches.
func (ls *List) Update(ctx context.Context, id string, rec types.Record) error {
	if ls.loader.Gateway == nil {
		return errReadOnly
	}
	if err := ls.loader.Gateway.Update(ctx, ls.Page.Entity, id, rec); err != nil {
		return err
	}
	return ls.Refresh(ctx)
}

// Delete removes a record and refetches.
func (ls *List) Delete(ctx context.Context, id string) error {
	if ls.loader.Gateway == nil {
		return errReadOnly
	}
	if err := ls.loader.Gateway.Delete(ctx, ls.Page.Entity, id); err != nil {
		return err
	}
	return ls.Refresh(ctx)
}

// DeleteSelected deletes the selected records in selection order, stopping
// at the first failure, then refetches once. It returns how many records
// were deleted. The refetch prunes the deleted identifiers from the
// selection; a failed one stays selected.
func (ls *List) DeleteSelected(ctx context.Context) (int, error) {
	if ls.loader.Gateway == nil {
		return 0, errReadOnly
	}
	ids := ls.Controller.View().Selected
	if len(ids) == 0 {
		return 0, nil
	}

	deleted, delErr := ls.DeleteIDs(ctx, ids)
	if deleted == 0 {
		return 0, delErr
	}
	if err := ls.Refresh(ctx); err != nil {
		return deleted, errors.Join(delErr, err)
	}
	return deleted, delErr
}

// DeleteIDs deletes ids in order through the gateway, stopping at the first
// failure, and returns how many were deleted. It neither refetches nor
// touches the controller, so it may run on another goroutine.
func (ls *List) DeleteIDs(ctx context.Context, ids []string) (int, error) {
	if ls.loader.Gateway == nil {
		return 0, errReadOnly
	}
	for i, id := range ids {
		if err := ls.loader.Gateway.Delete(ctx, ls.Page.Entity, id); err != nil {
			return i, fmt.Errorf("delete %s/%s: %w", ls.Page.Entity, id, err)
		}
	}
	return len(ids), nil
}
