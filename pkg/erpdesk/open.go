// Package erpdesk opens the data source and mutation gateway a list page
// runs against, keeping the backend implementations internal.
package erpdesk

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/mesh-intelligence/erpdesk/internal/rest"
	"github.com/mesh-intelligence/erpdesk/internal/sqlite"
	"github.com/mesh-intelligence/erpdesk/pkg/types"
)

// Backend is an opened store. Close releases it.
type Backend interface {
	types.Store
	Close() error
}

// Seeder is implemented by backends that can load demo data.
type Seeder interface {
	Seed(ctx context.Context) error
}

// Options carries the collaborators a backend may need.
type Options struct {
	// Session authorizes REST requests; ignored by the local store.
	Session *types.Session

	// Logger receives backend diagnostics.
	Logger *log.Logger

	// HTTPClient replaces the REST client's default.
	HTTPClient *http.Client
}

// Open validates cfg and opens the backend it names.
//
// Example:
//
//	b, err := erpdesk.Open(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: "/var/lib/erpdesk",
//	}, erpdesk.Options{})
//	defer b.Close()
func Open(cfg types.Config, opts Options) (Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case types.BackendSQLite:
		b := sqlite.NewBackend()
		if err := b.Attach(cfg); err != nil {
			return nil, fmt.Errorf("attach local store: %w", err)
		}
		return localBackend{b}, nil

	case types.BackendREST:
		ropts := []rest.Option{rest.WithSession(opts.Session)}
		if opts.Logger != nil {
			ropts = append(ropts, rest.WithLogger(opts.Logger))
		}
		if opts.HTTPClient != nil {
			ropts = append(ropts, rest.WithHTTPClient(opts.HTTPClient))
		}
		c, err := rest.New(cfg.APIURL, ropts...)
		if err != nil {
			return nil, err
		}
		return remoteBackend{c}, nil
	}
	return nil, types.ErrBackendUnknown
}

type localBackend struct {
	*sqlite.Backend
}

func (b localBackend) Close() error { return b.Detach() }

type remoteBackend struct {
	*rest.Client
}

func (remoteBackend) Close() error { return nil }
