package types

import "errors"

// Config holds backend selection and parameters for opening a data source.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
	APIURL  string `json:"api_url,omitempty" yaml:"api_url,omitempty"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
	BackendREST   = "rest"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrAPIURLEmpty    = errors.New("api_url must be set for the rest backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
	BackendREST:   true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.Backend == BackendREST && c.APIURL == "" {
		return ErrAPIURLEmpty
	}
	return nil
}
