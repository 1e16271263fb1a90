// Root command and global flags for the erpdesk CLI.
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/erpdesk/internal/logging"
	"github.com/mesh-intelligence/erpdesk/internal/paths"
	"github.com/mesh-intelligence/erpdesk/internal/session"
	"github.com/mesh-intelligence/erpdesk/pkg/erpdesk"
	"github.com/mesh-intelligence/erpdesk/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// app holds the global flags and the state PersistentPreRunE prepares for
// every subcommand.
type app struct {
	flagConfigDir string
	flagDataDir   string
	flagBackend   string
	flagAPIURL    string
	flagLogLevel  string
	flagJSON      bool

	configDir string
	cfg       *viper.Viper
	logger    *log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "erpdesk",
		Short:         "erpdesk browses and manages ERP list pages",
		Version:       erpdesk.Version,
		Args:          userArgs(cobra.NoArgs),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.prepare(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return userErr(err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.flagConfigDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/erpdesk)")
	pf.StringVar(&a.flagDataDir, "data-dir", "", "local store directory (default: $XDG_DATA_HOME/erpdesk)")
	pf.StringVar(&a.flagBackend, "backend", "", "backend: sqlite or rest (default from config)")
	pf.StringVar(&a.flagAPIURL, "api-url", "", "REST API base URL for the rest backend")
	pf.StringVar(&a.flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&a.flagJSON, "json", false, "output as JSON")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newPagesCmd(a),
		newListCmd(a),
		newBrowseCmd(a),
		newGetCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newSeedCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
	)
	return root
}

// prepare resolves the configuration directory, loads config.yaml, and
// builds the stderr logger.
func (a *app) prepare(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(a.flagConfigDir)
	if err != nil {
		return sysErr(err)
	}
	a.configDir = configDir

	cfg, err := loadConfig(configDir)
	if err != nil {
		return sysErr(err)
	}
	a.cfg = cfg

	logger, err := logging.New(cmd.ErrOrStderr(), a.logLevel())
	a.logger = logger
	if err != nil {
		logger.Warn("invalid log level, using default", "err", err)
	}
	return nil
}

func (a *app) logLevel() string {
	return firstNonEmpty(a.flagLogLevel, a.cfg.GetString(cfgKeyLogLevel))
}

// storeConfig assembles the backend configuration: flag, then config.yaml,
// then environment.
func (a *app) storeConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.flagDataDir, a.cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, sysErr(err)
	}
	return types.Config{
		Backend: firstNonEmpty(a.flagBackend, a.cfg.GetString(cfgKeyBackend)),
		DataDir: dataDir,
		APIURL:  firstNonEmpty(a.flagAPIURL, a.cfg.GetString(cfgKeyAPIURL), os.Getenv(paths.EnvAPIURL)),
	}, nil
}

// sessions returns the session store kept in the configuration directory.
func (a *app) sessions() *session.Store {
	return session.NewStore(paths.SessionFile(a.configDir))
}

// pageSize returns the configured default page size.
func (a *app) pageSize() int {
	return a.cfg.GetInt(cfgKeyPageSize)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
