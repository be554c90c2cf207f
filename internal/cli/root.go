// Package cli implements portalctl, the operator command line for the
// portal database: schema migrations, account bootstrap and data loading.
package cli

import (
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/edu-portal-api/pkg/config"
	"github.com/noah-isme/edu-portal-api/pkg/database"
	"github.com/noah-isme/edu-portal-api/pkg/logger"
)

var (
	version = "dev"
	commit  = "none"
)

// NewRootCommand assembles the portalctl command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "portalctl",
		Short:         "Operate the education portal database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newMigrateCommand())
	root.AddCommand(newCreateAdminCommand())
	root.AddCommand(newSeedMenuCommand())
	root.AddCommand(newImportCommand())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "portalctl %s (commit: %s)\n", version, commit)
		},
	})
	return root
}

// Execute runs portalctl and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// SetVersionInfo overrides the build metadata printed by "version".
func SetVersionInfo(v, c string) {
	version = v
	commit = c
}

// env is the configuration, logger and store shared by commands that touch the database.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *sqlx.DB
}

func openEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connecting database: %w", err)
	}
	return &env{cfg: cfg, logger: logr, db: db}, nil
}

func (e *env) Close() {
	_ = e.db.Close()
	_ = e.logger.Sync()
}
