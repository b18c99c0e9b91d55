package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/marquee/internal/adapter/driven/cms"
	sqliteadapter "github.com/ericfisherdev/marquee/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/marquee/internal/config"
)

// Targets a command can read from or write to.
const (
	targetCMS    = "cms"
	targetSQLite = "sqlite"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	verbose bool
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "marqueectl",
		Short: "Maintenance tasks for the marquee site",
		Long: `marqueectl manages the content behind the marquee site.

Configuration is read from MARQUEE_* environment variables and an optional
.env file, the same way the server reads it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if flags.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}

	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().DurationVar(&flags.timeout, "timeout", 2*time.Minute, "Operation timeout")

	root.AddCommand(
		newSeedCmd(flags),
		newCheckSlugsCmd(flags),
		newExportTokensCmd(),
		newSchemaCmd(),
		newSyncCmd(flags),
	)

	return root
}

// withTimeout derives the command context bounded by --timeout.
func (f *globalFlags) withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, f.timeout)
}

// openCMS creates a CMS client from the environment. Writes need
// MARQUEE_CMS_TOKEN to hold a token with write access.
func openCMS() (*cms.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	client, err := cms.NewClient(cms.Options{
		ProjectID:  cfg.CMS.ProjectID,
		Dataset:    cfg.CMS.Dataset,
		APIVersion: cfg.CMS.APIVersion,
		Token:      cfg.CMS.Token,
		UseCDN:     false,
		BaseURL:    cfg.CMS.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("create cms client: %w", err)
	}

	slog.Debug("cms client created", "dataset", cfg.CMS.Dataset)
	return client, nil
}

// openMirror opens and migrates the local mirror at MARQUEE_DB_PATH. The
// returned close function must be called when done.
func openMirror(ctx context.Context) (*sqliteadapter.DocumentRepo, func(), error) {
	cfg, err := config.LoadLocal()
	if err != nil {
		return nil, nil, err
	}

	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	slog.Debug("mirror opened", "path", db.Path())

	closeFn := func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}
	return sqliteadapter.NewDocumentRepo(db), closeFn, nil
}

func validTarget(target string) error {
	if target != targetCMS && target != targetSQLite {
		return fmt.Errorf("unknown target %q (want %s or %s)", target, targetCMS, targetSQLite)
	}
	return nil
}

// readOptionalFile returns nil when path is empty.
func readOptionalFile(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
