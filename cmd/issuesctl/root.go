package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/sumire/issuetracker/internal/config"
	"github.com/sumire/issuetracker/internal/output"
	"github.com/sumire/issuetracker/internal/repository"
	"github.com/sumire/issuetracker/internal/service"
)

// app carries the dependencies shared by all subcommands. The issue service
// is opened lazily so help and flag errors work without a database.
type app struct {
	ui     *output.UI
	issues *service.IssueService
	db     *sqlx.DB
}

func newApp() *app {
	return &app{ui: output.New()}
}

func (a *app) service(ctx context.Context) (*service.IssueService, error) {
	if a.issues != nil {
		return a.issues, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	slog.SetDefault(cfg.Logger(os.Stderr))

	db, err := repository.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	a.db = db
	a.issues = service.NewIssueService(repository.NewIssueRepository(db))
	return a.issues, nil
}

func (a *app) close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "issuesctl",
		Short: "Inspect and maintain the issue tracker database",
		Long: `issuesctl works directly against the issue tracker's database.
It reads the same configuration as the server (DATABASE_DRIVER, DATABASE_URL,
or an issues.yaml config file).`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	root.SetOut(a.ui.Out)
	root.SetErr(a.ui.ErrOut)

	root.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newExportCmd(a),
		newCloseCmd(a),
	)
	return root
}
