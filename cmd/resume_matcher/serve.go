package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/catalog"
	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  `Start an HTTP server exposing skill extraction, matching, batch scoring and job recommendation endpoints.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.overrideCatalog(cmd)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runServe(ctx)
		},
	}

	cmd.Flags().Int("port", 8080, "Port to listen on")
	cmd.Flags().String("catalog", config.CatalogEmbedded, `Job catalog: "embedded", "database" or a file path`)
	_ = a.v.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	return cmd
}

func (a *app) runServe(ctx context.Context) error {
	engine, err := a.engine(ctx)
	if err != nil {
		return err
	}

	jobs, closeCatalog, err := a.catalogSource(ctx)
	if err != nil {
		return err
	}
	defer closeCatalog()

	recommend := a.cfg.RecommendOptions()
	srv, err := server.New(server.Config{
		Port:           a.cfg.Server.Port,
		RequestTimeout: a.cfg.Server.RequestTimeout,
		MaxUploadBytes: a.cfg.Server.MaxUploadBytes,
		MaxBatchFiles:  a.cfg.Batch.MaxFiles,
		AllowedOrigins: a.cfg.Server.AllowedOrigins,
		Recommend:      &recommend,
	}, engine, jobs, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start(ctx)
}

// overrideCatalog applies an explicit --catalog flag over the config file.
func (a *app) overrideCatalog(cmd *cobra.Command) {
	if f := cmd.Flags().Lookup("catalog"); f != nil && f.Changed {
		a.cfg.Catalog.Source = f.Value.String()
	}
}

// catalogSource opens the configured job catalog. The returned func releases
// any database connection.
func (a *app) catalogSource(ctx context.Context) (catalog.Source, func(), error) {
	noop := func() {}
	switch source := a.cfg.Catalog.Source; source {
	case config.CatalogEmbedded:
		jobs, err := catalog.Embedded()
		if err != nil {
			return nil, noop, err
		}
		return catalog.NewStatic(jobs), noop, nil
	case config.CatalogDatabase:
		if a.cfg.Database.URL == "" {
			return nil, noop, errors.New("the database catalog requires database.url or DATABASE_URL")
		}
		database, err := db.Connect(ctx, a.cfg.Database.URL)
		if err != nil {
			return nil, noop, err
		}
		a.logger.Info("serving job catalog from database")
		return database.CatalogSource(), database.Close, nil
	default:
		jobs, err := catalog.LoadFile(source)
		if err != nil {
			return nil, noop, err
		}
		a.logger.Info("serving job catalog from file", zap.String("path", source), zap.Int("jobs", len(jobs)))
		return catalog.NewStatic(jobs), noop, nil
	}
}
