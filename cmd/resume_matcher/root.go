package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/logging"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/taxonomy"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// app carries state shared by every subcommand once flags are parsed.
type app struct {
	v          *viper.Viper
	configPath string
	jsonOutput bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	root := &cobra.Command{
		Use:           "resume_matcher",
		Short:         "Resume and job description skill matcher",
		Long:          "resume_matcher extracts canonical skills from resumes and job descriptions, scores resumes against jobs and recommends catalog jobs, from the command line or over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to a YAML, JSON or TOML config file")
	flags.BoolVar(&a.jsonOutput, "json", false, "Print results as JSON")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", logging.FormatConsole, "Log format (console or json)")
	flags.String("taxonomy", taxonomy.EmbeddedSource, "Taxonomy source: embedded, a file path or s3://bucket/key")
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("log.format", flags.Lookup("log-format"))
	_ = a.v.BindPFlag("taxonomy.source", flags.Lookup("taxonomy"))

	root.AddCommand(
		newServeCmd(a),
		newExtractCmd(a),
		newMatchCmd(a),
		newBatchCmd(a),
		newRecommendCmd(a),
		newTaxonomyCmd(a),
		newCatalogCmd(a),
		newVersionCmd(),
	)
	return root
}

// init loads and validates configuration and builds the logger.
func (a *app) init() error {
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

// loadTaxonomy builds the configured taxonomy. s3:// sources use the
// configured AWS region.
func (a *app) loadTaxonomy(ctx context.Context) (*taxonomy.Taxonomy, error) {
	source := a.cfg.Taxonomy.Source
	opts := a.cfg.TaxonomyOptions()
	if !strings.HasPrefix(source, "s3://") {
		return taxonomy.Load(ctx, source, opts...)
	}
	store, err := taxonomy.NewS3Store(ctx, a.cfg.AWS.Region)
	if err != nil {
		return nil, err
	}
	return taxonomy.LoadWith(ctx, source, store, opts...)
}

// engine loads the taxonomy and builds a matching engine from config.
func (a *app) engine(ctx context.Context) (*pipeline.Engine, error) {
	tax, err := a.loadTaxonomy(ctx)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("taxonomy loaded",
		zap.String("source", a.cfg.Taxonomy.Source),
		zap.String("version", tax.Version()),
		zap.Int("skills", tax.Len()))

	return pipeline.NewEngine(tax,
		pipeline.WithConcurrency(a.cfg.Batch.Concurrency),
		pipeline.WithMaxNGram(a.cfg.Taxonomy.MaxNGram),
		pipeline.WithLogger(a.logger),
	), nil
}

func (a *app) printer(out io.Writer, tax *taxonomy.Taxonomy) *observability.Printer {
	return observability.NewPrinter(out, tax)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "resume_matcher %s\n", version)
		},
	}
	// version needs no configuration.
	cmd.PersistentPreRunE = func(*cobra.Command, []string) error { return nil }
	return cmd
}
