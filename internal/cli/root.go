// Package cli implements the statement-extractor command line.
package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-extractor/internal/classifier"
	"github.com/insightdelivered/statement-extractor/internal/config"
	"github.com/insightdelivered/statement-extractor/internal/extractor"
	"github.com/insightdelivered/statement-extractor/internal/logger"
	"github.com/insightdelivered/statement-extractor/internal/pipeline"
)

// app carries state shared by the subcommands.
type app struct {
	version  string
	envFile  string
	logLevel string

	cfg *config.Config
	log zerolog.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd(version string) *cobra.Command {
	a := &app{version: version, log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "statement-extractor",
		Short: "Extract candidate transactions from bank and credit card statement PDFs",
		Long: `Statement Extractor
by Insight Delivered

Reads the text layer of bank and credit card statement PDFs, picks out
transaction lines, classifies them as revenue or expense with a best-guess
category, and writes them out as CSV, JSON, YAML or XLSX for review.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Environment file loaded before reading configuration")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")

	root.AddCommand(newExtractCmd(a), newServeCmd(a), newVersionCmd(a))
	return root
}

func (a *app) setup(stderr io.Writer) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	levelName := cfg.Observability.LogLevel
	if a.logLevel != "" {
		levelName = a.logLevel
	}
	level, err := logger.ParseLevel(levelName)
	if err != nil {
		return err
	}
	a.log = logger.NewWithWriter(zerolog.ConsoleWriter{Out: stderr}).Level(level)
	return nil
}

// buildPipeline wires the stages from configuration. rulesFile, when set,
// overrides CATEGORY_RULES_FILE.
func (a *app) buildPipeline(rulesFile string) (*pipeline.Pipeline, error) {
	if rulesFile == "" {
		rulesFile = a.cfg.Extraction.CategoryRulesFile
	}

	opts := []pipeline.Option{
		pipeline.WithLogger(a.log),
		pipeline.WithExtractor(extractor.New(
			extractor.WithMaxPages(a.cfg.Extraction.MaxPages),
			extractor.WithLogger(a.log),
		)),
	}
	if rulesFile != "" {
		c, err := classifier.LoadTables(rulesFile)
		if err != nil {
			return nil, err
		}
		a.log.Debug().Str("file", rulesFile).Int("categories", len(c.Rules())).Msg("loaded category rules")
		opts = append(opts, pipeline.WithClassifier(c))
	}
	return pipeline.New(opts...), nil
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Args:  cobra.NoArgs,
		// version needs no configuration
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "statement-extractor v%s\n", a.version)
		},
	}
}
