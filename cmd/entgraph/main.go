package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/docketlab/entgraph/internal/config"
	"github.com/docketlab/entgraph/internal/core"
	"github.com/docketlab/entgraph/internal/core/extraction"
	"github.com/docketlab/entgraph/internal/core/linkage"
	"github.com/docketlab/entgraph/internal/core/match"
)

var version = "0.1.0"

var (
	cfgPath string
	verbose bool
	logger  *zap.Logger
)

func main() {
	// .env is optional for local runs.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "entgraph",
		Short: "Entity resolution for legal case documents",
		Long: `Entgraph extracts person, organization and court mentions from case
documents, resolves them into canonical entities across the whole case,
and proposes confidence-scored linkages between entities that may refer
to the same party. Proposed linkages carry a review status so a human
can confirm or reject each one.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if verbose {
				logger, err = zap.NewDevelopment()
			} else {
				logger, err = zap.NewProduction()
			}
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(resolveCmd())
	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(matchCmd())
	rootCmd.AddCommand(proposalsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the --config flag, then the ENTGRAPH_CONFIG
// environment variable, then the built-in defaults.
func loadConfig() (*config.Config, error) {
	path := cfgPath
	if path == "" {
		path = os.Getenv("ENTGRAPH_CONFIG")
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func newResolver(cfg *config.Config) *core.Resolver {
	norm := cfg.Normalizer()
	return core.NewResolver(
		extraction.New(extraction.NewProseTagger(), norm),
		linkage.NewGenerator(match.New(norm)),
		logger,
	)
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
