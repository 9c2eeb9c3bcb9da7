package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docketlab/entgraph/internal/core/extraction"
)

func extractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract entities from a single document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read document '%s': %w", args[0], err)
			}

			extractor := extraction.New(extraction.NewProseTagger(), cfg.Normalizer())
			result, err := extractor.Extract(string(data), cfg.ResolverOptions().Extraction)
			if err != nil {
				return fmt.Errorf("extract '%s': %w", args[0], err)
			}
			return printJSON(result)
		},
	}
}
