package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/docketlab/entgraph/internal/core/model"
)

func resolveCmd() *cobra.Command {
	var (
		caseID        string
		minConfidence float64
	)
	cmd := &cobra.Command{
		Use:   "resolve <file>...",
		Short: "Resolve entities across a set of case documents",
		Long: `Resolve runs the full pipeline over every document given: extraction,
cross-document grouping, pairwise linkage proposals and graph assembly.
The result is printed as JSON. Each file becomes one document whose id
is its base name.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if caseID == "" {
				caseID = uuid.New().String()
			}
			opts := cfg.ResolverOptions()
			if cmd.Flags().Changed("min-confidence") {
				opts.Match.MinConfidence = minConfidence
			}
			if err := opts.Validate(); err != nil {
				return err
			}

			docs := make([]model.Document, 0, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read document '%s': %w", path, err)
				}
				docs = append(docs, model.Document{
					ID:   filepath.Base(path),
					Text: string(data),
				})
			}

			result := newResolver(cfg).ResolveEntities(cmd.Context(), docs, caseID, opts)
			return printJSON(result)
		},
	}
	cmd.Flags().StringVar(&caseID, "case", "", "case identifier stamped on linkages (default: random)")
	cmd.Flags().Float64Var(&minConfidence, "min-confidence", 0, "override the matcher acceptance floor")
	return cmd
}
