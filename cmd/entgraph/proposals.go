package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/docketlab/entgraph/internal/core/linkage"
	"github.com/docketlab/entgraph/internal/core/match"
)

func proposalsCmd() *cobra.Command {
	var (
		caseID   string
		kindFlag string
	)
	cmd := &cobra.Command{
		Use:   "proposals <name>...",
		Short: "Generate pending linkage proposals for a list of names",
		Long: `Proposals matches every unordered pair of the given names and prints
the accepted pairs as pending linkages, ordered by confidence.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if caseID == "" {
				caseID = uuid.New().String()
			}

			opts := cfg.ResolverOptions().Match
			opts.Kind = match.Kind(kindFlag)
			if err := opts.Validate(); err != nil {
				return err
			}

			gen := linkage.NewGenerator(match.New(cfg.Normalizer()))
			return printJSON(gen.Proposals(caseID, args, opts))
		},
	}
	cmd.Flags().StringVar(&caseID, "case", "", "case identifier stamped on linkages (default: random)")
	cmd.Flags().StringVar(&kindFlag, "kind", string(match.KindPerson), "matching cascade: person or organization")
	return cmd
}
