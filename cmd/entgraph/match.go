package main

import (
	"github.com/spf13/cobra"

	"github.com/docketlab/entgraph/internal/core/match"
)

func matchCmd() *cobra.Command {
	var (
		kindFlag string
		partial  bool
	)
	cmd := &cobra.Command{
		Use:   "match <name-a> <name-b>",
		Short: "Score whether two names refer to the same entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			opts := cfg.ResolverOptions().Match
			opts.Kind = match.Kind(kindFlag)
			if partial {
				opts.EnablePartial = true
			}
			if err := opts.Validate(); err != nil {
				return err
			}

			result := match.New(cfg.Normalizer()).Match(args[0], args[1], opts)
			return printJSON(result)
		},
	}
	cmd.Flags().StringVar(&kindFlag, "kind", string(match.KindPerson), "matching cascade: person or organization")
	cmd.Flags().BoolVar(&partial, "partial", false, "enable substring-containment matching")
	return cmd
}
