package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jsouthworth.net/go/ordered/internal/config"
	"jsouthworth.net/go/ordered/internal/workload"
)

type dotFlags struct {
	variant string
	keys    int
	seed    int64
	order   string
}

func dotCmd(root *rootOptions) *cobra.Command {
	flags := &dotFlags{}

	cmd := &cobra.Command{
		Use:   "dot",
		Short: "Print a generated tree as a graphviz script",
		Example: `  treebench dot --variant llrb --keys 15 | dot -Tsvg > llrb.svg
  treebench dot --variant bst --order ascending --keys 8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(root.cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg.Workload.Keys = flags.keys
			cfg.Workload.Order = flags.order
			cfg.Workload.Script = ""
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid flags: %w", err)
			}
			logger := newLogger(cfg.Logging, root.verbose, cmd.ErrOrStderr())

			m, err := workload.NewMap(flags.variant)
			if err != nil {
				return err
			}
			script := workload.Generate(workload.Params{
				Keys:  flags.keys,
				Seed:  flags.seed,
				Order: flags.order,
			})
			res, err := (&workload.Runner{Logger: logger}).Run(cmd.Context(), flags.variant, m, script)
			if err != nil {
				return err
			}
			if !res.Valid() {
				return fmt.Errorf("%w: %v", errInvalidTree, res.Invalid)
			}

			return m.(workload.Dotter).Dotdump(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&flags.variant, "variant", "llrb", "tree variant: bst, avl or llrb")
	cmd.Flags().IntVar(&flags.keys, "keys", 15, "number of keys to insert")
	cmd.Flags().Int64Var(&flags.seed, "seed", config.DefaultSeed, "random seed")
	cmd.Flags().StringVar(&flags.order, "order", config.DefaultOrder, "insertion order: random, ascending or descending")

	return cmd
}
