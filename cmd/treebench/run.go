package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jsouthworth.net/go/ordered/internal/config"
	"jsouthworth.net/go/ordered/internal/metrics"
	"jsouthworth.net/go/ordered/internal/report"
	"jsouthworth.net/go/ordered/internal/workload"
)

var errInvalidTree = errors.New("tree failed validation")

type runFlags struct {
	variants      []string
	keys          int
	seed          int64
	order         string
	deleteRatio   float64
	validateEvery int
	script        string
	metricsAddr   string
}

func runCmd(root *rootOptions) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a workload against the selected tree variants",
		Long: `Run builds a workload, either from a YAML script or generated from the
key count, order and delete ratio, applies it to every selected variant
and validates the tree invariants along the way.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, root.cfgFile, flags)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.Logging, root.verbose, cmd.ErrOrStderr())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return runWorkload(ctx, cmd, cfg, logger)
		},
	}

	cmd.Flags().StringSliceVar(&flags.variants, "variant", nil, "tree variants to run: bst, avl, llrb or all")
	cmd.Flags().IntVar(&flags.keys, "keys", config.DefaultKeys, "number of distinct keys to generate")
	cmd.Flags().Int64Var(&flags.seed, "seed", config.DefaultSeed, "random seed for generated workloads")
	cmd.Flags().StringVar(&flags.order, "order", config.DefaultOrder, "insertion order: random, ascending or descending")
	cmd.Flags().Float64Var(&flags.deleteRatio, "delete-ratio", config.DefaultDeleteRatio, "share of keys deleted after insertion")
	cmd.Flags().IntVar(&flags.validateEvery, "validate-every", config.DefaultValidateEvery, "operations between invariant checks (0 checks only at the end)")
	cmd.Flags().StringVar(&flags.script, "script", "", "YAML workload script; overrides generation")
	cmd.Flags().StringVar(&flags.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address until interrupted")

	return cmd
}

// loadConfig reads the configuration and applies every flag the user
// set explicitly on top of it.
func loadConfig(cmd *cobra.Command, path string, flags *runFlags) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	fs := cmd.Flags()
	if fs.Changed("variant") {
		cfg.Workload.Variants = config.ExpandVariants(flags.variants)
	}
	if fs.Changed("keys") {
		cfg.Workload.Keys = flags.keys
	}
	if fs.Changed("seed") {
		cfg.Workload.Seed = flags.seed
	}
	if fs.Changed("order") {
		cfg.Workload.Order = flags.order
	}
	if fs.Changed("delete-ratio") {
		cfg.Workload.DeleteRatio = flags.deleteRatio
	}
	if fs.Changed("validate-every") {
		cfg.Workload.ValidateEvery = flags.validateEvery
	}
	if fs.Changed("script") {
		cfg.Workload.Script = flags.script
	}
	if fs.Changed("metrics-addr") {
		cfg.Metrics.Addr = flags.metricsAddr
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func buildScript(w config.WorkloadConfig) (*workload.Script, error) {
	if w.Script != "" {
		return workload.LoadScript(w.Script)
	}
	return workload.Generate(workload.Params{
		Keys:        w.Keys,
		Seed:        w.Seed,
		Order:       w.Order,
		DeleteRatio: w.DeleteRatio,
	}), nil
}

func runWorkload(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	script, err := buildScript(cfg.Workload)
	if err != nil {
		return err
	}

	collector := metrics.New()
	serveErr := make(chan error, 1)
	serveCtx, stopServing := context.WithCancel(ctx)
	defer stopServing()
	if cfg.Metrics.Addr != "" {
		go func() {
			serveErr <- collector.Serve(serveCtx, cfg.Metrics.Addr)
		}()
		logger.Info("serving metrics", slog.String("addr", cfg.Metrics.Addr))
	}

	runner := &workload.Runner{
		ValidateEvery: cfg.Workload.ValidateEvery,
		Recorder:      collector,
		Logger:        logger,
	}

	results := make([]workload.Result, 0, len(cfg.Workload.Variants))
	for _, variant := range cfg.Workload.Variants {
		m, err := workload.NewMap(variant)
		if err != nil {
			return err
		}
		logger.Debug("run started",
			slog.String("variant", variant),
			slog.String("script", script.Name),
			slog.Int("ops", len(script.Ops)))

		res, err := runner.Run(ctx, variant, m, script)
		if err != nil {
			return err
		}
		logger.Info("run finished",
			slog.String("variant", variant),
			slog.Int("ops", res.Ops),
			slog.Int("size", res.Size),
			slog.Int("height", res.Height),
			slog.Duration("duration", res.Duration),
			slog.Bool("valid", res.Valid()))
		results = append(results, res)
	}

	err = report.Render(cmd.OutOrStdout(), results, report.Options{
		Color: !color.NoColor,
		Title: script.Name,
	})
	if err != nil {
		return err
	}

	if cfg.Metrics.Addr != "" {
		logger.Info("run complete, serving metrics until interrupted")
		select {
		case <-ctx.Done():
		case err := <-serveErr:
			return err
		}
		stopServing()
		if err := <-serveErr; err != nil {
			return err
		}
	}

	for _, res := range results {
		if !res.Valid() {
			return fmt.Errorf("%w: %s", errInvalidTree, res.Variant)
		}
	}
	return nil
}
