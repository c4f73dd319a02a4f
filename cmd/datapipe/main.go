package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/crimson-sun/datapipe/internal/config"
	"github.com/crimson-sun/datapipe/internal/logging"
	"github.com/crimson-sun/datapipe/internal/pipeline"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "datapipe: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg config.Config

	root := &cobra.Command{
		Use:   "datapipe",
		Short: "Synthetic analytics batch pipeline",
		Long: `datapipe synthesizes web, social and sensor datasets, derives processed
tables, computes grouped summary exports and prepares visualization-ready
CSVs plus a Tableau/Power BI manifest.

All settings come from DATAPIPE_* environment variables (or a .env file),
with defaults matching the standard data/ layout.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Missing .env is fine; env vars still apply.
			_ = godotenv.Load()
			cfg = config.Load()
			logging.Init(cfg.Log.Format, logging.ParseLevel(cfg.Log.Level))
		},
	}

	stage := func(use, short string, run func(p *pipeline.Pipeline, ctx context.Context) []pipeline.Result) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, stop := signalContext()
				defer stop()
				return pipeline.Failed(run(pipeline.New(cfg), ctx))
			},
		}
	}

	root.AddCommand(
		stage("generate", "Synthesize the raw web, social and sensor datasets",
			func(p *pipeline.Pipeline, ctx context.Context) []pipeline.Result { return p.Generate(ctx) }),
		stage("process", "Derive processed tables and optionally upload them to HDFS",
			func(p *pipeline.Pipeline, ctx context.Context) []pipeline.Result { return p.Process(ctx) }),
		stage("aggregate", "Compute grouped summary exports from the processed tables",
			func(p *pipeline.Pipeline, ctx context.Context) []pipeline.Result { return p.Aggregate(ctx) }),
		stage("visualize", "Prepare visualization CSVs and the BI manifest",
			func(p *pipeline.Pipeline, ctx context.Context) []pipeline.Result { return p.Visualize(ctx) }),
		&cobra.Command{
			Use:   "run",
			Short: "Run all four stages in order",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, stop := signalContext()
				defer stop()
				return pipeline.New(cfg).Run(ctx)
			},
		},
	)
	return root
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
