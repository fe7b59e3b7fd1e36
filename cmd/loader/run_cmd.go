package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/bikeshare-loader/internal/domain"
	"github.com/bikeshare-loader/internal/usecase"
)

type runOptions struct {
	Force     bool
	Overwrite bool
	From      string
	Only      []string
}

func newRunCmd(global *globalOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every pipeline stage that has not completed yet",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runOpts, err := opts.toRunOptions()
			if err != nil {
				return err
			}
			return runPipeline(cmd, global, runOpts)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "rerun stages that already have a checkpoint")
	cmd.Flags().BoolVar(&opts.Overwrite, "overwrite", false, "regenerate normalized files that already exist")
	cmd.Flags().StringVar(&opts.From, "from", "", "start at this stage")
	cmd.Flags().StringSliceVar(&opts.Only, "only", nil, "run only these stages (comma separated)")
	return cmd
}

func (o *runOptions) toRunOptions() (usecase.RunOptions, error) {
	out := usecase.RunOptions{Force: o.Force, Overwrite: o.Overwrite}

	if o.From != "" {
		stage, ok := domain.ParseStage(o.From)
		if !ok {
			return out, &usageError{err: fmt.Errorf("unknown stage %q", o.From)}
		}
		out.From = stage
	}
	for _, name := range o.Only {
		stage, ok := domain.ParseStage(name)
		if !ok {
			return out, &usageError{err: fmt.Errorf("unknown stage %q", name)}
		}
		out.Only = append(out.Only, stage)
	}
	return out, nil
}

// runPipeline executes opts and prints the per-stage report, including the
// stages that completed before a failure.
func runPipeline(cmd *cobra.Command, global *globalOptions, opts usecase.RunOptions) error {
	return withApp(global, func(ctx context.Context, a *app) error {
		uc, err := a.pipeline()
		if err != nil {
			return err
		}

		report, runErr := uc.Run(ctx, opts)
		if report != nil {
			printReport(cmd.OutOrStdout(), report)
		}
		return runErr
	})(cmd.Context())
}

func printReport(w io.Writer, report *usecase.RunReport) {
	fmt.Fprintf(w, "run %s\n", report.RunID)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STAGE\tSTATUS\tDURATION")
	for _, s := range report.Stages {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Stage, s.Status, s.Duration.Round(time.Millisecond))
	}
	_ = tw.Flush()
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return &usageError{err: fmt.Errorf("%s takes no arguments, got %q", cmd.CommandPath(), args)}
	}
	return nil
}
