package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/bikeshare-loader/internal/domain"
	"github.com/bikeshare-loader/internal/usecase"
)

func newStatusCmd(global *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show completed stages, pending stages and loaded files",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(global, func(ctx context.Context, a *app) error {
				uc, err := a.pipeline()
				if err != nil {
					return err
				}
				status, err := uc.Status(ctx)
				if err != nil {
					return err
				}
				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(status)
				}
				printStatus(cmd.OutOrStdout(), status)
				return nil
			})(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print status as JSON")
	return cmd
}

func newResetCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset [stage...]",
		Short: "Forget stage checkpoints so the stages run again; data is kept",
		RunE: func(cmd *cobra.Command, args []string) error {
			stages := make([]domain.Stage, 0, len(args))
			for _, arg := range args {
				stage, ok := domain.ParseStage(arg)
				if !ok {
					return &usageError{err: fmt.Errorf("unknown stage %q", arg)}
				}
				stages = append(stages, stage)
			}

			return withApp(global, func(ctx context.Context, a *app) error {
				uc, err := a.pipeline()
				if err != nil {
					return err
				}
				return uc.ResetCheckpoints(ctx, stages...)
			})(cmd.Context())
		},
	}
}

func printStatus(w io.Writer, status *usecase.PipelineStatus) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STAGE\tCOMPLETED AT")
	for _, cp := range status.Checkpoints {
		fmt.Fprintf(tw, "%s\t%s\n", cp.Stage, cp.CompletedAt.Format(time.RFC3339))
	}
	for _, stage := range status.Pending {
		fmt.Fprintf(tw, "%s\t-\n", stage)
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "\n%d file(s) loaded\n", len(status.LoadedFiles))
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, f := range status.LoadedFiles {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", f.FileName, f.Rows, f.LoadedAt.Format(time.RFC3339))
	}
	_ = tw.Flush()
}
