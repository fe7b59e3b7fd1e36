package main

import (
	"github.com/spf13/cobra"

	"github.com/bikeshare-loader/internal/domain"
	"github.com/bikeshare-loader/internal/usecase"
)

func newNormalizeCmd(global *globalOptions) *cobra.Command {
	var force, overwrite bool

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Convert raw source files into the canonical ride layout",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd, global, usecase.RunOptions{
				Force:     force,
				Overwrite: overwrite,
				Only:      []domain.Stage{domain.StageNormalize},
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "run even if normalize already has a checkpoint")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "regenerate normalized files that already exist")
	return cmd
}

func newLoadCmd(global *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Bulk load normalized files that have not been loaded yet",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd, global, usecase.RunOptions{
				Force: force,
				Only:  []domain.Stage{domain.StageLoad},
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "run even if load already has a checkpoint")
	return cmd
}

func newFinalizeCmd(global *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "finalize",
		Short: "Deduplicate rides, derive stations, enforce integrity and build indexes",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd, global, usecase.RunOptions{
				Force: force,
				Only:  usecase.FinalizeStages,
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "rerun finalize stages that already have a checkpoint")
	return cmd
}
