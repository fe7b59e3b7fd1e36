package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bikeshare-loader/internal/domain/repository"
)

func newSchemaCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(schemaSubCmd(global, "up", "Apply all pending migrations", repository.SchemaRepository.Up))
	cmd.AddCommand(schemaSubCmd(global, "down", "Roll back the latest migration", repository.SchemaRepository.Down))
	cmd.AddCommand(schemaSubCmd(global, "reset", "Roll back every migration", repository.SchemaRepository.Reset))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(global, func(ctx context.Context, a *app) error {
				schema, err := a.schema()
				if err != nil {
					return err
				}
				version, err := schema.Version(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return nil
			})(cmd.Context())
		},
	})
	return cmd
}

func schemaSubCmd(
	global *globalOptions,
	use, short string,
	op func(repository.SchemaRepository, context.Context) error,
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(global, func(ctx context.Context, a *app) error {
				schema, err := a.schema()
				if err != nil {
					return err
				}
				return op(schema, ctx)
			})(cmd.Context())
		},
	}
}
