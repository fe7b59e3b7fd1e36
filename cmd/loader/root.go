package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	apperrors "github.com/bikeshare-loader/internal/pkg/errors"
)

// Process exit codes
const (
	exitOK         = 0
	exitGeneric    = 1
	exitFormat     = 2
	exitUsage      = 3
	exitDatabase   = 4
	exitConstraint = 5
)

type globalOptions struct {
	EnvFile  string
	LogLevel string
}

// usageError marks bad flags or arguments
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "bikeshare-loader",
		Short:         "Normalize bike-share trip files and load them into Postgres",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "env file read before the process environment")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "overrides LOG_LEVEL (debug, info, warn, error)")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	cmd.AddCommand(newRunCmd(opts))
	cmd.AddCommand(newNormalizeCmd(opts))
	cmd.AddCommand(newLoadCmd(opts))
	cmd.AddCommand(newFinalizeCmd(opts))
	cmd.AddCommand(newSchemaCmd(opts))
	cmd.AddCommand(newStatusCmd(opts))
	cmd.AddCommand(newResetCmd(opts))
	return cmd
}

func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err.Error())
	}
	return exitCode(err)
}

// exitCode maps an error onto the documented process exit codes
func exitCode(err error) int {
	var usage *usageError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &usage),
		strings.HasPrefix(err.Error(), "unknown command"),
		apperrors.Is(err, apperrors.ErrConfig):
		return exitUsage
	case apperrors.Is(err, apperrors.ErrFormat),
		apperrors.Is(err, apperrors.ErrParse):
		return exitFormat
	case apperrors.Is(err, apperrors.ErrConstraint):
		return exitConstraint
	case apperrors.Is(err, apperrors.ErrLoad),
		apperrors.Is(err, apperrors.ErrDatabaseError):
		return exitDatabase
	default:
		return exitGeneric
	}
}
