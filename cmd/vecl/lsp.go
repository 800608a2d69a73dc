package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"vecl/internal/lsp"
	"vecl/internal/version"
)

func newLSPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the vecl language server over stdio",
		Args:  cobra.NoArgs,
		RunE:  runLSP,
	}
	cmd.Flags().Duration("debounce", 300*time.Millisecond, "delay before re-analyzing an edited document")
	cmd.Flags().Bool("log", false, "write server log to stderr")
	return cmd
}

func runLSP(cmd *cobra.Command, _ []string) error {
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	logEnabled, err := cmd.Flags().GetBool("log")
	if err != nil {
		return fmt.Errorf("failed to get log flag: %w", err)
	}
	maxDiagnostics, err := maxDiagnosticsFlag(cmd)
	if err != nil {
		return err
	}
	opts := lsp.ServerOptions{
		Debounce:       debounce,
		MaxDiagnostics: maxDiagnostics,
		Version:        version.Version,
	}
	if logEnabled {
		opts.Log = cmd.ErrOrStderr()
	}

	server := lsp.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), opts)
	err = server.Run(cmd.Context())
	switch {
	case err == nil, errors.Is(err, lsp.ErrExit):
		return nil
	case errors.Is(err, lsp.ErrExitWithoutShutdown):
		return errors.New("lsp exit without shutdown")
	default:
		return err
	}
}
