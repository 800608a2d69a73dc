package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vecl/internal/driver"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove cached build artifacts",
		Long:  "Remove the per-user cache of emitted assembly.",
		Args:  cobra.NoArgs,
		RunE:  runClean,
	}
}

func runClean(cmd *cobra.Command, _ []string) error {
	cache, err := driver.OpenDiskCache("vecl")
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to clean %s: %w", cache.Dir(), err)
	}
	if !quietFlag(cmd) {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed cache in %s\n", cache.Dir())
	}
	return err
}
