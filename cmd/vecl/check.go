package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vecl/internal/buildpipeline"
	"vecl/internal/driver"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <file.vl|directory>",
		Short: "Type-check source files without generating code",
		Long:  `Check parses, resolves and type-checks a vecl source file or every .vl file in a directory`,
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	formatValue, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := readDiagFormat(formatValue)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	maxDiagnostics, err := maxDiagnosticsFlag(cmd)
	if err != nil {
		return err
	}

	target := args[0]
	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", target, err)
	}
	paths := []string{target}
	if st.IsDir() {
		if paths, err = driver.ListSources(target); err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no source files in %s", target)
		}
	}

	results, err := driver.CheckFiles(cmd.Context(), paths, driver.Options{
		Stage:          driver.StageSema,
		MaxDiagnostics: maxDiagnostics,
		EnableTimings:  timingsFlag(cmd),
	}, jobs)
	if err != nil {
		return err
	}

	// диагностика идёт в stdout: это основной вывод команды
	useColor, err := colorEnabled(cmd, os.Stdout)
	if err != nil {
		return err
	}
	failed := 0
	for _, res := range results {
		if err := writeDiagnostics(cmd.OutOrStdout(), res.Bag, res.FileSet, format, useColor); err != nil {
			return err
		}
		if res.Bag.HasErrors() {
			failed++
		}
		if timingsFlag(cmd) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", res.File.Path)
			if err := printPhaseTimings(cmd.OutOrStdout(), res); err != nil {
				return err
			}
		}
	}
	if failed > 0 {
		return buildpipeline.ErrDiagnostics
	}
	if !quietFlag(cmd) && format != diagFormatJSON {
		fmt.Fprintf(cmd.ErrOrStderr(), "checked %d file(s)\n", len(results))
	}
	return nil
}
