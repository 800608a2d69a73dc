package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"vecl/internal/buildpipeline"
	"vecl/internal/driver"
	"vecl/internal/vm"
)

// programExit carries a non-zero status of an interpreted program.
type programExit int

func (e programExit) Error() string { return fmt.Sprintf("program exited with status %d", int(e)) }

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] file.vl",
		Short: "Interpret a source file without assembling it",
		Args:  cobra.ExactArgs(1),
		RunE:  runRun,
	}
	cmd.Flags().Int("max-steps", 0, "abort after this many interpreter steps (0=unlimited)")
	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	maxSteps, err := cmd.Flags().GetInt("max-steps")
	if err != nil {
		return fmt.Errorf("failed to get max-steps flag: %w", err)
	}
	maxDiagnostics, err := maxDiagnosticsFlag(cmd)
	if err != nil {
		return err
	}

	res, err := driver.Analyze(cmd.Context(), args[0], driver.Options{MaxDiagnostics: maxDiagnostics})
	if err != nil {
		return err
	}
	if err := reportDiagnostics(cmd, res.Bag, res.FileSet); err != nil {
		return err
	}
	if !res.Ok() {
		return buildpipeline.ErrDiagnostics
	}
	mod, err := buildpipeline.Lower(cmd.Context(), res)
	if err != nil {
		return err
	}

	code, err := vm.New(mod, vm.Options{Stdout: cmd.OutOrStdout(), MaxSteps: maxSteps}).Run(cmd.Context())
	if err != nil {
		var vmErr *vm.VMError
		if errors.As(err, &vmErr) {
			fmt.Fprint(cmd.ErrOrStderr(), vmErr.FormatWithFiles(res.FileSet))
		}
		return err
	}
	if code != 0 {
		return programExit(code)
	}
	return nil
}
