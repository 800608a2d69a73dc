package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vecl/internal/buildpipeline"
	"vecl/internal/driver"
	"vecl/internal/mir"
	"vecl/internal/version"
)

func newEmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emit [flags] file.vl",
		Short: "Emit NASM assembly for a source file",
		Args:  cobra.ExactArgs(1),
		RunE:  runEmit,
	}
	cmd.Flags().StringP("output", "o", "", "write assembly to file instead of stdout")
	cmd.Flags().Int("jobs", 0, "parallel function emission (0=auto)")
	return cmd
}

func runEmit(cmd *cobra.Command, args []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	maxDiagnostics, err := maxDiagnosticsFlag(cmd)
	if err != nil {
		return err
	}

	res, err := buildpipeline.Compile(cmd.Context(), &buildpipeline.CompileRequest{
		TargetPath:     args[0],
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		Version:        version.Version,
	})
	if res.Analysis != nil {
		if diagErr := reportDiagnostics(cmd, res.Analysis.Bag, res.Analysis.FileSet); diagErr != nil {
			return diagErr
		}
	}
	if timingsFlag(cmd) {
		if tErr := printStageTimings(cmd.ErrOrStderr(), res.Timings); tErr != nil {
			return tErr
		}
	}
	if err != nil {
		return err
	}

	if outputPath == "" {
		_, err = cmd.OutOrStdout().Write(res.Asm)
		return err
	}
	if err := os.WriteFile(outputPath, res.Asm, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	return nil
}

func newIRCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ir [flags] file.vl",
		Short: "Print the SSA form of a source file",
		Args:  cobra.ExactArgs(1),
		RunE:  runIR,
	}
	cmd.Flags().Bool("types", false, "annotate values with their types")
	return cmd
}

func runIR(cmd *cobra.Command, args []string) error {
	withTypes, err := cmd.Flags().GetBool("types")
	if err != nil {
		return fmt.Errorf("failed to get types flag: %w", err)
	}
	maxDiagnostics, err := maxDiagnosticsFlag(cmd)
	if err != nil {
		return err
	}

	res, err := driver.Analyze(cmd.Context(), args[0], driver.Options{
		Stage:          driver.StageSema,
		MaxDiagnostics: maxDiagnostics,
	})
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
	return mir.DumpModule(cmd.OutOrStdout(), mod, mir.DumpOptions{Types: withTypes})
}
