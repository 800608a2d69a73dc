package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"vecl/internal/buildpipeline"
	"vecl/internal/driver"
	"vecl/internal/project"
	"vecl/internal/ui"
	"vecl/internal/version"
)

const noManifestMessage = "no " + project.ManifestName + " found; pass a source file or run `vecl init`"

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [flags] [file.vl]",
		Short: "Compile a source file to an executable",
		Long: `Build compiles a vecl source file, assembles it with nasm and links it with gcc.
Without a file argument the entry point is taken from vecl.toml.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runBuild,
	}
	cmd.Flags().StringP("output", "o", "", "output executable path")
	cmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	cmd.Flags().Bool("keep-tmp", false, "keep the temporary build directory")
	cmd.Flags().Bool("print-commands", false, "print assembler and linker commands")
	cmd.Flags().Int("jobs", 0, "parallel function emission (0=auto)")
	cmd.Flags().Bool("no-cache", false, "bypass the assembly cache")
	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	keepTmp, err := cmd.Flags().GetBool("keep-tmp")
	if err != nil {
		return fmt.Errorf("failed to get keep-tmp flag: %w", err)
	}
	printCommands, err := cmd.Flags().GetBool("print-commands")
	if err != nil {
		return fmt.Errorf("failed to get print-commands flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	maxDiagnostics, err := maxDiagnosticsFlag(cmd)
	if err != nil {
		return err
	}

	req := buildpipeline.BuildRequest{
		CompileRequest: buildpipeline.CompileRequest{
			MaxDiagnostics: maxDiagnostics,
			Jobs:           jobs,
			Version:        version.Version,
		},
		OutputPath: outputPath,
		KeepTmp:    keepTmp,
	}
	if len(args) == 1 {
		req.TargetPath = args[0]
	} else {
		manifest, ok, loadErr := project.Load(".")
		if loadErr != nil {
			return loadErr
		}
		if !ok {
			return errors.New(noManifestMessage)
		}
		if req.TargetPath, err = manifest.MainFile(); err != nil {
			return err
		}
		if req.OutputPath == "" {
			req.OutputPath = manifest.OutputPath()
		}
		req.Assembler = manifest.Config.Build.Assembler
		req.Linker = manifest.Config.Build.Linker
		req.KeepTmp = req.KeepTmp || manifest.Config.Build.KeepTmp
		if req.Jobs == 0 {
			req.Jobs = manifest.Config.Build.Jobs
		}
	}
	if printCommands {
		req.PrintCommands = cmd.OutOrStdout()
	}
	if !noCache {
		req.Cache = openCache(cmd)
	}

	quiet := quietFlag(cmd)
	var res buildpipeline.BuildResult
	if shouldUseTUI(mode, quiet) && !printCommands {
		res, err = runBuildWithUI(cmd.Context(), &req)
	} else {
		res, err = buildpipeline.Build(cmd.Context(), &req)
	}
	if res.Compile.Analysis != nil {
		if diagErr := reportDiagnostics(cmd, res.Compile.Analysis.Bag, res.Compile.Analysis.FileSet); diagErr != nil {
			return diagErr
		}
	}
	if timingsFlag(cmd) {
		if tErr := printPhaseTimings(cmd.OutOrStdout(), res.Compile.Analysis); tErr != nil {
			return tErr
		}
		if tErr := printStageTimings(cmd.OutOrStdout(), res.Timings); tErr != nil {
			return tErr
		}
	}
	if err != nil {
		return err
	}
	if res.Compile.CacheErr != nil && !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: cache write failed: %v\n", res.Compile.CacheErr)
	}
	if quiet {
		return nil
	}
	if res.TmpDir != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "tmp dir: %s\n", res.TmpDir)
	}
	cwd, cwdErr := os.Getwd()
	if cwdErr != nil {
		cwd = ""
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "built %s\n", formatPathForOutput(cwd, res.OutputPath))
	return err
}

type buildOutcome struct {
	result buildpipeline.BuildResult
	err    error
}

func runBuildWithUI(ctx context.Context, req *buildpipeline.BuildRequest) (buildpipeline.BuildResult, error) {
	events := make(chan buildpipeline.Event, 64)
	outcomeCh := make(chan buildOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = buildpipeline.ChannelSink{Ch: events}
		res, err := buildpipeline.Build(ctx, &reqCopy)
		outcomeCh <- buildOutcome{result: res, err: err}
		close(events)
	}()

	uiErr := ui.Run("vecl build "+req.TargetPath, buildpipeline.Stages(), events, os.Stdout)
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

// openCache returns the user cache, or nil when it cannot be opened.
func openCache(cmd *cobra.Command) *driver.DiskCache {
	cache, err := driver.OpenDiskCache("vecl")
	if err != nil {
		if !quietFlag(cmd) {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: cache disabled: %v\n", err)
		}
		return nil
	}
	return cache
}

func formatPathForOutput(root, path string) string {
	if root == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
