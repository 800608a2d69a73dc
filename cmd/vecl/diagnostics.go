package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"vecl/internal/buildpipeline"
	"vecl/internal/diag"
	"vecl/internal/diagfmt"
	"vecl/internal/source"
)

type diagFormat string

const (
	diagFormatPretty diagFormat = "pretty"
	diagFormatShort  diagFormat = "short"
	diagFormatJSON   diagFormat = "json"
)

func readDiagFormat(value string) (diagFormat, error) {
	switch diagFormat(value) {
	case diagFormatPretty, diagFormatShort, diagFormatJSON:
		return diagFormat(value), nil
	default:
		return "", fmt.Errorf("unknown format: %s (expected pretty|short|json)", value)
	}
}

// writeDiagnostics renders bag to w. Nothing is written for an empty bag
// unless the format is json.
func writeDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, format diagFormat, useColor bool) error {
	if bag == nil {
		return nil
	}
	switch format {
	case diagFormatJSON:
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true})
	case diagFormatShort:
		if bag.Len() == 0 {
			return nil
		}
		return diagfmt.Short(w, bag, fs, diagfmt.PathModeAuto)
	default:
		if bag.Len() == 0 {
			return nil
		}
		return diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     useColor,
			Context:   1,
			ShowNotes: true,
		})
	}
}

// reportDiagnostics prints diagnostics to stderr in the pretty format.
func reportDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	useColor, err := colorEnabled(cmd, os.Stderr)
	if err != nil {
		return err
	}
	return writeDiagnostics(cmd.ErrOrStderr(), bag, fs, diagFormatPretty, useColor)
}

func maxDiagnosticsFlag(cmd *cobra.Command) (int, error) {
	v, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return v, nil
}

func quietFlag(cmd *cobra.Command) bool {
	v, err := cmd.Root().PersistentFlags().GetBool("quiet")
	return err == nil && v
}

func timingsFlag(cmd *cobra.Command) bool {
	v, err := cmd.Root().PersistentFlags().GetBool("timings")
	return err == nil && v
}

// exitCode maps a command error to a process status: the program's own
// status for `run`, 1 for diagnostics or unformatted files, 2 for everything else.
func exitCode(err error) int {
	var pe programExit
	if errors.As(err, &pe) {
		return int(pe)
	}
	if errors.Is(err, buildpipeline.ErrDiagnostics) || errors.Is(err, errNeedsFormatting) {
		return 1
	}
	return 2
}

// silent reports errors whose details were already printed.
func silent(err error) bool {
	var pe programExit
	return errors.Is(err, buildpipeline.ErrDiagnostics) || errors.Is(err, errNeedsFormatting) || errors.As(err, &pe)
}
