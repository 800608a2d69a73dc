package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"vecl/internal/driver"
	"vecl/internal/format"
)

var errNeedsFormatting = errors.New("fmt: formatting changes required")

func newFmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [flags] <path> [path...]",
		Short: "Format vecl source files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runFmt,
	}
	cmd.Flags().Bool("check", false, "list files that need formatting without rewriting them")
	cmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	cmd.Flags().String("format", "text", "report format (text|json)")
	cmd.Flags().Bool("tabs", false, "indent with tabs")
	cmd.Flags().Int("indent", 4, "indent width in spaces")
	return cmd
}

func runFmt(cmd *cobra.Command, args []string) error {
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return fmt.Errorf("failed to get check flag: %w", err)
	}
	toStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return fmt.Errorf("failed to get stdout flag: %w", err)
	}
	report, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	tabs, err := cmd.Flags().GetBool("tabs")
	if err != nil {
		return fmt.Errorf("failed to get tabs flag: %w", err)
	}
	indent, err := cmd.Flags().GetInt("indent")
	if err != nil {
		return fmt.Errorf("failed to get indent flag: %w", err)
	}
	if toStdout && check {
		return errors.New("fmt: --stdout cannot be used with --check")
	}
	if report != "text" && report != "json" {
		return fmt.Errorf("fmt: unsupported output format %q", report)
	}
	if toStdout && report != "text" {
		return errors.New("fmt: --stdout is only supported with text output")
	}

	results, err := driver.FormatPaths(cmd.Context(), args, driver.FormatOptions{
		Check:   check,
		Stdout:  toStdout,
		Options: format.Options{IndentWidth: indent, UseTabs: tabs},
	})
	if err != nil {
		return err
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	var failed, changed bool
	for _, res := range results {
		if res.Err != nil {
			failed = true
		}
		changed = changed || res.Changed
	}

	if report == "json" {
		type jsonResult struct {
			Path    string `json:"path"`
			Changed bool   `json:"changed"`
			Error   string `json:"error,omitempty"`
		}
		payload := make([]jsonResult, 0, len(results))
		for _, res := range results {
			jr := jsonResult{Path: res.Path, Changed: res.Changed}
			if res.Err != nil {
				jr.Error = res.Err.Error()
			}
			payload = append(payload, jr)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return err
		}
	} else {
		quiet := quietFlag(cmd)
		for _, res := range results {
			switch {
			case res.Err != nil:
				fmt.Fprintf(errOut, "fmt: %s: %v\n", res.Path, res.Err)
			case toStdout:
				if _, err := out.Write(res.Formatted); err != nil {
					return err
				}
			case res.Changed && !quiet && check:
				fmt.Fprintln(out, res.Path)
			case res.Changed && !quiet:
				fmt.Fprintf(out, "reformatted %s\n", res.Path)
			}
		}
	}

	if failed {
		return errors.New("fmt: failed to format some files")
	}
	if check && changed {
		return errNeedsFormatting
	}
	return nil
}
