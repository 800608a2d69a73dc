package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/sync/errgroup"

	"vecl/internal/format"
	"vecl/internal/project"
)

// FormatOptions configures FormatPaths.
type FormatOptions struct {
	Check   bool // report changes without writing
	Stdout  bool // return formatted bytes instead of writing
	Jobs    int
	Options format.Options
}

// FormatResult is the outcome for one file.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
}

// FormatPaths formats the given files and directories. Per-file failures
// are recorded in the results; the error return is for failures that stop
// the whole run.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	files, err := collectSourceFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}

	results := make([]FormatResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	if opts.Jobs > 0 {
		g.SetLimit(opts.Jobs)
	}
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatOne(path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func formatOne(path string, opts FormatOptions) FormatResult {
	res := FormatResult{Path: path}
	// #nosec G304 -- path comes from the command line
	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = err
		return res
	}
	formatted, err := format.Source(path, data, opts.Options)
	if err != nil {
		res.Err = err
		return res
	}
	res.Changed = !bytes.Equal(data, formatted)
	switch {
	case opts.Stdout:
		res.Formatted = formatted
	case opts.Check || !res.Changed:
	default:
		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(path, formatted, mode.Perm()); err != nil {
			res.Err = fmt.Errorf("write: %w", err)
		}
	}
	return res
}

func collectSourceFiles(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if filepath.Ext(p) == project.SourceExt {
				files = append(files, p)
			}
			continue
		}
		found, err := ListSources(p)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}
