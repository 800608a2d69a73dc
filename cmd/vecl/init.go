package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"vecl/internal/project"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path|name]",
		Short: "Initialize a new vecl project",
		Long: `Initialize a new vecl project by creating a manifest (vecl.toml) and an
entry point (main.vl). A missing directory is created.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", target, err)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "vecl-project"
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	if err := os.WriteFile(manifestPath, []byte(defaultManifest(name)), 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	mainName := "main" + project.SourceExt
	mainPath := filepath.Join(target, mainName)
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMain), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", mainName, err)
		}
		createdMain = true
	}

	if quietFlag(cmd) {
		return nil
	}
	out := cmd.OutOrStdout()
	cwd, _ := os.Getwd()
	fmt.Fprintf(out, "Initialized vecl project in %s\n", formatPathForOutput(cwd, target))
	fmt.Fprintf(out, "  - %s\n", project.ManifestName)
	if createdMain {
		fmt.Fprintf(out, "  - %s\n", mainName)
	} else {
		fmt.Fprintf(out, "  - %s (existing)\n", mainName)
	}
	return nil
}

func defaultManifest(name string) string {
	return fmt.Sprintf(`[package]
name = %q

[build]
main = "main.vl"
`, name)
}

const defaultMain = `// vecl starter program
fn length2(v: vec3) -> real {
	return v.x * v.x + v.y * v.y + v.z * v.z;
}

fn main() -> int {
	let v = vec3(1.0, 2.0, 2.0) * 0.5;
	printr(length2(v));
	return 0;
}
`
