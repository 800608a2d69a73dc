package diagfmt

import (
	"os"
	"path/filepath"

	"vecl/internal/source"
)

func formatPath(f *source.File, mode PathMode) string {
	if f.Flags&source.FileVirtual != 0 {
		return f.Path
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		wd, err := os.Getwd()
		if err != nil {
			break
		}
		abs, err := filepath.Abs(f.Path)
		if err != nil {
			break
		}
		if rel, err := filepath.Rel(wd, abs); err == nil {
			return filepath.ToSlash(rel)
		}
	case PathModeBasename:
		return filepath.Base(f.Path)
	}
	return f.Path
}
