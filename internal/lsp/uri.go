package lsp

import (
	"net/url"
	"path/filepath"
)

// uriToPath converts a file:// URI to a clean local path. Other schemes
// map to "".
func uriToPath(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || uri == "" {
		return ""
	}
	switch u.Scheme {
	case "file":
		return filepath.Clean(filepath.FromSlash(u.Path))
	case "":
		return filepath.Clean(uri)
	default:
		return ""
	}
}

func pathToURI(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}
