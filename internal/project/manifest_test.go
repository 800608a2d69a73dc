package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFindsManifestAbove(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), `
[package]
name = "demo"

[build]
main = "src/app.vl"
keep_tmp = true
jobs = 3
`)
	writeFile(t, filepath.Join(root, "src", "app.vl"), "fn main() {}\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := Load(nested)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	cfg := m.Config
	if cfg.Package.Name != "demo" || !cfg.Build.KeepTmp || cfg.Build.Jobs != 3 {
		t.Fatalf("config = %+v", cfg)
	}
	if cfg.Build.Assembler != DefaultAssembler || cfg.Build.Linker != DefaultLinker || cfg.Build.Output != "demo" {
		t.Fatalf("defaults not applied: %+v", cfg.Build)
	}
	mainPath, err := m.MainFile()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(mainPath) != "app.vl" {
		t.Fatalf("main = %s", mainPath)
	}
	if m.OutputPath() != filepath.Join(m.Root, "demo") {
		t.Fatalf("output = %s", m.OutputPath())
	}
}

func TestLoadWithoutManifest(t *testing.T) {
	_, ok, err := Load(t.TempDir())
	if err != nil || ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	cases := []struct {
		name, content, want string
	}{
		{"no package", "[build]\nmain = \"a.vl\"\n", "missing [package]"},
		{"no name", "[package]\nname = \" \"\n", "missing [package].name"},
		{"unknown key", "[package]\nname = \"x\"\n[build]\nmian = \"a.vl\"\n", "unknown key"},
		{"negative jobs", "[package]\nname = \"x\"\n[build]\njobs = -1\n", "jobs"},
		{"bad toml", "[package\n", "failed to parse TOML"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, c.content)
			_, err := LoadConfig(path)
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Fatalf("err = %v, want %q", err, c.want)
			}
		})
	}
}

func TestMainFileMustBeSource(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.txt"), "")
	m := &Manifest{Path: filepath.Join(root, ManifestName), Root: root, Config: Config{Build: BuildConfig{Main: "main.txt"}}}
	if _, err := m.MainFile(); err == nil {
		t.Fatal("expected an error")
	}
	m.Config.Build.Main = "missing.vl"
	if _, err := m.MainFile(); err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("err = %v", err)
	}
}

func TestCombineIsOrderSensitive(t *testing.T) {
	var d Digest
	a := Combine(d, []byte("x"), []byte("y"))
	b := Combine(d, []byte("y"), []byte("x"))
	c := Combine(d, []byte("xy"))
	if a == b || a == c {
		t.Fatal("digests collide")
	}
}
