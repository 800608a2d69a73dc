package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// SourceExt is the extension of vecl source files.
const SourceExt = ".vl"

// Manifest is a parsed vecl.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

// BuildConfig drives `vecl build` when no file is given.
type BuildConfig struct {
	Main      string `toml:"main"`
	Output    string `toml:"output"`
	Assembler string `toml:"assembler"`
	Linker    string `toml:"linker"`
	KeepTmp   bool   `toml:"keep_tmp"`
	Jobs      int    `toml:"jobs"`
}

// Defaults for tools not named in the manifest.
const (
	DefaultAssembler = "nasm"
	DefaultLinker    = "gcc"
)

// Load finds and parses the manifest above startDir. ok is false when
// there is none.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig parses one manifest file and fills in defaults.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if cfg.Build.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [build].jobs must not be negative", path)
	}
	if cfg.Build.Main == "" {
		cfg.Build.Main = "main" + SourceExt
	}
	if cfg.Build.Output == "" {
		cfg.Build.Output = cfg.Package.Name
	}
	if cfg.Build.Assembler == "" {
		cfg.Build.Assembler = DefaultAssembler
	}
	if cfg.Build.Linker == "" {
		cfg.Build.Linker = DefaultLinker
	}
	return cfg, nil
}

// MainFile resolves [build].main against the project root.
func (m *Manifest) MainFile() (string, error) {
	if m == nil {
		return "", errors.New("missing project manifest")
	}
	mainPath := filepath.Join(m.Root, filepath.FromSlash(strings.TrimSpace(m.Config.Build.Main)))
	info, err := os.Stat(mainPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: [build].main path does not exist: %s", m.Path, mainPath)
		}
		return "", fmt.Errorf("%s: failed to stat [build].main: %w", m.Path, err)
	}
	if info.IsDir() || filepath.Ext(mainPath) != SourceExt {
		return "", fmt.Errorf("%s: [build].main must be a %s file", m.Path, SourceExt)
	}
	return mainPath, nil
}

// OutputPath is the executable path for the project.
func (m *Manifest) OutputPath() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Build.Output))
}
