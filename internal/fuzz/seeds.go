package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10

var builtinSeeds = []string{
	"",
	"fn main() -> int { return 0; }\n",
	"fn f(a, b) { return a + b; }\nfn main() -> int { return f(1, 2); }\n",
	"fn main() -> int { let v = vec4(1.0, 2.0, 3.0, 4.0); printr(v.wzyx.x); return 0; }\n",
	"fn main() -> int { let c = complex(1.0, 2.0) * 2i; if c == 2i { return 1; } return 0; }\n",
	"fn main() -> int { let i = 0; while i < 10 { i = i + 1; if i == 5 { break; } } return i; }\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// все *.vl из testdata идут в корпус
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".vl" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
