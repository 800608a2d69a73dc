package vm_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"vecl/internal/mir"
	"vecl/internal/testkit"
	"vecl/internal/vm"
)

func lower(t *testing.T, src string) *mir.Module {
	t.Helper()
	typed, table := testkit.Typed(t, src)
	m := mir.LowerModule(context.Background(), typed, table)
	if err := mir.Validate(m); err != nil {
		t.Fatalf("invalid MIR: %v", err)
	}
	return m
}

func run(t *testing.T, src string, opts vm.Options) (string, int, error) {
	t.Helper()
	var out bytes.Buffer
	opts.Stdout = &out
	code, err := vm.New(lower(t, src), opts).Run(context.Background())
	return out.String(), code, err
}

func TestVMGolden(t *testing.T) {
	dir := filepath.Join("..", "..", "testdata", "golden", "vm")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read golden dir: %v", err)
	}
	for _, ent := range entries {
		if ent.IsDir() || !strings.HasSuffix(ent.Name(), ".vl") {
			continue
		}
		name := strings.TrimSuffix(ent.Name(), ".vl")
		t.Run(name, func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join(dir, name+".vl"))
			if err != nil {
				t.Fatal(err)
			}
			wantOut, err := os.ReadFile(filepath.Join(dir, name+".out"))
			if err != nil {
				t.Fatalf("read %s.out: %v", name, err)
			}
			wantCode := 0
			if b, err := os.ReadFile(filepath.Join(dir, name+".code")); err == nil {
				if wantCode, err = strconv.Atoi(strings.TrimSpace(string(b))); err != nil {
					t.Fatalf("parse %s.code: %v", name, err)
				}
			}

			out, code, err := run(t, string(src), vm.Options{MaxSteps: 1_000_000})
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if code != wantCode {
				t.Fatalf("exit code: want %d, got %d\nstdout:\n%s", wantCode, code, out)
			}
			if out != string(wantOut) {
				t.Fatalf("output mismatch:\nwant:\n%s\ngot:\n%s", wantOut, out)
			}
		})
	}
}

func TestDivisionByZeroPanics(t *testing.T) {
	_, _, err := run(t, `
fn div(a: int, b: int) -> int { return a / b; }
fn main() -> int { return div(1, 0); }
`, vm.Options{})
	var vmErr *vm.VMError
	if !errors.As(err, &vmErr) || vmErr.Code != vm.PanicDivideByZero {
		t.Fatalf("err = %v", err)
	}
	if len(vmErr.Backtrace) != 2 || vmErr.Backtrace[0].FuncName != "div" || vmErr.Backtrace[1].FuncName != "main" {
		t.Fatalf("backtrace = %+v", vmErr.Backtrace)
	}
	if !strings.HasPrefix(vmErr.Error(), "panic VM1002:") {
		t.Fatalf("message = %q", vmErr.Error())
	}
}

func TestStepLimit(t *testing.T) {
	_, _, err := run(t, `
fn main() {
	let i = 0;
	while i >= 0 {
		i = i + 1;
	}
}
`, vm.Options{MaxSteps: 500})
	var vmErr *vm.VMError
	if !errors.As(err, &vmErr) || vmErr.Code != vm.PanicStepLimit {
		t.Fatalf("err = %v", err)
	}
}

func TestStackOverflow(t *testing.T) {
	_, _, err := run(t, `
fn f(n: int) -> int { return f(n + 1); }
fn main() -> int { return f(0); }
`, vm.Options{MaxDepth: 50})
	var vmErr *vm.VMError
	if !errors.As(err, &vmErr) || vmErr.Code != vm.PanicStackOverflow {
		t.Fatalf("err = %v", err)
	}
	if len(vmErr.Backtrace) != 50 {
		t.Fatalf("backtrace depth = %d", len(vmErr.Backtrace))
	}
}

func TestExitStatusIsLowByte(t *testing.T) {
	_, code, err := run(t, `fn main() -> int { return 258; }`, vm.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if code != 2 {
		t.Fatalf("code = %d", code)
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := lower(t, `fn main() { printi(1); }`)
	if _, err := vm.New(m, vm.Options{}).Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}
