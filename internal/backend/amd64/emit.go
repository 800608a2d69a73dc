// Package amd64 emits NASM assembly for x86-64 Linux from MIR.
//
// Values live in stack slots, one per SSA value; literals live in a
// read-only pool. Phis are resolved by giving every value of a phi chain
// the same slot.
package amd64

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"vecl/internal/layout"
	"vecl/internal/mir"
)

// Options configures emission.
type Options struct {
	// Jobs bounds the number of functions emitted concurrently; values
	// below 1 mean one at a time.
	Jobs int
}

// Emitter holds the module-wide state shared by all functions. After
// newEmitter returns it is read-only.
type Emitter struct {
	mod    *mir.Module
	pool   *literalPool
	target layout.Target
}

func newEmitter(mod *mir.Module) *Emitter {
	e := &Emitter{mod: mod, pool: newLiteralPool(), target: layout.X86_64LinuxGNU()}
	e.pool.collect(mod)
	return e
}

// EmitModule writes the assembly for mod to w.
func EmitModule(w io.Writer, mod *mir.Module, opts Options) error {
	if mod == nil {
		return errors.New("amd64: nil module")
	}
	if mod.MainFunc() == nil {
		return errors.New("amd64: module has no main function")
	}
	e := newEmitter(mod)

	bodies := make([][]byte, len(mod.Funcs))
	var g errgroup.Group
	g.SetLimit(max(opts.Jobs, 1))
	for i, f := range mod.Funcs {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("amd64: function %s: %v", f.Name, r)
				}
			}()
			bodies[i] = newFuncEmitter(e, f).emit()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	if _, err := io.WriteString(w, helpers); err != nil {
		return err
	}
	if err := entry(w, mod); err != nil {
		return err
	}
	for _, body := range bodies {
		if _, err := w.Write(body); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	if err := e.pool.write(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, rodata)
	return err
}

// EmitString is EmitModule into a string.
func EmitString(mod *mir.Module, opts Options) (string, error) {
	var buf bytes.Buffer
	if err := EmitModule(&buf, mod, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}
