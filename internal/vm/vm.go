// Package vm interprets lowered MIR directly. It follows the storage model
// of the native backend, so a program behaves the same whether it is run
// here or assembled and linked.
package vm

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"vecl/internal/mir"
	"vecl/internal/symbols"
	"vecl/internal/trace"
	"vecl/internal/types"
	"vecl/internal/value"
)

// Options configures VM execution.
type Options struct {
	Stdout   io.Writer
	MaxSteps int // 0 means unlimited
	MaxDepth int // call depth; 0 selects DefaultMaxDepth
}

// DefaultMaxDepth bounds recursion like a native stack would.
const DefaultMaxDepth = 10000

// VM is a direct MIR interpreter.
type VM struct {
	M        *mir.Module
	Stack    []*Frame
	ExitCode int
	Halted   bool
	Steps    int

	opts  Options
	out   *bufio.Writer
	funcs map[symbols.FunID]*mir.Func
	infos map[*mir.Func]*funcInfo
	tr    trace.Tracer
	span  uint64
}

// New creates a new VM for executing the given MIR module.
func New(m *mir.Module, opts Options) *VM {
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	vm := &VM{
		M:     m,
		opts:  opts,
		out:   bufio.NewWriter(opts.Stdout),
		funcs: make(map[symbols.FunID]*mir.Func, len(m.Funcs)),
		infos: make(map[*mir.Func]*funcInfo, len(m.Funcs)),
		tr:    trace.Nop,
	}
	for _, f := range m.Funcs {
		vm.funcs[f.ID] = f
	}
	return vm
}

// Run executes main to completion and returns the process exit status:
// main's int result (low byte), 1 after a halt, 0 otherwise. Output is
// flushed before Run returns, as the native entry point does.
func (vm *VM) Run(ctx context.Context) (code int, err error) {
	vm.tr = trace.FromContext(ctx)
	span := trace.Begin(vm.tr, trace.ScopePass, "vm", trace.CurrentSpan(ctx))
	vm.span = span.ID()
	defer func() {
		if flushErr := vm.out.Flush(); flushErr != nil && err == nil {
			err = fmt.Errorf("vm: flush output: %w", flushErr)
		}
		span.End(fmt.Sprintf("steps=%d exit=%d", vm.Steps, code))
	}()

	main := vm.M.MainFunc()
	if main == nil {
		return 0, vm.panicf(PanicUnknownFunc, "module has no main function")
	}
	if err := vm.push(main, nil, mir.NoValueID); err != nil {
		return 0, err
	}
	for !vm.Halted {
		if vm.Steps&1023 == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		if err := vm.Step(); err != nil {
			return 0, err
		}
	}
	return vm.ExitCode, nil
}

// Step executes one instruction or terminator of the innermost frame.
func (vm *VM) Step() error {
	if vm.Halted || len(vm.Stack) == 0 {
		return nil
	}
	vm.Steps++
	if vm.opts.MaxSteps > 0 && vm.Steps > vm.opts.MaxSteps {
		return vm.panicf(PanicStepLimit, "step limit %d exceeded", vm.opts.MaxSteps)
	}
	fr := vm.Stack[len(vm.Stack)-1]
	blk := &fr.Func.Blocks[fr.Block]
	if fr.IP < len(blk.Instrs) {
		in := &blk.Instrs[fr.IP]
		fr.IP++
		return vm.exec(fr, in)
	}
	return vm.terminate(fr, &blk.Term)
}

func (vm *VM) push(fn *mir.Func, args []value.Value, retDst mir.ValueID) error {
	if len(vm.Stack) >= vm.opts.MaxDepth {
		return vm.panicf(PanicStackOverflow, "call depth %d exceeded in %s", vm.opts.MaxDepth, fn.Name)
	}
	info, ok := vm.infos[fn]
	if !ok {
		info = analyzeFunc(fn)
		vm.infos[fn] = info
	}
	fr := newFrame(fn, info, retDst)
	vm.Stack = append(vm.Stack, fr)
	for i, a := range fn.Args {
		vm.define(fr, a, args[i])
	}
	trace.Point(vm.tr, trace.ScopeFunc, "call", fn.Name, vm.span)
	return nil
}

// ret pops the innermost frame and hands v to the caller.
func (vm *VM) ret(v value.Value, hasValue bool) {
	fr := vm.Stack[len(vm.Stack)-1]
	vm.Stack = vm.Stack[:len(vm.Stack)-1]
	if len(vm.Stack) == 0 {
		vm.Halted = true
		if hasValue && v.Type == types.Int {
			vm.ExitCode = int(uint8(v.I)) //nolint:gosec // exit status is the low byte
		}
		return
	}
	if fr.retDst.IsValid() {
		vm.define(vm.Stack[len(vm.Stack)-1], fr.retDst, v)
	}
}

func (vm *VM) halt(code int) {
	vm.Halted = true
	vm.ExitCode = code
	vm.Stack = vm.Stack[:0]
}

func (vm *VM) terminate(fr *Frame, t *mir.Terminator) error {
	switch t.Kind {
	case mir.TermNone:
		return vm.jumpIndex(fr, fr.Block+1)
	case mir.TermIf:
		l, err := vm.read(fr, t.If.L)
		if err != nil {
			return err
		}
		r, err := vm.read(fr, t.If.R)
		if err != nil {
			return err
		}
		if compare(t.If.Op, t.If.Operand, l, r) {
			return vm.jump(fr, t.If.Target)
		}
		return vm.jumpIndex(fr, fr.Block+1)
	case mir.TermGoto:
		return vm.jump(fr, t.Goto.Target)
	case mir.TermReturn:
		if !t.Return.HasValue {
			vm.ret(value.Value{}, false)
			return nil
		}
		v, err := vm.read(fr, t.Return.Value)
		if err != nil {
			return err
		}
		vm.ret(v, true)
		return nil
	case mir.TermHalt:
		vm.halt(1)
		return nil
	default:
		return vm.panicf(PanicUnimplemented, "terminator kind %d", t.Kind)
	}
}

func (vm *VM) jump(fr *Frame, l mir.LabelID) error {
	idx, ok := fr.info.blocks[l]
	if !ok {
		return vm.panicf(PanicBadBlock, "unknown label %s in %s", vm.M.LabelName(l), fr.Func.Name)
	}
	return vm.jumpIndex(fr, idx)
}

func (vm *VM) jumpIndex(fr *Frame, idx int) error {
	if idx < 0 || idx >= len(fr.Func.Blocks) {
		return vm.panicf(PanicBadBlock, "control fell off the end of %s", fr.Func.Name)
	}
	fr.Block, fr.IP = idx, 0
	return nil
}
