package vm

import (
	"math"

	"vecl/internal/mir"
	"vecl/internal/types"
	"vecl/internal/value"
)

func (vm *VM) exec(fr *Frame, in *mir.Instr) error {
	switch in.Kind {
	case mir.InstrAssign:
		v, err := vm.read(fr, in.Assign.Src)
		if err != nil {
			return err
		}
		vm.define(fr, in.Assign.Dst, v)

	case mir.InstrBinary:
		b := &in.Binary
		l, err := vm.read(fr, b.L)
		if err != nil {
			return err
		}
		r, err := vm.read(fr, b.R)
		if err != nil {
			return err
		}
		v, err := vm.binary(b, l, r)
		if err != nil {
			return err
		}
		vm.define(fr, b.Dst, v)

	case mir.InstrUnary:
		x, err := vm.read(fr, in.Unary.X)
		if err != nil {
			return err
		}
		vm.define(fr, in.Unary.Dst, unary(in.Unary.Op, x))

	case mir.InstrCall:
		return vm.call(fr, &in.Call)

	case mir.InstrPack:
		comps := make([]value.Value, len(in.Pack.Elems))
		for i, e := range in.Pack.Elems {
			v, err := vm.read(fr, e)
			if err != nil {
				return err
			}
			comps[i] = v
		}
		vm.define(fr, in.Pack.Dst, value.Pack(vm.M.TypeOf(in.Pack.Dst), comps))

	case mir.InstrSwizzle:
		x, err := vm.read(fr, in.Swizzle.X)
		if err != nil {
			return err
		}
		vm.define(fr, in.Swizzle.Dst, value.Swizzle(x, in.Swizzle.Lanes))

	default:
		return vm.panicf(PanicUnimplemented, "instruction kind %d", in.Kind)
	}
	return nil
}

// read resolves an operand. Global constants come first, then phi
// destinations through their chain cell.
func (vm *VM) read(fr *Frame, a mir.Atom) (value.Value, error) {
	if a.IsLit() {
		return a.Lit, nil
	}
	if v, ok := vm.M.Pool[a.ID]; ok {
		return v, nil
	}
	if fr.info.phiDst[a.ID] {
		return fr.chains[fr.info.chain[a.ID]], nil
	}
	v, ok := fr.regs[a.ID]
	if !ok {
		return value.Value{}, vm.panicf(PanicUseBeforeDef, "%s read before definition in %s", a.ID, fr.Func.Name)
	}
	return v, nil
}

func (vm *VM) define(fr *Frame, id mir.ValueID, v value.Value) {
	fr.regs[id] = v
	if c, ok := fr.info.chain[id]; ok && !fr.info.phiDst[id] {
		fr.chains[c] = v
	}
}

func (vm *VM) call(fr *Frame, c *mir.CallInstr) error {
	args := make([]value.Value, len(c.Args))
	for i, a := range c.Args {
		v, err := vm.read(fr, a)
		if err != nil {
			return err
		}
		args[i] = v
	}
	if builtin, ok := builtins[c.Name]; ok {
		return builtin(vm, args)
	}
	fn, ok := vm.funcs[c.Fun]
	if !ok {
		return vm.panicf(PanicUnknownFunc, "call to unknown function %q", c.Name)
	}
	return vm.push(fn, args, c.Dst)
}

func (vm *VM) binary(b *mir.BinaryInstr, l, r value.Value) (value.Value, error) {
	if b.Op.IsRel() {
		return value.Bool(compare(b.Op, b.Operand, l, r)), nil
	}
	if b.Operand == types.Int && b.Op == types.OpDiv {
		if r.I == 0 {
			return value.Value{}, vm.panicf(PanicDivideByZero, "integer division by zero")
		}
		if l.I == math.MinInt64 && r.I == -1 {
			return value.Value{}, vm.panicf(PanicDivideByZero, "integer division overflow")
		}
	}
	v, ok := value.Binary(b.Op, l, r)
	if !ok {
		return value.Value{}, vm.panicf(PanicUnimplemented, "%s on %s and %s", b.Op, l.Type, r.Type)
	}
	return v, nil
}

// compare evaluates a comparison the way the backend does: int and bool
// compare as words, float-backed types lane by lane.
func compare(op types.BinaryOp, operand types.Type, l, r value.Value) bool {
	if operand == types.Int || operand == types.Bool {
		a, b := l.I, r.I
		switch op {
		case types.OpLt:
			return a < b
		case types.OpLe:
			return a <= b
		case types.OpGt:
			return a > b
		case types.OpGe:
			return a >= b
		case types.OpEq:
			return a == b
		default:
			return a != b
		}
	}
	v, _ := value.Binary(op, l, r)
	return v.AsBool()
}

func unary(op types.UnaryOp, x value.Value) value.Value {
	if op == types.OpNot {
		// xor with 1, as emitted
		return value.Value{Type: types.Bool, I: x.I ^ 1}
	}
	v, _ := value.Unary(op, x)
	return v
}
