package amd64

import (
	"fmt"

	"vecl/internal/mir"
	"vecl/internal/types"
)

// intCond maps a comparison to its signed condition-code suffix.
var intCond = map[types.BinaryOp]string{
	types.OpLt: "l", types.OpLe: "le", types.OpGt: "g",
	types.OpGe: "ge", types.OpEq: "e", types.OpNe: "ne",
}

var packedOp = map[types.BinaryOp]string{
	types.OpAdd: "add", types.OpSub: "sub", types.OpMul: "mul", types.OpDiv: "div",
}

func (fe *funcEmitter) instr(in *mir.Instr) {
	switch in.Kind {
	case mir.InstrAssign:
		dst := in.Assign.Dst
		fe.copy(fe.addrOf(dst), fe.operand(in.Assign.Src), fe.typeOf(dst))
	case mir.InstrBinary:
		fe.binary(&in.Binary)
	case mir.InstrUnary:
		fe.unary(&in.Unary)
	case mir.InstrCall:
		fe.call(&in.Call)
	case mir.InstrPack:
		fe.pack(&in.Pack)
	case mir.InstrSwizzle:
		fe.swizzle(&in.Swizzle)
	default:
		panic(fmt.Sprintf("amd64: unexpected instruction kind %d", in.Kind))
	}
	if dst := in.Dst(); dst.IsValid() {
		fe.defined(dst)
	}
}

func (fe *funcEmitter) binary(b *mir.BinaryInstr) {
	dst := fe.addrOf(b.Dst)
	l, r := fe.operand(b.L), fe.operand(b.R)

	if b.Op.IsRel() {
		cc := fe.compare(b.Op, l, r, b.Operand)
		fe.ins("set%s al", cc)
		fe.ins("movzx eax, al")
		fe.ins("mov qword %s, rax", dst)
		return
	}

	switch {
	case b.Operand == types.Int || b.Operand == types.Bool:
		fe.intArith(b.Op, dst, l, r)
	case b.Scaling:
		fe.scaling(b, dst, l, r)
	case b.Operand == types.Complex && (b.Op == types.OpMul || b.Op == types.OpDiv):
		fe.complexArith(b.Op, dst, l, r)
	default:
		op, ok := packedOp[b.Op]
		if !ok {
			panic(fmt.Sprintf("amd64: no %s for %s", b.Op, b.Operand))
		}
		suffix := "ps"
		if b.Operand == types.Real {
			suffix = "ss"
		}
		fe.loadX("xmm0", l, b.Operand)
		fe.loadX("xmm1", r, b.Operand)
		fe.ins("%s%s xmm0, xmm1", op, suffix)
		fe.storeX(dst, "xmm0", b.Operand)
	}
}

func (fe *funcEmitter) intArith(op types.BinaryOp, dst, l, r addr) {
	fe.ins("mov rax, qword %s", l)
	switch op {
	case types.OpAdd:
		fe.ins("add rax, qword %s", r)
	case types.OpSub:
		fe.ins("sub rax, qword %s", r)
	case types.OpMul:
		fe.ins("imul rax, qword %s", r)
	case types.OpDiv:
		fe.ins("cqo")
		fe.ins("idiv qword %s", r)
	case types.OpAnd:
		fe.ins("and rax, qword %s", r)
	case types.OpOr:
		fe.ins("or rax, qword %s", r)
	default:
		panic(fmt.Sprintf("amd64: no integer %s", op))
	}
	fe.ins("mov qword %s, rax", dst)
}

// scaling multiplies or divides every lane of a vector by a real.
func (fe *funcEmitter) scaling(b *mir.BinaryInstr, dst, l, r addr) {
	vec, scalar := l, r
	if !b.L.Type.IsVector() {
		vec, scalar = r, l
	}
	fe.loadX("xmm0", vec, b.Operand)
	fe.ins("movss xmm1, dword %s", scalar)
	fe.ins("shufps xmm1, xmm1, 0")
	fe.ins("%sps xmm0, xmm1", packedOp[b.Op])
	fe.storeX(dst, "xmm0", b.Operand)
}

// complexArith expands (a+bi)*(c+di) and (a+bi)/(c+di) over the two lanes.
func (fe *funcEmitter) complexArith(op types.BinaryOp, dst, l, r addr) {
	a, b := l, l.plus(4)
	c, d := r, r.plus(4)
	mul := func(reg string, x, y addr) {
		fe.ins("movss %s, dword %s", reg, x)
		fe.ins("mulss %s, dword %s", reg, y)
	}
	if op == types.OpMul {
		mul("xmm0", a, c)
		mul("xmm1", b, d)
		fe.ins("subss xmm0, xmm1")
		mul("xmm1", a, d)
		mul("xmm2", b, c)
		fe.ins("addss xmm1, xmm2")
	} else {
		mul("xmm3", c, c)
		mul("xmm4", d, d)
		fe.ins("addss xmm3, xmm4")
		mul("xmm0", a, c)
		mul("xmm1", b, d)
		fe.ins("addss xmm0, xmm1")
		fe.ins("divss xmm0, xmm3")
		mul("xmm1", b, c)
		mul("xmm2", a, d)
		fe.ins("subss xmm1, xmm2")
		fe.ins("divss xmm1, xmm3")
	}
	fe.ins("movss dword %s, xmm0", dst)
	fe.ins("movss dword %s, xmm1", dst.plus(4))
}

// compare sets flags for l op r and returns the condition code under
// which the comparison holds. Float types compare all lanes: the result is
// true only when the packed compare holds in every lane of t.
func (fe *funcEmitter) compare(op types.BinaryOp, l, r addr, t types.Type) string {
	if !t.IsFloat() {
		fe.ins("mov rax, qword %s", l)
		fe.ins("cmp rax, qword %s", r)
		return intCond[op]
	}
	var cmp string
	switch op {
	case types.OpLt:
		cmp = "cmpltps"
	case types.OpLe:
		cmp = "cmpleps"
	case types.OpGt:
		cmp, l, r = "cmpltps", r, l
	case types.OpGe:
		cmp, l, r = "cmpleps", r, l
	case types.OpEq, types.OpNe:
		cmp = "cmpeqps"
	default:
		panic(fmt.Sprintf("amd64: %s is not a comparison", op))
	}
	mask := 1<<t.Lanes() - 1
	fe.loadX("xmm0", l, t)
	fe.loadX("xmm1", r, t)
	fe.ins("%s xmm0, xmm1", cmp)
	fe.ins("movmskps eax, xmm0")
	fe.ins("and eax, %d", mask)
	fe.ins("cmp eax, %d", mask)
	if op == types.OpNe {
		return "ne"
	}
	return "e"
}

func (fe *funcEmitter) unary(u *mir.UnaryInstr) {
	dst := fe.addrOf(u.Dst)
	x := fe.operand(u.X)
	t := fe.typeOf(u.Dst)
	switch {
	case u.Op == types.OpNot:
		fe.ins("mov rax, qword %s", x)
		fe.ins("xor rax, 1")
		fe.ins("mov qword %s, rax", dst)
	case t == types.Int:
		fe.ins("mov rax, qword %s", x)
		fe.ins("neg rax")
		fe.ins("mov qword %s, rax", dst)
	default:
		fe.loadX("xmm0", x, t)
		fe.ins("xorps xmm0, %s", fe.e.pool.signMask())
		fe.storeX(dst, "xmm0", t)
	}
}

// call spills the arguments below rsp in declaration order, keeping the
// stack 16-byte aligned at the call.
func (fe *funcEmitter) call(c *mir.CallInstr) {
	argTypes := make([]types.Type, len(c.Args))
	for i, a := range c.Args {
		argTypes[i] = a.Type
	}
	blk := fe.e.target.Args(argTypes)
	if blk.Size > 0 {
		fe.ins("sub rsp, %d", blk.Size)
	}
	for i, a := range c.Args {
		fe.copy(addr{base: "rsp", off: blk.Offsets[i]}, fe.operand(a), a.Type)
	}
	fe.ins("call %s", calleeLabel(c))
	if blk.Size > 0 {
		fe.ins("add rsp, %d", blk.Size)
	}
	if !c.Dst.IsValid() {
		return
	}
	dst := fe.addrOf(c.Dst)
	if fe.e.target.Wide(fe.typeOf(c.Dst)) {
		fe.ins("movups %s, xmm0", dst)
		return
	}
	fe.ins("mov qword %s, rax", dst)
}

func calleeLabel(c *mir.CallInstr) string {
	if builtinHelpers[c.Name] {
		return c.Name
	}
	return funcLabel(c.Name)
}

func (fe *funcEmitter) pack(p *mir.PackInstr) {
	dst := fe.addrOf(p.Dst)
	for i, el := range p.Elems {
		fe.ins("mov eax, dword %s", fe.operand(el))
		fe.ins("mov dword %s, eax", dst.plus(4*i))
	}
	if fe.typeOf(p.Dst) == types.Vec3 {
		fe.ins("mov dword %s, 0", dst.plus(12))
	}
}

func (fe *funcEmitter) swizzle(s *mir.SwizzleInstr) {
	dst := fe.addrOf(s.Dst)
	x := fe.operand(s.X)
	for i, lane := range s.Lanes {
		fe.ins("mov eax, dword %s", x.plus(4*int(lane)))
		fe.ins("mov dword %s, eax", dst.plus(4*i))
	}
	if fe.typeOf(s.Dst) == types.Vec3 {
		fe.ins("mov dword %s, 0", dst.plus(12))
	}
}

func (fe *funcEmitter) term(t *mir.Terminator) {
	switch t.Kind {
	case mir.TermNone:
	case mir.TermIf:
		it := &t.If
		cc := fe.compare(it.Op, fe.operand(it.L), fe.operand(it.R), it.Operand)
		fe.ins("j%s %s", cc, fe.e.mod.LabelName(it.Target))
	case mir.TermGoto:
		fe.ins("jmp %s", fe.e.mod.LabelName(t.Goto.Target))
	case mir.TermReturn:
		if t.Return.HasValue {
			v := t.Return.Value
			if fe.e.target.Wide(v.Type) {
				fe.ins("movups xmm0, %s", fe.operand(v))
			} else {
				fe.ins("mov rax, qword %s", fe.operand(v))
			}
		}
		fe.ins("mov rsp, rbp")
		fe.ins("pop rbp")
		fe.ins("ret")
	case mir.TermHalt:
		// fell off the end of a function with a result; rsp is
		// aligned here, so buffered output can still be flushed
		fe.ins("xor edi, edi")
		fe.ins("call fflush wrt ..plt")
		fe.ins("mov eax, 60")
		fe.ins("mov edi, 1")
		fe.ins("syscall")
	default:
		panic(fmt.Sprintf("amd64: unexpected terminator kind %d", t.Kind))
	}
}
