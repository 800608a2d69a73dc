package vm

import (
	"fmt"
	"math"
	"strconv"

	"vecl/internal/value"
)

type intrinsic func(vm *VM, args []value.Value) error

// builtins mirror the runtime preamble helpers, including printf's
// formatting of their argument.
var builtins = map[string]intrinsic{
	"printi": func(vm *VM, args []value.Value) error {
		return vm.println(strconv.FormatInt(args[0].I, 10))
	},
	"printr": func(vm *VM, args []value.Value) error {
		return vm.println(formatCFloat(float64(args[0].F[0])))
	},
	"printb": func(vm *VM, args []value.Value) error {
		if args[0].AsBool() {
			return vm.println("true")
		}
		return vm.println("false")
	},
}

func (vm *VM) println(s string) error {
	if _, err := vm.out.WriteString(s); err != nil {
		return fmt.Errorf("vm: write output: %w", err)
	}
	return vm.out.WriteByte('\n')
}

// formatCFloat renders f as glibc printf("%f") does.
func formatCFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		if math.Signbit(f) {
			return "-nan"
		}
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', 6, 64)
}
