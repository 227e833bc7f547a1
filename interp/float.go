package interp

import (
	"math"

	"github.com/chewxy/math32"

	"github.com/corewasm/vertexvm/wasm"
)

// execF32 dispatches an F32 unary/binary/comparison opcode. Unary ops use
// chewxy/math32 (float32-native, avoiding a float64 round-trip) except
// Nearest: math32 has no round-ties-to-even primitive, so Nearest converts
// through math.RoundToEven and back, the one deliberate float64 detour in
// this function.
func execF32(op wasm.Op, stack *Stack) *Trap {
	switch op {
	case wasm.OpF32Abs:
		v, trap := stack.Pop()
		if trap != nil {
			return trap
		}
		return stack.Push(F32Val(math32.Abs(v.F32)))
	case wasm.OpF32Neg:
		v, trap := stack.Pop()
		if trap != nil {
			return trap
		}
		return stack.Push(F32Val(-v.F32))
	case wasm.OpF32Ceil:
		v, trap := stack.Pop()
		if trap != nil {
			return trap
		}
		return stack.Push(F32Val(math32.Ceil(v.F32)))
	case wasm.OpF32Floor:
		v, trap := stack.Pop()
		if trap != nil {
			return trap
		}
		return stack.Push(F32Val(math32.Floor(v.F32)))
	case wasm.OpF32Trunc:
		v, trap := stack.Pop()
		if trap != nil {
			return trap
		}
		return stack.Push(F32Val(math32.Trunc(v.F32)))
	case wasm.OpF32Nearest:
		v, trap := stack.Pop()
		if trap != nil {
			return trap
		}
		return stack.Push(F32Val(float32(math.RoundToEven(float64(v.F32)))))
	case wasm.OpF32Sqrt:
		v, trap := stack.Pop()
		if trap != nil {
			return trap
		}
		return stack.Push(F32Val(math32.Sqrt(v.F32)))
	}

	lhs, rhs, trap := pop2F32(stack)
	if trap != nil {
		return trap
	}

	switch op {
	case wasm.OpF32Eq:
		return pushBool(stack, lhs == rhs)
	case wasm.OpF32Ne:
		return pushBool(stack, lhs != rhs)
	case wasm.OpF32Lt:
		return pushBool(stack, lhs < rhs)
	case wasm.OpF32Gt:
		return pushBool(stack, lhs > rhs)
	case wasm.OpF32Le:
		return pushBool(stack, lhs <= rhs)
	case wasm.OpF32Ge:
		return pushBool(stack, lhs >= rhs)
	case wasm.OpF32Add:
		return stack.Push(F32Val(lhs + rhs))
	case wasm.OpF32Sub:
		return stack.Push(F32Val(lhs - rhs))
	case wasm.OpF32Mul:
		return stack.Push(F32Val(lhs * rhs))
	case wasm.OpF32Div:
		return stack.Push(F32Val(lhs / rhs))
	case wasm.OpF32Min:
		return stack.Push(F32Val(wasmMinF32(lhs, rhs)))
	case wasm.OpF32Max:
		return stack.Push(F32Val(wasmMaxF32(lhs, rhs)))
	case wasm.OpF32Copysign:
		return stack.Push(F32Val(math32.Copysign(lhs, rhs)))
	default:
		return newTrap(TrapInvalidCall, "unhandled f32 opcode %d", op)
	}
}

// execF64 is execF32's f64 counterpart, backed by the standard math package
// (there is no float64-native alternative to reach for in this corpus).
func execF64(op wasm.Op, stack *Stack) *Trap {
	switch op {
	case wasm.OpF64Abs:
		v, trap := stack.Pop()
		if trap != nil {
			return trap
		}
		return stack.Push(F64Val(math.Abs(v.F64)))
	case wasm.OpF64Neg:
		v, trap := stack.Pop()
		if trap != nil {
			return trap
		}
		return stack.Push(F64Val(-v.F64))
	case wasm.OpF64Ceil:
		v, trap := stack.Pop()
		if trap != nil {
			return trap
		}
		return stack.Push(F64Val(math.Ceil(v.F64)))
	case wasm.OpF64Floor:
		v, trap := stack.Pop()
		if trap != nil {
			return trap
		}
		return stack.Push(F64Val(math.Floor(v.F64)))
	case wasm.OpF64Trunc:
		v, trap := stack.Pop()
		if trap != nil {
			return trap
		}
		return stack.Push(F64Val(math.Trunc(v.F64)))
	case wasm.OpF64Nearest:
		v, trap := stack.Pop()
		if trap != nil {
			return trap
		}
		return stack.Push(F64Val(math.RoundToEven(v.F64)))
	case wasm.OpF64Sqrt:
		v, trap := stack.Pop()
		if trap != nil {
			return trap
		}
		return stack.Push(F64Val(math.Sqrt(v.F64)))
	}

	lhs, rhs, trap := pop2F64(stack)
	if trap != nil {
		return trap
	}

	switch op {
	case wasm.OpF64Eq:
		return pushBool(stack, lhs == rhs)
	case wasm.OpF64Ne:
		return pushBool(stack, lhs != rhs)
	case wasm.OpF64Lt:
		return pushBool(stack, lhs < rhs)
	case wasm.OpF64Gt:
		return pushBool(stack, lhs > rhs)
	case wasm.OpF64Le:
		return pushBool(stack, lhs <= rhs)
	case wasm.OpF64Ge:
		return pushBool(stack, lhs >= rhs)
	case wasm.OpF64Add:
		return stack.Push(F64Val(lhs + rhs))
	case wasm.OpF64Sub:
		return stack.Push(F64Val(lhs - rhs))
	case wasm.OpF64Mul:
		return stack.Push(F64Val(lhs * rhs))
	case wasm.OpF64Div:
		return stack.Push(F64Val(lhs / rhs))
	case wasm.OpF64Min:
		return stack.Push(F64Val(wasmMinF64(lhs, rhs)))
	case wasm.OpF64Max:
		return stack.Push(F64Val(wasmMaxF64(lhs, rhs)))
	case wasm.OpF64Copysign:
		return stack.Push(F64Val(math.Copysign(lhs, rhs)))
	default:
		return newTrap(TrapInvalidCall, "unhandled f64 opcode %d", op)
	}
}

func pop2F32(stack *Stack) (lhs, rhs float32, trap *Trap) {
	vals, trap := stack.PopN(2)
	if trap != nil {
		return 0, 0, trap
	}
	return vals[0].F32, vals[1].F32, nil
}

func pop2F64(stack *Stack) (lhs, rhs float64, trap *Trap) {
	vals, trap := stack.PopN(2)
	if trap != nil {
		return 0, 0, trap
	}
	return vals[0].F64, vals[1].F64, nil
}

// wasmMinF32/wasmMaxF32/wasmMinF64/wasmMaxF64 implement IEEE-754 min/max
// with Wasm's NaN-propagating, signed-zero-aware semantics: any NaN operand
// yields NaN, and between +0/-0 min prefers the negative, max the positive.
func wasmMinF32(a, b float32) float32 {
	if math32.IsNaN(a) || math32.IsNaN(b) {
		return math32.NaN()
	}
	if a == 0 && b == 0 {
		if math32.Signbit(a) {
			return a
		}
		return b
	}
	if a < b {
		return a
	}
	return b
}

func wasmMaxF32(a, b float32) float32 {
	if math32.IsNaN(a) || math32.IsNaN(b) {
		return math32.NaN()
	}
	if a == 0 && b == 0 {
		if math32.Signbit(a) {
			return b
		}
		return a
	}
	if a > b {
		return a
	}
	return b
}

func wasmMinF64(a, b float64) float64 {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.NaN()
	}
	if a == 0 && b == 0 {
		if math.Signbit(a) {
			return a
		}
		return b
	}
	return math.Min(a, b)
}

func wasmMaxF64(a, b float64) float64 {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.NaN()
	}
	if a == 0 && b == 0 {
		if math.Signbit(a) {
			return b
		}
		return a
	}
	return math.Max(a, b)
}
