// Package interp is the stack-machine interpreter: it executes a decoded
// wasm.Func's instruction tree against a value stack and a call frame,
// resolving Call targets through a store.ModuleInst's function address
// table (spec.md §4.5, §4.6).
package interp

import "github.com/corewasm/vertexvm/wasm"

// Value is a tagged numeric value. Type selects which of the four fields is
// meaningful; the others are zero, per spec.md §3's Value union.
type Value struct {
	Type wasm.ValueType
	I32  int32
	I64  int64
	F32  float32
	F64  float64
}

// I32Val wraps v as an i32 Value.
func I32Val(v int32) Value { return Value{Type: wasm.ValueTypeI32, I32: v} }

// I64Val wraps v as an i64 Value.
func I64Val(v int64) Value { return Value{Type: wasm.ValueTypeI64, I64: v} }

// F32Val wraps v as an f32 Value.
func F32Val(v float32) Value { return Value{Type: wasm.ValueTypeF32, F32: v} }

// F64Val wraps v as an f64 Value.
func F64Val(v float64) Value { return Value{Type: wasm.ValueTypeF64, F64: v} }

// ZeroValue returns the zero value for t (0, 0, 0.0, or 0.0 depending on
// kind), used to initialize a function's declared locals, which follow its
// argument slots.
func ZeroValue(t wasm.ValueType) Value {
	switch t {
	case wasm.ValueTypeI32:
		return I32Val(0)
	case wasm.ValueTypeI64:
		return I64Val(0)
	case wasm.ValueTypeF32:
		return F32Val(0)
	case wasm.ValueTypeF64:
		return F64Val(0)
	default:
		return Value{}
	}
}

// Bool reports whether v is non-zero, per Wasm's "i32 used as condition"
// convention for If.
func (v Value) Bool() bool {
	switch v.Type {
	case wasm.ValueTypeI32:
		return v.I32 != 0
	case wasm.ValueTypeI64:
		return v.I64 != 0
	default:
		return false
	}
}
