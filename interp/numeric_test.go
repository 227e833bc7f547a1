package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corewasm/vertexvm/wasm"
)

func runI32(t *testing.T, op wasm.Op, operands ...int32) Value {
	t.Helper()
	stack := NewStack(0)
	for _, o := range operands {
		require.Nil(t, stack.Push(I32Val(o)))
	}
	trap := execI32(op, stack)
	require.Nil(t, trap)
	v, trap := stack.Pop()
	require.Nil(t, trap)
	return v
}

func runI64(t *testing.T, op wasm.Op, operands ...int64) Value {
	t.Helper()
	stack := NewStack(0)
	for _, o := range operands {
		require.Nil(t, stack.Push(I64Val(o)))
	}
	trap := execI64(op, stack)
	require.Nil(t, trap)
	v, trap := stack.Pop()
	require.Nil(t, trap)
	return v
}

func TestI32RotlRotatesLhs(t *testing.T) {
	// rotl(0x00000001, 1) == 0x00000002: rotating the first-pushed operand,
	// not the shift amount.
	v := runI32(t, wasm.OpI32Rotl, 1, 1)
	assert.Equal(t, int32(2), v.I32)
}

func TestI32RotlShiftModulo32(t *testing.T) {
	// A shift amount of 33 behaves like 1, not like an out-of-range shift.
	v := runI32(t, wasm.OpI32Rotl, 1, 33)
	assert.Equal(t, int32(2), v.I32)
}

func TestI32RotrRotatesLhs(t *testing.T) {
	v := runI32(t, wasm.OpI32Rotr, 2, 1)
	assert.Equal(t, int32(1), v.I32)
}

func TestI32GeSCompares(t *testing.T) {
	assert.Equal(t, int32(1), runI32(t, wasm.OpI32GeS, 5, 5).I32)
	assert.Equal(t, int32(1), runI32(t, wasm.OpI32GeS, 6, 5).I32)
	assert.Equal(t, int32(0), runI32(t, wasm.OpI32GeS, 4, 5).I32)
}

func TestI32SignedVsUnsignedComparison(t *testing.T) {
	assert.Equal(t, int32(1), runI32(t, wasm.OpI32LtS, -1, 1).I32)
	assert.Equal(t, int32(0), runI32(t, wasm.OpI32LtU, -1, 1).I32)
}

func TestI32DivSByZeroTraps(t *testing.T) {
	stack := NewStack(0)
	require.Nil(t, stack.Push(I32Val(1)))
	require.Nil(t, stack.Push(I32Val(0)))
	trap := execI32(wasm.OpI32DivS, stack)
	require.NotNil(t, trap)
	assert.Equal(t, TrapDivideByZero, trap.Code)
}

func TestI32DivSOverflowTraps(t *testing.T) {
	stack := NewStack(0)
	require.Nil(t, stack.Push(I32Val(-0x80000000)))
	require.Nil(t, stack.Push(I32Val(-1)))
	trap := execI32(wasm.OpI32DivS, stack)
	require.NotNil(t, trap)
	assert.Equal(t, TrapIntegerOverflow, trap.Code)
}

func TestI32ClzCtzPopcnt(t *testing.T) {
	assert.Equal(t, int32(32), runI32(t, wasm.OpI32Clz, 0).I32)
	assert.Equal(t, int32(31), runI32(t, wasm.OpI32Clz, 1).I32)
	assert.Equal(t, int32(32), runI32(t, wasm.OpI32Ctz, 0).I32)
	assert.Equal(t, int32(0), runI32(t, wasm.OpI32Ctz, 1).I32)
	assert.Equal(t, int32(8), runI32(t, wasm.OpI32Popcnt, 0xFF).I32)
}

func TestI32Extend8SAndExtend16S(t *testing.T) {
	assert.Equal(t, int32(-1), runI32(t, wasm.OpI32Extend8S, 0xFF).I32)
	assert.Equal(t, int32(-1), runI32(t, wasm.OpI32Extend16S, 0xFFFF).I32)
	assert.Equal(t, int32(127), runI32(t, wasm.OpI32Extend8S, 0x7F).I32)
}

func TestI64RotlRotatesLhsModulo64(t *testing.T) {
	v := runI64(t, wasm.OpI64Rotl, 1, 65)
	assert.Equal(t, int64(2), v.I64)
}

func TestI64GeSCompares(t *testing.T) {
	// Comparisons always produce an i32 result, regardless of operand width.
	assert.Equal(t, int32(1), runI64(t, wasm.OpI64GeS, 5, 5).I32)
}

func TestI32ShiftAndRotateAreNotConfused(t *testing.T) {
	// Shl shifts lhs by rhs; unlike Rotl, bits shifted out are lost rather
	// than wrapped back in.
	v := runI32(t, wasm.OpI32Shl, 1, 31)
	assert.Equal(t, int32(-0x80000000), v.I32)
}
