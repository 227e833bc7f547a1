package interp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corewasm/vertexvm/wasm"
)

func runF64(t *testing.T, op wasm.Op, operands ...float64) Value {
	t.Helper()
	stack := NewStack(0)
	for _, o := range operands {
		require.Nil(t, stack.Push(F64Val(o)))
	}
	trap := execF64(op, stack)
	require.Nil(t, trap)
	v, trap := stack.Pop()
	require.Nil(t, trap)
	return v
}

func runF32(t *testing.T, op wasm.Op, operands ...float32) Value {
	t.Helper()
	stack := NewStack(0)
	for _, o := range operands {
		require.Nil(t, stack.Push(F32Val(o)))
	}
	trap := execF32(op, stack)
	require.Nil(t, trap)
	v, trap := stack.Pop()
	require.Nil(t, trap)
	return v
}

func TestF64MinMaxPropagateNaN(t *testing.T) {
	v := runF64(t, wasm.OpF64Min, math.NaN(), 1)
	assert.True(t, math.IsNaN(v.F64))

	v = runF64(t, wasm.OpF64Max, 1, math.NaN())
	assert.True(t, math.IsNaN(v.F64))
}

func TestF64MinPrefersNegativeZero(t *testing.T) {
	v := runF64(t, wasm.OpF64Min, 0, math.Copysign(0, -1))
	assert.True(t, math.Signbit(v.F64))
}

func TestF64MaxPrefersPositiveZero(t *testing.T) {
	v := runF64(t, wasm.OpF64Max, math.Copysign(0, -1), 0)
	assert.False(t, math.Signbit(v.F64))
}

func TestF64NearestRoundsTiesToEven(t *testing.T) {
	assert.Equal(t, float64(2), runF64(t, wasm.OpF64Nearest, 2.5).F64)
	assert.Equal(t, float64(4), runF64(t, wasm.OpF64Nearest, 3.5).F64)
}

func TestF32NearestRoundsTiesToEven(t *testing.T) {
	assert.Equal(t, float32(2), runF32(t, wasm.OpF32Nearest, 2.5).F32)
}

func TestF64Copysign(t *testing.T) {
	v := runF64(t, wasm.OpF64Copysign, 3, -1)
	assert.Equal(t, float64(-3), v.F64)
}

func TestF64Comparisons(t *testing.T) {
	assert.Equal(t, int32(1), runF64(t, wasm.OpF64Lt, 1, 2).I32)
	assert.Equal(t, int32(0), runF64(t, wasm.OpF64Lt, 2, 1).I32)
	// NaN compares false against everything, including itself.
	assert.Equal(t, int32(0), runF64(t, wasm.OpF64Eq, math.NaN(), math.NaN()).I32)
}

func TestF32ArithmeticRoundTrips(t *testing.T) {
	v := runF32(t, wasm.OpF32Add, 1.5, 2.5)
	assert.Equal(t, float32(4), v.F32)
}
