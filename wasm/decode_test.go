package wasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corewasm/vertexvm/internal/testmodule"
)

func TestDecodeAdd(t *testing.T) {
	m, err := Decode(testmodule.Add())
	require.NoError(t, err)
	require.Len(t, m.Types, 1)
	assert.Equal(t, []ValueType{ValueTypeI32, ValueTypeI32}, m.Types[0].Params)
	assert.Equal(t, []ValueType{ValueTypeI32}, m.Types[0].Results)
	require.Len(t, m.Funcs, 1)
	assert.Equal(t, uint32(0), m.Funcs[0].TypeIndex)
	require.Len(t, m.Funcs[0].Body, 3)
	assert.Equal(t, OpLocalGet, m.Funcs[0].Body[0].Op)
	assert.Equal(t, uint32(0), m.Funcs[0].Body[0].Idx)
	assert.Equal(t, OpLocalGet, m.Funcs[0].Body[1].Op)
	assert.Equal(t, uint32(1), m.Funcs[0].Body[1].Idx)
	assert.Equal(t, OpI32Add, m.Funcs[0].Body[2].Op)
	require.Len(t, m.Exports, 1)
	assert.Equal(t, "add", m.Exports[0].Name)
	assert.Equal(t, ExportDescFunc, m.Exports[0].Desc.Kind)
	assert.Equal(t, uint32(0), m.Exports[0].Desc.Idx)
}

func TestDecodeMixedLocalsExpandsInOrder(t *testing.T) {
	m, err := Decode(testmodule.MixedLocals())
	require.NoError(t, err)
	require.Len(t, m.Funcs, 1)
	fn := m.Funcs[0]
	want := []ValueType{ValueTypeF32, ValueTypeI64, ValueTypeI64, ValueTypeF64}
	assert.Equal(t, want, fn.Locals)

	typ := m.Types[fn.TypeIndex]
	// Total local slots = 5 params + 4 declared locals = 9; LocalGet 8 is
	// valid (the trailing f64 local), per spec.md §8 scenario 5.
	assert.Len(t, typ.Params, 5)
	assert.Equal(t, 9, len(typ.Params)+len(fn.Locals))
}

func TestDecodeIfElse(t *testing.T) {
	m, err := Decode(testmodule.IfElse())
	require.NoError(t, err)
	require.Len(t, m.Funcs, 1)
	body := m.Funcs[0].Body
	require.Len(t, body, 2) // i32.const 0; if
	ifInstr := body[1]
	assert.Equal(t, OpIf, ifInstr.Op)
	assert.True(t, ifInstr.Block.Empty)
	require.Len(t, ifInstr.Then, 1)
	assert.Equal(t, OpI32Const, ifInstr.Then[0].Op)
	assert.Equal(t, int32(1), ifInstr.Then[0].I32)
	require.Len(t, ifInstr.Else, 1)
	assert.Equal(t, OpI32Const, ifInstr.Else[0].Op)
	assert.Equal(t, int32(2), ifInstr.Else[0].I32)
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	b := testmodule.Add()
	b[0] = 0xff
	_, err := Decode(b)
	assert.Error(t, err)
}

func TestDecodeRejectsBadVersion(t *testing.T) {
	b := testmodule.Add()
	b[4] = 0x02
	_, err := Decode(b)
	assert.Error(t, err)
}

func TestDecodeRejectsTruncatedInput(t *testing.T) {
	b := testmodule.Add()
	_, err := Decode(b[:len(b)-2])
	assert.Error(t, err)
}

func TestDecodeRejectsOutOfRangeLocalGet(t *testing.T) {
	m := testmodule.Build([]testmodule.FuncSpec{{
		Results: []byte{0x7f},
		Body:    []byte{0x20, 0x05}, // local.get 5, no locals declared
		Export:  "bad",
	}})
	_, err := Decode(m)
	assert.Error(t, err)
}

func TestDecodeRejectsOutOfRangeCall(t *testing.T) {
	m := testmodule.Build([]testmodule.FuncSpec{{
		Results: []byte{0x7f},
		Body:    []byte{0x10, 0x09}, // call 9, only one func exists
		Export:  "bad",
	}})
	_, err := Decode(m)
	assert.Error(t, err)
}

func TestDecodeSkipsUnknownSection(t *testing.T) {
	b := testmodule.Add()
	// Insert a custom section (id 0) between the preamble and the type
	// section: it must be skipped, not rejected.
	custom := []byte{0x00, 0x02, 0xAA, 0xBB}
	withCustom := append(append(append([]byte{}, b[:8]...), custom...), b[8:]...)
	m, err := Decode(withCustom)
	require.NoError(t, err)
	require.Len(t, m.Funcs, 1)
}
