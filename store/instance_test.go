package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corewasm/vertexvm/internal/testmodule"
	"github.com/corewasm/vertexvm/wasm"
)

func TestInstantiateEmptyModule(t *testing.T) {
	s := New()
	inst, err := Instantiate(s, &wasm.Module{})
	require.NoError(t, err)
	assert.Empty(t, s.Funcs)
	assert.Empty(t, inst.FuncAddrs)
	assert.Empty(t, inst.Types)
	assert.Empty(t, inst.Exports)
}

func TestInstantiateAllocatesFuncsAndExports(t *testing.T) {
	m, err := wasm.Decode(testmodule.Add())
	require.NoError(t, err)

	s := New()
	inst, err := Instantiate(s, m)
	require.NoError(t, err)

	require.Len(t, s.Funcs, 1)
	assert.Equal(t, m.Types[0], s.Funcs[0].Type)
	require.Len(t, inst.FuncAddrs, 1)
	assert.Equal(t, FuncAddr(0), inst.FuncAddrs[0])

	addr, ok := inst.Lookup("add")
	require.True(t, ok)
	assert.Equal(t, FuncAddr(0), addr)

	_, ok = inst.Lookup("missing")
	assert.False(t, ok)
}

func TestInstantiateSharesStoreAcrossModules(t *testing.T) {
	m, err := wasm.Decode(testmodule.Add())
	require.NoError(t, err)

	s := New()
	_, err = Instantiate(s, m)
	require.NoError(t, err)
	inst2, err := Instantiate(s, m)
	require.NoError(t, err)

	require.Len(t, s.Funcs, 2)
	assert.Equal(t, FuncAddr(1), inst2.FuncAddrs[0])
}
