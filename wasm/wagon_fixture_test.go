package wasm

import (
	"bytes"
	"testing"

	wagon "github.com/go-interpreter/wagon/wasm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corewasm/vertexvm/internal/testmodule"
)

// TestDecodeAgreesWithWagon cross-checks this package's hand-written decoder
// against github.com/go-interpreter/wagon's independent implementation,
// giving the binary grammar an external oracle instead of only
// self-consistency (the teacher's go.mod already requires wagon; this test
// is the first thing in the retrieved snapshot that actually exercises it
// against this package's own decode path).
func TestDecodeAgreesWithWagon(t *testing.T) {
	b := testmodule.Add()

	ours, err := Decode(b)
	require.NoError(t, err)

	theirs, err := wagon.ReadModule(bytes.NewReader(b), nil)
	require.NoError(t, err)

	require.Len(t, theirs.FunctionIndexSpace, len(ours.Funcs))
	wantFn := theirs.FunctionIndexSpace[0]
	assert.Len(t, ours.Types[0].Params, len(wantFn.Sig.ParamTypes))
	assert.Len(t, ours.Types[0].Results, len(wantFn.Sig.ReturnTypes))

	entry, ok := theirs.Export.Entries["add"]
	require.True(t, ok, "wagon should also see the \"add\" export")
	assert.Equal(t, uint32(0), entry.Index)
	assert.Equal(t, uint32(0), ours.Exports[0].Desc.Idx)
}
