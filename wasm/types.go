package wasm

// ValueType is a Wasm numeric value kind. I32 and I64 are operated on by the
// integer opcodes, F32 and F64 by the float comparison/unary/binary opcodes.
type ValueType int8

// Value type encodings, per the Wasm binary format.
const (
	ValueTypeI32 ValueType = 0x7f
	ValueTypeI64 ValueType = 0x7e
	ValueTypeF32 ValueType = 0x7d
	ValueTypeF64 ValueType = 0x7c
)

func (v ValueType) String() string {
	switch v {
	case ValueTypeI32:
		return "i32"
	case ValueTypeI64:
		return "i64"
	case ValueTypeF32:
		return "f32"
	case ValueTypeF64:
		return "f64"
	default:
		return "unknown"
	}
}

// valueTypeFromByte decodes the single-byte value type encoding.
func valueTypeFromByte(b byte) (ValueType, bool) {
	switch b {
	case 0x7f:
		return ValueTypeI32, true
	case 0x7e:
		return ValueTypeI64, true
	case 0x7d:
		return ValueTypeF32, true
	case 0x7c:
		return ValueTypeF64, true
	default:
		return 0, false
	}
}

// FuncType is an ordered parameter list and an ordered result list.
// Immutable after decode.
type FuncType struct {
	Params  []ValueType
	Results []ValueType
}

// FuncTypeForm is the leading byte of every functype entry in the Type
// section.
const FuncTypeForm byte = 0x60

// BlockType is either "empty" or a single ValueType; multi-result block
// types are out of scope (spec.md §3).
type BlockType struct {
	Empty bool
	Type  ValueType
}

// BlockTypeEmptyByte is the encoding of the empty block type.
const BlockTypeEmptyByte byte = 0x40

// LocalEntry is a (count, type) pair from a function body's locals vector;
// it expands to `Count` copies of `Type` in the function's local list.
type LocalEntry struct {
	Count uint32
	Type  ValueType
}

// Func is a module function in source (decoded) form: a type index, the
// declared locals beyond its parameters, and its instruction body with the
// terminating End marker already stripped.
type Func struct {
	TypeIndex uint32
	Locals    []ValueType
	Body      []Instr
}

// ExportDescKind identifies what kind of item an export refers to. Only
// ExportDescFunc is supported; table/memory/global exports are Non-goals.
type ExportDescKind byte

// Export description kinds, per the Wasm binary format.
const (
	ExportDescFunc   ExportDescKind = 0x00
	ExportDescTable  ExportDescKind = 0x01
	ExportDescMem    ExportDescKind = 0x02
	ExportDescGlobal ExportDescKind = 0x03
)

// ExportDesc tags the index an Export refers to with its kind.
type ExportDesc struct {
	Kind ExportDescKind
	Idx  uint32
}

// Export is a name/description pair from the Export section.
type Export struct {
	Name string
	Desc ExportDesc
}

// Module is the decoded, typed representation of a Wasm binary: ordered
// lists of types, functions, and exports. Indices into these lists are
// stable and dense from zero (spec.md §3).
type Module struct {
	Types   []FuncType
	Funcs   []Func
	Exports []Export
}
