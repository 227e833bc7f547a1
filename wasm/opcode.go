package wasm

// Op identifies the instruction variant, per spec.md §3's Instr tagged
// union. Else and End are decode-time sentinels only; they never appear in a
// decoded Func.Body or an If's Then/Else sequences.
type Op int

// Control, variable, and constant instructions.
const (
	OpElse Op = iota // sentinel, decode-time only
	OpEnd            // sentinel, decode-time only
	OpIf
	OpCall
	OpDrop
	OpLocalGet
	OpI32Const
	OpI64Const
)

// I32 comparisons.
const (
	OpI32Eqz Op = iota + 100
	OpI32Eq
	OpI32Ne
	OpI32LtS
	OpI32LtU
	OpI32GtS
	OpI32GtU
	OpI32LeS
	OpI32LeU
	OpI32GeS
	OpI32GeU
)

// I64 comparisons.
const (
	OpI64Eqz Op = iota + 120
	OpI64Eq
	OpI64Ne
	OpI64LtS
	OpI64LtU
	OpI64GtS
	OpI64GtU
	OpI64LeS
	OpI64LeU
	OpI64GeS
	OpI64GeU
)

// F32/F64 comparisons.
const (
	OpF32Eq Op = iota + 140
	OpF32Ne
	OpF32Lt
	OpF32Gt
	OpF32Le
	OpF32Ge
)

const (
	OpF64Eq Op = iota + 150
	OpF64Ne
	OpF64Lt
	OpF64Gt
	OpF64Le
	OpF64Ge
)

// I32 arithmetic, bitwise, shift/rotate, count, and sign-extension.
const (
	OpI32Clz Op = iota + 200
	OpI32Ctz
	OpI32Popcnt
	OpI32Add
	OpI32Sub
	OpI32Mul
	OpI32DivS
	OpI32DivU
	OpI32RemS
	OpI32RemU
	OpI32And
	OpI32Or
	OpI32Xor
	OpI32Shl
	OpI32ShrS
	OpI32ShrU
	OpI32Rotl
	OpI32Rotr
	OpI32Extend8S
	OpI32Extend16S
)

// I64 arithmetic, bitwise, shift/rotate, count, and sign-extension.
const (
	OpI64Clz Op = iota + 230
	OpI64Ctz
	OpI64Popcnt
	OpI64Add
	OpI64Sub
	OpI64Mul
	OpI64DivS
	OpI64DivU
	OpI64RemS
	OpI64RemU
	OpI64And
	OpI64Or
	OpI64Xor
	OpI64Shl
	OpI64ShrS
	OpI64ShrU
	OpI64Rotl
	OpI64Rotr
	OpI64Extend8S
	OpI64Extend16S
)

// F32 unary and binary.
const (
	OpF32Abs Op = iota + 260
	OpF32Neg
	OpF32Ceil
	OpF32Floor
	OpF32Trunc
	OpF32Nearest
	OpF32Sqrt
	OpF32Add
	OpF32Sub
	OpF32Mul
	OpF32Div
	OpF32Min
	OpF32Max
	OpF32Copysign
)

// F64 unary and binary.
const (
	OpF64Abs Op = iota + 280
	OpF64Neg
	OpF64Ceil
	OpF64Floor
	OpF64Trunc
	OpF64Nearest
	OpF64Sqrt
	OpF64Add
	OpF64Sub
	OpF64Mul
	OpF64Div
	OpF64Min
	OpF64Max
	OpF64Copysign
)

// Instr is a decoded instruction. It is a tagged variant over the supported
// opcodes (spec.md §3): Op selects which fields are meaningful. If owns
// recursive Then/Else instruction sequences; Call/LocalGet carry an index;
// I32Const/I64Const carry their constant.
type Instr struct {
	Op    Op
	Idx   uint32    // LocalGet local index, Call function index
	I32   int32     // I32Const value
	I64   int64     // I64Const value
	Block BlockType // If block type
	Then  []Instr   // If "then" sequence
	Else  []Instr   // If "else" sequence (nil if no else clause)
}

// Raw opcode bytes, per the Wasm binary format (spec.md §4.3).
const (
	byteIf       byte = 0x04
	byteElse     byte = 0x05
	byteEnd      byte = 0x0b
	byteCall     byte = 0x10
	byteDrop     byte = 0x1a
	byteLocalGet byte = 0x20
	byteI32Const byte = 0x41
	byteI64Const byte = 0x42

	byteI32CmpLo byte = 0x45
	byteI32CmpHi byte = 0x4f

	byteI64CmpLo byte = 0x50
	byteI64CmpHi byte = 0x5a

	byteF32CmpLo byte = 0x5b
	byteF32CmpHi byte = 0x60

	byteF64CmpLo byte = 0x61
	byteF64CmpHi byte = 0x66

	byteI32ArithLo byte = 0x67
	byteI32ArithHi byte = 0x78

	byteI64ArithLo byte = 0x79
	byteI64ArithHi byte = 0x8a

	byteF32Lo byte = 0x8b
	byteF32Hi byte = 0x98

	byteF64Lo byte = 0x99
	byteF64Hi byte = 0xa6

	byteI32Extend8S  byte = 0xc0
	byteI32Extend16S byte = 0xc1
	byteI64Extend8S  byte = 0xc2
	byteI64Extend16S byte = 0xc3
)

// opFromSimpleByte maps an opcode byte outside the const/index/control
// instructions to its Op, for the contiguous comparison/arithmetic/float
// ranges listed in spec.md §4.3. ok is false for bytes handled elsewhere
// (If/Call/LocalGet/consts) or entirely unknown.
func opFromSimpleByte(b byte) (Op, bool) {
	switch {
	case b >= byteI32CmpLo && b <= byteI32CmpHi:
		return OpI32Eqz + Op(b-byteI32CmpLo), true
	case b >= byteI64CmpLo && b <= byteI64CmpHi:
		return OpI64Eqz + Op(b-byteI64CmpLo), true
	case b >= byteF32CmpLo && b <= byteF32CmpHi:
		return OpF32Eq + Op(b-byteF32CmpLo), true
	case b >= byteF64CmpLo && b <= byteF64CmpHi:
		return OpF64Eq + Op(b-byteF64CmpLo), true
	case b >= byteI32ArithLo && b <= byteI32ArithHi:
		return OpI32Clz + Op(b-byteI32ArithLo), true
	case b >= byteI64ArithLo && b <= byteI64ArithHi:
		return OpI64Clz + Op(b-byteI64ArithLo), true
	case b >= byteF32Lo && b <= byteF32Hi:
		return OpF32Abs + Op(b-byteF32Lo), true
	case b >= byteF64Lo && b <= byteF64Hi:
		return OpF64Abs + Op(b-byteF64Lo), true
	case b == byteI32Extend8S:
		return OpI32Extend8S, true
	case b == byteI32Extend16S:
		return OpI32Extend16S, true
	case b == byteI64Extend8S:
		return OpI64Extend8S, true
	case b == byteI64Extend16S:
		return OpI64Extend16S, true
	case b == byteDrop:
		return OpDrop, true
	default:
		return 0, false
	}
}
