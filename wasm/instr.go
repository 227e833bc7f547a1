package wasm

import (
	"github.com/pkg/errors"

	"github.com/corewasm/vertexvm/leb128"
	"github.com/corewasm/vertexvm/util"
)

// decodeInstrSeq reads instructions from c until a terminating End or Else
// byte (spec.md §4.3), returning the decoded sequence and which sentinel
// ended it. Nested If decoding recurses back into decodeInstrSeq for its
// Then/Else arms; the End that closes an If belongs to the If, not to
// whichever sequence is decoding it, which is why the terminator is returned
// to the caller instead of being consumed silently.
func decodeInstrSeq(c *util.Cursor) ([]Instr, Op, error) {
	var out []Instr
	for {
		b, err := c.ReadByte()
		if err != nil {
			return nil, 0, errors.Wrap(err, "wasm: truncated instruction stream")
		}

		switch b {
		case byteEnd:
			return out, OpEnd, nil
		case byteElse:
			return out, OpElse, nil
		case byteIf:
			instr, err := decodeIf(c)
			if err != nil {
				return nil, 0, err
			}
			out = append(out, instr)
		case byteCall:
			idx, err := leb128.ReadU32(c)
			if err != nil {
				return nil, 0, errors.Wrap(err, "wasm: reading call index")
			}
			out = append(out, Instr{Op: OpCall, Idx: idx})
		case byteLocalGet:
			idx, err := leb128.ReadU32(c)
			if err != nil {
				return nil, 0, errors.Wrap(err, "wasm: reading local.get index")
			}
			out = append(out, Instr{Op: OpLocalGet, Idx: idx})
		case byteI32Const:
			v, err := leb128.ReadI32(c)
			if err != nil {
				return nil, 0, errors.Wrap(err, "wasm: reading i32.const value")
			}
			out = append(out, Instr{Op: OpI32Const, I32: v})
		case byteI64Const:
			v, err := leb128.ReadI64(c)
			if err != nil {
				return nil, 0, errors.Wrap(err, "wasm: reading i64.const value")
			}
			out = append(out, Instr{Op: OpI64Const, I64: v})
		default:
			op, ok := opFromSimpleByte(b)
			if !ok {
				return nil, 0, errors.Errorf("wasm: unknown or unimplemented opcode 0x%x", b)
			}
			out = append(out, Instr{Op: op})
		}
	}
}

// decodeIf decodes the body of an If instruction: a one-byte block type,
// then a Then sequence, then (if an Else sentinel closed it) an Else
// sequence, both owned recursively.
func decodeIf(c *util.Cursor) (Instr, error) {
	bt, err := decodeBlockType(c)
	if err != nil {
		return Instr{}, errors.Wrap(err, "wasm: reading if block type")
	}

	thenSeq, term, err := decodeInstrSeq(c)
	if err != nil {
		return Instr{}, errors.Wrap(err, "wasm: reading if-then sequence")
	}

	var elseSeq []Instr
	if term == OpElse {
		elseSeq, term, err = decodeInstrSeq(c)
		if err != nil {
			return Instr{}, errors.Wrap(err, "wasm: reading if-else sequence")
		}
	}
	if term != OpEnd {
		return Instr{}, errors.New("wasm: if not terminated by end")
	}

	return Instr{Op: OpIf, Block: bt, Then: thenSeq, Else: elseSeq}, nil
}

func decodeBlockType(c *util.Cursor) (BlockType, error) {
	b, err := c.ReadByte()
	if err != nil {
		return BlockType{}, err
	}
	if b == BlockTypeEmptyByte {
		return BlockType{Empty: true}, nil
	}
	vt, ok := valueTypeFromByte(b)
	if !ok {
		return BlockType{}, errors.Errorf("wasm: invalid block type byte 0x%x", b)
	}
	return BlockType{Type: vt}, nil
}
