package wasm

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/corewasm/vertexvm/leb128"
	"github.com/corewasm/vertexvm/util"
)

// Magic is the 4-byte Wasm magic number ("\0asm"), little-endian as a
// uint32.
const Magic uint32 = 0x6d736100

// Version is the only binary format version this decoder accepts.
const Version uint32 = 0x1

// Section ids this decoder recognizes; any other id is skipped per spec.md
// §4.2 ("Unrecognized section ids: skip `section size` bytes").
const (
	sectionType     byte = 1
	sectionFunction byte = 3
	sectionExport   byte = 7
	sectionCode     byte = 10
)

// Decode parses a Wasm binary module from b and returns its typed
// representation, or a decoding error on any structural failure. No partial
// module is ever returned: Decode either succeeds completely or returns a
// nil *Module (spec.md §7).
func Decode(b []byte) (*Module, error) {
	return DecodeWithLogger(b, logrus.StandardLogger())
}

// DecodeWithLogger is Decode with an explicit logger, so embedders can
// redirect or silence the decoder's trace output.
func DecodeWithLogger(b []byte, log *logrus.Logger) (*Module, error) {
	c := util.NewCursor(b)
	if err := readPreamble(c); err != nil {
		return nil, err
	}

	m := &Module{}
	var funcTypeIdx []uint32

	for c.Remaining() > 0 {
		id, err := c.ReadByte()
		if err != nil {
			return nil, errors.Wrap(err, "wasm: reading section id")
		}
		size, err := leb128.ReadU32(c)
		if err != nil {
			return nil, errors.Wrap(err, "wasm: reading section size")
		}
		payload, err := c.Read(size)
		if err != nil {
			return nil, errors.Wrapf(err, "wasm: reading section %d payload", id)
		}
		log.WithFields(logrus.Fields{"section": id, "size": size}).Debug("wasm: decoding section")

		pc := util.NewCursor(payload)
		switch id {
		case sectionType:
			if m.Types, err = decodeTypeSection(pc); err != nil {
				return nil, errors.Wrap(err, "wasm: type section")
			}
		case sectionFunction:
			if funcTypeIdx, err = decodeFunctionSection(pc); err != nil {
				return nil, errors.Wrap(err, "wasm: function section")
			}
		case sectionExport:
			if m.Exports, err = decodeExportSection(pc); err != nil {
				return nil, errors.Wrap(err, "wasm: export section")
			}
		case sectionCode:
			bodies, err := decodeCodeSection(pc, log)
			if err != nil {
				return nil, errors.Wrap(err, "wasm: code section")
			}
			if funcTypeIdx != nil && len(bodies) != len(funcTypeIdx) {
				return nil, errors.Errorf("wasm: function section has %d entries but code section has %d", len(funcTypeIdx), len(bodies))
			}
			m.Funcs = make([]Func, len(bodies))
			for i, body := range bodies {
				m.Funcs[i] = body
				if funcTypeIdx != nil {
					m.Funcs[i].TypeIndex = funcTypeIdx[i]
				}
			}
		default:
			log.WithField("section", id).Debug("wasm: skipping unrecognized section")
		}
	}

	if err := validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

func readPreamble(c *util.Cursor) error {
	magic, err := c.Read(4)
	if err != nil {
		return errors.Wrap(err, "wasm: reading magic number")
	}
	if leByteSliceToU32(magic) != Magic {
		return errors.New("wasm: invalid magic number")
	}

	version, err := c.Read(4)
	if err != nil {
		return errors.Wrap(err, "wasm: reading version")
	}
	if leByteSliceToU32(version) != Version {
		return errors.New("wasm: invalid version number")
	}
	return nil
}

func leByteSliceToU32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func decodeTypeSection(c *util.Cursor) ([]FuncType, error) {
	n, err := leb128.ReadU32(c)
	if err != nil {
		return nil, errors.Wrap(err, "reading vector length")
	}
	types := make([]FuncType, n)
	for i := uint32(0); i < n; i++ {
		form, err := c.ReadByte()
		if err != nil {
			return nil, errors.Wrapf(err, "reading functype %d form", i)
		}
		if form != FuncTypeForm {
			return nil, errors.Errorf("wasm: invalid functype signature byte 0x%x at index %d", form, i)
		}
		params, err := decodeValueTypeVec(c)
		if err != nil {
			return nil, errors.Wrapf(err, "reading functype %d params", i)
		}
		results, err := decodeValueTypeVec(c)
		if err != nil {
			return nil, errors.Wrapf(err, "reading functype %d results", i)
		}
		types[i] = FuncType{Params: params, Results: results}
	}
	return types, nil
}

func decodeValueTypeVec(c *util.Cursor) ([]ValueType, error) {
	n, err := leb128.ReadU32(c)
	if err != nil {
		return nil, err
	}
	vals := make([]ValueType, n)
	for i := uint32(0); i < n; i++ {
		b, err := c.ReadByte()
		if err != nil {
			return nil, err
		}
		vt, ok := valueTypeFromByte(b)
		if !ok {
			return nil, errors.Errorf("wasm: invalid value type byte 0x%x", b)
		}
		vals[i] = vt
	}
	return vals, nil
}

func decodeFunctionSection(c *util.Cursor) ([]uint32, error) {
	n, err := leb128.ReadU32(c)
	if err != nil {
		return nil, err
	}
	idx := make([]uint32, n)
	for i := uint32(0); i < n; i++ {
		idx[i], err = leb128.ReadU32(c)
		if err != nil {
			return nil, errors.Wrapf(err, "reading function %d type index", i)
		}
	}
	return idx, nil
}

func decodeExportSection(c *util.Cursor) ([]Export, error) {
	n, err := leb128.ReadU32(c)
	if err != nil {
		return nil, err
	}
	exports := make([]Export, n)
	for i := uint32(0); i < n; i++ {
		name, err := decodeName(c)
		if err != nil {
			return nil, errors.Wrapf(err, "reading export %d name", i)
		}
		kindByte, err := c.ReadByte()
		if err != nil {
			return nil, errors.Wrapf(err, "reading export %d desc kind", i)
		}
		idx, err := leb128.ReadU32(c)
		if err != nil {
			return nil, errors.Wrapf(err, "reading export %d desc index", i)
		}
		exports[i] = Export{Name: name, Desc: ExportDesc{Kind: ExportDescKind(kindByte), Idx: idx}}
	}
	return exports, nil
}

func decodeName(c *util.Cursor) (string, error) {
	n, err := leb128.ReadU32(c)
	if err != nil {
		return "", err
	}
	b, err := c.Read(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeCodeSection(c *util.Cursor, log *logrus.Logger) ([]Func, error) {
	n, err := leb128.ReadU32(c)
	if err != nil {
		return nil, err
	}
	funcs := make([]Func, n)
	for i := uint32(0); i < n; i++ {
		size, err := leb128.ReadU32(c)
		if err != nil {
			return nil, errors.Wrapf(err, "reading code %d body size", i)
		}
		body, err := c.Read(size)
		if err != nil {
			return nil, errors.Wrapf(err, "reading code %d body", i)
		}

		bc := util.NewCursor(body)
		locals, err := decodeLocals(bc)
		if err != nil {
			return nil, errors.Wrapf(err, "reading code %d locals", i)
		}
		instrs, term, err := decodeInstrSeq(bc)
		if err != nil {
			return nil, errors.Wrapf(err, "reading code %d body instructions", i)
		}
		if term != OpEnd {
			return nil, errors.Errorf("wasm: code %d body not terminated by end", i)
		}
		log.WithFields(logrus.Fields{"func": i, "instrs": len(instrs)}).Trace("wasm: decoded function body")
		funcs[i] = Func{Locals: locals, Body: instrs}
	}
	return funcs, nil
}

func decodeLocals(c *util.Cursor) ([]ValueType, error) {
	n, err := leb128.ReadU32(c)
	if err != nil {
		return nil, err
	}
	var locals []ValueType
	for i := uint32(0); i < n; i++ {
		count, err := leb128.ReadU32(c)
		if err != nil {
			return nil, errors.Wrapf(err, "reading local entry %d count", i)
		}
		b, err := c.ReadByte()
		if err != nil {
			return nil, errors.Wrapf(err, "reading local entry %d type", i)
		}
		vt, ok := valueTypeFromByte(b)
		if !ok {
			return nil, errors.Errorf("wasm: invalid local value type byte 0x%x", b)
		}
		for j := uint32(0); j < count; j++ {
			locals = append(locals, vt)
		}
	}
	return locals, nil
}

// validate checks the cross-referential invariants spec.md §3 requires of a
// decoded Module: every Func.TypeIndex, Export.Desc.Idx (for func exports),
// Call index, and LocalGet index must refer to a valid slot.
func validate(m *Module) error {
	for i, fn := range m.Funcs {
		if int(fn.TypeIndex) >= len(m.Types) {
			return errors.Errorf("wasm: func %d has invalid type index %d", i, fn.TypeIndex)
		}
		numLocals := len(m.Types[fn.TypeIndex].Params) + len(fn.Locals)
		if err := validateInstrs(fn.Body, m, numLocals); err != nil {
			return errors.Wrapf(err, "wasm: func %d", i)
		}
	}
	for i, exp := range m.Exports {
		if exp.Desc.Kind != ExportDescFunc {
			continue
		}
		if int(exp.Desc.Idx) >= len(m.Funcs) {
			return errors.Errorf("wasm: export %d (%q) refers to invalid func index %d", i, exp.Name, exp.Desc.Idx)
		}
	}
	return nil
}

func validateInstrs(instrs []Instr, m *Module, numLocals int) error {
	for _, in := range instrs {
		switch in.Op {
		case OpLocalGet:
			if int(in.Idx) >= numLocals {
				return errors.Errorf("wasm: local.get index %d out of range (have %d locals)", in.Idx, numLocals)
			}
		case OpCall:
			if int(in.Idx) >= len(m.Funcs) {
				return errors.Errorf("wasm: call index %d out of range (have %d funcs)", in.Idx, len(m.Funcs))
			}
		case OpIf:
			if err := validateInstrs(in.Then, m, numLocals); err != nil {
				return err
			}
			if err := validateInstrs(in.Else, m, numLocals); err != nil {
				return err
			}
		}
	}
	return nil
}
