// Package testmodule hand-assembles minimal Wasm binaries for the
// decoder/interpreter test suites, covering the concrete end-to-end
// scenarios spec.md §8 names. It is test support, not a decoder: every byte
// sequence here is written out explicitly so each test module is legible in
// isolation.
package testmodule

import "bytes"

// ULEB encodes x as an unsigned LEB128 byte sequence.
func ULEB(x uint64) []byte {
	var out []byte
	for {
		b := byte(x & 0x7f)
		x >>= 7
		if x != 0 {
			out = append(out, b|0x80)
		} else {
			out = append(out, b)
			return out
		}
	}
}

// SLEB encodes x as a signed LEB128 byte sequence.
func SLEB(x int64) []byte {
	var out []byte
	for {
		b := byte(x & 0x7f)
		x >>= 7
		signBitSet := b&0x40 != 0
		if (x == 0 && !signBitSet) || (x == -1 && signBitSet) {
			out = append(out, b)
			return out
		}
		out = append(out, b|0x80)
	}
}

// section wraps payload with a section id and LEB128-encoded size.
func section(id byte, payload []byte) []byte {
	var buf bytes.Buffer
	buf.WriteByte(id)
	buf.Write(ULEB(uint64(len(payload))))
	buf.Write(payload)
	return buf.Bytes()
}

const (
	i32 = 0x7f
	i64 = 0x7e
	f32 = 0x7d
	f64 = 0x7c
)

// valueTypeVec encodes a vector of value-type bytes preceded by its count.
func valueTypeVec(types ...byte) []byte {
	var buf bytes.Buffer
	buf.Write(ULEB(uint64(len(types))))
	buf.Write(types)
	return buf.Bytes()
}

// FuncSpec describes one function for Build: its param/result types, its
// declared local entries (count, type), and its raw instruction bytes
// (without the terminating end, which Build appends).
type FuncSpec struct {
	Params  []byte
	Results []byte
	Locals  []LocalSpec
	Body    []byte
	Export  string // empty means not exported
}

// LocalSpec is one (count, type) entry in a function's locals vector.
type LocalSpec struct {
	Count uint32
	Type  byte
}

// Build assembles a complete module binary (magic, version, type section,
// function section, export section, code section) from a list of function
// specs.
func Build(funcs []FuncSpec) []byte {
	var typeSec, funcSec, exportSec, codeSec bytes.Buffer

	typeSec.Write(ULEB(uint64(len(funcs))))
	funcSec.Write(ULEB(uint64(len(funcs))))
	codeSec.Write(ULEB(uint64(len(funcs))))

	var exports bytes.Buffer
	exportCount := 0

	for i, f := range funcs {
		typeSec.WriteByte(0x60)
		typeSec.Write(valueTypeVec(f.Params...))
		typeSec.Write(valueTypeVec(f.Results...))

		funcSec.Write(ULEB(uint64(i)))

		var body bytes.Buffer
		body.Write(ULEB(uint64(len(f.Locals))))
		for _, l := range f.Locals {
			body.Write(ULEB(uint64(l.Count)))
			body.WriteByte(l.Type)
		}
		body.Write(f.Body)
		body.WriteByte(0x0b) // end

		codeSec.Write(ULEB(uint64(body.Len())))
		codeSec.Write(body.Bytes())

		if f.Export != "" {
			exportCount++
			exports.Write(ULEB(uint64(len(f.Export))))
			exports.WriteString(f.Export)
			exports.WriteByte(0x00) // func export
			exports.Write(ULEB(uint64(i)))
		}
	}

	exportSec.Write(ULEB(uint64(exportCount)))
	exportSec.Write(exports.Bytes())

	var out bytes.Buffer
	out.Write([]byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00})
	out.Write(section(1, typeSec.Bytes()))
	out.Write(section(3, funcSec.Bytes()))
	out.Write(section(7, exportSec.Bytes()))
	out.Write(section(10, codeSec.Bytes()))
	return out.Bytes()
}

// Add builds the `add(i32,i32)->i32` module from spec.md §8 scenario 1:
// local.get 0; local.get 1; i32.add.
func Add() []byte {
	return Build([]FuncSpec{{
		Params:  []byte{i32, i32},
		Results: []byte{i32},
		Body:    []byte{0x20, 0x00, 0x20, 0x01, 0x6a},
		Export:  "add",
	}})
}

// DivS builds the `div_s(i32,i32)->i32` module from spec.md §8 scenario 2:
// local.get 0; local.get 1; i32.div_s.
func DivS() []byte {
	return Build([]FuncSpec{{
		Params:  []byte{i32, i32},
		Results: []byte{i32},
		Body:    []byte{0x20, 0x00, 0x20, 0x01, 0x6d},
		Export:  "div_s",
	}})
}

// Clz builds the `clz(i32)->i32` module from spec.md §8 scenario 3:
// local.get 0; i32.clz.
func Clz() []byte {
	return Build([]FuncSpec{{
		Params:  []byte{i32},
		Results: []byte{i32},
		Body:    []byte{0x20, 0x00, 0x67},
		Export:  "clz",
	}})
}

// Extend8S builds the `extend8_s(i32)->i32` module from spec.md §8 scenario
// 4: local.get 0; i32.extend8_s.
func Extend8S() []byte {
	return Build([]FuncSpec{{
		Params:  []byte{i32},
		Results: []byte{i32},
		Body:    []byte{0x20, 0x00, 0xc0},
		Export:  "extend8_s",
	}})
}

// MixedLocals builds the params(i64,f32,f64,i32,i32) + locals(1xf32,2xi64,1xf64)
// module from spec.md §8 scenario 5, exporting "mixed_locals" which returns
// local.get 8 (the trailing f64 local) as its f64 result, so decode tests can
// exercise local expansion and the interpreter test can read LocalGet 8.
func MixedLocals() []byte {
	return Build([]FuncSpec{{
		Params:  []byte{i64, f32, f64, i32, i32},
		Results: []byte{f64},
		Locals: []LocalSpec{
			{Count: 1, Type: f32},
			{Count: 2, Type: i64},
			{Count: 1, Type: f64},
		},
		Body:   []byte{0x20, 0x08}, // local.get 8
		Export: "mixed_locals",
	}})
}

// IfElse builds the niladic `if_else()->i32` module from spec.md §8 scenario
// 6: (i32.const 0) if (i32.const 1) else (i32.const 2) end.
func IfElse() []byte {
	body := []byte{
		0x41, 0x00, // i32.const 0
		0x04, 0x40, // if (empty block type)
		0x41, 0x01, // i32.const 1
		0x05,       // else
		0x41, 0x02, // i32.const 2
		0x0b, // end (closes if)
	}
	return Build([]FuncSpec{{
		Results: []byte{i32},
		Body:    body,
		Export:  "if_else",
	}})
}

// Call builds a two-function module where "double" calls "inc" twice:
// inc(i32)->i32 = local.get 0; i32.const 1; i32.add
// double(i32)->i32 = local.get 0; call inc; call inc
func Call() []byte {
	return Build([]FuncSpec{
		{
			Params:  []byte{i32},
			Results: []byte{i32},
			Body:    []byte{0x20, 0x00, 0x41, 0x01, 0x6a},
			Export:  "inc",
		},
		{
			Params:  []byte{i32},
			Results: []byte{i32},
			Body:    []byte{0x20, 0x00, 0x10, 0x00, 0x10, 0x00},
			Export:  "double",
		},
	})
}

// DivByZero builds a `div_u(i32,i32)->i32` module used to exercise the
// division-by-zero trap.
func DivByZero() []byte {
	return Build([]FuncSpec{{
		Params:  []byte{i32, i32},
		Results: []byte{i32},
		Body:    []byte{0x20, 0x00, 0x20, 0x01, 0x6e},
		Export:  "div_u",
	}})
}
