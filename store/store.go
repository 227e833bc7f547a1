// Package store holds the global allocation arena of function instances
// (spec.md §3's Store) and the per-module bindings produced by
// instantiation (ModuleInst). Store is mutated only during instantiation
// and is read-only during execution (spec.md §5).
package store

import "github.com/corewasm/vertexvm/wasm"

// FuncAddr is a dense 32-bit index into a Store's Funcs.
type FuncAddr uint32

// FuncInst is an allocated function instance: an owned copy of its
// FuncType and its decoded Func code (locals + instruction sequence).
type FuncInst struct {
	Type wasm.FuncType
	Code wasm.Func
}

// Store is the global arena of allocated function instances. Store
// exclusively owns the FuncInsts it holds; a ModuleInst only references
// them by FuncAddr (spec.md §5).
type Store struct {
	Funcs []FuncInst
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// alloc appends a FuncInst and returns its assigned FuncAddr.
func (s *Store) alloc(inst FuncInst) FuncAddr {
	addr := FuncAddr(len(s.Funcs))
	s.Funcs = append(s.Funcs, inst)
	return addr
}

// Get returns the FuncInst at addr, or false if addr is out of range (a
// Call to an invalid FuncAddr is a trap per spec.md §4.5).
func (s *Store) Get(addr FuncAddr) (*FuncInst, bool) {
	if int(addr) < 0 || int(addr) >= len(s.Funcs) {
		return nil, false
	}
	return &s.Funcs[addr], true
}
