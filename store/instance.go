package store

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/corewasm/vertexvm/wasm"
)

// ExternVal is an exported value. Only function exports are supported
// (spec.md §3); table/memory/global exports are Non-goals.
type ExternVal struct {
	Func FuncAddr
}

// ExportInst is one entry of a ModuleInst's export table.
type ExportInst struct {
	Name  string
	Value ExternVal
}

// ModuleInst holds the per-module bindings produced by instantiation: a
// copy of the module's type table, a parallel list of FuncAddrs (weak
// references into the Store, not ownership), and the export table.
type ModuleInst struct {
	Types     []wasm.FuncType
	FuncAddrs []FuncAddr
	Exports   []ExportInst
}

// Instantiate allocates a FuncInst in store for every function declared by
// m (in declaration order) and builds the resulting ModuleInst's export
// table, per spec.md §4.4. No opcode well-formedness or type-consistency
// validation is performed here beyond what wasm.Decode already checked.
func Instantiate(store *Store, m *wasm.Module) (*ModuleInst, error) {
	return InstantiateWithLogger(store, m, logrus.StandardLogger())
}

// InstantiateWithLogger is Instantiate with an explicit logger.
func InstantiateWithLogger(store *Store, m *wasm.Module, log *logrus.Logger) (*ModuleInst, error) {
	inst := &ModuleInst{
		Types:     append([]wasm.FuncType(nil), m.Types...),
		FuncAddrs: make([]FuncAddr, 0, len(m.Funcs)),
	}

	for i, fn := range m.Funcs {
		if int(fn.TypeIndex) >= len(m.Types) {
			return nil, errors.Errorf("store: func %d has out-of-range type index %d", i, fn.TypeIndex)
		}
		addr := store.alloc(FuncInst{Type: m.Types[fn.TypeIndex], Code: fn})
		inst.FuncAddrs = append(inst.FuncAddrs, addr)
		log.WithFields(logrus.Fields{"func": i, "addr": addr}).Debug("store: allocated function instance")
	}

	for _, exp := range m.Exports {
		if exp.Desc.Kind != wasm.ExportDescFunc {
			log.WithField("export", exp.Name).Debug("store: skipping non-function export")
			continue
		}
		if int(exp.Desc.Idx) >= len(inst.FuncAddrs) {
			return nil, errors.Errorf("store: export %q refers to out-of-range func index %d", exp.Name, exp.Desc.Idx)
		}
		inst.Exports = append(inst.Exports, ExportInst{
			Name:  exp.Name,
			Value: ExternVal{Func: inst.FuncAddrs[exp.Desc.Idx]},
		})
	}

	return inst, nil
}

// Lookup returns the FuncAddr exported under name, or false if no such
// function export exists.
func (mi *ModuleInst) Lookup(name string) (FuncAddr, bool) {
	for _, exp := range mi.Exports {
		if exp.Name == name {
			return exp.Value.Func, true
		}
	}
	return 0, false
}
