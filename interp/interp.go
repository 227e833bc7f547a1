package interp

import (
	"github.com/sirupsen/logrus"

	"github.com/corewasm/vertexvm/store"
	"github.com/corewasm/vertexvm/wasm"
)

// VM executes wasm.Instr trees against a Store and a single instantiated
// module. Its Call resolution and trap surface follow spec.md §4.5/§4.6;
// the recursive, tree-walking execute below replaces the teacher's flat
// ip-indexed instruction loop plus side block/jump stack, since the only
// structured control flow in scope (If/Then/Else) has no backward branches
// and so needs no label stack at all, only ordinary Go recursion.
type VM struct {
	Store     *store.Store
	Module    *store.ModuleInst
	Log       *logrus.Logger
	MaxFrames int
	MaxStack  int
}

// New builds a VM bound to store and the given module instance. maxFrames
// and maxStack <= 0 mean unbounded call depth / value stack depth.
func New(s *store.Store, mod *store.ModuleInst, log *logrus.Logger, maxFrames, maxStack int) *VM {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &VM{Store: s, Module: mod, Log: log, MaxFrames: maxFrames, MaxStack: maxStack}
}

// execute runs instrs against frame, pushing intermediate and final values
// onto stack. depth counts nested Calls, for TrapCallStackExhausted.
func (vm *VM) execute(stack *Stack, frame *Frame, instrs []wasm.Instr, depth int) *Trap {
	for _, instr := range instrs {
		if trap := vm.step(stack, frame, instr, depth); trap != nil {
			return trap
		}
	}
	return nil
}

func (vm *VM) step(stack *Stack, frame *Frame, instr wasm.Instr, depth int) *Trap {
	switch {
	case instr.Op == wasm.OpDrop:
		_, trap := stack.Pop()
		return trap

	case instr.Op == wasm.OpLocalGet:
		v, ok := frame.Local(instr.Idx)
		if !ok {
			return newTrap(TrapOutOfRangeLocal, "local index %d out of range", instr.Idx)
		}
		return stack.Push(v)

	case instr.Op == wasm.OpI32Const:
		return stack.Push(I32Val(instr.I32))

	case instr.Op == wasm.OpI64Const:
		return stack.Push(I64Val(instr.I64))

	case instr.Op == wasm.OpIf:
		return vm.execIf(stack, frame, instr, depth)

	case instr.Op == wasm.OpCall:
		return vm.execCall(stack, frame, instr.Idx, depth)

	case instr.Op >= 100 && instr.Op < 120, instr.Op >= 200 && instr.Op < 230:
		return execI32(instr.Op, stack)

	case instr.Op >= 120 && instr.Op < 140, instr.Op >= 230 && instr.Op < 260:
		return execI64(instr.Op, stack)

	case instr.Op >= 140 && instr.Op < 150, instr.Op >= 260 && instr.Op < 280:
		return execF32(instr.Op, stack)

	case instr.Op >= 150 && instr.Op < 200, instr.Op >= 280 && instr.Op < 300:
		return execF64(instr.Op, stack)

	default:
		return newTrap(TrapInvalidCall, "unhandled opcode %d", instr.Op)
	}
}

func (vm *VM) execIf(stack *Stack, frame *Frame, instr wasm.Instr, depth int) *Trap {
	cond, trap := stack.Pop()
	if trap != nil {
		return trap
	}
	if cond.Bool() {
		return vm.execute(stack, frame, instr.Then, depth)
	}
	return vm.execute(stack, frame, instr.Else, depth)
}

// execCall resolves idx through the current module's FuncAddrs to a
// concrete store.FuncAddr (not directly into store.Funcs): when one module
// owns the whole store, FuncAddrs is the identity mapping and this matches
// "look up store.funcs[idx]" exactly, but it also stays correct when
// several modules share a Store (spec.md §4.4's FuncAddrs indirection
// exists precisely so Call can be resolved this way).
func (vm *VM) execCall(stack *Stack, callerFrame *Frame, idx uint32, depth int) *Trap {
	if vm.MaxFrames > 0 && depth >= vm.MaxFrames {
		return newTrap(TrapCallStackExhausted, "exceeded max call depth %d", vm.MaxFrames)
	}
	if int(idx) >= len(vm.Module.FuncAddrs) {
		return newTrap(TrapInvalidCall, "call target %d out of range", idx)
	}
	addr := vm.Module.FuncAddrs[idx]
	fn, ok := vm.Store.Get(addr)
	if !ok {
		return newTrap(TrapInvalidCall, "call target %d resolved to invalid store address", idx)
	}

	args, trap := stack.PopN(len(fn.Type.Params))
	if trap != nil {
		return trap
	}

	locals := make([]Value, 0, len(fn.Type.Params)+len(fn.Code.Locals))
	locals = append(locals, args...)
	for _, lt := range fn.Code.Locals {
		locals = append(locals, ZeroValue(lt))
	}

	calleeFrame := NewFrame(locals, len(fn.Type.Results))
	before := stack.Len()
	if trap := vm.execute(stack, calleeFrame, fn.Code.Body, depth+1); trap != nil {
		return trap
	}
	if produced := stack.Len() - before; produced != calleeFrame.returnArity {
		return newTrap(TrapArityMismatch, "call to func %d left %d values, expected %d", idx, produced, calleeFrame.returnArity)
	}
	return nil
}
