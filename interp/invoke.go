package interp

// Invoke looks up name in the VM's module exports, binds args to its
// parameter slots, executes its body, and returns its results in
// declaration order (spec.md §4.6's Invocation Entry).
func (vm *VM) Invoke(name string, args ...Value) ([]Value, *Trap) {
	addr, ok := vm.Module.Lookup(name)
	if !ok {
		return nil, newTrap(TrapMissingExport, "no function export named %q", name)
	}
	fn, ok := vm.Store.Get(addr)
	if !ok {
		return nil, newTrap(TrapInvalidCall, "export %q resolved to invalid store address", name)
	}
	if len(args) != len(fn.Type.Params) {
		return nil, newTrap(TrapArityMismatch, "export %q takes %d argument(s), got %d", name, len(fn.Type.Params), len(args))
	}

	locals := make([]Value, 0, len(fn.Type.Params)+len(fn.Code.Locals))
	locals = append(locals, args...)
	for _, lt := range fn.Code.Locals {
		locals = append(locals, ZeroValue(lt))
	}

	frame := NewFrame(locals, len(fn.Type.Results))
	stack := NewStack(vm.MaxStack)
	if trap := vm.execute(stack, frame, fn.Code.Body, 0); trap != nil {
		return nil, trap
	}

	results, trap := stack.PopN(len(fn.Type.Results))
	if trap != nil {
		return nil, trap
	}
	if stack.Len() != 0 {
		return nil, newTrap(TrapArityMismatch, "export %q left %d unconsumed value(s) on the stack", name, stack.Len())
	}
	return results, nil
}
