package interp

// Frame is a call frame: the callee's local variable slots (parameters
// followed by declared locals, per spec.md §4.5) and the number of values
// it must leave on the stack when it returns.
type Frame struct {
	locals      []Value
	returnArity int
}

// NewFrame builds a Frame from an already-populated local slot list.
func NewFrame(locals []Value, returnArity int) *Frame {
	return &Frame{locals: locals, returnArity: returnArity}
}

// Local returns the value bound to local index idx.
func (f *Frame) Local(idx uint32) (Value, bool) {
	if int(idx) >= len(f.locals) {
		return Value{}, false
	}
	return f.locals[idx], true
}

// SetLocal overwrites local index idx, reporting false if idx is out of
// range. local.set/tee are not in the supported opcode set; Invoke and Call
// bind arguments by building the locals slice directly.
func (f *Frame) SetLocal(idx uint32, v Value) bool {
	if int(idx) >= len(f.locals) {
		return false
	}
	f.locals[idx] = v
	return true
}
