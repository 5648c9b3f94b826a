package vm

import "github.com/theosovv/linen/internal/lang/bytecode"

// CallFrame is the activation record of one function invocation: the
// function being run, its instruction pointer, and the base offset into
// the VM's value stack. Slots [slot, stackTop) are this frame's locals
// window; slot-1 holds the callee itself, reserved for RETURN's eventual
// stack truncation.
type CallFrame struct {
	function *bytecode.ObjFunction
	ip       int
	slot     int
}

func (f *CallFrame) chunk() *bytecode.Chunk {
	return f.function.Chunk
}

func (f *CallFrame) readByte() byte {
	b := f.chunk().Code[f.ip]
	f.ip++
	return b
}

func (f *CallFrame) readUint16() uint16 {
	v := f.chunk().ReadUint16(f.ip)
	f.ip += 2
	return v
}

func (f *CallFrame) readConstant() bytecode.Value {
	return f.chunk().Constants[f.readByte()]
}

func (f *CallFrame) line() int {
	lines := f.chunk().Lines
	if len(lines) == 0 {
		return 0
	}
	idx := f.ip - 1
	if idx < 0 || idx >= len(lines) {
		idx = len(lines) - 1
	}
	return lines[idx]
}
