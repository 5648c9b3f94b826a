// Package vm implements the stack interpreter: a call-frame stack, a value
// stack, and a global symbol table, executing one chunk's opcodes at a
// time until the root frame returns.
package vm

import (
	"fmt"

	"github.com/theosovv/linen/internal/diagnostics"
	"github.com/theosovv/linen/internal/lang/bytecode"
	"github.com/theosovv/linen/internal/lang/disasm"
	"github.com/theosovv/linen/internal/lang/table"
)

const maxFrames = 256

// VM owns the value stack, the globals table, and the call-frame stack. It
// is not safe for concurrent use.
type VM struct {
	stack   []bytecode.Value
	globals *table.Table
	frames  []CallFrame

	// Trace, when true, logs each dispatched instruction via diagnostics.
	Trace bool
}

// New returns a VM with the required natives already registered as
// globals.
func New() *VM {
	vm := &VM{globals: table.New()}
	vm.defineNatives()
	return vm
}

// Run pushes fn (the compiled top-level script function) and executes it
// to completion.
// Run pushes fn and executes it to completion, leaving the globals table
// intact but resetting the value/frame stacks afterward so a VM can be
// reused across successive REPL compilations.
func (vm *VM) Run(fn *bytecode.ObjFunction) error {
	defer func() {
		vm.stack = vm.stack[:0]
		vm.frames = vm.frames[:0]
	}()

	vm.push(bytecode.Object(fn))
	if err := vm.callValue(bytecode.Object(fn), 0); err != nil {
		return err
	}
	return vm.run()
}

func (vm *VM) push(v bytecode.Value) {
	vm.stack = append(vm.stack, v)
}

func (vm *VM) pop() bytecode.Value {
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v
}

func (vm *VM) peek(distance int) bytecode.Value {
	return vm.stack[len(vm.stack)-1-distance]
}

func (vm *VM) topFrame() *CallFrame {
	return &vm.frames[len(vm.frames)-1]
}

func (vm *VM) runtimeError(format string, args ...interface{}) *RuntimeError {
	message := fmt.Sprintf(format, args...)
	trace := make([]traceLine, 0, len(vm.frames))
	for i := len(vm.frames) - 1; i >= 0; i-- {
		f := &vm.frames[i]
		trace = append(trace, traceLine{line: f.line(), name: f.function.Name})
	}
	return &RuntimeError{Message: message, Trace: trace}
}

// run is the dispatch loop: while frames is non-empty, decode and execute
// one opcode from the top frame.
func (vm *VM) run() error {
	for len(vm.frames) > 0 {
		frame := vm.topFrame()

		if frame.ip >= len(frame.chunk().Code) {
			return vm.runtimeError("instruction pointer ran past end of chunk")
		}

		if vm.Trace {
			diagnostics.Log().Debug(disasm.DisassembleInstruction(frame.chunk(), frame.ip))
		}

		op := bytecode.OpCode(frame.readByte())

		switch op {
		case bytecode.OpConstant:
			vm.push(frame.readConstant())

		case bytecode.OpNil:
			vm.push(bytecode.Nil)
		case bytecode.OpTrue:
			vm.push(bytecode.Bool(true))
		case bytecode.OpFalse:
			vm.push(bytecode.Bool(false))
		case bytecode.OpPop:
			vm.pop()

		case bytecode.OpDefineGlobal:
			name := frame.readConstant().AsObject().(*bytecode.ObjString)
			vm.globals.Set(name, vm.peek(0))
			vm.pop()

		case bytecode.OpGetGlobal:
			name := frame.readConstant().AsObject().(*bytecode.ObjString)
			v, ok := vm.globals.Get(name)
			if !ok {
				return vm.runtimeError("undefined variable '%s'", name.Chars)
			}
			vm.push(v)

		case bytecode.OpSetGlobal:
			name := frame.readConstant().AsObject().(*bytecode.ObjString)
			if !vm.globals.Has(name) {
				return vm.runtimeError("undefined variable '%s'", name.Chars)
			}
			vm.globals.Set(name, vm.peek(0))

		case bytecode.OpGetLocal:
			slot := int(frame.readByte())
			vm.push(vm.stack[frame.slot+slot])

		case bytecode.OpSetLocal:
			slot := int(frame.readByte())
			vm.stack[frame.slot+slot] = vm.peek(0)

		case bytecode.OpEqual:
			b := vm.pop()
			a := vm.pop()
			vm.push(bytecode.Bool(bytecode.Equal(a, b)))

		case bytecode.OpGreater, bytecode.OpGreaterEqual, bytecode.OpLess, bytecode.OpLessEqual:
			if err := vm.comparison(op); err != nil {
				return err
			}

		case bytecode.OpAdd:
			if err := vm.add(); err != nil {
				return err
			}

		case bytecode.OpSubtract, bytecode.OpMultiply, bytecode.OpDivide:
			if err := vm.arithmetic(op); err != nil {
				return err
			}

		case bytecode.OpNot:
			vm.push(bytecode.Bool(!vm.pop().IsTruthy()))

		case bytecode.OpNegate:
			if !vm.peek(0).IsNumber() {
				return vm.runtimeError("operand must be a number")
			}
			vm.push(bytecode.Number(-vm.pop().AsNumber()))

		case bytecode.OpPrint:
			fmt.Println(vm.pop().String())

		case bytecode.OpJump:
			offset := frame.readUint16()
			frame.ip += int(offset)

		case bytecode.OpJumpIfFalse:
			offset := frame.readUint16()
			if !vm.peek(0).IsTruthy() {
				frame.ip += int(offset)
			}

		case bytecode.OpLoop:
			offset := frame.readUint16()
			frame.ip -= int(offset)

		case bytecode.OpCall:
			argCount := int(frame.readByte())
			callee := vm.peek(argCount)
			if err := vm.callValue(callee, argCount); err != nil {
				return err
			}

		case bytecode.OpReturn:
			result := vm.pop()
			finished := vm.frames[len(vm.frames)-1]
			vm.frames = vm.frames[:len(vm.frames)-1]
			vm.stack = vm.stack[:finished.slot-1]
			vm.push(result)

		default:
			return vm.runtimeError("unknown opcode %v", op)
		}
	}
	return nil
}

func (vm *VM) comparison(op bytecode.OpCode) error {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.runtimeError("operands must be numbers")
	}
	b := vm.pop().AsNumber()
	a := vm.pop().AsNumber()
	var result bool
	switch op {
	case bytecode.OpGreater:
		result = a > b
	case bytecode.OpGreaterEqual:
		result = a >= b
	case bytecode.OpLess:
		result = a < b
	case bytecode.OpLessEqual:
		result = a <= b
	}
	vm.push(bytecode.Bool(result))
	return nil
}

func (vm *VM) arithmetic(op bytecode.OpCode) error {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.runtimeError("operands must be numbers")
	}
	b := vm.pop().AsNumber()
	a := vm.pop().AsNumber()
	var result float64
	switch op {
	case bytecode.OpSubtract:
		result = a - b
	case bytecode.OpMultiply:
		result = a * b
	case bytecode.OpDivide:
		result = a / b
	}
	vm.push(bytecode.Number(result))
	return nil
}

func (vm *VM) add() error {
	b := vm.peek(0)
	a := vm.peek(1)
	switch {
	case a.IsNumber() && b.IsNumber():
		vm.pop()
		vm.pop()
		vm.push(bytecode.Number(a.AsNumber() + b.AsNumber()))
	case a.IsString() && b.IsString():
		vm.pop()
		vm.pop()
		vm.push(bytecode.Object(bytecode.NewString(a.AsString() + b.AsString())))
	default:
		return vm.runtimeError("operands must be two numbers or two strings")
	}
	return nil
}

// callValue dispatches CALL: a Function pushes a new frame over the
// already-on-stack callee+args window; a Native is invoked immediately and
// its result replaces the callee+args on the stack.
func (vm *VM) callValue(callee bytecode.Value, argCount int) error {
	switch {
	case callee.IsFunction():
		return vm.call(callee.AsFunction(), argCount)
	case callee.IsNative():
		native := callee.AsNative()
		args := make([]bytecode.Value, argCount)
		copy(args, vm.stack[len(vm.stack)-argCount:])
		vm.stack = vm.stack[:len(vm.stack)-argCount-1]
		result, err := native.Fn(argCount, args)
		if err != nil {
			return vm.runtimeError("%s", err.Error())
		}
		vm.push(result)
		return nil
	default:
		return vm.runtimeError("can only call functions")
	}
}

func (vm *VM) call(fn *bytecode.ObjFunction, argCount int) error {
	if argCount != fn.Arity {
		return vm.runtimeError("expected %d arguments but got %d", fn.Arity, argCount)
	}
	if len(vm.frames) >= maxFrames {
		return vm.runtimeError("stack overflow")
	}
	vm.frames = append(vm.frames, CallFrame{
		function: fn,
		ip:       0,
		slot:     len(vm.stack) - argCount,
	})
	return nil
}
