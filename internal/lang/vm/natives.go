package vm

import (
	"time"

	"github.com/theosovv/linen/internal/lang/bytecode"
)

// defineNatives registers the host-provided callables as globals, the way
// original_source/src/vm/native/mod.rs installs its fixed native table.
func (vm *VM) defineNatives() {
	vm.defineNative("clock", func(argc int, args []bytecode.Value) (bytecode.Value, error) {
		return bytecode.Number(float64(time.Now().Unix())), nil
	})
}

func (vm *VM) defineNative(name string, fn bytecode.NativeFn) {
	native := bytecode.NewNative(name, fn)
	vm.globals.Set(bytecode.NewString(name), bytecode.Object(native))
}
