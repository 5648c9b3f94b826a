package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/theosovv/linen/internal/diagnostics"
	"github.com/theosovv/linen/internal/lang/compiler"
	"github.com/theosovv/linen/internal/lang/vm"
	"github.com/theosovv/linen/internal/treeinterp"
	"github.com/theosovv/linen/internal/treeparser"
)

// runFile reads path and runs it either through the bytecode pipeline or,
// with -tree, through the non-core tree-walking front end.
func runFile(path string, tree bool) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fail("could not read file %q: %v", path, err)
		return exitRuntimeFail
	}

	if tree {
		return runTree(string(data))
	}
	return runBytecode(string(data), nil)
}

func runBytecode(source string, machine *vm.VM) int {
	fn, err := compiler.Compile(source)
	if err != nil {
		fail("%s", err)
		return exitCompileFail
	}

	if machine == nil {
		machine = vm.New()
		machine.Trace = diagnostics.Log().IsLevelEnabled(logrus.DebugLevel)
	}
	if err := machine.Run(fn); err != nil {
		fail("%s", err)
		return exitRuntimeFail
	}
	return exitOK
}

func runTree(source string) int {
	program, errs := treeparser.ParseSource(source)
	if len(errs) > 0 {
		for _, e := range errs {
			fail("%s", e)
		}
		return exitCompileFail
	}
	interp := treeinterp.New()
	if err := interp.Interpret(program); err != nil {
		fail("%s", err)
		return exitRuntimeFail
	}
	return exitOK
}
