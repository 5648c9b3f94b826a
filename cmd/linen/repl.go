package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/theosovv/linen/internal/lang/compiler"
	"github.com/theosovv/linen/internal/lang/vm"
	"github.com/theosovv/linen/internal/treeinterp"
	"github.com/theosovv/linen/internal/treeparser"
)

const historyFile = "history.txt"

// repl runs the interactive prompt. Input is buffered across lines until
// braces balance, so a multi-line `if`/`while`/`fn` body can be typed
// incrementally.
func repl(trace, tree bool) int {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "linen> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fail("could not start REPL: %v", err)
		return exitRuntimeFail
	}
	defer rl.Close()

	fmt.Println("linen — press Ctrl-D to exit")

	machine := vm.New()
	machine.Trace = trace
	treeInterp := treeinterp.New()

	var buffer strings.Builder
	for {
		if buffer.Len() > 0 {
			rl.SetPrompt("   ... ")
		} else {
			rl.SetPrompt("linen> ")
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			buffer.Reset()
			continue
		}
		if err == io.EOF {
			return exitOK
		}

		if buffer.Len() > 0 {
			buffer.WriteByte('\n')
		}
		buffer.WriteString(line)

		if bracesUnbalanced(buffer.String()) {
			continue
		}

		source := buffer.String()
		buffer.Reset()
		if strings.TrimSpace(source) == "" {
			continue
		}

		if tree {
			replEvalTree(treeInterp, source)
		} else {
			replEvalBytecode(machine, source)
		}
	}
}

func replEvalBytecode(machine *vm.VM, source string) {
	fn, err := compiler.Compile(source)
	if err != nil {
		fmt.Println(err)
		return
	}
	if err := machine.Run(fn); err != nil {
		fmt.Println(err)
	}
}

func replEvalTree(interp *treeinterp.Interpreter, source string) {
	program, errs := treeparser.ParseSource(source)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Println(e)
		}
		return
	}
	if err := interp.Interpret(program); err != nil {
		fmt.Println(err)
	}
}

func bracesUnbalanced(source string) bool {
	balance := 0
	for _, r := range source {
		switch r {
		case '{':
			balance++
		case '}':
			balance--
		}
	}
	return balance > 0
}
