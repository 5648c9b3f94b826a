// Command linen is the driver: `linen [path]` executes a source file, or
// (with no path) starts an interactive REPL. Exit codes: 0 success, 65
// compile error, 70 runtime error.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/theosovv/linen/internal/diagnostics"
)

const (
	exitOK          = 0
	exitCompileFail = 65
	exitRuntimeFail = 70
)

func main() {
	trace := flag.Bool("trace", false, "log VM instruction trace and compiler diagnostics")
	tree := flag.Bool("tree", false, "use the tree-walking front end instead of the bytecode VM")
	flag.Parse()

	diagnostics.SetTrace(*trace)

	if flag.NArg() > 0 {
		os.Exit(runFile(flag.Arg(0), *tree))
	}
	os.Exit(repl(*trace, *tree))
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
