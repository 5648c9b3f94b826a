package vm

import (
	"fmt"
	"strings"
)

// traceLine is one entry of a runtime-error backtrace: the source line and
// the name of the function that was executing at that line.
type traceLine struct {
	line int
	name string
}

// RuntimeError is returned by Run when execution aborts. It carries a
// frame-by-frame backtrace, innermost frame first.
type RuntimeError struct {
	Message string
	Trace   []traceLine
}

func (e *RuntimeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "RuntimeError: %s", e.Message)
	for _, t := range e.Trace {
		name := t.name
		if name == "" {
			name = "main"
		}
		fmt.Fprintf(&b, "\n[line %d] in %s", t.line, name)
	}
	return b.String()
}
