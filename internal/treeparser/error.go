package treeparser

import "fmt"

// SyntaxError is raised while building the tree from the token stream.
type SyntaxError struct {
	Line    int
	Message string
}

func newSyntaxError(line int, message string) SyntaxError {
	return SyntaxError{Line: line, Message: message}
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("[line %d] syntax error: %s", e.Line, e.Message)
}
