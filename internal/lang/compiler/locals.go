package compiler

import (
	"github.com/theosovv/linen/internal/lang/bytecode"
	"github.com/theosovv/linen/internal/lang/token"
)

// uninitialized marks a local whose initializer is still being compiled;
// reading it in its own initializer is a compile error.
const uninitialized = -1

// maxLocals bounds the locals list: local slots are addressed by a
// one-byte operand.
const maxLocals = 256

// local is a compile-time descriptor for a lexical local: the declaring
// token (so its source slice is the identifier) and its scope depth.
type local struct {
	name  token.Token
	depth int
}

// funcState is the per-function compilation frame: its own locals list,
// scope depth, and the function object/chunk being built. Nested function
// bodies push a new funcState and restore the enclosing one on return.
type funcState struct {
	enclosing  *funcState
	function   *bytecode.ObjFunction
	funcType   funcKind
	locals     []local
	scopeDepth int
}

type funcKind int

const (
	funcScript funcKind = iota
	funcFunction
)
