package treeinterp

import (
	"github.com/theosovv/linen/internal/lang/token"
)

// Environment binds variable names to values. Enclosing chains model
// block scope: a lookup or assignment that misses locally walks
// outward one link at a time.
type Environment struct {
	values    map[string]any
	enclosing *Environment
}

// newEnvironment creates a top-level (global) environment.
func newEnvironment() *Environment {
	return &Environment{values: make(map[string]any)}
}

// newNestedEnvironment creates a child scope of enclosing.
func newNestedEnvironment(enclosing *Environment) *Environment {
	return &Environment{values: make(map[string]any), enclosing: enclosing}
}

func (env *Environment) define(name string, value any) {
	env.values[name] = value
}

func (env *Environment) get(name token.Token) (any, error) {
	if value, ok := env.values[name.Lexeme]; ok {
		return value, nil
	}
	if env.enclosing != nil {
		return env.enclosing.get(name)
	}
	return nil, newRuntimeError(name.Line, "undefined variable '"+name.Lexeme+"'")
}

func (env *Environment) assign(name token.Token, value any) error {
	if _, ok := env.values[name.Lexeme]; ok {
		env.values[name.Lexeme] = value
		return nil
	}
	if env.enclosing != nil {
		return env.enclosing.assign(name, value)
	}
	return newRuntimeError(name.Line, "undefined variable '"+name.Lexeme+"'")
}
