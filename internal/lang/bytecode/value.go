// Package bytecode implements the tagged runtime Value, the heap object
// variants (strings, functions, natives), the opcode set, and the Chunk
// a compiled function's code lives in. Value and Chunk live in one
// package because ObjFunction.Chunk is a *Chunk and Chunk.Constants is a
// []Value — splitting them would just reproduce that cycle as an import
// cycle.
package bytecode

import (
	"fmt"
	"math"
	"strconv"
)

// Type discriminates a Value's payload.
type Type int

const (
	TypeNil Type = iota
	TypeBool
	TypeNumber
	TypeObject
)

// Value is a tagged union. Exactly one of the fields is meaningful,
// selected by Type.
type Value struct {
	typ     Type
	number  float64
	boolean bool
	object  Obj
}

// Nil is the singleton nil value.
var Nil = Value{typ: TypeNil}

// Bool wraps a boolean into a Value.
func Bool(b bool) Value { return Value{typ: TypeBool, boolean: b} }

// Number wraps a float64 into a Value.
func Number(n float64) Value { return Value{typ: TypeNumber, number: n} }

// Object wraps a heap object into a Value.
func Object(o Obj) Value { return Value{typ: TypeObject, object: o} }

func (v Value) Type() Type { return v.typ }
func (v Value) IsNil() bool    { return v.typ == TypeNil }
func (v Value) IsBool() bool   { return v.typ == TypeBool }
func (v Value) IsNumber() bool { return v.typ == TypeNumber }
func (v Value) IsObject() bool { return v.typ == TypeObject }

func (v Value) AsBool() bool      { return v.boolean }
func (v Value) AsNumber() float64 { return v.number }
func (v Value) AsObject() Obj     { return v.object }

// IsString reports whether v holds a string object.
func (v Value) IsString() bool {
	_, ok := v.object.(*ObjString)
	return v.typ == TypeObject && ok
}

// AsString returns the Go string content of a string-valued Value. Panics
// if v does not hold a string; callers must check IsString first.
func (v Value) AsString() string {
	return v.object.(*ObjString).Chars
}

// IsFunction reports whether v holds a function object.
func (v Value) IsFunction() bool {
	_, ok := v.object.(*ObjFunction)
	return v.typ == TypeObject && ok
}

// AsFunction returns the function object held by v.
func (v Value) AsFunction() *ObjFunction {
	return v.object.(*ObjFunction)
}

// IsNative reports whether v holds a native callable.
func (v Value) IsNative() bool {
	_, ok := v.object.(*ObjNative)
	return v.typ == TypeObject && ok
}

// AsNative returns the native object held by v.
func (v Value) AsNative() *ObjNative {
	return v.object.(*ObjNative)
}

// IsCallable reports whether v can be the callee of CALL.
func (v Value) IsCallable() bool {
	return v.IsFunction() || v.IsNative()
}

// IsTruthy implements the branch-time truthiness rule: false and nil are
// falsy, everything else — including 0 and "" — is truthy.
func (v Value) IsTruthy() bool {
	switch v.typ {
	case TypeNil:
		return false
	case TypeBool:
		return v.boolean
	default:
		return true
	}
}

// Equal implements values_equal: different tags are never equal; within a
// tag, numbers/booleans/strings compare by value, nil is always equal to
// nil, and functions/natives compare by identity.
func Equal(a, b Value) bool {
	if a.typ != b.typ {
		return false
	}
	switch a.typ {
	case TypeNil:
		return true
	case TypeBool:
		return a.boolean == b.boolean
	case TypeNumber:
		return a.number == b.number
	case TypeObject:
		as, aIsStr := a.object.(*ObjString)
		bs, bIsStr := b.object.(*ObjString)
		if aIsStr && bIsStr {
			return as.Hash == bs.Hash && as.Chars == bs.Chars
		}
		return a.object == b.object
	default:
		return false
	}
}

// String renders v the way PRINT does: booleans as true/false, nil as nil,
// numbers via default double formatting, strings as their content,
// functions as <name> (unnamed top-level function as <main>), natives as
// <native name>.
func (v Value) String() string {
	switch v.typ {
	case TypeNil:
		return "nil"
	case TypeBool:
		if v.boolean {
			return "true"
		}
		return "false"
	case TypeNumber:
		return formatNumber(v.number)
	case TypeObject:
		switch o := v.object.(type) {
		case *ObjString:
			return o.Chars
		case *ObjFunction:
			if o.Name == "" {
				return "<main>"
			}
			return fmt.Sprintf("<%s>", o.Name)
		case *ObjNative:
			return fmt.Sprintf("<native %s>", o.Name)
		}
	}
	return "<value>"
}

func formatNumber(n float64) string {
	if math.IsInf(n, 1) {
		return "inf"
	}
	if math.IsInf(n, -1) {
		return "-inf"
	}
	if math.IsNaN(n) {
		return "nan"
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}
