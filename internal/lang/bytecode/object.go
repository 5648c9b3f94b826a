package bytecode

import "github.com/josharian/intern"

// Obj is the marker interface for all heap object kinds a Value can carry.
type Obj interface {
	objMarker()
}

// ObjString is an interned string object. Hash is computed once, at
// creation, with FNV-1a over the raw bytes.
type ObjString struct {
	Chars string
	Hash  uint32
}

func (*ObjString) objMarker() {}

// NewString interns chars (so content-identical strings share backing
// storage) and precomputes its FNV-1a hash.
func NewString(chars string) *ObjString {
	interned := intern.String(chars)
	return &ObjString{Chars: interned, Hash: FNV1a32(interned)}
}

// FNV1a32 computes the 32-bit FNV-1a hash of s, used to key interned
// strings in the globals table.
func FNV1a32(s string) uint32 {
	const (
		offsetBasis uint32 = 2166136261
		prime       uint32 = 16777619
	)
	hash := offsetBasis
	for i := 0; i < len(s); i++ {
		hash ^= uint32(s[i])
		hash *= prime
	}
	return hash
}

// ObjFunction is a first-class function value: its arity, name (empty for
// the implicit top-level script function), and its own chunk.
type ObjFunction struct {
	Arity int
	Name  string
	Chunk *Chunk
}

func (*ObjFunction) objMarker() {}

// NewFunction constructs an empty function object; its Chunk is filled in
// by the compiler once the body has been compiled.
func NewFunction() *ObjFunction {
	return &ObjFunction{}
}

// NativeFn is a host-provided callable: given argc and the popped argument
// values (oldest first), it returns the call's result.
type NativeFn func(argc int, args []Value) (Value, error)

// ObjNative wraps a host function so it can be stored as a global and
// invoked by OP_CALL like any other callable.
type ObjNative struct {
	Name string
	Fn   NativeFn
}

func (*ObjNative) objMarker() {}

// NewNative wraps fn as a callable Value.
func NewNative(name string, fn NativeFn) *ObjNative {
	return &ObjNative{Name: name, Fn: fn}
}
