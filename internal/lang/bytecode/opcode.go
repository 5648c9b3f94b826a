package bytecode

// OpCode is a single bytecode instruction tag. Operand bytes (if any)
// follow immediately in the Chunk's code stream; widths are fixed per
// opcode as documented below.
type OpCode byte

const (
	// OpConstant pushes constants[operand] (1-byte index).
	OpConstant OpCode = iota
	OpNil
	OpTrue
	OpFalse
	OpPop

	// OpDefineGlobal / OpGetGlobal / OpSetGlobal take a 1-byte constant-pool
	// index naming the global.
	OpDefineGlobal
	OpGetGlobal
	OpSetGlobal

	// OpGetLocal / OpSetLocal take a 1-byte stack-slot offset relative to
	// the current frame's base.
	OpGetLocal
	OpSetLocal

	OpEqual
	OpGreater
	OpGreaterEqual
	OpLess
	OpLessEqual

	OpAdd
	OpSubtract
	OpMultiply
	OpDivide

	OpNot
	OpNegate

	OpPrint

	// OpJump / OpJumpIfFalse / OpLoop take a 2-byte big-endian offset.
	OpJump
	OpJumpIfFalse
	OpLoop

	// OpCall takes a 1-byte argument count.
	OpCall

	OpReturn
)

var opcodeNames = [...]string{
	OpConstant:     "OP_CONSTANT",
	OpNil:          "OP_NIL",
	OpTrue:         "OP_TRUE",
	OpFalse:        "OP_FALSE",
	OpPop:          "OP_POP",
	OpDefineGlobal: "OP_DEFINE_GLOBAL",
	OpGetGlobal:    "OP_GET_GLOBAL",
	OpSetGlobal:    "OP_SET_GLOBAL",
	OpGetLocal:     "OP_GET_LOCAL",
	OpSetLocal:     "OP_SET_LOCAL",
	OpEqual:        "OP_EQUAL",
	OpGreater:      "OP_GREATER",
	OpGreaterEqual: "OP_GREATER_EQUAL",
	OpLess:         "OP_LESS",
	OpLessEqual:    "OP_LESS_EQUAL",
	OpAdd:          "OP_ADD",
	OpSubtract:     "OP_SUBTRACT",
	OpMultiply:     "OP_MULTIPLY",
	OpDivide:       "OP_DIVIDE",
	OpNot:          "OP_NOT",
	OpNegate:       "OP_NEGATE",
	OpPrint:        "OP_PRINT",
	OpJump:         "OP_JUMP",
	OpJumpIfFalse:  "OP_JUMP_IF_FALSE",
	OpLoop:         "OP_LOOP",
	OpCall:         "OP_CALL",
	OpReturn:       "OP_RETURN",
}

func (op OpCode) String() string {
	if int(op) >= 0 && int(op) < len(opcodeNames) && opcodeNames[op] != "" {
		return opcodeNames[op]
	}
	return "OP_UNKNOWN"
}
