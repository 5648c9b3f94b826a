package disasm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theosovv/linen/internal/lang/bytecode"
	"github.com/theosovv/linen/internal/lang/compiler"
	"github.com/theosovv/linen/internal/lang/disasm"
)

func TestDisassembleChunkHeaderAndOpcodes(t *testing.T) {
	fn, err := compiler.Compile(`print 1 + 2;`)
	require.NoError(t, err)

	out := disasm.DisassembleChunk(fn.Chunk, "test chunk")
	assert.Contains(t, out, "== test chunk ==")
	assert.Contains(t, out, bytecode.OpConstant.String())
	assert.Contains(t, out, bytecode.OpAdd.String())
	assert.Contains(t, out, bytecode.OpPrint.String())
}

func TestDisassembleInstructionSingleLine(t *testing.T) {
	chunk := bytecode.NewChunk()
	index := chunk.AddConstant(bytecode.Number(7))
	chunk.WriteOp(bytecode.OpConstant, 1)
	chunk.Write(byte(index), 1)

	line := disasm.DisassembleInstruction(chunk, 0)
	assert.Contains(t, line, "OP_CONSTANT")
	assert.Contains(t, line, "'7'")
}

func TestDisassembleJumpShowsTarget(t *testing.T) {
	chunk := bytecode.NewChunk()
	chunk.WriteOp(bytecode.OpJump, 1)
	chunk.WriteUint16(2, 1)
	chunk.WriteOp(bytecode.OpNil, 1)
	chunk.WriteOp(bytecode.OpNil, 1)

	line := disasm.DisassembleInstruction(chunk, 0)
	assert.Contains(t, line, "-> 5")
}
