package bytecode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theosovv/linen/internal/lang/bytecode"
)

func TestChunkWriteAndRead(t *testing.T) {
	chunk := bytecode.NewChunk()
	chunk.WriteOp(bytecode.OpConstant, 1)
	index := chunk.AddConstant(bytecode.Number(42))
	chunk.Write(byte(index), 1)

	require.Len(t, chunk.Code, 2)
	require.Len(t, chunk.Lines, 2)
	assert.Equal(t, byte(bytecode.OpConstant), chunk.Code[0])
	assert.Equal(t, 1, chunk.Lines[0])
	assert.Equal(t, bytecode.Number(42), chunk.Constants[chunk.Code[1]])
}

func TestChunkUint16Operand(t *testing.T) {
	chunk := bytecode.NewChunk()
	chunk.WriteOp(bytecode.OpJump, 4)
	chunk.WriteUint16(0x1234, 4)

	assert.Equal(t, uint16(0x1234), chunk.ReadUint16(1))
}

func TestChunkLinesParallelCode(t *testing.T) {
	chunk := bytecode.NewChunk()
	chunk.WriteOp(bytecode.OpNil, 1)
	chunk.WriteOp(bytecode.OpPop, 2)
	chunk.WriteOp(bytecode.OpReturn, 2)

	assert.Len(t, chunk.Code, len(chunk.Lines))
	assert.Equal(t, []int{1, 2, 2}, chunk.Lines)
}
