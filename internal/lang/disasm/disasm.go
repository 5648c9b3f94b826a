// Package disasm renders a Chunk's bytecode in human-readable form, the way
// original_source/src/vm/chunk/debug.rs lays out ip, source line, mnemonic,
// operand, and resolved constant columns.
package disasm

import (
	"fmt"
	"strings"

	"github.com/theosovv/linen/internal/lang/bytecode"
)

// DisassembleChunk walks name's whole chunk, one instruction per line.
func DisassembleChunk(chunk *bytecode.Chunk, name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", name)
	for offset := 0; offset < len(chunk.Code); {
		line, next := disassembleAt(chunk, offset)
		b.WriteString(line)
		b.WriteByte('\n')
		offset = next
	}
	return b.String()
}

// DisassembleInstruction renders the single instruction at ip, with no
// trailing newline. Used by the VM's -trace mode.
func DisassembleInstruction(chunk *bytecode.Chunk, ip int) string {
	line, _ := disassembleAt(chunk, ip)
	return line
}

func disassembleAt(chunk *bytecode.Chunk, offset int) (string, int) {
	var b strings.Builder
	fmt.Fprintf(&b, "%04d ", offset)

	if offset >= len(chunk.Code) {
		fmt.Fprintf(&b, "reached end of code at ip=%d", offset)
		return b.String(), offset + 1
	}

	if offset > 0 && chunk.Lines[offset] == chunk.Lines[offset-1] {
		b.WriteString("   | ")
	} else {
		fmt.Fprintf(&b, "%4d ", chunk.Lines[offset])
	}

	op := bytecode.OpCode(chunk.Code[offset])
	switch op {
	case bytecode.OpConstant, bytecode.OpDefineGlobal, bytecode.OpGetGlobal, bytecode.OpSetGlobal:
		return constantInstruction(&b, chunk, op, offset)
	case bytecode.OpGetLocal, bytecode.OpSetLocal, bytecode.OpCall:
		return byteInstruction(&b, op, chunk, offset)
	case bytecode.OpJump, bytecode.OpJumpIfFalse:
		return jumpInstruction(&b, op, 1, chunk, offset)
	case bytecode.OpLoop:
		return jumpInstruction(&b, op, -1, chunk, offset)
	default:
		return simpleInstruction(&b, op), offset + 1
	}
}

func simpleInstruction(b *strings.Builder, op bytecode.OpCode) string {
	fmt.Fprintf(b, "%-18s", op.String())
	return b.String()
}

func constantInstruction(b *strings.Builder, chunk *bytecode.Chunk, op bytecode.OpCode, offset int) (string, int) {
	index := chunk.Code[offset+1]
	fmt.Fprintf(b, "%-18s %4d", op.String(), index)
	if int(index) < len(chunk.Constants) {
		fmt.Fprintf(b, " '%s'", chunk.Constants[index].String())
	}
	return b.String(), offset + 2
}

func byteInstruction(b *strings.Builder, op bytecode.OpCode, chunk *bytecode.Chunk, offset int) (string, int) {
	slot := chunk.Code[offset+1]
	fmt.Fprintf(b, "%-18s %4d", op.String(), slot)
	return b.String(), offset + 2
}

func jumpInstruction(b *strings.Builder, op bytecode.OpCode, sign int, chunk *bytecode.Chunk, offset int) (string, int) {
	jump := int(chunk.ReadUint16(offset + 1))
	target := offset + 3 + sign*jump
	fmt.Fprintf(b, "%-18s %4d -> %d", op.String(), offset, target)
	return b.String(), offset + 3
}
