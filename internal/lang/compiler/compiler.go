// Package compiler implements the single-pass Pratt compiler: it consumes
// scanner tokens directly and emits opcodes into the current function's
// chunk. No intermediate AST is ever built.
package compiler

import (
	"strconv"

	"github.com/hashicorp/go-multierror"

	"github.com/theosovv/linen/internal/diagnostics"
	"github.com/theosovv/linen/internal/lang/bytecode"
	"github.com/theosovv/linen/internal/lang/scanner"
	"github.com/theosovv/linen/internal/lang/token"
)

const maxArgs = 255

// Compiler is the single parser/compiler instance. It owns the shared
// scanner/lookahead state (current, previous token) and a stack of
// funcStates, one per nested function body.
type Compiler struct {
	sc *scanner.Scanner

	current  token.Token
	previous token.Token

	hadError  bool
	panicMode bool
	errs      *multierror.Error

	fs    *funcState
	rules map[token.Kind]parseRule
}

// Compile compiles source into a top-level function value (arity 0, empty
// name) whose chunk is the compiled program, terminated by an implicit
// `nil; return`. On any compile error it returns a non-nil error
// aggregating every reported diagnostic.
func Compile(source string) (*bytecode.ObjFunction, error) {
	c := &Compiler{sc: scanner.New(source)}
	c.rules = c.buildRules()
	c.pushFunc(funcScript, "")

	c.advance()
	for !c.match(token.EOF) {
		c.declaration()
	}

	fn := c.endFunc()
	if c.hadError {
		return nil, c.errs.ErrorOrNil()
	}
	return fn, nil
}

// --- function compilation stack ---

func (c *Compiler) pushFunc(kind funcKind, name string) {
	fn := bytecode.NewFunction()
	fn.Name = name
	fn.Chunk = bytecode.NewChunk()

	fs := &funcState{
		enclosing: c.fs,
		function:  fn,
		funcType:  kind,
		// Local slot 0 is the frame base (the first parameter); the callee
		// sits just below it at slot-1, so no local is reserved for it.
	}
	c.fs = fs
}

func (c *Compiler) endFunc() *bytecode.ObjFunction {
	c.emitReturnNil()
	fn := c.fs.function
	c.fs = c.fs.enclosing
	return fn
}

func (c *Compiler) chunk() *bytecode.Chunk {
	return c.fs.function.Chunk
}

// --- token stream plumbing ---

func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.sc.Scan()
		if c.current.Kind != token.Error {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

func (c *Compiler) check(kind token.Kind) bool {
	return c.current.Kind == kind
}

func (c *Compiler) match(kind token.Kind) bool {
	if !c.check(kind) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(kind token.Kind, message string) {
	if c.current.Kind == kind {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

// --- error reporting (accumulating, panic-mode resync) ---

func (c *Compiler) errorAtCurrent(message string) { c.errorAt(c.current, message) }
func (c *Compiler) error(message string)          { c.errorAt(c.previous, message) }

func (c *Compiler) errorAt(tok token.Token, message string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true

	where := tok.Lexeme
	if tok.Kind == token.EOF {
		where = "end"
	}
	ce := CompileError{Line: tok.Line, Where: where, Message: message}
	c.errs = multierror.Append(c.errs, ce)
	diagnostics.Log().WithField("line", tok.Line).Debug(ce.Error())
}

// synchronize skips tokens until a statement boundary: just past a `;`, or
// right before a keyword that starts a fresh statement.
func (c *Compiler) synchronize() {
	c.panicMode = false

	for c.current.Kind != token.EOF {
		if c.previous.Kind == token.Semicolon {
			return
		}
		switch c.current.Kind {
		case token.Class, token.Fn, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}
		c.advance()
	}
}

// --- bytecode emission ---

func (c *Compiler) emitByte(b byte) {
	c.chunk().Write(b, c.previous.Line)
}

func (c *Compiler) emitOp(op bytecode.OpCode) {
	c.chunk().WriteOp(op, c.previous.Line)
}

func (c *Compiler) emitOpByte(op bytecode.OpCode, operand byte) {
	c.emitOp(op)
	c.emitByte(operand)
}

func (c *Compiler) emitReturnNil() {
	c.emitOp(bytecode.OpNil)
	c.emitOp(bytecode.OpReturn)
}

func (c *Compiler) makeConstant(v bytecode.Value) byte {
	if len(c.chunk().Constants) >= bytecode.MaxConstants {
		c.error("too many constants in one chunk")
		return 0
	}
	return byte(c.chunk().AddConstant(v))
}

func (c *Compiler) emitConstant(v bytecode.Value) {
	c.emitOpByte(bytecode.OpConstant, c.makeConstant(v))
}

// emitJump writes the opcode plus two placeholder bytes and returns the
// index of the first placeholder, to be patched later.
func (c *Compiler) emitJump(op bytecode.OpCode) int {
	c.emitOp(op)
	c.emitByte(0xff)
	c.emitByte(0xff)
	return len(c.chunk().Code) - 2
}

// patchJump backpatches the jump at idx so it lands on the current code
// offset.
func (c *Compiler) patchJump(idx int) {
	offset := len(c.chunk().Code) - idx - 2
	if offset > 0xffff {
		c.error("too much code to jump over")
		return
	}
	ch := c.chunk()
	ch.Code[idx] = byte(offset >> 8)
	ch.Code[idx+1] = byte(offset)
}

// emitLoop emits OP_LOOP with the backward offset to loopStart.
func (c *Compiler) emitLoop(loopStart int) {
	c.emitOp(bytecode.OpLoop)
	offset := len(c.chunk().Code) - loopStart + 2
	if offset > 0xffff {
		c.error("loop body too large")
		return
	}
	c.emitByte(byte(offset >> 8))
	c.emitByte(byte(offset))
}

// --- scope management ---

func (c *Compiler) beginScope() { c.fs.scopeDepth++ }

func (c *Compiler) endScope() {
	c.fs.scopeDepth--
	locals := c.fs.locals
	for len(locals) > 0 && locals[len(locals)-1].depth > c.fs.scopeDepth {
		c.emitOp(bytecode.OpPop)
		locals = locals[:len(locals)-1]
	}
	c.fs.locals = locals
}

// --- declarations & statements ---

func (c *Compiler) declaration() {
	switch {
	case c.match(token.Fn):
		c.fnDeclaration()
	case c.match(token.Var):
		c.varDeclaration()
	default:
		c.statement()
	}
	if c.panicMode {
		c.synchronize()
	}
}

func (c *Compiler) statement() {
	switch {
	case c.match(token.Print):
		c.printStatement()
	case c.match(token.For):
		c.forStatement()
	case c.match(token.If):
		c.ifStatement()
	case c.match(token.Return):
		c.returnStatement()
	case c.match(token.While):
		c.whileStatement()
	case c.match(token.LeftBrace):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) block() {
	for !c.check(token.RightBrace) && !c.check(token.EOF) {
		c.declaration()
	}
	c.consume(token.RightBrace, "expect '}' after block")
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(token.Semicolon, "expect ';' after value")
	c.emitOp(bytecode.OpPrint)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.Semicolon, "expect ';' after expression")
	c.emitOp(bytecode.OpPop)
}

func (c *Compiler) ifStatement() {
	c.consume(token.LeftParen, "expect '(' after 'if'")
	c.expression()
	c.consume(token.RightParen, "expect ')' after condition")

	thenJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emitOp(bytecode.OpPop)
	c.statement()

	elseJump := c.emitJump(bytecode.OpJump)
	c.patchJump(thenJump)
	c.emitOp(bytecode.OpPop)

	if c.match(token.Else) {
		c.statement()
	}
	c.patchJump(elseJump)
}

func (c *Compiler) whileStatement() {
	loopStart := len(c.chunk().Code)
	c.consume(token.LeftParen, "expect '(' after 'while'")
	c.expression()
	c.consume(token.RightParen, "expect ')' after condition")

	exitJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emitOp(bytecode.OpPop)
	c.statement()
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emitOp(bytecode.OpPop)
}

func (c *Compiler) forStatement() {
	c.beginScope()

	c.consume(token.LeftParen, "expect '(' after 'for'")
	switch {
	case c.match(token.Semicolon):
		// no initializer
	case c.match(token.Var):
		c.varDeclaration()
	default:
		c.expressionStatement()
	}

	loopStart := len(c.chunk().Code)
	exitJump := -1
	if !c.match(token.Semicolon) {
		c.expression()
		c.consume(token.Semicolon, "expect ';' after loop condition")
		exitJump = c.emitJump(bytecode.OpJumpIfFalse)
		c.emitOp(bytecode.OpPop)
	}

	if !c.match(token.RightParen) {
		bodyJump := c.emitJump(bytecode.OpJump)
		incrStart := len(c.chunk().Code)
		c.expression()
		c.emitOp(bytecode.OpPop)
		c.consume(token.RightParen, "expect ')' after for clauses")

		c.emitLoop(loopStart)
		loopStart = incrStart
		c.patchJump(bodyJump)
	}

	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emitOp(bytecode.OpPop)
	}

	c.endScope()
}

func (c *Compiler) returnStatement() {
	if c.fs.funcType == funcScript {
		c.error("can't return from top-level code")
	}
	if c.match(token.Semicolon) {
		c.emitReturnNil()
		return
	}
	c.expression()
	c.consume(token.Semicolon, "expect ';' after return value")
	c.emitOp(bytecode.OpReturn)
}

func (c *Compiler) varDeclaration() {
	global := c.parseVariable("expect variable name")

	if c.match(token.Equal) {
		c.expression()
	} else {
		c.emitOp(bytecode.OpNil)
	}
	c.consume(token.Semicolon, "expect ';' after variable declaration")
	c.defineVariable(global)
}

func (c *Compiler) fnDeclaration() {
	global := c.parseVariable("expect function name")
	c.markInitialized()
	c.function(funcFunction)
	c.defineVariable(global)
}

func (c *Compiler) function(kind funcKind) {
	name := c.previous.Lexeme
	c.pushFunc(kind, name)
	c.beginScope()

	c.consume(token.LeftParen, "expect '(' after function name")
	if !c.check(token.RightParen) {
		for {
			c.fs.function.Arity++
			if c.fs.function.Arity > maxArgs {
				c.errorAtCurrent("can't have more than 255 parameters")
			}
			constant := c.parseVariable("expect parameter name")
			c.defineVariable(constant)
			if !c.match(token.Comma) {
				break
			}
		}
	}
	c.consume(token.RightParen, "expect ')' after parameters")
	c.consume(token.LeftBrace, "expect '{' before function body")
	c.block()

	fn := c.endFunc()
	c.emitConstant(bytecode.Object(fn))
}

func (c *Compiler) argumentList() byte {
	var argCount int
	if !c.check(token.RightParen) {
		for {
			c.expression()
			if argCount == maxArgs {
				c.error("can't have more than 255 arguments")
			}
			argCount++
			if !c.match(token.Comma) {
				break
			}
		}
	}
	c.consume(token.RightParen, "expect ')' after arguments")
	return byte(argCount)
}

// --- expressions ---

func (c *Compiler) expression() {
	c.parsePrecedence(PrecAssignment)
}

func (c *Compiler) parsePrecedence(prec Precedence) {
	c.advance()
	prefix := c.rules[c.previous.Kind].prefix
	if prefix == nil {
		c.error("expect expression")
		return
	}

	canAssign := prec <= PrecAssignment
	prefix(c, canAssign)

	for prec <= c.rules[c.current.Kind].precedence {
		c.advance()
		infix := c.rules[c.previous.Kind].infix
		infix(c, canAssign)
	}

	if canAssign && c.match(token.Equal) {
		c.error("invalid assignment target")
	}
}

func number(c *Compiler, _ bool) {
	f, err := strconv.ParseFloat(c.previous.Lexeme, 64)
	if err != nil {
		c.error("invalid number literal")
		return
	}
	c.emitConstant(bytecode.Number(f))
}

func stringLiteral(c *Compiler, _ bool) {
	lexeme := c.previous.Lexeme
	// Drop the surrounding quotes.
	unquoted := lexeme[1 : len(lexeme)-1]
	c.emitConstant(bytecode.Object(bytecode.NewString(unquoted)))
}

func literal(c *Compiler, _ bool) {
	switch c.previous.Kind {
	case token.False:
		c.emitOp(bytecode.OpFalse)
	case token.Nil:
		c.emitOp(bytecode.OpNil)
	case token.True:
		c.emitOp(bytecode.OpTrue)
	}
}

func grouping(c *Compiler, _ bool) {
	c.expression()
	c.consume(token.RightParen, "expect ')' after expression")
}

func unary(c *Compiler, _ bool) {
	opKind := c.previous.Kind
	c.parsePrecedence(PrecUnary)
	switch opKind {
	case token.Minus:
		c.emitOp(bytecode.OpNegate)
	case token.Bang:
		c.emitOp(bytecode.OpNot)
	}
}

func binary(c *Compiler, _ bool) {
	opKind := c.previous.Kind
	rule := c.rules[opKind]
	c.parsePrecedence(rule.precedence + 1)

	switch opKind {
	case token.BangEqual:
		c.emitOp(bytecode.OpEqual)
		c.emitOp(bytecode.OpNot)
	case token.EqualEqual:
		c.emitOp(bytecode.OpEqual)
	case token.Greater:
		c.emitOp(bytecode.OpGreater)
	case token.GreaterEqual:
		c.emitOp(bytecode.OpGreaterEqual)
	case token.Less:
		c.emitOp(bytecode.OpLess)
	case token.LessEqual:
		c.emitOp(bytecode.OpLessEqual)
	case token.Plus:
		c.emitOp(bytecode.OpAdd)
	case token.Minus:
		c.emitOp(bytecode.OpSubtract)
	case token.Star:
		c.emitOp(bytecode.OpMultiply)
	case token.Slash:
		c.emitOp(bytecode.OpDivide)
	}
}

func and_(c *Compiler, _ bool) {
	endJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emitOp(bytecode.OpPop)
	c.parsePrecedence(PrecAnd)
	c.patchJump(endJump)
}

func or_(c *Compiler, _ bool) {
	elseJump := c.emitJump(bytecode.OpJumpIfFalse)
	endJump := c.emitJump(bytecode.OpJump)
	c.patchJump(elseJump)
	c.emitOp(bytecode.OpPop)
	c.parsePrecedence(PrecOr)
	c.patchJump(endJump)
}

func call(c *Compiler, _ bool) {
	argCount := c.argumentList()
	c.emitOpByte(bytecode.OpCall, argCount)
}

func variable(c *Compiler, canAssign bool) {
	c.namedVariable(c.previous, canAssign)
}

func (c *Compiler) namedVariable(name token.Token, canAssign bool) {
	var getOp, setOp bytecode.OpCode
	arg, ok := c.resolveLocal(c.fs, name)
	if ok {
		getOp, setOp = bytecode.OpGetLocal, bytecode.OpSetLocal
	} else {
		arg = int(c.identifierConstant(name))
		getOp, setOp = bytecode.OpGetGlobal, bytecode.OpSetGlobal
	}

	if canAssign && c.match(token.Equal) {
		c.expression()
		c.emitOpByte(setOp, byte(arg))
	} else {
		c.emitOpByte(getOp, byte(arg))
	}
}

// --- variable resolution ---

func (c *Compiler) identifierConstant(name token.Token) byte {
	return c.makeConstant(bytecode.Object(bytecode.NewString(name.Lexeme)))
}

func identifiersEqual(a, b token.Token) bool {
	return a.Lexeme == b.Lexeme
}

// resolveLocal walks fs's locals tail-first. A match with uninitialized
// depth means the local is being read from within its own initializer.
func (c *Compiler) resolveLocal(fs *funcState, name token.Token) (int, bool) {
	for i := len(fs.locals) - 1; i >= 0; i-- {
		l := &fs.locals[i]
		if identifiersEqual(l.name, name) {
			if l.depth == uninitialized {
				c.error("can't read local variable in its own initializer")
			}
			return i, true
		}
	}
	return 0, false
}

func (c *Compiler) addLocal(name token.Token) {
	if len(c.fs.locals) >= maxLocals {
		c.error("too many local variables in function")
		return
	}
	c.fs.locals = append(c.fs.locals, local{name: name, depth: uninitialized})
}

// declareVariable rejects redeclaration within the same scope (tail-scan,
// matching only locals at the current depth) and pushes an uninitialized
// local. No-op at global scope (depth 0).
func (c *Compiler) declareVariable() {
	if c.fs.scopeDepth == 0 {
		return
	}
	name := c.previous
	for i := len(c.fs.locals) - 1; i >= 0; i-- {
		l := c.fs.locals[i]
		if l.depth != uninitialized && l.depth < c.fs.scopeDepth {
			break
		}
		if identifiersEqual(l.name, name) {
			c.error("already a variable with this name in this scope")
		}
	}
	c.addLocal(name)
}

// parseVariable consumes an identifier, declares it, and returns the
// constant-pool index to use for DEFINE_GLOBAL (meaningless at local
// scope, where it returns 0).
func (c *Compiler) parseVariable(message string) byte {
	c.consume(token.Identifier, message)
	c.declareVariable()
	if c.fs.scopeDepth > 0 {
		return 0
	}
	return c.identifierConstant(c.previous)
}

func (c *Compiler) markInitialized() {
	if c.fs.scopeDepth == 0 {
		return
	}
	c.fs.locals[len(c.fs.locals)-1].depth = c.fs.scopeDepth
}

func (c *Compiler) defineVariable(global byte) {
	if c.fs.scopeDepth > 0 {
		c.markInitialized()
		return
	}
	c.emitOpByte(bytecode.OpDefineGlobal, global)
}

// --- parse rule table ---

func (c *Compiler) buildRules() map[token.Kind]parseRule {
	return map[token.Kind]parseRule{
		token.LeftParen:    {prefix: grouping, infix: call, precedence: PrecCall},
		token.Minus:        {prefix: unary, infix: binary, precedence: PrecTerm},
		token.Plus:         {infix: binary, precedence: PrecTerm},
		token.Slash:        {infix: binary, precedence: PrecFactor},
		token.Star:         {infix: binary, precedence: PrecFactor},
		token.Bang:         {prefix: unary},
		token.BangEqual:    {infix: binary, precedence: PrecEquality},
		token.EqualEqual:   {infix: binary, precedence: PrecEquality},
		token.Greater:      {infix: binary, precedence: PrecComparison},
		token.GreaterEqual: {infix: binary, precedence: PrecComparison},
		token.Less:         {infix: binary, precedence: PrecComparison},
		token.LessEqual:    {infix: binary, precedence: PrecComparison},
		token.Identifier:   {prefix: variable},
		token.String:       {prefix: stringLiteral},
		token.Number:       {prefix: number},
		token.And:          {infix: and_, precedence: PrecAnd},
		token.Or:           {infix: or_, precedence: PrecOr},
		token.False:        {prefix: literal},
		token.Nil:          {prefix: literal},
		token.True:         {prefix: literal},
	}
}
