/*
 * WHILE
 *
 * Copyright 2024 The WHILE Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package parser

import (
	"fmt"
	"strconv"
	"strings"

	"devt.de/krotik/common/stringutil"
	"devt.de/krotik/while/ast"
	"devt.de/krotik/while/config"
	"devt.de/krotik/while/tree"
)

// Parser
// ======
//
// The teacher (devt.de/krotik/ecal/parser) is a Pratt (TDOP) parser
// that stops dead on the first error. Spec §4.5 requires a resilient
// parser that always returns a best-effort AST plus diagnostics, so
// this parser is a plain recursive-descent parser instead - WHILE's
// grammar is unambiguous under fixed operator arity (spec calls this
// "operator-free precedence"), so no binding-power machinery is needed
// the way the teacher's expression grammar needs it. What is kept from
// the teacher's shape: a token-queue abstraction with peek/next, and
// synchronising error recovery that resumes statement parsing after a
// diagnostic.

/*
parser holds the mutable state of a single parse.
*/
type parser struct {
	tokens  *LABuffer
	lastEnd ast.Position
	diags   []ast.Diagnostic
}

/*
Parse lexes and parses WHILE source text. It always returns a program
AST - possibly incomplete - together with every diagnostic collected
from both the lexer and the parser.
*/
func Parse(source string, pureOnly bool) (*ast.Program, []ast.Diagnostic) {
	tokens, lexDiags := Lex(source, pureOnly)

	p := &parser{tokens: NewLABuffer(tokens, 3)}
	p.diags = append(p.diags, lexDiags...)

	prog := p.parseProgram()

	return prog, p.diags
}

/*
ParseDefault is Parse with pureOnly taken from config.PureOnly.
*/
func ParseDefault(source string) (*ast.Program, []ast.Diagnostic) {
	return Parse(source, config.Bool(config.PureOnly))
}

// Token stream helpers
// ====================

func (p *parser) cur() Token {
	t, _ := p.tokens.Peek(0)
	return t
}

func (p *parser) peekKind(n int) TokenKind {
	t, _ := p.tokens.Peek(n)
	return t.Kind
}

func (p *parser) at(k TokenKind) bool {
	return p.cur().Kind == k
}

func (p *parser) atEnd() bool {
	return p.at(TokenEOF)
}

func (p *parser) advance() Token {
	t := p.cur()
	if t.Kind != TokenEOF {
		p.tokens.Advance()
	}
	p.lastEnd = t.Span.End
	return t
}

/*
spanFrom builds a Span running from start to the end of the last
consumed token.
*/
func (p *parser) spanFrom(start ast.Position) ast.Span {
	return ast.Span{Start: start, End: p.lastEnd}
}

// Diagnostics
// ===========

func tokenDisplay(t Token) string {
	switch t.Kind {
	case TokenIdentifier, TokenNumber, TokenUnknown:
		return t.Value
	}
	return t.Kind.String()
}

func (p *parser) errorAt(msg string, sp ast.Span) {
	p.diags = append(p.diags, ast.Diagnostic{Message: msg, Start: sp.Start, End: sp.End, HasEnd: true})
}

/*
unexpected reports the general-purpose "unexpected token/end of input"
diagnostic of spec §7, naming what was expected.
*/
func (p *parser) unexpected(expected string) {
	t := p.cur()
	var msg string
	if t.Kind == TokenEOF {
		msg = fmt.Sprintf("Unexpected end of input: Expected %q", expected)
	} else {
		msg = fmt.Sprintf("Unexpected token %q: Expected %q", tokenDisplay(t), expected)
	}
	p.errorAt(msg, t.Span)
}

/*
unexpectedOneOf is the "one of ..." variant of unexpected.
*/
func (p *parser) unexpectedOneOf(expected []string) {
	quoted := make([]string, len(expected))
	for i, e := range expected {
		quoted[i] = fmt.Sprintf("%q", e)
	}
	list := "one of " + strings.Join(quoted, ", ")

	t := p.cur()
	var msg string
	if t.Kind == TokenEOF {
		msg = fmt.Sprintf("Unexpected end of input: Expected %s", list)
	} else {
		msg = fmt.Sprintf("Unexpected token %q: Expected %s", tokenDisplay(t), list)
	}
	p.errorAt(msg, t.Span)
}

func (p *parser) missingProgramName() {
	t := p.cur()
	if t.Kind == TokenEOF {
		p.errorAt("Unexpected end of input: Missing program name", t.Span)
	} else {
		p.errorAt("Unexpected token: Missing program name", t.Span)
	}
}

func (p *parser) missingInputVariable() {
	t := p.cur()
	if t.Kind == TokenEOF {
		p.errorAt("Unexpected end of input: Missing input variable", t.Span)
	} else {
		p.errorAt(fmt.Sprintf("Unexpected token %q: Missing input variable", tokenDisplay(t)), t.Span)
	}
}

// Error recovery
// ==============

/*
syncStatement consumes tokens until the next ';' or '}' - or one of the
caller-supplied extra stop kinds (used by switch case bodies, which
also terminate on 'case'/'default') - or end of input.
*/
func (p *parser) syncStatement(stop func(TokenKind) bool) {
	for {
		k := p.cur().Kind
		if k == TokenSemicolon || k == TokenRBrace || k == TokenEOF || stop(k) {
			return
		}
		p.advance()
	}
}

// Program
// =======

func (p *parser) parseProgram() *ast.Program {
	hasName := true
	var name string
	if p.at(TokenIdentifier) {
		name = p.advance().Value
	} else {
		p.missingProgramName()
		hasName = false
	}

	hasRead := true
	if p.at(TokenRead) {
		p.advance()
	} else {
		p.unexpected("read")
		hasRead = false
	}

	hasInput := true
	var input string
	if p.at(TokenIdentifier) {
		input = p.advance().Value
	} else {
		p.missingInputVariable()
		hasInput = false
	}

	body, bodyOK := p.parseBlock()

	hasWrite := true
	if p.at(TokenWrite) {
		p.advance()
	} else {
		p.unexpected("write")
		hasWrite = false
	}

	hasOutput := true
	var output string
	if p.at(TokenIdentifier) {
		output = p.advance().Value
	} else {
		p.unexpected("an identifier")
		hasOutput = false
	}

	noTrailingGarbage := true
	if !p.atEnd() {
		p.unexpected("end of input")
		noTrailingGarbage = false
	}

	complete := hasName && hasRead && hasInput && bodyOK && hasWrite && hasOutput && noTrailingGarbage

	return &ast.Program{
		Name:     name,
		HasName:  hasName,
		Input:    input,
		HasInput: hasInput,
		Body:     body,
		Output:   output,
		HasOut:   hasOutput,
		Comp:     complete,
	}
}

// Blocks and statement lists
// ==========================

func (p *parser) parseBlock() (*ast.Block, bool) {
	if !p.at(TokenLBrace) {
		p.unexpected("{")
		return &ast.Block{Comp: false}, false
	}
	p.advance()

	block, ok := p.parseStatements(isRBrace)

	if p.at(TokenRBrace) {
		p.advance()
	} else {
		p.unexpected("}")
		ok = false
		block.Comp = false
	}

	return block, ok
}

func isRBrace(k TokenKind) bool { return k == TokenRBrace }

/*
isCaseOrDefaultOrRBrace tests a switch-body stop set the way the
teacher's pretty-printer tests node names against a fixed list
(parser/prettyprinter.go: stringutil.IndexOf(ast.Name, []string{...})) -
here against a kind's own String() rather than a parsed identifier.
*/
var switchBodyStop = []string{TokenCase.String(), TokenDefault.String(), TokenRBrace.String()}

func isCaseOrDefaultOrRBrace(k TokenKind) bool {
	return stringutil.IndexOf(k.String(), switchBodyStop) != -1
}

/*
parseStatements parses "command (';' command)*" up to (not including) a
token accepted by stop, or end of input. A trailing ';' right before
the stop boundary is rejected, per spec §4.5.
*/
func (p *parser) parseStatements(stop func(TokenKind) bool) (*ast.Block, bool) {
	complete := true
	var stmts []ast.Command

	for !stop(p.cur().Kind) && !p.atEnd() {
		cmd, ok := p.parseCommandRecovering(stop)
		stmts = append(stmts, cmd)
		if !ok {
			complete = false
		}

		if p.at(TokenSemicolon) {
			p.advance()
			if stop(p.cur().Kind) || p.atEnd() {
				p.unexpected("a command")
				complete = false
			}
			continue
		}

		if stop(p.cur().Kind) || p.atEnd() {
			break
		}

		p.unexpected(`";"`)
		complete = false
		p.syncStatement(stop)
	}

	return &ast.Block{Statements: stmts, Comp: complete}, complete
}

func (p *parser) parseCommandRecovering(stop func(TokenKind) bool) (ast.Command, bool) {
	cmd, ok := p.parseCommand(stop)
	if !ok {
		p.syncStatement(stop)
	}
	return cmd, ok
}

// Commands
// ========

func (p *parser) parseCommand(stop func(TokenKind) bool) (ast.Command, bool) {
	switch {
	case p.at(TokenWhile):
		return p.parseLoop()
	case p.at(TokenIf):
		return p.parseCond()
	case p.at(TokenSwitch):
		return p.parseSwitch()
	case p.at(TokenIdentifier):
		return p.parseAssign()
	default:
		t := p.cur()
		p.unexpected("a command")
		return ast.NewAssign(t.Span, false, "", nil), false
	}
}

func (p *parser) parseAssign() (ast.Command, bool) {
	target := p.advance() // identifier, guaranteed by caller
	start := target.Span.Start

	if !p.at(TokenAssign) {
		p.unexpected(":=")
		return ast.NewAssign(p.spanFrom(start), false, target.Value, nil), false
	}
	p.advance()

	expr, ok := p.parseExpr()

	return ast.NewAssign(p.spanFrom(start), ok, target.Value, expr), ok
}

func (p *parser) parseCond() (ast.Command, bool) {
	start := p.cur().Span.Start
	p.advance() // 'if'

	cond, condOK := p.parseExpr()
	then, thenOK := p.parseBlock()

	elseBlock := &ast.Block{Comp: true}
	elseOK := true
	if p.at(TokenElse) {
		p.advance()
		elseBlock, elseOK = p.parseBlock()
	}

	complete := condOK && thenOK && elseOK

	return ast.NewCond(p.spanFrom(start), complete, cond, then, elseBlock), complete
}

func (p *parser) parseLoop() (ast.Command, bool) {
	start := p.cur().Span.Start
	p.advance() // 'while'

	cond, condOK := p.parseExpr()
	body, bodyOK := p.parseBlock()

	complete := condOK && bodyOK

	return ast.NewLoop(p.spanFrom(start), complete, cond, body), complete
}

func (p *parser) parseSwitch() (ast.Command, bool) {
	start := p.cur().Span.Start
	p.advance() // 'switch'

	cond, condOK := p.parseExpr()
	complete := condOK

	if !p.at(TokenLBrace) {
		p.unexpected("{")
		return ast.NewSwitch(p.spanFrom(start), false, cond, nil, nil), false
	}
	p.advance()

	var cases []ast.SwitchCase
	var def *ast.Block
	seenDefault := false

	for !p.at(TokenRBrace) && !p.atEnd() {
		switch {
		case p.at(TokenCase):
			if seenDefault {
				p.errorAt("The 'default' case should be the last case in the block", p.cur().Span)
				complete = false
			}
			p.advance()

			match, matchOK := p.parseExpr()

			colonOK := true
			if p.at(TokenColon) {
				p.advance()
			} else {
				p.unexpected(":")
				colonOK = false
			}

			body, bodyOK := p.parseStatements(isCaseOrDefaultOrRBrace)
			if len(body.Statements) == 0 {
				p.errorAt("Switch cases may not have empty bodies", p.cur().Span)
				complete = false
			}
			if !matchOK || !colonOK || !bodyOK {
				complete = false
			}

			cases = append(cases, ast.SwitchCase{Match: match, Body: body})

		case p.at(TokenDefault):
			if seenDefault {
				p.errorAt("The 'default' case should be the last case in the block", p.cur().Span)
				complete = false
			}
			seenDefault = true
			p.advance()

			colonOK := true
			if p.at(TokenColon) {
				p.advance()
			} else {
				p.unexpected(":")
				colonOK = false
			}

			body, bodyOK := p.parseStatements(isCaseOrDefaultOrRBrace)
			if len(body.Statements) == 0 {
				p.errorAt("Switch cases may not have empty bodies", p.cur().Span)
				complete = false
			}
			if !colonOK || !bodyOK {
				complete = false
			}
			def = body

		default:
			p.unexpectedOneOf([]string{"case", "default", "}"})
			complete = false
			p.syncStatement(isCaseOrDefaultOrRBrace)
		}
	}

	if p.at(TokenRBrace) {
		p.advance()
	} else {
		p.unexpected("}")
		complete = false
	}

	return ast.NewSwitch(p.spanFrom(start), complete, cond, cases, def), complete
}

// Expressions
// ===========

/*
parseExpr parses an expression and its optional trailing "= expression"
(spec's only infix construct); everything else is positional / prefix,
resolved without precedence.
*/
func (p *parser) parseExpr() (ast.Expr, bool) {
	start := p.cur().Span.Start

	left, ok := p.parsePrimary()

	if p.at(TokenEqual) {
		p.advance()
		right, ok2 := p.parsePrimary()
		complete := ok && ok2
		return ast.NewEqual(p.spanFrom(start), complete, left, right), complete
	}

	return left, ok
}

func (p *parser) parsePrimary() (ast.Expr, bool) {
	t := p.cur()
	start := t.Span.Start

	switch t.Kind {
	case TokenIdentifier:
		p.advance()
		if t.Value == "nil" {
			return ast.NewTreeLiteral(p.spanFrom(start), true, tree.Nil), true
		}
		return ast.NewIdent(p.spanFrom(start), true, t.Value), true

	case TokenNumber:
		p.advance()
		n, err := strconv.Atoi(t.Value)
		if err != nil || n < 0 {
			n = 0
		}
		return ast.NewTreeLiteral(p.spanFrom(start), true, tree.Number(n)), true

	case TokenTrue:
		p.advance()
		return ast.NewTreeLiteral(p.spanFrom(start), true, tree.True()), true

	case TokenFalse:
		p.advance()
		return ast.NewTreeLiteral(p.spanFrom(start), true, tree.Nil), true

	case TokenCons:
		p.advance()
		a, ok1 := p.parseExpr()
		b, ok2 := p.parseExpr()
		complete := ok1 && ok2
		return ast.NewOp(p.spanFrom(start), complete, ast.OpCons, []ast.Expr{a, b}), complete

	case TokenHd:
		p.advance()
		a, ok := p.parseExpr()
		return ast.NewOp(p.spanFrom(start), ok, ast.OpHd, []ast.Expr{a}), ok

	case TokenTl:
		p.advance()
		a, ok := p.parseExpr()
		return ast.NewOp(p.spanFrom(start), ok, ast.OpTl, []ast.Expr{a}), ok

	case TokenLParen:
		p.advance()
		e, ok := p.parseExpr()
		if p.at(TokenRParen) {
			p.advance()
		} else {
			p.unexpected(")")
			ok = false
		}
		return e, ok

	case TokenLBrack:
		return p.parseList()

	case TokenLAngle:
		return p.parseAngle()

	default:
		p.unexpected("an expression or an identifier")
		return nil, false
	}
}

func (p *parser) parseList() (ast.Expr, bool) {
	start := p.cur().Span.Start
	p.advance() // '['

	complete := true
	var elems []ast.Expr

	if !p.at(TokenRBrack) {
		for {
			e, ok := p.parseExpr()
			elems = append(elems, e)
			if !ok {
				complete = false
			}
			if p.at(TokenComma) {
				p.advance()
				continue
			}
			break
		}
	}

	if p.at(TokenRBrack) {
		p.advance()
	} else {
		p.unexpected("]")
		complete = false
	}

	return ast.NewList(p.spanFrom(start), complete, elems), complete
}

/*
parseAngle disambiguates "<name> expr" (macro call) from "<expr.expr>"
(tree constructor): a macro call's name is followed immediately by '>',
which a tree constructor's first operand never is (it is followed by
'.').
*/
func (p *parser) parseAngle() (ast.Expr, bool) {
	start := p.cur().Span.Start
	p.advance() // '<'

	if p.at(TokenIdentifier) && p.peekKind(1) == TokenRAngle {
		name := p.advance().Value
		p.advance() // '>'
		input, ok := p.parseExpr()
		return ast.NewMacroCall(p.spanFrom(start), ok, name, input), ok
	}

	left, ok1 := p.parseExpr()

	ok2 := true
	if p.at(TokenDot) {
		p.advance()
	} else {
		p.unexpected(".")
		ok2 = false
	}

	right, ok3 := p.parseExpr()

	ok4 := true
	if p.at(TokenRAngle) {
		p.advance()
	} else {
		p.unexpected(">")
		ok4 = false
	}

	complete := ok1 && ok2 && ok3 && ok4
	return ast.NewTreeExpr(p.spanFrom(start), complete, left, right), complete
}
