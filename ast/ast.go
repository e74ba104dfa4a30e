/*
 * WHILE
 *
 * Copyright 2024 The WHILE Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package ast

import "devt.de/krotik/while/tree"

// Expressions
// ===========

/*
Expr is implemented by every expression node. Complete reports whether
this node (and everything beneath it) was fully parsed; a false value
means some sub-slot was filled with an absent marker after a parse
error.
*/
type Expr interface {
	exprNode()
	Span() Span
	Complete() bool
}

/*
exprBase carries the fields common to every expression node.
*/
type exprBase struct {
	Sp   Span
	Comp bool
}

func (b exprBase) exprNode()      {}
func (b exprBase) Span() Span     { return b.Sp }
func (b exprBase) Complete() bool { return b.Comp }

/*
Ident is a variable reference, or the reserved identifier "nil".
*/
type Ident struct {
	exprBase
	Name string
}

/*
NewIdent constructs an Ident, used by the parser (exprBase is
unexported so its embedding fields cannot be set from outside this
package via a struct literal).
*/
func NewIdent(sp Span, complete bool, name string) *Ident {
	return &Ident{exprBase{sp, complete}, name}
}

/*
OpKind distinguishes the three pure tree operators.
*/
type OpKind int

const (
	OpCons OpKind = iota
	OpHd
	OpTl
)

func (k OpKind) String() string {
	switch k {
	case OpCons:
		return "cons"
	case OpHd:
		return "hd"
	case OpTl:
		return "tl"
	}
	return "?"
}

/*
Op is a pure tree operator applied to its arguments: cons takes two
arguments, hd/tl take one.
*/
type Op struct {
	exprBase
	Kind OpKind
	Args []Expr
}

/*
NewOp constructs an Op node.
*/
func NewOp(sp Span, complete bool, kind OpKind, args []Expr) *Op {
	return &Op{exprBase{sp, complete}, kind, args}
}

/*
TreeLiteral is a literal tree value: "nil" parses as TreeLiteral(nil),
a numeric literal parses as TreeLiteral(numeric encoding of n).
*/
type TreeLiteral struct {
	exprBase
	Value *tree.Tree
}

/*
NewTreeLiteral constructs a TreeLiteral node.
*/
func NewTreeLiteral(sp Span, complete bool, value *tree.Tree) *TreeLiteral {
	return &TreeLiteral{exprBase{sp, complete}, value}
}

/*
Equal is the extended "=" binary expression.
*/
type Equal struct {
	exprBase
	Left, Right Expr
}

/*
NewEqual constructs an Equal node.
*/
func NewEqual(sp Span, complete bool, left, right Expr) *Equal {
	return &Equal{exprBase{sp, complete}, left, right}
}

/*
List is the extended "[e1, ..., en]" list literal.
*/
type List struct {
	exprBase
	Elements []Expr
}

/*
NewList constructs a List node.
*/
func NewList(sp Span, complete bool, elements []Expr) *List {
	return &List{exprBase{sp, complete}, elements}
}

/*
TreeExpr is the extended "<l.r>" tree constructor literal.
*/
type TreeExpr struct {
	exprBase
	Left, Right Expr
}

/*
NewTreeExpr constructs a TreeExpr node.
*/
func NewTreeExpr(sp Span, complete bool, left, right Expr) *TreeExpr {
	return &TreeExpr{exprBase{sp, complete}, left, right}
}

/*
MacroCall is the extended "<name> e" macro invocation.
*/
type MacroCall struct {
	exprBase
	Program string
	Input   Expr
}

/*
NewMacroCall constructs a MacroCall node.
*/
func NewMacroCall(sp Span, complete bool, program string, input Expr) *MacroCall {
	return &MacroCall{exprBase{sp, complete}, program, input}
}

// Commands
// ========

/*
Command is implemented by every statement node.
*/
type Command interface {
	cmdNode()
	Span() Span
	Complete() bool
}

type cmdBase struct {
	Sp   Span
	Comp bool
}

func (b cmdBase) cmdNode()       {}
func (b cmdBase) Span() Span     { return b.Sp }
func (b cmdBase) Complete() bool { return b.Comp }

/*
Assign is "target := expression".
*/
type Assign struct {
	cmdBase
	Target string
	Expr   Expr
}

/*
NewAssign constructs an Assign node.
*/
func NewAssign(sp Span, complete bool, target string, expr Expr) *Assign {
	return &Assign{cmdBase{sp, complete}, target, expr}
}

/*
Cond is "if condition block [else block]".
*/
type Cond struct {
	cmdBase
	Condition Expr
	Then      *Block
	Else      *Block
}

/*
NewCond constructs a Cond node.
*/
func NewCond(sp Span, complete bool, condition Expr, then, els *Block) *Cond {
	return &Cond{cmdBase{sp, complete}, condition, then, els}
}

/*
Loop is "while condition block".
*/
type Loop struct {
	cmdBase
	Condition Expr
	Body      *Block
}

/*
NewLoop constructs a Loop node.
*/
func NewLoop(sp Span, complete bool, condition Expr, body *Block) *Loop {
	return &Loop{cmdBase{sp, complete}, condition, body}
}

/*
SwitchCase is a single "case expression: statements" rule of an extended
switch.
*/
type SwitchCase struct {
	Match Expr
	Body  *Block
}

/*
Switch is the extended "switch condition { case ... default: ... }".
*/
type Switch struct {
	cmdBase
	Condition Expr
	Cases     []SwitchCase
	Default   *Block
}

/*
NewSwitch constructs a Switch node.
*/
func NewSwitch(sp Span, complete bool, condition Expr, cases []SwitchCase, def *Block) *Switch {
	return &Switch{cmdBase{sp, complete}, condition, cases, def}
}

/*
Block is a brace-delimited statement list.
*/
type Block struct {
	Statements []Command
	Comp       bool
}

/*
Complete reports whether every statement in the block parsed cleanly.
*/
func (b *Block) Complete() bool {
	return b != nil && b.Comp
}

// Program
// =======

/*
Program is the root AST node: "name read input { body } write output".
*/
type Program struct {
	Name     string
	HasName  bool
	Input    string
	HasInput bool
	Body     *Block
	Output   string
	HasOut   bool
	Comp     bool
}

/*
Complete reports whether the whole program parsed without any recovery.
*/
func (p *Program) Complete() bool {
	return p != nil && p.Comp
}

/*
IsPure reports whether a program uses only the pure WHILE subset: every
expression is an Ident, Op(cons|hd|tl), or TreeLiteral(nil), and it
contains no Switch command.
*/
func IsPure(p *Program) bool {
	if p == nil || p.Body == nil {
		return true
	}
	return blockIsPure(p.Body)
}

func blockIsPure(b *Block) bool {
	if b == nil {
		return true
	}
	for _, c := range b.Statements {
		if !commandIsPure(c) {
			return false
		}
	}
	return true
}

func commandIsPure(c Command) bool {
	switch n := c.(type) {
	case *Assign:
		return exprIsPure(n.Expr)
	case *Cond:
		return exprIsPure(n.Condition) && blockIsPure(n.Then) && blockIsPure(n.Else)
	case *Loop:
		return exprIsPure(n.Condition) && blockIsPure(n.Body)
	case *Switch:
		return false
	}
	return false
}

func exprIsPure(e Expr) bool {
	switch n := e.(type) {
	case nil:
		return true
	case *Ident:
		return true
	case *Op:
		for _, a := range n.Args {
			if !exprIsPure(a) {
				return false
			}
		}
		return true
	case *TreeLiteral:
		return tree.IsNil(n.Value)
	}
	return false
}
