/*
 * WHILE
 *
 * Copyright 2024 The WHILE Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

/*
Package program implements the program manager (C10): occurrence
analysis, atomic variable renaming, macro inlining, lowering of
extended WHILE to pure WHILE, and the macro dependency manager (C11)
that discovers and resolves macro references.

The teacher's interpreter (devt.de/krotik/ecal/interpreter/rt_*.go)
walks its AST with recursive Eval methods attached to *Runtime wrapper
types decorated directly onto each devt.de/krotik/ecal/parser.ASTNode
(see parser/runtime.go's RuntimeProvider/Runtime); there is no analogue
to WHILE's macro inlining there. What this package does borrow from
that shape is the mutate-in-place discipline itself - ASTNode carries
its Runtime and its rewritten Meta/Children in place, so callers that
hold a node pointer see a mutation immediately, with no separate
rewrite-and-relink pass. This package follows the same discipline for
variable renaming and macro inlining (spec §4.10, §9 "Mutation
discipline").
*/
package program

import (
	"sort"

	"devt.de/krotik/while/ast"
)

// Variable occurrences
// ====================

type varOccKind int

const (
	occIdentRead varOccKind = iota
	occAssignTarget
	occProgramInput
	occProgramOutput
)

/*
VarOccurrence is one position at which a variable name appears. Since
every AST node is a pointer, renaming is just mutating the field the
occurrence was recorded against - no separate rewrite pass is needed.
*/
type VarOccurrence struct {
	kind   varOccKind
	ident  *ast.Ident
	assign *ast.Assign
	prog   *ast.Program
}

func (o *VarOccurrence) rename(newName string) {
	switch o.kind {
	case occIdentRead:
		o.ident.Name = newName
	case occAssignTarget:
		o.assign.Target = newName
	case occProgramInput:
		o.prog.Input = newName
	case occProgramOutput:
		o.prog.Output = newName
	}
}

// Macro occurrences
// =================

/*
MacroOccurrence is one macro_call expression together with enough
context to splice statements in front of it and to replace it with an
identifier once its macro has been inlined (spec §4.10 steps 4-6).
*/
type MacroOccurrence struct {
	Call  *ast.MacroCall
	Block *ast.Block // the block containing the enclosing command
	Index int        // index of the enclosing command within Block.Statements

	replace func(ast.Expr)
}

// Analysis
// ========

/*
Analysis is the result of walking a program: every variable's
occurrences, keyed by its current name, and every macro call in
left-to-right traversal order.
*/
type Analysis struct {
	Vars   map[string][]*VarOccurrence
	Macros []*MacroOccurrence
}

/*
Analyse walks prog once, left to right, recording every variable
occurrence (including the program's own input/output identifiers) and
every macro call (spec §4.10(a)).
*/
func Analyse(prog *ast.Program) *Analysis {
	a := &Analysis{Vars: map[string][]*VarOccurrence{}}

	if prog == nil {
		return a
	}

	if prog.HasInput {
		a.addVar(prog.Input, &VarOccurrence{kind: occProgramInput, prog: prog})
	}

	walkBlock(prog.Body, a)

	if prog.HasOut {
		a.addVar(prog.Output, &VarOccurrence{kind: occProgramOutput, prog: prog})
	}

	return a
}

func (a *Analysis) addVar(name string, occ *VarOccurrence) {
	a.Vars[name] = append(a.Vars[name], occ)
}

/*
Rename moves every occurrence of old over to newName atomically (spec
§4.10(b)). A no-op if old has no occurrences.
*/
func (a *Analysis) Rename(old, newName string) {
	occs, ok := a.Vars[old]
	if !ok || old == newName {
		return
	}
	for _, o := range occs {
		o.rename(newName)
	}
	delete(a.Vars, old)
	a.Vars[newName] = append(a.Vars[newName], occs...)
}

/*
Names returns every variable name currently referenced, sorted for
deterministic iteration (spec §5: "two consecutive runs with identical
inputs produce byte-identical outputs") - callers such as InlineMacro
rename variables in this order, so the resulting fresh-name assignment
must not depend on Go's randomised map iteration.
*/
func (a *Analysis) Names() []string {
	names := make([]string, 0, len(a.Vars))
	for n := range a.Vars {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Tree walk
// =========

func walkBlock(b *ast.Block, a *Analysis) {
	if b == nil {
		return
	}
	for i, c := range b.Statements {
		walkCommand(c, b, i, a)
	}
}

func walkCommand(c ast.Command, block *ast.Block, idx int, a *Analysis) {
	switch n := c.(type) {
	case *ast.Assign:
		a.addVar(n.Target, &VarOccurrence{kind: occAssignTarget, assign: n})
		walkExpr(n.Expr, func(e ast.Expr) { n.Expr = e }, block, idx, a)

	case *ast.Cond:
		walkExpr(n.Condition, func(e ast.Expr) { n.Condition = e }, block, idx, a)
		walkBlock(n.Then, a)
		walkBlock(n.Else, a)

	case *ast.Loop:
		walkExpr(n.Condition, func(e ast.Expr) { n.Condition = e }, block, idx, a)
		walkBlock(n.Body, a)

	case *ast.Switch:
		walkExpr(n.Condition, func(e ast.Expr) { n.Condition = e }, block, idx, a)
		for i := range n.Cases {
			i := i
			walkExpr(n.Cases[i].Match, func(e ast.Expr) { n.Cases[i].Match = e }, block, idx, a)
			walkBlock(n.Cases[i].Body, a)
		}
		walkBlock(n.Default, a)
	}
}

/*
walkExpr recurses into e's sub-expressions, recording every identifier
and macro call it finds. set replaces e itself in whatever slot holds
it (a command field, an argument slice element, ...) - only macro
inlining ever calls it, to swap a macro_call for an identifier.
*/
func walkExpr(e ast.Expr, set func(ast.Expr), block *ast.Block, idx int, a *Analysis) {
	switch n := e.(type) {
	case nil:
		return

	case *ast.Ident:
		a.addVar(n.Name, &VarOccurrence{kind: occIdentRead, ident: n})

	case *ast.TreeLiteral:
		// no variables, no macros

	case *ast.Op:
		for i := range n.Args {
			i := i
			walkExpr(n.Args[i], func(e ast.Expr) { n.Args[i] = e }, block, idx, a)
		}

	case *ast.Equal:
		walkExpr(n.Left, func(e ast.Expr) { n.Left = e }, block, idx, a)
		walkExpr(n.Right, func(e ast.Expr) { n.Right = e }, block, idx, a)

	case *ast.List:
		for i := range n.Elements {
			i := i
			walkExpr(n.Elements[i], func(e ast.Expr) { n.Elements[i] = e }, block, idx, a)
		}

	case *ast.TreeExpr:
		walkExpr(n.Left, func(e ast.Expr) { n.Left = e }, block, idx, a)
		walkExpr(n.Right, func(e ast.Expr) { n.Right = e }, block, idx, a)

	case *ast.MacroCall:
		a.Macros = append(a.Macros, &MacroOccurrence{Call: n, Block: block, Index: idx, replace: set})
		walkExpr(n.Input, func(e ast.Expr) { n.Input = e }, block, idx, a)
	}
}
