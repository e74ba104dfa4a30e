/*
 * WHILE
 *
 * Copyright 2024 The WHILE Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package program

import (
	"fmt"

	"devt.de/krotik/while/ast"
	"devt.de/krotik/while/namespace"
	"devt.de/krotik/while/tree"
)

/*
Lower rewrites prog's body from extended WHILE to pure WHILE in place
(spec §4.10(d)/§4.10 "Lowering"):

  - true/false/numeric literals become explicit cons-of-nil trees;
  - list literals become right-spine cons chains;
  - tree-expressions <l.r> become cons(l, r);
  - switch becomes a chain of ifs;
  - equality a = b becomes a macro call to a fresh, reserved name whose
    body is the canonical equality program (C13), which this function
    then inlines immediately once the whole body has been lowered.

ns mints the fresh variable names used while inlining the equality
macro. Lowering an already-pure program is a no-op (idempotent, as
required by spec §4.10).
*/
func Lower(prog *ast.Program, ns *namespace.Manager) error {
	lw := &lowerer{}

	body, err := lw.block(prog.Body)
	if err != nil {
		return err
	}
	prog.Body = body

	if len(lw.eqNames) == 0 {
		return nil
	}

	reg := NewRegistry(nil, true)
	for name := range lw.eqNames {
		reg.Register(name, EqualityProgram())
	}

	mgr := NewManager(prog)
	for {
		var target *MacroOccurrence
		for _, mo := range mgr.Analysis.Macros {
			if lw.eqNames[mo.Call.Program] {
				target = mo
				break
			}
		}
		if target == nil {
			break
		}
		if err := mgr.InlineMacro(target, reg, ns, false); err != nil {
			return err
		}
	}

	return nil
}

/*
lowerer carries the state of a single Lower pass: the reserved names it
has minted for equality macro calls so far, so that each gets a fresh
one and every one it used can be found again for the inlining pass
that follows.
*/
type lowerer struct {
	eqNames map[string]bool
	counter int
}

func (lw *lowerer) block(b *ast.Block) (*ast.Block, error) {
	if b == nil {
		return nil, nil
	}
	stmts := make([]ast.Command, len(b.Statements))
	for i, c := range b.Statements {
		lc, err := lw.command(c)
		if err != nil {
			return nil, err
		}
		stmts[i] = lc
	}
	return &ast.Block{Statements: stmts, Comp: b.Comp}, nil
}

func (lw *lowerer) command(c ast.Command) (ast.Command, error) {
	switch n := c.(type) {
	case *ast.Assign:
		e, err := lw.expr(n.Expr)
		if err != nil {
			return nil, err
		}
		return ast.NewAssign(n.Span(), n.Complete(), n.Target, e), nil

	case *ast.Cond:
		cond, err := lw.expr(n.Condition)
		if err != nil {
			return nil, err
		}
		then, err := lw.block(n.Then)
		if err != nil {
			return nil, err
		}
		els, err := lw.block(n.Else)
		if err != nil {
			return nil, err
		}
		return ast.NewCond(n.Span(), n.Complete(), cond, then, els), nil

	case *ast.Loop:
		cond, err := lw.expr(n.Condition)
		if err != nil {
			return nil, err
		}
		body, err := lw.block(n.Body)
		if err != nil {
			return nil, err
		}
		return ast.NewLoop(n.Span(), n.Complete(), cond, body), nil

	case *ast.Switch:
		return lw.switchToCond(n)
	}
	return nil, fmt.Errorf("unsupported feature 'command %T'. Ensure the program is in pure WHILE", c)
}

/*
switchToCond lowers "switch e { case c1: B1 ... default: Bd }" into
"if e=c1 B1 else if e=c2 B2 ... else Bd" (spec §4.10 "Lowering"). An
empty case list degenerates to an unconditional branch onto Bd,
expressed as "if cons nil nil Bd else {}" so the result is still a
single command. The switch's own condition e is lowered once and
shared as the left operand of every case comparison.
*/
func (lw *lowerer) switchToCond(n *ast.Switch) (ast.Command, error) {
	cond, err := lw.expr(n.Condition)
	if err != nil {
		return nil, err
	}

	def, err := lw.block(n.Default)
	if err != nil {
		return nil, err
	}
	if def == nil {
		def = &ast.Block{Comp: true}
	}

	if len(n.Cases) == 0 {
		always := lowerTreeValue(tree.True(), n.Span())
		return ast.NewCond(n.Span(), true, always, def, &ast.Block{Comp: true}), nil
	}

	chain := def
	for i := len(n.Cases) - 1; i >= 0; i-- {
		match, err := lw.expr(n.Cases[i].Match)
		if err != nil {
			return nil, err
		}
		body, err := lw.block(n.Cases[i].Body)
		if err != nil {
			return nil, err
		}
		eq, err := lw.equal(cond, match, n.Span())
		if err != nil {
			return nil, err
		}
		chain = &ast.Block{Statements: []ast.Command{ast.NewCond(n.Span(), true, eq, body, chain)}, Comp: true}
	}

	return chain.Statements[0], nil
}

func (lw *lowerer) expr(e ast.Expr) (ast.Expr, error) {
	switch n := e.(type) {
	case nil:
		return nil, nil

	case *ast.Ident:
		return n, nil

	case *ast.Op:
		args := make([]ast.Expr, len(n.Args))
		for i, arg := range n.Args {
			la, err := lw.expr(arg)
			if err != nil {
				return nil, err
			}
			args[i] = la
		}
		return ast.NewOp(n.Span(), n.Complete(), n.Kind, args), nil

	case *ast.TreeLiteral:
		if tree.IsNil(n.Value) {
			return n, nil
		}
		return lowerTreeValue(n.Value, n.Span()), nil

	case *ast.Equal:
		l, err := lw.expr(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := lw.expr(n.Right)
		if err != nil {
			return nil, err
		}
		return lw.equal(l, r, n.Span())

	case *ast.List:
		elems := make([]ast.Expr, len(n.Elements))
		for i, el := range n.Elements {
			le, err := lw.expr(el)
			if err != nil {
				return nil, err
			}
			elems[i] = le
		}
		return lowerList(elems, n.Span()), nil

	case *ast.TreeExpr:
		l, err := lw.expr(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := lw.expr(n.Right)
		if err != nil {
			return nil, err
		}
		return ast.NewOp(n.Span(), true, ast.OpCons, []ast.Expr{l, r}), nil

	case *ast.MacroCall:
		input, err := lw.expr(n.Input)
		if err != nil {
			return nil, err
		}
		return ast.NewMacroCall(n.Span(), n.Complete(), n.Program, input), nil
	}

	return nil, fmt.Errorf("unsupported feature 'expression %T'. Ensure the program is in pure WHILE", e)
}

/*
equal mints a reserved macro name for one '=' comparison and records
it, to be inlined with the canonical equality program once the whole
body has been lowered. Names are double-underscore prefixed, a
namespace reserved for this pass; a user macro deliberately named the
same way is outside what this implementation supports (see DESIGN.md).
*/
func (lw *lowerer) equal(left, right ast.Expr, span ast.Span) (ast.Expr, error) {
	if lw.eqNames == nil {
		lw.eqNames = map[string]bool{}
	}
	name := fmt.Sprintf("__eq%d", lw.counter)
	lw.counter++
	lw.eqNames[name] = true

	input := ast.NewOp(span, true, ast.OpCons, []ast.Expr{left, right})
	return ast.NewMacroCall(span, true, name, input), nil
}

/*
lowerList builds cons(e1, cons(e2, ... cons(en, nil))); [] lowers to
nil (spec §4.10 "Lowering").
*/
func lowerList(elems []ast.Expr, sp ast.Span) ast.Expr {
	var result ast.Expr = ast.NewTreeLiteral(sp, true, tree.Nil)
	for i := len(elems) - 1; i >= 0; i-- {
		result = ast.NewOp(sp, true, ast.OpCons, []ast.Expr{elems[i], result})
	}
	return result
}

/*
lowerTreeValue renders a concrete tree value (true, or a numeral) as an
explicit cons-expression. It walks t with an explicit stack rather than
host-stack recursion, mirroring tree.writeTree's iterative walk, since
a large numeral's encoding can be thousands of cons cells deep.
*/
func lowerTreeValue(t *tree.Tree, sp ast.Span) ast.Expr {
	type item struct {
		t     *tree.Tree
		build bool
	}

	work := []item{{t: t}}
	var results []ast.Expr

	for len(work) > 0 {
		top := work[len(work)-1]
		work = work[:len(work)-1]

		if top.build {
			right := results[len(results)-1]
			left := results[len(results)-2]
			results = results[:len(results)-2]
			results = append(results, ast.NewOp(sp, true, ast.OpCons, []ast.Expr{left, right}))
			continue
		}

		if tree.IsNil(top.t) {
			results = append(results, ast.NewTreeLiteral(sp, true, tree.Nil))
			continue
		}

		work = append(work, item{build: true}, item{t: top.t.Right}, item{t: top.t.Left})
	}

	return results[0]
}
