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
	"devt.de/krotik/while/util"
)

/*
Manager owns one AST and its current Analysis. RenameVariable updates
the Analysis in place and InlineMacro reanalyses after splicing; any
other change made to Program directly (such as the package-level Lower)
leaves the Analysis stale until Reanalyse is called.
*/
type Manager struct {
	Program  *ast.Program
	Analysis *Analysis
	Logger   util.Logger
}

/*
NewManager wraps prog and runs the initial analysis. The manager logs
nothing by default; call SetLogger to attach one and see debug-level
notes about inlining/renaming/reanalysis decisions.
*/
func NewManager(prog *ast.Program) *Manager {
	return &Manager{Program: prog, Analysis: Analyse(prog), Logger: util.NewNullLogger()}
}

/*
SetLogger attaches logger to the manager; subsequent mutations log
their decisions through it at debug level.
*/
func (m *Manager) SetLogger(logger util.Logger) {
	m.Logger = logger
}

/*
Reanalyse re-runs occurrence analysis over the managed program. Any
MacroOccurrence or VarOccurrence obtained from a previous Analysis is
stale afterwards.
*/
func (m *Manager) Reanalyse() {
	m.Analysis = Analyse(m.Program)
	m.Logger.LogDebug(fmt.Sprintf("reanalysed %q: %d variables, %d macro calls",
		programLabel(m.Program), len(m.Analysis.Vars), len(m.Analysis.Macros)))
}

/*
RenameVariable renames every occurrence of old to newName across the
whole managed program (spec §4.10(b)). It does not by itself require a
Reanalyse: occurrences are pointers into the live tree, so the rename
is visible immediately; only the Vars index key changes, which Rename
already keeps consistent.
*/
func (m *Manager) RenameVariable(old, newName string) {
	m.Analysis.Rename(old, newName)
	m.Logger.LogDebug(fmt.Sprintf("renamed %q to %q in %q", old, newName, programLabel(m.Program)))
}

func programLabel(p *ast.Program) string {
	if p == nil || !p.HasName {
		return "<unnamed>"
	}
	return p.Name
}

// Deep copy
// =========
//
// cloneProgram/-Block/-Command/-Expr build a structurally independent
// copy of an AST. Macro inlining (spec §4.10 step 2) always operates on
// a copy of the called macro's AST, never the registry's own cached
// copy, so that two call sites - or two inlinings of the same macro -
// never alias the same nodes.

func cloneProgram(p *ast.Program) *ast.Program {
	if p == nil {
		return nil
	}
	return &ast.Program{
		Name:     p.Name,
		HasName:  p.HasName,
		Input:    p.Input,
		HasInput: p.HasInput,
		Body:     cloneBlock(p.Body),
		Output:   p.Output,
		HasOut:   p.HasOut,
		Comp:     p.Comp,
	}
}

func cloneBlock(b *ast.Block) *ast.Block {
	if b == nil {
		return nil
	}
	stmts := make([]ast.Command, len(b.Statements))
	for i, c := range b.Statements {
		stmts[i] = cloneCommand(c)
	}
	return &ast.Block{Statements: stmts, Comp: b.Comp}
}

func cloneCommand(c ast.Command) ast.Command {
	switch n := c.(type) {
	case *ast.Assign:
		return ast.NewAssign(n.Span(), n.Complete(), n.Target, cloneExpr(n.Expr))

	case *ast.Cond:
		return ast.NewCond(n.Span(), n.Complete(), cloneExpr(n.Condition), cloneBlock(n.Then), cloneBlock(n.Else))

	case *ast.Loop:
		return ast.NewLoop(n.Span(), n.Complete(), cloneExpr(n.Condition), cloneBlock(n.Body))

	case *ast.Switch:
		cases := make([]ast.SwitchCase, len(n.Cases))
		for i, sc := range n.Cases {
			cases[i] = ast.SwitchCase{Match: cloneExpr(sc.Match), Body: cloneBlock(sc.Body)}
		}
		return ast.NewSwitch(n.Span(), n.Complete(), cloneExpr(n.Condition), cases, cloneBlock(n.Default))
	}
	return nil
}

func cloneExpr(e ast.Expr) ast.Expr {
	switch n := e.(type) {
	case nil:
		return nil

	case *ast.Ident:
		return ast.NewIdent(n.Span(), n.Complete(), n.Name)

	case *ast.Op:
		args := make([]ast.Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = cloneExpr(a)
		}
		return ast.NewOp(n.Span(), n.Complete(), n.Kind, args)

	case *ast.TreeLiteral:
		return ast.NewTreeLiteral(n.Span(), n.Complete(), n.Value)

	case *ast.Equal:
		return ast.NewEqual(n.Span(), n.Complete(), cloneExpr(n.Left), cloneExpr(n.Right))

	case *ast.List:
		elems := make([]ast.Expr, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = cloneExpr(el)
		}
		return ast.NewList(n.Span(), n.Complete(), elems)

	case *ast.TreeExpr:
		return ast.NewTreeExpr(n.Span(), n.Complete(), cloneExpr(n.Left), cloneExpr(n.Right))

	case *ast.MacroCall:
		return ast.NewMacroCall(n.Span(), n.Complete(), n.Program, cloneExpr(n.Input))
	}
	return nil
}
