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

	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/while/ast"
	"devt.de/krotik/while/namespace"
)

/*
InlineMacro replaces the macro call mo with a freshly renamed copy of
its macro's body, following spec §4.10 steps 1-7:

 1. pick a namespace for the macro - its own name if free, else a fresh
    one from ns, so that inlining the same macro twice yields disjoint
    variable sets (spec §9 "Namespace management");
 2. copy the macro's AST, lowering the copy first if toPure is set;
 3. rename every variable in the copy to a fresh name under that
    namespace;
 4. insert "input := e" just before the call's enclosing command;
 5. insert the renamed body statements right after;
 6. replace the macro_call expression with the renamed output variable;
 7. reanalyse m's program so stale occurrences are not reused.

mo must have come from m.Analysis (or from an Analysis of m.Program
taken before any other mutation) - InlineMacro splices directly into
mo.Block at mo.Index.
*/
func (m *Manager) InlineMacro(mo *MacroOccurrence, reg *Registry, ns *namespace.Manager, toPure bool) error {
	errorutil.AssertTrue(mo.Index >= 0 && mo.Index <= len(mo.Block.Statements),
		"macro occurrence index out of range - stale Analysis used after a prior mutation")

	macroProg, err := reg.Get(mo.Call.Program)
	if err != nil {
		return err
	}

	nsName := mo.Call.Program
	if ns.NamespaceExists(nsName) {
		nsName = ns.GetNewNamespace()
	}
	m.Logger.LogDebug(fmt.Sprintf("inlining macro %q into %q under namespace %q",
		mo.Call.Program, programLabel(m.Program), nsName))

	copyProg := cloneProgram(macroProg)
	if toPure {
		if err := Lower(copyProg, ns); err != nil {
			return err
		}
	}

	copyMgr := NewManager(copyProg)
	oldNames := copyMgr.Analysis.Names()

	// A fresh name minted mid-batch must collide with neither a
	// not-yet-renamed name from this same batch nor a name already live
	// in the caller - either would make Analysis.Rename silently merge
	// two distinct variables into one (see DESIGN.md's Open Question
	// decision on this).
	avoid := make(map[string]bool, len(oldNames)+len(m.Analysis.Names()))
	for _, old := range oldNames {
		avoid[old] = true
	}
	for _, old := range m.Analysis.Names() {
		avoid[old] = true
	}

	for _, old := range oldNames {
		fresh := ns.GetNextVarNameAvoiding(avoid)
		ns.Add(old, nsName, fresh, false)
		copyMgr.RenameVariable(old, fresh)
		avoid[fresh] = true
	}

	freshInput := copyProg.Input
	freshOutput := copyProg.Output

	callSpan := mo.Call.Span()
	inputAssign := ast.NewAssign(callSpan, mo.Call.Complete(), freshInput, mo.Call.Input)

	body := copyProg.Body
	if body == nil {
		body = &ast.Block{Comp: true}
	}

	inserted := make([]ast.Command, 0, 1+len(body.Statements))
	inserted = append(inserted, inputAssign)
	inserted = append(inserted, body.Statements...)

	stmts := make([]ast.Command, 0, len(mo.Block.Statements)+len(inserted))
	stmts = append(stmts, mo.Block.Statements[:mo.Index]...)
	stmts = append(stmts, inserted...)
	stmts = append(stmts, mo.Block.Statements[mo.Index:]...)

	mo.Block.Statements = stmts
	mo.Block.Comp = mo.Block.Comp && body.Comp

	mo.replace(ast.NewIdent(callSpan, true, freshOutput))

	m.Reanalyse()

	return nil
}
