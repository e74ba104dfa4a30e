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
	"devt.de/krotik/while/parser"
)

// Reference equality program (C13)
// =================================
//
// Structural equality, written as a pure WHILE program rather than
// hand-built as Go AST literals - the most direct way to hand-verify
// it is to read it as WHILE source. It takes cons(a, b) and returns
// true iff a and b are structurally equal.
//
// Two explicit stacks carry the not-yet-compared subtrees of a and b
// respectively, always the same length: popping the next pair off both
// compares one level; a cons node on both sides pushes its two children
// onto each stack in turn, a mismatch (one side nil, the other not)
// empties stackA to stop the loop early with ok already set to false.
const equalitySource = `
structEq read AB {
	A := hd AB;
	B := tl AB;
	stackA := cons A nil;
	stackB := cons B nil;
	ok := cons nil nil;
	while stackA {
		x := hd stackA;
		y := hd stackB;
		restA := tl stackA;
		restB := tl stackB;
		if x {
			if y {
				restA := cons hd x cons tl x restA;
				restB := cons hd y cons tl y restB
			} else {
				ok := nil;
				restA := nil
			}
		} else {
			if y {
				ok := nil;
				restA := nil
			}
		};
		stackA := restA;
		stackB := restB
	}
} write ok
`

var equalityProgram *ast.Program

func init() {
	prog, diags := parser.Parse(equalitySource, true)
	if len(diags) != 0 || !prog.Complete() {
		panic(fmt.Sprintf("internal error: reference equality program failed to parse: %v", diags))
	}
	equalityProgram = prog
}

/*
EqualityProgram returns a fresh, independent copy of the canonical
equality program (C13), ready to be inlined - every caller gets its own
copy so that renaming one inlining's variables never touches another's.
*/
func EqualityProgram() *ast.Program {
	return cloneProgram(equalityProgram)
}
