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
Package pad implements the Program-as-Data codec (C12): a bijection
between a pure WHILE AST and the canonical nested-list representation
used in computability theory, where variables are numeric indices
assigned in order of first appearance.

The teacher has no equivalent of this - ECAL programs are never
round-tripped through a data representation of themselves - so this
codec is grounded directly on spec §4.12's grammar, built the way the
rest of this module represents trees: a small tagged-variant Node type
(mirroring ast.Expr/ast.Command) rather than bare interface{}, since
that is how every other tagged-variant model in this codebase
(ast.Expr, ast.Command) is built.
*/
package pad

import (
	"fmt"
)

/*
Node is one node of a PAD list: either an integer (a variable index),
a symbolic tag (e.g. "quote", "var", "cons", ":=", "while", "if") or a
nested list of further Nodes. Exactly one of the three is meaningful,
selected by Kind.
*/
type Node struct {
	Kind NodeKind
	Int  int
	Sym  string
	List []Node
}

/*
NodeKind discriminates the three shapes a PAD node can take.
*/
type NodeKind int

const (
	KindInt NodeKind = iota
	KindSymbol
	KindList
)

func IntNode(n int) Node        { return Node{Kind: KindInt, Int: n} }
func SymbolNode(s string) Node  { return Node{Kind: KindSymbol, Sym: s} }
func ListNode(ns ...Node) Node  { return Node{Kind: KindList, List: ns} }
func ListNodeOf(ns []Node) Node { return Node{Kind: KindList, List: ns} }

/*
NonPureFeatureError reports that Encode reached an AST node outside
the pure WHILE subset - spec §4.12 "Encoding fails ... on any non-pure
construct" and §7's "Unsupported feature" lowering-error wording, which
toPad reuses since it is specified to fail the same way.
*/
type NonPureFeatureError struct {
	Feature string
}

func (e *NonPureFeatureError) Error() string {
	return fmt.Sprintf("Unsupported feature '%s'. Ensure the program is in pure WHILE.", e.Feature)
}
