/*
 * WHILE
 *
 * Copyright 2024 The WHILE Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package pad

import (
	"devt.de/krotik/while/ast"
	"devt.de/krotik/while/tree"
)

/*
encoder assigns variable indices in order of first textual appearance,
starting from 0 at the program's input variable (spec §4.12).
*/
type encoder struct {
	indices map[string]int
}

func newEncoder() *encoder {
	return &encoder{indices: map[string]int{}}
}

func (e *encoder) indexOf(name string) int {
	if idx, ok := e.indices[name]; ok {
		return idx
	}
	idx := len(e.indices)
	e.indices[name] = idx
	return idx
}

/*
Encode converts a pure WHILE program into its canonical PAD
representation: [input_index, body_list, output_index]. prog must be
complete and pure; Encode fails with a *NonPureFeatureError at the
first node outside the pure subset, without partially succeeding
(spec §7 "toPad ... raise on non-pure inputs only at the specific node
that cannot be lowered; they do not partially succeed").
*/
func Encode(prog *ast.Program) (Node, error) {
	if prog == nil || !prog.Complete() {
		return Node{}, &NonPureFeatureError{Feature: "incomplete program"}
	}
	if !ast.IsPure(prog) {
		return Node{}, &NonPureFeatureError{Feature: "extended construct"}
	}

	e := newEncoder()
	e.indexOf(prog.Input)

	bodyNodes, err := e.encodeBlock(prog.Body)
	if err != nil {
		return Node{}, err
	}

	outIdx := e.indexOf(prog.Output)

	return ListNode(IntNode(e.indices[prog.Input]), ListNodeOf(bodyNodes), IntNode(outIdx)), nil
}

func (e *encoder) encodeBlock(b *ast.Block) ([]Node, error) {
	if b == nil {
		return nil, nil
	}
	nodes := make([]Node, 0, len(b.Statements))
	for _, c := range b.Statements {
		n, err := e.encodeCommand(c)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (e *encoder) encodeCommand(c ast.Command) (Node, error) {
	switch n := c.(type) {
	case *ast.Assign:
		idx := e.indexOf(n.Target)
		expr, err := e.encodeExpr(n.Expr)
		if err != nil {
			return Node{}, err
		}
		return ListNode(SymbolNode(":="), IntNode(idx), expr), nil

	case *ast.Loop:
		cond, err := e.encodeExpr(n.Condition)
		if err != nil {
			return Node{}, err
		}
		body, err := e.encodeBlock(n.Body)
		if err != nil {
			return Node{}, err
		}
		return ListNode(SymbolNode("while"), cond, ListNodeOf(body)), nil

	case *ast.Cond:
		cond, err := e.encodeExpr(n.Condition)
		if err != nil {
			return Node{}, err
		}
		then, err := e.encodeBlock(n.Then)
		if err != nil {
			return Node{}, err
		}
		els, err := e.encodeBlock(n.Else)
		if err != nil {
			return Node{}, err
		}
		return ListNode(SymbolNode("if"), cond, ListNodeOf(then), ListNodeOf(els)), nil

	case *ast.Switch:
		return Node{}, &NonPureFeatureError{Feature: "switch"}
	}
	return Node{}, &NonPureFeatureError{Feature: "unknown command"}
}

func (e *encoder) encodeExpr(x ast.Expr) (Node, error) {
	switch n := x.(type) {
	case *ast.Ident:
		return ListNode(SymbolNode("var"), IntNode(e.indexOf(n.Name))), nil

	case *ast.TreeLiteral:
		if !tree.IsNil(n.Value) {
			// spec §9: "non-nil literal trees raise" - lowering runs to
			// completion before encoding, so pure input never carries one.
			return Node{}, &NonPureFeatureError{Feature: "non-nil tree literal"}
		}
		return ListNode(SymbolNode("quote"), SymbolNode("nil")), nil

	case *ast.Op:
		switch n.Kind {
		case ast.OpCons:
			left, err := e.encodeExpr(n.Args[0])
			if err != nil {
				return Node{}, err
			}
			right, err := e.encodeExpr(n.Args[1])
			if err != nil {
				return Node{}, err
			}
			return ListNode(SymbolNode("cons"), left, right), nil

		case ast.OpHd:
			a, err := e.encodeExpr(n.Args[0])
			if err != nil {
				return Node{}, err
			}
			return ListNode(SymbolNode("hd"), a), nil

		case ast.OpTl:
			a, err := e.encodeExpr(n.Args[0])
			if err != nil {
				return Node{}, err
			}
			return ListNode(SymbolNode("tl"), a), nil
		}
	}
	return Node{}, &NonPureFeatureError{Feature: "extended expression"}
}
