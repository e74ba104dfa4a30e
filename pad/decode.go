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
	"fmt"

	"devt.de/krotik/while/ast"
	"devt.de/krotik/while/namespace"
	"devt.de/krotik/while/tree"
)

/*
decoder turns variable indices back into names. PAD carries no name
information at all, so Decode has to mint one deterministic name per
index - it reuses the same bijective generator (C9) the program
manager uses for fresh names, so "from_pad(to_pad(P)) = P modulo
variable names" (spec §8) holds with a name scheme this module already
trusts elsewhere.
*/
type decoder struct {
	gen   *namespace.Generator
	names map[int]string
}

func newDecoder() *decoder {
	return &decoder{gen: namespace.NewGenerator(1), names: map[int]string{}}
}

func (d *decoder) nameOf(idx int) string {
	if n, ok := d.names[idx]; ok {
		return n
	}
	n := d.gen.Next(true)
	d.names[idx] = n
	return n
}

/*
Decode converts a PAD node back into a pure WHILE program AST. It is
the inverse of Encode; a malformed node (wrong arity, unknown tag, a
non-integer where an index is required) fails outright rather than
producing a partial AST - unlike parsing, PAD has no recovery story.
*/
func Decode(n Node) (*ast.Program, error) {
	if n.Kind != KindList || len(n.List) != 3 {
		return nil, fmt.Errorf("malformed PAD program: expected a 3-element list, got %v", n)
	}

	d := newDecoder()

	inIdx, err := expectInt(n.List[0])
	if err != nil {
		return nil, err
	}
	input := d.nameOf(inIdx)

	if n.List[1].Kind != KindList {
		return nil, fmt.Errorf("malformed PAD program: body is not a list")
	}
	body, err := d.decodeBlock(n.List[1].List)
	if err != nil {
		return nil, err
	}

	outIdx, err := expectInt(n.List[2])
	if err != nil {
		return nil, err
	}
	output := d.nameOf(outIdx)

	return &ast.Program{
		Input: input, HasInput: true,
		Body:   body,
		Output: output, HasOut: true,
		Comp: true,
	}, nil
}

func expectInt(n Node) (int, error) {
	if n.Kind != KindInt {
		return 0, fmt.Errorf("malformed PAD node: expected a variable index, got %v", n)
	}
	return n.Int, nil
}

func expectSymbol(n Node, want string) error {
	if n.Kind != KindSymbol || n.Sym != want {
		return fmt.Errorf("malformed PAD node: expected tag %q, got %v", want, n)
	}
	return nil
}

func (d *decoder) decodeBlock(nodes []Node) (*ast.Block, error) {
	stmts := make([]ast.Command, 0, len(nodes))
	for _, n := range nodes {
		c, err := d.decodeCommand(n)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, c)
	}
	return &ast.Block{Statements: stmts, Comp: true}, nil
}

func (d *decoder) decodeCommand(n Node) (ast.Command, error) {
	if n.Kind != KindList || len(n.List) == 0 || n.List[0].Kind != KindSymbol {
		return nil, fmt.Errorf("malformed PAD command: %v", n)
	}

	tag := n.List[0].Sym
	sp := ast.Span{}

	switch tag {
	case ":=":
		if len(n.List) != 3 {
			return nil, fmt.Errorf("malformed ':=' command: %v", n)
		}
		idx, err := expectInt(n.List[1])
		if err != nil {
			return nil, err
		}
		expr, err := d.decodeExpr(n.List[2])
		if err != nil {
			return nil, err
		}
		return ast.NewAssign(sp, true, d.nameOf(idx), expr), nil

	case "while":
		if len(n.List) != 3 || n.List[2].Kind != KindList {
			return nil, fmt.Errorf("malformed 'while' command: %v", n)
		}
		cond, err := d.decodeExpr(n.List[1])
		if err != nil {
			return nil, err
		}
		body, err := d.decodeBlock(n.List[2].List)
		if err != nil {
			return nil, err
		}
		return ast.NewLoop(sp, true, cond, body), nil

	case "if":
		if len(n.List) != 4 || n.List[2].Kind != KindList || n.List[3].Kind != KindList {
			return nil, fmt.Errorf("malformed 'if' command: %v", n)
		}
		cond, err := d.decodeExpr(n.List[1])
		if err != nil {
			return nil, err
		}
		then, err := d.decodeBlock(n.List[2].List)
		if err != nil {
			return nil, err
		}
		els, err := d.decodeBlock(n.List[3].List)
		if err != nil {
			return nil, err
		}
		return ast.NewCond(sp, true, cond, then, els), nil
	}

	return nil, fmt.Errorf("malformed PAD command: unknown tag %q", tag)
}

func (d *decoder) decodeExpr(n Node) (ast.Expr, error) {
	if n.Kind != KindList || len(n.List) == 0 || n.List[0].Kind != KindSymbol {
		return nil, fmt.Errorf("malformed PAD expression: %v", n)
	}

	sp := ast.Span{}
	tag := n.List[0].Sym

	switch tag {
	case "var":
		if len(n.List) != 2 {
			return nil, fmt.Errorf("malformed 'var' expression: %v", n)
		}
		idx, err := expectInt(n.List[1])
		if err != nil {
			return nil, err
		}
		return ast.NewIdent(sp, true, d.nameOf(idx)), nil

	case "quote":
		if len(n.List) != 2 {
			return nil, fmt.Errorf("malformed 'quote' expression: %v", n)
		}
		if err := expectSymbol(n.List[1], "nil"); err != nil {
			return nil, err
		}
		return ast.NewTreeLiteral(sp, true, tree.Nil), nil

	case "cons":
		if len(n.List) != 3 {
			return nil, fmt.Errorf("malformed 'cons' expression: %v", n)
		}
		left, err := d.decodeExpr(n.List[1])
		if err != nil {
			return nil, err
		}
		right, err := d.decodeExpr(n.List[2])
		if err != nil {
			return nil, err
		}
		return ast.NewOp(sp, true, ast.OpCons, []ast.Expr{left, right}), nil

	case "hd", "tl":
		if len(n.List) != 2 {
			return nil, fmt.Errorf("malformed %q expression: %v", tag, n)
		}
		a, err := d.decodeExpr(n.List[1])
		if err != nil {
			return nil, err
		}
		kind := ast.OpHd
		if tag == "tl" {
			kind = ast.OpTl
		}
		return ast.NewOp(sp, true, kind, []ast.Expr{a}), nil
	}

	return nil, fmt.Errorf("malformed PAD expression: unknown tag %q", tag)
}
