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

import (
	"bytes"
	"fmt"

	"devt.de/krotik/common/stringutil"
	"devt.de/krotik/while/tree"
)

/*
String renders prog as an indented tree, one node per line - a debug
dump in the same shape as the teacher's ASTNode.levelString, not part
of the documented library contract; the interpreter, program manager
and PAD codec never call it.
*/
func (p *Program) String() string {
	var buf bytes.Buffer
	name := p.Name
	if !p.HasName {
		name = "<unnamed>"
	}
	fmt.Fprintf(&buf, "program %s read %s write %s\n", name, p.Input, p.Output)
	levelStringBlock(p.Body, 1, &buf)
	return buf.String()
}

func levelStringBlock(b *Block, indent int, buf *bytes.Buffer) {
	if b == nil {
		return
	}
	for _, c := range b.Statements {
		levelStringCommand(c, indent, buf)
	}
}

func levelStringCommand(c Command, indent int, buf *bytes.Buffer) {
	pad := stringutil.GenerateRollingString(" ", indent*2)

	switch n := c.(type) {
	case *Assign:
		fmt.Fprintf(buf, "%s%s := %s\n", pad, n.Target, levelStringExpr(n.Expr))

	case *Cond:
		fmt.Fprintf(buf, "%sif %s\n", pad, levelStringExpr(n.Condition))
		levelStringBlock(n.Then, indent+1, buf)
		if n.Else != nil && len(n.Else.Statements) > 0 {
			fmt.Fprintf(buf, "%selse\n", pad)
			levelStringBlock(n.Else, indent+1, buf)
		}

	case *Loop:
		fmt.Fprintf(buf, "%swhile %s\n", pad, levelStringExpr(n.Condition))
		levelStringBlock(n.Body, indent+1, buf)

	case *Switch:
		fmt.Fprintf(buf, "%sswitch %s\n", pad, levelStringExpr(n.Condition))
		for _, sc := range n.Cases {
			fmt.Fprintf(buf, "%scase %s\n", stringutil.GenerateRollingString(" ", (indent+1)*2), levelStringExpr(sc.Match))
			levelStringBlock(sc.Body, indent+2, buf)
		}
		if n.Default != nil {
			fmt.Fprintf(buf, "%sdefault\n", stringutil.GenerateRollingString(" ", (indent+1)*2))
			levelStringBlock(n.Default, indent+2, buf)
		}
	}
}

func levelStringExpr(e Expr) string {
	switch n := e.(type) {
	case nil:
		return "<missing>"
	case *Ident:
		return n.Name
	case *TreeLiteral:
		return tree.String(n.Value)
	case *Op:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = levelStringExpr(a)
		}
		switch len(args) {
		case 1:
			return fmt.Sprintf("%s %s", n.Kind, args[0])
		case 2:
			return fmt.Sprintf("%s %s %s", n.Kind, args[0], args[1])
		}
		return n.Kind.String()
	case *Equal:
		return fmt.Sprintf("%s = %s", levelStringExpr(n.Left), levelStringExpr(n.Right))
	case *List:
		args := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			args[i] = levelStringExpr(el)
		}
		return fmt.Sprintf("[%s]", joinComma(args))
	case *TreeExpr:
		return fmt.Sprintf("<%s.%s>", levelStringExpr(n.Left), levelStringExpr(n.Right))
	case *MacroCall:
		return fmt.Sprintf("<%s> %s", n.Program, levelStringExpr(n.Input))
	}
	return "?"
}

func joinComma(ss []string) string {
	var buf bytes.Buffer
	for i, s := range ss {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(s)
	}
	return buf.String()
}
