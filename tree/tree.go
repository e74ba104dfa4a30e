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
Package tree implements the data universe of the WHILE language: an
unlabelled binary tree. The sole atom is nil - the empty tree. Every
other value is a node with a left and a right child, themselves trees.
*/
package tree

import "bytes"

/*
Tree is a binary tree value. A nil *Tree is the atom "nil". A non-nil
*Tree is a cons node with two (possibly nil) children.

Trees are immutable once constructed: nothing in this module ever
writes to the Left/Right fields of an existing *Tree after it has been
returned from Cons.
*/
type Tree struct {
	Left  *Tree
	Right *Tree
}

/*
Nil is the atom. It is the zero value of *Tree, spelled out for
readability at call sites.
*/
var Nil *Tree

/*
Cons builds a new node with the given children.
*/
func Cons(left, right *Tree) *Tree {
	return &Tree{Left: left, Right: right}
}

/*
IsNil reports whether t is the atom.
*/
func IsNil(t *Tree) bool {
	return t == nil
}

/*
False is the canonical encoding of the boolean false: the atom.
*/
func False() *Tree {
	return Nil
}

/*
True is the canonical encoding of the boolean true: cons(nil, nil).
*/
func True() *Tree {
	return Cons(Nil, Nil)
}

/*
IsTruthy reports the truthiness of a tree under WHILE semantics: every
value other than nil is truthy.
*/
func IsTruthy(t *Tree) bool {
	return t != nil
}

/*
BoolOf converts a Go bool to its canonical tree encoding.
*/
func BoolOf(b bool) *Tree {
	if b {
		return True()
	}
	return Nil
}

/*
Number builds the right-spine encoding of a non-negative integer: n
nested right-children terminating in nil. The construction is a loop,
not recursion, since n can be arbitrarily large.
*/
func Number(n int) *Tree {
	var t *Tree
	for i := 0; i < n; i++ {
		t = Cons(Nil, t)
	}
	return t
}

/*
IsNumber reports whether t is a well-formed right-spine natural number
encoding (every left child is nil, down to the terminating nil). It
walks iteratively so it is safe for arbitrarily large encodings.
*/
func IsNumber(t *Tree) bool {
	for t != nil {
		if t.Left != nil {
			return false
		}
		t = t.Right
	}
	return true
}

/*
ToNumber decodes a right-spine encoding into an int. The second return
value is false if t is not a well-formed number encoding.
*/
func ToNumber(t *Tree) (int, bool) {
	n := 0
	for t != nil {
		if t.Left != nil {
			return 0, false
		}
		n++
		t = t.Right
	}
	return n, true
}

/*
List builds cons(e1, cons(e2, ... cons(en, nil))) from a slice of
elements. An empty slice yields nil.
*/
func List(elems []*Tree) *Tree {
	var t *Tree
	for i := len(elems) - 1; i >= 0; i-- {
		t = Cons(elems[i], t)
	}
	return t
}

/*
IsList reports whether t is a well-formed proper list (every right
spine step terminates in nil).
*/
func IsList(t *Tree) bool {
	for t != nil {
		t = t.Right
	}
	return true
}

/*
ToList decodes a proper list into its elements. Unlike IsNumber this
cannot fail structurally - every tree is trivially a "list" of conses
down its right spine - but ToList is most useful for trees that were
actually built with List.
*/
func ToList(t *Tree) []*Tree {
	var out []*Tree
	for t != nil {
		out = append(out, t.Left)
		t = t.Right
	}
	return out
}

/*
Equal reports whether two trees are structurally identical. It is
implemented as an explicit-stack depth-first walk rather than host-stack
recursion, since trees produced by numeric literals can nest arbitrarily
deeply.
*/
func Equal(a, b *Tree) bool {
	type pair struct{ a, b *Tree }

	stack := []pair{{a, b}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.a == nil || p.b == nil {
			if p.a != p.b {
				return false
			}
			continue
		}

		stack = append(stack, pair{p.a.Left, p.b.Left}, pair{p.a.Right, p.b.Right})
	}

	return true
}

/*
String renders a tree in a minimal cons-notation, intended for debugging
and test failure messages only - the user-facing tree printer is an
external collaborator (see spec §1).
*/
func String(t *Tree) string {
	var buf bytes.Buffer
	writeTree(&buf, t)
	return buf.String()
}

func writeTree(buf *bytes.Buffer, t *Tree) {
	// Iterative pre-order walk emitting "(", ".", ")" tokens; avoids
	// host-stack recursion for deeply right-spined numeric encodings.
	type op struct {
		t      *Tree
		isTree bool
		lit    string
	}

	stack := []op{{t: t, isTree: true}}

	for len(stack) > 0 {
		o := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !o.isTree {
			buf.WriteString(o.lit)
			continue
		}

		if o.t == nil {
			buf.WriteString("nil")
			continue
		}

		stack = append(stack,
			op{lit: ")", isTree: false},
			op{t: o.t.Right, isTree: true},
			op{lit: ".", isTree: false},
			op{t: o.t.Left, isTree: true},
			op{lit: "(", isTree: false},
		)
	}
}
