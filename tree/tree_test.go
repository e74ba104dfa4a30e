/*
 * WHILE
 *
 * Copyright 2024 The WHILE Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package tree

import "testing"

func TestNumberRoundtrip(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 100} {
		enc := Number(n)
		if !IsNumber(enc) {
			t.Fatalf("Number(%v) is not recognised as a number encoding", n)
		}
		dec, ok := ToNumber(enc)
		if !ok || dec != n {
			t.Errorf("Number(%v) roundtrip failed: got %v, ok=%v", n, dec, ok)
		}
	}
}

func TestBooleans(t *testing.T) {
	if IsTruthy(False()) {
		t.Error("false must not be truthy")
	}
	if !IsTruthy(True()) {
		t.Error("true must be truthy")
	}
	if !Equal(False(), Nil) {
		t.Error("false must equal nil")
	}
	if !Equal(True(), Cons(Nil, Nil)) {
		t.Error("true must equal cons(nil, nil)")
	}
}

func TestListRoundtrip(t *testing.T) {
	elems := []*Tree{Number(1), Number(2), Number(3)}
	l := List(elems)
	out := ToList(l)

	if len(out) != len(elems) {
		t.Fatalf("expected %v elements, got %v", len(elems), len(out))
	}
	for i := range elems {
		if !Equal(elems[i], out[i]) {
			t.Errorf("element %v: expected %v, got %v", i, String(elems[i]), String(out[i]))
		}
	}
}

func TestEqualDeep(t *testing.T) {
	a := Number(10000)
	b := Number(10000)
	if !Equal(a, b) {
		t.Error("equal deep trees should compare equal")
	}

	c := Number(10001)
	if Equal(a, c) {
		t.Error("different deep trees should not compare equal")
	}
}

func TestEqualNilHandling(t *testing.T) {
	if !Equal(nil, nil) {
		t.Error("nil should equal nil")
	}
	if Equal(nil, Cons(nil, nil)) {
		t.Error("nil should not equal a cons node")
	}
}
