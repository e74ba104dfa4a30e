/*
 * WHILE
 *
 * Copyright 2024 The WHILE Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package namespace

import "testing"

func TestGeneratorSequence(t *testing.T) {
	g := NewGenerator(1)

	want := []string{"A", "B", "C"}
	for _, w := range want {
		if got := g.Next(true); got != w {
			t.Fatalf("expected %q, got %q", w, got)
		}
	}
}

func TestGeneratorOverflowsPastZ(t *testing.T) {
	g := NewGenerator(1)
	for i := 0; i < 25; i++ {
		g.Next(true)
	}
	// 26th name (index 25) is "Z"; the 27th overflows to "AA".
	if got := g.Next(true); got != "Z" {
		t.Fatalf("expected Z at position 26, got %q", got)
	}
	if got := g.Next(true); got != "AA" {
		t.Fatalf("expected overflow to AA, got %q", got)
	}
}

func TestGeneratorMinLength(t *testing.T) {
	g := NewGenerator(3)
	if got := g.Next(false); got != "AAA" {
		t.Fatalf("expected minimum-length seed AAA, got %q", got)
	}
}

func TestGeneratorNextWithoutAdvance(t *testing.T) {
	g := NewGenerator(1)
	first := g.Next(false)
	second := g.Next(false)
	if first != second {
		t.Fatalf("expected Next(false) to be idempotent, got %q then %q", first, second)
	}
}

func TestManagerAddAndGet(t *testing.T) {
	m := NewManager()

	fresh := m.Add("X", "", "", false)
	if fresh == "" {
		t.Fatalf("expected a minted fresh name")
	}
	got, ok := m.Get("X", "")
	if !ok || got != fresh {
		t.Fatalf("expected Get to return %q, got %q (ok=%v)", fresh, got, ok)
	}
	if !m.Exists("X", "") {
		t.Errorf("expected Exists(X) to be true")
	}
}

func TestManagerAddIsIdempotentWithoutForce(t *testing.T) {
	m := NewManager()

	first := m.Add("X", "", "", false)
	second := m.Add("X", "", "", false)
	if first != second {
		t.Fatalf("expected repeated Add without force to return the existing mapping, got %q then %q", first, second)
	}
}

func TestManagerAddForceReplaces(t *testing.T) {
	m := NewManager()

	first := m.Add("X", "", "", false)
	second := m.Add("X", "", "Z", true)

	if second != "Z" {
		t.Fatalf("expected forced Add to install the new name, got %q", second)
	}
	if _, ok := m.backward[first]; ok {
		t.Errorf("expected forced Add to release the previous fresh name")
	}
}

func TestManagerNamespacesAreIndependent(t *testing.T) {
	m := NewManager()

	a := m.Add("X", "ns1", "", false)
	b := m.Add("X", "ns2", "", false)

	if a == b {
		t.Fatalf("expected independent namespaces to mint independent fresh names, got %q twice", a)
	}
}

func TestManagerDeleteAndDeleteNamespace(t *testing.T) {
	m := NewManager()

	m.Add("X", "ns", "", false)
	m.Add("Y", "ns", "", false)

	if !m.Delete("X", "ns") {
		t.Fatalf("expected Delete to report an existing mapping")
	}
	if m.Exists("X", "ns") {
		t.Errorf("expected X to be gone after Delete")
	}

	m.DeleteNamespace("ns")
	if m.NamespaceExists("ns") {
		t.Errorf("expected namespace to be gone after DeleteNamespace")
	}
}

func TestManagerGetNewNamespaceAvoidsCollisions(t *testing.T) {
	m := NewManager()

	m.Add("X", "A", "", false) // occupies the namespace name "A"

	ns := m.GetNewNamespace()
	if ns == "A" {
		t.Fatalf("expected GetNewNamespace to avoid the already-used namespace %q", ns)
	}
}

func TestGetNextVarNameAvoidingSkipsOccupiedNames(t *testing.T) {
	m := NewManager()

	avoid := map[string]bool{"A": true, "B": true}
	got := m.GetNextVarNameAvoiding(avoid)

	if avoid[got] {
		t.Fatalf("expected a name not in avoid, got %q", got)
	}
	if got != "C" {
		t.Fatalf("expected the generator to skip past A and B to C, got %q", got)
	}
}

func TestGetNextVarNameAvoidingAdvancesTheSharedGenerator(t *testing.T) {
	m := NewManager()

	m.GetNextVarNameAvoiding(map[string]bool{"A": true})
	next := m.GetNextVarName()

	if next == "A" || next == "B" {
		t.Fatalf("expected the shared generator to have moved past A and B, got %q", next)
	}
}

func TestManagerVariablesAndNamespacesSorted(t *testing.T) {
	m := NewManager()

	m.Add("X", "b", "Z", false)
	m.Add("Y", "a", "A", false)

	ns := m.Namespaces()
	if len(ns) != 2 || ns[0] != "a" || ns[1] != "b" {
		t.Fatalf("expected sorted namespaces [a b], got %v", ns)
	}

	vars := m.Variables()
	if len(vars) != 2 || vars[0] != "A" || vars[1] != "Z" {
		t.Fatalf("expected sorted variables [A Z], got %v", vars)
	}
}
