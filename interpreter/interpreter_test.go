/*
 * WHILE
 *
 * Copyright 2024 The WHILE Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package interpreter

import (
	"strings"
	"testing"

	"devt.de/krotik/while/config"
	"devt.de/krotik/while/parser"
	"devt.de/krotik/while/tree"
	"devt.de/krotik/while/util"
)

func resetConfig() {
	data := make(map[string]interface{})
	for k, v := range config.DefaultConfig {
		data[k] = v
	}
	config.Config = data
}

func TestIdentScenario(t *testing.T) {
	// S1: ident read X { } write X
	prog, diags := parser.Parse(`ident read X { } write X`, true)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	in := tree.Cons(tree.Nil, tree.Nil)
	out, err := Run(prog, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tree.Equal(out, in) {
		t.Errorf("expected output == input, got %s", tree.String(out))
	}
}

func TestEmptyScenario(t *testing.T) {
	// S2: empty read X { } write Y
	prog, diags := parser.Parse(`empty read X { } write Y`, true)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	out, err := Run(prog, tree.Number(42))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tree.IsNil(out) {
		t.Errorf("expected nil output, got %s", tree.String(out))
	}
}

func TestReverseScenario(t *testing.T) {
	// S3: reverse a list
	src := `reverse read X { while X { Y := cons (hd X) Y; X := tl X } } write Y`
	prog, diags := parser.Parse(src, true)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	in := tree.List([]*tree.Tree{tree.Number(1), tree.Number(2), tree.Number(3)})
	want := tree.List([]*tree.Tree{tree.Number(3), tree.Number(2), tree.Number(1)})

	out, err := Run(prog, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tree.Equal(out, want) {
		t.Errorf("expected reversed list %s, got %s", tree.String(want), tree.String(out))
	}
}

func TestConcatScenario(t *testing.T) {
	// S4: concatenate two numbers' successor-structure (3 + 4 = 7)
	src := `concat read XY {
		X := hd XY;
		Y := tl XY;
		while X { revX := cons (hd X) revX; X := tl X };
		while revX { Y := cons (hd revX) Y; revX := tl revX }
	} write Y`

	prog, diags := parser.Parse(src, true)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	in := tree.Cons(tree.Number(3), tree.Number(4))
	want := tree.Number(7)

	out, err := Run(prog, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tree.Equal(out, want) {
		t.Errorf("expected %s, got %s", tree.String(want), tree.String(out))
	}
}

func TestDeeplyNestedConsScenario(t *testing.T) {
	// S5: a fixed deeply-nested cons expression, independent of input.
	src := `p read X { X := cons cons nil cons nil nil cons nil nil } write X`
	prog, diags := parser.Parse(src, true)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	want := tree.Cons(tree.Cons(tree.Nil, tree.Cons(tree.Nil, tree.Nil)), tree.Cons(tree.Nil, tree.Nil))

	out, err := Run(prog, tree.Nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tree.Equal(out, want) {
		t.Errorf("expected %s, got %s", tree.String(want), tree.String(out))
	}
}

func TestNestedCondScenario(t *testing.T) {
	// S6: nested if/else on tl/tl of the input.
	src := `test read X {
		if tl tl X { Y := nil } else { if tl X { Y := cons nil nil } else { Y := cons nil cons nil nil } }
	} write Y`

	prog, diags := parser.Parse(src, true)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	out, err := Run(prog, tree.Number(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := tree.Number(2)
	if !tree.Equal(out, want) {
		t.Errorf("expected %s, got %s", tree.String(want), tree.String(out))
	}
}

func TestHdTlOfNilYieldsNil(t *testing.T) {
	src := `p read X { Y := hd nil; Z := tl nil } write Y`
	prog, diags := parser.Parse(src, true)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	out, err := Run(prog, tree.Nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tree.IsNil(out) {
		t.Errorf("expected nil, got %s", tree.String(out))
	}
}

func TestUnassignedVariableReadsAsNil(t *testing.T) {
	src := `p read X { Y := X } write Z`
	prog, diags := parser.Parse(src, true)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	out, err := Run(prog, tree.Number(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tree.IsNil(out) {
		t.Errorf("expected nil for unbound output variable, got %s", tree.String(out))
	}
}

func TestRunRejectsIncompleteProgram(t *testing.T) {
	src := `read X { Y := X } write Y` // missing program name
	prog, _ := parser.Parse(src, true)

	if _, err := Run(prog, tree.Nil); err == nil {
		t.Fatalf("expected Run to reject an incomplete program")
	}
}

func TestRunRejectsNonPureProgram(t *testing.T) {
	src := `p read X { Y := true } write Y`
	prog, diags := parser.Parse(src, false)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	if _, err := Run(prog, tree.Nil); err == nil {
		t.Fatalf("expected Run to reject a non-pure program")
	}
}

func TestDeterministicRepeatRuns(t *testing.T) {
	src := `reverse read X { while X { Y := cons (hd X) Y; X := tl X } } write Y`
	prog, _ := parser.Parse(src, true)

	in := tree.List([]*tree.Tree{tree.Number(1), tree.Number(2), tree.Number(3), tree.Number(4), tree.Number(5)})

	first, err := Run(prog, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Run(prog, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tree.Equal(first, second) {
		t.Errorf("expected deterministic output across runs")
	}
}

func TestRunBoundedAbortsInfiniteLoopAtStepLimit(t *testing.T) {
	src := `p read X { while X { X := X } } write X`
	prog, diags := parser.Parse(src, true)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	_, err := RunBounded(prog, tree.Number(1), 1000)
	if err == nil {
		t.Fatalf("expected RunBounded to abort an infinite loop once the step limit is hit")
	}
	rerr, ok := err.(*util.RuntimeError)
	if !ok || rerr.Type != util.ErrStepLimit {
		t.Errorf("expected a RuntimeError with type ErrStepLimit, got %#v", err)
	}
}

func TestRunBoundedWithZeroLimitIsUnbounded(t *testing.T) {
	src := `p read X { Y := X } write Y`
	prog, _ := parser.Parse(src, true)

	in := tree.Number(500)
	out, err := RunBounded(prog, in, 0)
	if err != nil {
		t.Fatalf("unexpected error with an unbounded step limit: %v", err)
	}
	if !tree.Equal(out, in) {
		t.Errorf("expected the program to complete normally when maxSteps is 0")
	}
}

func TestRunReadsStepLimitFromConfig(t *testing.T) {
	resetConfig()
	defer resetConfig()

	config.Config[config.MaxSteps] = 1000

	src := `p read X { while X { X := X } } write X`
	prog, diags := parser.Parse(src, true)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	if _, err := Run(prog, tree.Number(1)); err == nil {
		t.Fatalf("expected Run to honor config.MaxSteps and abort the infinite loop")
	}
}

func TestDeepConsTowerDoesNotRecurseHostStack(t *testing.T) {
	// An expression of 50000 nested cons operations builds the numeral
	// 50000; this exercises the iterative expression evaluator at a
	// depth well beyond what a naive recursive evaluator could sustain.
	src := "p read X { Y := " + strings.Repeat("cons nil ", 50000) + "nil } write Y"
	prog, _ := parser.Parse(src, true)

	out, err := Run(prog, tree.Nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tree.Equal(out, tree.Number(50000)) {
		t.Errorf("expected the deep cons expression to evaluate to the numeral 50000")
	}
}
