/*
 * WHILE
 *
 * Copyright 2024 The WHILE Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package parser

import "testing"

func TestLABufferPeeksAheadWithoutConsuming(t *testing.T) {
	toks, _ := Lex("1 2 3", true)
	buf := NewLABuffer(toks, 3)

	first, ok := buf.Peek(0)
	if !ok || first.Value != "1" {
		t.Fatalf("expected to peek %q at 0, got %q (ok=%v)", "1", first.Value, ok)
	}

	second, ok := buf.Peek(1)
	if !ok || second.Value != "2" {
		t.Fatalf("expected to peek %q at 1, got %q (ok=%v)", "2", second.Value, ok)
	}

	// Peeking must not have consumed anything.
	if v := buf.Advance(); v.Value != "1" {
		t.Fatalf("expected Advance to still return %q first, got %q", "1", v.Value)
	}
}

func TestLABufferAdvanceDrainsInOrder(t *testing.T) {
	toks, _ := Lex("1 2 3", true)
	buf := NewLABuffer(toks, 3)

	var got []string
	for {
		v := buf.Advance()
		if v.Kind == TokenEOF {
			got = append(got, "EOF")
			break
		}
		got = append(got, v.Value)
	}

	want := []string{"1", "2", "3", "EOF"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestLABufferPeekPastEndIsEOF(t *testing.T) {
	toks, _ := Lex("", true)
	buf := NewLABuffer(toks, 3)

	v, ok := buf.Peek(5)
	if ok || v.Kind != TokenEOF {
		t.Fatalf("expected an out-of-range peek to report EOF, got %v (ok=%v)", v, ok)
	}
}
