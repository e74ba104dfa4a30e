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
Package namespace implements the variable namespace manager (C8) and
the deterministic fresh-name generator (C9) that the program manager
uses to rename variables during macro inlining without textual
heuristics.
*/
package namespace

/*
Generator deterministically enumerates names over {A..Z}: A, B, ...,
Z, AA, AB, ..., ZZ, AAA, ... - bijective base-26, with every digit
shifted up by one so there is no "leading zero" (spec §4.9).
*/
type Generator struct {
	minLength int
	digits    []int // digits[0] is the leftmost letter, 0 = 'A'
}

/*
NewGenerator creates a name generator whose first emitted name has at
least minLength letters (minimum 1).
*/
func NewGenerator(minLength int) *Generator {
	if minLength < 1 {
		minLength = 1
	}
	digits := make([]int, minLength)
	return &Generator{minLength: minLength, digits: digits}
}

/*
Next returns the current name. If advance is true, it then steps the
generator to the following name in the enumeration.
*/
func (g *Generator) Next(advance bool) string {
	name := g.render()
	if advance {
		g.increment()
	}
	return name
}

func (g *Generator) render() string {
	buf := make([]byte, len(g.digits))
	for i, d := range g.digits {
		buf[i] = byte('A' + d)
	}
	return string(buf)
}

/*
increment steps the digit sequence, carrying from the rightmost digit
leftward ("ZZ" -> "AAA" style overflow extends the string with a new
leading 'A', per spec §4.9).
*/
func (g *Generator) increment() {
	for i := len(g.digits) - 1; i >= 0; i-- {
		if g.digits[i] < 25 {
			g.digits[i]++
			return
		}
		g.digits[i] = 0
		if i == 0 {
			g.digits = append([]int{0}, g.digits...)
			return
		}
	}
}
