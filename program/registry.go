/*
 * WHILE
 *
 * Copyright 2024 The WHILE Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package program

import (
	"fmt"

	"devt.de/krotik/while/ast"
	"devt.de/krotik/while/parser"
)

/*
Registry is the macro dependency manager (C11): it resolves macro
names to parsed programs via a Locator, caching each one it parses,
and discovers the transitive closure of macros a program depends on.
*/
type Registry struct {
	locator  Locator
	pureOnly bool
	programs map[string]*ast.Program
}

/*
NewRegistry creates a registry that resolves unregistered names through
locator. locator may be nil, in which case only names registered ahead
of time with Register are available -
useful for tests and for the equality macro, which is never resolved
externally.
*/
func NewRegistry(locator Locator, pureOnly bool) *Registry {
	return &Registry{locator: locator, pureOnly: pureOnly, programs: map[string]*ast.Program{}}
}

/*
Register pins a pre-parsed program under name, bypassing the locator.
*/
func (r *Registry) Register(name string, prog *ast.Program) {
	r.programs[name] = prog
}

/*
Get returns the parsed program registered (or previously resolved)
under name, resolving and parsing it via the locator on first use.
*/
func (r *Registry) Get(name string) (*ast.Program, error) {
	if prog, ok := r.programs[name]; ok {
		return prog, nil
	}

	if r.locator == nil {
		return nil, fmt.Errorf("macro %q is undefined and no locator is configured to resolve it", name)
	}

	src, err := r.locator.Resolve(name)
	if err != nil {
		return nil, err
	}

	prog, diags := parser.Parse(src, r.pureOnly)
	if len(diags) != 0 || !prog.Complete() {
		return nil, fmt.Errorf("macro %q failed to parse cleanly (%d diagnostic(s))", name, len(diags))
	}

	r.programs[name] = prog
	return prog, nil
}

/*
Discover walks every macro reference reachable from a (the analysis of
some program) and resolves it, transitively, so that every macro an
InlineMacro pass might need has already been parsed and cached before
inlining begins.
*/
func (r *Registry) Discover(a *Analysis) error {
	seen := map[string]bool{}
	var queue []string
	for _, mo := range a.Macros {
		queue = append(queue, mo.Call.Program)
	}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if seen[name] {
			continue
		}
		seen[name] = true

		prog, err := r.Get(name)
		if err != nil {
			return err
		}

		sub := Analyse(prog)
		for _, mo := range sub.Macros {
			if !seen[mo.Call.Program] {
				queue = append(queue, mo.Call.Program)
			}
		}
	}

	return nil
}
