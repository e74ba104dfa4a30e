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
Package lint is the C6 facade: it runs the lexer and parser over a
source text and reports whether the result is clean enough to hand to
the interpreter or the program manager.
*/
package lint

import (
	"devt.de/krotik/common/datautil"
	"devt.de/krotik/while/ast"
	"devt.de/krotik/while/config"
	"devt.de/krotik/while/parser"
)

/*
Result is the outcome of linting a WHILE source text.
*/
type Result struct {
	Program     *ast.Program
	Diagnostics []ast.Diagnostic
}

/*
OK reports whether the program can be safely interpreted or encoded:
no diagnostics were reported and the AST parsed to completion. Spec
§4.7: "The program is rejected ... if lexer or parser reported errors
or if the AST is incomplete."
*/
func (r Result) OK() bool {
	return len(r.Diagnostics) == 0 && r.Program.Complete()
}

/*
Lint runs the lexer and parser over source and merges their
diagnostics (parser.Parse already does this internally; Lint is the
stable, documented entry point named in spec §6's library surface).
*/
func Lint(source string, pureOnly bool) Result {
	prog, diags := parser.Parse(source, pureOnly)
	return Result{Program: prog, Diagnostics: diags}
}

/*
LintDefault is Lint with pureOnly taken from config.PureOnly, for
callers that let the ambient configuration
decide the dialect instead of deciding it themselves per call.
*/
func LintDefault(source string) Result {
	return Lint(source, config.Bool(config.PureOnly))
}

/*
Context returns a log-friendly snapshot of this result, merging a
summary map per diagnostic into one map keyed by position - handy for
a caller that wants to attach linting context to a single structured
log entry rather than iterating the Diagnostics slice itself.
*/
func (r Result) Context() map[string]interface{} {
	maps := make([]map[string]interface{}, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		maps[i] = map[string]interface{}{d.Start.String(): d.Message}
	}
	return datautil.MergeMaps(maps...)
}
