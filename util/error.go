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
Package util contains utility definitions and functions shared across
the WHILE toolchain: error types and level-based logging.
*/
package util

import (
	"errors"
	"fmt"

	"devt.de/krotik/while/ast"
)

/*
RuntimeError is an internal-invariant error raised by the interpreter -
never by the lexer or parser, which
report positioned diagnostics instead and keep running. Spec §7: "an
unrecognised AST tag is an internal invariant violation and aborts
with a descriptive error."

Unlike the teacher's RuntimeError, there is no stack trace: WHILE has
no runtime call stack (macro calls are inlined away during lowering,
long before the interpreter ever sees a program), so there is nothing
analogous to ECAL's traceable sink/function chain to record.
*/
type RuntimeError struct {
	Source  string   // name of the program the error occurred in
	Type    error    // error category, for equality checks
	Detail  string   // human-readable detail
	Span    ast.Span // source span, when known
	HasSpan bool
}

/*
Runtime error categories.
*/
var (
	ErrUnknownConstruct = errors.New("Unknown construct")
	ErrInvalidState     = errors.New("Invalid state")
	ErrNotPure          = errors.New("Program is not pure WHILE")
	ErrIncomplete       = errors.New("Program did not parse completely")
	ErrStepLimit        = errors.New("Step limit exceeded")
)

/*
NewRuntimeError creates a new RuntimeError without a source span.
*/
func NewRuntimeError(source string, t error, detail string) error {
	return &RuntimeError{Source: source, Type: t, Detail: detail}
}

/*
NewRuntimeErrorAt creates a new RuntimeError with a source span.
*/
func NewRuntimeErrorAt(source string, t error, detail string, span ast.Span) error {
	return &RuntimeError{Source: source, Type: t, Detail: detail, Span: span, HasSpan: true}
}

/*
Error returns a human-readable string representation of this error.
*/
func (re *RuntimeError) Error() string {
	ret := fmt.Sprintf("WHILE error in %s: %v (%v)", re.Source, re.Type, re.Detail)

	if re.HasSpan {
		ret = fmt.Sprintf("%s (%s-%s)", ret, re.Span.Start, re.Span.End)
	}

	return ret
}
