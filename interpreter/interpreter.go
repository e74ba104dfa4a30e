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
Package interpreter runs a pure-WHILE AST against a binary-tree input
and produces a binary-tree output (C7).

The teacher's runtime (devt.de/krotik/ecal/interpreter) evaluates its
AST with ordinary recursive Eval methods on a family of *Runtime
types (baseRuntime, operatorRuntime, ...), one recursive call per
child node. WHILE programs routinely build trees whose shape is a
cons-tower hundreds or thousands deep (a literal numeral is its own
spine of nested cons cells), so that shape would blow the host stack.
Spec §4.7/§9 requires the expression evaluator to use an explicit work
stack instead; that is the one place this package departs from the
teacher's recursive-Eval idiom. Statement execution (blocks, if,
while) keeps ordinary Go recursion/looping, since its nesting depth is
bounded by the program text, not by runtime data.
*/
package interpreter

import (
	"fmt"

	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/while/ast"
	"devt.de/krotik/while/config"
	"devt.de/krotik/while/tree"
	"devt.de/krotik/while/util"
)

/*
Store maps variable names to tree values. Reading an unbound name
yields Go's zero value for *tree.Tree, which is nil - exactly the
value spec §4.7 mandates for unbound reads.
*/
type Store map[string]*tree.Tree

/*
Interpreter runs one program at a time over its own Store; a fresh
Interpreter (or a call to Run, which resets the store) is used for
every run, per spec §5: "the interpreter's variable store is owned by
one Interpreter instance and is not shared."
*/
type Interpreter struct {
	store Store

	steps    int
	maxSteps int // 0 means unbounded
}

/*
New creates an Interpreter with an empty store and no step budget.
*/
func New() *Interpreter {
	return &Interpreter{store: Store{}}
}

/*
NewBounded creates an Interpreter that aborts with util.ErrStepLimit
once it has executed maxSteps statements or loop-evaluator iterations
(0 means unbounded, same as New). This is the cooperative step budget
config.MaxSteps names (C7): a runaway while loop over a malformed
program cannot hang the caller forever.
*/
func NewBounded(maxSteps int) *Interpreter {
	return &Interpreter{store: Store{}, maxSteps: maxSteps}
}

/*
Run resets the store, binds the input tree to the program's input
variable, executes the body, and returns the value bound to the
output variable (nil if it was never assigned). Run refuses to
execute an incomplete or non-pure program, matching spec §4.7: "The
program is rejected ... if lexer or parser reported errors or if the
AST is incomplete."

The step budget is read from config.MaxSteps, the way the teacher
reads its own tunables straight from config at the point of use (e.g.
interpreter/provider.go's "engine.NewProcessor(config.Int(config.WorkerCount))").
Callers that need a specific budget instead of the configured default
should call RunBounded directly.
*/
func Run(prog *ast.Program, input *tree.Tree) (*tree.Tree, error) {
	return RunBounded(prog, input, config.Int(config.MaxSteps))
}

/*
RunBounded is Run with an explicit step budget, bypassing config.
*/
func RunBounded(prog *ast.Program, input *tree.Tree, maxSteps int) (*tree.Tree, error) {
	if prog == nil || !prog.Complete() {
		return nil, util.NewRuntimeError("<program>", util.ErrIncomplete,
			"refusing to run an incomplete program")
	}
	if !ast.IsPure(prog) {
		return nil, util.NewRuntimeError(prog.Name, util.ErrNotPure,
			"refusing to run a program that still contains extended constructs; lower it first")
	}

	it := NewBounded(maxSteps)
	it.store[prog.Input] = input

	if err := it.runBlock(prog.Body); err != nil {
		return nil, err
	}

	return it.store[prog.Output], nil
}

/*
step counts one unit of work toward maxSteps, returning util.ErrStepLimit
once the budget is exhausted. Called once per executed statement and
once per evalOp work-stack iteration, so both statement count and
expression-evaluation work count against the same budget.
*/
func (it *Interpreter) step() error {
	if it.maxSteps <= 0 {
		return nil
	}
	it.steps++
	if it.steps > it.maxSteps {
		return util.NewRuntimeError("<program>", util.ErrStepLimit,
			fmt.Sprintf("exceeded step limit of %d", it.maxSteps))
	}
	return nil
}

func (it *Interpreter) runBlock(b *ast.Block) error {
	if b == nil {
		return nil
	}
	for _, c := range b.Statements {
		if err := it.runCommand(c); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) runCommand(c ast.Command) error {
	if err := it.step(); err != nil {
		return err
	}

	switch n := c.(type) {
	case *ast.Assign:
		v, err := it.eval(n.Expr)
		if err != nil {
			return err
		}
		it.store[n.Target] = v
		return nil

	case *ast.Cond:
		v, err := it.eval(n.Condition)
		if err != nil {
			return err
		}
		if tree.IsNil(v) {
			return it.runBlock(n.Else)
		}
		return it.runBlock(n.Then)

	case *ast.Loop:
		for {
			v, err := it.eval(n.Condition)
			if err != nil {
				return err
			}
			if tree.IsNil(v) {
				return nil
			}
			if err := it.runBlock(n.Body); err != nil {
				return err
			}
		}

	default:
		return util.NewRuntimeError("<program>", util.ErrUnknownConstruct,
			fmt.Sprintf("unknown command token %T", c))
	}
}

/*
eval dispatches a single expression node. Leaves (identifiers, literal
trees) resolve directly; op nodes (cons/hd/tl) go through the
stack-based evaluator in evalOp.
*/
func (it *Interpreter) eval(e ast.Expr) (*tree.Tree, error) {
	switch n := e.(type) {
	case nil:
		return nil, util.NewRuntimeError("<program>", util.ErrInvalidState,
			"missing expression in a complete program")

	case *ast.Ident:
		if n.Name == "nil" {
			return tree.Nil, nil
		}
		return it.store[n.Name], nil

	case *ast.TreeLiteral:
		return n.Value, nil

	case *ast.Op:
		return it.evalOp(n)

	default:
		return nil, util.NewRuntimeError("<program>", util.ErrUnknownConstruct,
			fmt.Sprintf("unknown expression token %T", e))
	}
}

// Iterative expression evaluator
// ===============================

/*
argSlot is one argument position of an in-progress operator
application: either still pending (Expr set, Value nil) or resolved
(Expr cleared, Value set).
*/
type argSlot struct {
	expr  ast.Expr
	value *tree.Tree
}

/*
opFrame is one work item on the explicit evaluation stack: an
operator together with its argument slots and an index of the next
unresolved slot.
*/
type opFrame struct {
	kind ast.OpKind
	args []argSlot
	next int
}

/*
newOpFrame builds a frame for op, copying its argument list into
fresh slots - never touching op.Args itself - so that an AST node
shared across loop iterations is never mutated by evaluation (spec
§4.7/§9).
*/
func newOpFrame(op *ast.Op) *opFrame {
	args := make([]argSlot, len(op.Args))
	for i, a := range op.Args {
		args[i] = argSlot{expr: a}
	}
	return &opFrame{kind: op.Kind, args: args}
}

func computeOp(f *opFrame) (*tree.Tree, error) {
	switch f.kind {
	case ast.OpCons:
		errorutil.AssertTrue(len(f.args) == 2,
			"cons must have been validated to take exactly two arguments before Eval")
		return tree.Cons(f.args[0].value, f.args[1].value), nil
	case ast.OpHd:
		errorutil.AssertTrue(len(f.args) == 1,
			"hd must have been validated to take exactly one argument before Eval")
		v := f.args[0].value
		if tree.IsNil(v) {
			return tree.Nil, nil
		}
		return v.Left, nil
	case ast.OpTl:
		errorutil.AssertTrue(len(f.args) == 1,
			"tl must have been validated to take exactly one argument before Eval")
		v := f.args[0].value
		if tree.IsNil(v) {
			return tree.Nil, nil
		}
		return v.Right, nil
	default:
		return nil, util.NewRuntimeError("<program>", util.ErrUnknownConstruct,
			fmt.Sprintf("unknown operator token %v", f.kind))
	}
}

/*
evalOp evaluates a cons/hd/tl expression without recursing on the Go
call stack, however deep the expression's cons-tower goes. It keeps an
explicit stack of opFrames; when a frame's slots are all resolved, its
value is computed and folded into its parent's next slot (or returned,
for the root frame). A slot whose sub-expression is itself an Op is
expanded into a new frame instead of being resolved eagerly - that is
the only way the stack grows.
*/
func (it *Interpreter) evalOp(root *ast.Op) (*tree.Tree, error) {
	stack := []*opFrame{newOpFrame(root)}

	for len(stack) > 0 {
		if err := it.step(); err != nil {
			return nil, err
		}

		top := stack[len(stack)-1]

		if top.next >= len(top.args) {
			val, err := computeOp(top)
			if err != nil {
				return nil, err
			}

			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return val, nil
			}

			parent := stack[len(stack)-1]
			parent.args[parent.next].value = val
			parent.args[parent.next].expr = nil
			parent.next++
			continue
		}

		slot := top.args[top.next]

		switch se := slot.expr.(type) {
		case nil:
			top.next++

		case *ast.Ident:
			v, err := it.eval(se)
			if err != nil {
				return nil, err
			}
			top.args[top.next].value = v
			top.args[top.next].expr = nil
			top.next++

		case *ast.TreeLiteral:
			top.args[top.next].value = se.Value
			top.args[top.next].expr = nil
			top.next++

		case *ast.Op:
			stack = append(stack, newOpFrame(se))

		default:
			return nil, util.NewRuntimeError("<program>", util.ErrUnknownConstruct,
				fmt.Sprintf("unknown expression token %T", se))
		}
	}

	// Unreachable: the loop always returns once the root frame empties.
	return tree.Nil, nil
}
