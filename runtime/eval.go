/*
 * MistQL
 *
 * Copyright 2024 The MistQL-Go Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package runtime

import (
	"fmt"
	"strings"

	"github.com/krotik/mistql/parser"
	"github.com/krotik/mistql/value"
)

/*
stockMarker prefixes a Function value's name when it was produced by a
`name` stock-reference, so a later call dispatches straight to the
stock table even if an extension or frame binding shadows the plain
name.
*/
const stockMarker = "`"

/*
Evaluator walks a parsed AST against a root value. One Evaluator is
created per Query/Run call; it is not safe for concurrent use by
multiple goroutines evaluating different frames of the SAME call, but
independent Evaluators (and the *Registry they share) may run
concurrently.
*/
type Evaluator struct {
	Root   value.Value
	Source string
	Ext    *Registry
}

/*
NewEvaluator creates an Evaluator rooted at root. ext may be nil, in
which case only stock builtins are reachable.
*/
func NewEvaluator(root value.Value, source string, ext *Registry) *Evaluator {
	return &Evaluator{Root: root, Source: source, Ext: ext}
}

/*
Eval evaluates node against frame and returns the resulting value.
*/
func (ev *Evaluator) Eval(node *parser.ASTNode, frame *Frame) (value.Value, error) {
	switch node.Name {
	case parser.NodeValue:
		return node.Val, nil

	case parser.NodeRef:
		return ev.evalRef(node, frame)

	case parser.NodeArray:
		elems := make([]value.Value, len(node.Children))
		for i, c := range node.Children {
			v, err := ev.Eval(c, frame)
			if err != nil {
				return value.Null, err
			}
			elems[i] = v
		}
		return value.Array(elems), nil

	case parser.NodeObject:
		obj := value.NewObjectCap(len(node.Children))
		for i, c := range node.Children {
			v, err := ev.Eval(c, frame)
			if err != nil {
				return value.Null, err
			}
			obj.Set(node.Keys[i], v)
		}
		return value.ObjectValue(obj), nil

	case parser.NodePipe:
		return ev.evalPipe(node, frame)

	case parser.NodeDot:
		target, err := ev.Eval(node.Children[0], frame)
		if err != nil {
			return value.Null, err
		}
		return dotAccess(target, node.Field), nil

	case parser.NodeIndex:
		return ev.evalIndex(node, frame)

	case parser.NodeUnary:
		return ev.evalUnary(node, frame)

	case parser.NodeBinary:
		return ev.evalBinary(node, frame)

	case parser.NodeFn:
		return ev.evalCall(node, frame)
	}

	return value.Null, newRuntimeError(ev.Source, ErrUnknownNodeKind, string(node.Name), node)
}

func (ev *Evaluator) evalRef(node *parser.ASTNode, frame *Frame) (value.Value, error) {
	if node.Absolute {
		return ev.Root, nil
	}

	if node.StockOnly {
		if _, ok := LookupStock(node.RefName); !ok {
			return value.Null, newRuntimeError(ev.Source, ErrVariableNotFound, "`"+node.RefName+"`", node)
		}
		return value.Function(stockMarker + node.RefName), nil
	}

	if v, ok := frame.Resolve(node.RefName); ok {
		return v, nil
	}

	if node.RefName == "@" {
		return frame.Context(), nil
	}

	if _, ok := ev.Ext.Lookup(node.RefName); ok {
		return value.Function(node.RefName), nil
	}

	return value.Null, newRuntimeError(ev.Source, ErrVariableNotFound, node.RefName, node)
}

/*
evalPipe threads a value through each stage left to right, binding @ to
the previous stage's result for the next one. The first stage runs in
the frame pipe itself was evaluated in - it establishes the initial
value, it does not receive an implicit @.
*/
func (ev *Evaluator) evalPipe(node *parser.ASTNode, frame *Frame) (value.Value, error) {
	cur, err := ev.Eval(node.Children[0], frame)
	if err != nil {
		return value.Null, err
	}

	for _, stage := range node.Children[1:] {
		stageFrame := frame.Push(cur)
		cur, err = ev.evalStage(stage, stageFrame)
		if err != nil {
			return value.Null, err
		}
	}

	return cur, nil
}

/*
evalStage evaluates one pipeline stage. A bare callable reference
("@ | count") is an implicit zero-explicit-argument call against the
stage frame's @; any other expression is evaluated directly.
*/
func (ev *Evaluator) evalStage(node *parser.ASTNode, frame *Frame) (value.Value, error) {
	if node.Name == parser.NodeRef && !node.Absolute {
		calleeVal, err := ev.evalRef(node, frame)
		if err == nil && calleeVal.Kind() == value.KindFunction {
			name, forceStock := decodeFuncName(calleeVal.FuncName())
			return ev.dispatch(name, forceStock, node, frame, nil)
		}
	}
	return ev.Eval(node, frame)
}

func (ev *Evaluator) evalCall(node *parser.ASTNode, frame *Frame) (value.Value, error) {
	calleeVal, err := ev.Eval(node.FnCallee(), frame)
	if err != nil {
		return value.Null, err
	}
	if calleeVal.Kind() != value.KindFunction {
		return value.Null, newRuntimeError(ev.Source, ErrNotCallable,
			fmt.Sprintf("value of kind %s is not callable", calleeVal.Kind()), node)
	}

	name, forceStock := decodeFuncName(calleeVal.FuncName())
	return ev.dispatch(name, forceStock, node, frame, node.FnArgs())
}

func decodeFuncName(raw string) (name string, forceStock bool) {
	if strings.HasPrefix(raw, stockMarker) {
		return strings.TrimPrefix(raw, stockMarker), true
	}
	return raw, false
}

/*
dispatch applies the implicit-context rule and arity check, then
invokes the builtin. argNodes is nil-safe (an implicit zero-arg call
passes nil).
*/
func (ev *Evaluator) dispatch(name string, forceStock bool, node *parser.ASTNode, frame *Frame, argNodes []*parser.ASTNode) (value.Value, error) {
	var b *Builtin
	var ok bool

	if forceStock {
		b, ok = LookupStock(name)
	} else {
		b, ok = ev.Ext.Lookup(name)
	}
	if !ok {
		return value.Null, newRuntimeError(ev.Source, ErrVariableNotFound, name, node)
	}

	args := argNodes
	if b.MinArgs > 0 && len(args) == b.MinArgs-1 {
		implicit := &parser.ASTNode{Name: parser.NodeRef, Token: node.Token, RefName: "@"}
		args = append(append([]*parser.ASTNode{}, args...), implicit)
	}

	if !b.accepts(len(args)) {
		return value.Null, newRuntimeError(ev.Source, ErrArgumentError,
			fmt.Sprintf("%s takes %s, got %d", name, arityDesc(b), len(args)), node)
	}

	return b.Call(ev, frame, node, args)
}

func arityDesc(b *Builtin) string {
	if b.MaxArgs < 0 {
		return fmt.Sprintf("at least %d argument(s)", b.MinArgs)
	}
	if b.MinArgs == b.MaxArgs {
		return fmt.Sprintf("exactly %d argument(s)", b.MinArgs)
	}
	return fmt.Sprintf("between %d and %d arguments", b.MinArgs, b.MaxArgs)
}

/*
ApplyTransform is how every higher-order builtin (map, filter, find,
reduce, sortby, groupby, ...) evaluates its "lambda" argument against
one element: a bare callable reference is invoked with the element as
its implicit context, any other expression is evaluated directly in a
frame whose @ is the element. This is the entirety of MistQL's
combinator/lambda mechanism - there are no named parameters.
*/
func (ev *Evaluator) ApplyTransform(node *parser.ASTNode, outerFrame *Frame, element value.Value) (value.Value, error) {
	if node.Name == parser.NodeRef && !node.Absolute {
		calleeVal, err := ev.evalRef(node, outerFrame)
		if err == nil && calleeVal.Kind() == value.KindFunction {
			name, forceStock := decodeFuncName(calleeVal.FuncName())
			childFrame := outerFrame.Push(element)
			return ev.dispatch(name, forceStock, node, childFrame, nil)
		}
	}
	childFrame := outerFrame.Push(element)
	return ev.Eval(node, childFrame)
}

/*
NewRuntimeError exposes runtime error construction to other packages
(builtins) that need to raise a positioned error referring to an AST
node they were handed.
*/
func NewRuntimeError(source string, kind error, detail string, node *parser.ASTNode) error {
	return newRuntimeError(source, kind, detail, node)
}
