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
	"math"

	"github.com/krotik/mistql/parser"
	"github.com/krotik/mistql/value"
)

func (ev *Evaluator) evalUnary(node *parser.ASTNode, frame *Frame) (value.Value, error) {
	operand, err := ev.Eval(node.Children[0], frame)
	if err != nil {
		return value.Null, err
	}

	switch node.Op {
	case "!":
		return value.Bool(!operand.Truthy()), nil
	case "-":
		if operand.Kind() != value.KindNumber {
			return value.Null, newRuntimeError(ev.Source, ErrTypeError, "unary - requires a number", node)
		}
		return value.Number(-operand.Num()), nil
	}

	return value.Null, newRuntimeError(ev.Source, ErrUnknownNodeKind, "unary "+node.Op, node)
}

/*
evalBinary evaluates a binary operator node. && and || short-circuit
and return one of the operand values (not a coerced boolean), matching
the truthiness-first design used throughout the language.
*/
func (ev *Evaluator) evalBinary(node *parser.ASTNode, frame *Frame) (value.Value, error) {
	if node.Op == "&&" || node.Op == "||" {
		left, err := ev.Eval(node.Children[0], frame)
		if err != nil {
			return value.Null, err
		}
		if node.Op == "&&" && !left.Truthy() {
			return left, nil
		}
		if node.Op == "||" && left.Truthy() {
			return left, nil
		}
		return ev.Eval(node.Children[1], frame)
	}

	left, err := ev.Eval(node.Children[0], frame)
	if err != nil {
		return value.Null, err
	}
	right, err := ev.Eval(node.Children[1], frame)
	if err != nil {
		return value.Null, err
	}

	switch node.Op {
	case "==":
		return value.Bool(left.Equal(right)), nil
	case "!=":
		return value.Bool(!left.Equal(right)), nil
	case "<", ">", "<=", ">=":
		return compareOp(ev.Source, node, left, right)
	case "=~":
		return matchOp(ev.Source, node, left, right)
	case "+":
		return addOp(ev.Source, node, left, right)
	case "-", "*", "/":
		return arithOp(ev.Source, node, left, right)
	case "%":
		return modOp(ev.Source, node, left, right)
	}

	return value.Null, newRuntimeError(ev.Source, ErrUnknownNodeKind, "binary "+node.Op, node)
}

func compareOp(source string, node *parser.ASTNode, left, right value.Value) (value.Value, error) {
	c, err := left.Compare(right)
	if err != nil {
		return value.Null, newRuntimeError(source, ErrTypeError, err.Error(), node)
	}
	switch node.Op {
	case "<":
		return value.Bool(c < 0), nil
	case ">":
		return value.Bool(c > 0), nil
	case "<=":
		return value.Bool(c <= 0), nil
	default:
		return value.Bool(c >= 0), nil
	}
}

/*
addOp implements polymorphic +: number+number, string+string
(concatenation) and array+array (concatenation).
*/
func addOp(source string, node *parser.ASTNode, left, right value.Value) (value.Value, error) {
	if left.Kind() != right.Kind() {
		return value.Null, newRuntimeError(source, ErrTypeError,
			fmt.Sprintf("cannot add %s and %s", left.Kind(), right.Kind()), node)
	}

	switch left.Kind() {
	case value.KindNumber:
		return numberResult(source, node, left.Num()+right.Num())
	case value.KindString:
		return value.String(left.Str() + right.Str()), nil
	case value.KindArray:
		out := make([]value.Value, 0, len(left.Arr())+len(right.Arr()))
		out = append(out, left.Arr()...)
		out = append(out, right.Arr()...)
		return value.Array(out), nil
	}

	return value.Null, newRuntimeError(source, ErrTypeError,
		fmt.Sprintf("+ does not support %s", left.Kind()), node)
}

func arithOp(source string, node *parser.ASTNode, left, right value.Value) (value.Value, error) {
	if left.Kind() != value.KindNumber || right.Kind() != value.KindNumber {
		return value.Null, newRuntimeError(source, ErrTypeError,
			fmt.Sprintf("%s requires two numbers", node.Op), node)
	}

	l, r := left.Num(), right.Num()

	switch node.Op {
	case "-":
		return numberResult(source, node, l-r)
	case "*":
		return numberResult(source, node, l*r)
	case "/":
		if r == 0 {
			return value.Null, newRuntimeError(source, ErrDivisionByZero, "", node)
		}
		return numberResult(source, node, l/r)
	}

	return value.Null, newRuntimeError(source, ErrUnknownNodeKind, node.Op, node)
}

/*
numberResult rejects a NaN arithmetic result - a NaN can only arise from
an operation like Inf-Inf, never from two finite operands, so surfacing
it as a query error is more useful than returning a value that compares
unequal to itself.
*/
func numberResult(source string, node *parser.ASTNode, n float64) (value.Value, error) {
	if math.IsNaN(n) {
		return value.Null, newRuntimeError(source, ErrNotANumber,
			fmt.Sprintf("%s produced a value that is not a number", node.Op), node)
	}
	return value.Number(n), nil
}

func modOp(source string, node *parser.ASTNode, left, right value.Value) (value.Value, error) {
	if left.Kind() != value.KindNumber || right.Kind() != value.KindNumber {
		return value.Null, newRuntimeError(source, ErrTypeError, "% requires two numbers", node)
	}

	l, r := left.Num(), right.Num()
	if l != math.Trunc(l) || r != math.Trunc(r) {
		return value.Null, newRuntimeError(source, ErrDomainError, "% requires integer operands", node)
	}
	if r == 0 {
		return value.Null, newRuntimeError(source, ErrDivisionByZero, "", node)
	}

	return numberResult(source, node, math.Mod(l, r))
}

/*
matchOp implements =~: the left operand is coerced to a string and
tested against the right operand, which must be a regex.
*/
func matchOp(source string, node *parser.ASTNode, left, right value.Value) (value.Value, error) {
	if right.Kind() != value.KindRegex {
		return value.Null, newRuntimeError(source, ErrTypeError, "=~ requires a regex on the right", node)
	}

	s, err := left.CoerceString()
	if err != nil {
		return value.Null, newRuntimeError(source, ErrTypeError, err.Error(), node)
	}

	matched, err := right.RegexVal().Compiled.MatchString(s)
	if err != nil {
		return value.Null, newRuntimeError(source, ErrRegexError, err.Error(), node)
	}

	return value.Bool(matched), nil
}
