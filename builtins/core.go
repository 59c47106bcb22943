/*
 * MistQL
 *
 * Copyright 2024 The MistQL-Go Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package builtins

import (
	"github.com/krotik/mistql/parser"
	"github.com/krotik/mistql/runtime"
	"github.com/krotik/mistql/value"
)

func init() {
	register("count", 1, 1, false, countFn)
	register("keys", 1, 1, false, keysFn)
	register("values", 1, 1, false, valuesFn)
	register("entries", 1, 1, false, entriesFn)
	register("fromentries", 1, 1, false, fromentriesFn)
	register("reverse", 1, 1, false, reverseFn)
	register("flatten", 1, 1, false, flattenFn)
	register("sum", 1, 1, false, sumFn)
	register("stringjoin", 2, 2, false, stringjoinFn)
	register("log", 1, 1, false, logFn)
	register("apply", 2, 2, true, applyFn)
	register("if", 3, 3, false, ifFn)
	register("withindices", 1, 1, false, withindicesFn)
}

func countFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	vs, err := evalArgs(ev, frame, args)
	if err != nil {
		return value.Null, err
	}
	switch vs[0].Kind() {
	case value.KindArray:
		return value.Number(float64(len(vs[0].Arr()))), nil
	case value.KindObject:
		return value.Number(float64(vs[0].Obj().Len())), nil
	}
	return typeErr(ev, node, "count requires an array or object")
}

func keysFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	vs, err := evalArgs(ev, frame, args)
	if err != nil {
		return value.Null, err
	}
	obj, err := requireObject(ev, node, vs[0], "keys")
	if err != nil {
		return value.Null, err
	}
	out := make([]value.Value, 0, obj.Len())
	for _, k := range obj.Keys() {
		out = append(out, value.String(k))
	}
	return value.Array(out), nil
}

func valuesFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	vs, err := evalArgs(ev, frame, args)
	if err != nil {
		return value.Null, err
	}
	obj, err := requireObject(ev, node, vs[0], "values")
	if err != nil {
		return value.Null, err
	}
	out := make([]value.Value, 0, obj.Len())
	for _, k := range obj.Keys() {
		v, _ := obj.Get(k)
		out = append(out, v)
	}
	return value.Array(out), nil
}

/*
entriesFn returns [key, value] pairs in insertion order.
*/
func entriesFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	vs, err := evalArgs(ev, frame, args)
	if err != nil {
		return value.Null, err
	}
	obj, err := requireObject(ev, node, vs[0], "entries")
	if err != nil {
		return value.Null, err
	}
	out := make([]value.Value, 0, obj.Len())
	for _, k := range obj.Keys() {
		v, _ := obj.Get(k)
		out = append(out, value.Array([]value.Value{value.String(k), v}))
	}
	return value.Array(out), nil
}

/*
withindicesFn pairs each array element with its position, producing
[value, index] pairs - the mirror image of entries, supplementing the
stock set with a transform the reference CLI's debug examples lean on
for building lookup tables.
*/
func withindicesFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	vs, err := evalArgs(ev, frame, args)
	if err != nil {
		return value.Null, err
	}
	arr, err := requireArray(ev, node, vs[0], "withindices")
	if err != nil {
		return value.Null, err
	}
	out := make([]value.Value, len(arr))
	for i, e := range arr {
		out[i] = value.Array([]value.Value{e, value.Number(float64(i))})
	}
	return value.Array(out), nil
}

func fromentriesFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	vs, err := evalArgs(ev, frame, args)
	if err != nil {
		return value.Null, err
	}
	arr, err := requireArray(ev, node, vs[0], "fromentries")
	if err != nil {
		return value.Null, err
	}

	obj := value.NewObjectCap(len(arr))
	for _, entry := range arr {
		pair, err := requireArray(ev, node, entry, "each fromentries entry")
		if err != nil {
			return value.Null, err
		}

		var k string
		var v value.Value = value.Null

		if len(pair) > 0 {
			s, err := pair[0].CoerceString()
			if err != nil {
				return typeErr(ev, node, "fromentries key must be stringable")
			}
			k = s
		}
		if len(pair) > 1 {
			v = pair[1]
		}
		obj.Set(k, v)
	}
	return value.ObjectValue(obj), nil
}

func reverseFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	vs, err := evalArgs(ev, frame, args)
	if err != nil {
		return value.Null, err
	}
	arr, err := requireArray(ev, node, vs[0], "reverse")
	if err != nil {
		return value.Null, err
	}
	out := make([]value.Value, len(arr))
	for i, e := range arr {
		out[len(arr)-1-i] = e
	}
	return value.Array(out), nil
}

func flattenFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	vs, err := evalArgs(ev, frame, args)
	if err != nil {
		return value.Null, err
	}
	arr, err := requireArray(ev, node, vs[0], "flatten")
	if err != nil {
		return value.Null, err
	}
	var out []value.Value
	for _, e := range arr {
		inner, err := requireArray(ev, node, e, "each element of flatten's argument")
		if err != nil {
			return value.Null, err
		}
		out = append(out, inner...)
	}
	return value.Array(out), nil
}

func sumFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	vs, err := evalArgs(ev, frame, args)
	if err != nil {
		return value.Null, err
	}
	arr, err := requireArray(ev, node, vs[0], "sum")
	if err != nil {
		return value.Null, err
	}
	total := 0.0
	for _, e := range arr {
		if e.Kind() != value.KindNumber {
			return typeErr(ev, node, "sum requires an array of numbers")
		}
		total += e.Num()
	}
	return value.Number(total), nil
}

func stringjoinFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	vs, err := evalArgs(ev, frame, args)
	if err != nil {
		return value.Null, err
	}
	sep, err := requireString(ev, node, vs[0], "stringjoin")
	if err != nil {
		return value.Null, err
	}
	arr, err := requireArray(ev, node, vs[1], "stringjoin")
	if err != nil {
		return value.Null, err
	}

	parts := make([]string, len(arr))
	for i, e := range arr {
		s, err := requireString(ev, node, e, "every stringjoin element")
		if err != nil {
			return value.Null, err
		}
		parts[i] = s
	}

	out := ""
	for i, p := range parts {
		if i > 0 {
			out += sep
		}
		out += p
	}
	return value.String(out), nil
}

/*
logFn passes its argument through unchanged, having written it to the
package-level log writer (stderr unless SetLogWriter has replaced it).
*/
func logFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	vs, err := evalArgs(ev, frame, args)
	if err != nil {
		return value.Null, err
	}
	writeLog(vs[0])
	return vs[0], nil
}

func applyFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	target, err := ev.Eval(args[1], frame)
	if err != nil {
		return value.Null, err
	}
	return ev.ApplyTransform(args[0], frame, target)
}

func ifFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	cond, err := ev.Eval(args[0], frame)
	if err != nil {
		return value.Null, err
	}
	if cond.Truthy() {
		return ev.Eval(args[1], frame)
	}
	return ev.Eval(args[2], frame)
}
