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
	register("map", 2, 2, true, mapFn)
	register("mapkeys", 2, 2, true, mapkeysFn)
	register("mapvalues", 2, 2, true, mapvaluesFn)
	register("filter", 2, 2, true, filterFn)
	register("filterkeys", 2, 2, true, filterkeysFn)
	register("filtervalues", 2, 2, true, filtervaluesFn)
	register("find", 2, 2, true, findFn)
	register("reduce", 3, 3, true, reduceFn)
}

func mapFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	target, err := ev.Eval(args[1], frame)
	if err != nil {
		return value.Null, err
	}
	arr, err := requireArray(ev, node, target, "map")
	if err != nil {
		return value.Null, err
	}

	out := make([]value.Value, len(arr))
	for i, e := range arr {
		v, err := ev.ApplyTransform(args[0], frame, e)
		if err != nil {
			return value.Null, err
		}
		out[i] = v
	}
	return value.Array(out), nil
}

func mapkeysFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	target, err := ev.Eval(args[1], frame)
	if err != nil {
		return value.Null, err
	}
	obj, err := requireObject(ev, node, target, "mapkeys")
	if err != nil {
		return value.Null, err
	}

	out := value.NewObjectCap(obj.Len())
	for _, k := range obj.Keys() {
		v, _ := obj.Get(k)
		newKeyVal, err := ev.ApplyTransform(args[0], frame, value.String(k))
		if err != nil {
			return value.Null, err
		}
		newKey, err := newKeyVal.CoerceString()
		if err != nil {
			return typeErr(ev, node, "mapkeys function must return a stringable value")
		}
		out.Set(newKey, v)
	}
	return value.ObjectValue(out), nil
}

func mapvaluesFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	target, err := ev.Eval(args[1], frame)
	if err != nil {
		return value.Null, err
	}
	obj, err := requireObject(ev, node, target, "mapvalues")
	if err != nil {
		return value.Null, err
	}

	out := value.NewObjectCap(obj.Len())
	for _, k := range obj.Keys() {
		v, _ := obj.Get(k)
		newVal, err := ev.ApplyTransform(args[0], frame, v)
		if err != nil {
			return value.Null, err
		}
		out.Set(k, newVal)
	}
	return value.ObjectValue(out), nil
}

func filterFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	target, err := ev.Eval(args[1], frame)
	if err != nil {
		return value.Null, err
	}
	arr, err := requireArray(ev, node, target, "filter")
	if err != nil {
		return value.Null, err
	}

	var out []value.Value
	for _, e := range arr {
		keep, err := ev.ApplyTransform(args[0], frame, e)
		if err != nil {
			return value.Null, err
		}
		if keep.Truthy() {
			out = append(out, e)
		}
	}
	return value.Array(out), nil
}

func filterkeysFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	target, err := ev.Eval(args[1], frame)
	if err != nil {
		return value.Null, err
	}
	obj, err := requireObject(ev, node, target, "filterkeys")
	if err != nil {
		return value.Null, err
	}

	out := value.NewObjectCap(obj.Len())
	for _, k := range obj.Keys() {
		v, _ := obj.Get(k)
		keep, err := ev.ApplyTransform(args[0], frame, value.String(k))
		if err != nil {
			return value.Null, err
		}
		if keep.Truthy() {
			out.Set(k, v)
		}
	}
	return value.ObjectValue(out), nil
}

func filtervaluesFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	target, err := ev.Eval(args[1], frame)
	if err != nil {
		return value.Null, err
	}
	obj, err := requireObject(ev, node, target, "filtervalues")
	if err != nil {
		return value.Null, err
	}

	out := value.NewObjectCap(obj.Len())
	for _, k := range obj.Keys() {
		v, _ := obj.Get(k)
		keep, err := ev.ApplyTransform(args[0], frame, v)
		if err != nil {
			return value.Null, err
		}
		if keep.Truthy() {
			out.Set(k, v)
		}
	}
	return value.ObjectValue(out), nil
}

func findFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	target, err := ev.Eval(args[1], frame)
	if err != nil {
		return value.Null, err
	}
	arr, err := requireArray(ev, node, target, "find")
	if err != nil {
		return value.Null, err
	}

	for _, e := range arr {
		keep, err := ev.ApplyTransform(args[0], frame, e)
		if err != nil {
			return value.Null, err
		}
		if keep.Truthy() {
			return e, nil
		}
	}
	return value.Null, nil
}

/*
reduceFn folds over an array with an accumulator-pair element: each
step's @ is [accumulator, current], matching the reference
implementation's reduce(func, init, array).
*/
func reduceFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	acc, err := ev.Eval(args[1], frame)
	if err != nil {
		return value.Null, err
	}
	target, err := ev.Eval(args[2], frame)
	if err != nil {
		return value.Null, err
	}
	arr, err := requireArray(ev, node, target, "reduce")
	if err != nil {
		return value.Null, err
	}

	for _, e := range arr {
		pair := value.Array([]value.Value{acc, e})
		acc, err = ev.ApplyTransform(args[0], frame, pair)
		if err != nil {
			return value.Null, err
		}
	}
	return acc, nil
}
