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
	"sort"

	"github.com/krotik/mistql/parser"
	"github.com/krotik/mistql/runtime"
	"github.com/krotik/mistql/value"
)

func init() {
	register("sort", 1, 1, false, sortFn)
	register("sortby", 2, 2, true, sortbyFn)
	register("groupby", 2, 2, true, groupbyFn)
}

/*
valueSorter implements sort.Interface over a []value.Value. Less records
the first comparison error (a pair that is not mutually comparable) in
err for the caller to report, following the teacher's
sort.Stable(&SearchResultRowComparator{...}) idiom rather than
sort.Slice.
*/
type valueSorter struct {
	vals []value.Value
	err  error
}

func (s *valueSorter) Len() int      { return len(s.vals) }
func (s *valueSorter) Swap(i, j int) { s.vals[i], s.vals[j] = s.vals[j], s.vals[i] }
func (s *valueSorter) Less(i, j int) bool {
	less, err := s.vals[i].Less(s.vals[j])
	if err != nil && s.err == nil {
		s.err = err
	}
	return less
}

func sortFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	vs, err := evalArgs(ev, frame, args)
	if err != nil {
		return value.Null, err
	}
	arr, err := requireArray(ev, node, vs[0], "sort")
	if err != nil {
		return value.Null, err
	}
	if len(arr) == 0 {
		return value.Array(nil), nil
	}

	out := append([]value.Value(nil), arr...)
	s := &valueSorter{vals: out}
	sort.Stable(s)
	if s.err != nil {
		return typeErr(ev, node, "sort requires an array of mutually comparable values: "+s.err.Error())
	}
	return value.Array(out), nil
}

/*
sortbyKeySorter sorts the original elements by a parallel slice of
precomputed sort keys, keeping element and key in lock-step.
*/
type sortbyKeySorter struct {
	keys []value.Value
	vals []value.Value
	err  error
}

func (s *sortbyKeySorter) Len() int { return len(s.vals) }
func (s *sortbyKeySorter) Swap(i, j int) {
	s.keys[i], s.keys[j] = s.keys[j], s.keys[i]
	s.vals[i], s.vals[j] = s.vals[j], s.vals[i]
}
func (s *sortbyKeySorter) Less(i, j int) bool {
	less, err := s.keys[i].Less(s.keys[j])
	if err != nil && s.err == nil {
		s.err = err
	}
	return less
}

func sortbyFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	target, err := ev.Eval(args[1], frame)
	if err != nil {
		return value.Null, err
	}
	arr, err := requireArray(ev, node, target, "sortby")
	if err != nil {
		return value.Null, err
	}
	if len(arr) == 0 {
		return value.Array(nil), nil
	}

	keys := make([]value.Value, len(arr))
	for i, e := range arr {
		k, err := ev.ApplyTransform(args[0], frame, e)
		if err != nil {
			return value.Null, err
		}
		keys[i] = k
	}

	vals := append([]value.Value(nil), arr...)
	s := &sortbyKeySorter{keys: keys, vals: vals}
	sort.Stable(s)
	if s.err != nil {
		return typeErr(ev, node, "sortby keys must be mutually comparable: "+s.err.Error())
	}
	return value.Array(vals), nil
}

func groupbyFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	target, err := ev.Eval(args[1], frame)
	if err != nil {
		return value.Null, err
	}
	arr, err := requireArray(ev, node, target, "groupby")
	if err != nil {
		return value.Null, err
	}

	out := value.NewObject()
	for _, e := range arr {
		keyVal, err := ev.ApplyTransform(args[0], frame, e)
		if err != nil {
			return value.Null, err
		}
		key, err := keyVal.CoerceString()
		if err != nil {
			return typeErr(ev, node, "groupby key must be stringable")
		}

		if existing, ok := out.Get(key); ok {
			out.Set(key, value.Array(append(append([]value.Value(nil), existing.Arr()...), e)))
		} else {
			out.Set(key, value.Array([]value.Value{e}))
		}
	}
	return value.ObjectValue(out), nil
}
