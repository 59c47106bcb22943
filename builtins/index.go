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
	register("index", 2, 3, false, indexFn)
}

/*
indexFn is the explicit function form of bracket indexing: index(i,
target) mirrors target[i], and index(lo, hi, target) mirrors
target[lo:hi]. It shares the same soft-failure, negative-index and
clamping rules as the bracket syntax by delegating to the same
primitives.
*/
func indexFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	vs, err := evalArgs(ev, frame, args)
	if err != nil {
		return value.Null, err
	}

	if len(vs) == 2 {
		target := vs[1]
		if target.Kind() == value.KindObject && vs[0].Kind() == value.KindString {
			obj := target.Obj()
			v, ok := obj.Get(vs[0].Str())
			if !ok {
				return value.Null, nil
			}
			return v, nil
		}
		n, ok := runtime.AsInt(vs[0])
		if !ok {
			return value.Null, nil
		}
		return runtime.ItemIndex(target, n), nil
	}

	target := vs[2]
	var lo, hi *int
	if n, ok := runtime.AsInt(vs[0]); ok {
		lo = &n
	} else {
		return value.Null, nil
	}
	if n, ok := runtime.AsInt(vs[1]); ok {
		hi = &n
	} else {
		return value.Null, nil
	}
	return runtime.SliceValue(target, lo, hi), nil
}
