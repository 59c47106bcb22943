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
	"math"
	"sort"

	"github.com/krotik/mistql/parser"
	"github.com/krotik/mistql/runtime"
	"github.com/krotik/mistql/value"
)

/*
summarizeFn computes the descriptive statistics of a non-empty array of
numbers: max, min, mean, median, variance and stddev, mirroring the
reference implementation's summarize function.
*/
func summarizeFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	vs, err := evalArgs(ev, frame, args)
	if err != nil {
		return value.Null, err
	}
	arr, err := requireArray(ev, node, vs[0], "summarize")
	if err != nil {
		return value.Null, err
	}
	if len(arr) == 0 {
		return domainErr(ev, node, "summarize requires a non-empty array")
	}

	nums := make([]float64, len(arr))
	for i, e := range arr {
		if e.Kind() != value.KindNumber {
			return typeErr(ev, node, "summarize requires an array of numbers")
		}
		nums[i] = e.Num()
	}

	sorted := append([]float64(nil), nums...)
	sort.Float64s(sorted)

	mean := 0.0
	for _, n := range sorted {
		mean += n
	}
	mean /= float64(len(sorted))

	variance := 0.0
	for _, n := range sorted {
		d := n - mean
		variance += d * d
	}
	variance /= float64(len(sorted))

	median := sorted[len(sorted)/2]
	if len(sorted)%2 == 0 {
		median = (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
	}

	obj := value.NewObjectCap(6)
	obj.Set("max", value.Number(sorted[len(sorted)-1]))
	obj.Set("min", value.Number(sorted[0]))
	obj.Set("mean", value.Number(mean))
	obj.Set("median", value.Number(median))
	obj.Set("variance", value.Number(variance))
	obj.Set("stddev", value.Number(math.Sqrt(variance)))

	return value.ObjectValue(obj), nil
}

func init() {
	register("summarize", 1, 1, false, summarizeFn)
}
