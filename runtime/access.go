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

	"github.com/krotik/common/errorutil"

	"github.com/krotik/mistql/parser"
	"github.com/krotik/mistql/value"
)

/*
dotAccess implements .field access: missing key or a non-object target
both yield null rather than an error, matching the language's general
soft-failure policy for navigation.
*/
func dotAccess(target value.Value, field string) value.Value {
	if target.Kind() != value.KindObject {
		return value.Null
	}
	v, ok := target.Obj().Get(field)
	if !ok {
		return value.Null
	}
	return v
}

func (ev *Evaluator) evalIndex(node *parser.ASTNode, frame *Frame) (value.Value, error) {
	target, err := ev.Eval(node.IndexTarget(), frame)
	if err != nil {
		return value.Null, err
	}

	if node.IsSlice {
		var lo, hi *int
		if node.HasLow {
			v, err := ev.Eval(node.IndexLow(), frame)
			if err != nil {
				return value.Null, err
			}
			n, ok := asInt(v)
			if !ok {
				return value.Null, nil
			}
			lo = &n
		}
		if node.HasHigh {
			v, err := ev.Eval(node.IndexHigh(), frame)
			if err != nil {
				return value.Null, err
			}
			n, ok := asInt(v)
			if !ok {
				return value.Null, nil
			}
			hi = &n
		}
		return sliceValue(target, lo, hi), nil
	}

	idxVal, err := ev.Eval(node.IndexItem(), frame)
	if err != nil {
		return value.Null, err
	}

	if target.Kind() == value.KindObject && idxVal.Kind() == value.KindString {
		return dotAccess(target, idxVal.Str()), nil
	}

	n, ok := asInt(idxVal)
	if !ok {
		return value.Null, nil
	}
	return itemIndex(target, n), nil
}

func asInt(v value.Value) (int, bool) {
	if v.Kind() != value.KindNumber {
		return 0, false
	}
	return int(v.Num()), true
}

/*
ItemIndex and SliceValue expose the bracket-syntax indexing primitives
for the explicit index() builtin, which performs the same navigation
as a[i] / a[lo:hi] but as an ordinary function call.
*/
func ItemIndex(target value.Value, i int) value.Value { return itemIndex(target, i) }

func SliceValue(target value.Value, lo, hi *int) value.Value { return sliceValue(target, lo, hi) }

func AsInt(v value.Value) (int, bool) { return asInt(v) }

/*
length returns the sequence length of an array or string target, or -1
if target is neither (a non-sequence index target is a soft null, not
an error).
*/
func length(target value.Value) int {
	switch target.Kind() {
	case value.KindArray:
		return len(target.Arr())
	case value.KindString:
		return len([]rune(target.Str()))
	}
	return -1
}

/*
itemIndex implements item_index from the reference implementation:
negative indices count from the end, an out-of-range index is a soft
null rather than an error.
*/
func itemIndex(target value.Value, i int) value.Value {
	n := length(target)
	if n < 0 {
		return value.Null
	}
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return value.Null
	}

	switch target.Kind() {
	case value.KindArray:
		return target.Arr()[i]
	case value.KindString:
		r := []rune(target.Str())
		return value.String(string(r[i]))
	}
	return value.Null
}

/*
normalizeRange mirrors the reference implementation's normalize_range
plus the low>=high / low>length checks range_index_array makes on its
result: a negative bound adds the sequence length, and a range that is
reversed, empty, or whose low bound still exceeds the length afterward
is reported as invalid rather than clamped - the caller turns that into
a soft null, matching "reversed or out-of-bounds ranges yield null".
An omitted bound takes the identity default (0 or n) and never makes an
otherwise-valid range invalid on its own.
*/
func normalizeRange(n int, lo, hi *int) (l, h int, ok bool) {
	l, h = 0, n

	if lo != nil {
		l = *lo
		if l < 0 {
			l += n
		}
		if l < 0 || l > n {
			return 0, 0, false
		}
	}

	if hi != nil {
		h = *hi
		if h < 0 {
			h += n
		}
		if h < 0 {
			return 0, 0, false
		}
		if h > n {
			h = n
		}
	}

	if l >= h {
		return 0, 0, false
	}

	return l, h, true
}

func sliceValue(target value.Value, lo, hi *int) value.Value {
	n := length(target)
	if n < 0 {
		return value.Null
	}
	l, h, ok := normalizeRange(n, lo, hi)
	if !ok {
		return value.Null
	}
	errorutil.AssertTrue(0 <= l && l < h && h <= n,
		fmt.Sprintf("normalizeRange produced an out-of-bounds range [%d:%d] for length %d", l, h, n))

	switch target.Kind() {
	case value.KindArray:
		out := make([]value.Value, h-l)
		copy(out, target.Arr()[l:h])
		return value.Array(out)
	case value.KindString:
		r := []rune(target.Str())
		return value.String(string(r[l:h]))
	}
	return value.Null
}
