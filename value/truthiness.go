/*
 * MistQL
 *
 * Copyright 2024 The MistQL-Go Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package value

/*
Truthy implements the truthiness rule: null is false, a boolean is
itself, a number is truthy iff nonzero, a string/array/object is truthy
iff nonempty, and function/regex are always truthy.
*/
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.b
	case KindNumber:
		return v.n != 0
	case KindString:
		return len(v.s) > 0
	case KindArray:
		return len(v.arr) > 0
	case KindObject:
		return v.obj.Len() > 0
	case KindFunction, KindRegex:
		return true
	}
	return false
}
