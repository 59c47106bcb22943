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

import "fmt"

/*
Compare orders two values of the same comparable type (boolean, number,
string) and returns -1, 0 or 1. Any other pairing, including same-typed
array/object/function/regex, is not ordered and returns an error.
*/
func (v Value) Compare(other Value) (int, error) {
	if v.kind != other.kind {
		return 0, fmt.Errorf("cannot compare %s with %s", v.kind, other.kind)
	}

	switch v.kind {
	case KindBool:
		if v.b == other.b {
			return 0, nil
		}
		if !v.b && other.b {
			return -1, nil
		}
		return 1, nil
	case KindNumber:
		switch {
		case v.n < other.n:
			return -1, nil
		case v.n > other.n:
			return 1, nil
		default:
			return 0, nil
		}
	case KindString:
		switch {
		case v.s < other.s:
			return -1, nil
		case v.s > other.s:
			return 1, nil
		default:
			return 0, nil
		}
	}

	return 0, fmt.Errorf("values of type %s are not ordered", v.kind)
}

/*
Less reports whether v orders strictly before other. Panics-as-error is
avoided by returning the Compare error unchanged.
*/
func (v Value) Less(other Value) (bool, error) {
	c, err := v.Compare(other)
	return c < 0, err
}
