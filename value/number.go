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

import (
	"math"
	"strconv"
	"strings"
)

/*
FormatNumber renders a number the way string(n) does: integer-valued
floats print without a fractional part, magnitudes within about 1e21
print as plain decimal, and anything beyond prints in e+-N exponential
form. A single number type backed by a float64 is the conformance
baseline (spec Design Notes); this is the one place that baseline
becomes visible text.
*/
func FormatNumber(n float64) string {
	if math.IsInf(n, 0) {
		if n > 0 {
			return "Infinity"
		}
		return "-Infinity"
	}

	if n == math.Trunc(n) && math.Abs(n) < 1e21 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}

	if math.Abs(n) < 1e21 && math.Abs(n) >= 1e-6 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}

	s := strconv.FormatFloat(n, 'e', -1, 64)

	// Go renders "1e+21" style exponents with a zero-padded two digit
	// minimum (e.g. "1e+21"); normalize "e+05" style down to "e+5" to
	// match the unpadded form conformance fixtures expect.
	if idx := strings.IndexAny(s, "eE"); idx >= 0 {
		mantissa, exp := s[:idx], s[idx+1:]
		sign := "+"
		if len(exp) > 0 && (exp[0] == '+' || exp[0] == '-') {
			if exp[0] == '-' {
				sign = "-"
			}
			exp = exp[1:]
		}
		exp = strings.TrimLeft(exp, "0")
		if exp == "" {
			exp = "0"
		}
		s = mantissa + "e" + sign + exp
	}

	return s
}
