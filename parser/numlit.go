/*
 * MistQL
 *
 * Copyright 2024 The MistQL-Go Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package parser

import "strconv"

/*
parseFloat converts a lexed number token's spelling into a float64. The
lexer only ever produces digit-and-at-most-one-dot spellings, so the
only way this can fail is an internal inconsistency between lexer and
parser.
*/
func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
