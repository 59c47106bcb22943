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
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/krotik/mistql/value"
)

var (
	logMu  sync.Mutex
	logOut io.Writer = os.Stderr
)

/*
SetLogWriter redirects where the log builtin writes. Tests and
embedders that don't want query output polluting stderr can pass
io.Discard or a buffer.
*/
func SetLogWriter(w io.Writer) {
	logMu.Lock()
	defer logMu.Unlock()
	logOut = w
}

func writeLog(v value.Value) {
	logMu.Lock()
	defer logMu.Unlock()
	fmt.Fprintln(logOut, v.GoString())
}
