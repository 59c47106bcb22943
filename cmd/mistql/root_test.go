/*
 * MistQL
 *
 * Copyright 2024 The MistQL-Go Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func runCLI(t *testing.T, args []string, stdin string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func TestCLISumOverStdin(t *testing.T) {
	out, stderr, code := runCLI(t, []string{"sum @"}, "[1,2,3]")
	assert.Equal(t, 0, code)
	assert.Equal(t, "6\n", out)
	assert.Empty(t, stderr)
}

func TestCLICommandFlag(t *testing.T) {
	out, _, code := runCLI(t, []string{"-c", `[1,2,3]`, "count @"}, "")
	assert.Equal(t, 0, code)
	assert.Equal(t, "3\n", out)
}

func TestCLIPretty(t *testing.T) {
	out, _, code := runCLI(t, []string{"--pretty", "-c", `{"a":1}`, "@"}, "")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "\n  \"a\": 1\n")
}

func TestCLIParseErrorExitsOne(t *testing.T) {
	_, stderr, code := runCLI(t, []string{"-c", "null", "@ |"}, "")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "mistql:")
}

func TestCLIInvalidJSONExitsOne(t *testing.T) {
	_, stderr, code := runCLI(t, []string{"-c", "{not json}", "@"}, "")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "mistql:")
}

func TestCLIRequiresExactlyOneQueryArg(t *testing.T) {
	_, _, code := runCLI(t, []string{}, "")
	assert.Equal(t, 1, code)
}
