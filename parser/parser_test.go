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

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *ASTNode {
	t.Helper()
	n, err := Parse("t", src)
	require.NoError(t, err)
	return n
}

func TestParseAtIsBareRef(t *testing.T) {
	n := mustParse(t, "@")
	assert.Equal(t, NodeRef, n.Name)
	assert.Equal(t, "@", n.RefName)
	assert.False(t, n.Absolute)
}

func TestParseDollarIsAbsoluteRef(t *testing.T) {
	n := mustParse(t, "$")
	assert.Equal(t, NodeRef, n.Name)
	assert.True(t, n.Absolute)
}

func TestParseDollarDotFieldWrapsInDot(t *testing.T) {
	n := mustParse(t, "$.a")
	assert.Equal(t, NodeDot, n.Name)
	assert.Equal(t, "a", n.Field)
	assert.True(t, n.Children[0].Absolute)
}

func TestParseStockReference(t *testing.T) {
	n := mustParse(t, "`map`")
	assert.Equal(t, NodeRef, n.Name)
	assert.Equal(t, "map", n.RefName)
	assert.True(t, n.StockOnly)
}

func TestParseOperatorPrecedence(t *testing.T) {
	n := mustParse(t, "1 + 2 * 3")
	assert.Equal(t, NodeBinary, n.Name)
	assert.Equal(t, "+", n.Op)
	assert.Equal(t, NodeBinary, n.Children[1].Name)
	assert.Equal(t, "*", n.Children[1].Op)
}

func TestParseApplicationArgumentConsumesOperatorExpression(t *testing.T) {
	// grounded on the reference parser test fixture for reduce:
	// "reduce @[0] + @[1] 0 @" parses as reduce applied to 3 siblings:
	// an infix expression, a number literal, and @ - not reduce(@[0])
	// followed by a stray "+".
	n := mustParse(t, "reduce @[0] + @[1] 0 @")
	require.Equal(t, NodeFn, n.Name)
	require.Len(t, n.Children, 4)

	assert.Equal(t, NodeRef, n.FnCallee().Name)
	assert.Equal(t, "reduce", n.FnCallee().RefName)

	arg0 := n.FnArgs()[0]
	assert.Equal(t, NodeBinary, arg0.Name)
	assert.Equal(t, "+", arg0.Op)
	assert.Equal(t, NodeIndex, arg0.Children[0].Name)
	assert.Equal(t, NodeIndex, arg0.Children[1].Name)

	assert.Equal(t, NodeValue, n.FnArgs()[1].Name)
	assert.Equal(t, NodeRef, n.FnArgs()[2].Name)
}

func TestParseFunctionApplicationWithoutArgsIsUnwrapped(t *testing.T) {
	n := mustParse(t, "count")
	assert.Equal(t, NodeRef, n.Name)
}

func TestParsePipeBuildsFlatStageList(t *testing.T) {
	n := mustParse(t, "@ | filter @.a | count")
	require.Equal(t, NodePipe, n.Name)
	require.Len(t, n.Children, 3)
}

func TestParseMinusAfterCalleeIsBinarySubtraction(t *testing.T) {
	// "f -1" parses as the infix subtraction f - 1, not f applied to (-1);
	// a caller wanting the latter must write "f (-1)".
	n := mustParse(t, "count -1")
	assert.Equal(t, NodeBinary, n.Name)
	assert.Equal(t, "-", n.Op)
}

func TestParseIndexForms(t *testing.T) {
	cases := map[string]struct {
		isSlice         bool
		hasLow, hasHigh bool
	}{
		"a[1]":   {false, false, false},
		"a[1:2]": {true, true, true},
		"a[:2]":  {true, false, true},
		"a[1:]":  {true, true, false},
		"a[:]":   {true, false, false},
	}
	for src, want := range cases {
		n := mustParse(t, src)
		assert.Equalf(t, NodeIndex, n.Name, "source %q", src)
		assert.Equalf(t, want.isSlice, n.IsSlice, "source %q", src)
		assert.Equalf(t, want.hasLow, n.HasLow, "source %q", src)
		assert.Equalf(t, want.hasHigh, n.HasHigh, "source %q", src)
	}
}

func TestParseArrayAndObjectLiterals(t *testing.T) {
	arr := mustParse(t, "[1, 2, 3,]")
	assert.Equal(t, NodeArray, arr.Name)
	assert.Len(t, arr.Children, 3)

	obj := mustParse(t, `{a: 1, "b c": 2,}`)
	assert.Equal(t, NodeObject, obj.Name)
	assert.Equal(t, []string{"a", "b c"}, obj.Keys)
}

func TestParseInvalidObjectKeyIsError(t *testing.T) {
	_, err := Parse("t", "{1: 2}")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidObjectKey))
}

func TestParseUnexpectedTokenCarriesPosition(t *testing.T) {
	_, err := Parse("t", "1 +")
	require.Error(t, err)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.True(t, errors.Is(err, ErrExpectedExpression))
	assert.NotZero(t, pe.Line)
}

func TestParseTrailingInputIsError(t *testing.T) {
	_, err := Parse("t", "1 2 )")
	require.Error(t, err)
}

func TestPrettyPrintRoundTripsThroughReparse(t *testing.T) {
	srcs := []string{
		"1 + 2 * 3",
		"@ | filter @.a > 1 | count",
		`{a: 1, b: [1, 2]}`,
		"a.b[1:2]",
		"`map` double @",
	}
	for _, src := range srcs {
		n := mustParse(t, src)
		printed := PrettyPrint(n)

		n2, err := Parse("t2", printed)
		require.NoErrorf(t, err, "re-parsing pretty-printed %q -> %q", src, printed)
		assert.Equalf(t, PrettyPrint(n2), printed, "source %q", src)
	}
}
