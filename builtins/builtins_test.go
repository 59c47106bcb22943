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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krotik/mistql/parser"
	"github.com/krotik/mistql/runtime"
	"github.com/krotik/mistql/value"
)

func run(t *testing.T, src string, root value.Value) (value.Value, error) {
	t.Helper()
	n, err := parser.Parse("t", src)
	require.NoError(t, err)
	ev := runtime.NewEvaluator(root, "t", nil)
	return ev.Eval(n, runtime.RootFrame(root))
}

func mustRun(t *testing.T, src string, root value.Value) value.Value {
	t.Helper()
	v, err := run(t, src, root)
	require.NoError(t, err)
	return v
}

func arr(vs ...value.Value) value.Value { return value.Array(vs) }

func TestCoreBuiltins(t *testing.T) {
	nums := arr(value.Number(1), value.Number(2), value.Number(3))

	assert.Equal(t, value.Number(3), mustRun(t, "count @", nums))
	assert.Equal(t, value.Number(6), mustRun(t, "sum @", nums))
	assert.Equal(t, arr(value.Number(3), value.Number(2), value.Number(1)), mustRun(t, "reverse @", nums))
	assert.Equal(t, arr(value.Number(1), value.Number(2), value.Number(3), value.Number(4)),
		mustRun(t, "flatten @", arr(arr(value.Number(1), value.Number(2)), arr(value.Number(3), value.Number(4)))))
}

func TestCountAcceptsArrayOrObject(t *testing.T) {
	assert.Equal(t, value.Number(2), mustRun(t, "count @", objv("a", value.Number(1), "b", value.Number(2))))

	_, err := run(t, "count @", value.Number(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, runtime.ErrTypeError)
}

func TestSummarizeOnEmptyArrayIsDomainError(t *testing.T) {
	_, err := run(t, "summarize @", arr())
	require.Error(t, err)
	assert.ErrorIs(t, err, runtime.ErrDomainError)
}

func TestStringOnRegexIsDomainError(t *testing.T) {
	_, err := run(t, "string (regex \"a\")", value.Null)
	require.Error(t, err)
	assert.ErrorIs(t, err, runtime.ErrDomainError)
}

func TestKeysValuesEntries(t *testing.T) {
	o := value.NewObject()
	o.Set("a", value.Number(1))
	o.Set("b", value.Number(2))
	root := value.ObjectValue(o)

	assert.Equal(t, arr(value.String("a"), value.String("b")), mustRun(t, "keys @", root))
	assert.Equal(t, arr(value.Number(1), value.Number(2)), mustRun(t, "values @", root))
	assert.Equal(t, arr(
		arr(value.String("a"), value.Number(1)),
		arr(value.String("b"), value.Number(2)),
	), mustRun(t, "entries @", root))
}

func TestFromentriesRoundTripsWithEntries(t *testing.T) {
	o := value.NewObject()
	o.Set("x", value.Number(1))
	o.Set("y", value.Number(2))
	root := value.ObjectValue(o)

	got := mustRun(t, "entries @ | fromentries @", root)
	assert.True(t, got.Equal(root))
}

func TestWithindices(t *testing.T) {
	got := mustRun(t, "withindices @", arr(value.String("a"), value.String("b")))
	assert.Equal(t, arr(
		arr(value.String("a"), value.Number(0)),
		arr(value.String("b"), value.Number(1)),
	), got)
}

func TestStringjoin(t *testing.T) {
	got := mustRun(t, `stringjoin "," ["a", "b", "c"]`, value.Null)
	assert.Equal(t, value.String("a,b,c"), got)
}

func TestIfShortCircuitsUntakenBranch(t *testing.T) {
	got := mustRun(t, "if true 1 nosuchname", value.Null)
	assert.Equal(t, value.Number(1), got)

	got = mustRun(t, "if false nosuchname 2", value.Null)
	assert.Equal(t, value.Number(2), got)
}

func TestApplyDelegatesToApplyTransform(t *testing.T) {
	got := mustRun(t, "apply @ + 1 41", value.Null)
	assert.Equal(t, value.Number(42), got)
}

func TestCoerceStringAndFloat(t *testing.T) {
	assert.Equal(t, value.String("3"), mustRun(t, "string 3", value.Null))
	assert.Equal(t, value.Number(3.5), mustRun(t, `float "3.5"`, value.Null))
}

func TestMapFilterFind(t *testing.T) {
	nums := arr(value.Number(1), value.Number(2), value.Number(3), value.Number(4))

	assert.Equal(t, arr(value.Number(2), value.Number(4), value.Number(6), value.Number(8)),
		mustRun(t, "map @ * 2 @", nums))

	assert.Equal(t, arr(value.Number(2), value.Number(4)),
		mustRun(t, "filter @ % 2 == 0 @", nums))

	assert.Equal(t, value.Number(3), mustRun(t, "find @ > 2 @", nums))
	assert.True(t, mustRun(t, "find @ > 100 @", nums).IsNull())
}

func TestMapkeysMapvaluesFilterkeysFiltervalues(t *testing.T) {
	o := value.NewObject()
	o.Set("a", value.Number(1))
	o.Set("b", value.Number(2))
	root := value.ObjectValue(o)

	upper := mustRun(t, `mapkeys @ + "!" @`, root)
	v, ok := upper.Obj().Get("a!")
	require.True(t, ok)
	assert.Equal(t, value.Number(1), v)

	doubled := mustRun(t, "mapvalues @ * 10 @", root)
	v, ok = doubled.Obj().Get("a")
	require.True(t, ok)
	assert.Equal(t, value.Number(10), v)

	onlyA := mustRun(t, `filterkeys @ == "a" @`, root)
	assert.Equal(t, 1, onlyA.Obj().Len())

	onlyBig := mustRun(t, "filtervalues @ > 1 @", root)
	assert.Equal(t, 1, onlyBig.Obj().Len())
}

func TestReduceAccumulatorPairFixture(t *testing.T) {
	nums := arr(value.Number(1), value.Number(2), value.Number(3), value.Number(4))
	got := mustRun(t, "reduce @[0] + @[1] 0 @", nums)
	assert.Equal(t, value.Number(10), got)
}

func TestSortStableAscending(t *testing.T) {
	nums := arr(value.Number(3), value.Number(1), value.Number(2))
	assert.Equal(t, arr(value.Number(1), value.Number(2), value.Number(3)), mustRun(t, "sort @", nums))
}

func TestSortRejectsMixedTypes(t *testing.T) {
	mixed := arr(value.Number(1), value.String("a"))
	_, err := run(t, "sort @", mixed)
	require.Error(t, err)
}

func TestSortbyOrdersByComputedKey(t *testing.T) {
	people := arr(
		objv("name", value.String("bob"), "age", value.Number(30)),
		objv("name", value.String("al"), "age", value.Number(20)),
	)
	got := mustRun(t, "sortby @.age @", people)
	first := got.Arr()[0]
	name, _ := first.Obj().Get("name")
	assert.Equal(t, value.String("al"), name)
}

func TestGroupbyBucketsByStringableKey(t *testing.T) {
	nums := arr(value.Number(1), value.Number(2), value.Number(3), value.Number(4))
	got := mustRun(t, "groupby @ % 2 @", nums)
	odd, ok := got.Obj().Get("1")
	require.True(t, ok)
	assert.Equal(t, arr(value.Number(1), value.Number(3)), odd)
}

func TestSummarize(t *testing.T) {
	nums := arr(value.Number(1), value.Number(2), value.Number(3), value.Number(4))
	got := mustRun(t, "summarize @", nums)
	mean, ok := got.Obj().Get("mean")
	require.True(t, ok)
	assert.Equal(t, value.Number(2.5), mean)
}

func TestRegexMatchSplitReplace(t *testing.T) {
	assert.Equal(t, value.Bool(true), mustRun(t, `match (regex "a+") "baaab"`, value.Null))
	assert.Equal(t, value.Bool(false), mustRun(t, `match (regex "z+") "baaab"`, value.Null))

	got := mustRun(t, `split (regex ",") "a,b,c"`, value.Null)
	assert.Equal(t, arr(value.String("a"), value.String("b"), value.String("c")), got)

	got = mustRun(t, `replace (regex "a" "g") "x" "banana"`, value.Null)
	assert.Equal(t, value.String("bxnxnx"), got)

	got = mustRun(t, `replace (regex "a") "x" "banana"`, value.Null)
	assert.Equal(t, value.String("bxnana"), got)
}

func TestRegexInvalidFlagIsRegexError(t *testing.T) {
	_, err := run(t, `regex "a" "q"`, value.Null)
	require.Error(t, err)
	assert.ErrorIs(t, err, runtime.ErrRegexError)
}

func TestMatchOperatorAgainstRegexLiteral(t *testing.T) {
	// the right-hand operand of =~ is parsed at the relational level, which
	// does not itself apply bare juxtaposed arguments - an unparenthesized
	// "regex \"ell\"" there would instead be consumed as a trailing
	// application argument of the whole comparison expression.
	got := mustRun(t, `"hello" =~ (regex "ell")`, value.Null)
	assert.Equal(t, value.Bool(true), got)
}

func TestExplicitIndexMatchesBracketSemantics(t *testing.T) {
	nums := arr(value.Number(10), value.Number(20), value.Number(30))
	assert.Equal(t, value.Number(30), mustRun(t, "index (-1) @", nums))
	assert.Equal(t, arr(value.Number(20), value.Number(30)), mustRun(t, "index 1 3 @", nums))

	o := value.NewObject()
	o.Set("a", value.Number(1))
	assert.Equal(t, value.Number(1), mustRun(t, `index "a" @`, value.ObjectValue(o)))
}

func objv(pairs ...interface{}) value.Value {
	o := value.NewObject()
	for i := 0; i < len(pairs); i += 2 {
		o.Set(pairs[i].(string), pairs[i+1].(value.Value))
	}
	return value.ObjectValue(o)
}
