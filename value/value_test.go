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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualityIsTypedAndCrossTypeIsFalse(t *testing.T) {
	assert.True(t, Number(1).Equal(Number(1)))
	assert.False(t, Number(1).Equal(String("1")))
	assert.False(t, Bool(true).Equal(Number(1)))
	assert.True(t, Null.Equal(Null))
}

func TestEqualityArrayOrderSensitive(t *testing.T) {
	a := Array([]Value{Number(1), Number(2)})
	b := Array([]Value{Number(2), Number(1)})
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(Array([]Value{Number(1), Number(2)})))
}

func TestEqualityObjectKeyOrderInsensitive(t *testing.T) {
	o1 := NewObject()
	o1.Set("a", Number(1))
	o1.Set("b", Number(2))

	o2 := NewObject()
	o2.Set("b", Number(2))
	o2.Set("a", Number(1))

	assert.True(t, ObjectValue(o1).Equal(ObjectValue(o2)))
}

func TestOrderingWithinSameKindOnly(t *testing.T) {
	less, err := Number(1).Less(Number(2))
	require.NoError(t, err)
	assert.True(t, less)

	_, err = Number(1).Compare(String("a"))
	assert.Error(t, err)

	_, err = Array(nil).Compare(Array(nil))
	assert.Error(t, err)
}

func TestTruthiness(t *testing.T) {
	assert.False(t, Null.Truthy())
	assert.False(t, Bool(false).Truthy())
	assert.False(t, Number(0).Truthy())
	assert.True(t, Number(-1).Truthy())
	assert.False(t, String("").Truthy())
	assert.True(t, String("x").Truthy())
	assert.False(t, Array(nil).Truthy())
	assert.True(t, Array([]Value{Null}).Truthy())
}

func TestCoerceString(t *testing.T) {
	s, err := Number(3).CoerceString()
	require.NoError(t, err)
	assert.Equal(t, "3", s)

	s, err = Bool(true).CoerceString()
	require.NoError(t, err)
	assert.Equal(t, "true", s)

	_, err = RegexValue(&Regex{}).CoerceString()
	assert.ErrorIs(t, err, ErrRegexNotStringable)
}

func TestCoerceFloat(t *testing.T) {
	f, err := String(" 3.5 ").CoerceFloat()
	require.NoError(t, err)
	assert.Equal(t, 3.5, f)

	_, err = String("not a number").CoerceFloat()
	assert.Error(t, err)
}

func TestToJSONRejectsFunctionAndRegex(t *testing.T) {
	_, err := Function("double").ToJSON()
	assert.ErrorIs(t, err, ErrNotJSONable)

	_, err = RegexValue(&Regex{}).ToJSON()
	assert.ErrorIs(t, err, ErrNotJSONable)
}

func TestFromJSONRoundTripsThroughToJSON(t *testing.T) {
	in := map[string]interface{}{
		"a": float64(1),
		"b": []interface{}{"x", nil, true},
	}
	v := FromJSON(in)
	out, err := v.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestObjectPreservesInsertionOrderAndOverwritePosition(t *testing.T) {
	o := NewObject()
	o.Set("b", Number(1))
	o.Set("a", Number(2))
	o.Set("b", Number(3))
	assert.Equal(t, []string{"b", "a"}, o.Keys())

	v, ok := o.Get("b")
	require.True(t, ok)
	assert.Equal(t, Number(3), v)
}
