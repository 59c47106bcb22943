/*
 * MistQL
 *
 * Copyright 2024 The MistQL-Go Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package value implements the MistQL runtime value model: the eight-variant
sum type every expression evaluates to, plus its equality, ordering,
truthiness and coercion rules.
*/
package value

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

/*
Kind identifies which of the eight runtime value variants a Value holds.
*/
type Kind int

/*
Available value kinds
*/
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	KindFunction
	KindRegex
)

/*
String returns a human-readable name for a Kind, used in error messages.
*/
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindFunction:
		return "function"
	case KindRegex:
		return "regex"
	}
	return "unknown"
}

/*
Regex is the payload of a KindRegex value: a compiled pattern plus the
flags it was constructed with. Flags are kept alongside the compiled
program because regexp2 does not expose them back out and the value
model needs them for printing and equality.
*/
type Regex struct {
	Pattern  string
	Flags    string
	Compiled *regexp2.Regexp
}

/*
Value is the MistQL runtime value. It is immutable once constructed;
every transform in the builtins package produces a new Value rather than
mutating one in place.
*/
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	arr  []Value
	obj  *Object
	fn   string
	rx   *Regex
}

/*
Null is the single inhabitant of the null type.
*/
var Null = Value{kind: KindNull}

/*
Bool constructs a boolean value.
*/
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

/*
Number constructs a number value. Callers are responsible for never
passing NaN; the evaluator never constructs one (arithmetic that would
yield NaN fails instead - see runtime.ErrNotANumber).
*/
func Number(n float64) Value {
	return Value{kind: KindNumber, n: n}
}

/*
String constructs a string value.
*/
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

/*
Array constructs an array value from a slice of elements. The slice is
taken as owned by the returned Value; callers should not mutate it
afterwards.
*/
func Array(elems []Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindArray, arr: elems}
}

/*
ObjectValue constructs an object value from an already-built *Object.
*/
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

/*
Function constructs a function value referring to the registry entry
with the given name. Function equality is referential: two function
values are equal iff they name the same registry entry, which for a
single registry means iff the names are equal.
*/
func Function(name string) Value {
	return Value{kind: KindFunction, fn: name}
}

/*
RegexValue constructs a regex value from a compiled pattern.
*/
func RegexValue(r *Regex) Value {
	return Value{kind: KindRegex, rx: r}
}

/*
Kind returns which of the eight variants this value holds.
*/
func (v Value) Kind() Kind { return v.kind }

/*
IsNull reports whether this value is null.
*/
func (v Value) IsNull() bool { return v.kind == KindNull }

/*
Bool returns the boolean payload. Only meaningful when Kind() == KindBool.
*/
func (v Value) Bool() bool { return v.b }

/*
Num returns the number payload. Only meaningful when Kind() == KindNumber.
*/
func (v Value) Num() float64 { return v.n }

/*
Str returns the string payload. Only meaningful when Kind() == KindString.
*/
func (v Value) Str() string { return v.s }

/*
Arr returns the array payload. Only meaningful when Kind() == KindArray.
*/
func (v Value) Arr() []Value { return v.arr }

/*
Obj returns the object payload. Only meaningful when Kind() == KindObject.
*/
func (v Value) Obj() *Object { return v.obj }

/*
FuncName returns the registry name this function value refers to. Only
meaningful when Kind() == KindFunction.
*/
func (v Value) FuncName() string { return v.fn }

/*
RegexVal returns the regex payload. Only meaningful when Kind() == KindRegex.
*/
func (v Value) RegexVal() *Regex { return v.rx }

/*
GoString renders a Value for debugging (the --debug CLI flag and test
failure messages), not for JSON output.
*/
func (v Value) GoString() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%v", v.b)
	case KindNumber:
		return FormatNumber(v.n)
	case KindString:
		return fmt.Sprintf("%q", v.s)
	case KindArray:
		out := "["
		for i, e := range v.arr {
			if i > 0 {
				out += ", "
			}
			out += e.GoString()
		}
		return out + "]"
	case KindObject:
		out := "{"
		for i, k := range v.obj.Keys() {
			if i > 0 {
				out += ", "
			}
			val, _ := v.obj.Get(k)
			out += fmt.Sprintf("%q: %s", k, val.GoString())
		}
		return out + "}"
	case KindFunction:
		return fmt.Sprintf("<function %s>", v.fn)
	case KindRegex:
		return fmt.Sprintf("<regex /%s/%s>", v.rx.Pattern, v.rx.Flags)
	}
	return "<unknown>"
}
