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
Object is an ordered string-keyed mapping. Constructed objects preserve
insertion order on iteration (Keys, Range); transforms that must
canonicalize order (none in the stock builtins, but available to
extensions) may re-sort explicitly.
*/
type Object struct {
	keys []string
	vals map[string]Value
}

/*
NewObject creates an empty object.
*/
func NewObject() *Object {
	return &Object{vals: make(map[string]Value)}
}

/*
NewObjectCap creates an empty object with a capacity hint.
*/
func NewObjectCap(n int) *Object {
	return &Object{keys: make([]string, 0, n), vals: make(map[string]Value, n)}
}

/*
Set inserts or overwrites a key. Overwriting an existing key keeps its
original position in iteration order, matching how a literal object
constructor with a repeated key behaves.
*/
func (o *Object) Set(key string, val Value) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = val
}

/*
Get looks up a key. The second return value reports whether the key is
present.
*/
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.vals[key]
	return v, ok
}

/*
Delete removes a key, if present.
*/
func (o *Object) Delete(key string) {
	if _, ok := o.vals[key]; !ok {
		return
	}
	delete(o.vals, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

/*
Keys returns the keys in insertion order. The returned slice must not be
mutated by callers.
*/
func (o *Object) Keys() []string { return o.keys }

/*
Len returns the number of keys.
*/
func (o *Object) Len() int { return len(o.keys) }

/*
Clone makes a shallow copy of the object (new key/value storage, same
Value payloads - Values are themselves immutable).
*/
func (o *Object) Clone() *Object {
	n := NewObjectCap(len(o.keys))
	for _, k := range o.keys {
		n.Set(k, o.vals[k])
	}
	return n
}
