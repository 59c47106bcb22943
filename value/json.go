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
ErrNotJSONable is returned by ToJSON when the value is a Function or
Regex - neither is representable in JSON output (spec.md §6).
*/
var ErrNotJSONable = fmt.Errorf("value is not representable as JSON")

/*
ToJSON converts a Value into a plain Go value tree
(nil/bool/float64/string/[]interface{}/map[string]interface{}) suitable
for encoding/json. Converting a Function or Regex value fails, matching
the wire-format rule that neither is serializable.
*/
func (v Value) ToJSON() (interface{}, error) {
	switch v.kind {
	case KindNull:
		return nil, nil
	case KindBool:
		return v.b, nil
	case KindNumber:
		return v.n, nil
	case KindString:
		return v.s, nil
	case KindArray:
		out := make([]interface{}, len(v.arr))
		for i, e := range v.arr {
			j, err := e.ToJSON()
			if err != nil {
				return nil, err
			}
			out[i] = j
		}
		return out, nil
	case KindObject:
		out := make(map[string]interface{}, v.obj.Len())
		for _, k := range v.obj.Keys() {
			ev, _ := v.obj.Get(k)
			j, err := ev.ToJSON()
			if err != nil {
				return nil, err
			}
			out[k] = j
		}
		return out, nil
	}
	return nil, ErrNotJSONable
}

/*
FromJSON converts a plain Go value tree (the shape produced by
json.Unmarshal into an interface{}) into a Value. Object key order is
whatever the source map iterates in since encoding/json does not
preserve source order; FromJSON does not attempt to recover it.
*/
func FromJSON(v interface{}) Value {
	switch t := v.(type) {
	case nil:
		return Null
	case bool:
		return Bool(t)
	case float64:
		return Number(t)
	case string:
		return String(t)
	case []interface{}:
		elems := make([]Value, len(t))
		for i, e := range t {
			elems[i] = FromJSON(e)
		}
		return Array(elems)
	case map[string]interface{}:
		obj := NewObjectCap(len(t))
		for k, e := range t {
			obj.Set(k, FromJSON(e))
		}
		return ObjectValue(obj)
	}
	return Null
}
