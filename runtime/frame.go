/*
 * MistQL
 *
 * Copyright 2024 The MistQL-Go Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package runtime

import (
	"unicode"

	"github.com/krotik/mistql/value"
)

/*
Frame is one level of the lexical scope stack. A frame's resolvable
name set is {@} union the valid-identifier keys of @ when @ is an
object - there is no separate named-binding mechanism, since the only
way MistQL introduces a new scope is by rebinding @ (a pipe stage, a
combinator iterating a collection).
*/
type Frame struct {
	context value.Value
	parent  *Frame
}

/*
RootFrame creates the outermost frame, whose @ is the query root (the
same value $ refers to).
*/
func RootFrame(root value.Value) *Frame {
	return &Frame{context: root}
}

/*
Push creates a child frame with a new @ binding.
*/
func (f *Frame) Push(context value.Value) *Frame {
	return &Frame{context: context, parent: f}
}

/*
Context returns this frame's @ binding.
*/
func (f *Frame) Context() value.Value {
	return f.context
}

/*
Resolve looks up name by walking the frame chain outward: at each
frame, "@" resolves to that frame's context, and if the context is an
object, any of its valid-identifier keys resolve to the corresponding
value. The search stops at the first frame that can answer.
*/
func (f *Frame) Resolve(name string) (value.Value, bool) {
	for fr := f; fr != nil; fr = fr.parent {
		if name == "@" {
			return fr.context, true
		}
		if fr.context.Kind() == value.KindObject && isValidIdentifier(name) {
			if v, ok := fr.context.Obj().Get(name); ok {
				return v, true
			}
		}
	}
	return value.Null, false
}

func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
