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
	"errors"

	"github.com/krotik/mistql/parser"
	"github.com/krotik/mistql/runtime"
	"github.com/krotik/mistql/value"
)

func init() {
	register("string", 1, 1, false, stringFn)
	register("float", 1, 1, false, floatFn)
}

func stringFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	vs, err := evalArgs(ev, frame, args)
	if err != nil {
		return value.Null, err
	}
	s, err := vs[0].CoerceString()
	if err != nil {
		if errors.Is(err, value.ErrRegexNotStringable) {
			return domainErr(ev, node, err.Error())
		}
		return typeErr(ev, node, err.Error())
	}
	return value.String(s), nil
}

func floatFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	vs, err := evalArgs(ev, frame, args)
	if err != nil {
		return value.Null, err
	}
	f, err := vs[0].CoerceFloat()
	if err != nil {
		return typeErr(ev, node, err.Error())
	}
	return value.Number(f), nil
}
