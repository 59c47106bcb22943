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
Package builtins implements every stock MistQL function. Each function
registers itself into the runtime package's stock table from this
package's init(), the same registration-by-side-effect idiom the Go
standard library uses for sql/image/hash drivers - it is what lets
runtime dispatch calls without importing builtins itself.
*/
package builtins

import (
	"github.com/krotik/mistql/parser"
	"github.com/krotik/mistql/runtime"
	"github.com/krotik/mistql/value"
)

func register(name string, min, max int, higherOrder bool, fn runtime.BuiltinFunc) {
	runtime.RegisterStock(&runtime.Builtin{
		Name:        name,
		MinArgs:     min,
		MaxArgs:     max,
		HigherOrder: higherOrder,
		Call:        fn,
	})
}

/*
evalArgs evaluates every argument node eagerly against frame - the
shape nearly every non-combinator builtin wants.
*/
func evalArgs(ev *runtime.Evaluator, frame *runtime.Frame, args []*parser.ASTNode) ([]value.Value, error) {
	out := make([]value.Value, len(args))
	for i, a := range args {
		v, err := ev.Eval(a, frame)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func typeErr(ev *runtime.Evaluator, node *parser.ASTNode, detail string) (value.Value, error) {
	return value.Null, runtime.NewRuntimeError(ev.Source, runtime.ErrTypeError, detail, node)
}

func domainErr(ev *runtime.Evaluator, node *parser.ASTNode, detail string) (value.Value, error) {
	return value.Null, runtime.NewRuntimeError(ev.Source, runtime.ErrDomainError, detail, node)
}

func requireArray(ev *runtime.Evaluator, node *parser.ASTNode, v value.Value, who string) ([]value.Value, error) {
	if v.Kind() != value.KindArray {
		_, err := typeErr(ev, node, who+" requires an array")
		return nil, err
	}
	return v.Arr(), nil
}

func requireObject(ev *runtime.Evaluator, node *parser.ASTNode, v value.Value, who string) (*value.Object, error) {
	if v.Kind() != value.KindObject {
		_, err := typeErr(ev, node, who+" requires an object")
		return nil, err
	}
	return v.Obj(), nil
}

func requireString(ev *runtime.Evaluator, node *parser.ASTNode, v value.Value, who string) (string, error) {
	if v.Kind() != value.KindString {
		_, err := typeErr(ev, node, who+" requires a string")
		return "", err
	}
	return v.Str(), nil
}
