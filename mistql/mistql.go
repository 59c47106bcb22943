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
Package mistql is the embeddable entry point: parse a query once with
Compile and Run it against many roots, or use the one-shot Query
helper. An Instance created by NewInstance starts with only the stock
builtin library; call Register to add extension functions scoped to
that Instance.

Stock builtins self-register via the blank import of package builtins
below - the same registration-by-side-effect idiom the runtime package
uses internally, extended one layer further so that importing mistql
is enough to pull in the full built-in library without mistql itself
depending on any one builtin by name.
*/
package mistql

import (
	"fmt"

	"github.com/krotik/common/stringutil"

	_ "github.com/krotik/mistql/builtins"
	"github.com/krotik/mistql/parser"
	"github.com/krotik/mistql/runtime"
	"github.com/krotik/mistql/value"
)

/*
Program is a parsed, reusable query. Compile once, Run many times
against different root documents without re-lexing or re-parsing.
*/
type Program struct {
	source string
	ast    *parser.ASTNode
	ext    *runtime.Registry
}

/*
Instance is an isolated set of registered extension functions. The
package-level functions (Query, Compile, Register) operate on a shared
default Instance; independent embedders that want their own extension
namespaces should create their own via NewInstance.
*/
type Instance struct {
	ext *runtime.Registry
}

/*
NewInstance creates an Instance with no extension functions registered
- only the stock builtin library is reachable until Register is called.
*/
func NewInstance() *Instance {
	return &Instance{ext: runtime.NewRegistry()}
}

/*
Register adds an extension function under name. Registering the same
name twice on one Instance is an error, and so is a name that collides
with a stock builtin - use the `name` stock-reference syntax at the
call site to reach a stock builtin when a data field of the same name
would otherwise shadow it. name must be a valid MistQL identifier.
*/
func (inst *Instance) Register(name string, minArgs, maxArgs int, higherOrder bool, fn runtime.BuiltinFunc) error {
	if !stringutil.IsAlphaNumeric(name) || name == "" {
		return errInvalidName
	}
	return inst.ext.Register(&runtime.Builtin{
		Name:        name,
		MinArgs:     minArgs,
		MaxArgs:     maxArgs,
		HigherOrder: higherOrder,
		Call:        fn,
	})
}

/*
Compile parses source into a reusable Program bound to this Instance's
extension functions.
*/
func (inst *Instance) Compile(name, source string) (*Program, error) {
	ast, err := parser.Parse(name, source)
	if err != nil {
		return nil, err
	}
	return &Program{source: name, ast: ast, ext: inst.ext}, nil
}

/*
Query parses and immediately runs source against root, for callers who
don't need to reuse the compiled form.
*/
func (inst *Instance) Query(name, source string, root value.Value) (value.Value, error) {
	prog, err := inst.Compile(name, source)
	if err != nil {
		return value.Null, err
	}
	return prog.Run(root)
}

/*
Run evaluates the compiled program against root. A Program may be run
concurrently from multiple goroutines as long as each call supplies its
own root - Run itself never mutates shared state beyond reading the
Instance's extension registry.
*/
func (p *Program) Run(root value.Value) (value.Value, error) {
	ev := runtime.NewEvaluator(root, p.source, p.ext)
	frame := runtime.RootFrame(root)
	return ev.Eval(p.ast, frame)
}

/*
AST exposes the parsed tree, so tooling can inspect or pretty-print it
(see parser.PrettyPrint) without re-parsing.
*/
func (p *Program) AST() *parser.ASTNode { return p.ast }

var errInvalidName = fmt.Errorf("extension function name must be a non-empty MistQL identifier")

var defaultInstance = NewInstance()

/*
Register adds an extension function to the package-level default
Instance used by Query and Compile.
*/
func Register(name string, minArgs, maxArgs int, higherOrder bool, fn runtime.BuiltinFunc) error {
	return defaultInstance.Register(name, minArgs, maxArgs, higherOrder, fn)
}

/*
Compile parses source using the default Instance.
*/
func Compile(name, source string) (*Program, error) {
	return defaultInstance.Compile(name, source)
}

/*
Query parses and runs source against root using the default Instance -
the one-shot entry point most embedders reach for first.
*/
func Query(name, source string, root value.Value) (value.Value, error) {
	return defaultInstance.Query(name, source, root)
}
