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
	"fmt"
	"sort"
	"sync"

	"github.com/krotik/mistql/parser"
	"github.com/krotik/mistql/value"
)

/*
BuiltinFunc is the implementation of a callable. args are the
unevaluated argument AST nodes of the call site - most builtins
immediately map ev.Eval over them, but the combinators (map, filter,
reduce, sortby, groupby, find, ...) evaluate them lazily, once per
element, against a child frame. node is the call-site NodeFn (or the
pipe-stage node for an implicit call), used for error positions.
*/
type BuiltinFunc func(ev *Evaluator, frame *Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error)

/*
Builtin describes one callable name: its arity bounds and its
implementation. MinArgs/MaxArgs bound the argument count after the
implicit-context rule has appended @ (when the call supplied exactly
MinArgs-1 arguments); MaxArgs of -1 means unbounded.
*/
type Builtin struct {
	Name        string
	MinArgs     int
	MaxArgs     int
	HigherOrder bool // documents that Call evaluates (some of) args lazily
	Call        BuiltinFunc
}

/*
accepts reports whether n arguments (including any implicit @) fall
within this builtin's declared bounds.
*/
func (b *Builtin) accepts(n int) bool {
	if n < b.MinArgs {
		return false
	}
	if b.MaxArgs >= 0 && n > b.MaxArgs {
		return false
	}
	return true
}

var (
	stockMu    sync.RWMutex
	stockTable = map[string]*Builtin{}
)

/*
RegisterStock adds a builtin to the stock table. Called from package
builtins' init(), keeping runtime free of a dependency on builtins and
avoiding an import cycle - the same registration-by-side-effect idiom
Go's own database/sql uses for drivers.
*/
func RegisterStock(b *Builtin) {
	stockMu.Lock()
	defer stockMu.Unlock()
	stockTable[b.Name] = b
}

/*
LookupStock returns a stock builtin by name.
*/
func LookupStock(name string) (*Builtin, bool) {
	stockMu.RLock()
	defer stockMu.RUnlock()
	b, ok := stockTable[name]
	return b, ok
}

/*
StockNames returns every registered stock builtin name, sorted.
*/
func StockNames() []string {
	stockMu.RLock()
	defer stockMu.RUnlock()
	names := make([]string, 0, len(stockTable))
	for n := range stockTable {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

/*
ErrAlreadyRegistered is returned by Registry.Register when name is
already taken, either by a previous registration on this Registry or
by a stock builtin. Names colliding with stock built-ins must be
rejected; the `name` stock-reference syntax exists for a different
problem (a data field shadowing a builtin name at the frame level),
not for letting extensions overload a stock name.
*/
var ErrAlreadyRegistered = fmt.Errorf("name already registered")

/*
Registry holds the user-supplied extension functions of one mistql
Instance. Lookups fall through to the stock table; Registry only ever
needs to hold additions, never overrides.
*/
type Registry struct {
	mu  sync.RWMutex
	fns map[string]*Builtin
}

/*
NewRegistry creates an empty extension registry.
*/
func NewRegistry() *Registry {
	return &Registry{fns: map[string]*Builtin{}}
}

/*
Register adds an extension function. It fails if name is already
registered on this Registry or collides with a stock builtin.
*/
func (r *Registry) Register(b *Builtin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.fns[b.Name]; ok {
		return ErrAlreadyRegistered
	}
	if _, ok := LookupStock(b.Name); ok {
		return ErrAlreadyRegistered
	}
	r.fns[b.Name] = b
	return nil
}

/*
Lookup resolves a callable name, preferring this registry's extensions
over the stock table.
*/
func (r *Registry) Lookup(name string) (*Builtin, bool) {
	if r != nil {
		r.mu.RLock()
		b, ok := r.fns[name]
		r.mu.RUnlock()
		if ok {
			return b, true
		}
	}
	return LookupStock(name)
}
