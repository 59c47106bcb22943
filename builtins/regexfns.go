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
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/krotik/mistql/parser"
	"github.com/krotik/mistql/runtime"
	"github.com/krotik/mistql/value"
)

func init() {
	register("regex", 1, 2, false, regexFn)
	register("match", 2, 2, false, matchFn)
	register("split", 2, 2, false, splitFn)
	register("replace", 3, 3, false, replaceFn)
}

/*
compileRegex builds a regexp2.Regexp in ECMAScript mode (the dialect
MistQL's reference implementation and test suite assume) from a
pattern and an optional flag string drawn from i/g/m/s.
*/
func compileRegex(pattern, flags string) (*regexp2.Regexp, bool, error) {
	opts := regexp2.ECMAScript
	global := false

	for _, f := range flags {
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		case 'g':
			global = true
		default:
			return nil, false, runtime.ErrRegexError
		}
	}

	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, false, err
	}
	return re, global, nil
}

/*
regexAndFlagsOf extracts a pattern/flags pair from a value that is
either already a regex or a plain string (treated as flag-less).
*/
func regexAndFlagsOf(v value.Value) (pattern, flags string, ok bool) {
	switch v.Kind() {
	case value.KindRegex:
		return v.RegexVal().Pattern, v.RegexVal().Flags, true
	case value.KindString:
		return v.Str(), "", true
	}
	return "", "", false
}

func regexFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	vs, err := evalArgs(ev, frame, args)
	if err != nil {
		return value.Null, err
	}

	pattern, err := requireString(ev, node, vs[0], "regex")
	if err != nil {
		return value.Null, err
	}

	flags := ""
	if len(vs) == 2 {
		flags, err = requireString(ev, node, vs[1], "regex flags")
		if err != nil {
			return value.Null, err
		}
	}

	compiled, _, err := compileRegex(pattern, flags)
	if err != nil {
		return value.Null, runtime.NewRuntimeError(ev.Source, runtime.ErrRegexError, err.Error(), node)
	}

	return value.RegexValue(&value.Regex{Pattern: pattern, Flags: flags, Compiled: compiled}), nil
}

func matchFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	vs, err := evalArgs(ev, frame, args)
	if err != nil {
		return value.Null, err
	}

	pattern, flags, ok := regexAndFlagsOf(vs[0])
	if !ok {
		return typeErr(ev, node, "match pattern must be a regex or a string")
	}
	target, err := requireString(ev, node, vs[1], "match target")
	if err != nil {
		return value.Null, err
	}

	compiled, _, err := compileRegex(pattern, flags)
	if err != nil {
		return value.Null, runtime.NewRuntimeError(ev.Source, runtime.ErrRegexError, err.Error(), node)
	}

	matched, err := compiled.MatchString(target)
	if err != nil {
		return value.Null, runtime.NewRuntimeError(ev.Source, runtime.ErrRegexError, err.Error(), node)
	}
	return value.Bool(matched), nil
}

func splitFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	vs, err := evalArgs(ev, frame, args)
	if err != nil {
		return value.Null, err
	}

	pattern, flags, ok := regexAndFlagsOf(vs[0])
	if !ok {
		return typeErr(ev, node, "split pattern must be a regex or a string")
	}
	target, err := requireString(ev, node, vs[1], "split target")
	if err != nil {
		return value.Null, err
	}

	compiled, _, err := compileRegex(pattern, flags)
	if err != nil {
		return value.Null, runtime.NewRuntimeError(ev.Source, runtime.ErrRegexError, err.Error(), node)
	}

	parts, err := regexSplit(compiled, target)
	if err != nil {
		return value.Null, runtime.NewRuntimeError(ev.Source, runtime.ErrRegexError, err.Error(), node)
	}

	out := make([]value.Value, len(parts))
	for i, p := range parts {
		out[i] = value.String(p)
	}
	return value.Array(out), nil
}

/*
regexSplit splits on rune offsets: regexp2 reports Match.Index/Length in
runes, not bytes, so slicing the string directly with them would
corrupt non-ASCII input.
*/
func regexSplit(re *regexp2.Regexp, s string) ([]string, error) {
	r := []rune(s)
	var parts []string
	pos := 0

	m, err := re.FindStringMatch(s)
	for m != nil {
		if err != nil {
			return nil, err
		}
		parts = append(parts, string(r[pos:m.Index]))
		pos = m.Index + m.Length
		m, err = re.FindNextMatch(m)
	}
	parts = append(parts, string(r[pos:]))
	return parts, nil
}

func replaceFn(ev *runtime.Evaluator, frame *runtime.Frame, node *parser.ASTNode, args []*parser.ASTNode) (value.Value, error) {
	vs, err := evalArgs(ev, frame, args)
	if err != nil {
		return value.Null, err
	}

	pattern, flags, ok := regexAndFlagsOf(vs[0])
	if !ok {
		return typeErr(ev, node, "replace pattern must be a regex or a string")
	}
	replacement, err := requireString(ev, node, vs[1], "replace replacement")
	if err != nil {
		return value.Null, err
	}
	target, err := requireString(ev, node, vs[2], "replace target")
	if err != nil {
		return value.Null, err
	}

	compiled, global, err := compileRegex(pattern, flags)
	if err != nil {
		return value.Null, runtime.NewRuntimeError(ev.Source, runtime.ErrRegexError, err.Error(), node)
	}

	count := 1
	if global {
		count = -1
	}

	out, err := compiled.Replace(target, escapeDollar(replacement), -1, count)
	if err != nil {
		return value.Null, runtime.NewRuntimeError(ev.Source, runtime.ErrRegexError, err.Error(), node)
	}
	return value.String(out), nil
}

/*
escapeDollar neutralizes regexp2's $-prefixed backreference syntax in
replacement text coming from a plain MistQL string, since replace's
replacement argument is meant to be taken literally.
*/
func escapeDollar(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
