/*
 * MistQL
 *
 * Copyright 2024 The MistQL-Go Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/krotik/mistql/lexer"
)

/*
newParseError creates a ParseError carrying the position of the given
token and the set of token kinds that would have been acceptable there.
*/
func (p *parser) newParseError(t error, detail string, token lexer.Token, expected ...lexer.TokenID) error {
	return &ParseError{
		Source:   p.name,
		Type:     t,
		Detail:   detail,
		Line:     token.Line,
		Col:      token.Col,
		Expected: expected,
	}
}

/*
ParseError is a lex- or parse-level error. It carries the offending
position plus, where known, the set of token kinds that would have been
accepted there - spec.md §4.2's "ParseError carries position and the set
of expected token kinds at that position."
*/
type ParseError struct {
	Source   string // Name given to Parse/ParseTokens for this input
	Type     error  // Sentinel error kind, suitable for errors.Is
	Detail   string // Human-readable detail
	Line     int
	Col      int
	Expected []lexer.TokenID
}

/*
Error renders a human-readable description of this parse error.
*/
func (pe *ParseError) Error() string {
	ret := fmt.Sprintf("parse error in %s: %v", pe.Source, pe.Type)

	if pe.Detail != "" {
		ret = fmt.Sprintf("%s (%s)", ret, pe.Detail)
	}

	if len(pe.Expected) > 0 {
		names := make([]string, len(pe.Expected))
		for i, e := range pe.Expected {
			names[i] = e.String()
		}
		ret = fmt.Sprintf("%s [expected: %s]", ret, strings.Join(names, ", "))
	}

	if pe.Line != 0 {
		ret = fmt.Sprintf("%s (line %d, column %d)", ret, pe.Line, pe.Col)
	}

	return ret
}

/*
Unwrap exposes the sentinel Type so callers can use errors.Is(err,
parser.ErrUnexpectedToken) and friends.
*/
func (pe *ParseError) Unwrap() error { return pe.Type }

/*
Parser error sentinel kinds
*/
var (
	ErrUnexpectedEnd      = errors.New("unexpected end of input")
	ErrLexicalError       = errors.New("lexical error")
	ErrUnexpectedToken    = errors.New("unexpected token")
	ErrExpectedExpression = errors.New("expected an expression")
	ErrInvalidObjectKey   = errors.New("object keys must be an identifier or a string literal")
	ErrUnterminatedGroup  = errors.New("unterminated bracketed expression")
)
