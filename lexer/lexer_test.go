/*
 * MistQL
 *
 * Copyright 2024 The MistQL-Go Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ids(toks []Token) []TokenID {
	out := make([]TokenID, len(toks))
	for i, t := range toks {
		out[i] = t.ID
	}
	return out
}

func TestLexPunctuationAndOperators(t *testing.T) {
	toks := LexToList("t", "@.a[1] | count")
	got := ids(toks)
	assert.Equal(t, []TokenID{
		TokenAt, TokenDot, TokenIdentifier, TokenLBracket, TokenNumber, TokenRBracket,
		TokenWhitespace, TokenPipe, TokenWhitespace, TokenIdentifier, TokenEOF,
	}, got)
}

func TestLexTwoCharOperatorsDoNotSplit(t *testing.T) {
	cases := map[string]TokenID{
		"==": TokenEqEq,
		"!=": TokenBangEq,
		"<=": TokenLtEq,
		">=": TokenGtEq,
		"=~": TokenMatch,
		"&&": TokenAndAnd,
		"||": TokenOrOr,
	}
	for src, want := range cases {
		toks := LexToList("t", src)
		assert.Equalf(t, []TokenID{want, TokenEOF}, ids(toks), "source %q", src)
	}
}

func TestLexStringLiteral(t *testing.T) {
	toks := LexToList("t", `"hello\nworld"`)
	assert.Equal(t, []TokenID{TokenString, TokenEOF}, ids(toks))
	assert.Equal(t, "hello\nworld", toks[0].Val)
}

func TestLexUnterminatedStringIsError(t *testing.T) {
	toks := LexToList("t", `"hello`)
	assert.Equal(t, TokenError, toks[0].ID)
}

func TestLexNumberLiteral(t *testing.T) {
	toks := LexToList("t", "3.14")
	assert.Equal(t, TokenNumber, toks[0].ID)
	assert.Equal(t, "3.14", toks[0].Val)
}

func TestLexKeywords(t *testing.T) {
	toks := LexToList("t", "true false null")
	got := ids(toks)
	assert.Equal(t, []TokenID{
		TokenTrue, TokenWhitespace, TokenFalse, TokenWhitespace, TokenNull, TokenEOF,
	}, got)
}

func TestLexStockReference(t *testing.T) {
	toks := LexToList("t", "`map`")
	assert.Equal(t, []TokenID{TokenStockRef, TokenEOF}, ids(toks))
	assert.Equal(t, "map", toks[0].Val)
}

func TestLexEmptyStockReferenceIsError(t *testing.T) {
	toks := LexToList("t", "``")
	assert.Equal(t, TokenError, toks[0].ID)
}

func TestLexUnterminatedStockReferenceIsError(t *testing.T) {
	toks := LexToList("t", "`map")
	assert.Equal(t, TokenError, toks[0].ID)
}

func TestLexWhitespaceRunsCollapseToOneToken(t *testing.T) {
	toks := LexToList("t", "a    b")
	got := ids(toks)
	assert.Equal(t, []TokenID{TokenIdentifier, TokenWhitespace, TokenIdentifier, TokenEOF}, got)
}

func TestLexPositionsTrackLineAndColumn(t *testing.T) {
	toks := LexToList("t", "a\nbb")
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 1, toks[0].Col)

	var ident2 Token
	for _, tok := range toks {
		if tok.ID == TokenIdentifier && tok.Val == "bb" {
			ident2 = tok
		}
	}
	assert.Equal(t, 2, ident2.Line)
	assert.Equal(t, 1, ident2.Col)
}
