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
	"github.com/krotik/mistql/lexer"
	"github.com/krotik/mistql/value"
)

/*
Parse parses MistQL source text into an AST. name is used to identify
the source in error messages (mirroring the teacher's ParseQuery(name,
query string) signature).
*/
func Parse(name string, source string) (*ASTNode, error) {
	tokens := lexer.LexToList(name, source)
	return ParseTokens(name, tokens)
}

/*
ParseTokens parses an already-lexed token list. Useful for tooling that
wants to inspect or rewrite the token stream before parsing.
*/
func ParseTokens(name string, tokens []lexer.Token) (*ASTNode, error) {
	p := &parser{name: name}

	for _, t := range tokens {
		if t.ID == lexer.TokenWhitespace {
			continue
		}
		if t.ID == lexer.TokenError {
			return nil, p.newParseError(ErrLexicalError, t.Val, t)
		}
		p.toks = append(p.toks, t)
	}

	if len(p.toks) == 0 || p.toks[len(p.toks)-1].ID != lexer.TokenEOF {
		p.toks = append(p.toks, lexer.Token{ID: lexer.TokenEOF})
	}

	node, err := p.parsePipe()
	if err != nil {
		return nil, err
	}

	if !p.at(lexer.TokenEOF) {
		return nil, p.newParseError(ErrUnexpectedToken, "trailing input after expression", p.cur(), lexer.TokenEOF)
	}

	return node, nil
}

/*
parser holds the state of a single parse: the significant (non-
whitespace) token list and a cursor into it. Like the teacher's parser,
it operates on a fully materialized token list rather than streaming
from the lexer.
*/
type parser struct {
	name string
	toks []lexer.Token
	pos  int
}

func (p *parser) cur() lexer.Token {
	return p.toks[p.pos]
}

func (p *parser) at(id lexer.TokenID) bool {
	return p.cur().ID == id
}

func (p *parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(id lexer.TokenID) (lexer.Token, error) {
	if !p.at(id) {
		return lexer.Token{}, p.newParseError(ErrUnexpectedToken, "", p.cur(), id)
	}
	return p.advance(), nil
}

/*
binaryLevel parses a standard left-associative binary-operator
precedence level: one operand of the next tighter level, followed by
zero or more (operator, operand) pairs.
*/
func (p *parser) binaryLevel(next func() (*ASTNode, error), ops map[lexer.TokenID]string) (*ASTNode, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := ops[p.cur().ID]
		if !ok {
			return left, nil
		}
		opTok := p.advance()

		right, err := next()
		if err != nil {
			return nil, err
		}

		left = &ASTNode{
			Name:     NodeBinary,
			Token:    opTok,
			Op:       op,
			Children: []*ASTNode{left, right},
		}
	}
}

/*
parsePipe is the lowest-precedence level: stage | stage | stage. Each
stage to the right of a pipe receives the left-hand value as its
implicit context (

@), resolved at evaluation time, not here.
*/
func (p *parser) parsePipe() (*ASTNode, error) {
	left, err := p.parseApplication()
	if err != nil {
		return nil, err
	}

	if !p.at(lexer.TokenPipe) {
		return left, nil
	}

	stages := []*ASTNode{left}

	for p.at(lexer.TokenPipe) {
		p.advance()
		stage, err := p.parseApplication()
		if err != nil {
			return nil, err
		}
		stages = append(stages, stage)
	}

	return &ASTNode{Name: NodePipe, Token: left.Token, Children: stages}, nil
}

/*
parseApplication implements whitespace-delimited juxtaposition function
application: a callee followed by zero or more argument expressions,
each parsed at the || level. "f a b" is a 3-child NodeFn [f, a, b];
plain "f" with no trailing arguments is returned unwrapped.

Because each argument is itself parsed greedily down through the
tighter operator levels, an operator appearing right after a completed
argument is always absorbed as infix by that tighter level before
control returns here - so application only ever sees a fresh operand-
starting token as its next lookahead, never a stray binary operator.
*/
func (p *parser) parseApplication() (*ASTNode, error) {
	callee, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if !p.startsOperand() {
		return callee, nil
	}

	children := []*ASTNode{callee}

	for p.startsOperand() {
		arg, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		children = append(children, arg)
	}

	return &ASTNode{Name: NodeFn, Token: callee.Token, Children: children}, nil
}

/*
startsOperand reports whether the current token can begin a fresh
operand - used by parseApplication to decide whether juxtaposition
continues.
*/
func (p *parser) startsOperand() bool {
	switch p.cur().ID {
	case lexer.TokenNumber, lexer.TokenString, lexer.TokenTrue, lexer.TokenFalse, lexer.TokenNull,
		lexer.TokenIdentifier, lexer.TokenAt, lexer.TokenDollar, lexer.TokenStockRef,
		lexer.TokenLParen, lexer.TokenLBracket, lexer.TokenLBrace,
		lexer.TokenBang, lexer.TokenMinus:
		return true
	}
	return false
}

var orOps = map[lexer.TokenID]string{lexer.TokenOrOr: "||"}
var andOps = map[lexer.TokenID]string{lexer.TokenAndAnd: "&&"}
var eqOps = map[lexer.TokenID]string{
	lexer.TokenEqEq:   "==",
	lexer.TokenBangEq: "!=",
	lexer.TokenMatch:  "=~",
}
var relOps = map[lexer.TokenID]string{
	lexer.TokenLt:   "<",
	lexer.TokenGt:   ">",
	lexer.TokenLtEq: "<=",
	lexer.TokenGtEq: ">=",
}
var addOps = map[lexer.TokenID]string{
	lexer.TokenPlus:  "+",
	lexer.TokenMinus: "-",
}
var mulOps = map[lexer.TokenID]string{
	lexer.TokenStar:    "*",
	lexer.TokenSlash:   "/",
	lexer.TokenPercent: "%",
}

func (p *parser) parseOr() (*ASTNode, error) {
	return p.binaryLevel(p.parseAnd, orOps)
}

func (p *parser) parseAnd() (*ASTNode, error) {
	return p.binaryLevel(p.parseEquality, andOps)
}

func (p *parser) parseEquality() (*ASTNode, error) {
	return p.binaryLevel(p.parseRelational, eqOps)
}

func (p *parser) parseRelational() (*ASTNode, error) {
	return p.binaryLevel(p.parseAdd, relOps)
}

func (p *parser) parseAdd() (*ASTNode, error) {
	return p.binaryLevel(p.parseMul, addOps)
}

func (p *parser) parseMul() (*ASTNode, error) {
	return p.binaryLevel(p.parseUnary, mulOps)
}

/*
parseUnary handles prefix ! and -.
*/
func (p *parser) parseUnary() (*ASTNode, error) {
	if p.at(lexer.TokenBang) || p.at(lexer.TokenMinus) {
		opTok := p.advance()
		op := "!"
		if opTok.ID == lexer.TokenMinus {
			op = "-"
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ASTNode{Name: NodeUnary, Token: opTok, Op: op, Children: []*ASTNode{operand}}, nil
	}
	return p.parsePostfix()
}

/*
parsePostfix handles the highest-precedence suffixes: .field access and
[...] item/slice indexing, chained left to right.
*/
func (p *parser) parsePostfix() (*ASTNode, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.at(lexer.TokenDot):
			dotTok := p.advance()
			nameTok, err := p.expect(lexer.TokenIdentifier)
			if err != nil {
				return nil, err
			}
			node = &ASTNode{Name: NodeDot, Token: dotTok, Field: nameTok.Val, Children: []*ASTNode{node}}

		case p.at(lexer.TokenLBracket):
			node, err = p.parseIndex(node)
			if err != nil {
				return nil, err
			}

		default:
			return node, nil
		}
	}
}

/*
parseIndex parses the [...] suffix following target, handling both item
indexing (a[1]) and slicing (a[1:2], a[:2], a[1:], a[:]).
*/
func (p *parser) parseIndex(target *ASTNode) (*ASTNode, error) {
	openTok := p.advance() // consume '['

	if p.at(lexer.TokenColon) {
		p.advance()
		if p.at(lexer.TokenRBracket) {
			p.advance()
			return &ASTNode{Name: NodeIndex, Token: openTok, IsSlice: true, Children: []*ASTNode{target}}, nil
		}
		high, err := p.parsePipe()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenRBracket); err != nil {
			return nil, err
		}
		return &ASTNode{Name: NodeIndex, Token: openTok, IsSlice: true, HasHigh: true, Children: []*ASTNode{target, high}}, nil
	}

	first, err := p.parsePipe()
	if err != nil {
		return nil, err
	}

	if p.at(lexer.TokenColon) {
		p.advance()
		if p.at(lexer.TokenRBracket) {
			p.advance()
			return &ASTNode{Name: NodeIndex, Token: openTok, IsSlice: true, HasLow: true, Children: []*ASTNode{target, first}}, nil
		}
		high, err := p.parsePipe()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenRBracket); err != nil {
			return nil, err
		}
		return &ASTNode{Name: NodeIndex, Token: openTok, IsSlice: true, HasLow: true, HasHigh: true, Children: []*ASTNode{target, first, high}}, nil
	}

	if _, err := p.expect(lexer.TokenRBracket); err != nil {
		return nil, err
	}
	return &ASTNode{Name: NodeIndex, Token: openTok, Children: []*ASTNode{target, first}}, nil
}

/*
parsePrimary parses literals, references, parenthesized expressions,
and array/object literals - the tightest-binding, left-recursion-free
grammar productions.
*/
func (p *parser) parsePrimary() (*ASTNode, error) {
	tok := p.cur()

	switch tok.ID {
	case lexer.TokenNumber:
		p.advance()
		return p.numberLiteral(tok)

	case lexer.TokenString:
		p.advance()
		return &ASTNode{Name: NodeValue, Token: tok, Val: value.String(tok.Val)}, nil

	case lexer.TokenTrue:
		p.advance()
		return &ASTNode{Name: NodeValue, Token: tok, Val: value.Bool(true)}, nil

	case lexer.TokenFalse:
		p.advance()
		return &ASTNode{Name: NodeValue, Token: tok, Val: value.Bool(false)}, nil

	case lexer.TokenNull:
		p.advance()
		return &ASTNode{Name: NodeValue, Token: tok, Val: value.Null}, nil

	case lexer.TokenAt:
		p.advance()
		return &ASTNode{Name: NodeRef, Token: tok, RefName: "@"}, nil

	case lexer.TokenStockRef:
		p.advance()
		return &ASTNode{Name: NodeRef, Token: tok, RefName: tok.Val, StockOnly: true}, nil

	case lexer.TokenDollar:
		p.advance()
		node := &ASTNode{Name: NodeRef, Token: tok, RefName: "$", Absolute: true}
		if p.at(lexer.TokenDot) {
			dotTok := p.advance()
			nameTok, err := p.expect(lexer.TokenIdentifier)
			if err != nil {
				return nil, err
			}
			return &ASTNode{Name: NodeDot, Token: dotTok, Field: nameTok.Val, Children: []*ASTNode{node}}, nil
		}
		return node, nil

	case lexer.TokenIdentifier:
		p.advance()
		return &ASTNode{Name: NodeRef, Token: tok, RefName: tok.Val}, nil

	case lexer.TokenLParen:
		p.advance()
		inner, err := p.parsePipe()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenRParen); err != nil {
			return nil, err
		}
		return inner, nil

	case lexer.TokenLBracket:
		return p.parseArrayLiteral()

	case lexer.TokenLBrace:
		return p.parseObjectLiteral()
	}

	return nil, p.newParseError(ErrExpectedExpression, "", tok)
}

func (p *parser) numberLiteral(tok lexer.Token) (*ASTNode, error) {
	n, err := parseFloat(tok.Val)
	if err != nil {
		return nil, p.newParseError(ErrUnexpectedToken, "invalid number literal "+tok.Val, tok)
	}
	return &ASTNode{Name: NodeValue, Token: tok, Val: value.Number(n)}, nil
}

/*
parseArrayLiteral parses [a, b, c] with an optional trailing comma.
*/
func (p *parser) parseArrayLiteral() (*ASTNode, error) {
	openTok := p.advance() // consume '['

	node := &ASTNode{Name: NodeArray, Token: openTok}

	if p.at(lexer.TokenRBracket) {
		p.advance()
		return node, nil
	}

	for {
		elem, err := p.parsePipe()
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, elem)

		if p.at(lexer.TokenComma) {
			p.advance()
			if p.at(lexer.TokenRBracket) {
				break
			}
			continue
		}
		break
	}

	if _, err := p.expect(lexer.TokenRBracket); err != nil {
		return nil, err
	}

	return node, nil
}

/*
parseObjectLiteral parses {key: value, ...} where a key is either a bare
identifier or a string literal, and an optional trailing comma is
allowed.
*/
func (p *parser) parseObjectLiteral() (*ASTNode, error) {
	openTok := p.advance() // consume '{'

	node := &ASTNode{Name: NodeObject, Token: openTok}

	if p.at(lexer.TokenRBrace) {
		p.advance()
		return node, nil
	}

	for {
		var key string

		switch {
		case p.at(lexer.TokenIdentifier):
			key = p.advance().Val
		case p.at(lexer.TokenString):
			key = p.advance().Val
		default:
			return nil, p.newParseError(ErrInvalidObjectKey, "", p.cur(), lexer.TokenIdentifier, lexer.TokenString)
		}

		if _, err := p.expect(lexer.TokenColon); err != nil {
			return nil, err
		}

		val, err := p.parsePipe()
		if err != nil {
			return nil, err
		}

		node.Keys = append(node.Keys, key)
		node.Children = append(node.Children, val)

		if p.at(lexer.TokenComma) {
			p.advance()
			if p.at(lexer.TokenRBrace) {
				break
			}
			continue
		}
		break
	}

	if _, err := p.expect(lexer.TokenRBrace); err != nil {
		return nil, err
	}

	return node, nil
}
