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
Package parser turns a MistQL token stream into an abstract syntax tree,
following the grammar and precedence table of spec.md §4.2.
*/
package parser

import (
	"github.com/krotik/mistql/lexer"
	"github.com/krotik/mistql/value"
)

/*
NodeKind identifies which AST production an ASTNode represents. Like the
teacher's parser.ASTNode, MistQL models the AST as one node struct with a
string tag rather than an interface per node type - simpler to walk,
simpler to pretty-print, and it is the shape spec.md §3 itself describes
("tagged sum").
*/
type NodeKind string

/*
Available AST node kinds
*/
const (
	NodeValue  NodeKind = "value"
	NodeRef    NodeKind = "ref"
	NodeArray  NodeKind = "array"
	NodeObject NodeKind = "object"
	NodeFn     NodeKind = "fn"
	NodePipe   NodeKind = "pipe"
	NodeDot    NodeKind = "dot"
	NodeIndex  NodeKind = "index"
	NodeUnary  NodeKind = "unary"
	NodeBinary NodeKind = "binary"
)

/*
ASTNode is a single node of the MistQL abstract syntax tree. Only the
fields relevant to a node's kind are populated; see the comment on each
field for which kinds use it.
*/
type ASTNode struct {
	Name  NodeKind
	Token lexer.Token // Originating token, used for error positions

	Children []*ASTNode // NodeArray: elements. NodeFn: [callee, args...]. NodePipe: stages.
	// NodeDot/NodeIndex/NodeUnary: [target/operand]. NodeBinary: [left, right].

	Val value.Value // NodeValue: the literal value

	RefName   string // NodeRef: identifier name
	Absolute  bool   // NodeRef: true if written as $ or $.name
	StockOnly bool   // NodeRef: true if written as `name`, bypassing frame/extension shadowing

	Field string // NodeDot: the field name being accessed

	Keys []string // NodeObject: keys, parallel to Children (the values)

	Op string // NodeUnary/NodeBinary: operator symbol ("+", "==", "&&", ...)

	IsSlice bool // NodeIndex: true for a[lo:hi] form
	HasLow  bool // NodeIndex slice: false when the low bound was omitted (a[:hi])
	HasHigh bool // NodeIndex slice: false when the high bound was omitted (a[lo:])
}

/*
IndexTarget returns the expression being indexed.
*/
func (n *ASTNode) IndexTarget() *ASTNode { return n.Children[0] }

/*
IndexItem returns the single index expression of an item (non-slice)
index node.
*/
func (n *ASTNode) IndexItem() *ASTNode { return n.Children[1] }

/*
IndexLow returns the low bound expression of a slice index node, or nil
if it was omitted.
*/
func (n *ASTNode) IndexLow() *ASTNode {
	if !n.HasLow {
		return nil
	}
	return n.Children[1]
}

/*
IndexHigh returns the high bound expression of a slice index node, or
nil if it was omitted.
*/
func (n *ASTNode) IndexHigh() *ASTNode {
	if !n.HasHigh {
		return nil
	}
	if n.HasLow {
		return n.Children[2]
	}
	return n.Children[1]
}

/*
FnCallee returns the callee expression of a function application node.
*/
func (n *ASTNode) FnCallee() *ASTNode { return n.Children[0] }

/*
FnArgs returns the argument expressions of a function application node.
*/
func (n *ASTNode) FnArgs() []*ASTNode { return n.Children[1:] }
