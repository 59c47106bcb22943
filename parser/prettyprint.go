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
	"fmt"
	"strconv"
	"strings"
)

/*
PrettyPrint renders an AST back into MistQL source, fully
parenthesizing every operator and function application so the output
is unambiguous regardless of the precedence table - the same role the
teacher's prettyprinter.go plays for EQL query trees.
*/
func PrettyPrint(n *ASTNode) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n *ASTNode) {
	switch n.Name {
	case NodeValue:
		writeLiteral(b, n)

	case NodeRef:
		switch {
		case n.StockOnly:
			fmt.Fprintf(b, "`%s`", n.RefName)
		case n.Absolute:
			b.WriteString("$")
		default:
			b.WriteString(n.RefName)
		}

	case NodeArray:
		b.WriteString("[")
		for i, c := range n.Children {
			if i > 0 {
				b.WriteString(", ")
			}
			writeNode(b, c)
		}
		b.WriteString("]")

	case NodeObject:
		b.WriteString("{")
		for i, c := range n.Children {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s: ", objectKeySpelling(n.Keys[i]))
			writeNode(b, c)
		}
		b.WriteString("}")

	case NodeFn:
		b.WriteString("(")
		writeNode(b, n.FnCallee())
		for _, a := range n.FnArgs() {
			b.WriteString(" ")
			writeNode(b, a)
		}
		b.WriteString(")")

	case NodePipe:
		b.WriteString("(")
		for i, c := range n.Children {
			if i > 0 {
				b.WriteString(" | ")
			}
			writeNode(b, c)
		}
		b.WriteString(")")

	case NodeDot:
		writeNode(b, n.Children[0])
		fmt.Fprintf(b, ".%s", n.Field)

	case NodeIndex:
		writeNode(b, n.IndexTarget())
		b.WriteString("[")
		if n.IsSlice {
			if n.HasLow {
				writeNode(b, n.IndexLow())
			}
			b.WriteString(":")
			if n.HasHigh {
				writeNode(b, n.IndexHigh())
			}
		} else {
			writeNode(b, n.IndexItem())
		}
		b.WriteString("]")

	case NodeUnary:
		fmt.Fprintf(b, "(%s", n.Op)
		writeNode(b, n.Children[0])
		b.WriteString(")")

	case NodeBinary:
		b.WriteString("(")
		writeNode(b, n.Children[0])
		fmt.Fprintf(b, " %s ", n.Op)
		writeNode(b, n.Children[1])
		b.WriteString(")")

	default:
		fmt.Fprintf(b, "<%s>", n.Name)
	}
}

func writeLiteral(b *strings.Builder, n *ASTNode) {
	b.WriteString(n.Val.GoString())
}

func objectKeySpelling(key string) string {
	if isPlainIdent(key) {
		return key
	}
	return strconv.Quote(key)
}

func isPlainIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			continue
		}
		if i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}
