package ast

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented outline of the tree: one node per line with its
// kind, span and payload.
func Dump(w io.Writer, node Node) error {
	return dump(w, node, 0)
}

func dump(w io.Writer, node Node, depth int) error {
	indent := strings.Repeat("  ", depth)
	line := fmt.Sprintf("%s%s [%s]", indent, node.Kind(), node.Span())
	if detail := payload(node); detail != "" {
		line += " " + detail
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	for _, c := range Children(node) {
		if err := dump(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func payload(node Node) string {
	switch n := node.(type) {
	case *Identifier:
		return n.Value
	case *TypeNode:
		if n.Builtin {
			return n.Name + " (builtin)"
		}
		return n.Name
	case *NumberLiteral:
		return fmt.Sprint(n.Value)
	case *StringLiteral:
		return fmt.Sprintf("%q", n.Value)
	case *BooleanLiteral:
		return fmt.Sprint(n.Value)
	case *BinaryExpression:
		return n.Operator
	case *UnaryExpression:
		return n.Operator
	}
	return ""
}
