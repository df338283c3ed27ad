package ast

// Children returns the direct child nodes of n in source order. Absent
// optional parts are skipped.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if c != nil && !isNilNode(c) {
			out = append(out, c)
		}
	}

	switch n := n.(type) {
	case *SourceFile:
		for _, d := range n.Definitions {
			add(d)
		}
	case *FunctionDefinition:
		add(n.Name)
		for _, p := range n.Parameters {
			add(p)
		}
		add(n.ReturnType)
		add(n.Body)
	case *Parameter:
		add(n.Name)
		add(n.Type)
	case *VarDecl:
		add(n.Name)
		add(n.Value)
	case *FunctionCall:
		add(n.Call)
	case *Block:
		for _, s := range n.Statements {
			add(s)
		}
	case *ReturnStatement:
		add(n.ReturnValue)
	case *IfStatement:
		add(n.Condition)
		add(n.Consequence)
		add(n.Alternative)
	case *WhileStatement:
		add(n.Condition)
		add(n.Body)
	case *ForStatement:
		add(n.Init)
		add(n.Condition)
		add(n.Update)
		add(n.Body)
	case *AssignmentStatement:
		add(n.Name)
		add(n.Value)
	case *BinaryExpression:
		add(n.Left)
		add(n.Right)
	case *UnaryExpression:
		add(n.Operand)
	case *FunctionCallExpr:
		add(n.Function)
		for _, a := range n.Arguments {
			add(a)
		}
	case *StructInit:
		add(n.Name)
		for _, f := range n.Fields {
			add(f)
		}
	case *FieldInit:
		add(n.Name)
		add(n.Value)
	}
	return out
}

// isNilNode catches typed nil pointers stored in an interface.
func isNilNode(n Node) bool {
	switch n := n.(type) {
	case *Identifier:
		return n == nil
	case *TypeNode:
		return n == nil
	case *Block:
		return n == nil
	case *VarDecl:
		return n == nil
	case *AssignmentStatement:
		return n == nil
	case *FunctionCallExpr:
		return n == nil
	case *IfStatement:
		return n == nil
	}
	return false
}

// Inspect traverses the tree depth-first in source order, calling f for
// each node. Children are skipped when f returns false.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || isNilNode(n) || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}
