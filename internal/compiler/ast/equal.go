package ast

// Equal reports whether a and b have the same shape and payload. Source
// spans and raw token text are ignored, so a tree equals the tree obtained
// by re-parsing its printed form.
func Equal(a, b Node) bool {
	aNil := a == nil || isNilNode(a)
	bNil := b == nil || isNilNode(b)
	if aNil || bNil {
		return aNil == bNil
	}
	if a.Kind() != b.Kind() || !samePayload(a, b) {
		return false
	}
	ac, bc := Children(a), Children(b)
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !Equal(ac[i], bc[i]) {
			return false
		}
	}
	return true
}

// samePayload compares the non-child data of two nodes of the same kind.
func samePayload(a, b Node) bool {
	switch a := a.(type) {
	case *Identifier:
		return a.Value == b.(*Identifier).Value
	case *TypeNode:
		bt := b.(*TypeNode)
		return a.Name == bt.Name && a.Builtin == bt.Builtin
	case *NumberLiteral:
		return a.Value == b.(*NumberLiteral).Value
	case *StringLiteral:
		return a.Value == b.(*StringLiteral).Value
	case *BooleanLiteral:
		return a.Value == b.(*BooleanLiteral).Value
	case *BinaryExpression:
		return a.Operator == b.(*BinaryExpression).Operator
	case *UnaryExpression:
		return a.Operator == b.(*UnaryExpression).Operator
	case *IfStatement:
		bi := b.(*IfStatement)
		return (a.Alternative == nil) == (bi.Alternative == nil)
	case *ForStatement:
		bf := b.(*ForStatement)
		return (a.Init == nil) == (bf.Init == nil) && (a.Update == nil) == (bf.Update == nil)
	case *FunctionDefinition:
		return len(a.Parameters) == len(b.(*FunctionDefinition).Parameters)
	case *FunctionCallExpr:
		return len(a.Arguments) == len(b.(*FunctionCallExpr).Arguments)
	case *StructInit:
		return len(a.Fields) == len(b.(*StructInit).Fields)
	}
	return true
}
