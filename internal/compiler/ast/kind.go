package ast

// NodeKind is the discriminant external tools switch on. Names follow the
// grammar's rule names.
type NodeKind int

const (
	KindInvalid NodeKind = iota
	KindSourceFile
	KindFunctionDefinition
	KindParameter
	KindType
	KindVarDecl
	KindFunctionCall
	KindFunctionCallExpr
	KindBlock
	KindReturnStatement
	KindIfStatement
	KindWhileStatement
	KindForStatement
	KindAssignmentStatement
	KindBinaryExpression
	KindUnaryExpression
	KindStructInit
	KindFieldInit
	KindIdentifier
	KindNumberLiteral
	KindStringLiteral
	KindBooleanLiteral
)

var kindNames = [...]string{
	KindInvalid:             "invalid",
	KindSourceFile:          "source_file",
	KindFunctionDefinition:  "function_definition",
	KindParameter:           "parameter",
	KindType:                "type",
	KindVarDecl:             "var_decl",
	KindFunctionCall:        "function_call",
	KindFunctionCallExpr:    "function_call_expr",
	KindBlock:               "block",
	KindReturnStatement:     "return_statement",
	KindIfStatement:         "if_statement",
	KindWhileStatement:      "while_statement",
	KindForStatement:        "for_statement",
	KindAssignmentStatement: "assignment_statement",
	KindBinaryExpression:    "binary_expression",
	KindUnaryExpression:     "unary_expression",
	KindStructInit:          "struct_init",
	KindFieldInit:           "field_init",
	KindIdentifier:          "identifier",
	KindNumberLiteral:       "number",
	KindStringLiteral:       "string",
	KindBooleanLiteral:      "boolean",
}

func (k NodeKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindInvalid]
	}
	return kindNames[k]
}
