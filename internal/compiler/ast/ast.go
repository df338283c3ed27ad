package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/hadeslang/hades/internal/compiler/lexer"
	"github.com/hadeslang/hades/internal/compiler/token"
)

// --- Interfaces ---
type Node interface {
	TokenLiteral() string
	String() string
	Kind() NodeKind
	Span() token.Span
}

// Definition is a top-level item of a source file.
type Definition interface {
	Node
	definitionNode()
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

// --- Source File ---
type SourceFile struct {
	Definitions []Definition
	Comments    []token.Comment // not part of the tree; kept for printing
	Loc         token.Span
}

func (sf *SourceFile) Kind() NodeKind   { return KindSourceFile }
func (sf *SourceFile) Span() token.Span { return sf.Loc }
func (sf *SourceFile) TokenLiteral() string {
	if len(sf.Definitions) > 0 {
		return sf.Definitions[0].TokenLiteral()
	}
	return ""
}

// String for SourceFile concatenates the string representations of its definitions
func (sf *SourceFile) String() string {
	var out bytes.Buffer
	for _, d := range sf.Definitions {
		out.WriteString(d.String())
		out.WriteString("\n")
	}
	return out.String()
}

// --- Definitions & Statements ---

// FunctionDefinition -> fn name(a: int): bool { body }
type FunctionDefinition struct {
	Token      token.Token // The 'fn' token
	Name       *Identifier
	Parameters []*Parameter
	ReturnType *TypeNode
	Body       *Block
	Loc        token.Span
}

func (fd *FunctionDefinition) definitionNode()      {}
func (fd *FunctionDefinition) Kind() NodeKind       { return KindFunctionDefinition }
func (fd *FunctionDefinition) Span() token.Span     { return fd.Loc }
func (fd *FunctionDefinition) TokenLiteral() string { return fd.Token.Literal }
func (fd *FunctionDefinition) String() string {
	var out bytes.Buffer
	out.WriteString("fn ")
	out.WriteString(fd.Name.String())
	out.WriteString("(")
	params := []string{}
	for _, p := range fd.Parameters {
		params = append(params, p.String())
	}
	out.WriteString(strings.Join(params, ", "))
	out.WriteString("): ")
	out.WriteString(fd.ReturnType.String())
	out.WriteString(" ")
	out.WriteString(fd.Body.String())
	return out.String()
}

type Parameter struct {
	Name *Identifier
	Type *TypeNode
	Loc  token.Span
}

func (p *Parameter) Kind() NodeKind       { return KindParameter }
func (p *Parameter) Span() token.Span     { return p.Loc }
func (p *Parameter) TokenLiteral() string { return p.Name.TokenLiteral() }
func (p *Parameter) String() string       { return p.Name.String() + ": " + p.Type.String() }

// TypeNode is either a builtin keyword type (bool, int, void) or a bare
// identifier naming a custom type.
type TypeNode struct {
	Token   token.Token
	Name    string
	Builtin bool
	Loc     token.Span
}

func (tn *TypeNode) Kind() NodeKind       { return KindType }
func (tn *TypeNode) Span() token.Span     { return tn.Loc }
func (tn *TypeNode) TokenLiteral() string { return tn.Token.Literal }
func (tn *TypeNode) String() string       { return tn.Name }

// VarDecl -> let x = value;
type VarDecl struct {
	Token token.Token // let
	Name  *Identifier
	Value Expression
	Loc   token.Span
}

func (vd *VarDecl) definitionNode()      {}
func (vd *VarDecl) statementNode()       {}
func (vd *VarDecl) Kind() NodeKind       { return KindVarDecl }
func (vd *VarDecl) Span() token.Span     { return vd.Loc }
func (vd *VarDecl) TokenLiteral() string { return vd.Token.Literal }
func (vd *VarDecl) String() string {
	return "let " + vd.Name.String() + " = " + vd.Value.String() + ";"
}

// FunctionCall is the statement form: name(args);
type FunctionCall struct {
	Token token.Token // the function name
	Call  *FunctionCallExpr
	Loc   token.Span
}

func (fc *FunctionCall) definitionNode()      {}
func (fc *FunctionCall) statementNode()       {}
func (fc *FunctionCall) Kind() NodeKind       { return KindFunctionCall }
func (fc *FunctionCall) Span() token.Span     { return fc.Loc }
func (fc *FunctionCall) TokenLiteral() string { return fc.Token.Literal }
func (fc *FunctionCall) String() string       { return fc.Call.String() + ";" }

// Block -> { statement1 statement2 }
type Block struct {
	Token      token.Token // {
	Statements []Statement
	Loc        token.Span
}

func (b *Block) statementNode()       {}
func (b *Block) Kind() NodeKind       { return KindBlock }
func (b *Block) Span() token.Span     { return b.Loc }
func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) String() string {
	if len(b.Statements) == 0 {
		return "{}"
	}
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, s := range b.Statements {
		out.WriteString("\t" + s.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}

// ReturnStatement -> return expression;
type ReturnStatement struct {
	Token       token.Token
	ReturnValue Expression
	Loc         token.Span
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) Kind() NodeKind       { return KindReturnStatement }
func (rs *ReturnStatement) Span() token.Span     { return rs.Loc }
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) String() string {
	return "return " + rs.ReturnValue.String() + ";"
}

// IfStatement -> if (cond) { } else ...
// Alternative is nil, a *Block, or a nested *IfStatement for else-if chains.
type IfStatement struct {
	Token       token.Token
	Condition   Expression
	Consequence *Block
	Alternative Statement
	Loc         token.Span
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) Kind() NodeKind       { return KindIfStatement }
func (is *IfStatement) Span() token.Span     { return is.Loc }
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) String() string {
	s := "if (" + is.Condition.String() + ") " + is.Consequence.String()
	if is.Alternative != nil {
		s += " else " + is.Alternative.String()
	}
	return s
}

type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      *Block
	Loc       token.Span
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) Kind() NodeKind       { return KindWhileStatement }
func (ws *WhileStatement) Span() token.Span     { return ws.Loc }
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) String() string {
	return "while (" + ws.Condition.String() + ") " + ws.Body.String()
}

// ForStatement -> for (let i = 0; i < n; i = i + 1) { }
// Init and Update are optional.
type ForStatement struct {
	Token     token.Token
	Init      *VarDecl
	Condition Expression
	Update    *AssignmentStatement
	Body      *Block
	Loc       token.Span
}

func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) Kind() NodeKind       { return KindForStatement }
func (fs *ForStatement) Span() token.Span     { return fs.Loc }
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForStatement) String() string {
	var out bytes.Buffer
	out.WriteString("for (")
	if fs.Init != nil {
		out.WriteString(fs.Init.String() + " ")
	}
	out.WriteString(fs.Condition.String() + ";")
	if fs.Update != nil {
		out.WriteString(" " + fs.Update.Clause())
	}
	out.WriteString(") ")
	out.WriteString(fs.Body.String())
	return out.String()
}

// AssignmentStatement -> x = value;
type AssignmentStatement struct {
	Token token.Token // =
	Name  *Identifier
	Value Expression
	Loc   token.Span
}

func (as *AssignmentStatement) statementNode()       {}
func (as *AssignmentStatement) Kind() NodeKind       { return KindAssignmentStatement }
func (as *AssignmentStatement) Span() token.Span     { return as.Loc }
func (as *AssignmentStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignmentStatement) String() string       { return as.Clause() + ";" }

// Clause renders the assignment without its terminator, as used in a for
// loop's update clause.
func (as *AssignmentStatement) Clause() string {
	return as.Name.String() + " = " + as.Value.String()
}

// --- Expressions ---

// Identifier -> varName
type Identifier struct {
	Token token.Token // IDENT
	Value string
	Loc   token.Span
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) Kind() NodeKind       { return KindIdentifier }
func (i *Identifier) Span() token.Span     { return i.Loc }
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }

// NumberLiteral -> 123
type NumberLiteral struct {
	Token token.Token
	Value int64
	Loc   token.Span
}

func (nl *NumberLiteral) expressionNode()      {}
func (nl *NumberLiteral) Kind() NodeKind       { return KindNumberLiteral }
func (nl *NumberLiteral) Span() token.Span     { return nl.Loc }
func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NumberLiteral) String() string {
	if nl.Token.Literal != "" {
		return nl.Token.Literal
	}
	return strconv.FormatInt(nl.Value, 10)
}

// StringLiteral -> "hello". Value holds the unescaped contents; the raw
// text stays on Token.Literal.
type StringLiteral struct {
	Token token.Token
	Value string
	Loc   token.Span
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) Kind() NodeKind       { return KindStringLiteral }
func (sl *StringLiteral) Span() token.Span     { return sl.Loc }
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) String() string {
	if sl.Token.Type == token.TokenString {
		return `"` + sl.Token.Literal + `"`
	}
	return `"` + lexer.Escape(sl.Value) + `"`
}

type BooleanLiteral struct {
	Token token.Token
	Value bool
	Loc   token.Span
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) Kind() NodeKind       { return KindBooleanLiteral }
func (bl *BooleanLiteral) Span() token.Span     { return bl.Loc }
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BooleanLiteral) String() string       { return strconv.FormatBool(bl.Value) }

// BinaryExpression -> (left op right)
type BinaryExpression struct {
	Token    token.Token // the operator
	Left     Expression
	Operator string
	Right    Expression
	Loc      token.Span
}

func (be *BinaryExpression) expressionNode()      {}
func (be *BinaryExpression) Kind() NodeKind       { return KindBinaryExpression }
func (be *BinaryExpression) Span() token.Span     { return be.Loc }
func (be *BinaryExpression) TokenLiteral() string { return be.Token.Literal }
func (be *BinaryExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(") // Parentheses for clarity/precedence
	out.WriteString(be.Left.String())
	out.WriteString(" " + be.Operator + " ")
	out.WriteString(be.Right.String())
	out.WriteString(")")
	return out.String()
}

// UnaryExpression -> !x or -x
type UnaryExpression struct {
	Token    token.Token
	Operator string
	Operand  Expression
	Loc      token.Span
}

func (ue *UnaryExpression) expressionNode()      {}
func (ue *UnaryExpression) Kind() NodeKind       { return KindUnaryExpression }
func (ue *UnaryExpression) Span() token.Span     { return ue.Loc }
func (ue *UnaryExpression) TokenLiteral() string { return ue.Token.Literal }
func (ue *UnaryExpression) String() string       { return ue.Operator + ue.Operand.String() }

// FunctionCallExpr represents 'funcName(arg1, arg2)' inside an expression
type FunctionCallExpr struct {
	Token     token.Token // The function name token
	Function  *Identifier
	Arguments []Expression
	Loc       token.Span
}

func (fc *FunctionCallExpr) expressionNode()      {}
func (fc *FunctionCallExpr) Kind() NodeKind       { return KindFunctionCallExpr }
func (fc *FunctionCallExpr) Span() token.Span     { return fc.Loc }
func (fc *FunctionCallExpr) TokenLiteral() string { return fc.Token.Literal }
func (fc *FunctionCallExpr) String() string {
	args := []string{}
	for _, a := range fc.Arguments {
		args = append(args, a.String())
	}
	return fc.Function.String() + "(" + strings.Join(args, ", ") + ")"
}

// StructInit -> Point { x: 1, y: 2 }
type StructInit struct {
	Token  token.Token // the type name
	Name   *Identifier
	Fields []*FieldInit
	Loc    token.Span
}

func (si *StructInit) expressionNode()      {}
func (si *StructInit) Kind() NodeKind       { return KindStructInit }
func (si *StructInit) Span() token.Span     { return si.Loc }
func (si *StructInit) TokenLiteral() string { return si.Token.Literal }
func (si *StructInit) String() string {
	if len(si.Fields) == 0 {
		return si.Name.String() + " {}"
	}
	fields := []string{}
	for _, f := range si.Fields {
		fields = append(fields, f.String())
	}
	return si.Name.String() + " { " + strings.Join(fields, ", ") + " }"
}

type FieldInit struct {
	Name  *Identifier
	Value Expression
	Loc   token.Span
}

func (fi *FieldInit) Kind() NodeKind       { return KindFieldInit }
func (fi *FieldInit) Span() token.Span     { return fi.Loc }
func (fi *FieldInit) TokenLiteral() string { return fi.Name.TokenLiteral() }
func (fi *FieldInit) String() string       { return fi.Name.String() + ": " + fi.Value.String() }
