package printer

import (
	"math"
	"strconv"
	"strings"

	"github.com/hadeslang/hades/internal/compiler/ast"
	"github.com/hadeslang/hades/internal/compiler/parser"
	"github.com/hadeslang/hades/internal/compiler/token"
)

const DefaultIndent = "    "

// Printer renders a syntax tree back to canonical source. Parentheses are
// emitted only where precedence or associativity requires them, so the
// output re-parses to an equal tree.
//
// Comments recorded on the source file are kept. A comment that follows a
// definition or statement on the same line stays at the end of that line;
// every other comment goes on its own line before the next definition or
// statement, or before the closing brace of its block.
type Printer struct {
	builder strings.Builder
	indent  string
	depth   int

	comments []token.Comment
	next     int // first comment not yet printed
}

func NewPrinter(indent string) *Printer {
	if indent == "" {
		indent = DefaultIndent
	}
	return &Printer{indent: indent}
}

// Print returns the canonical text of file. The printer is reset first.
func (p *Printer) Print(file *ast.SourceFile) string {
	p.builder.Reset()
	p.depth = 0
	p.comments, p.next = file.Comments, 0

	for i, def := range file.Definitions {
		if i > 0 && needsBlankLine(file.Definitions[i-1], def) {
			p.builder.WriteString("\n")
		}
		p.emitComments(def.Span().Start.Offset)
		p.emitDefinition(def)
		p.finishLine(def.Span().End, math.MaxInt)
	}
	p.emitComments(math.MaxInt)
	return p.builder.String()
}

// Expression returns the canonical text of a standalone expression.
func (p *Printer) Expression(e ast.Expression) string {
	return p.expr(e, exprContext{min: parser.PrecAssign + 1})
}

func needsBlankLine(prev, next ast.Definition) bool {
	return prev.Kind() == ast.KindFunctionDefinition || next.Kind() == ast.KindFunctionDefinition
}

// --- Emit Helpers ---

func (p *Printer) emitLine(line string) {
	p.builder.WriteString(strings.Repeat(p.indent, p.depth))
	p.builder.WriteString(line)
	p.builder.WriteString("\n")
}

// openLine starts an indented line; finishLine or a block ends it.
func (p *Printer) openLine(head string) {
	p.builder.WriteString(strings.Repeat(p.indent, p.depth))
	p.builder.WriteString(head)
}

// finishLine ends the current line. A comment that followed the node
// ending at end on the same source line, and starts before limit, is
// appended.
func (p *Printer) finishLine(end token.Position, limit int) {
	if p.next < len(p.comments) {
		c := p.comments[p.next]
		if c.Loc.Start.Line == end.Line && c.Loc.Start.Offset >= end.Offset && c.Loc.Start.Offset < limit {
			p.builder.WriteString(" " + c.Text)
			p.next++
		}
	}
	p.builder.WriteString("\n")
}

// emitComments writes, one per line, the pending comments that start
// before offset.
func (p *Printer) emitComments(offset int) {
	for p.hasCommentBefore(offset) {
		p.emitLine(p.comments[p.next].Text)
		p.next++
	}
}

func (p *Printer) hasCommentBefore(offset int) bool {
	return p.next < len(p.comments) && p.comments[p.next].Loc.Start.Offset < offset
}

// --- Definitions & Statements ---

func (p *Printer) emitDefinition(def ast.Definition) {
	switch d := def.(type) {
	case *ast.FunctionDefinition:
		params := make([]string, 0, len(d.Parameters))
		for _, param := range d.Parameters {
			params = append(params, param.Name.Value+": "+param.Type.Name)
		}
		p.openLine("fn " + d.Name.Value + "(" + strings.Join(params, ", ") + "): " + d.ReturnType.Name + " ")
		p.emitBlock(d.Body)
	case *ast.VarDecl:
		p.openLine(p.varDecl(d))
	case *ast.FunctionCall:
		p.openLine(p.call(d.Call) + ";")
	}
}

// emitBlock writes `{ ... }` starting at the current column and leaves the
// cursor right after the closing brace.
func (p *Printer) emitBlock(b *ast.Block) {
	end := b.Span().End.Offset
	if len(b.Statements) == 0 && !p.hasCommentBefore(end) {
		p.builder.WriteString("{}")
		return
	}
	p.builder.WriteString("{\n")
	p.depth++
	for _, stmt := range b.Statements {
		p.emitComments(stmt.Span().Start.Offset)
		p.emitStatement(stmt)
		p.finishLine(stmt.Span().End, end)
	}
	p.emitComments(end)
	p.depth--
	p.builder.WriteString(strings.Repeat(p.indent, p.depth) + "}")
}

func (p *Printer) emitStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		p.openLine(p.varDecl(s))
	case *ast.FunctionCall:
		p.openLine(p.call(s.Call) + ";")
	case *ast.AssignmentStatement:
		p.openLine(p.assignment(s) + ";")
	case *ast.ReturnStatement:
		p.openLine("return " + p.value(s.ReturnValue) + ";")
	case *ast.IfStatement:
		p.openLine("")
		p.emitIf(s)
	case *ast.WhileStatement:
		p.openLine("while (" + p.value(s.Condition) + ") ")
		p.emitBlock(s.Body)
	case *ast.ForStatement:
		head := "for ("
		if s.Init != nil {
			head += p.varDecl(s.Init) + " "
		}
		head += p.value(s.Condition) + ";"
		if s.Update != nil {
			head += " " + p.assignment(s.Update)
		}
		p.openLine(head + ") ")
		p.emitBlock(s.Body)
	}
}

// emitIf writes an if chain on the current line; else-if alternatives
// continue after the closing brace.
func (p *Printer) emitIf(s *ast.IfStatement) {
	p.builder.WriteString("if (" + p.value(s.Condition) + ") ")
	p.emitBlock(s.Consequence)
	switch alt := s.Alternative.(type) {
	case *ast.IfStatement:
		p.builder.WriteString(" else ")
		p.emitIf(alt)
	case *ast.Block:
		p.builder.WriteString(" else ")
		p.emitBlock(alt)
	}
}

func (p *Printer) varDecl(d *ast.VarDecl) string {
	return "let " + d.Name.Value + " = " + p.value(d.Value) + ";"
}

func (p *Printer) assignment(a *ast.AssignmentStatement) string {
	return a.Name.Value + " = " + p.value(a.Value)
}

// --- Expressions ---

type exprContext struct {
	min int // lowest precedence printable without parentheses
}

// value prints an initializer, assigned value, return value or condition,
// where a top-level `=` would end the expression early.
func (p *Printer) value(e ast.Expression) string {
	return p.expr(e, exprContext{min: parser.PrecAssign + 1})
}

func (p *Printer) expr(e ast.Expression, ctx exprContext) string {
	switch n := e.(type) {
	case *ast.BinaryExpression:
		prec := parser.OperatorPrecedence(n.Operator)
		if prec < ctx.min {
			inner := exprContext{min: parser.PrecLowest}
			return "(" + p.expr(n, inner) + ")"
		}
		left := p.expr(n.Left, exprContext{min: prec})
		right := p.expr(n.Right, exprContext{min: prec + 1})
		return left + " " + n.Operator + " " + right
	case *ast.UnaryExpression:
		return n.Operator + p.expr(n.Operand, exprContext{min: parser.PrecPrefix})
	case *ast.FunctionCallExpr:
		return p.call(n)
	case *ast.StructInit:
		return p.structInit(n)
	case *ast.Identifier:
		return n.Value
	case *ast.NumberLiteral:
		return strconv.FormatInt(n.Value, 10)
	case *ast.StringLiteral:
		return n.String()
	case *ast.BooleanLiteral:
		return strconv.FormatBool(n.Value)
	}
	return ""
}

func (p *Printer) call(c *ast.FunctionCallExpr) string {
	args := make([]string, 0, len(c.Arguments))
	for _, a := range c.Arguments {
		args = append(args, p.expr(a, exprContext{min: parser.PrecLowest}))
	}
	return c.Function.Value + "(" + strings.Join(args, ", ") + ")"
}

func (p *Printer) structInit(s *ast.StructInit) string {
	if len(s.Fields) == 0 {
		return s.Name.Value + " {}"
	}
	fields := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		fields = append(fields, f.Name.Value+": "+p.expr(f.Value, exprContext{min: parser.PrecLowest}))
	}
	return s.Name.Value + " { " + strings.Join(fields, ", ") + " }"
}
