// Package ast defines the fixed AST node set: definitions, statements,
// expressions and match patterns, each carrying its source position. Every
// node kind is a concrete Go struct; the analyzer and interpreter dispatch
// on the static Go type via a type switch, matching the teacher's
// one-method-per-node-kind visitor style.
package ast

import (
	"fmt"
	"strings"

	"minilang/internal/token"
)

// Node is implemented by every AST node.
type Node interface {
	Position() token.Position
	String() string
}

// ---------------------------------------------------------------- Program

// Program is the root node: an ordered sequence of top-level statements,
// which may be definitions or ordinary statements (the interpreter's
// second pass runs the non-definition ones in source order).
type Program struct {
	Pos        token.Position
	Statements []Stmt
}

func (p *Program) Position() token.Position { return p.Pos }
func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ------------------------------------------------------------- Type refs

// Type is the canonical textual representation of a type reference: "int",
// "str", "bool", "[T]", "(T1, T2, ...)", "Name", or "Name<T1, T2>". The
// analyzer and interpreter both compare Types bytewise as the sole equality
// key, with "any" as the sole wildcard.
type Type string

const AnyType Type = "any"

// ---------------------------------------------------------------- Params

// Param is a name/type pair used by function parameters and struct fields.
type Param struct {
	Name string
	Type Type
}

// ----------------------------------------------------------- Definitions

// Def is implemented by top-level and impl-block definitions. It embeds
// Stmt so definitions may appear anywhere a statement can.
type Def interface {
	Stmt
	isDef()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

type FunctionDef struct {
	Pos        token.Position
	Name       string
	Params     []Param
	ReturnType Type // empty if omitted
	Body       *Block
}

func (f *FunctionDef) Position() token.Position { return f.Pos }
func (f *FunctionDef) stmtNode()                {}
func (f *FunctionDef) isDef()                   {}
func (f *FunctionDef) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = fmt.Sprintf("%s: %s", p.Name, p.Type)
	}
	ret := ""
	if f.ReturnType != "" {
		ret = " -> " + string(f.ReturnType)
	}
	return fmt.Sprintf("fn %s(%s)%s:\n%s", f.Name, strings.Join(parts, ", "), ret, f.Body.String())
}

type StructDef struct {
	Pos          token.Position
	Name         string
	GenericParam string // empty if not generic
	Fields       []Param
}

func (s *StructDef) Position() token.Position { return s.Pos }
func (s *StructDef) stmtNode()                {}
func (s *StructDef) isDef()                   {}
func (s *StructDef) String() string {
	name := s.Name
	if s.GenericParam != "" {
		name += "<" + s.GenericParam + ">"
	}
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, f.Type)
	}
	return fmt.Sprintf("struct %s:\n    %s", name, strings.Join(parts, "\n    "))
}

// EnumVariantKind distinguishes the three shapes an enum variant may take.
type EnumVariantKind int

const (
	VariantUnit EnumVariantKind = iota
	VariantTuple
	VariantStruct
)

type EnumVariantDef struct {
	Name   string
	Kind   EnumVariantKind
	Fields []Param // struct-like: named; tuple-like: Name is "" and Type holds each positional type
}

type EnumDef struct {
	Pos      token.Position
	Name     string
	Variants []EnumVariantDef
}

func (e *EnumDef) Position() token.Position { return e.Pos }
func (e *EnumDef) stmtNode()                {}
func (e *EnumDef) isDef()                   {}
func (e *EnumDef) String() string {
	parts := make([]string, len(e.Variants))
	for i, v := range e.Variants {
		parts[i] = v.Name
	}
	return fmt.Sprintf("enum %s:\n    %s", e.Name, strings.Join(parts, "\n    "))
}

type TraitMethodSig struct {
	Name       string
	ReturnType Type
}

type TraitDef struct {
	Pos     token.Position
	Name    string
	Methods []TraitMethodSig
}

func (t *TraitDef) Position() token.Position { return t.Pos }
func (t *TraitDef) stmtNode()                {}
func (t *TraitDef) isDef()                   {}
func (t *TraitDef) String() string {
	return fmt.Sprintf("trait %s", t.Name)
}

type ImplBlock struct {
	Pos        token.Position
	TraitName  string
	TargetType Type
	Methods    []*FunctionDef
}

func (i *ImplBlock) Position() token.Position { return i.Pos }
func (i *ImplBlock) stmtNode()                {}
func (i *ImplBlock) isDef()                   {}
func (i *ImplBlock) String() string {
	return fmt.Sprintf("impl %s for %s", i.TraitName, i.TargetType)
}

type ExternFn struct {
	Pos        token.Position
	Name       string
	Params     []Param
	ReturnType Type
}

func (e *ExternFn) Position() token.Position { return e.Pos }
func (e *ExternFn) stmtNode()                {}
func (e *ExternFn) isDef()                   {}
func (e *ExternFn) String() string {
	return fmt.Sprintf("extern fn %s(...)", e.Name)
}

// ------------------------------------------------------------ Statements

type VarDecl struct {
	Pos          token.Position
	Name         string
	DeclaredType Type // empty if omitted
	Mutable      bool
	Init         Expr // nil if omitted
}

func (v *VarDecl) Position() token.Position { return v.Pos }
func (v *VarDecl) stmtNode()                {}
func (v *VarDecl) String() string {
	mut := ""
	if v.Mutable {
		mut = "mut "
	}
	typ := ""
	if v.DeclaredType != "" {
		typ = ": " + string(v.DeclaredType)
	}
	init := ""
	if v.Init != nil {
		init = " = " + v.Init.String()
	}
	return fmt.Sprintf("let %s%s%s%s", mut, v.Name, typ, init)
}

type DestructuringAssign struct {
	Pos     token.Position
	Names   []string
	Mutable bool
	Init    Expr
}

func (d *DestructuringAssign) Position() token.Position { return d.Pos }
func (d *DestructuringAssign) stmtNode()                {}
func (d *DestructuringAssign) String() string {
	return fmt.Sprintf("let (%s) = %s", strings.Join(d.Names, ", "), d.Init.String())
}

type Assignment struct {
	Pos   token.Position
	Name  string
	Value Expr
}

func (a *Assignment) Position() token.Position { return a.Pos }
func (a *Assignment) stmtNode()                {}
func (a *Assignment) String() string {
	return fmt.Sprintf("%s = %s", a.Name, a.Value.String())
}

type IfStmt struct {
	Pos       token.Position
	Condition Expr
	Then      *Block
	Else      Stmt // *Block or *IfStmt (else-if chain), nil if absent
}

func (i *IfStmt) Position() token.Position { return i.Pos }
func (i *IfStmt) stmtNode()                {}
func (i *IfStmt) String() string {
	s := fmt.Sprintf("if %s:\n%s", i.Condition.String(), i.Then.String())
	if i.Else != nil {
		s += "\nelse:\n" + i.Else.String()
	}
	return s
}

type WhileStmt struct {
	Pos       token.Position
	Condition Expr
	Body      *Block
}

func (w *WhileStmt) Position() token.Position { return w.Pos }
func (w *WhileStmt) stmtNode()                {}
func (w *WhileStmt) String() string {
	return fmt.Sprintf("while %s:\n%s", w.Condition.String(), w.Body.String())
}

type ForStmt struct {
	Pos      token.Position
	Item     string
	Iterator Expr
	Body     *Block
}

func (f *ForStmt) Position() token.Position { return f.Pos }
func (f *ForStmt) stmtNode()                {}
func (f *ForStmt) String() string {
	return fmt.Sprintf("for %s in %s:\n%s", f.Item, f.Iterator.String(), f.Body.String())
}

type ReturnStmt struct {
	Pos   token.Position
	Value Expr // nil if bare return
}

func (r *ReturnStmt) Position() token.Position { return r.Pos }
func (r *ReturnStmt) stmtNode()                {}
func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "return"
	}
	return "return " + r.Value.String()
}

type MatchCase struct {
	Pattern Pattern
	Body    Stmt // *Block or a single Stmt
}

type MatchStmt struct {
	Pos     token.Position
	Subject Expr
	Cases   []MatchCase
}

func (m *MatchStmt) Position() token.Position { return m.Pos }
func (m *MatchStmt) stmtNode()                {}
func (m *MatchStmt) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("match %s:\n", m.Subject.String()))
	for _, c := range m.Cases {
		sb.WriteString(fmt.Sprintf("    %s => %s\n", c.Pattern.String(), c.Body.String()))
	}
	return sb.String()
}

type ExpressionStatement struct {
	Pos  token.Position
	Expr Expr
}

func (e *ExpressionStatement) Position() token.Position { return e.Pos }
func (e *ExpressionStatement) stmtNode()                {}
func (e *ExpressionStatement) String() string {
	return e.Expr.String()
}

type Block struct {
	Pos        token.Position
	Statements []Stmt
}

func (b *Block) Position() token.Position { return b.Pos }
func (b *Block) stmtNode()                {}
func (b *Block) String() string {
	var sb strings.Builder
	for _, s := range b.Statements {
		sb.WriteString("    " + strings.ReplaceAll(s.String(), "\n", "\n    "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ----------------------------------------------------------- Expressions

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

type LiteralValueType int

const (
	LiteralInt LiteralValueType = iota
	LiteralStr
	LiteralBool
)

type Literal struct {
	Pos       token.Position
	ValueType LiteralValueType
	IntValue  int64
	StrValue  string
	BoolValue bool
}

func (l *Literal) Position() token.Position { return l.Pos }
func (l *Literal) exprNode()                {}
func (l *Literal) String() string {
	switch l.ValueType {
	case LiteralInt:
		return fmt.Sprintf("%d", l.IntValue)
	case LiteralStr:
		return fmt.Sprintf("%q", l.StrValue)
	case LiteralBool:
		return fmt.Sprintf("%t", l.BoolValue)
	}
	return "<literal>"
}

type Identifier struct {
	Pos  token.Position
	Name string
}

func (i *Identifier) Position() token.Position { return i.Pos }
func (i *Identifier) exprNode()                {}
func (i *Identifier) String() string           { return i.Name }

type BinaryOp int

const (
	OpEq BinaryOp = iota
	OpNeq
	OpLt
	OpGt
	OpLe
	OpGe
	OpAdd
	OpSub
	OpMul
	OpDiv
)

var binaryOpText = map[BinaryOp]string{
	OpEq: "==", OpNeq: "!=", OpLt: "<", OpGt: ">", OpLe: "<=", OpGe: ">=",
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/",
}

func (op BinaryOp) String() string { return binaryOpText[op] }

type BinaryExpr struct {
	Pos   token.Position
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (b *BinaryExpr) Position() token.Position { return b.Pos }
func (b *BinaryExpr) exprNode()                {}
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Op.String(), b.Right.String())
}

// CallExpr's Callee is either an *Identifier (plain function call) or a
// *MemberAccess (method call).
type CallExpr struct {
	Pos    token.Position
	Callee Expr
	Args   []Expr
}

func (c *CallExpr) Position() token.Position { return c.Pos }
func (c *CallExpr) exprNode()                {}
func (c *CallExpr) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Callee.String(), strings.Join(parts, ", "))
}

type MemberAccess struct {
	Pos    token.Position
	Object Expr
	Field  string
}

func (m *MemberAccess) Position() token.Position { return m.Pos }
func (m *MemberAccess) exprNode()                {}
func (m *MemberAccess) String() string {
	return fmt.Sprintf("%s.%s", m.Object.String(), m.Field)
}

type IndexExpr struct {
	Pos    token.Position
	Object Expr
	Index  Expr
}

func (ix *IndexExpr) Position() token.Position { return ix.Pos }
func (ix *IndexExpr) exprNode()                {}
func (ix *IndexExpr) String() string {
	return fmt.Sprintf("%s[%s]", ix.Object.String(), ix.Index.String())
}

type ArrayLiteral struct {
	Pos      token.Position
	Elements []Expr
}

func (a *ArrayLiteral) Position() token.Position { return a.Pos }
func (a *ArrayLiteral) exprNode()                {}
func (a *ArrayLiteral) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

type TupleLiteral struct {
	Pos      token.Position
	Elements []Expr
}

func (t *TupleLiteral) Position() token.Position { return t.Pos }
func (t *TupleLiteral) exprNode()                {}
func (t *TupleLiteral) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

type StructInitField struct {
	Name  string
	Value Expr
}

type StructInit struct {
	Pos        token.Position
	StructName string
	Fields     []StructInitField
}

func (s *StructInit) Position() token.Position { return s.Pos }
func (s *StructInit) exprNode()                {}
func (s *StructInit) String() string {
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, f.Value.String())
	}
	return fmt.Sprintf("%s { %s }", s.StructName, strings.Join(parts, ", "))
}

// EnumVariant covers both user enum construction (Name::Variant, optionally
// with a struct or tuple payload) and the built-in Option/Result sugars
// (Some/None/Ok/Err), which lower here with synthetic EnumType "Option" or
// "Result".
type EnumVariant struct {
	Pos      token.Position
	EnumType string
	Variant  string
	Kind     EnumVariantKind
	// StructFields holds StructInit-style fields for Kind==VariantStruct;
	// TupleArgs holds the single- or multi-element expression list for
	// Kind==VariantTuple.
	StructFields []StructInitField
	TupleArgs    []Expr
}

func (e *EnumVariant) Position() token.Position { return e.Pos }
func (e *EnumVariant) exprNode()                {}
func (e *EnumVariant) String() string {
	switch e.Kind {
	case VariantStruct:
		parts := make([]string, len(e.StructFields))
		for i, f := range e.StructFields {
			parts[i] = fmt.Sprintf("%s: %s", f.Name, f.Value.String())
		}
		return fmt.Sprintf("%s::%s { %s }", e.EnumType, e.Variant, strings.Join(parts, ", "))
	case VariantTuple:
		parts := make([]string, len(e.TupleArgs))
		for i, a := range e.TupleArgs {
			parts[i] = a.String()
		}
		return fmt.Sprintf("%s::%s(%s)", e.EnumType, e.Variant, strings.Join(parts, ", "))
	default:
		return fmt.Sprintf("%s::%s", e.EnumType, e.Variant)
	}
}

type Borrow struct {
	Pos     token.Position
	Mutable bool
	Expr    Expr
}

func (b *Borrow) Position() token.Position { return b.Pos }
func (b *Borrow) exprNode()                {}
func (b *Borrow) String() string {
	if b.Mutable {
		return "&mut " + b.Expr.String()
	}
	return "&" + b.Expr.String()
}

type LambdaExpr struct {
	Pos    token.Position
	Params []string
	Body   *Block
}

func (l *LambdaExpr) Position() token.Position { return l.Pos }
func (l *LambdaExpr) exprNode()                {}
func (l *LambdaExpr) String() string {
	return fmt.Sprintf("|%s|:\n%s", strings.Join(l.Params, ", "), l.Body.String())
}

// -------------------------------------------------------------- Patterns

// Pattern is implemented by every match-arm pattern node.
type Pattern interface {
	Node
	patternNode()
}

type WildcardPattern struct{ Pos token.Position }

func (w *WildcardPattern) Position() token.Position { return w.Pos }
func (w *WildcardPattern) patternNode()              {}
func (w *WildcardPattern) String() string            { return "_" }

// EnumPattern's bind is either a single inner-binding name (for the
// built-in Option/Result sugars: Some(x), Ok(x), Err(x), None) or a list of
// destructured struct-variant field names (for user enums).
type EnumPattern struct {
	Pos            token.Position
	EnumName       string // empty for Option/Result sugar
	Variant        string
	InnerBind      string   // set for Some/Ok/Err; "" for None and for user enums
	DestructFields []string // set for Name::Variant { f, ... }
}

func (e *EnumPattern) Position() token.Position { return e.Pos }
func (e *EnumPattern) patternNode()              {}
func (e *EnumPattern) String() string {
	if e.EnumName == "" {
		if e.InnerBind != "" {
			return fmt.Sprintf("%s(%s)", e.Variant, e.InnerBind)
		}
		return e.Variant
	}
	if len(e.DestructFields) > 0 {
		return fmt.Sprintf("%s::%s { %s }", e.EnumName, e.Variant, strings.Join(e.DestructFields, ", "))
	}
	return fmt.Sprintf("%s::%s", e.EnumName, e.Variant)
}

type IdentifierPattern struct {
	Pos  token.Position
	Name string
}

func (i *IdentifierPattern) Position() token.Position { return i.Pos }
func (i *IdentifierPattern) patternNode()              {}
func (i *IdentifierPattern) String() string            { return i.Name }

type LiteralPattern struct {
	Pos   token.Position
	Value *Literal
}

func (l *LiteralPattern) Position() token.Position { return l.Pos }
func (l *LiteralPattern) patternNode()              {}
func (l *LiteralPattern) String() string            { return l.Value.String() }
