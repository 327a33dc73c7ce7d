// Package parser implements a recursive-descent parser with single token
// lookahead plus one statement-level disambiguation helper (identifier
// followed by '=' is an Assignment, otherwise an expression statement).
//
// Like the teacher's parser, control flow aborts at the first syntax error
// with no recovery. Because this parser is a library rather than a CLI
// (the teacher could afford os.Exit), the abort is implemented the way
// Go's own recursive-descent parsers do it: an internal panic carrying an
// *Error, recovered at the single public entry point and returned as a
// normal error.
package parser

import (
	"fmt"
	"strconv"

	"minilang/internal/ast"
	"minilang/internal/lexer"
	"minilang/internal/token"
)

// Error is a fatal syntax error: an unexpected or missing token.
type Error struct {
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

// Parse tokenizes and parses source into a Program, constructing a lexer
// internally.
func Parse(source string) (*ast.Program, error) {
	toks, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	return ParseTokens(toks)
}

// ParseTokens parses an already-tokenized stream.
func ParseTokens(tokens []token.Token) (program *ast.Program, err error) {
	p := &Parser{tokens: tokens}

	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(*Error)
			if !ok {
				panic(r)
			}
			err = perr
		}
	}()

	return p.parseProgram(), nil
}

// Parser turns a token stream into an AST.
type Parser struct {
	tokens []token.Token
	idx    int
}

// ------------------------------------------------------------- Top level

func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.atEnd() {
		for p.match(token.NEWLINE) {
		}
		if p.atEnd() {
			break
		}
		prog.Statements = append(prog.Statements, p.parseStatement())
		p.match(token.NEWLINE)
	}
	return prog
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.current().Kind {
	case token.FN:
		return p.parseFunctionDef()
	case token.STRUCT:
		return p.parseStructDef()
	case token.ENUM:
		return p.parseEnumDef()
	case token.TRAIT:
		return p.parseTraitDef()
	case token.IMPL:
		return p.parseImplBlock()
	case token.EXTERN:
		return p.parseExternFn()
	case token.LET:
		return p.parseLet()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.RETURN:
		return p.parseReturn()
	case token.MATCH:
		return p.parseMatch()
	default:
		return p.parseExprOrAssignment()
	}
}

// parseBlock consumes the NEWLINE INDENT ... DEDENT that follows a leading
// ':' and returns the enclosed statements.
func (p *Parser) parseBlock() *ast.Block {
	startPos := p.current().Pos
	p.expect(token.NEWLINE, "expected a newline before an indented block")
	p.expect(token.INDENT, "expected an indented block")

	var stmts []ast.Stmt
	for !p.check(token.DEDENT) && !p.atEnd() {
		for p.match(token.NEWLINE) {
		}
		if p.check(token.DEDENT) || p.atEnd() {
			break
		}
		stmts = append(stmts, p.parseStatement())
		p.match(token.NEWLINE)
	}
	p.expect(token.DEDENT, "expected a dedent to close the block")
	return &ast.Block{Statements: stmts, Pos: startPos}
}

// ----------------------------------------------------------- Definitions

func (p *Parser) parseFunctionDef() *ast.FunctionDef {
	pos := p.current().Pos
	p.expect(token.FN, "expected 'fn'")
	name := p.expect(token.IDENTIFIER, "expected a function name").Literal
	p.expect(token.LPAREN, "expected '(' after function name")
	params := p.parseParamList(token.RPAREN)
	p.expect(token.RPAREN, "expected ')' after parameters")

	var ret ast.Type
	if p.match(token.ARROW) {
		ret = p.parseType()
	}
	p.expect(token.COLON, "expected ':' before function body")
	body := p.parseBlock()

	return &ast.FunctionDef{Pos: pos, Name: name, Params: params, ReturnType: ret, Body: body}
}

func (p *Parser) parseParamList(closing token.Kind) []ast.Param {
	var params []ast.Param
	if p.check(closing) {
		return params
	}
	params = append(params, p.parseParam())
	for p.match(token.COMMA) {
		params = append(params, p.parseParam())
	}
	return params
}

func (p *Parser) parseParam() ast.Param {
	name := p.expect(token.IDENTIFIER, "expected a parameter name").Literal
	p.expect(token.COLON, "expected ':' after parameter name")
	return ast.Param{Name: name, Type: p.parseType()}
}

func (p *Parser) parseStructDef() *ast.StructDef {
	pos := p.current().Pos
	p.expect(token.STRUCT, "expected 'struct'")
	name := p.expect(token.IDENTIFIER, "expected a struct name").Literal

	var generic string
	if p.match(token.LT) {
		generic = p.expect(token.IDENTIFIER, "expected a generic parameter name").Literal
		p.expect(token.GT, "expected '>' after generic parameter")
	}
	p.expect(token.COLON, "expected ':' before struct fields")

	fields := p.parseFieldBlock()
	return &ast.StructDef{Pos: pos, Name: name, GenericParam: generic, Fields: fields}
}

// parseFieldBlock accepts either shape the grammar allows after a struct's
// leading ':' — an indented newline-separated field list, or a single
// comma-separated field list inline on the same source line.
func (p *Parser) parseFieldBlock() []ast.Param {
	if !p.check(token.NEWLINE) {
		fields := []ast.Param{p.parseParam()}
		for p.match(token.COMMA) {
			fields = append(fields, p.parseParam())
		}
		return fields
	}

	p.expect(token.NEWLINE, "expected a newline before struct fields")
	p.expect(token.INDENT, "expected indented struct fields")

	var fields []ast.Param
	for !p.check(token.DEDENT) && !p.atEnd() {
		for p.match(token.NEWLINE) {
		}
		if p.check(token.DEDENT) || p.atEnd() {
			break
		}
		fields = append(fields, p.parseParam())
		p.match(token.COMMA)
		p.match(token.NEWLINE)
	}
	p.expect(token.DEDENT, "expected a dedent to close the field list")
	return fields
}

func (p *Parser) parseEnumDef() *ast.EnumDef {
	pos := p.current().Pos
	p.expect(token.ENUM, "expected 'enum'")
	name := p.expect(token.IDENTIFIER, "expected an enum name").Literal
	p.expect(token.COLON, "expected ':' before enum variants")

	p.expect(token.NEWLINE, "expected a newline before enum variants")
	p.expect(token.INDENT, "expected indented enum variants")

	var variants []ast.EnumVariantDef
	for !p.check(token.DEDENT) && !p.atEnd() {
		for p.match(token.NEWLINE) {
		}
		if p.check(token.DEDENT) || p.atEnd() {
			break
		}
		variants = append(variants, p.parseEnumVariantDef())
		p.match(token.NEWLINE)
	}
	p.expect(token.DEDENT, "expected a dedent to close the enum body")

	return &ast.EnumDef{Pos: pos, Name: name, Variants: variants}
}

func (p *Parser) parseEnumVariantDef() ast.EnumVariantDef {
	name := p.expect(token.IDENTIFIER, "expected a variant name").Literal

	if p.match(token.LBRACE) {
		var fields []ast.Param
		if !p.check(token.RBRACE) {
			fields = append(fields, p.parseParam())
			for p.match(token.COMMA) {
				fields = append(fields, p.parseParam())
			}
		}
		p.expect(token.RBRACE, "expected '}' after struct-like variant fields")
		return ast.EnumVariantDef{Name: name, Kind: ast.VariantStruct, Fields: fields}
	}

	if p.match(token.LPAREN) {
		var fields []ast.Param
		if !p.check(token.RPAREN) {
			fields = append(fields, ast.Param{Type: p.parseType()})
			for p.match(token.COMMA) {
				fields = append(fields, ast.Param{Type: p.parseType()})
			}
		}
		p.expect(token.RPAREN, "expected ')' after tuple-like variant fields")
		return ast.EnumVariantDef{Name: name, Kind: ast.VariantTuple, Fields: fields}
	}

	return ast.EnumVariantDef{Name: name, Kind: ast.VariantUnit}
}

func (p *Parser) parseTraitDef() *ast.TraitDef {
	pos := p.current().Pos
	p.expect(token.TRAIT, "expected 'trait'")
	name := p.expect(token.IDENTIFIER, "expected a trait name").Literal
	p.expect(token.COLON, "expected ':' before trait methods")

	p.expect(token.NEWLINE, "expected a newline before trait methods")
	p.expect(token.INDENT, "expected indented trait methods")

	var methods []ast.TraitMethodSig
	for !p.check(token.DEDENT) && !p.atEnd() {
		for p.match(token.NEWLINE) {
		}
		if p.check(token.DEDENT) || p.atEnd() {
			break
		}
		p.expect(token.FN, "expected 'fn' in trait method signature")
		mname := p.expect(token.IDENTIFIER, "expected a method name").Literal
		p.expect(token.LPAREN, "expected '(' after method name")
		p.expect(token.RPAREN, "expected ')' in trait method signature")
		var ret ast.Type
		if p.match(token.ARROW) {
			ret = p.parseType()
		}
		methods = append(methods, ast.TraitMethodSig{Name: mname, ReturnType: ret})
		p.match(token.NEWLINE)
	}
	p.expect(token.DEDENT, "expected a dedent to close the trait body")

	return &ast.TraitDef{Pos: pos, Name: name, Methods: methods}
}

func (p *Parser) parseImplBlock() *ast.ImplBlock {
	pos := p.current().Pos
	p.expect(token.IMPL, "expected 'impl'")
	traitName := p.expect(token.IDENTIFIER, "expected a trait name").Literal
	p.expect(token.FOR, "expected 'for' after trait name")
	target := p.parseType()
	p.expect(token.COLON, "expected ':' before impl body")

	p.expect(token.NEWLINE, "expected a newline before impl methods")
	p.expect(token.INDENT, "expected indented impl methods")

	var methods []*ast.FunctionDef
	for !p.check(token.DEDENT) && !p.atEnd() {
		for p.match(token.NEWLINE) {
		}
		if p.check(token.DEDENT) || p.atEnd() {
			break
		}
		methods = append(methods, p.parseFunctionDef())
		p.match(token.NEWLINE)
	}
	p.expect(token.DEDENT, "expected a dedent to close the impl body")

	return &ast.ImplBlock{Pos: pos, TraitName: traitName, TargetType: target, Methods: methods}
}

func (p *Parser) parseExternFn() *ast.ExternFn {
	pos := p.current().Pos
	p.expect(token.EXTERN, "expected 'extern'")
	p.expect(token.FN, "expected 'fn' after 'extern'")
	name := p.expect(token.IDENTIFIER, "expected an extern function name").Literal
	p.expect(token.LPAREN, "expected '(' after function name")
	params := p.parseParamList(token.RPAREN)
	p.expect(token.RPAREN, "expected ')' after parameters")

	if p.check(token.ARROW) {
		p.fail("extern fn declarations may not declare a return type")
	}

	return &ast.ExternFn{Pos: pos, Name: name, Params: params}
}

// -------------------------------------------------------------- Let & co

func (p *Parser) parseLet() ast.Stmt {
	pos := p.current().Pos
	p.expect(token.LET, "expected 'let'")
	mutable := p.match(token.MUT)

	if p.check(token.LPAREN) {
		p.advance()
		names := []string{p.expect(token.IDENTIFIER, "expected an identifier").Literal}
		for p.match(token.COMMA) {
			names = append(names, p.expect(token.IDENTIFIER, "expected an identifier").Literal)
		}
		p.expect(token.RPAREN, "expected ')' after destructured names")
		p.expect(token.ASSIGN, "expected '=' in destructuring let")
		init := p.parseExpression()
		return &ast.DestructuringAssign{Pos: pos, Names: names, Mutable: mutable, Init: init}
	}

	name := p.expect(token.IDENTIFIER, "expected a variable name").Literal
	var declared ast.Type
	if p.match(token.COLON) {
		declared = p.parseType()
	}
	var init ast.Expr
	if p.match(token.ASSIGN) {
		init = p.parseExpression()
	}
	return &ast.VarDecl{Pos: pos, Name: name, DeclaredType: declared, Mutable: mutable, Init: init}
}

func (p *Parser) parseExprOrAssignment() ast.Stmt {
	pos := p.current().Pos
	if p.check(token.IDENTIFIER) && p.peekKind(1) == token.ASSIGN {
		name := p.advance().Literal
		p.advance() // '='
		value := p.parseExpression()
		return &ast.Assignment{Pos: pos, Name: name, Value: value}
	}
	expr := p.parseExpression()
	return &ast.ExpressionStatement{Pos: pos, Expr: expr}
}

// --------------------------------------------------------- Control flow

func (p *Parser) parseIf() *ast.IfStmt {
	pos := p.current().Pos
	p.expect(token.IF, "expected 'if'")
	cond := p.parseExpression()
	p.expect(token.COLON, "expected ':' after if condition")
	then := p.parseBlock()

	var elseStmt ast.Stmt
	if p.match(token.ELSE) {
		if p.check(token.IF) {
			elseStmt = p.parseIf()
		} else {
			p.expect(token.COLON, "expected ':' after else")
			elseStmt = p.parseBlock()
		}
	}
	return &ast.IfStmt{Pos: pos, Condition: cond, Then: then, Else: elseStmt}
}

func (p *Parser) parseWhile() *ast.WhileStmt {
	pos := p.current().Pos
	p.expect(token.WHILE, "expected 'while'")
	cond := p.parseExpression()
	p.expect(token.COLON, "expected ':' after while condition")
	body := p.parseBlock()
	return &ast.WhileStmt{Pos: pos, Condition: cond, Body: body}
}

func (p *Parser) parseFor() *ast.ForStmt {
	pos := p.current().Pos
	p.expect(token.FOR, "expected 'for'")
	item := p.expect(token.IDENTIFIER, "expected a loop variable name").Literal
	p.expect(token.IN, "expected 'in' after loop variable")
	iter := p.parseExpression()
	p.expect(token.COLON, "expected ':' after for iterator")
	body := p.parseBlock()
	return &ast.ForStmt{Pos: pos, Item: item, Iterator: iter, Body: body}
}

func (p *Parser) parseReturn() *ast.ReturnStmt {
	pos := p.current().Pos
	p.expect(token.RETURN, "expected 'return'")
	if p.check(token.NEWLINE) || p.check(token.DEDENT) || p.atEnd() {
		return &ast.ReturnStmt{Pos: pos}
	}
	return &ast.ReturnStmt{Pos: pos, Value: p.parseExpression()}
}

func (p *Parser) parseMatch() *ast.MatchStmt {
	pos := p.current().Pos
	p.expect(token.MATCH, "expected 'match'")
	subject := p.parseExpression()
	p.expect(token.COLON, "expected ':' before match arms")

	p.expect(token.NEWLINE, "expected a newline before match arms")
	p.expect(token.INDENT, "expected indented match arms")

	var cases []ast.MatchCase
	for !p.check(token.DEDENT) && !p.atEnd() {
		for p.match(token.NEWLINE) {
		}
		if p.check(token.DEDENT) || p.atEnd() {
			break
		}
		pat := p.parsePattern()
		p.expect(token.FATARROW, "expected '=>' after match pattern")
		body := p.parseMatchBody()
		cases = append(cases, ast.MatchCase{Pattern: pat, Body: body})
		p.match(token.NEWLINE)
	}
	p.expect(token.DEDENT, "expected a dedent to close the match body")

	return &ast.MatchStmt{Pos: pos, Subject: subject, Cases: cases}
}

// parseMatchBody handles the three shapes a match arm's body can take: a braced block
// (bracket depth suppresses layout, so it always fits on the line), a full
// indented block, or a single bare statement.
func (p *Parser) parseMatchBody() ast.Stmt {
	if p.match(token.LBRACE) {
		stmt := p.parseStatement()
		p.expect(token.RBRACE, "expected '}' to close match arm body")
		return &ast.Block{Statements: []ast.Stmt{stmt}}
	}
	if p.check(token.NEWLINE) {
		return p.parseBlock()
	}
	return &ast.Block{Statements: []ast.Stmt{p.parseStatement()}}
}

func (p *Parser) parsePattern() ast.Pattern {
	pos := p.current().Pos

	switch {
	case p.match(token.UNDERSCORE):
		return &ast.WildcardPattern{Pos: pos}
	case p.match(token.SOME):
		p.expect(token.LPAREN, "expected '(' after Some")
		name := p.expect(token.IDENTIFIER, "expected a binding name").Literal
		p.expect(token.RPAREN, "expected ')' after Some binding")
		return &ast.EnumPattern{Pos: pos, Variant: "Some", InnerBind: name}
	case p.match(token.NONE):
		return &ast.EnumPattern{Pos: pos, Variant: "None"}
	case p.match(token.OK):
		p.expect(token.LPAREN, "expected '(' after Ok")
		name := p.expect(token.IDENTIFIER, "expected a binding name").Literal
		p.expect(token.RPAREN, "expected ')' after Ok binding")
		return &ast.EnumPattern{Pos: pos, Variant: "Ok", InnerBind: name}
	case p.match(token.ERR):
		p.expect(token.LPAREN, "expected '(' after Err")
		name := p.expect(token.IDENTIFIER, "expected a binding name").Literal
		p.expect(token.RPAREN, "expected ')' after Err binding")
		return &ast.EnumPattern{Pos: pos, Variant: "Err", InnerBind: name}
	case p.check(token.NUMBER) || p.check(token.STRING) || p.check(token.BOOLEAN):
		return &ast.LiteralPattern{Pos: pos, Value: p.parseLiteralToken()}
	case p.check(token.IDENTIFIER):
		name := p.advance().Literal
		if p.match(token.COLONCOLON) {
			variant := p.expect(token.IDENTIFIER, "expected a variant name").Literal
			var fields []string
			if p.match(token.LBRACE) {
				if !p.check(token.RBRACE) {
					fields = append(fields, p.expect(token.IDENTIFIER, "expected a field name").Literal)
					for p.match(token.COMMA) {
						fields = append(fields, p.expect(token.IDENTIFIER, "expected a field name").Literal)
					}
				}
				p.expect(token.RBRACE, "expected '}' after destructured fields")
			}
			return &ast.EnumPattern{Pos: pos, EnumName: name, Variant: variant, DestructFields: fields}
		}
		return &ast.IdentifierPattern{Pos: pos, Name: name}
	}

	p.fail("expected a pattern")
	return nil
}

func (p *Parser) parseLiteralToken() *ast.Literal {
	pos := p.current().Pos
	switch {
	case p.match(token.NUMBER):
		n, _ := strconv.ParseInt(p.previous().Literal, 10, 64)
		return &ast.Literal{Pos: pos, ValueType: ast.LiteralInt, IntValue: n}
	case p.match(token.STRING):
		return &ast.Literal{Pos: pos, ValueType: ast.LiteralStr, StrValue: p.previous().Literal}
	case p.match(token.BOOLEAN):
		return &ast.Literal{Pos: pos, ValueType: ast.LiteralBool, BoolValue: p.previous().Literal == "true"}
	}
	p.fail("expected a literal")
	return nil
}

// -------------------------------------------------------------- Types

func (p *Parser) parseType() ast.Type {
	switch {
	case p.match(token.LBRACKET):
		elem := p.parseType()
		p.expect(token.RBRACKET, "expected ']' to close array type")
		return ast.ArrayType(elem)
	case p.match(token.LPAREN):
		var elems []ast.Type
		if !p.check(token.RPAREN) {
			elems = append(elems, p.parseType())
			for p.match(token.COMMA) {
				elems = append(elems, p.parseType())
			}
		}
		p.expect(token.RPAREN, "expected ')' to close tuple type")
		return ast.TupleType(elems)
	case p.match(token.INT):
		return "int"
	case p.match(token.STR):
		return "str"
	case p.match(token.BOOL):
		return "bool"
	case p.check(token.IDENTIFIER):
		name := p.advance().Literal
		if p.match(token.LT) {
			args := []ast.Type{p.parseType()}
			for p.match(token.COMMA) {
				args = append(args, p.parseType())
			}
			p.expect(token.GT, "expected '>' to close generic type arguments")
			return ast.GenericType(name, args)
		}
		return ast.Type(name)
	}
	p.fail("expected a type")
	return ""
}

// ------------------------------------------------------------ Expressions

func (p *Parser) parseExpression() ast.Expr {
	return p.parseComparison()
}

func (p *Parser) parseComparison() ast.Expr {
	left := p.parseAdditive()
	for {
		op, ok := comparisonOp(p.current().Kind)
		if !ok {
			return left
		}
		p.advance()
		right := p.parseAdditive()
		left = &ast.BinaryExpr{Pos: left.Position(), Op: op, Left: left, Right: right}
	}
}

func comparisonOp(k token.Kind) (ast.BinaryOp, bool) {
	switch k {
	case token.EQ:
		return ast.OpEq, true
	case token.NEQ:
		return ast.OpNeq, true
	case token.LT:
		return ast.OpLt, true
	case token.GT:
		return ast.OpGt, true
	case token.LE:
		return ast.OpLe, true
	case token.GE:
		return ast.OpGe, true
	}
	return 0, false
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.check(token.PLUS) || p.check(token.MINUS) {
		op := ast.OpAdd
		if p.current().Kind == token.MINUS {
			op = ast.OpSub
		}
		p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Pos: left.Position(), Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for p.check(token.STAR) || p.check(token.SLASH) {
		op := ast.OpMul
		if p.current().Kind == token.SLASH {
			op = ast.OpDiv
		}
		p.advance()
		right := p.parseUnary()
		left = &ast.BinaryExpr{Pos: left.Position(), Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	if p.match(token.AMP) {
		pos := p.previous().Pos
		mutable := p.match(token.MUT)
		inner := p.parseUnary()
		return &ast.Borrow{Pos: pos, Mutable: mutable, Expr: inner}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch {
		case p.match(token.DOT):
			name := p.expect(token.IDENTIFIER, "expected a field or method name after '.'").Literal
			expr = &ast.MemberAccess{Pos: expr.Position(), Object: expr, Field: name}
		case p.match(token.LBRACKET):
			idx := p.parseExpression()
			p.expect(token.RBRACKET, "expected ']' after index")
			expr = &ast.IndexExpr{Pos: expr.Position(), Object: expr, Index: idx}
		case p.match(token.LPAREN):
			args := p.parseArgList(token.RPAREN)
			p.expect(token.RPAREN, "expected ')' after arguments")
			expr = &ast.CallExpr{Pos: expr.Position(), Callee: expr, Args: args}
		default:
			return expr
		}
	}
}

func (p *Parser) parseArgList(closing token.Kind) []ast.Expr {
	var args []ast.Expr
	if p.check(closing) {
		return args
	}
	args = append(args, p.parseExpression())
	for p.match(token.COMMA) {
		args = append(args, p.parseExpression())
	}
	return args
}

func (p *Parser) parsePrimary() ast.Expr {
	pos := p.current().Pos

	switch {
	case p.match(token.NUMBER):
		n, _ := strconv.ParseInt(p.previous().Literal, 10, 64)
		return &ast.Literal{Pos: pos, ValueType: ast.LiteralInt, IntValue: n}
	case p.match(token.STRING):
		return &ast.Literal{Pos: pos, ValueType: ast.LiteralStr, StrValue: p.previous().Literal}
	case p.match(token.BOOLEAN):
		return &ast.Literal{Pos: pos, ValueType: ast.LiteralBool, BoolValue: p.previous().Literal == "true"}
	case p.match(token.THIS):
		return &ast.Identifier{Pos: pos, Name: "this"}
	case p.match(token.LPAREN):
		return p.parseParenOrTuple(pos)
	case p.match(token.LBRACKET):
		var elems []ast.Expr
		if !p.check(token.RBRACKET) {
			elems = append(elems, p.parseExpression())
			for p.match(token.COMMA) {
				elems = append(elems, p.parseExpression())
			}
		}
		p.expect(token.RBRACKET, "expected ']' to close array literal")
		return &ast.ArrayLiteral{Pos: pos, Elements: elems}
	case p.match(token.PIPE):
		return p.parseLambda(pos)
	case p.match(token.SOME):
		p.expect(token.LPAREN, "expected '(' after Some")
		arg := p.parseExpression()
		p.expect(token.RPAREN, "expected ')' after Some argument")
		return &ast.EnumVariant{Pos: pos, EnumType: "Option", Variant: "Some", Kind: ast.VariantTuple, TupleArgs: []ast.Expr{arg}}
	case p.match(token.NONE):
		return &ast.EnumVariant{Pos: pos, EnumType: "Option", Variant: "None", Kind: ast.VariantUnit}
	case p.match(token.OK):
		p.expect(token.LPAREN, "expected '(' after Ok")
		arg := p.parseExpression()
		p.expect(token.RPAREN, "expected ')' after Ok argument")
		return &ast.EnumVariant{Pos: pos, EnumType: "Result", Variant: "Ok", Kind: ast.VariantTuple, TupleArgs: []ast.Expr{arg}}
	case p.match(token.ERR):
		p.expect(token.LPAREN, "expected '(' after Err")
		arg := p.parseExpression()
		p.expect(token.RPAREN, "expected ')' after Err argument")
		return &ast.EnumVariant{Pos: pos, EnumType: "Result", Variant: "Err", Kind: ast.VariantTuple, TupleArgs: []ast.Expr{arg}}
	case p.check(token.IDENTIFIER):
		return p.parseIdentifierLed(pos)
	}

	p.fail("expected an expression")
	return nil
}

func (p *Parser) parseParenOrTuple(pos token.Position) ast.Expr {
	if p.match(token.RPAREN) {
		return &ast.TupleLiteral{Pos: pos}
	}
	first := p.parseExpression()
	if p.match(token.COMMA) {
		elems := []ast.Expr{first}
		for !p.check(token.RPAREN) {
			elems = append(elems, p.parseExpression())
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.RPAREN, "expected ')' to close tuple literal")
		return &ast.TupleLiteral{Pos: pos, Elements: elems}
	}
	p.expect(token.RPAREN, "expected ')' to close parenthesized expression")
	return first
}

func (p *Parser) parseLambda(pos token.Position) ast.Expr {
	var params []string
	if !p.check(token.PIPE) {
		params = append(params, p.expect(token.IDENTIFIER, "expected a parameter name").Literal)
		for p.match(token.COMMA) {
			params = append(params, p.expect(token.IDENTIFIER, "expected a parameter name").Literal)
		}
	}
	p.expect(token.PIPE, "expected '|' to close lambda parameter list")

	var body *ast.Block
	if p.match(token.COLON) {
		body = p.parseBlock()
	} else {
		// `|x| e` lowers to `|x|: return e` per the design notes.
		e := p.parseExpression()
		body = &ast.Block{Statements: []ast.Stmt{&ast.ReturnStmt{Pos: e.Position(), Value: e}}}
	}
	return &ast.LambdaExpr{Pos: pos, Params: params, Body: body}
}

// parseIdentifierLed handles the Name-led expression forms: struct-init
// (Name { ... }), enum-variant construction (Name::Variant ...), and plain
// identifiers (postfix call/member/index chains are applied by the caller).
func (p *Parser) parseIdentifierLed(pos token.Position) ast.Expr {
	name := p.advance().Literal

	if p.check(token.LBRACE) {
		p.advance()
		fields := p.parseStructInitFields()
		p.expect(token.RBRACE, "expected '}' to close struct literal")
		return &ast.StructInit{Pos: pos, StructName: name, Fields: fields}
	}

	if p.match(token.COLONCOLON) {
		variant := p.expect(token.IDENTIFIER, "expected a variant name").Literal
		if p.match(token.LBRACE) {
			fields := p.parseStructInitFields()
			p.expect(token.RBRACE, "expected '}' to close enum variant literal")
			return &ast.EnumVariant{Pos: pos, EnumType: name, Variant: variant, Kind: ast.VariantStruct, StructFields: fields}
		}
		if p.match(token.LPAREN) {
			args := p.parseArgList(token.RPAREN)
			p.expect(token.RPAREN, "expected ')' to close enum variant arguments")
			return &ast.EnumVariant{Pos: pos, EnumType: name, Variant: variant, Kind: ast.VariantTuple, TupleArgs: args}
		}
		return &ast.EnumVariant{Pos: pos, EnumType: name, Variant: variant, Kind: ast.VariantUnit}
	}

	return &ast.Identifier{Pos: pos, Name: name}
}

func (p *Parser) parseStructInitFields() []ast.StructInitField {
	var fields []ast.StructInitField
	if p.check(token.RBRACE) {
		return fields
	}
	fields = append(fields, p.parseStructInitField())
	for p.match(token.COMMA) {
		if p.check(token.RBRACE) {
			break
		}
		fields = append(fields, p.parseStructInitField())
	}
	return fields
}

func (p *Parser) parseStructInitField() ast.StructInitField {
	name := p.expect(token.IDENTIFIER, "expected a field name").Literal
	p.expect(token.COLON, "expected ':' after field name")
	return ast.StructInitField{Name: name, Value: p.parseExpression()}
}

// --------------------------------------------------------------- Helpers

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(k token.Kind) bool {
	return !p.atEnd() && p.current().Kind == k
}

func (p *Parser) expect(k token.Kind, msg string) token.Token {
	if !p.check(k) {
		p.fail(msg)
	}
	tok := p.current()
	p.advance()
	return tok
}

func (p *Parser) advance() token.Token {
	tok := p.current()
	if !p.atEnd() {
		p.idx++
	}
	return tok
}

func (p *Parser) atEnd() bool {
	return p.current().Kind == token.EOF
}

func (p *Parser) current() token.Token {
	return p.tokens[p.idx]
}

func (p *Parser) previous() token.Token {
	if p.idx > 0 {
		return p.tokens[p.idx-1]
	}
	return p.current()
}

func (p *Parser) peekKind(offset int) token.Kind {
	i := p.idx + offset
	if i >= len(p.tokens) {
		return token.EOF
	}
	return p.tokens[i].Kind
}

func (p *Parser) fail(msg string) {
	tok := p.current()
	panic(&Error{Pos: tok.Pos, Message: fmt.Sprintf("%s (found %s %q)", msg, tok.Kind, tok.Lexeme)})
}
