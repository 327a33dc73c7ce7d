// Package analyzer implements a two-pass static analysis: Pass A registers
// top-level definitions and the standard-library signatures; Pass B
// type-checks every statement and enforces move/mutability discipline,
// accumulating diagnostic strings rather than raising.
package analyzer

import (
	"fmt"

	"minilang/internal/ast"
)

// Analyzer holds the definitions registered by Pass A and the diagnostics
// accumulated by Pass B.
type Analyzer struct {
	structs map[string]*ast.StructDef
	enums   map[string]*ast.EnumDef
	traits  map[string]*ast.TraitDef
	impls   []*ast.ImplBlock
	funcs   map[string]*ast.FunctionDef
	externs map[string]*ast.ExternFn

	diagnostics     []string
	returnTypeStack []ast.Type
}

// Analyze runs both passes over program and returns the accumulated
// diagnostics; it never throws on source-level issues.
func Analyze(program *ast.Program) []string {
	a := &Analyzer{
		structs: make(map[string]*ast.StructDef),
		enums:   make(map[string]*ast.EnumDef),
		traits:  make(map[string]*ast.TraitDef),
		funcs:   make(map[string]*ast.FunctionDef),
		externs: make(map[string]*ast.ExternFn),
	}
	a.registerDefs(program)
	a.checkDefs()
	a.checkTopLevel(program)
	return a.diagnostics
}

func (a *Analyzer) diagf(format string, args ...any) {
	a.diagnostics = append(a.diagnostics, fmt.Sprintf(format, args...))
}

// ------------------------------------------------------------------ Pass A

func (a *Analyzer) registerDefs(program *ast.Program) {
	for _, stmt := range program.Statements {
		switch d := stmt.(type) {
		case *ast.StructDef:
			if _, dup := a.structs[d.Name]; dup {
				a.diagf("duplicate struct '%s' at %s", d.Name, d.Pos)
			}
			a.structs[d.Name] = d
		case *ast.EnumDef:
			if _, dup := a.enums[d.Name]; dup {
				a.diagf("duplicate enum '%s' at %s", d.Name, d.Pos)
			}
			a.enums[d.Name] = d
		case *ast.TraitDef:
			if _, dup := a.traits[d.Name]; dup {
				a.diagf("duplicate trait '%s' at %s", d.Name, d.Pos)
			}
			a.traits[d.Name] = d
		case *ast.ImplBlock:
			a.impls = append(a.impls, d)
		case *ast.FunctionDef:
			if _, dup := a.funcs[d.Name]; dup {
				a.diagf("duplicate function '%s' at %s", d.Name, d.Pos)
			}
			a.funcs[d.Name] = d
		case *ast.ExternFn:
			a.externs[d.Name] = d
		}
	}
}

// ------------------------------------------------------------------ Pass B

// checkDefs type-checks the bodies of every registered function, impl
// method, in a fresh function scope.
func (a *Analyzer) checkDefs() {
	for _, fn := range a.funcs {
		a.checkFunctionBody(fn, newScope(nil), "")
	}
	for _, impl := range a.impls {
		for _, m := range impl.Methods {
			a.checkFunctionBody(m, newScope(nil), impl.TargetType)
		}
	}
}

func (a *Analyzer) checkFunctionBody(fn *ast.FunctionDef, parent *Scope, thisType ast.Type) {
	scope := newScope(parent)
	if thisType != "" {
		scope.define("this", &binding{Type: thisType, Mutable: false})
	}
	for _, p := range fn.Params {
		scope.define(p.Name, &binding{Type: p.Type, Mutable: false})
	}
	a.returnTypeStack = append(a.returnTypeStack, fn.ReturnType)
	a.checkBlock(fn.Body, scope)
	a.returnTypeStack = a.returnTypeStack[:len(a.returnTypeStack)-1]
}

// checkTopLevel visits the non-definition top-level statements in source
// order against a single shared global scope, matching the interpreter's
// own pass 2.
func (a *Analyzer) checkTopLevel(program *ast.Program) {
	global := newScope(nil)
	for _, stmt := range program.Statements {
		switch stmt.(type) {
		case *ast.StructDef, *ast.EnumDef, *ast.TraitDef, *ast.ImplBlock, *ast.FunctionDef, *ast.ExternFn:
			continue
		default:
			a.checkStmt(stmt, global)
		}
	}
}

func (a *Analyzer) currentReturnType() ast.Type {
	if len(a.returnTypeStack) == 0 {
		return ""
	}
	return a.returnTypeStack[len(a.returnTypeStack)-1]
}

func (a *Analyzer) checkBlock(b *ast.Block, scope *Scope) {
	inner := newScope(scope)
	for _, s := range b.Statements {
		a.checkStmt(s, inner)
	}
}

func (a *Analyzer) checkStmt(stmt ast.Stmt, scope *Scope) {
	switch s := stmt.(type) {
	case *ast.FunctionDef:
		a.checkFunctionBody(s, scope, "")
	case *ast.VarDecl:
		a.checkVarDecl(s, scope)
	case *ast.DestructuringAssign:
		a.exprType(s.Init, scope, true)
		for _, n := range s.Names {
			scope.define(n, &binding{Type: ast.AnyType, Mutable: s.Mutable})
		}
	case *ast.Assignment:
		b, ok := scope.lookup(s.Name)
		if !ok {
			a.diagf("undefined name '%s' at %s", s.Name, s.Pos)
		} else if b.Moved {
			a.diagf("Use of moved value '%s' at %s", s.Name, s.Pos)
		} else if !b.Mutable {
			a.diagf("cannot assign to immutable binding '%s' at %s", s.Name, s.Pos)
		}
		valType := a.exprType(s.Value, scope, true)
		if ok && !compatibleAssign(b.Type, valType) {
			a.diagf("type mismatch in assignment to '%s' at %s: expected %s, got %s", s.Name, s.Pos, b.Type, valType)
		}
	case *ast.IfStmt:
		a.checkCondition(s.Condition, scope, s.Pos.String())
		a.checkBlock(s.Then, scope)
		if s.Else != nil {
			a.checkStmt(s.Else, scope)
		}
	case *ast.WhileStmt:
		a.checkCondition(s.Condition, scope, s.Pos.String())
		a.checkBlock(s.Body, scope)
	case *ast.ForStmt:
		iterType := a.exprType(s.Iterator, scope, false)
		var itemType ast.Type = ast.AnyType
		if elem, ok := iterType.IsArray(); ok {
			itemType = elem
		} else if iterType == "str" {
			itemType = "str"
		} else if iterType != ast.AnyType {
			a.diagf("cannot iterate over type %s at %s", iterType, s.Pos)
		}
		inner := newScope(scope)
		inner.define(s.Item, &binding{Type: itemType, Mutable: false})
		a.checkBlock(s.Body, inner)
	case *ast.ReturnStmt:
		if s.Value == nil {
			return
		}
		// Returning a value does not move it.
		valType := a.exprType(s.Value, scope, false)
		if rt := a.currentReturnType(); rt != "" && !compatibleAssign(rt, valType) {
			a.diagf("return type mismatch at %s: expected %s, got %s", s.Pos, rt, valType)
		}
	case *ast.MatchStmt:
		a.checkMatch(s, scope)
	case *ast.ExpressionStatement:
		a.exprType(s.Expr, scope, false)
	case *ast.Block:
		a.checkBlock(s, scope)
	}
}

func (a *Analyzer) checkCondition(cond ast.Expr, scope *Scope, pos string) {
	t := a.exprType(cond, scope, false)
	if t != "bool" && t != ast.AnyType {
		a.diagf("non-bool condition at %s: got %s", pos, t)
	}
}

func (a *Analyzer) checkVarDecl(v *ast.VarDecl, scope *Scope) {
	var initType ast.Type = ast.AnyType
	if v.Init != nil {
		initType = a.exprType(v.Init, scope, true)
	}
	bindingType := initType
	if v.DeclaredType != "" {
		if v.Init != nil && !compatibleAssign(v.DeclaredType, initType) {
			a.diagf("type mismatch in let '%s' at %s: expected %s, got %s", v.Name, v.Pos, v.DeclaredType, initType)
		}
		bindingType = v.DeclaredType
	}
	scope.define(v.Name, &binding{Type: bindingType, Mutable: v.Mutable})
}

func (a *Analyzer) checkMatch(m *ast.MatchStmt, scope *Scope) {
	// Matching on a value moves it.
	subjectType := a.exprType(m.Subject, scope, true)
	for _, c := range m.Cases {
		caseScope := newScope(scope)
		a.bindPattern(c.Pattern, subjectType, caseScope)
		a.checkStmt(c.Body, caseScope)
	}
}

func (a *Analyzer) bindPattern(p ast.Pattern, subjectType ast.Type, scope *Scope) {
	switch pat := p.(type) {
	case *ast.WildcardPattern, *ast.LiteralPattern:
		// no bindings
	case *ast.IdentifierPattern:
		scope.define(pat.Name, &binding{Type: subjectType, Mutable: false})
	case *ast.EnumPattern:
		if pat.EnumName == "" {
			family := "Option"
			if pat.Variant == "Ok" || pat.Variant == "Err" {
				family = "Result"
			}
			if subjectType.GenericBase() != ast.Type(family) && subjectType != ast.AnyType {
				a.diagf("enum pattern '%s' does not match subject type %s at %s", pat.Variant, subjectType, pat.Pos)
			}
			if pat.InnerBind != "" {
				scope.define(pat.InnerBind, &binding{Type: ast.AnyType, Mutable: false})
			}
			return
		}
		if subjectType != ast.Type(pat.EnumName) && subjectType != ast.AnyType {
			a.diagf("enum pattern '%s::%s' does not match subject type %s at %s", pat.EnumName, pat.Variant, subjectType, pat.Pos)
		}
		for _, f := range pat.DestructFields {
			scope.define(f, &binding{Type: ast.AnyType, Mutable: false})
		}
	}
}

// ----------------------------------------------------------- Expressions

// exprType computes the static type of expr, appending diagnostics as it
// goes. When move is true, a full-value read of a non-primitive Identifier
// poisons the binding — this applies to struct-init field values, call
// arguments, match subjects (computed via checkMatch, not here), and the
// RHS of assignments/var-decls.
func (a *Analyzer) exprType(expr ast.Expr, scope *Scope, move bool) ast.Type {
	switch e := expr.(type) {
	case *ast.Literal:
		switch e.ValueType {
		case ast.LiteralInt:
			return "int"
		case ast.LiteralStr:
			return "str"
		default:
			return "bool"
		}
	case *ast.Identifier:
		b, ok := scope.lookup(e.Name)
		if !ok {
			a.diagf("undefined name '%s' at %s", e.Name, e.Pos)
			return ast.AnyType
		}
		if b.Moved {
			a.diagf("Use of moved value '%s' at %s", e.Name, e.Pos)
		}
		if move && !b.Type.IsPrimitive() {
			b.Moved = true
		}
		return b.Type
	case *ast.BinaryExpr:
		return a.binaryExprType(e, scope)
	case *ast.CallExpr:
		return a.callExprType(e, scope)
	case *ast.MemberAccess:
		return a.memberAccessType(e, scope)
	case *ast.IndexExpr:
		return a.indexExprType(e, scope)
	case *ast.ArrayLiteral:
		if len(e.Elements) == 0 {
			return ast.ArrayType(ast.AnyType)
		}
		elemType := a.exprType(e.Elements[0], scope, false)
		for _, el := range e.Elements[1:] {
			a.exprType(el, scope, false)
		}
		return ast.ArrayType(elemType)
	case *ast.TupleLiteral:
		elems := make([]ast.Type, len(e.Elements))
		for i, el := range e.Elements {
			elems[i] = a.exprType(el, scope, false)
		}
		return ast.TupleType(elems)
	case *ast.StructInit:
		return a.structInitType(e, scope)
	case *ast.EnumVariant:
		return a.enumVariantType(e, scope)
	case *ast.Borrow:
		return a.exprType(e.Expr, scope, false)
	case *ast.LambdaExpr:
		inner := newScope(scope)
		for _, p := range e.Params {
			inner.define(p, &binding{Type: ast.AnyType, Mutable: false})
		}
		a.returnTypeStack = append(a.returnTypeStack, "")
		a.checkBlock(e.Body, inner)
		a.returnTypeStack = a.returnTypeStack[:len(a.returnTypeStack)-1]
		return ast.AnyType
	}
	return ast.AnyType
}

func (a *Analyzer) binaryExprType(e *ast.BinaryExpr, scope *Scope) ast.Type {
	left := a.exprType(e.Left, scope, false)
	right := a.exprType(e.Right, scope, false)

	switch e.Op {
	case ast.OpEq, ast.OpNeq, ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		return "bool"
	case ast.OpAdd:
		if left == "str" || right == "str" {
			return "str"
		}
	}
	if !compatibleAssign(left, right) {
		a.diagf("type mismatch at %s: %s vs %s", e.Pos, left, right)
		return left
	}
	if left == ast.AnyType {
		return right
	}
	return left
}

func (a *Analyzer) callExprType(e *ast.CallExpr, scope *Scope) ast.Type {
	switch callee := e.Callee.(type) {
	case *ast.Identifier:
		argTypes := make([]ast.Type, len(e.Args))
		for i, arg := range e.Args {
			// print reads its argument without consuming it, same as a
			// method receiver or field read.
			move := callee.Name != "print"
			argTypes[i] = a.exprType(arg, scope, move)
		}
		if stdlibNames[callee.Name] {
			return a.stdlibCallType(callee.Name, argTypes, e.Pos.String())
		}
		if fn, ok := a.funcs[callee.Name]; ok {
			if len(fn.Params) != len(e.Args) {
				a.diagf("wrong number of arguments to '%s' at %s: expected %d, got %d", fn.Name, e.Pos, len(fn.Params), len(e.Args))
			} else {
				for i, p := range fn.Params {
					if !compatibleAssign(p.Type, argTypes[i]) {
						a.diagf("type mismatch for argument %d of '%s' at %s: expected %s, got %s", i+1, fn.Name, e.Pos, p.Type, argTypes[i])
					}
				}
			}
			return fn.ReturnType
		}
		if scope.has(callee.Name) {
			// A local value (e.g. a captured lambda). The type grammar has
			// no function-type form, so arity/types can't be checked here.
			return ast.AnyType
		}
		a.diagf("undefined function '%s' at %s", callee.Name, e.Pos)
		return ast.AnyType
	case *ast.MemberAccess:
		receiverType := a.exprType(callee.Object, scope, false)
		argTypes := make([]ast.Type, len(e.Args))
		for i, arg := range e.Args {
			argTypes[i] = a.exprType(arg, scope, true)
		}
		method, ok := a.findImplMethod(receiverType, callee.Field)
		if !ok {
			if receiverType != ast.AnyType {
				a.diagf("method '%s' not found for type %s at %s", callee.Field, receiverType, e.Pos)
			}
			return ast.AnyType
		}
		if len(method.Params) != len(e.Args) {
			a.diagf("wrong number of arguments to '%s' at %s: expected %d, got %d", callee.Field, e.Pos, len(method.Params), len(e.Args))
		} else {
			for i, p := range method.Params {
				if !compatibleAssign(p.Type, argTypes[i]) {
					a.diagf("type mismatch for argument %d of '%s' at %s: expected %s, got %s", i+1, callee.Field, e.Pos, p.Type, argTypes[i])
				}
			}
		}
		return method.ReturnType
	}
	return ast.AnyType
}

// findImplMethod is the analyzer's static dispatch rule: an exact
// type-string match against an impl's target type, not the interpreter's
// looser runtime prefix match.
func (a *Analyzer) findImplMethod(targetType ast.Type, name string) (*ast.FunctionDef, bool) {
	for _, impl := range a.impls {
		if impl.TargetType != targetType {
			continue
		}
		for _, m := range impl.Methods {
			if m.Name == name {
				return m, true
			}
		}
	}
	return nil, false
}

func (a *Analyzer) memberAccessType(e *ast.MemberAccess, scope *Scope) ast.Type {
	objType := a.exprType(e.Object, scope, false)
	base := objType.GenericBase()
	sd, ok := a.structs[string(base)]
	if !ok {
		if objType != ast.AnyType {
			a.diagf("unknown struct '%s' at %s", objType, e.Pos)
		}
		return ast.AnyType
	}
	for _, f := range sd.Fields {
		if f.Name != e.Field {
			continue
		}
		if sd.GenericParam != "" && f.Type == ast.Type(sd.GenericParam) {
			if args := objType.GenericArgs(); len(args) > 0 {
				return args[0]
			}
			return ast.AnyType
		}
		return f.Type
	}
	a.diagf("unknown field '%s' on struct '%s' at %s", e.Field, sd.Name, e.Pos)
	return ast.AnyType
}

func (a *Analyzer) indexExprType(e *ast.IndexExpr, scope *Scope) ast.Type {
	objType := a.exprType(e.Object, scope, false)
	idxType := a.exprType(e.Index, scope, false)
	if idxType != "int" && idxType != ast.AnyType {
		a.diagf("index must be of type int at %s, got %s", e.Pos, idxType)
	}
	if elem, ok := objType.IsArray(); ok {
		return elem
	}
	if objType == "str" {
		return "str"
	}
	if objType == ast.AnyType {
		return ast.AnyType
	}
	a.diagf("invalid index on type %s at %s", objType, e.Pos)
	return ast.AnyType
}

func (a *Analyzer) structInitType(e *ast.StructInit, scope *Scope) ast.Type {
	sd, ok := a.structs[e.StructName]
	if !ok {
		a.diagf("unknown struct '%s' at %s", e.StructName, e.Pos)
		for _, f := range e.Fields {
			a.exprType(f.Value, scope, true)
		}
		return ast.Type(e.StructName)
	}

	seen := make(map[string]bool)
	for _, f := range e.Fields {
		seen[f.Name] = true
		valType := a.exprType(f.Value, scope, true)

		var declared ast.Type
		found := false
		for _, sf := range sd.Fields {
			if sf.Name == f.Name {
				declared, found = sf.Type, true
				break
			}
		}
		if !found {
			a.diagf("unknown field '%s' on struct '%s' at %s", f.Name, e.StructName, e.Pos)
			continue
		}
		if sd.GenericParam != "" && declared == ast.Type(sd.GenericParam) {
			continue // generic field: accept any initializer type
		}
		if !compatibleAssign(declared, valType) {
			a.diagf("type mismatch for field '%s' of struct '%s' at %s: expected %s, got %s", f.Name, e.StructName, e.Pos, declared, valType)
		}
	}
	for _, sf := range sd.Fields {
		if !seen[sf.Name] {
			a.diagf("missing field '%s' in struct literal for '%s' at %s", sf.Name, e.StructName, e.Pos)
		}
	}
	return ast.Type(sd.Name)
}

// enumVariantType checks struct-like user-enum variants against the enum
// definition; tuple-like variants are parsed but treated as unit by the
// analyzer, so their arguments are walked only to catch nested errors, not
// validated against declared field types.
func (a *Analyzer) enumVariantType(e *ast.EnumVariant, scope *Scope) ast.Type {
	for _, arg := range e.TupleArgs {
		a.exprType(arg, scope, true)
	}

	ed, ok := a.enums[e.EnumType]
	if !ok {
		// Option/Result sugar, or a reference to an undeclared enum.
		for _, f := range e.StructFields {
			a.exprType(f.Value, scope, true)
		}
		if e.EnumType != "Option" && e.EnumType != "Result" {
			a.diagf("unknown enum '%s' at %s", e.EnumType, e.Pos)
		}
		return ast.Type(e.EnumType)
	}

	var variant *ast.EnumVariantDef
	for i := range ed.Variants {
		if ed.Variants[i].Name == e.Variant {
			variant = &ed.Variants[i]
			break
		}
	}
	if variant == nil {
		a.diagf("enum '%s' has no variant '%s' at %s", e.EnumType, e.Variant, e.Pos)
		for _, f := range e.StructFields {
			a.exprType(f.Value, scope, true)
		}
		return ast.Type(e.EnumType)
	}

	if variant.Kind == ast.VariantStruct {
		seen := make(map[string]bool)
		for _, f := range e.StructFields {
			seen[f.Name] = true
			valType := a.exprType(f.Value, scope, true)
			found := false
			for _, vf := range variant.Fields {
				if vf.Name == f.Name {
					found = true
					if !compatibleAssign(vf.Type, valType) {
						a.diagf("type mismatch for field '%s' of %s::%s at %s: expected %s, got %s", f.Name, e.EnumType, e.Variant, e.Pos, vf.Type, valType)
					}
					break
				}
			}
			if !found {
				a.diagf("unknown field '%s' on %s::%s at %s", f.Name, e.EnumType, e.Variant, e.Pos)
			}
		}
		for _, vf := range variant.Fields {
			if !seen[vf.Name] {
				a.diagf("missing field '%s' in %s::%s literal at %s", vf.Name, e.EnumType, e.Variant, e.Pos)
			}
		}
	} else {
		for _, f := range e.StructFields {
			a.exprType(f.Value, scope, true)
		}
	}

	return ast.Type(e.EnumType)
}

// compatibleAssign is the analyzer's sole type-compatibility rule: identical
// canonical strings, the "any" wildcard, or the same generic base name —
// the latter lets a bare StructInit result ("Box") satisfy a
// fully-instantiated annotation ("Box<str>"), since struct literals carry
// no generic-argument syntax of their own.
func compatibleAssign(declared, actual ast.Type) bool {
	if ast.TypesEqual(declared, actual) {
		return true
	}
	return declared.GenericBase() == actual.GenericBase()
}
