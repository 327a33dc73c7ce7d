package interp

import "minilang/internal/ast"

// execStmt interprets one statement. If/While bodies delegate to execBlock,
// which pushes a fresh environment on entry to each block; for loops and
// match arms push their own environments in execFor and execMatch.
func (it *Interpreter) execStmt(stmt ast.Stmt, env *Environment) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		var v Value = NullValue{}
		if s.Init != nil {
			v = it.evalExpr(s.Init, env, true)
		}
		env.Define(s.Name, v)

	case *ast.DestructuringAssign:
		v := it.evalExpr(s.Init, env, true)
		tup, ok := v.(*TupleValue)
		if !ok || len(tup.Elements) != len(s.Names) {
			it.fail("destructuring assignment expects a %d-tuple", len(s.Names))
		}
		for i, name := range s.Names {
			env.Define(name, tup.Elements[i])
		}

	case *ast.Assignment:
		v := it.evalExpr(s.Value, env, true)
		env.Assign(s.Name, v)

	case *ast.IfStmt:
		if IsTruthy(it.evalExpr(s.Condition, env, false)) {
			it.execBlock(s.Then, env)
		} else if s.Else != nil {
			switch e := s.Else.(type) {
			case *ast.Block:
				it.execBlock(e, env)
			default:
				it.execStmt(e, env)
			}
		}

	case *ast.WhileStmt:
		for IsTruthy(it.evalExpr(s.Condition, env, false)) {
			it.execBlock(s.Body, env)
		}

	case *ast.ForStmt:
		it.execFor(s, env)

	case *ast.ReturnStmt:
		var v Value = NullValue{}
		if s.Value != nil {
			v = it.evalExpr(s.Value, env, false)
		}
		panic(returnSignal{value: v})

	case *ast.MatchStmt:
		it.execMatch(s, env)

	case *ast.ExpressionStatement:
		it.evalExpr(s.Expr, env, false)

	case *ast.Block:
		it.execBlock(s, env)

	default:
		it.fail("unsupported statement: %T", stmt)
	}
}

// execBlock pushes exactly one fresh environment for an ordinary *ast.Block
// appearing as an If/While body.
func (it *Interpreter) execBlock(b *ast.Block, parent *Environment) {
	env := it.newEnvironment(parent)
	defer it.exitEnvironment(env)
	for _, s := range b.Statements {
		it.execStmt(s, env)
	}
}

// execFor pushes one fresh environment per iteration, so the loop item
// rebinds fresh each time, with Item defined directly in that environment.
func (it *Interpreter) execFor(s *ast.ForStmt, parent *Environment) {
	iter := it.evalExpr(s.Iterator, parent, true)
	for _, elem := range it.iterableElements(iter) {
		func() {
			env := it.newEnvironment(parent)
			defer it.exitEnvironment(env)
			env.Define(s.Item, elem)
			for _, stmt := range s.Body.Statements {
				it.execStmt(stmt, env)
			}
		}()
	}
}

// execMatch evaluates the subject (a move-triggering position, mirroring
// the analyzer's static rule) and runs the first arm whose pattern
// matches. Each arm tried gets its own fresh environment, entered before
// its pattern is tested and exited afterwards; the matching arm's body
// runs in that environment.
func (it *Interpreter) execMatch(m *ast.MatchStmt, parent *Environment) {
	subject := it.evalExpr(m.Subject, parent, true)
	for _, c := range m.Cases {
		env := it.newEnvironment(parent)
		if it.matchPattern(c.Pattern, subject, env) {
			defer it.exitEnvironment(env)
			switch body := c.Body.(type) {
			case *ast.Block:
				for _, stmt := range body.Statements {
					it.execStmt(stmt, env)
				}
			default:
				it.execStmt(body, env)
			}
			return
		}
		it.exitEnvironment(env)
	}
}

// matchPattern tests subject against pat, binding any captured names
// directly into env on success.
func (it *Interpreter) matchPattern(pat ast.Pattern, subject Value, env *Environment) bool {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return true

	case *ast.IdentifierPattern:
		env.Define(p.Name, subject)
		return true

	case *ast.LiteralPattern:
		return ValuesEqual(it.literalValue(p.Value), subject)

	case *ast.EnumPattern:
		ev, ok := subject.(*EnumValue)
		if !ok || ev.Variant != p.Variant {
			return false
		}
		if p.EnumName != "" && ev.EnumType != p.EnumName {
			return false
		}
		if p.InnerBind != "" {
			args, _ := ev.Payload.([]Value)
			if len(args) != 1 {
				return false
			}
			env.Define(p.InnerBind, args[0])
		}
		if len(p.DestructFields) > 0 {
			fields, _ := ev.Payload.(map[string]Value)
			for _, name := range p.DestructFields {
				v, ok := fields[name]
				if !ok {
					return false
				}
				env.Define(name, v)
			}
		}
		return true

	default:
		it.fail("unsupported pattern: %T", pat)
		return false
	}
}

func (it *Interpreter) literalValue(l *ast.Literal) Value {
	switch l.ValueType {
	case ast.LiteralInt:
		return IntValue(l.IntValue)
	case ast.LiteralStr:
		return StrValue(l.StrValue)
	case ast.LiteralBool:
		return BoolValue(l.BoolValue)
	default:
		return NullValue{}
	}
}
