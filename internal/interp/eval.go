package interp

import "minilang/internal/ast"

var stdlibNames = map[string]bool{
	"print":     true,
	"len":       true,
	"range":     true,
	"to_string": true,
	"to_int":    true,
	"alert":     true,
}

// evalExpr evaluates expr in env. move is purely informational context
// carried from the caller, matching the analyzer's move-trigger positions;
// MOVE events themselves are emitted unconditionally on any identifier
// read of a non-primitive value, independent of move.
func (it *Interpreter) evalExpr(expr ast.Expr, env *Environment, move bool) Value {
	switch e := expr.(type) {
	case *ast.Literal:
		return it.literalValue(e)

	case *ast.Identifier:
		v, ok := env.Lookup(e.Name)
		if !ok {
			if _, ok := it.funcs[e.Name]; ok {
				return FunctionValue{Name: e.Name}
			}
			it.fail("undefined variable: %s", e.Name)
		}
		if !IsPrimitive(v) {
			it.emit(Event{Kind: EventMove, ScopeID: env.id, Name: e.Name, Value: v.String(), Moved: true})
		}
		return v

	case *ast.BinaryExpr:
		return it.evalBinary(e, env)

	case *ast.CallExpr:
		return it.evalCall(e, env)

	case *ast.MemberAccess:
		obj := it.evalExpr(e.Object, env, false)
		sv, ok := obj.(*StructValue)
		if !ok {
			it.fail("cannot access field %q on non-struct value %s", e.Field, obj.String())
		}
		v, ok := sv.Fields[e.Field]
		if !ok {
			it.fail("struct %s has no field %q", sv.TypeName, e.Field)
		}
		return v

	case *ast.IndexExpr:
		obj := it.evalExpr(e.Object, env, false)
		idx := it.evalExpr(e.Index, env, false)
		i, ok := idx.(IntValue)
		if !ok {
			it.fail("index must be an int, got %s", idx.String())
		}
		switch v := obj.(type) {
		case *ArrayValue:
			if int(i) < 0 || int(i) >= len(v.Elements) {
				it.fail("index %d out of range (length %d)", i, len(v.Elements))
			}
			return v.Elements[i]
		case *TupleValue:
			if int(i) < 0 || int(i) >= len(v.Elements) {
				it.fail("index %d out of range (length %d)", i, len(v.Elements))
			}
			return v.Elements[i]
		default:
			it.fail("value is not indexable: %s", obj.String())
			return nil
		}

	case *ast.ArrayLiteral:
		elems := make([]Value, len(e.Elements))
		for i, el := range e.Elements {
			elems[i] = it.evalExpr(el, env, false)
		}
		return &ArrayValue{Elements: elems}

	case *ast.TupleLiteral:
		elems := make([]Value, len(e.Elements))
		for i, el := range e.Elements {
			elems[i] = it.evalExpr(el, env, false)
		}
		return &TupleValue{Elements: elems}

	case *ast.StructInit:
		fields := make(map[string]Value, len(e.Fields))
		for _, f := range e.Fields {
			fields[f.Name] = it.evalExpr(f.Value, env, true)
		}
		return &StructValue{TypeName: e.StructName, Fields: fields}

	case *ast.EnumVariant:
		return it.evalEnumVariant(e, env)

	case *ast.Borrow:
		return it.evalExpr(e.Expr, env, false)

	case *ast.LambdaExpr:
		return &ClosureValue{Params: e.Params, Body: e.Body, Env: env}

	default:
		it.fail("unsupported expression: %T", expr)
		return nil
	}
}

func (it *Interpreter) evalEnumVariant(e *ast.EnumVariant, env *Environment) Value {
	switch e.Kind {
	case ast.VariantStruct:
		fields := make(map[string]Value, len(e.StructFields))
		for _, f := range e.StructFields {
			fields[f.Name] = it.evalExpr(f.Value, env, true)
		}
		return &EnumValue{EnumType: e.EnumType, Variant: e.Variant, Payload: fields}
	case ast.VariantTuple:
		args := make([]Value, len(e.TupleArgs))
		for i, a := range e.TupleArgs {
			args[i] = it.evalExpr(a, env, true)
		}
		return &EnumValue{EnumType: e.EnumType, Variant: e.Variant, Payload: args}
	default:
		return &EnumValue{EnumType: e.EnumType, Variant: e.Variant, Payload: nil}
	}
}

func (it *Interpreter) evalBinary(e *ast.BinaryExpr, env *Environment) Value {
	left := it.evalExpr(e.Left, env, false)
	right := it.evalExpr(e.Right, env, false)

	switch e.Op {
	case ast.OpEq:
		return BoolValue(ValuesEqual(left, right))
	case ast.OpNeq:
		return BoolValue(!ValuesEqual(left, right))
	}

	if ls, ok := left.(StrValue); ok && e.Op == ast.OpAdd {
		return StrValue(string(ls) + stringifyForConcat(right))
	}
	if rs, ok := right.(StrValue); ok && e.Op == ast.OpAdd {
		return StrValue(stringifyForConcat(left) + string(rs))
	}

	li, lok := left.(IntValue)
	ri, rok := right.(IntValue)
	if !lok || !rok {
		it.fail("operator %s expects two ints (or a str concat), got %s and %s", e.Op.String(), left.String(), right.String())
	}
	switch e.Op {
	case ast.OpAdd:
		return li + ri
	case ast.OpSub:
		return li - ri
	case ast.OpMul:
		return li * ri
	case ast.OpDiv:
		if ri == 0 {
			it.fail("division by zero")
		}
		return li / ri
	case ast.OpLt:
		return BoolValue(li < ri)
	case ast.OpGt:
		return BoolValue(li > ri)
	case ast.OpLe:
		return BoolValue(li <= ri)
	case ast.OpGe:
		return BoolValue(li >= ri)
	default:
		it.fail("unsupported binary operator: %s", e.Op.String())
		return nil
	}
}

// stringifyForConcat renders a non-string operand for `+` string
// concatenation, since bare `str + int` arises alongside the more common
// `"Total: " + to_string(n)` style.
func stringifyForConcat(v Value) string { return v.String() }

// evalCall resolves the callee: a method call (MemberAccess callee)
// dispatches dynamically via the receiver's runtime type tag; a plain
// identifier call tries, in order, a local closure binding, a stdlib
// builtin, a registered top-level function, then a host-bound extern.
func (it *Interpreter) evalCall(e *ast.CallExpr, env *Environment) Value {
	if ma, ok := e.Callee.(*ast.MemberAccess); ok {
		return it.evalMethodCall(ma, e.Args, env)
	}

	id, ok := e.Callee.(*ast.Identifier)
	if !ok {
		it.fail("call target must be a name or method access")
	}

	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		args[i] = it.evalExpr(a, env, true)
	}

	if v, ok := env.Lookup(id.Name); ok {
		if cl, ok := v.(*ClosureValue); ok {
			return it.callClosure(cl, args)
		}
	}

	if stdlibNames[id.Name] {
		return it.callBuiltin(id.Name, args)
	}

	if fn, ok := it.funcs[id.Name]; ok {
		return it.callFunction(fn, args, env, nil)
	}

	if _, ok := it.externDecls[id.Name]; ok {
		if impl, ok := it.externs[id.Name]; ok {
			return impl(args)
		}
		return NullValue{}
	}

	it.fail("undefined function: %s", id.Name)
	return nil
}

func (it *Interpreter) evalMethodCall(ma *ast.MemberAccess, argExprs []ast.Expr, env *Environment) Value {
	receiver := it.evalExpr(ma.Object, env, false)
	sv, ok := receiver.(*StructValue)
	if !ok {
		it.fail("cannot call method %q on non-struct value %s", ma.Field, receiver.String())
	}

	method, ok := it.findMethod(sv.TypeName, ma.Field)
	if !ok {
		it.fail("no method %q found for type %s", ma.Field, sv.TypeName)
	}

	args := make([]Value, len(argExprs))
	for i, a := range argExprs {
		args[i] = it.evalExpr(a, env, true)
	}
	return it.callFunction(method, args, env, sv)
}
