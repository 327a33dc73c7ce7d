package interp

import (
	"strconv"
)

// callBuiltin implements the six standard-library functions, each with its
// own bespoke argument handling rather than one uniform calling convention.
func (it *Interpreter) callBuiltin(name string, args []Value) Value {
	switch name {
	case "print":
		if len(args) != 1 {
			it.fail("print expects 1 argument, got %d", len(args))
		}
		it.output(args[0].String())
		return NullValue{}

	case "len":
		if len(args) != 1 {
			it.fail("len expects 1 argument, got %d", len(args))
		}
		switch v := args[0].(type) {
		case *ArrayValue:
			return IntValue(len(v.Elements))
		case StrValue:
			return IntValue(len(string(v)))
		default:
			it.fail("len expects an array or str, got %s", v.String())
			return nil
		}

	case "range":
		if len(args) != 1 {
			it.fail("range expects 1 argument, got %d", len(args))
		}
		n, ok := args[0].(IntValue)
		if !ok {
			it.fail("range expects an int, got %s", args[0].String())
		}
		elems := make([]Value, 0, n)
		for i := IntValue(0); i < n; i++ {
			elems = append(elems, i)
		}
		return &ArrayValue{Elements: elems}

	case "to_string":
		if len(args) != 1 {
			it.fail("to_string expects 1 argument, got %d", len(args))
		}
		return StrValue(args[0].String())

	case "to_int":
		if len(args) != 1 {
			it.fail("to_int expects 1 argument, got %d", len(args))
		}
		switch v := args[0].(type) {
		case IntValue:
			return v
		case StrValue:
			n, err := strconv.ParseInt(string(v), 10, 64)
			if err != nil {
				it.fail("to_int: cannot parse %q as an int", string(v))
			}
			return IntValue(n)
		case BoolValue:
			if v {
				return IntValue(1)
			}
			return IntValue(0)
		default:
			it.fail("to_int cannot convert %s", v.String())
			return nil
		}

	case "alert":
		if len(args) != 1 {
			it.fail("alert expects 1 argument, got %d", len(args))
		}
		msg, ok := args[0].(StrValue)
		if !ok {
			it.fail("alert expects a str, got %s", args[0].String())
		}
		if fn, ok := it.externs["alert"]; ok {
			return fn(args)
		}
		it.output("[ALERT] " + string(msg))
		return NullValue{}

	default:
		it.fail("unknown builtin: %s", name)
		return nil
	}
}
