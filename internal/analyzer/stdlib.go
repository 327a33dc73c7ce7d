package analyzer

import "minilang/internal/ast"

// stdlibNames are the standard-library function names injected by Pass A
// so ordinary undefined-name checks don't fire on them.
var stdlibNames = map[string]bool{
	"print":     true,
	"len":       true,
	"range":     true,
	"to_string": true,
	"to_int":    true,
	"alert":     true,
}

// stdlibCallType computes the result type of a call to a standard-library
// function and records any arity/type diagnostics. Each stdlib function
// has bespoke rules rather than a single uniform signature, since
// print/len accept more than one shape of argument.
func (a *Analyzer) stdlibCallType(name string, args []ast.Type, pos string) ast.Type {
	switch name {
	case "print":
		if len(args) != 1 {
			a.diagf("wrong number of arguments to 'print' at %s: expected 1, got %d", pos, len(args))
		}
		return "any"
	case "len":
		if len(args) != 1 {
			a.diagf("wrong number of arguments to 'len' at %s: expected 1, got %d", pos, len(args))
			return "int"
		}
		if _, ok := args[0].IsArray(); !ok && args[0] != "str" && args[0] != ast.AnyType {
			a.diagf("'len' expects an array or str at %s, got %s", pos, args[0])
		}
		return "int"
	case "range":
		if len(args) != 1 {
			a.diagf("wrong number of arguments to 'range' at %s: expected 1, got %d", pos, len(args))
		} else if !compatibleAssign("int", args[0]) {
			a.diagf("'range' expects int at %s, got %s", pos, args[0])
		}
		return ast.ArrayType("int")
	case "to_string":
		if len(args) != 1 {
			a.diagf("wrong number of arguments to 'to_string' at %s: expected 1, got %d", pos, len(args))
		}
		return "str"
	case "to_int":
		if len(args) != 1 {
			a.diagf("wrong number of arguments to 'to_int' at %s: expected 1, got %d", pos, len(args))
		}
		return "int"
	case "alert":
		if len(args) != 1 {
			a.diagf("wrong number of arguments to 'alert' at %s: expected 1, got %d", pos, len(args))
		} else if !compatibleAssign("str", args[0]) {
			a.diagf("'alert' expects str at %s, got %s", pos, args[0])
		}
		return "any"
	}
	return ast.AnyType
}
