package ast

import "strings"

// IsPrimitive reports whether t is one of int, str, bool — the only types
// whose bindings are never subject to the move rules.
func (t Type) IsPrimitive() bool {
	return t == "int" || t == "str" || t == "bool"
}

// IsArray reports whether t is an array type "[T]" and, if so, returns its
// element type.
func (t Type) IsArray() (elem Type, ok bool) {
	s := string(t)
	if len(s) >= 2 && s[0] == '[' && s[len(s)-1] == ']' {
		return Type(s[1 : len(s)-1]), true
	}
	return "", false
}

// IsTuple reports whether t is a tuple type "(T1, T2, ...)" and, if so,
// returns its element types.
func (t Type) IsTuple() (elems []Type, ok bool) {
	s := string(t)
	if len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		inner := s[1 : len(s)-1]
		if strings.TrimSpace(inner) == "" {
			return nil, true
		}
		for _, part := range splitTopLevel(inner) {
			elems = append(elems, Type(strings.TrimSpace(part)))
		}
		return elems, true
	}
	return nil, false
}

// GenericBase returns the base name of a (possibly generic) nominal type:
// "Box<str>" -> "Box", "Point" -> "Point". Array, tuple and primitive types
// return themselves unchanged.
func (t Type) GenericBase() Type {
	s := string(t)
	if len(s) > 0 && (s[0] == '[' || s[0] == '(') {
		return t
	}
	if i := strings.IndexByte(s, '<'); i >= 0 {
		return Type(s[:i])
	}
	return t
}

// GenericArgs returns the comma-separated argument list text between the
// angle brackets of a generic nominal type, e.g. "Box<str>" -> ["str"],
// "Pair<int, str>" -> ["int", "str"]. Returns nil if t is not generic.
func (t Type) GenericArgs() []Type {
	s := string(t)
	start := strings.IndexByte(s, '<')
	end := strings.LastIndexByte(s, '>')
	if start < 0 || end < 0 || end < start {
		return nil
	}
	inner := s[start+1 : end]
	var args []Type
	for _, part := range splitTopLevel(inner) {
		args = append(args, Type(strings.TrimSpace(part)))
	}
	return args
}

// splitTopLevel splits s on commas that are not nested inside (), [] or <>.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '<':
			depth++
		case ')', ']', '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// TypesEqual compares two canonical type strings bytewise, with "any"
// matching anything on either side.
func TypesEqual(a, b Type) bool {
	if a == AnyType || b == AnyType {
		return true
	}
	return a == b
}

// ArrayType builds the canonical "[T]" form.
func ArrayType(elem Type) Type { return Type("[" + string(elem) + "]") }

// TupleType builds the canonical "(T1, T2, ...)" form.
func TupleType(elems []Type) Type {
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = string(e)
	}
	return Type("(" + strings.Join(parts, ", ") + ")")
}

// GenericType builds the canonical "Name<T1, T2>" form.
func GenericType(name string, args []Type) Type {
	if len(args) == 0 {
		return Type(name)
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = string(a)
	}
	return Type(name + "<" + strings.Join(parts, ", ") + ">")
}
