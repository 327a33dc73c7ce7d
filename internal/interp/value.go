package interp

import (
	"fmt"
	"strings"

	"minilang/internal/ast"
)

// Kind tags the closed runtime-value sum.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindBool
	KindStr
	KindArray
	KindTuple
	KindStruct
	KindEnum
	KindClosure
	KindFunction
)

// Value is implemented by every runtime value. Primitive values are Int,
// Bool, Str and Null; everything else is non-primitive and subject to the
// move-event bookkeeping in the event trace.
type Value interface {
	Kind() Kind
	String() string
}

type NullValue struct{}

func (NullValue) Kind() Kind      { return KindNull }
func (NullValue) String() string  { return "null" }

type IntValue int64

func (IntValue) Kind() Kind          { return KindInt }
func (n IntValue) String() string    { return fmt.Sprintf("%d", int64(n)) }

type BoolValue bool

func (BoolValue) Kind() Kind         { return KindBool }
func (b BoolValue) String() string   { return fmt.Sprintf("%t", bool(b)) }

type StrValue string

func (StrValue) Kind() Kind        { return KindStr }
func (s StrValue) String() string  { return string(s) }

type ArrayValue struct {
	Elements []Value
}

func (*ArrayValue) Kind() Kind { return KindArray }
func (a *ArrayValue) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

type TupleValue struct {
	Elements []Value
}

func (*TupleValue) Kind() Kind { return KindTuple }
func (t *TupleValue) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// StructValue carries only its base type name at runtime — generic
// arguments are not retained on the instance, which is what makes the
// interpreter's dispatch a prefix match rather than an exact one.
type StructValue struct {
	TypeName string
	Fields   map[string]Value
}

func (*StructValue) Kind() Kind { return KindStruct }
func (s *StructValue) String() string {
	parts := make([]string, 0, len(s.Fields))
	for name, v := range s.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", name, v.String()))
	}
	return fmt.Sprintf("%s { %s }", s.TypeName, strings.Join(parts, ", "))
}

// EnumValue's Payload is nil for a unit variant, a []Value for a tuple
// variant, or a map[string]Value for a struct variant.
type EnumValue struct {
	EnumType string
	Variant  string
	Payload  any
}

func (*EnumValue) Kind() Kind { return KindEnum }
func (e *EnumValue) String() string {
	switch p := e.Payload.(type) {
	case []Value:
		parts := make([]string, len(p))
		for i, v := range p {
			parts[i] = v.String()
		}
		return fmt.Sprintf("%s::%s(%s)", e.EnumType, e.Variant, strings.Join(parts, ", "))
	case map[string]Value:
		parts := make([]string, 0, len(p))
		for name, v := range p {
			parts = append(parts, fmt.Sprintf("%s: %s", name, v.String()))
		}
		return fmt.Sprintf("%s::%s { %s }", e.EnumType, e.Variant, strings.Join(parts, ", "))
	default:
		return fmt.Sprintf("%s::%s", e.EnumType, e.Variant)
	}
}

// ClosureValue holds a lambda's parameter list, body, and the environment
// captured at the LambdaExpr evaluation site, giving it a true lexical
// closure unlike a named function call.
type ClosureValue struct {
	Params []string
	Body   *ast.Block
	Env    *Environment
}

func (*ClosureValue) Kind() Kind        { return KindClosure }
func (*ClosureValue) String() string    { return "<closure>" }

// FunctionValue is a first-class reference to a registered top-level
// function, produced when a plain identifier names a function rather than
// a local binding.
type FunctionValue struct {
	Name string
}

func (FunctionValue) Kind() Kind          { return KindFunction }
func (f FunctionValue) String() string    { return fmt.Sprintf("<fn %s>", f.Name) }

// IsPrimitive mirrors the analyzer's rule: int, str, bool and null never move.
func IsPrimitive(v Value) bool {
	switch v.Kind() {
	case KindInt, KindBool, KindStr, KindNull:
		return true
	default:
		return false
	}
}

func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case BoolValue:
		return bool(val)
	case NullValue:
		return false
	default:
		return true
	}
}

// ValuesEqual implements the interpreter's structural equality for
// literal-pattern matching and the == / != operators.
func ValuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case IntValue:
		bv, ok := b.(IntValue)
		return ok && av == bv
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av == bv
	case StrValue:
		bv, ok := b.(StrValue)
		return ok && av == bv
	case NullValue:
		_, ok := b.(NullValue)
		return ok
	default:
		return a == b
	}
}
