package analyzer_test

import (
	"strings"
	"testing"

	"minilang/internal/analyzer"
	"minilang/internal/parser"
)

func mustAnalyze(t *testing.T, src string) []string {
	t.Helper()
	program, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return analyzer.Analyze(program)
}

func containsDiag(diags []string, substr string) bool {
	for _, d := range diags {
		if strings.Contains(d, substr) {
			return true
		}
	}
	return false
}

// S1: hello world, no diagnostics.
func TestS1HelloWorld(t *testing.T) {
	diags := mustAnalyze(t, "fn main():\n    print(\"Hello, World!\")\n")
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
}

// S2: string concatenation with int yields str, no mismatch.
func TestS2StringConcatWithInt(t *testing.T) {
	diags := mustAnalyze(t, "fn main():\n    let s: str = \"Total: \" + 10\n    print(s)\n")
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
}

// S3: use of moved value.
func TestS3UseOfMoved(t *testing.T) {
	src := "struct U: name: str\nfn main():\n    let a: U = U { name: \"x\" }\n    let b: U = a\n    print(a.name)\n"
	diags := mustAnalyze(t, src)
	if !containsDiag(diags, "Use of moved value 'a'") {
		t.Fatalf("expected move diagnostic, got %v", diags)
	}
}

// S4: closure captures enclosing binding, clean.
func TestS4ClosureCaptures(t *testing.T) {
	src := "fn main():\n    let start: int = 10\n    let adder = |x|:\n        return x + start\n    print(to_string(adder(5)))\n"
	diags := mustAnalyze(t, src)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
}

// S5: enum match with struct variant, clean.
func TestS5EnumMatchStructVariant(t *testing.T) {
	src := "enum State:\n    Idle\n    Stopped { reason: str }\n" +
		"fn main():\n    let s: State = State::Stopped { reason: \"Done\" }\n" +
		"    match s:\n        State::Stopped { reason } => print(\"Stopped: \" + reason)\n" +
		"        State::Idle => print(\"Idle\")\n"
	diags := mustAnalyze(t, src)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
}

// S6: trait method dispatch against a generic impl target.
func TestS6TraitMethodDispatch(t *testing.T) {
	src := "struct P<T>: x: T\ntrait Show:\n    fn desc() -> str\n" +
		"impl Show for P<int>:\n    fn desc() -> str:\n        return \"x=\" + to_string(this.x)\n" +
		"fn main():\n    let p: P<int> = P { x: 7 }\n    print(p.desc())\n"
	diags := mustAnalyze(t, src)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
}

// Property 4: primitives never move.
func TestMoveDisciplineExemptsPrimitives(t *testing.T) {
	src := "fn main():\n    let a: int = 10\n    let b: int = a\n    print(a)\n"
	diags := mustAnalyze(t, src)
	if containsDiag(diags, "moved") {
		t.Fatalf("primitives must not be subject to move diagnostics, got %v", diags)
	}
}

// Property 4: non-primitive moves through var-decl RHS poison the source.
func TestMoveDisciplineFlagsStructs(t *testing.T) {
	src := "struct U: name: str\nfn main():\n    let a: U = U { name: \"x\" }\n    let b: U = a\n    let c: U = a\n"
	diags := mustAnalyze(t, src)
	count := 0
	for _, d := range diags {
		if strings.Contains(d, "Use of moved value 'a'") {
			count++
		}
	}
	if count == 0 {
		t.Fatalf("expected at least one move diagnostic, got %v", diags)
	}
}

// Method-call receivers do not move.
func TestMethodReceiverDoesNotMove(t *testing.T) {
	src := "struct U: name: str\ntrait Greeter:\n    fn greet() -> str\n" +
		"impl Greeter for U:\n    fn greet() -> str:\n        return this.name\n" +
		"fn main():\n    let a: U = U { name: \"x\" }\n    print(a.greet())\n    print(a.greet())\n"
	diags := mustAnalyze(t, src)
	if containsDiag(diags, "moved") {
		t.Fatalf("method receiver reads must not move, got %v", diags)
	}
}

// Field reads (obj.field) do not move the receiver.
func TestFieldReadDoesNotMove(t *testing.T) {
	src := "struct U: name: str\nfn main():\n    let a: U = U { name: \"x\" }\n    print(a.name)\n    print(a.name)\n"
	diags := mustAnalyze(t, src)
	if containsDiag(diags, "moved") {
		t.Fatalf("field reads must not move, got %v", diags)
	}
}

// A print call reads its argument without consuming it.
func TestPrintArgumentDoesNotMove(t *testing.T) {
	src := "struct U: name: str\nfn main():\n    let a: U = U { name: \"x\" }\n    print(a)\n    print(a)\n"
	diags := mustAnalyze(t, src)
	if containsDiag(diags, "moved") {
		t.Fatalf("print arguments must not move, got %v", diags)
	}
}

// Property 5: generic field resolution through a fully-instantiated annotation.
func TestGenericFieldResolution(t *testing.T) {
	src := "struct Box<T>: v: T\nfn main():\n    let c: Box<str> = Box { v: \"x\" }\n    let d: str = c.v\n    print(d)\n"
	diags := mustAnalyze(t, src)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
}

func TestUndefinedNameDiagnostic(t *testing.T) {
	src := "fn main():\n    print(missing)\n"
	diags := mustAnalyze(t, src)
	if !containsDiag(diags, "undefined name 'missing'") {
		t.Fatalf("expected undefined name diagnostic, got %v", diags)
	}
}

func TestArityMismatchDiagnostic(t *testing.T) {
	src := "fn add(a: int, b: int) -> int:\n    return a + b\nfn main():\n    print(add(1))\n"
	diags := mustAnalyze(t, src)
	if !containsDiag(diags, "wrong number of arguments to 'add'") {
		t.Fatalf("expected arity diagnostic, got %v", diags)
	}
}

func TestImmutableAssignmentDiagnostic(t *testing.T) {
	src := "fn main():\n    let a: int = 1\n    a = 2\n"
	diags := mustAnalyze(t, src)
	if !containsDiag(diags, "cannot assign to immutable binding 'a'") {
		t.Fatalf("expected immutability diagnostic, got %v", diags)
	}
}

func TestMutableAssignmentClean(t *testing.T) {
	src := "fn main():\n    let mut a: int = 1\n    a = 2\n    print(a)\n"
	diags := mustAnalyze(t, src)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
}

func TestDuplicateStructDiagnostic(t *testing.T) {
	src := "struct U: name: str\nstruct U: name: str\nfn main():\n    print(\"x\")\n"
	diags := mustAnalyze(t, src)
	if !containsDiag(diags, "duplicate struct 'U'") {
		t.Fatalf("expected duplicate struct diagnostic, got %v", diags)
	}
}

func TestUnknownStructFieldDiagnostic(t *testing.T) {
	src := "struct U: name: str\nfn main():\n    let a: U = U { name: \"x\", age: 1 }\n    print(a.name)\n"
	diags := mustAnalyze(t, src)
	if !containsDiag(diags, "unknown field 'age'") {
		t.Fatalf("expected unknown field diagnostic, got %v", diags)
	}
}

func TestMissingStructFieldDiagnostic(t *testing.T) {
	src := "struct U: name: str, age: int\nfn main():\n    let a: U = U { name: \"x\" }\n    print(a.name)\n"
	diags := mustAnalyze(t, src)
	if !containsDiag(diags, "missing field 'age'") {
		t.Fatalf("expected missing field diagnostic, got %v", diags)
	}
}

func TestNonIterableIterationDiagnostic(t *testing.T) {
	src := "fn main():\n    for x in 5:\n        print(x)\n"
	diags := mustAnalyze(t, src)
	if !containsDiag(diags, "cannot iterate over type int") {
		t.Fatalf("expected non-iterable diagnostic, got %v", diags)
	}
}

func TestMethodNotFoundDiagnostic(t *testing.T) {
	src := "struct U: name: str\nfn main():\n    let a: U = U { name: \"x\" }\n    print(a.greet())\n"
	diags := mustAnalyze(t, src)
	if !containsDiag(diags, "method 'greet' not found") {
		t.Fatalf("expected method-not-found diagnostic, got %v", diags)
	}
}

func TestEnumPatternFamilyMismatch(t *testing.T) {
	src := "fn main():\n    let a: int = 5\n    match a:\n        Some(x) => print(to_string(x))\n        _ => print(\"no\")\n"
	diags := mustAnalyze(t, src)
	if !containsDiag(diags, "does not match subject type") {
		t.Fatalf("expected enum-pattern family mismatch diagnostic, got %v", diags)
	}
}
