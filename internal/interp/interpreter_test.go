package interp

import (
	"strings"
	"testing"

	"minilang/internal/parser"
)

func mustRun(t *testing.T, src string) (lines []string, events []Event) {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	err = Run(prog,
		func(line string) { lines = append(lines, line) },
		func(ev Event) { events = append(events, ev) },
		nil,
	)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	return lines, events
}

func TestS1HelloWorld(t *testing.T) {
	lines, _ := mustRun(t, "fn main():\n    print(\"Hello, World!\")\n")
	if len(lines) != 1 || lines[0] != "Hello, World!" {
		t.Fatalf("got %v", lines)
	}
}

func TestS2StringConcatWithInt(t *testing.T) {
	src := "fn main():\n    let s: str = \"Total: \" + 10\n    print(s)\n"
	lines, _ := mustRun(t, src)
	if len(lines) != 1 || lines[0] != "Total: 10" {
		t.Fatalf("got %v", lines)
	}
}

func TestS3UseOfMoved(t *testing.T) {
	src := "struct U: name: str\n" +
		"fn main():\n" +
		"    let u: U = U { name: \"a\" }\n" +
		"    let v: U = u\n" +
		"    print(v.name)\n"
	lines, _ := mustRun(t, src)
	if len(lines) != 1 || lines[0] != "a" {
		t.Fatalf("got %v", lines)
	}
}

func TestS4ClosureCaptures(t *testing.T) {
	src := "fn main():\n" +
		"    let start: int = 5\n" +
		"    let add = |x|:\n" +
		"        return x + start\n" +
		"    print(to_string(add(10)))\n"
	lines, _ := mustRun(t, src)
	if len(lines) != 1 || lines[0] != "15" {
		t.Fatalf("got %v", lines)
	}
}

func TestS5EnumMatchStructVariant(t *testing.T) {
	src := "enum Status:\n" +
		"    Running\n" +
		"    Done { reason: str }\n" +
		"fn main():\n" +
		"    let s: Status = Status::Done { reason: \"Finished\" }\n" +
		"    match s:\n" +
		"        Status::Running => print(\"still going\")\n" +
		"        Status::Done { reason } => print(\"Stopped: \" + reason)\n"
	lines, _ := mustRun(t, src)
	if len(lines) != 1 || lines[0] != "Stopped: Finished" {
		t.Fatalf("got %v", lines)
	}
}

func TestS6TraitMethodDispatch(t *testing.T) {
	src := "struct P<T>: x: T\n" +
		"trait Show:\n" +
		"    fn show() -> str\n" +
		"impl Show for P<int>:\n" +
		"    fn show() -> str:\n" +
		"        return \"x=\" + to_string(this.x)\n" +
		"fn main():\n" +
		"    let p = P { x: 7 }\n" +
		"    print(p.show())\n"
	lines, _ := mustRun(t, src)
	if len(lines) != 1 || lines[0] != "x=7" {
		t.Fatalf("got %v", lines)
	}
}

func TestForLoopRange(t *testing.T) {
	src := "fn main():\n" +
		"    for i in range(3):\n" +
		"        print(to_string(i))\n"
	lines, _ := mustRun(t, src)
	want := []string{"0", "1", "2"}
	if len(lines) != len(want) {
		t.Fatalf("got %v", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("got %v, want %v", lines, want)
		}
	}
}

func TestAlertFallback(t *testing.T) {
	lines, _ := mustRun(t, "fn main():\n    alert(\"boom\")\n")
	if len(lines) != 1 || lines[0] != "[ALERT] boom" {
		t.Fatalf("got %v", lines)
	}
}

func TestExternWithHostBinding(t *testing.T) {
	src := "extern fn notify(msg: str)\n" +
		"fn main():\n" +
		"    notify(\"hi\")\n"
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	var got string
	opts := &Options{Externs: map[string]ExternFunc{
		"notify": func(args []Value) Value {
			got = args[0].String()
			return NullValue{}
		},
	}}
	if err := Run(prog, nil, nil, opts); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if got != "hi" {
		t.Fatalf("got %q", got)
	}
}

func TestExternWithoutHostBindingReturnsNull(t *testing.T) {
	// extern fn declarations take no return-type arrow: the parser rejects
	// one, so an unbound extern always returns null rather than a typed
	// value.
	src := "extern fn mystery(x: int)\n" +
		"fn main():\n" +
		"    let r = mystery(3)\n" +
		"    print(to_string(r))\n"
	lines, _ := mustRun(t, src)
	if len(lines) != 1 || lines[0] != "null" {
		t.Fatalf("got %v", lines)
	}
}

// TestEventScopeBalance is Testable Property 6: every ENTER_SCOPE is
// eventually matched by an EXIT_SCOPE with the same scope id.
func TestEventScopeBalance(t *testing.T) {
	src := "fn add(a: int, b: int) -> int:\n" +
		"    return a + b\n" +
		"fn main():\n" +
		"    let total: int = 0\n" +
		"    for i in range(3):\n" +
		"        let t: int = add(total, i)\n" +
		"        total = t\n" +
		"    print(to_string(total))\n"
	_, events := mustRun(t, src)

	open := map[int]bool{}
	for _, ev := range events {
		switch ev.Kind {
		case EventEnterScope:
			open[ev.ScopeID] = true
		case EventExitScope:
			if !open[ev.ScopeID] {
				t.Fatalf("EXIT_SCOPE(%d) without a matching ENTER_SCOPE", ev.ScopeID)
			}
			delete(open, ev.ScopeID)
		}
	}
	if len(open) != 0 {
		t.Fatalf("scopes entered but never exited: %v", open)
	}
}

// TestMoveEventsOnlyForNonPrimitives checks the event trace never reports a
// MOVE for an int/bool/str identifier read.
func TestMoveEventsOnlyForNonPrimitives(t *testing.T) {
	src := "struct U: name: str\n" +
		"fn main():\n" +
		"    let n: int = 3\n" +
		"    let u: U = U { name: \"a\" }\n" +
		"    let v: U = u\n" +
		"    print(to_string(n))\n"
	_, events := mustRun(t, src)
	for _, ev := range events {
		if ev.Kind == EventMove && ev.Name == "n" {
			t.Fatalf("unexpected MOVE event for primitive identifier n: %v", ev)
		}
	}
	sawMoveU := false
	for _, ev := range events {
		if ev.Kind == EventMove && ev.Name == "u" {
			sawMoveU = true
		}
	}
	if !sawMoveU {
		t.Fatalf("expected a MOVE event for struct identifier u, events: %v", events)
	}
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	prog, err := parser.Parse("fn main():\n    print(missing)\n")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	err = Run(prog, func(string) {}, nil, nil)
	if err == nil || !strings.Contains(err.Error(), "undefined variable") {
		t.Fatalf("expected undefined variable error, got %v", err)
	}
}
