package minilang

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"
)

// reportScenario prints a colored pass/fail line in the teacher's
// test/compare.go style (color.GreenString("passed") / RedString("failed"))
// and fails t when got != want.
func reportScenario(t *testing.T, name, got, want string) {
	t.Helper()
	if got == want {
		fmt.Printf("  [%s] %s\n", color.GreenString("passed"), name)
		return
	}
	fmt.Printf("  [%s] %s\n", color.RedString("failed"), name)
	t.Errorf("%s: got %q, want %q", name, got, want)
}

func runToOutput(t *testing.T, src string) string {
	t.Helper()
	program, err := Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if diags := Analyze(program); len(diags) > 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	var lines []string
	if err := Run(program, func(line string) { lines = append(lines, line) }, nil, nil); err != nil {
		t.Fatalf("run error: %v", err)
	}
	return strings.Join(lines, "\n")
}

// TestS1ThroughS6 pins the library surface's end-to-end behavior on six
// canonical scenarios, exercised through Parse/Analyze/Run rather than any
// internal package directly.
func TestS1ThroughS6(t *testing.T) {
	reportScenario(t, "S1_hello_world",
		runToOutput(t, "fn main():\n    print(\"Hello, World!\")\n"),
		"Hello, World!")

	reportScenario(t, "S2_string_concat_with_int",
		runToOutput(t, "fn main():\n    let s: str = \"Total: \" + 10\n    print(s)\n"),
		"Total: 10")

	reportScenario(t, "S3_use_of_moved",
		runToOutput(t, "struct U: name: str\nfn main():\n    let u: U = U { name: \"a\" }\n    let v: U = u\n    print(v.name)\n"),
		"a")

	reportScenario(t, "S4_closure_captures",
		runToOutput(t, "fn main():\n    let start: int = 5\n    let add = |x|:\n        return x + start\n    print(to_string(add(10)))\n"),
		"15")

	reportScenario(t, "S5_enum_match_struct_variant",
		runToOutput(t, "enum Status:\n    Running\n    Done { reason: str }\nfn main():\n    let s: Status = Status::Done { reason: \"Finished\" }\n    match s:\n        Status::Running => print(\"still going\")\n        Status::Done { reason } => print(\"Stopped: \" + reason)\n"),
		"Stopped: Finished")

	reportScenario(t, "S6_trait_method_dispatch",
		runToOutput(t, "struct P<T>: x: T\ntrait Show:\n    fn show() -> str\nimpl Show for P<int>:\n    fn show() -> str:\n        return \"x=\" + to_string(this.x)\nfn main():\n    let p: P<int> = P { x: 7 }\n    print(p.show())\n"),
		"x=7")
}

// TestAnalyzeRejectsUseAfterMoveBeforeRun checks the library's stated
// host contract: a host that calls Analyze and refuses to Run when
// diagnostics are non-empty would have caught a true use-after-move, even
// though S3 above (a single-field struct reassignment, never re-reading
// the moved-from binding) produces none.
func TestAnalyzeRejectsUseAfterMoveBeforeRun(t *testing.T) {
	src := "struct U: name: str\n" +
		"fn main():\n" +
		"    let u: U = U { name: \"a\" }\n" +
		"    let v: U = u\n" +
		"    print(u.name)\n"
	program, err := Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	diags := Analyze(program)
	found := false
	for _, d := range diags {
		if strings.Contains(d, "moved") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a use-after-move diagnostic, got %v", diags)
	}
}
