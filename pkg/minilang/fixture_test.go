package minilang

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"minilang/internal/interp"
)

// TestScriptFixtures runs every .mini fixture under testdata/scripts
// through the full lex -> parse -> analyze -> run pipeline and snapshots
// its output (or the diagnostic/error that stopped it), grounded on the
// larger reference compiler's internal/interp/fixture_test.go
// (TestDWScriptFixtures), scaled down to this repo's single fixture
// directory rather than dozens of categories.
func TestScriptFixtures(t *testing.T) {
	for _, path := range fixturePaths(t) {
		name := strings.TrimSuffix(filepath.Base(path), ".mini")
		t.Run(name, func(t *testing.T) {
			source, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read %s: %v", path, err)
			}

			program, err := Parse(string(source))
			if err != nil {
				snaps.MatchSnapshot(t, "parse_error", err.Error())
				return
			}

			diags := Analyze(program)
			if len(diags) > 0 {
				snaps.MatchSnapshot(t, "diagnostics", strings.Join(diags, "\n"))
				return
			}

			var lines []string
			err = Run(program, func(line string) { lines = append(lines, line) }, nil, nil)
			if err != nil {
				snaps.MatchSnapshot(t, "runtime_error", err.Error())
				return
			}

			snaps.MatchSnapshot(t, "output", strings.Join(lines, "\n"))
		})
	}
}

// TestScriptFixturesWithTrace re-runs every clean fixture, this time
// snapshotting the scope/move event trace rather than stdout, so a
// regression in scope push/pop or move-event emission shows up as a diff
// independent of output text.
func TestScriptFixturesWithTrace(t *testing.T) {
	for _, path := range fixturePaths(t) {
		name := strings.TrimSuffix(filepath.Base(path), ".mini")
		t.Run(name, func(t *testing.T) {
			source, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read %s: %v", path, err)
			}

			program, err := Parse(string(source))
			if err != nil {
				t.Skipf("parse error, covered by TestScriptFixtures: %v", err)
			}
			if diags := Analyze(program); len(diags) > 0 {
				t.Skipf("diagnostics present, covered by TestScriptFixtures: %v", diags)
			}

			var trace []string
			onEvent := func(ev interp.Event) { trace = append(trace, ev.String()) }
			if runErr := Run(program, func(string) {}, onEvent, nil); runErr != nil {
				t.Skipf("runtime error, covered by TestScriptFixtures: %v", runErr)
			}

			snaps.MatchSnapshot(t, "trace", strings.Join(trace, "\n"))
		})
	}
}

func fixturePaths(t *testing.T) []string {
	t.Helper()
	paths, err := filepath.Glob("../../testdata/scripts/*.mini")
	if err != nil {
		t.Fatalf("glob fixtures: %v", err)
	}
	if len(paths) == 0 {
		t.Skip("no .mini fixtures found")
	}
	sort.Strings(paths)
	return paths
}
