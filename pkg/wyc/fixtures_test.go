package wyc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// normalizeOutput strips carriage returns so fixtures authored on either
// platform compare equal, matching the teacher's fixture-test convention.
func normalizeOutput(s string) string {
	return strings.ReplaceAll(s, "\r", "")
}

// TestFixtures compiles every .wy file under testdata/fixtures and checks
// it against its paired .rs file when one exists (the six named scenarios
// from the specification), falling back to a go-snaps snapshot otherwise.
func TestFixtures(t *testing.T) {
	wyFiles, err := filepath.Glob("../../testdata/fixtures/*.wy")
	if err != nil {
		t.Fatalf("globbing fixtures: %v", err)
	}
	if len(wyFiles) == 0 {
		t.Fatal("expected at least one .wy fixture")
	}

	for _, wyFile := range wyFiles {
		name := strings.TrimSuffix(filepath.Base(wyFile), ".wy")
		t.Run(name, func(t *testing.T) {
			source, err := os.ReadFile(wyFile)
			if err != nil {
				t.Fatalf("reading %s: %v", wyFile, err)
			}

			out, err := Compile(string(source))
			if err != nil {
				t.Fatalf("compiling %s: %v", wyFile, err)
			}

			rsFile := strings.TrimSuffix(wyFile, ".wy") + ".rs"
			if expected, err := os.ReadFile(rsFile); err == nil {
				if normalizeOutput(out) != normalizeOutput(string(expected)) {
					t.Fatalf("output mismatch for %s:\nexpected:\n%s\nactual:\n%s", name, expected, out)
				}
				return
			}

			snaps.MatchSnapshot(t, name+"_output", out)
		})
	}
}
