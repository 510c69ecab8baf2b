package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	c := &cobra.Command{}
	c.SetOut(buf)
	return c, buf
}

func writeTempSource(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "source.wy")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing temp source: %v", err)
	}
	return path
}

func TestRunCompileWritesTargetOutput(t *testing.T) {
	path := writeTempSource(t, "吾有一數。曰三。書之。")
	c, buf := newTestCmd()

	if err := runCompile(c, []string{path}); err != nil {
		t.Fatalf("runCompile: %v", err)
	}

	want := "fn main() {\n    let _ans1 = 3.0;\n    println!(\"{}\", _ans1);\n}\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestRunCompileReportsFileNotFound(t *testing.T) {
	c, _ := newTestCmd()
	if err := runCompile(c, []string{filepath.Join(t.TempDir(), "missing.wy")}); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestRunCompileFormatsParseErrorWithPosition(t *testing.T) {
	path := writeTempSource(t, "之書")
	c, _ := newTestCmd()

	err := runCompile(c, []string{path})
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	if !strings.Contains(err.Error(), "@") && !strings.Contains(err.Error(), ":") {
		t.Fatalf("expected a positioned diagnostic, got: %v", err)
	}
}

func TestRunLexPrintsTokenStream(t *testing.T) {
	path := writeTempSource(t, "吾有一數。曰三。書之。")
	c, buf := newTestCmd()
	lexShowKind = true
	defer func() { lexShowKind = false }()

	if err := runLex(c, []string{path}); err != nil {
		t.Fatalf("runLex: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected token output")
	}
}

func TestRunParsePrintsStatementCount(t *testing.T) {
	path := writeTempSource(t, "吾有一數。曰三。書之。")
	c, buf := newTestCmd()

	if err := runParse(c, []string{path}); err != nil {
		t.Fatalf("runParse: %v", err)
	}
	if !strings.Contains(buf.String(), "2 statement(s)") {
		t.Fatalf("got: %s", buf.String())
	}
}
