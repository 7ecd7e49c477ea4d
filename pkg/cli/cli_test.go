package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHelpExitsZero(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run([]string{"--help"}, strings.NewReader(""), &out, &errOut)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Fatalf("expected usage text, got %q", out.String())
	}
}

func TestVersionExitsZero(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run([]string{"-v"}, strings.NewReader(""), &out, &errOut)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out.String(), "zelo") {
		t.Fatalf("expected version text, got %q", out.String())
	}
}

func TestEvalRunsCodeAndExitsZero(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run([]string{"-e", `print("hi");`}, strings.NewReader(""), &out, &errOut)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut.String())
	}
	if out.String() != "hi" {
		t.Fatalf("expected %q, got %q", "hi", out.String())
	}
}

func TestEvalSyntaxErrorExitsOne(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run([]string{"-e", `loc x = ;`}, strings.NewReader(""), &out, &errOut)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if errOut.Len() == 0 {
		t.Fatalf("expected a diagnostic on stderr")
	}
}

func TestEvalUncaughtThrowExitsOne(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run([]string{"-e", `throw "boom";`}, strings.NewReader(""), &out, &errOut)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
}

func TestCheckOnlyParsesDoesNotEvaluate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.z")
	if err := os.WriteFile(path, []byte(`print("should not run");`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	var out, errOut bytes.Buffer
	code := Run([]string{"-c", path}, strings.NewReader(""), &out, &errOut)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut.String())
	}
	if out.Len() != 0 {
		t.Fatalf("expected -c not to evaluate the program, got output %q", out.String())
	}
}

func TestCheckReportsSyntaxErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.z")
	if err := os.WriteFile(path, []byte(`loc x = ;`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	var out, errOut bytes.Buffer
	code := Run([]string{"-c", path}, strings.NewReader(""), &out, &errOut)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
}

func TestRunningAScriptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.z")
	if err := os.WriteFile(path, []byte(`loc x = 1 + 2; println(x);`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	var out, errOut bytes.Buffer
	code := Run([]string{path}, strings.NewReader(""), &out, &errOut)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut.String())
	}
	if out.String() != "3\n" {
		t.Fatalf("expected %q, got %q", "3\n", out.String())
	}
}

func TestReplEvaluatesEachLineAgainstAPersistentScope(t *testing.T) {
	var out, errOut bytes.Buffer
	in := strings.NewReader("loc x = 2;\nprintln(x + 1);\n")
	code := Run(nil, in, &out, &errOut)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut.String())
	}
	if out.String() != "3\n" {
		t.Fatalf("expected %q, got %q", "3\n", out.String())
	}
}

func TestReplRecoversFromAPerLineError(t *testing.T) {
	var out, errOut bytes.Buffer
	in := strings.NewReader("loc x = ;\nprintln(42);\n")
	code := Run(nil, in, &out, &errOut)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut.String())
	}
	if errOut.Len() == 0 {
		t.Fatalf("expected the bad line to report an error")
	}
	if out.String() != "42\n" {
		t.Fatalf("expected the REPL to recover and still run the next line, got %q", out.String())
	}
}

func TestTraceGCOpensAStoreAlongsideAScript(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "script.z")
	if err := os.WriteFile(script, []byte(`loc x = 1;`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	tracePath := filepath.Join(dir, "zelo-trace.db")
	old, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	defer os.Chdir(old)

	var out, errOut bytes.Buffer
	code := Run([]string{"--trace-gc", script}, strings.NewReader(""), &out, &errOut)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut.String())
	}
	if _, err := os.Stat(tracePath); err != nil {
		t.Fatalf("expected a trace db at the default relative path: %v", err)
	}
}
