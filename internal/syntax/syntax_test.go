package syntax

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCheckSource_JSON(t *testing.T) {
	if err := CheckSource("config.json", `{"a": 1}`); err != nil {
		t.Errorf("valid JSON flagged: %v", err)
	}

	err := CheckSource("config.json", `{"a": `)
	var serr *Error
	if !errors.As(err, &serr) {
		t.Fatalf("invalid JSON error = %v, want *Error", err)
	}
	if serr.File != "config.json" {
		t.Errorf("File = %q, want config.json", serr.File)
	}
}

func TestCheckSource_YAML(t *testing.T) {
	if err := CheckSource("ci.yml", "steps:\n  - run: make\n"); err != nil {
		t.Errorf("valid YAML flagged: %v", err)
	}
	if err := CheckSource("ci.yml", "steps: [unclosed"); err == nil {
		t.Error("invalid YAML not flagged")
	}
}

func TestCheckSource_UnknownExtension(t *testing.T) {
	if err := CheckSource("notes.txt", "anything at all {{{"); err != nil {
		t.Errorf("unknown extensions must never fail, got %v", err)
	}
}

func TestCheckSource_Python(t *testing.T) {
	if !PythonAvailable() {
		t.Skip("python3 not installed")
	}

	if err := CheckSource("ok.py", "def f():\n    return 1\n"); err != nil {
		t.Errorf("valid Python flagged: %v", err)
	}

	err := CheckSource("bad.py", "def f(:\n")
	var serr *Error
	if !errors.As(err, &serr) {
		t.Fatalf("invalid Python error = %v, want *Error", err)
	}
	if serr.Line == 0 {
		t.Error("syntax error should carry a line number")
	}
	if serr.File != "bad.py" {
		t.Errorf("File = %q, want the destination path, not the scratch file", serr.File)
	}
}

func TestCheckFile_Python(t *testing.T) {
	if !PythonAvailable() {
		t.Skip("python3 not installed")
	}

	dir := t.TempDir()
	good := filepath.Join(dir, "good.py")
	os.WriteFile(good, []byte("x = 1\n"), 0644)
	if err := CheckFile(good); err != nil {
		t.Errorf("valid file flagged: %v", err)
	}

	bad := filepath.Join(dir, "bad.py")
	os.WriteFile(bad, []byte("def broken(:\n"), 0644)
	if err := CheckFile(bad); err == nil {
		t.Error("invalid file not flagged")
	}
}
