package syntax

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

// Error reports one grammar violation with enough position detail to
// seed a targeted repair prompt.
type Error struct {
	File    string
	Line    int
	Message string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

const compileTimeout = 30 * time.Second

// PythonAvailable reports whether a python3 interpreter is on PATH.
func PythonAvailable() bool {
	_, err := exec.LookPath("python3")
	return err == nil
}

// CheckFile validates the file at path according to its extension.
// A nil return means valid or unknown extension; a non-nil return is
// either a *Error or an environmental failure.
func CheckFile(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py":
		return checkPythonFile(path)
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		return checkJSON(path, data)
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		return checkYAML(path, data)
	default:
		return nil
	}
}

// CheckSource validates content destined for the given path without the
// file existing yet. Python checks write a scratch copy for the
// interpreter; they are skipped silently when no interpreter exists.
func CheckSource(path, content string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py":
		if !PythonAvailable() {
			return nil
		}
		tmp, err := os.CreateTemp("", "genforge-syntax-*.py")
		if err != nil {
			return nil // environmental, not a syntax verdict
		}
		defer os.Remove(tmp.Name())
		if _, err := tmp.WriteString(content); err != nil {
			tmp.Close()
			return nil
		}
		tmp.Close()
		if serr := checkPythonFile(tmp.Name()); serr != nil {
			var e *Error
			if errors.As(serr, &e) {
				e.File = path
				return e
			}
			return nil
		}
		return nil
	case ".json":
		return checkJSON(path, []byte(content))
	case ".yaml", ".yml":
		return checkYAML(path, []byte(content))
	default:
		return nil
	}
}

// pyLine matches the position line of a CPython traceback,
// e.g. `  File "app.py", line 7`.
var pyLine = regexp.MustCompile(`File "[^"]*", line (\d+)`)

func checkPythonFile(path string) error {
	if !PythonAvailable() {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), compileTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "python3", "-m", "py_compile", path)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err == nil {
		return nil
	}

	out := stderr.String()
	line := 0
	if m := pyLine.FindStringSubmatch(out); m != nil {
		line, _ = strconv.Atoi(m[1])
	}
	msg := lastNonEmptyLine(out)
	if msg == "" {
		msg = "compilation failed"
	}
	return &Error{File: path, Line: line, Message: msg}
}

func checkJSON(path string, data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return &Error{File: path, Message: err.Error()}
	}
	return nil
}

func checkYAML(path string, data []byte) error {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return &Error{File: path, Message: err.Error()}
	}
	return nil
}

func lastNonEmptyLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
