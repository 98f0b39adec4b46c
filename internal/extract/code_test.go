package extract

import "testing"

func TestCleanCode_StripsFences(t *testing.T) {
	in := "```python\nprint(\"hi\")\n```"
	want := "print(\"hi\")"
	if got := CleanCode(in); got != want {
		t.Errorf("CleanCode = %q, want %q", got, want)
	}
}

func TestCleanCode_TrimsSurroundingProse(t *testing.T) {
	in := "# Here is the file you asked for\nimport os\n\nprint(os.getcwd())\nNote: remember to install dependencies."
	want := "import os\n\nprint(os.getcwd())"
	if got := CleanCode(in); got != want {
		t.Errorf("CleanCode = %q, want %q", got, want)
	}
}

func TestCleanCode_NoMarkersUnchanged(t *testing.T) {
	in := "def add(a, b):\n    return a + b"
	if got := CleanCode(in); got != in {
		t.Errorf("CleanCode = %q, want input unchanged", got)
	}
}

func TestCleanCode_Idempotent(t *testing.T) {
	inputs := []string{
		"```go\npackage main\n```",
		"# prose first\nx = 1\nNote: done",
		"plain text with no code",
		"",
		"```\n```",
	}
	for _, in := range inputs {
		once := CleanCode(in)
		twice := CleanCode(once)
		if once != twice {
			t.Errorf("CleanCode not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestCleanCode_EmptyInput(t *testing.T) {
	if got := CleanCode(""); got != "" {
		t.Errorf("CleanCode(\"\") = %q, want empty", got)
	}
}
