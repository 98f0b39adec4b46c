//go:build integration

package integration_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/genforge-labs/genforge/internal/logging"
	"github.com/genforge-labs/genforge/internal/project"
	"github.com/genforge-labs/genforge/internal/structure"
	"github.com/genforge-labs/genforge/internal/synth"
	"github.com/genforge-labs/genforge/internal/template"
	"github.com/genforge-labs/genforge/internal/validate"
)

// scriptedModel emulates the model well enough to drive the whole
// pipeline: a structure for the structure prompt, source for file
// prompts, markdown for the README prompt.
type scriptedModel struct{}

const todoStructure = `{
  "name": "todo_app",
  "description": "A CLI todo application",
  "folders": ["tests"],
  "files": [
    {"path": "todo.py", "description": "CLI entry point"},
    {"path": "tests/test_todo.py", "description": "unit tests"}
  ],
  "dependencies": ["click==8.1.0"],
  "commands": [{"name": "start", "command": "python todo.py"}]
}`

func (scriptedModel) Generate(_ context.Context, prompt string, _ ...string) (string, error) {
	switch {
	case strings.Contains(prompt, "generate a complete project structure"):
		return todoStructure, nil
	case strings.Contains(prompt, "README.md"):
		return "# todo_app\n\nA CLI todo application.\n", nil
	default:
		return "import click\n\n\ndef main():\n    pass\n", nil
	}
}

// TestFullFlowCreateAndValidate runs the complete flow:
// create project -> verify materialization -> validate -> verify report.
func TestFullFlowCreateAndValidate(t *testing.T) {
	log := logging.Discard()
	store, err := template.NewStore(t.TempDir(), log)
	if err != nil {
		t.Fatal(err)
	}
	syn := synth.New(scriptedModel{}, store, 3, log)

	// Step 1: create the project from a description.
	mat := project.NewMaterializer(t.TempDir(), syn, false, log)
	root, err := mat.Create(context.Background(), "a CLI todo app with tags", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Step 2: every declared artifact is on disk.
	for _, rel := range []string{"todo.py", "tests/test_todo.py", "README.md", "requirements.txt", structure.FileName} {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
			t.Fatalf("%s missing after create: %v", rel, err)
		}
	}
	content, err := os.ReadFile(filepath.Join(root, "todo.py"))
	if err != nil || !strings.Contains(string(content), "import click") {
		t.Fatalf("todo.py = %q, err %v", content, err)
	}

	// Step 3: validation of a freshly generated project finds nothing.
	rep := validate.New(syn, log).Run(context.Background(), root)
	if rep.Status != validate.StatusSuccess {
		t.Fatalf("validation status = %q, issues: %+v", rep.Status, rep.Issues)
	}
	if _, err := os.Stat(filepath.Join(root, validate.ReportFileName)); err != nil {
		t.Fatalf("validation report missing: %v", err)
	}

	// Step 4: the project can be captured as a template and reused.
	if err := store.SaveFromProject(root, "todo"); err != nil {
		t.Fatalf("SaveFromProject: %v", err)
	}
	tmpl := store.Load("todo")
	if tmpl == nil || tmpl.Structure == nil || !tmpl.Structure.HasFile("todo.py") {
		t.Fatalf("template round-trip failed: %+v", tmpl)
	}
}

// TestValidateRepairsDeletedFile removes a declared file and checks the
// validator restores it.
func TestValidateRepairsDeletedFile(t *testing.T) {
	log := logging.Discard()
	syn := synth.New(scriptedModel{}, nil, 3, log)

	mat := project.NewMaterializer(t.TempDir(), syn, false, log)
	root, err := mat.Create(context.Background(), "a CLI todo app with tags", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := os.Remove(filepath.Join(root, "todo.py")); err != nil {
		t.Fatal(err)
	}

	v := validate.New(syn, log)
	rep := v.Run(context.Background(), root)
	if rep.Status != validate.StatusFixed {
		t.Fatalf("status = %q, issues: %+v", rep.Status, rep.Issues)
	}
	if _, err := os.Stat(filepath.Join(root, "todo.py")); err != nil {
		t.Fatalf("todo.py not regenerated: %v", err)
	}

	// A second pass finds nothing left to fix.
	if second := v.Run(context.Background(), root); second.IssuesFound != 0 {
		t.Fatalf("second pass IssuesFound = %d, issues: %+v", second.IssuesFound, second.Issues)
	}
}
