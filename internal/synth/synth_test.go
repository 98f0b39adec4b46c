package synth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/genforge-labs/genforge/internal/logging"
	"github.com/genforge-labs/genforge/internal/structure"
	"github.com/genforge-labs/genforge/internal/template"
)

// fakeGen scripts responses by inspecting the prompt. It records every
// prompt so tests can assert on what was asked.
type fakeGen struct {
	mu      sync.Mutex
	prompts []string
	respond func(prompt string) (string, error)
}

func (f *fakeGen) Generate(_ context.Context, prompt string, _ ...string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.respond(prompt)
}

func (f *fakeGen) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

const structureJSON = `{
  "name": "todo_app",
  "description": "A CLI todo application",
  "folders": ["src", "tests"],
  "files": [
    {"path": "todo.py", "description": "entry point"},
    {"path": "src/store.py", "description": "persistence"}
  ],
  "dependencies": ["click"],
  "commands": [{"name": "start", "command": "python todo.py"}]
}`

func newSynth(gen Generator, workers int) *Synthesizer {
	return New(gen, nil, workers, logging.Discard())
}

func TestGenerateStructure(t *testing.T) {
	gen := &fakeGen{respond: func(string) (string, error) {
		return "Here is the structure:\n" + structureJSON + "\nHope this helps!", nil
	}}

	ps, err := newSynth(gen, 3).GenerateStructure(context.Background(), "a CLI todo app with tags", "")
	if err != nil {
		t.Fatalf("GenerateStructure error: %v", err)
	}
	if ps.Name != "todo_app" {
		t.Errorf("Name = %q, want todo_app", ps.Name)
	}
	if len(ps.Files) != 2 || ps.Files[0].Path != "todo.py" {
		t.Errorf("Files = %+v", ps.Files)
	}
	if ps.DevDependencies == nil {
		t.Error("absent dev_dependencies should decode to an empty slice")
	}
}

func TestGenerateStructure_GenerationErrorPropagates(t *testing.T) {
	wantErr := errors.New("model down")
	gen := &fakeGen{respond: func(string) (string, error) { return "", wantErr }}

	_, err := newSynth(gen, 3).GenerateStructure(context.Background(), "a CLI todo app with tags", "")
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want wrapped %v", err, wantErr)
	}
}

func TestGenerateStructure_NoJSONPropagates(t *testing.T) {
	gen := &fakeGen{respond: func(string) (string, error) {
		return "I cannot answer that.", nil
	}}
	if _, err := newSynth(gen, 3).GenerateStructure(context.Background(), "a CLI todo app with tags", ""); err == nil {
		t.Fatal("expected an error when no JSON object is present")
	}
}

func TestGenerateStructure_DropsUnsafePaths(t *testing.T) {
	gen := &fakeGen{respond: func(string) (string, error) {
		return `{"name": "x", "description": "d",
			"folders": ["src", "../outside"],
			"files": [{"path": "ok.py", "description": "d"},
			          {"path": "/etc/passwd", "description": "d"}]}`, nil
	}}

	ps, err := newSynth(gen, 3).GenerateStructure(context.Background(), "a small but complete sample project", "")
	if err != nil {
		t.Fatalf("GenerateStructure error: %v", err)
	}
	if len(ps.Folders) != 1 || ps.Folders[0] != "src" {
		t.Errorf("Folders = %v, want only src", ps.Folders)
	}
	if len(ps.Files) != 1 || ps.Files[0].Path != "ok.py" {
		t.Errorf("Files = %+v, want only ok.py", ps.Files)
	}
}

func TestGenerateStructure_TemplateContext(t *testing.T) {
	store, err := template.NewStore(t.TempDir(), logging.Discard())
	if err != nil {
		t.Fatal(err)
	}
	err = store.Save("flask", &template.Template{
		Name:        "flask",
		Description: "Flask layout",
		Structure:   &structure.ProjectStructure{Name: "flask_base", Folders: []string{"app"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	gen := &fakeGen{respond: func(string) (string, error) { return structureJSON, nil }}
	s := New(gen, store, 3, logging.Discard())
	if _, err := s.GenerateStructure(context.Background(), "an API for tracking personal tasks", "flask"); err != nil {
		t.Fatal(err)
	}

	prompts := gen.recorded()
	if len(prompts) != 1 {
		t.Fatalf("got %d prompts, want 1", len(prompts))
	}
	if !strings.Contains(prompts[0], "flask_base") {
		t.Error("structure prompt should embed the template's stored structure")
	}
}

func TestElaborate(t *testing.T) {
	gen := &fakeGen{respond: func(string) (string, error) {
		return "A command line todo manager with tags, due dates and search.", nil
	}}
	s := newSynth(gen, 3)

	got := s.Elaborate(context.Background(), "todo app")
	if !strings.Contains(got, "due dates") {
		t.Errorf("short description was not elaborated: %q", got)
	}

	long := "a fully featured web application for managing tasks"
	if got := s.Elaborate(context.Background(), long); got != long {
		t.Errorf("long description should pass through unchanged, got %q", got)
	}
	if n := len(gen.recorded()); n != 1 {
		t.Errorf("model called %d times, want 1 (only for the short description)", n)
	}
}

func TestElaborate_FailureFallsBack(t *testing.T) {
	gen := &fakeGen{respond: func(string) (string, error) { return "", errors.New("boom") }}
	if got := newSynth(gen, 3).Elaborate(context.Background(), "todo app"); got != "todo app" {
		t.Errorf("Elaborate = %q, want original text on failure", got)
	}
}

func TestGenerateFiles_AllFilesAttributed(t *testing.T) {
	ps := &structure.ProjectStructure{Name: "p", Description: "d"}
	for i := 0; i < 5; i++ {
		ps.Files = append(ps.Files, structure.FileSpec{
			Path:        fmt.Sprintf("mod%d.txt", i),
			Description: "part",
		})
	}

	gen := &fakeGen{respond: func(prompt string) (string, error) {
		return "content for " + prompt[:20], nil
	}}

	results := newSynth(gen, 3).GenerateFiles(context.Background(), ps)
	if len(results) != 5 {
		t.Fatalf("got %d results, want 5", len(results))
	}
	seen := map[string]bool{}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("%s: unexpected error %v", r.Spec.Path, r.Err)
		}
		if r.Content == "" {
			t.Errorf("%s: empty content", r.Spec.Path)
		}
		seen[r.Spec.Path] = true
	}
	if len(seen) != 5 {
		t.Errorf("results cover %d distinct files, want 5", len(seen))
	}
}

func TestGenerateFiles_PartialFailure(t *testing.T) {
	ps := &structure.ProjectStructure{Name: "p", Description: "d"}
	for i := 0; i < 5; i++ {
		ps.Files = append(ps.Files, structure.FileSpec{
			Path:        fmt.Sprintf("mod%d.txt", i),
			Description: "part",
		})
	}

	gen := &fakeGen{respond: func(prompt string) (string, error) {
		if strings.Contains(prompt, `"mod2.txt"`) {
			return "", errors.New("timeout")
		}
		return "generated body", nil
	}}

	results := newSynth(gen, 3).GenerateFiles(context.Background(), ps)
	if len(results) != 5 {
		t.Fatalf("got %d results, want 5", len(results))
	}
	for _, r := range results {
		if r.Spec.Path == "mod2.txt" {
			if r.Err == nil {
				t.Error("failing file should carry its error")
			}
			if !strings.Contains(r.Content, "# Error generating content") {
				t.Errorf("failing file content = %q, want a visible error marker", r.Content)
			}
			continue
		}
		if r.Err != nil || r.Content != "generated body" {
			t.Errorf("%s: content %q err %v, want clean model output", r.Spec.Path, r.Content, r.Err)
		}
	}
}

func TestGenerateFileContent_SyntaxRetry(t *testing.T) {
	ps := &structure.ProjectStructure{
		Name:  "p",
		Files: []structure.FileSpec{{Path: "config.json", Description: "settings"}},
	}

	calls := 0
	gen := &fakeGen{respond: func(string) (string, error) {
		calls++
		if calls == 1 {
			return `{"broken": `, nil
		}
		return `{"debug": false}`, nil
	}}

	r := newSynth(gen, 3).GenerateFileContent(context.Background(), ps.Files[0], ps)
	if calls != 2 {
		t.Errorf("model called %d times, want 2 (original + simplified retry)", calls)
	}
	if r.Content != `{"debug": false}` {
		t.Errorf("Content = %q, want the retried output", r.Content)
	}
	if r.Err != nil {
		t.Errorf("unexpected error: %v", r.Err)
	}
}

func TestGenerateReadme_FallbackStub(t *testing.T) {
	gen := &fakeGen{respond: func(string) (string, error) { return "", errors.New("down") }}
	ps := &structure.ProjectStructure{Name: "todo_app", Description: "A CLI todo application"}

	got := newSynth(gen, 3).GenerateReadme(context.Background(), ps)
	if !strings.Contains(got, "# todo_app") || !strings.Contains(got, "README generation failed") {
		t.Errorf("stub README = %q", got)
	}
}

func TestGenerateReadme(t *testing.T) {
	gen := &fakeGen{respond: func(prompt string) (string, error) {
		if !strings.Contains(prompt, "License") {
			t.Error("README prompt should spell out the required outline")
		}
		return "```markdown\nInstall with pip.\n\n## Usage\n\nRun todo_app.\n```", nil
	}}
	ps := &structure.ProjectStructure{Name: "todo_app", Description: "d"}

	got := newSynth(gen, 3).GenerateReadme(context.Background(), ps)
	if strings.Contains(got, "```") {
		t.Errorf("README should have fences stripped, got %q", got)
	}
	if !strings.Contains(got, "## Usage") {
		t.Errorf("README = %q", got)
	}
}
