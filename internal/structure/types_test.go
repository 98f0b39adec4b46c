package structure

import "testing"

func TestDecode_FullStructure(t *testing.T) {
	jsonText := `{
		"name": "todo_app",
		"description": "A CLI todo application",
		"folders": ["src", "tests"],
		"files": [
			{"path": "todo.py", "description": "Main entry point"},
			{"path": "tests/test_todo.py", "description": "Unit tests"}
		],
		"dependencies": ["click==8.1.7"],
		"dev_dependencies": ["pytest"],
		"commands": [{"name": "start", "command": "python todo.py"}]
	}`

	s, err := Decode(jsonText)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if s.Name != "todo_app" {
		t.Errorf("Name = %q, want %q", s.Name, "todo_app")
	}
	if len(s.Files) != 2 {
		t.Fatalf("len(Files) = %d, want 2", len(s.Files))
	}
	if s.Files[0].Path != "todo.py" {
		t.Errorf("Files[0].Path = %q, want %q", s.Files[0].Path, "todo.py")
	}
	if len(s.Commands) != 1 || s.Commands[0].Name != "start" {
		t.Errorf("Commands = %v, want one entry named start", s.Commands)
	}
}

func TestDecode_MissingFieldsGetDefaults(t *testing.T) {
	s, err := Decode(`{"name": "bare"}`)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if s.Description != "" {
		t.Errorf("Description = %q, want empty", s.Description)
	}
	for field, l := range map[string]int{
		"Folders":         len(s.Folders),
		"Files":           len(s.Files),
		"Dependencies":    len(s.Dependencies),
		"DevDependencies": len(s.DevDependencies),
		"Commands":        len(s.Commands),
	} {
		if l != 0 {
			t.Errorf("%s should default to empty, got length %d", field, l)
		}
	}
	if s.Folders == nil || s.Files == nil || s.Dependencies == nil {
		t.Error("collection fields should be empty slices, not nil")
	}
}

func TestDecode_CommandsAsMapping(t *testing.T) {
	s, err := Decode(`{"name": "x", "commands": {"start": "python app.py"}}`)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(s.Commands) != 1 {
		t.Fatalf("len(Commands) = %d, want 1", len(s.Commands))
	}
	if s.Commands[0].Name != "start" || s.Commands[0].Command != "python app.py" {
		t.Errorf("Commands[0] = %+v", s.Commands[0])
	}
}

func TestDecode_InvalidJSON(t *testing.T) {
	if _, err := Decode(`{"name":`); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestCheckPaths(t *testing.T) {
	tests := []struct {
		name    string
		s       ProjectStructure
		wantErr bool
	}{
		{
			"relative paths ok",
			ProjectStructure{Folders: []string{"src/utils"}, Files: []FileSpec{{Path: "src/main.py"}}},
			false,
		},
		{
			"absolute file path rejected",
			ProjectStructure{Files: []FileSpec{{Path: "/etc/passwd"}}},
			true,
		},
		{
			"traversal rejected",
			ProjectStructure{Files: []FileSpec{{Path: "../outside.py"}}},
			true,
		},
		{
			"hidden traversal rejected",
			ProjectStructure{Folders: []string{"src/../../outside"}},
			true,
		},
		{
			"empty path rejected",
			ProjectStructure{Files: []FileSpec{{Path: ""}}},
			true,
		},
		{
			"dot segments inside root ok",
			ProjectStructure{Files: []FileSpec{{Path: "src/./main.py"}}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.CheckPaths()
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckPaths() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := &ProjectStructure{
		Name:         "todo_app",
		Folders:      []string{"src"},
		Files:        []FileSpec{{Path: "todo.py", Description: "entry point"}},
		Dependencies: []string{"click==8.1.7"},
	}

	if err := s.Save(dir); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded == nil {
		t.Fatal("Load returned nil for existing file")
	}
	if loaded.Name != s.Name || len(loaded.Files) != 1 || loaded.Files[0].Path != "todo.py" {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestLoad_Missing(t *testing.T) {
	s, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if s != nil {
		t.Error("Load should return nil for a project without a persisted structure")
	}
}
