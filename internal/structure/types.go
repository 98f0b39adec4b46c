package structure

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// ProjectStructure is the in-memory description of a project to build.
// The synthesizer owns it during generation; once persisted, repair
// passes may append entries but never remove them.
type ProjectStructure struct {
	Name            string     `json:"name" yaml:"name"`
	Description     string     `json:"description" yaml:"description"`
	Folders         []string   `json:"folders" yaml:"folders"`
	Files           []FileSpec `json:"files" yaml:"files"`
	Dependencies    []string   `json:"dependencies" yaml:"dependencies"`
	DevDependencies []string   `json:"dev_dependencies" yaml:"dev_dependencies"`
	Commands        []Command  `json:"commands" yaml:"commands"`
}

// FileSpec declares one file: where it goes and what its content should do.
type FileSpec struct {
	Path        string `json:"path" yaml:"path"`
	Description string `json:"description" yaml:"description"`
}

// Command is a named shell command declared by the structure.
type Command struct {
	Name    string `json:"name" yaml:"name"`
	Command string `json:"command" yaml:"command"`
}

// Decode parses model-emitted JSON into a ProjectStructure. Absent
// collection fields become empty slices and absent scalars empty
// strings: a usable partial structure beats a hard failure.
func Decode(jsonText string) (*ProjectStructure, error) {
	var raw struct {
		Name            string      `json:"name"`
		Description     string      `json:"description"`
		Folders         []string    `json:"folders"`
		Files           []FileSpec  `json:"files"`
		Dependencies    []string    `json:"dependencies"`
		DevDependencies []string    `json:"dev_dependencies"`
		Commands        commandList `json:"commands"`
	}
	if err := json.Unmarshal([]byte(jsonText), &raw); err != nil {
		return nil, fmt.Errorf("decoding project structure: %w", err)
	}

	s := &ProjectStructure{
		Name:            raw.Name,
		Description:     raw.Description,
		Folders:         raw.Folders,
		Files:           raw.Files,
		Dependencies:    raw.Dependencies,
		DevDependencies: raw.DevDependencies,
		Commands:        raw.Commands,
	}
	if s.Folders == nil {
		s.Folders = []string{}
	}
	if s.Files == nil {
		s.Files = []FileSpec{}
	}
	if s.Dependencies == nil {
		s.Dependencies = []string{}
	}
	if s.DevDependencies == nil {
		s.DevDependencies = []string{}
	}
	if s.Commands == nil {
		s.Commands = []Command{}
	}
	return s, nil
}

// commandList accepts both the list shape the prompt asks for
// ([{"name":..,"command":..}]) and the mapping shape ({"start": "cmd"})
// some models emit anyway.
type commandList []Command

func (c *commandList) UnmarshalJSON(data []byte) error {
	var list []Command
	if err := json.Unmarshal(data, &list); err == nil {
		*c = list
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("commands must be a list of {name, command} objects or a name→command mapping")
	}
	list = make([]Command, 0, len(m))
	for name, cmd := range m {
		list = append(list, Command{Name: name, Command: cmd})
	}
	*c = list
	return nil
}

// CheckPaths enforces the path invariant: every declared folder and file
// path must be relative and stay inside the project root.
func (s *ProjectStructure) CheckPaths() error {
	for _, folder := range s.Folders {
		if err := CheckPath(folder); err != nil {
			return fmt.Errorf("folder %q: %w", folder, err)
		}
	}
	for _, f := range s.Files {
		if err := CheckPath(f.Path); err != nil {
			return fmt.Errorf("file %q: %w", f.Path, err)
		}
	}
	return nil
}

// CheckPath rejects paths that could not be materialized safely under a
// project root.
func CheckPath(path string) error {
	if path == "" {
		return fmt.Errorf("path is empty")
	}
	if filepath.IsAbs(path) {
		return fmt.Errorf("path is absolute")
	}
	clean := filepath.Clean(filepath.FromSlash(path))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("path escapes the project root")
	}
	return nil
}

// HasFile reports whether a file with the given path is declared.
func (s *ProjectStructure) HasFile(path string) bool {
	for _, f := range s.Files {
		if f.Path == path {
			return true
		}
	}
	return false
}

// FilePaths returns the declared file paths in declaration order.
func (s *ProjectStructure) FilePaths() []string {
	paths := make([]string, len(s.Files))
	for i, f := range s.Files {
		paths[i] = f.Path
	}
	return paths
}
