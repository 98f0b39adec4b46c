package structure

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the on-disk name of the persisted structure inside a
// materialized project. Once written it is the source of truth for
// validation and repair.
const FileName = "project_structure.json"

// Load reads the persisted structure from a project directory.
// Returns nil, nil when the file does not exist.
func Load(projectPath string) (*ProjectStructure, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, FileName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}
	return Decode(string(data))
}

// FindEnclosing walks up from a file's directory looking for the
// nearest persisted structure. Returns nil, nil when no ancestor
// carries one.
func FindEnclosing(path string) (*ProjectStructure, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(abs)
	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return Load(dir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// Save writes the structure into a project directory.
func (s *ProjectStructure) Save(projectPath string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling project structure: %w", err)
	}
	path := filepath.Join(projectPath, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
