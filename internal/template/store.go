package template

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/genforge-labs/genforge/internal/structure"
	"github.com/sirupsen/logrus"
	"go.yaml.in/yaml/v3"
)

// Template is the on-disk artifact: a named structure to seed generation.
type Template struct {
	Name        string                      `yaml:"name"`
	Description string                      `yaml:"description"`
	Structure   *structure.ProjectStructure `yaml:"structure"`
}

// Info summarizes one stored template for listings.
type Info struct {
	Name        string
	Description string
	File        string
}

// Store reads and writes templates under a single directory.
type Store struct {
	dir string
	log *logrus.Logger
}

// NewStore creates the templates directory if needed.
func NewStore(dir string, log *logrus.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating templates directory %s: %w", dir, err)
	}
	return &Store{dir: dir, log: log}, nil
}

// Dir returns the templates directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".yaml")
}

// Load returns the named template, or nil when it is missing or
// malformed. Generation treats nil as "no template context".
func (s *Store) Load(name string) *Template {
	if name == "" {
		return nil
	}
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warnf("cannot read template %s: %v", name, err)
		}
		return nil
	}
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		s.log.Warnf("cannot parse template %s: %v", name, err)
		return nil
	}
	return &t
}

// Save writes a template under its name.
func (s *Store) Save(name string, t *Template) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshaling template %s: %w", name, err)
	}
	if err := os.WriteFile(s.path(name), data, 0644); err != nil {
		return fmt.Errorf("writing template %s: %w", name, err)
	}
	return nil
}

// List returns every readable template in the store. Unreadable files
// are logged and skipped.
func (s *Store) List() []Info {
	var infos []Info
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.log.Warnf("cannot enumerate templates directory: %v", err)
		return nil
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			s.log.Warnf("cannot read template file %s: %v", path, err)
			continue
		}
		var t Template
		if err := yaml.Unmarshal(data, &t); err != nil {
			s.log.Warnf("cannot parse template file %s: %v", path, err)
			continue
		}
		name := t.Name
		if name == "" {
			name = strings.TrimSuffix(entry.Name(), ".yaml")
		}
		desc := t.Description
		if desc == "" {
			desc = "No description"
		}
		infos = append(infos, Info{Name: name, Description: desc, File: path})
	}
	return infos
}

// Directories never worth capturing in a template.
var skipDirs = map[string]bool{
	".git":         true,
	"venv":         true,
	"__pycache__":  true,
	"node_modules": true,
}

// SaveFromProject captures an existing project directory as a template.
// It prefers the persisted project_structure.json; without one it scans
// the tree into a fresh structure and reads requirements.txt as the
// dependency list.
func (s *Store) SaveFromProject(projectPath, name string) error {
	if _, err := os.Stat(projectPath); err != nil {
		return fmt.Errorf("project %s: %w", projectPath, err)
	}

	ps, err := structure.Load(projectPath)
	if err != nil {
		s.log.Warnf("cannot read persisted structure, scanning instead: %v", err)
		ps = nil
	}
	if ps == nil {
		ps, err = ScanProject(projectPath)
		if err != nil {
			return fmt.Errorf("scanning project %s: %w", projectPath, err)
		}
	}

	t := &Template{
		Name:        name,
		Description: ps.Description,
		Structure:   ps,
	}
	if t.Description == "" {
		t.Description = fmt.Sprintf("Template based on %s", filepath.Base(projectPath))
	}
	return s.Save(name, t)
}

// ScanProject builds a structure from what is actually on disk. It is
// the fallback when a project carries no persisted structure.
func ScanProject(projectPath string) (*structure.ProjectStructure, error) {
	ps := &structure.ProjectStructure{
		Name:            filepath.Base(projectPath),
		Description:     fmt.Sprintf("Template based on %s", filepath.Base(projectPath)),
		Folders:         []string{},
		Files:           []structure.FileSpec{},
		Dependencies:    []string{},
		DevDependencies: []string{},
		Commands:        []structure.Command{},
	}

	err := filepath.WalkDir(projectPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == projectPath {
			return nil
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			rel, err := filepath.Rel(projectPath, path)
			if err != nil {
				return err
			}
			ps.Folders = append(ps.Folders, filepath.ToSlash(rel))
			return nil
		}
		rel, err := filepath.Rel(projectPath, path)
		if err != nil {
			return err
		}
		ps.Files = append(ps.Files, structure.FileSpec{
			Path:        filepath.ToSlash(rel),
			Description: fmt.Sprintf("File %s", filepath.ToSlash(rel)),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if data, err := os.ReadFile(filepath.Join(projectPath, "requirements.txt")); err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				ps.Dependencies = append(ps.Dependencies, line)
			}
		}
	}
	return ps, nil
}
