package project

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/genforge-labs/genforge/internal/structure"
	"github.com/genforge-labs/genforge/internal/synth"
)

// Materializer writes synthesized projects under a base directory.
type Materializer struct {
	basePath string
	synth    *synth.Synthesizer
	initGit  bool
	log      *logrus.Logger

	now func() time.Time
}

func NewMaterializer(basePath string, s *synth.Synthesizer, initGit bool, log *logrus.Logger) *Materializer {
	return &Materializer{
		basePath: basePath,
		synth:    s,
		initGit:  initGit,
		log:      log,
		now:      time.Now,
	}
}

// Create runs the full pipeline for a description: structure, files,
// README, manifests, persisted structure, git. It returns the project
// root. Structure generation failure aborts; everything after the root
// exists is best-effort per artifact.
func (m *Materializer) Create(ctx context.Context, description, templateName string) (string, error) {
	start := m.now()
	m.log.Infof("creating project for: %s", description)

	ps, err := m.synth.GenerateStructure(ctx, description, templateName)
	if err != nil {
		return "", err
	}

	root := filepath.Join(m.basePath, fmt.Sprintf("%s_%s", ps.Name, start.Format("20060102_150405")))
	if err := os.MkdirAll(root, 0755); err != nil {
		return "", fmt.Errorf("creating project directory %s: %w", root, err)
	}
	m.log.Infof("project root: %s", root)

	for _, folder := range ps.Folders {
		path := filepath.Join(root, filepath.FromSlash(folder))
		if err := os.MkdirAll(path, 0755); err != nil {
			m.log.Errorf("creating folder %s: %v", folder, err)
			continue
		}
		m.log.Debugf("folder created: %s", folder)
	}

	for _, r := range m.synth.GenerateFiles(ctx, ps) {
		if err := writeProjectFile(root, r.Spec.Path, r.Content); err != nil {
			m.log.Errorf("writing %s: %v", r.Spec.Path, err)
			continue
		}
		if r.Err != nil {
			m.log.Warnf("file %s contains placeholder content: %v", r.Spec.Path, r.Err)
		} else {
			m.log.Debugf("file created: %s", r.Spec.Path)
		}
	}

	readmePath := filepath.Join(root, "README.md")
	if _, err := os.Stat(readmePath); os.IsNotExist(err) {
		if err := os.WriteFile(readmePath, []byte(m.synth.GenerateReadme(ctx, ps)), 0644); err != nil {
			m.log.Errorf("writing README.md: %v", err)
		}
	}

	writeManifest(m.log, root, "requirements.txt", ps.Dependencies)
	writeManifest(m.log, root, "dev-requirements.txt", ps.DevDependencies)

	if m.initGit {
		m.initRepository(root)
	}

	if err := ps.Save(root); err != nil {
		m.log.Errorf("persisting project structure: %v", err)
	}

	m.log.Infof("project created in %.2f seconds", m.now().Sub(start).Seconds())
	return root, nil
}

func writeProjectFile(root, relPath, content string) error {
	path := filepath.Join(root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func writeManifest(log *logrus.Logger, root, name string, deps []string) {
	if len(deps) == 0 {
		return
	}
	content := strings.Join(deps, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0644); err != nil {
		log.Errorf("writing %s: %v", name, err)
		return
	}
	log.Infof("%s written", name)
}

// initRepository runs git init and drops the standard git metadata
// files. Any failure is a warning; version control is a convenience.
func (m *Materializer) initRepository(root string) {
	cmd := exec.Command("git", "init")
	cmd.Dir = root
	if out, err := cmd.CombinedOutput(); err != nil {
		m.log.Warnf("git init failed: %v (%s)", err, strings.TrimSpace(string(out)))
		return
	}
	if err := os.WriteFile(filepath.Join(root, ".gitignore"), []byte(gitignoreContent), 0644); err != nil {
		m.log.Warnf("writing .gitignore: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, ".gitattributes"), []byte(gitattributesContent), 0644); err != nil {
		m.log.Warnf("writing .gitattributes: %v", err)
	}
	m.log.Info("git repository initialized")
}

// Regenerate rebuilds one declared file in an existing project through
// the standard per-file generation path. The validator uses it to
// restore files that are declared but missing on disk.
func (m *Materializer) Regenerate(ctx context.Context, root string, spec structure.FileSpec, ps *structure.ProjectStructure) error {
	r := m.synth.GenerateFileContent(ctx, spec, ps)
	if err := writeProjectFile(root, spec.Path, r.Content); err != nil {
		return fmt.Errorf("writing %s: %w", spec.Path, err)
	}
	return r.Err
}
