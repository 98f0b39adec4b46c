package synth

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/genforge-labs/genforge/internal/extract"
	"github.com/genforge-labs/genforge/internal/structure"
	"github.com/genforge-labs/genforge/internal/template"
)

// Generator produces text from a prompt. *gateway.Gateway satisfies it;
// tests substitute a scripted fake.
type Generator interface {
	Generate(ctx context.Context, prompt string, modelOverride ...string) (string, error)
}

// Synthesizer drives the generation plan: structure, then per-file
// content on a bounded worker pool, then README.
type Synthesizer struct {
	gen       Generator
	templates *template.Store
	workers   int
	log       *logrus.Logger
}

func New(gen Generator, templates *template.Store, workers int, log *logrus.Logger) *Synthesizer {
	if workers < 1 {
		workers = 1
	}
	return &Synthesizer{gen: gen, templates: templates, workers: workers, log: log}
}

// elaborationThreshold is the word count below which a description is
// considered too thin to prompt with directly.
const elaborationThreshold = 5

// Elaborate expands a very short description through the model. Any
// failure falls back to the original text.
func (s *Synthesizer) Elaborate(ctx context.Context, description string) string {
	if len(strings.Fields(description)) >= elaborationThreshold {
		return description
	}
	resp, err := s.gen.Generate(ctx, elaboratePrompt(description))
	if err != nil {
		s.log.Warnf("description elaboration failed, using original: %v", err)
		return description
	}
	expanded := strings.TrimSpace(extract.CleanCode(resp))
	if expanded == "" {
		return description
	}
	s.log.Debugf("elaborated description: %s", expanded)
	return expanded
}

// GenerateStructure asks the model for a project structure. A named
// template, when it exists, is embedded as extra context. Failures here
// are hard: without a structure there is nothing to build.
func (s *Synthesizer) GenerateStructure(ctx context.Context, description, templateName string) (*structure.ProjectStructure, error) {
	description = s.Elaborate(ctx, description)

	var tmplContext string
	if s.templates != nil && templateName != "" {
		tmplContext = templateContext(s.templates.Load(templateName))
		if tmplContext == "" {
			s.log.Warnf("template %s not usable, generating without it", templateName)
		}
	}

	resp, err := s.gen.Generate(ctx, structurePrompt(description, tmplContext))
	if err != nil {
		return nil, fmt.Errorf("generating project structure: %w", err)
	}

	jsonText, err := extract.ExtractJSON(resp)
	if err != nil {
		return nil, fmt.Errorf("extracting structure JSON: %w", err)
	}

	if result, err := structure.Validate(jsonText); err == nil && !result.Valid {
		for _, issue := range result.Issues {
			s.log.Warnf("structure schema: %s: %s", issue.Path, issue.Message)
		}
	}

	ps, err := structure.Decode(jsonText)
	if err != nil {
		return nil, fmt.Errorf("decoding project structure: %w", err)
	}
	s.sanitize(ps)
	s.log.Infof("structure generated for project: %s", ps.Name)
	return ps, nil
}

// sanitize drops entries whose paths would escape the project root.
// The materializer relies on every remaining path being safely relative.
func (s *Synthesizer) sanitize(ps *structure.ProjectStructure) {
	folders := ps.Folders[:0]
	for _, f := range ps.Folders {
		if err := structure.CheckPath(f); err != nil {
			s.log.Warnf("dropping folder %q: %v", f, err)
			continue
		}
		folders = append(folders, f)
	}
	ps.Folders = folders

	files := ps.Files[:0]
	for _, f := range ps.Files {
		if err := structure.CheckPath(f.Path); err != nil {
			s.log.Warnf("dropping file %q: %v", f.Path, err)
			continue
		}
		files = append(files, f)
	}
	ps.Files = files
}

// RepairSyntax asks the model for a corrected version of a file that
// failed its syntax check. The caller decides whether to keep the
// result; this only composes the call and cleans the output.
func (s *Synthesizer) RepairSyntax(ctx context.Context, relPath, content string, line int, message string) (string, error) {
	resp, err := s.gen.Generate(ctx, repairPrompt(relPath, content, line, message))
	if err != nil {
		return "", fmt.Errorf("repairing %s: %w", relPath, err)
	}
	return extract.CleanCode(resp), nil
}

// GenerateReadme produces the project README. Failure degrades to a
// minimal stub so materialization can continue.
func (s *Synthesizer) GenerateReadme(ctx context.Context, ps *structure.ProjectStructure) string {
	resp, err := s.gen.Generate(ctx, readmePrompt(ps))
	if err != nil {
		s.log.Errorf("README generation failed: %v", err)
		return fmt.Sprintf("# %s\n\n%s\n\n*README generation failed*\n", ps.Name, ps.Description)
	}
	return extract.CleanCode(resp)
}
