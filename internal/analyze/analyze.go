package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/genforge-labs/genforge/internal/extract"
	"github.com/genforge-labs/genforge/internal/structure"
	"github.com/genforge-labs/genforge/internal/synth"
	"github.com/genforge-labs/genforge/internal/template"
)

// FixReportFileName is written into the project root after FixProject.
const FixReportFileName = "fix_report.json"

// Sampling limits keep the review prompt inside the model's window.
const (
	sampleFileLimit = 10
	sampleByteLimit = 2000
)

// Analyzer reviews and repairs existing projects through the model.
type Analyzer struct {
	gen synth.Generator
	log *logrus.Logger
}

func New(gen synth.Generator, log *logrus.Logger) *Analyzer {
	return &Analyzer{gen: gen, log: log}
}

type codeSample struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Analyze reviews a project directory and returns the model's findings.
func (a *Analyzer) Analyze(ctx context.Context, root string) (*AnalysisReport, error) {
	ps, err := a.loadStructure(root)
	if err != nil {
		return nil, err
	}

	samples := a.collectSamples(root, ps)
	resp, err := a.gen.Generate(ctx, analysisPrompt(ps, samples))
	if err != nil {
		return nil, fmt.Errorf("analyzing project: %w", err)
	}
	jsonText, err := extract.ExtractJSON(resp)
	if err != nil {
		return nil, fmt.Errorf("extracting analysis JSON: %w", err)
	}

	var report AnalysisReport
	if err := json.Unmarshal([]byte(jsonText), &report); err != nil {
		return nil, fmt.Errorf("decoding analysis: %w", err)
	}
	if report.Issues == nil {
		report.Issues = []CodeIssue{}
	}
	if report.Recommendations == nil {
		report.Recommendations = []Recommendation{}
	}
	a.log.Infof("analysis of %s finished with %d issues", root, len(report.Issues))
	return &report, nil
}

func (a *Analyzer) loadStructure(root string) (*structure.ProjectStructure, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("project %s: %w", root, err)
	}
	ps, err := structure.Load(root)
	if err != nil {
		a.log.Warnf("persisted structure unreadable, scanning instead: %v", err)
		ps = nil
	}
	if ps == nil {
		ps, err = template.ScanProject(root)
		if err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
	}
	return ps, nil
}

// collectSamples reads the first declared files, truncated so large
// projects still fit the prompt.
func (a *Analyzer) collectSamples(root string, ps *structure.ProjectStructure) []codeSample {
	var samples []codeSample
	for _, spec := range ps.Files {
		if len(samples) == sampleFileLimit {
			break
		}
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(spec.Path)))
		if err != nil {
			a.log.Warnf("cannot read %s: %v", spec.Path, err)
			continue
		}
		content := string(data)
		if len(content) > sampleByteLimit {
			content = content[:sampleByteLimit] + "..."
		}
		samples = append(samples, codeSample{Path: spec.Path, Content: content})
	}
	return samples
}

// FixFile asks the model to correct one file for a described problem
// and returns the cleaned replacement content. The file on disk is not
// touched.
func (a *Analyzer) FixFile(ctx context.Context, path, problem string, ps *structure.ProjectStructure) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	resp, err := a.gen.Generate(ctx, fixPrompt(filepath.Base(path), problem, string(data), ps))
	if err != nil {
		return "", fmt.Errorf("fixing %s: %w", path, err)
	}
	return extract.CleanCode(resp), nil
}

// FixProject applies a correction for every issue in the analysis,
// backing up each original next to it. A nil analysis triggers a fresh
// Analyze first. Per-issue failures are recorded, never fatal.
func (a *Analyzer) FixProject(ctx context.Context, root string, analysis *AnalysisReport) (*FixReport, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("project %s: %w", root, err)
	}
	if analysis == nil {
		var err error
		analysis, err = a.Analyze(ctx, root)
		if err != nil {
			return nil, err
		}
	}

	ps, err := structure.Load(root)
	if err != nil {
		a.log.Warnf("persisted structure unreadable: %v", err)
	}

	details := FixDetails{
		FixedFiles:   []FixedFile{},
		SkippedFiles: []SkippedFile{},
		Errors:       []FixError{},
	}

	for _, issue := range analysis.Issues {
		if issue.File == "" {
			details.Errors = append(details.Errors, FixError{
				Description: "issue without a file reference",
			})
			continue
		}
		abs := filepath.Join(root, filepath.FromSlash(issue.File))
		if fi, err := os.Stat(abs); err != nil || fi.IsDir() {
			details.SkippedFiles = append(details.SkippedFiles, SkippedFile{
				File: issue.File, Reason: "file not found",
			})
			continue
		}

		problem := fmt.Sprintf("%s: %s", issue.Type, issue.Description)
		if issue.Suggestion != "" {
			problem += "\n\nSuggestion: " + issue.Suggestion
		}

		corrected, err := a.FixFile(ctx, abs, problem, ps)
		if err != nil {
			a.log.Errorf("fixing %s: %v", issue.File, err)
			details.Errors = append(details.Errors, FixError{File: issue.File, Error: err.Error()})
			continue
		}

		backup := issue.File + ".bak"
		if err := backupFile(abs, abs+".bak"); err != nil {
			details.Errors = append(details.Errors, FixError{File: issue.File, Error: err.Error()})
			continue
		}
		if err := os.WriteFile(abs, []byte(corrected), 0644); err != nil {
			details.Errors = append(details.Errors, FixError{File: issue.File, Error: err.Error()})
			continue
		}
		details.FixedFiles = append(details.FixedFiles, FixedFile{
			File: issue.File, Issue: issue.Type, Backup: backup,
		})
		a.log.Infof("file corrected: %s", issue.File)
	}

	report := &FixReport{
		Project:      root,
		Timestamp:    time.Now().UTC(),
		FixedCount:   len(details.FixedFiles),
		SkippedCount: len(details.SkippedFiles),
		ErrorCount:   len(details.Errors),
		Details:      details,
	}
	if data, err := json.MarshalIndent(report, "", "  "); err == nil {
		if err := os.WriteFile(filepath.Join(root, FixReportFileName), data, 0644); err != nil {
			a.log.Errorf("writing %s: %v", FixReportFileName, err)
		}
	}
	return report, nil
}

func backupFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("backing up %s: %w", src, err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("backing up %s: %w", src, err)
	}
	return nil
}
