package validate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/sirupsen/logrus"

	"github.com/genforge-labs/genforge/internal/structure"
	"github.com/genforge-labs/genforge/internal/synth"
	"github.com/genforge-labs/genforge/internal/syntax"
	"github.com/genforge-labs/genforge/internal/template"
)

// Issue types, one per check.
const (
	IssueImport     = "import"
	IssueSyntax     = "syntax"
	IssueDependency = "dependency"
	IssueStructure  = "structure"
)

// Report statuses.
const (
	StatusSuccess         = "success"
	StatusFixed           = "fixed"
	StatusIssuesRemaining = "issues_remaining"
	StatusError           = "error"
)

// ReportFileName is written into the project root after every run.
const ReportFileName = "validation_report.json"

// Issue is one recorded divergence and whether it was remediated.
type Issue struct {
	Type    string `json:"type"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
	Fixed   bool   `json:"fixed"`
}

// Report is the persisted outcome of a validation pass.
type Report struct {
	Project     string    `json:"project"`
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"`
	IssuesFound int       `json:"issues_found"`
	IssuesFixed int       `json:"issues_fixed"`
	Issues      []Issue   `json:"issues"`
	Error       string    `json:"error,omitempty"`
}

// Validator runs the four repair checks against a project directory.
type Validator struct {
	syn *synth.Synthesizer
	log *logrus.Logger
}

func New(syn *synth.Synthesizer, log *logrus.Logger) *Validator {
	return &Validator{syn: syn, log: log}
}

// pass carries the state shared between checks within one run.
type pass struct {
	root string
	ps   *structure.ProjectStructure
	rep  *Report

	// unresolved maps a normalized external module name to the indices
	// of the import issues it produced, so the dependency check can
	// mark them fixed once the package is declared.
	unresolved map[string][]int
}

// Run executes every check in order and persists the report. An
// internal error aborts the remaining checks but still emits whatever
// was accumulated.
func (v *Validator) Run(ctx context.Context, root string) *Report {
	rep := &Report{
		Project:   root,
		Timestamp: time.Now().UTC(),
		Issues:    []Issue{},
	}

	ps, err := v.loadStructure(root)
	if err != nil {
		rep.Status = StatusError
		rep.Error = err.Error()
		v.persist(root, rep)
		return rep
	}

	p := &pass{root: root, ps: ps, rep: rep, unresolved: map[string][]int{}}

	checks := []func(context.Context, *pass) error{
		v.checkImports,
		v.checkSyntax,
		v.checkDependencies,
		v.checkStructure,
	}
	for _, check := range checks {
		if err := check(ctx, p); err != nil {
			rep.Status = StatusError
			rep.Error = err.Error()
			break
		}
	}

	rep.IssuesFound = len(rep.Issues)
	for _, issue := range rep.Issues {
		if issue.Fixed {
			rep.IssuesFixed++
		}
	}
	if rep.Status != StatusError {
		switch {
		case rep.IssuesFound == 0:
			rep.Status = StatusSuccess
		case rep.IssuesFixed == rep.IssuesFound:
			rep.Status = StatusFixed
		default:
			rep.Status = StatusIssuesRemaining
		}
	}

	v.persist(root, rep)
	return rep
}

// loadStructure prefers the persisted structure and falls back to
// inferring one from the tree.
func (v *Validator) loadStructure(root string) (*structure.ProjectStructure, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("project %s: %w", root, err)
	}
	ps, err := structure.Load(root)
	if err != nil {
		v.log.Warnf("persisted structure unreadable, inferring from disk: %v", err)
		ps = nil
	}
	if ps == nil {
		ps, err = template.ScanProject(root)
		if err != nil {
			return nil, fmt.Errorf("inferring structure: %w", err)
		}
	}
	return ps, nil
}

var skipDirs = map[string]bool{
	".git":         true,
	"venv":         true,
	"__pycache__":  true,
	"node_modules": true,
}

// listFiles returns relative slash paths of every regular file worth
// checking, skipping generated-environment directories and backups.
func listFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".bak") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

func pythonFiles(files []string) []string {
	var py []string
	for _, f := range files {
		if strings.HasSuffix(f, ".py") {
			py = append(py, f)
		}
	}
	return py
}

// checkImports classifies every import in every Python source. A name
// close to an internal module is treated as a typo and rewritten in
// place; anything else non-standard is recorded for the dependency
// check to resolve.
func (v *Validator) checkImports(_ context.Context, p *pass) error {
	files, err := listFiles(p.root)
	if err != nil {
		return err
	}
	internal := internalModules(files)
	declared := declaredDeps(p.ps)

	for _, rel := range pythonFiles(files) {
		abs := filepath.Join(p.root, filepath.FromSlash(rel))
		data, err := os.ReadFile(abs)
		if err != nil {
			return fmt.Errorf("reading %s: %w", rel, err)
		}
		source := string(data)
		changed := false

		for _, ref := range scanImports(source) {
			top := topLevel(ref.module)
			if pythonStdlib[top] || internal[top] || internal[ref.module] || declared[normalizeDep(top)] {
				continue
			}
			if repl := closestModule(top, internal); repl != "" {
				source = rewriteImport(source, top, repl, ref.lineNum)
				changed = true
				p.rep.Issues = append(p.rep.Issues, Issue{
					Type:    IssueImport,
					File:    rel,
					Line:    ref.lineNum,
					Message: fmt.Sprintf("import %q rewritten to internal module %q", ref.module, repl),
					Fixed:   true,
				})
				v.log.Infof("%s:%d: import %s -> %s", rel, ref.lineNum, ref.module, repl)
				continue
			}
			p.rep.Issues = append(p.rep.Issues, Issue{
				Type:    IssueImport,
				File:    rel,
				Line:    ref.lineNum,
				Message: fmt.Sprintf("unresolved import %q", ref.module),
			})
			key := normalizeDep(top)
			p.unresolved[key] = append(p.unresolved[key], len(p.rep.Issues)-1)
		}

		if changed {
			if err := os.WriteFile(abs, []byte(source), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", rel, err)
			}
		}
	}
	return nil
}

// checkSyntax parses every checkable file and asks the model for one
// targeted repair per broken file. The rewrite is committed only when
// the repaired content parses.
func (v *Validator) checkSyntax(ctx context.Context, p *pass) error {
	files, err := listFiles(p.root)
	if err != nil {
		return err
	}

	for _, rel := range files {
		abs := filepath.Join(p.root, filepath.FromSlash(rel))
		cerr := syntax.CheckFile(abs)
		if cerr == nil {
			continue
		}
		var serr *syntax.Error
		if !errors.As(cerr, &serr) {
			return cerr
		}

		issue := Issue{Type: IssueSyntax, File: rel, Line: serr.Line, Message: serr.Message}

		data, err := os.ReadFile(abs)
		if err != nil {
			return fmt.Errorf("reading %s: %w", rel, err)
		}
		repaired, rerr := v.syn.RepairSyntax(ctx, rel, string(data), serr.Line, serr.Message)
		if rerr != nil {
			v.log.Warnf("syntax repair for %s failed: %v", rel, rerr)
		} else if syntax.CheckSource(rel, repaired) == nil {
			if err := os.WriteFile(abs, []byte(repaired), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", rel, err)
			}
			issue.Fixed = true
			v.log.Infof("syntax error in %s repaired", rel)
		} else {
			v.log.Warnf("repaired %s still does not parse, keeping the original", rel)
		}
		p.rep.Issues = append(p.rep.Issues, issue)
	}
	return nil
}

// checkDependencies appends every imported third-party package missing
// from the declared dependencies. The manifest only ever grows.
func (v *Validator) checkDependencies(_ context.Context, p *pass) error {
	files, err := listFiles(p.root)
	if err != nil {
		return err
	}
	internal := internalModules(files)
	declared := declaredDeps(p.ps)
	v.warnMalformedPins(p.ps.Dependencies)

	missing := map[string]string{} // normalized -> import name
	for _, rel := range pythonFiles(files) {
		data, err := os.ReadFile(filepath.Join(p.root, filepath.FromSlash(rel)))
		if err != nil {
			return fmt.Errorf("reading %s: %w", rel, err)
		}
		for _, ref := range scanImports(string(data)) {
			top := topLevel(ref.module)
			if pythonStdlib[top] || internal[top] || internal[ref.module] {
				continue
			}
			if key := normalizeDep(top); !declared[key] {
				missing[key] = top
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}

	keys := make([]string, 0, len(missing))
	for key := range missing {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var added []string
	for _, key := range keys {
		name := missing[key]
		p.ps.Dependencies = append(p.ps.Dependencies, name)
		added = append(added, name)
		p.rep.Issues = append(p.rep.Issues, Issue{
			Type:    IssueDependency,
			Message: fmt.Sprintf("package %q imported but not declared, added to dependencies", name),
			Fixed:   true,
		})
		for _, idx := range p.unresolved[key] {
			p.rep.Issues[idx].Fixed = true
		}
		v.log.Infof("dependency %s declared", name)
	}

	if err := appendRequirements(p.root, added); err != nil {
		return err
	}
	if err := p.ps.Save(p.root); err != nil {
		return fmt.Errorf("persisting updated structure: %w", err)
	}
	return nil
}

// warnMalformedPins flags pinned versions that do not parse as a
// version number. Advisory only.
func (v *Validator) warnMalformedPins(deps []string) {
	for _, entry := range deps {
		name, pin, found := strings.Cut(entry, "==")
		if !found {
			continue
		}
		if _, err := semver.NewVersion(strings.TrimSpace(pin)); err != nil {
			v.log.Warnf("dependency %s has an unparseable version pin %q", strings.TrimSpace(name), pin)
		}
	}
}

func appendRequirements(root string, deps []string) error {
	path := filepath.Join(root, "requirements.txt")
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading requirements.txt: %w", err)
	}
	content := string(existing)
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += strings.Join(deps, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing requirements.txt: %w", err)
	}
	return nil
}

// checkStructure creates declared folders that are missing and
// regenerates declared files that are missing through the standard
// per-file generation path.
func (v *Validator) checkStructure(ctx context.Context, p *pass) error {
	for _, folder := range p.ps.Folders {
		abs := filepath.Join(p.root, filepath.FromSlash(folder))
		if _, err := os.Stat(abs); err == nil {
			continue
		}
		issue := Issue{Type: IssueStructure, File: folder, Message: "declared folder missing"}
		if err := os.MkdirAll(abs, 0755); err != nil {
			v.log.Errorf("creating %s: %v", folder, err)
		} else {
			issue.Fixed = true
			issue.Message = "declared folder missing, created"
		}
		p.rep.Issues = append(p.rep.Issues, issue)
	}

	for _, spec := range p.ps.Files {
		abs := filepath.Join(p.root, filepath.FromSlash(spec.Path))
		if _, err := os.Stat(abs); err == nil {
			continue
		}
		issue := Issue{Type: IssueStructure, File: spec.Path, Message: "declared file missing"}
		r := v.syn.GenerateFileContent(ctx, spec, p.ps)
		if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
			v.log.Errorf("creating parent of %s: %v", spec.Path, err)
		} else if err := os.WriteFile(abs, []byte(r.Content), 0644); err != nil {
			v.log.Errorf("writing %s: %v", spec.Path, err)
		} else if r.Err == nil {
			issue.Fixed = true
			issue.Message = "declared file missing, regenerated"
		} else {
			issue.Message = fmt.Sprintf("declared file missing, regeneration failed: %v", r.Err)
		}
		p.rep.Issues = append(p.rep.Issues, issue)
	}
	return nil
}

func (v *Validator) persist(root string, rep *Report) {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		v.log.Errorf("encoding validation report: %v", err)
		return
	}
	if err := os.WriteFile(filepath.Join(root, ReportFileName), data, 0644); err != nil {
		v.log.Errorf("writing %s: %v", ReportFileName, err)
	}
}
