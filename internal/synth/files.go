package synth

import (
	"context"
	"fmt"
	"sync"

	"github.com/genforge-labs/genforge/internal/extract"
	"github.com/genforge-labs/genforge/internal/structure"
	"github.com/genforge-labs/genforge/internal/syntax"
)

// FileResult carries one generated file's content back to the caller,
// attributed to the FileSpec that requested it. Err is set when the
// content is a placeholder rather than model output; the placeholder is
// still written so the project materializes completely.
type FileResult struct {
	Spec    structure.FileSpec
	Content string
	Err     error
}

// GenerateFileContent produces content for a single declared file. A
// generation failure is converted into placeholder error content; a
// syntax failure on the first attempt triggers one retry with a
// simplified prompt, after which the result is accepted as-is.
func (s *Synthesizer) GenerateFileContent(ctx context.Context, spec structure.FileSpec, ps *structure.ProjectStructure) FileResult {
	raw, err := s.gen.Generate(ctx, filePrompt(spec, ps))
	if err != nil {
		s.log.Errorf("generating %s: %v", spec.Path, err)
		return FileResult{Spec: spec, Content: placeholder(err), Err: err}
	}
	content := extract.CleanCode(raw)

	if serr := syntax.CheckSource(spec.Path, content); serr != nil {
		s.log.Warnf("generated %s is not valid, retrying with a simpler prompt: %v", spec.Path, serr)
		raw, err = s.gen.Generate(ctx, simpleFilePrompt(spec, ps))
		if err == nil {
			content = extract.CleanCode(raw)
		}
	}
	return FileResult{Spec: spec, Content: content}
}

func placeholder(err error) string {
	return fmt.Sprintf("# Error generating content\n# %v\n", err)
}

// GenerateFiles runs per-file content generation for the whole declared
// file set on a bounded worker pool. Results arrive in completion
// order; every declared FileSpec gets exactly one result.
func (s *Synthesizer) GenerateFiles(ctx context.Context, ps *structure.ProjectStructure) []FileResult {
	specs := ps.Files
	if len(specs) == 0 {
		return nil
	}

	jobs := make(chan structure.FileSpec)
	results := make(chan FileResult)

	workers := s.workers
	if workers > len(specs) {
		workers = len(specs)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for spec := range jobs {
				results <- s.GenerateFileContent(ctx, spec, ps)
			}
		}()
	}

	go func() {
		for _, spec := range specs {
			jobs <- spec
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	out := make([]FileResult, 0, len(specs))
	for r := range results {
		out = append(out, r)
	}
	return out
}
