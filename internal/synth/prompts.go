package synth

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/genforge-labs/genforge/internal/structure"
	"github.com/genforge-labs/genforge/internal/template"
)

// fileCategory selects the prompt flavor for a file path.
type fileCategory int

const (
	categoryCode fileCategory = iota
	categoryDoc
	categoryConfig
	categoryGeneric
)

var codeExts = map[string]bool{
	".py": true, ".go": true, ".js": true, ".jsx": true, ".ts": true,
	".tsx": true, ".rb": true, ".java": true, ".c": true, ".cpp": true,
	".h": true, ".rs": true, ".sh": true, ".sql": true, ".html": true,
	".css": true,
}

var configExts = map[string]bool{
	".json": true, ".yaml": true, ".yml": true, ".toml": true,
	".ini": true, ".cfg": true, ".env": true,
}

var docExts = map[string]bool{
	".md": true, ".rst": true, ".txt": true,
}

func categorize(path string) fileCategory {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case codeExts[ext]:
		return categoryCode
	case configExts[ext]:
		return categoryConfig
	case docExts[ext]:
		return categoryDoc
	default:
		return categoryGeneric
	}
}

func elaboratePrompt(description string) string {
	return fmt.Sprintf(`Expand the following short project idea into a fuller project description of two or three sentences. Keep the original intent, add the likely main features and the kind of application it is.

Project idea: %s

Respond ONLY with the expanded description, no preamble.`, description)
}

func templateContext(t *template.Template) string {
	if t == nil || t.Structure == nil {
		return ""
	}
	enc, err := json.MarshalIndent(t.Structure, "", "  ")
	if err != nil {
		return ""
	}
	return fmt.Sprintf("Use the template %q: %s\nSuggested structure:\n%s\n", t.Name, t.Description, enc)
}

func structurePrompt(description, tmplContext string) string {
	return fmt.Sprintf(`As a software development expert, generate a complete project structure for: %s

%s
Respond ONLY with valid JSON matching this shape, without any explanatory text:

{
  "name": "project_name",
  "description": "Detailed project description",
  "folders": [
    "folder1",
    "folder2/subfolder"
  ],
  "files": [
    {
      "path": "relative/path/file.ext",
      "description": "Detailed description of the content and features"
    }
  ],
  "dependencies": [
    "dep1",
    "dep2==version"
  ],
  "dev_dependencies": [
    "test-framework",
    "linter"
  ],
  "commands": [
    {"name": "start", "command": "command to start the application"},
    {"name": "test", "command": "command to run the tests"}
  ]
}

Make sure the structure is complete and coherent for a working application.
Include every necessary file (configuration, tests, documentation, etc).`, description, tmplContext)
}

// sharedFileContext is the sibling/dependency block embedded in every
// per-file prompt so the model keeps generated files consistent.
func sharedFileContext(ps *structure.ProjectStructure) string {
	folders, _ := json.MarshalIndent(ps.Folders, "", "  ")
	files, _ := json.MarshalIndent(ps.FilePaths(), "", "  ")
	deps, _ := json.MarshalIndent(ps.Dependencies, "", "  ")
	return fmt.Sprintf(`Project structure:
%s

Other files in the project:
%s

Main dependencies:
%s`, folders, files, deps)
}

func filePrompt(spec structure.FileSpec, ps *structure.ProjectStructure) string {
	header := fmt.Sprintf(`Generate the complete content of the file %q for a project named %q.

Project description: %s
File description: %s

%s`, spec.Path, ps.Name, ps.Description, spec.Description, sharedFileContext(ps))

	var rules string
	switch categorize(spec.Path) {
	case categoryCode:
		rules = `Make sure that:
1. The code is complete, functional and follows best practices
2. The code is well commented and documented
3. The code is consistent with the other files in the project
4. The code follows the conventions of the language used

Respond ONLY with the file content, without any explanation or markdown fences.`
	case categoryConfig:
		rules = `This is a configuration file. It must be syntactically valid for its format and consistent with the declared dependencies and commands.

Respond ONLY with the file content, without any explanation or markdown fences.`
	case categoryDoc:
		rules = `This is a documentation file. Write clear, well organized prose with appropriate headings.

Respond ONLY with the file content, without any explanation.`
	default:
		rules = `Respond ONLY with the file content, without any explanation or markdown fences.`
	}
	return header + "\n\n" + rules
}

// simpleFilePrompt drops the sibling context; used once after a syntax
// failure on the first attempt.
func simpleFilePrompt(spec structure.FileSpec, ps *structure.ProjectStructure) string {
	return fmt.Sprintf(`Generate the file %q for the project %q.
Purpose: %s

The previous attempt was not syntactically valid. Produce a minimal, syntactically correct version.
Respond ONLY with the file content, without any explanation or markdown fences.`, spec.Path, ps.Name, spec.Description)
}

// repairPrompt seeds a targeted fix with the exact parser diagnostic.
func repairPrompt(relPath, content string, line int, message string) string {
	position := "an unknown line"
	if line > 0 {
		position = fmt.Sprintf("line %d", line)
	}
	return fmt.Sprintf(`The file %q contains a syntax error at %s: %s

Current content:
%s

Fix the syntax error and respond ONLY with the complete corrected file content, without any explanation or markdown fences. Keep every part of the file that is already correct unchanged.`, relPath, position, message, content)
}

func readmePrompt(ps *structure.ProjectStructure) string {
	folders, _ := json.MarshalIndent(ps.Folders, "", "  ")
	files, _ := json.MarshalIndent(ps.FilePaths(), "", "  ")
	deps, _ := json.MarshalIndent(ps.Dependencies, "", "  ")
	commands, _ := json.MarshalIndent(ps.Commands, "", "  ")
	return fmt.Sprintf(`Generate a complete, well structured README.md for the project %q.

Project description: %s

Project structure:
%s

Main files:
%s

Dependencies:
%s

Commands:
%s

The README must include:
1. A title and clear introduction of the project
2. Technical prerequisites
3. Detailed installation instructions
4. How to configure and run the project
5. The project structure explained
6. API or main features (if applicable)
7. Concrete usage examples with code
8. How to contribute
9. License
10. Credits and acknowledgements

Use well organized sections with appropriate heading levels.
Include code blocks with proper markdown syntax.

Respond ONLY with the markdown content of the README, without any additional explanation.`, ps.Name, ps.Description, folders, files, deps, commands)
}
