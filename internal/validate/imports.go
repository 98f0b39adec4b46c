package validate

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/genforge-labs/genforge/internal/structure"
)

// pythonStdlib is the fixed exclusion list for dependency inference.
// Importing any of these never implies a requirements entry.
var pythonStdlib = map[string]bool{
	"abc": true, "argparse": true, "array": true, "asyncio": true,
	"base64": true, "bisect": true, "calendar": true, "collections": true,
	"concurrent": true, "configparser": true, "contextlib": true,
	"copy": true, "csv": true, "dataclasses": true, "datetime": true,
	"decimal": true, "difflib": true, "email": true, "enum": true,
	"fractions": true, "functools": true, "getpass": true, "glob": true,
	"gzip": true, "hashlib": true, "heapq": true, "html": true,
	"http": true, "importlib": true, "inspect": true, "io": true,
	"itertools": true, "json": true, "keyword": true, "locale": true,
	"logging": true, "math": true, "mimetypes": true, "multiprocessing": true,
	"numbers": true, "operator": true, "os": true, "pathlib": true,
	"pickle": true, "platform": true, "pprint": true, "queue": true,
	"random": true, "re": true, "sched": true, "secrets": true,
	"select": true, "shutil": true, "signal": true, "socket": true,
	"sqlite3": true, "ssl": true, "stat": true, "statistics": true,
	"string": true, "struct": true, "subprocess": true, "sys": true,
	"sysconfig": true, "tarfile": true, "tempfile": true, "textwrap": true,
	"threading": true, "time": true, "token": true, "tokenize": true,
	"traceback": true, "types": true, "typing": true, "unicodedata": true,
	"unittest": true, "urllib": true, "uuid": true, "venv": true,
	"warnings": true, "weakref": true, "webbrowser": true, "xml": true,
	"xmlrpc": true, "zipfile": true, "zlib": true,
}

// importLine matches a top-level Python import statement and captures
// the module path (group 1 for from-imports, group 2 for plain imports).
var importLine = regexp.MustCompile(`^\s*(?:from\s+([A-Za-z_][\w.]*)\s+import\b|import\s+([A-Za-z_][\w.]*(?:\s*,\s*[A-Za-z_][\w.]*)*))`)

// importRef is one imported module occurrence in a source file.
type importRef struct {
	module  string // full dotted path as written
	lineNum int    // 1-based
}

func topLevel(module string) string {
	if i := strings.IndexByte(module, '.'); i >= 0 {
		return module[:i]
	}
	return module
}

// scanImports extracts the imports of a Python source, one ref per
// imported module. Relative imports carry no top-level name and are
// skipped.
func scanImports(source string) []importRef {
	var refs []importRef
	for i, line := range strings.Split(source, "\n") {
		m := importLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if m[1] != "" {
			refs = append(refs, importRef{module: m[1], lineNum: i + 1})
			continue
		}
		for _, part := range strings.Split(m[2], ",") {
			if mod := strings.TrimSpace(part); mod != "" {
				refs = append(refs, importRef{module: mod, lineNum: i + 1})
			}
		}
	}
	return refs
}

// internalModules derives every module name resolvable from the on-disk
// Python file layout: file stems, dotted paths, and package directories.
func internalModules(files []string) map[string]bool {
	modules := make(map[string]bool)
	for _, f := range files {
		if !strings.HasSuffix(f, ".py") {
			continue
		}
		trimmed := strings.TrimSuffix(f, ".py")
		parts := strings.Split(filepath.ToSlash(trimmed), "/")
		stem := parts[len(parts)-1]
		if stem != "__init__" {
			modules[stem] = true
		}
		modules[strings.Join(parts, ".")] = true
		for i := 1; i < len(parts); i++ {
			modules[parts[i-1]] = true
			modules[strings.Join(parts[:i], ".")] = true
		}
	}
	return modules
}

// typoThreshold is the minimum name similarity for treating an
// unresolved import as a misspelling of an internal module.
const typoThreshold = 0.75

// closestModule returns the internal module most similar to name, or
// "" when nothing clears the threshold.
func closestModule(name string, internal map[string]bool) string {
	best, bestScore := "", 0.0
	for mod := range internal {
		if score := levenshtein.Similarity(name, mod, nil); score > bestScore {
			best, bestScore = mod, score
		}
	}
	if bestScore < typoThreshold || best == name {
		return ""
	}
	return best
}

// rewriteImport replaces module with replacement in the import
// statement on the given line, leaving the rest of the source intact.
func rewriteImport(source, module, replacement string, lineNum int) string {
	lines := strings.Split(source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return source
	}
	line := lines[lineNum-1]
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(module) + `\b`)
	lines[lineNum-1] = re.ReplaceAllString(line, replacement)
	return strings.Join(lines, "\n")
}

// depName extracts the bare package name from a requirements entry
// such as "click==8.1.0" or "flask>=3.0".
func depName(entry string) string {
	entry = strings.TrimSpace(entry)
	for _, sep := range []string{"==", ">=", "<=", "~=", "!=", ">", "<", "[", ";", " "} {
		if i := strings.Index(entry, sep); i >= 0 {
			entry = entry[:i]
		}
	}
	return strings.TrimSpace(entry)
}

// normalizeDep folds the differences between distribution names and
// import names (case, dash vs underscore).
func normalizeDep(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "-", "_"))
}

// declaredDeps collects the normalized names of every declared
// dependency, runtime and dev.
func declaredDeps(ps *structure.ProjectStructure) map[string]bool {
	names := make(map[string]bool)
	for _, entry := range ps.Dependencies {
		names[normalizeDep(depName(entry))] = true
	}
	for _, entry := range ps.DevDependencies {
		names[normalizeDep(depName(entry))] = true
	}
	return names
}
