// Package syntax checks generated file content against the grammar of its
// language. Python sources are compiled with the local interpreter when one
// is installed; JSON and YAML files are parsed directly. Unknown extensions
// are never an error.
package syntax
