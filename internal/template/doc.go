// Package template manages reusable project templates: YAML files pairing a
// name and description with a stored ProjectStructure. A template feeds the
// structure-generation prompt as additional context; a missing or malformed
// template degrades to no context rather than failing generation.
package template
