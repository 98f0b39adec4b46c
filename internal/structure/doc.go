// Package structure defines the project description produced by the
// synthesizer: the declared folders, files, dependencies, and commands of a
// project to materialize. It decodes model-emitted JSON into that shape with
// usable-partial semantics, checks path safety, validates against an embedded
// JSON Schema, and persists the description as project_structure.json.
package structure
