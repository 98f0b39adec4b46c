// Package synth turns a natural-language description into a complete
// in-memory project: a ProjectStructure, content for every declared file,
// and a README. It composes model calls with the extract package and never
// touches the project directory itself; materialization belongs to the
// project package.
package synth
