// Package project materializes a synthesized project onto disk: the
// folder tree, every generated file, the README, dependency manifests,
// the persisted structure, and an optional git repository.
package project
