// Package analyze reviews an existing project through the model: it
// samples source files into a review prompt, decodes the structured
// findings, and can apply per-issue corrections with backups and a
// persisted fix report.
package analyze
