// Package validate inspects a materialized project for divergence
// between its declared structure and what is actually on disk, and
// repairs what it can: typo'd internal imports, syntax errors, missing
// dependency declarations, and missing folders or files. Every finding
// lands in a structured report persisted next to the project.
package validate
