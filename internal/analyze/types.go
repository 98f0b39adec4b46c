package analyze

import "time"

// CodeIssue is one model-reported problem in a specific file.
type CodeIssue struct {
	File        string `json:"file"`
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Suggestion  string `json:"suggestion,omitempty"`
}

// Recommendation is a project-level improvement suggestion.
type Recommendation struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// AnalysisReport is the decoded outcome of a project review.
type AnalysisReport struct {
	Issues          []CodeIssue      `json:"issues"`
	Recommendations []Recommendation `json:"recommendations"`
	OverallQuality  string           `json:"overall_quality"`
	Summary         string           `json:"summary"`
}

// FixedFile records one applied correction and where the original went.
type FixedFile struct {
	File   string `json:"file"`
	Issue  string `json:"issue"`
	Backup string `json:"backup"`
}

// SkippedFile records an issue that could not be acted on.
type SkippedFile struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// FixError records a correction attempt that failed.
type FixError struct {
	File        string `json:"file,omitempty"`
	Description string `json:"description,omitempty"`
	Error       string `json:"error,omitempty"`
}

// FixDetails groups the per-file outcomes of a repair run.
type FixDetails struct {
	FixedFiles   []FixedFile   `json:"fixed_files"`
	SkippedFiles []SkippedFile `json:"skipped_files"`
	Errors       []FixError    `json:"errors"`
}

// FixReport is persisted as fix_report.json after a repair run.
type FixReport struct {
	Project      string     `json:"project"`
	Timestamp    time.Time  `json:"timestamp"`
	FixedCount   int        `json:"fixed_count"`
	SkippedCount int        `json:"skipped_count"`
	ErrorCount   int        `json:"error_count"`
	Details      FixDetails `json:"details"`
}
