package gateway

import (
	"errors"
	"fmt"
)

// ErrUnavailable reports that neither the HTTP API nor the local
// executable responded at construction time. The pipeline cannot run.
var ErrUnavailable = errors.New("gateway: no reachable generation transport (is ollama running?)")

// GenerationError reports that every retry against the model failed.
// It wraps the last transport error.
type GenerationError struct {
	Attempts int
	Last     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("gateway: generation failed after %d attempts: %v", e.Attempts, e.Last)
}

func (e *GenerationError) Unwrap() error { return e.Last }
