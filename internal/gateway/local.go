package gateway

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// The CLI path is slower to start but bounded tighter than the API.
const (
	localGenerateTimeout = 3 * time.Minute
	localProbeTimeout    = 5 * time.Second
)

// localTransport shells out to the ollama executable.
type localTransport struct {
	executable  string
	temperature float64
}

func newLocalTransport(temperature float64) *localTransport {
	return &localTransport{executable: "ollama", temperature: temperature}
}

func (t *localTransport) name() string { return "cli" }

// available probes with `ollama list`.
func (t *localTransport) available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, localProbeTimeout)
	defer cancel()
	return exec.CommandContext(ctx, t.executable, "list").Run() == nil
}

// generate writes the prompt to a temp file, runs the executable against
// it, and captures stdout. The temp file is removed on every exit path.
func (t *localTransport) generate(ctx context.Context, model, prompt string) (string, error) {
	tmp, err := os.CreateTemp("", "genforge-prompt-*.txt")
	if err != nil {
		return "", fmt.Errorf("creating prompt file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(prompt); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing prompt file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing prompt file: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, localGenerateTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, t.executable, "run", model,
		"--temperature", strconv.FormatFloat(t.temperature, 'f', -1, 64),
		"-f", tmp.Name())

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("running %s: %w: %s", t.executable, err, detail)
		}
		return "", fmt.Errorf("running %s: %w", t.executable, err)
	}
	return stdout.String(), nil
}
