package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Generation is slow; give the API minutes, not seconds.
const (
	httpGenerateTimeout = 10 * time.Minute
	httpProbeTimeout    = 5 * time.Second
)

// httpTransport talks to the Ollama HTTP API.
type httpTransport struct {
	baseURL     string
	temperature float64
	client      *http.Client
}

func newHTTPTransport(baseURL string, temperature float64) *httpTransport {
	return &httpTransport{
		baseURL:     strings.TrimRight(baseURL, "/"),
		temperature: temperature,
		client:      &http.Client{Timeout: httpGenerateTimeout},
	}
}

func (t *httpTransport) name() string { return "api" }

// available probes the tags endpoint with a short timeout.
func (t *httpTransport) available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, httpProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

type generateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Stream      bool    `json:"stream"`
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Response string `json:"response"`
}

func (t *httpTransport) generate(ctx context.Context, model, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Model:       model,
		Prompt:      prompt,
		Stream:      false,
		Temperature: t.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("encoding generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling generate API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("generate API returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding generate response: %w", err)
	}
	return out.Response, nil
}
