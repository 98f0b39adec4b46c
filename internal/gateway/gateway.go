package gateway

import (
	"context"
	"time"

	"github.com/genforge-labs/genforge/internal/cache"
	"github.com/genforge-labs/genforge/internal/config"
	"github.com/sirupsen/logrus"
)

// retryDelay is the fixed pause between failed attempts.
const retryDelay = 2 * time.Second

// transport is one way of reaching the model.
type transport interface {
	name() string
	available(ctx context.Context) bool
	generate(ctx context.Context, model, prompt string) (string, error)
}

// Gateway issues generation calls against whichever transport answered
// the construction probe, caching every successful response.
type Gateway struct {
	tr         transport
	model      string
	maxRetries int
	delay      time.Duration
	cache      *cache.Cache
	log        *logrus.Logger
}

// New probes the HTTP API and the local executable and returns a gateway
// bound to the preferred reachable transport. Fails with ErrUnavailable
// when neither answers.
func New(ctx context.Context, cfg config.Config, store *cache.Cache, log *logrus.Logger) (*Gateway, error) {
	candidates := []transport{
		newHTTPTransport(cfg.OllamaAPI, cfg.Temperature),
		newLocalTransport(cfg.Temperature),
	}

	for _, tr := range candidates {
		if tr.available(ctx) {
			log.Infof("ollama mode: %s", tr.name())
			return &Gateway{
				tr:         tr,
				model:      cfg.Model,
				maxRetries: cfg.MaxRetries,
				delay:      retryDelay,
				cache:      store,
				log:        log,
			}, nil
		}
	}
	return nil, ErrUnavailable
}

// Generate returns the model's response for prompt, from cache when
// possible. On transport failure it retries up to the configured number
// of attempts with a fixed backoff, then fails with *GenerationError.
// An optional model override replaces the default model for this call.
func (g *Gateway) Generate(ctx context.Context, prompt string, modelOverride ...string) (string, error) {
	model := g.model
	if len(modelOverride) > 0 && modelOverride[0] != "" {
		model = modelOverride[0]
	}

	if text, ok := g.cache.Lookup(model, prompt); ok {
		return text, nil
	}

	var lastErr error
	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		start := time.Now()
		text, err := g.tr.generate(ctx, model, prompt)
		if err == nil {
			g.log.Debugf("generated %d chars via %s in %.2fs", len(text), g.tr.name(), time.Since(start).Seconds())
			g.cache.Store(model, prompt, text)
			return text, nil
		}
		lastErr = err
		g.log.Warnf("generation attempt %d/%d failed: %v", attempt, g.maxRetries, err)

		if attempt < g.maxRetries {
			select {
			case <-time.After(g.delay):
			case <-ctx.Done():
				return "", &GenerationError{Attempts: attempt, Last: ctx.Err()}
			}
		}
	}
	return "", &GenerationError{Attempts: g.maxRetries, Last: lastErr}
}

// Model returns the default model identifier.
func (g *Gateway) Model() string { return g.model }
