package cli

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/genforge-labs/genforge/internal/analyze"
	"github.com/genforge-labs/genforge/internal/cache"
	"github.com/genforge-labs/genforge/internal/config"
	"github.com/genforge-labs/genforge/internal/gateway"
	"github.com/genforge-labs/genforge/internal/logging"
	"github.com/genforge-labs/genforge/internal/project"
	"github.com/genforge-labs/genforge/internal/synth"
	"github.com/genforge-labs/genforge/internal/template"
	"github.com/genforge-labs/genforge/internal/validate"
)

// app wires the full pipeline once per invocation. Commands pick the
// pieces they need.
type app struct {
	cfg       config.Config
	log       *logrus.Logger
	gateway   *gateway.Gateway
	templates *template.Store
	synth     *synth.Synthesizer
	projects  *project.Materializer
	validator *validate.Validator
	analyzer  *analyze.Analyzer
}

// newApp resolves configuration, probes the model transport, and
// assembles every component. It fails fast when no transport answers.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagModel != "" {
		cfg.Model = flagModel
	}

	level := cfg.LogLevel
	if flagVerbose {
		level = "debug"
	}
	log := logging.New(level, cfg.LogFile)

	store, err := cache.New(cfg.CacheDir, cfg.CacheEnabled, cfg.CacheMaxAge, log)
	if err != nil {
		return nil, fmt.Errorf("initializing cache: %w", err)
	}

	gw, err := gateway.New(ctx, cfg, store, log)
	if err != nil {
		return nil, err
	}

	templates, err := template.NewStore(cfg.TemplatesDir, log)
	if err != nil {
		return nil, err
	}

	syn := synth.New(gw, templates, cfg.MaxWorkers, log)
	return &app{
		cfg:       cfg,
		log:       log,
		gateway:   gw,
		templates: templates,
		synth:     syn,
		projects:  project.NewMaterializer(cfg.BasePath, syn, cfg.InitGit, log),
		validator: validate.New(syn, log),
		analyzer:  analyze.New(gw, log),
	}, nil
}
