package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/genforge-labs/genforge/internal/branding"
	"github.com/spf13/viper"
)

// Config enumerates every recognized option with its type and default.
// It is resolved once at startup; components receive it by value and
// never consult viper afterwards.
type Config struct {
	Model        string        `mapstructure:"model"`
	OllamaAPI    string        `mapstructure:"ollama_api"`
	BasePath     string        `mapstructure:"base_path"`
	TemplatesDir string        `mapstructure:"templates_dir"`
	MaxWorkers   int           `mapstructure:"max_workers"`
	MaxRetries   int           `mapstructure:"max_retries"`
	Temperature  float64       `mapstructure:"temperature"`
	CacheEnabled bool          `mapstructure:"cache_enabled"`
	CacheDir     string        `mapstructure:"cache_dir"`
	CacheMaxAge  time.Duration `mapstructure:"cache_max_age"`
	InitGit      bool          `mapstructure:"init_git"`
	LogLevel     string        `mapstructure:"log_level"`
	LogFile      string        `mapstructure:"log_file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Model:        "qwen2.5-coder",
		OllamaAPI:    "http://localhost:11434",
		BasePath:     "./projects",
		TemplatesDir: "./templates",
		MaxWorkers:   3,
		MaxRetries:   3,
		Temperature:  0.7,
		CacheEnabled: true,
		CacheDir:     "./.cache",
		CacheMaxAge:  7 * 24 * time.Hour,
		InitGit:      true,
		LogLevel:     "info",
		LogFile:      "genforge.log",
	}
}

// Load resolves the configuration from defaults, an optional config file,
// and environment overrides, in that order of precedence (lowest first).
// An empty path skips the file step; a missing file at an explicit path
// is an error.
func Load(path string) (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("model", def.Model)
	v.SetDefault("ollama_api", def.OllamaAPI)
	v.SetDefault("base_path", def.BasePath)
	v.SetDefault("templates_dir", def.TemplatesDir)
	v.SetDefault("max_workers", def.MaxWorkers)
	v.SetDefault("max_retries", def.MaxRetries)
	v.SetDefault("temperature", def.Temperature)
	v.SetDefault("cache_enabled", def.CacheEnabled)
	v.SetDefault("cache_dir", def.CacheDir)
	v.SetDefault("cache_max_age", def.CacheMaxAge)
	v.SetDefault("init_git", def.InitGit)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)

	if path != "" {
		v.SetConfigFile(path)
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			v.SetConfigType("json")
		default:
			v.SetConfigType("yaml")
		}
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values no component can operate with.
func (c Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("config: model must not be empty")
	}
	if c.MaxWorkers < 1 {
		return fmt.Errorf("config: max_workers must be at least 1, got %d", c.MaxWorkers)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("config: max_retries must be at least 1, got %d", c.MaxRetries)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("config: temperature must be in [0, 2], got %g", c.Temperature)
	}
	return nil
}
