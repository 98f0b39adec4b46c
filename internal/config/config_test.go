package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Model != "qwen2.5-coder" {
		t.Errorf("Model = %q, want %q", cfg.Model, "qwen2.5-coder")
	}
	if cfg.MaxWorkers != 3 {
		t.Errorf("MaxWorkers = %d, want 3", cfg.MaxWorkers)
	}
	if !cfg.CacheEnabled {
		t.Error("CacheEnabled should default to true")
	}
	if cfg.CacheMaxAge != 7*24*time.Hour {
		t.Errorf("CacheMaxAge = %v, want 168h", cfg.CacheMaxAge)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.yaml")
	data := "model: codellama\nmax_workers: 5\ncache_enabled: false\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Model != "codellama" {
		t.Errorf("Model = %q, want %q", cfg.Model, "codellama")
	}
	if cfg.MaxWorkers != 5 {
		t.Errorf("MaxWorkers = %d, want 5", cfg.MaxWorkers)
	}
	if cfg.CacheEnabled {
		t.Error("CacheEnabled should be false from file")
	}
	// Untouched keys keep their defaults.
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.yaml")
	if err := os.WriteFile(path, []byte("model: codellama\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GENFORGE_MODEL", "deepseek-coder")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Model != "deepseek-coder" {
		t.Errorf("Model = %q, want env override %q", cfg.Model, "deepseek-coder")
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"empty model", func(c *Config) { c.Model = "" }, true},
		{"zero workers", func(c *Config) { c.MaxWorkers = 0 }, true},
		{"zero retries", func(c *Config) { c.MaxRetries = 0 }, true},
		{"temperature too high", func(c *Config) { c.Temperature = 2.5 }, true},
		{"negative temperature", func(c *Config) { c.Temperature = -0.1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
