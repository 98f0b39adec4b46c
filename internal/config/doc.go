// Package config defines the explicit configuration struct for the generator
// pipeline: model selection, transport endpoint, cache behavior, worker count,
// and retry policy. Values come from built-in defaults, an optional YAML/JSON
// config file, and GENFORGE_* environment overrides, resolved once at startup.
package config
