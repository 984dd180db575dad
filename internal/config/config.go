// Package config defines the format-agnostic compiler options model and
// the Loader interface for reading it from a configuration source. The
// concrete HCL implementation lives in the hclconfig package.
package config

import "context"

// Options is the unified options model consumed by the app and the
// compiler.
type Options struct {
	// Target names the downstream generator family (capella, terraform,
	// kubernetes, opa). The front end only records it.
	Target string

	// OptimizationLevel is forwarded to generators; 0 disables all
	// generator-side optimization passes.
	OptimizationLevel int

	LogLevel  string
	LogFormat string
}

// Default returns the options used when no configuration file exists.
func Default() *Options {
	return &Options{
		Target:            "capella",
		OptimizationLevel: 2,
		LogLevel:          "info",
		LogFormat:         "text",
	}
}

// Loader reads options from a path and merges them over the defaults.
type Loader interface {
	Load(ctx context.Context, path string) (*Options, error)
}
