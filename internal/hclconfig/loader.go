// Package hclconfig is the HCL implementation of config.Loader. An
// options file holds a compiler block and a logging block, both optional:
//
//	compiler {
//	  target             = "capella"
//	  optimization_level = 2
//	}
//
//	logging {
//	  level  = "debug"
//	  format = "json"
//	}
package hclconfig

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/arclang/internal/config"
	"github.com/vk/arclang/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader
// interface.
type Loader struct{}

// NewLoader creates a new HCL options loader.
func NewLoader() *Loader {
	return &Loader{}
}

// rootSchema claims the two known block types. Decoding the file body
// against it rejects any other block or any top-level attribute with
// hcl's own diagnostics, which name the offending construct.
var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "compiler"},
		{Type: "logging"},
	},
}

// Block bodies decode strictly: without a remain field gohcl rejects
// unknown attributes. Optional attributes decode through pointers so that
// absent settings keep their defaults.
type compilerBlock struct {
	Target            *string `hcl:"target,optional"`
	OptimizationLevel *int    `hcl:"optimization_level,optional"`
}

type loggingBlock struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

// Load parses the options file at path and merges it over the defaults.
func (l *Loader) Load(ctx context.Context, path string) (*config.Options, error) {
	logger := ctxlog.FromContext(ctx)

	opts := config.Default()
	if path == "" {
		return opts, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse options file %s: %w", path, diags)
	}

	content, diags := file.Body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode options file %s: %w", path, diags)
	}

	for _, block := range content.Blocks {
		switch block.Type {
		case "compiler":
			var cb compilerBlock
			if diags := gohcl.DecodeBody(block.Body, nil, &cb); diags.HasErrors() {
				return nil, fmt.Errorf("options file %s, compiler block: %w", path, diags)
			}
			if cb.Target != nil {
				opts.Target = *cb.Target
			}
			if cb.OptimizationLevel != nil {
				opts.OptimizationLevel = *cb.OptimizationLevel
			}
		case "logging":
			var lb loggingBlock
			if diags := gohcl.DecodeBody(block.Body, nil, &lb); diags.HasErrors() {
				return nil, fmt.Errorf("options file %s, logging block: %w", path, diags)
			}
			if lb.Level != nil {
				opts.LogLevel = *lb.Level
			}
			if lb.Format != nil {
				opts.LogFormat = *lb.Format
			}
		}
	}

	logger.Debug("Options file loaded.",
		"path", path,
		"target", opts.Target,
		"optimization_level", opts.OptimizationLevel,
	)
	return opts, nil
}
