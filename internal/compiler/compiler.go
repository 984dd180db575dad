// Package compiler wires the lexer, parser and semantic analyzer into the
// single synchronous pipeline: text → tokens → AST → semantic model. Each
// compilation is a pure function of its input; instances hold only options
// and may be shared across goroutines.
package compiler

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/vk/arclang/internal/ast"
	"github.com/vk/arclang/internal/ctxlog"
	"github.com/vk/arclang/internal/lexer"
	"github.com/vk/arclang/internal/parser"
	"github.com/vk/arclang/internal/semantic"
)

// Options are the compiler-level settings. Target names the downstream
// generator family the result is intended for; generation itself happens
// outside this package.
type Options struct {
	Target            string
	OptimizationLevel int
}

// DefaultOptions returns the options used when no configuration file is
// given.
func DefaultOptions() Options {
	return Options{Target: "capella", OptimizationLevel: 2}
}

// Generator produces the generation-output placeholder of a Result. The
// concrete generators (Terraform, Kubernetes, OPA, diagrams) live outside
// this repository and consume only the semantic model.
type Generator interface {
	Generate(ctx context.Context, model *semantic.Model) (string, error)
}

// Result is the artifact of one compilation run. Downstream consumers
// should depend on the Semantic model only; the AST is exposed for
// debugging and is considered a compiler internal.
type Result struct {
	RunID    string
	AST      *ast.Model
	Semantic *semantic.Model
	Output   string
}

// Compiler runs the pipeline with fixed options and an optional generator.
type Compiler struct {
	opts Options
	gen  Generator
}

// New creates a compiler with the given options.
func New(opts Options) *Compiler {
	return &Compiler{opts: opts}
}

// WithGenerator returns a copy of the compiler that populates the result's
// output placeholder through g.
func (c *Compiler) WithGenerator(g Generator) *Compiler {
	clone := *c
	clone.gen = g
	return &clone
}

// CompileFile reads and compiles a single source file.
func (c *Compiler) CompileFile(ctx context.Context, path string) (*Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source file: %w", err)
	}
	return c.Compile(ctx, string(source))
}

// Compile runs the full pipeline over source text. It fails fast: the
// first lexical, structural or semantic error aborts the run with no
// partial result.
func (c *Compiler) Compile(ctx context.Context, source string) (*Result, error) {
	runID := uuid.NewString()
	logger := ctxlog.FromContext(ctx).With("run_id", runID)

	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	logger.Debug("Tokenization complete.", "tokens", len(tokens))

	model, err := parser.Parse(tokens)
	if err != nil {
		return nil, err
	}
	logger.Debug("Parse complete.",
		"system_analyses", len(model.SystemAnalyses),
		"logical_architectures", len(model.LogicalArchitectures),
		"physical_architectures", len(model.PhysicalArchitectures),
		"traces", len(model.Traces),
	)

	semModel, err := semantic.Analyze(model)
	if err != nil {
		return nil, err
	}
	logger.Debug("Semantic analysis complete.", "elements", semModel.ElementCount())

	output := ""
	if c.gen != nil {
		output, err = c.gen.Generate(ctx, semModel)
		if err != nil {
			return nil, fmt.Errorf("generating output for target %s: %w", c.opts.Target, err)
		}
	}

	return &Result{
		RunID:    runID,
		AST:      model,
		Semantic: semModel,
		Output:   output,
	}, nil
}
