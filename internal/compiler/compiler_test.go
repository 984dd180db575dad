package compiler_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/arclang/internal/compiler"
	"github.com/vk/arclang/internal/lexer"
	"github.com/vk/arclang/internal/parser"
	"github.com/vk/arclang/internal/semantic"
	"github.com/vk/arclang/internal/testutil"
)

const fullSystemSource = `
	model BrakingSystem {
		metadata {
			version: "1.0.0"
			author: "ACME"
		}
		requirements system {
			req SYS-001 "Stopping distance" {
				description: "Stop within 70 m from 100 km/h"
				priority: "High"
				safety_level: "ASIL-D"
			}
			req SYS-002 {}
		}
		architecture logical {
			component BrakeController {
				function ComputeForce {
					inputs: ["pedal_position", "speed"]
					outputs: ["brake_force"]
				}
				provides interface ForceCommand {
					protocol: "CAN"
				}
			}
			component PedalSensor {}
			connect PedalSensor -> BrakeController via "CAN"
		}
		architecture physical {
			node BrakeECU {
				deploys "BrakeController"
			}
		}
	}

	trace SYS-001 satisfies BrakeController
	trace BrakeECU deploys BrakeController
`

func TestCompile_FullSystem(t *testing.T) {
	result := testutil.MustCompile(t, fullSystemSource)

	require.NotNil(t, result.AST)
	require.NotNil(t, result.Semantic)
	assert.NotEmpty(t, result.RunID)
	assert.Empty(t, result.Output)

	metrics := result.Semantic.Metrics()
	assert.Equal(t, 2, metrics.RequirementsCount)
	assert.Equal(t, 3, metrics.ComponentsCount)
	assert.Equal(t, 1, metrics.FunctionsCount)
	assert.Equal(t, 2, metrics.TracesCount)
	assert.Equal(t, 50.0, metrics.TraceabilityCoverage)
}

func TestCompile_Deterministic(t *testing.T) {
	first := testutil.MustCompile(t, fullSystemSource)
	second := testutil.MustCompile(t, fullSystemSource)

	// Run ids differ; everything derived from the source must not.
	assert.NotEqual(t, first.RunID, second.RunID)

	diff := cmp.Diff(first.Semantic.Requirements, second.Semantic.Requirements)
	assert.Empty(t, diff)
	diff = cmp.Diff(first.Semantic.Components, second.Semantic.Components)
	assert.Empty(t, diff)
	diff = cmp.Diff(first.Semantic.Traces, second.Semantic.Traces)
	assert.Empty(t, diff)
}

func TestCompile_LexicalErrorAborts(t *testing.T) {
	err := testutil.CompileErr(t, `model M { description: "unterminated`)

	var lexErr *lexer.Error
	assert.ErrorAs(t, err, &lexErr)
}

func TestCompile_ParseErrorAborts(t *testing.T) {
	err := testutil.CompileErr(t, `trace "A" refines "B"`)

	var parseErr *parser.Error
	assert.ErrorAs(t, err, &parseErr)
}

func TestCompile_SemanticErrorAborts(t *testing.T) {
	err := testutil.CompileErr(t, `trace "A" satisfies "B"`)

	var semErr *semantic.Error
	assert.ErrorAs(t, err, &semErr)
	assert.Contains(t, err.Error(), "Trace references unknown element")
}

func TestCompileFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "system.arc")
	require.NoError(t, os.WriteFile(path, []byte(fullSystemSource), 0o644))

	c := compiler.New(compiler.DefaultOptions())
	result, err := c.CompileFile(testutil.QuietContext(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Semantic.Metrics().RequirementsCount)
}

func TestCompileFile_MissingFile(t *testing.T) {
	c := compiler.New(compiler.DefaultOptions())
	_, err := c.CompileFile(testutil.QuietContext(), filepath.Join(t.TempDir(), "absent.arc"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading source file")
}

// stubGenerator records the model it saw and returns a fixed payload.
type stubGenerator struct {
	seen *semantic.Model
	out  string
	err  error
}

func (g *stubGenerator) Generate(_ context.Context, model *semantic.Model) (string, error) {
	g.seen = model
	return g.out, g.err
}

func TestCompile_WithGenerator(t *testing.T) {
	gen := &stubGenerator{out: "rendered"}
	c := compiler.New(compiler.DefaultOptions()).WithGenerator(gen)

	result, err := c.Compile(testutil.QuietContext(), fullSystemSource)
	require.NoError(t, err)
	assert.Equal(t, "rendered", result.Output)
	require.NotNil(t, gen.seen)
	assert.Same(t, result.Semantic, gen.seen)
}

func TestCompile_GeneratorErrorNamesTarget(t *testing.T) {
	gen := &stubGenerator{err: errors.New("template exploded")}
	c := compiler.New(compiler.Options{Target: "terraform"}).WithGenerator(gen)

	_, err := c.Compile(testutil.QuietContext(), fullSystemSource)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generating output for target terraform")
	assert.ErrorContains(t, err, "template exploded")
}

func TestCompile_WithGeneratorDoesNotMutateOriginal(t *testing.T) {
	base := compiler.New(compiler.DefaultOptions())
	_ = base.WithGenerator(&stubGenerator{out: "x"})

	result, err := base.Compile(testutil.QuietContext(), `model M {}`)
	require.NoError(t, err)
	assert.Empty(t, result.Output)
}
