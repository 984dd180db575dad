package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/arclang/internal/ast"
	"github.com/vk/arclang/internal/lexer"
	"github.com/vk/arclang/internal/parser"
)

// analyze runs the full front end over source and fails the test on any
// error.
func analyze(t *testing.T, source string) *Model {
	t.Helper()
	tokens, err := lexer.Tokenize(source)
	require.NoError(t, err)
	tree, err := parser.Parse(tokens)
	require.NoError(t, err)
	model, err := Analyze(tree)
	require.NoError(t, err)
	return model
}

func TestAnalyze_RequirementDefaults(t *testing.T) {
	model := analyze(t, `
		requirements system {
			req R1 {
				description: "Shall stop"
			}
			req R2 {
				priority: "High"
				category: "safety"
				safety_level: "ASIL-D"
			}
		}
	`)

	require.Len(t, model.Requirements, 2)

	r1, ok := model.Requirement("R1")
	require.True(t, ok)
	assert.Equal(t, "Shall stop", r1.Description)
	assert.Equal(t, "Medium", r1.Priority)
	assert.Empty(t, r1.Category)

	r2, ok := model.Requirement("R2")
	require.True(t, ok)
	assert.Equal(t, "High", r2.Priority)
	assert.Equal(t, "safety", r2.Category)
	assert.Equal(t, "ASIL-D", r2.SafetyLevel)
}

func TestAnalyze_LogicalComponent(t *testing.T) {
	model := analyze(t, `
		architecture logical {
			component Controller {
				provides interface Telemetry {
					protocol: "CAN"
					format: "binary"
				}
				interface_in: Commands {
					protocol: "UART"
				}
				function Regulate {
					inputs: ["speed", "target"]
					outputs: ["torque"]
				}
			}
		}
	`)

	require.Len(t, model.Components, 1)
	comp := model.Components[0]
	assert.Equal(t, "Controller", comp.ID)
	assert.Equal(t, "Controller", comp.Name)
	assert.Equal(t, "Logical", comp.ComponentType)
	assert.Equal(t, "Logical", comp.Level)

	require.Len(t, comp.Outbound, 1)
	assert.Equal(t, "Telemetry", comp.Outbound[0].Name)
	assert.Equal(t, "CAN", comp.Outbound[0].Protocol)
	assert.Equal(t, "binary", comp.Outbound[0].Format)
	require.Len(t, comp.Inbound, 1)
	assert.Equal(t, "UART", comp.Inbound[0].Protocol)

	require.Len(t, model.Functions, 1)
	fn := model.Functions[0]
	assert.Equal(t, "Regulate", fn.ID)
	assert.Equal(t, []string{"speed", "target"}, fn.Inputs)
	assert.Equal(t, []string{"torque"}, fn.Outputs)
}

func TestAnalyze_ComponentIDAttributeWins(t *testing.T) {
	model := analyze(t, `
		architecture logical {
			component Controller {
				id: "LC-001"
				type: "Software"
			}
		}
	`)

	comp, ok := model.Component("LC-001")
	require.True(t, ok)
	assert.Equal(t, "Controller", comp.Name)
	assert.Equal(t, "Software", comp.ComponentType)
	assert.True(t, model.ContainsElement("LC-001"))
	assert.False(t, model.ContainsElement("Controller"))
}

func TestAnalyze_PhysicalNodesShareComponentCollection(t *testing.T) {
	model := analyze(t, `
		architecture logical {
			component Controller {}
		}
		architecture physical {
			node ECU {}
		}
	`)

	require.Len(t, model.Components, 2)
	assert.Equal(t, "Logical", model.Components[0].Level)

	ecu, ok := model.Component("ECU")
	require.True(t, ok)
	assert.Equal(t, "Physical", ecu.Level)
	assert.Equal(t, "Physical", ecu.ComponentType)
}

func TestAnalyze_Interfaces(t *testing.T) {
	model := analyze(t, `
		architecture logical {
			component Sensor {}
			component Controller {}
			connect Sensor.Output -> Controller via "CAN"
		}
	`)

	require.Len(t, model.Interfaces, 1)
	iface := model.Interfaces[0]
	assert.Equal(t, "Sensor", iface.From)
	assert.Equal(t, "Controller", iface.To)
	assert.Equal(t, "CAN", iface.Protocol)
}

func TestAnalyze_TraceValidation(t *testing.T) {
	model := analyze(t, `
		requirements system {
			req R1 {}
		}
		architecture logical {
			component C1 {}
		}
		trace R1 satisfies C1 {
			rationale: "direct"
		}
	`)

	require.Len(t, model.Traces, 1)
	trace := model.Traces[0]
	assert.Equal(t, "satisfies", trace.TraceType)
	assert.Equal(t, "direct", trace.Rationale)
}

func TestAnalyze_TraceToUnknownElement(t *testing.T) {
	tokens, err := lexer.Tokenize(`
		requirements system {
			req R1 {}
		}
		trace R1 satisfies C-unknown
	`)
	require.NoError(t, err)
	tree, err := parser.Parse(tokens)
	require.NoError(t, err)

	_, err = Analyze(tree)
	require.Error(t, err)

	var semErr *Error
	require.ErrorAs(t, err, &semErr)
	assert.Equal(t, "Trace references unknown element: C-unknown", semErr.Msg)
}

func TestAnalyze_TraceFromUnknownElement(t *testing.T) {
	tree := &ast.Model{
		Traces: []*ast.Trace{
			{From: "ghost", To: "ghost", Type: "satisfies", Attributes: ast.NewAttributes()},
		},
	}

	_, err := Analyze(tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Trace references unknown element: ghost")
}

func TestAnalyze_TraceMayTargetHazard(t *testing.T) {
	model := analyze(t, `
		requirements system {
			req R1 {}
		}
		safety_analysis {
			hazard "Overheat" {}
		}
		trace R1 satisfies "Overheat"
	`)

	elem, ok := model.Element("Overheat")
	require.True(t, ok)
	assert.Equal(t, KindHazard, elem.Kind)
}

func TestAnalyze_ElementRegistryKinds(t *testing.T) {
	model := analyze(t, `
		requirements system {
			req R1 {}
		}
		architecture logical {
			component C1 {
				function F1 {}
			}
		}
	`)

	assert.Equal(t, 3, model.ElementCount())

	req, _ := model.Element("R1")
	assert.Equal(t, KindRequirement, req.Kind)
	comp, _ := model.Element("C1")
	assert.Equal(t, KindComponent, comp.Kind)
	fn, _ := model.Element("F1")
	assert.Equal(t, KindFunction, fn.Kind)
}

func TestAnalyze_TraceQueries(t *testing.T) {
	model := analyze(t, `
		requirements system {
			req R1 {}
			req R2 {}
		}
		architecture logical {
			component C1 {}
		}
		trace R1 satisfies C1
		trace R2 satisfies C1
	`)

	assert.Len(t, model.TracesFrom("R1"), 1)
	assert.Len(t, model.TracesTo("C1"), 2)
	assert.Empty(t, model.TracesFrom("C1"))
}

func TestMetrics_Counts(t *testing.T) {
	model := analyze(t, `
		requirements system {
			req R1 {}
			req R2 {}
		}
		architecture logical {
			component C1 {}
			component C2 {}
		}
		architecture physical {
			node N1 {}
		}
		trace R1 satisfies C1
	`)

	metrics := model.Metrics()
	assert.Equal(t, 2, metrics.RequirementsCount)
	assert.Equal(t, 3, metrics.ComponentsCount)
	assert.Equal(t, 0, metrics.FunctionsCount)
	assert.Equal(t, 5, metrics.TotalElements)
	assert.Equal(t, 1, metrics.TracesCount)
	assert.Equal(t, 50.0, metrics.TraceabilityCoverage)
}

func TestMetrics_EmptyModel(t *testing.T) {
	model := analyze(t, "")

	metrics := model.Metrics()
	assert.Equal(t, 0, metrics.TotalElements)
	assert.Equal(t, 0.0, metrics.TraceabilityCoverage)
}

func TestMetrics_FullCoverage(t *testing.T) {
	model := analyze(t, `
		requirements system {
			req R1 {}
		}
		architecture logical {
			component C1 {}
		}
		trace R1 satisfies C1
	`)

	assert.Equal(t, 100.0, model.Metrics().TraceabilityCoverage)
}

func TestValidateTraceability_Advisories(t *testing.T) {
	model := analyze(t, `
		requirements system {
			req R1 {}
			req R2 {}
		}
		architecture logical {
			component C1 {}
			component C2 {}
		}
		trace R1 satisfies C1
	`)

	issues := model.ValidateTraceability()
	assert.Contains(t, issues, "Requirement R2 has no downstream traces")
	assert.Contains(t, issues, "Component C2 has no upstream traces")
	assert.NotContains(t, issues, "Requirement R1 has no downstream traces")
	assert.NotContains(t, issues, "Component C1 has no upstream traces")
}

func TestValidateTraceability_CleanModel(t *testing.T) {
	model := analyze(t, `
		requirements system {
			req R1 {}
		}
		architecture logical {
			component C1 {}
		}
		trace R1 satisfies C1
	`)

	assert.Empty(t, model.ValidateTraceability())
}
