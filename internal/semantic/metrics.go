package semantic

import "fmt"

// Metrics aggregates element counts and the percentage of requirements
// with at least one outgoing trace.
type Metrics struct {
	TotalElements        int
	RequirementsCount    int
	ComponentsCount      int
	FunctionsCount       int
	TracesCount          int
	TraceabilityCoverage float64
}

// Metrics computes aggregate model metrics.
func (m *Model) Metrics() Metrics {
	traced := 0
	for _, req := range m.Requirements {
		if len(m.TracesFrom(req.ID)) > 0 {
			traced++
		}
	}

	coverage := 0.0
	if len(m.Requirements) > 0 {
		coverage = float64(traced) / float64(len(m.Requirements)) * 100.0
	}

	return Metrics{
		TotalElements:        len(m.Requirements) + len(m.Components) + len(m.Functions),
		RequirementsCount:    len(m.Requirements),
		ComponentsCount:      len(m.Components),
		FunctionsCount:       len(m.Functions),
		TracesCount:          len(m.Traces),
		TraceabilityCoverage: coverage,
	}
}

// ValidateTraceability returns advisory findings: requirements with no
// outgoing trace and components with no incoming trace. These are not
// errors; a model may legitimately be incomplete while being authored.
func (m *Model) ValidateTraceability() []string {
	var issues []string
	for _, req := range m.Requirements {
		if len(m.TracesFrom(req.ID)) == 0 {
			issues = append(issues, fmt.Sprintf("Requirement %s has no downstream traces", req.ID))
		}
	}
	for _, comp := range m.Components {
		if len(m.TracesTo(comp.ID)) == 0 {
			issues = append(issues, fmt.Sprintf("Component %s has no upstream traces", comp.ID))
		}
	}
	return issues
}
