// Package semantic flattens a parsed ast.Model into the validated,
// query-ready model handed to downstream consumers. Analysis is a single
// linear pass; the resulting Model is immutable after construction and
// safe for concurrent reads.
package semantic

// Element kinds recorded in the element registry.
const (
	KindRequirement = "Requirement"
	KindComponent   = "Component"
	KindFunction    = "Function"
	KindHazard      = "Hazard"
)

// Model is the durable compilation artifact. All slices preserve source
// declaration order. Callers must treat the model as read-only.
type Model struct {
	Requirements []RequirementInfo
	Components   []ComponentInfo
	Functions    []FunctionInfo
	Interfaces   []InterfaceInfo
	Traces       []TraceInfo

	registry map[string]Element
}

// RequirementInfo is a flattened requirement. Priority is never empty; a
// requirement without one gets "Medium".
type RequirementInfo struct {
	ID          string
	Description string
	Priority    string
	Category    string
	SafetyLevel string
}

// ComponentInfo unifies logical components and physical nodes in one
// collection so traces can target either uniformly. Level records which
// architecture layer declared it.
type ComponentInfo struct {
	ID            string
	Name          string
	ComponentType string
	Level         string
	Inbound       []PortInfo
	Outbound      []PortInfo
}

// PortInfo is one declared interface port of a component.
type PortInfo struct {
	Name     string
	Protocol string
	Format   string
}

// FunctionInfo is a flattened component function.
type FunctionInfo struct {
	ID      string
	Name    string
	Inputs  []string
	Outputs []string
}

// InterfaceInfo is a directed connection between two components.
type InterfaceInfo struct {
	Name     string
	From     string
	To       string
	Protocol string
}

// TraceInfo is a verified traceability link. Both endpoints are guaranteed
// present in the element registry.
type TraceInfo struct {
	From      string
	To        string
	TraceType string
	Rationale string
}

// Element is the registry descriptor for one declared identifier.
type Element struct {
	ID   string
	Name string
	Kind string
}

// Requirement looks up a requirement by id.
func (m *Model) Requirement(id string) (RequirementInfo, bool) {
	for _, r := range m.Requirements {
		if r.ID == id {
			return r, true
		}
	}
	return RequirementInfo{}, false
}

// Component looks up a component (logical or physical) by id.
func (m *Model) Component(id string) (ComponentInfo, bool) {
	for _, c := range m.Components {
		if c.ID == id {
			return c, true
		}
	}
	return ComponentInfo{}, false
}

// Element looks up a registry descriptor by id.
func (m *Model) Element(id string) (Element, bool) {
	e, ok := m.registry[id]
	return e, ok
}

// ContainsElement reports whether an identifier was declared anywhere in
// the model.
func (m *Model) ContainsElement(id string) bool {
	_, ok := m.registry[id]
	return ok
}

// ElementCount returns the size of the element registry.
func (m *Model) ElementCount() int {
	return len(m.registry)
}

// TracesFrom returns all traces originating at the given element.
func (m *Model) TracesFrom(id string) []TraceInfo {
	var out []TraceInfo
	for _, t := range m.Traces {
		if t.From == id {
			out = append(out, t)
		}
	}
	return out
}

// TracesTo returns all traces terminating at the given element.
func (m *Model) TracesTo(id string) []TraceInfo {
	var out []TraceInfo
	for _, t := range m.Traces {
		if t.To == id {
			out = append(out, t)
		}
	}
	return out
}
