package semantic

import "github.com/vk/arclang/internal/ast"

// Error is a semantic validation error; the first one found aborts
// analysis.
type Error struct {
	Msg string
}

func (e *Error) Error() string {
	return "semantic error: " + e.Msg
}

// Analyze walks the AST once and produces the flattened, validated model.
// The AST is not retained; callers may discard it afterwards.
func Analyze(model *ast.Model) (*Model, error) {
	a := &analyzer{out: &Model{registry: make(map[string]Element)}}

	a.collectRequirements(model)
	a.collectLogical(model)
	a.collectPhysical(model)
	a.collectHazards(model)
	a.collectTraces(model)

	if err := a.validateTraces(); err != nil {
		return nil, err
	}
	return a.out, nil
}

type analyzer struct {
	out *Model
}

func (a *analyzer) register(id, name, kind string) {
	a.out.registry[id] = Element{ID: id, Name: name, Kind: kind}
}

// collectRequirements flattens every requirement of every system analysis
// block. Defaults are part of the contract: a missing priority is
// "Medium", and downstream generators depend on that exact string.
func (a *analyzer) collectRequirements(model *ast.Model) {
	for _, sa := range model.SystemAnalyses {
		for _, req := range sa.Requirements {
			info := RequirementInfo{
				ID:          req.ID,
				Description: req.Attributes.StringOr("description", ""),
				Priority:    req.Attributes.StringOr("priority", "Medium"),
				Category:    req.Attributes.StringOr("category", ""),
				SafetyLevel: req.Attributes.StringOr("safety_level", ""),
			}
			a.out.Requirements = append(a.out.Requirements, info)
			a.register(req.ID, req.ID, KindRequirement)
		}
	}
}

// collectLogical flattens logical components, their ports, their nested
// functions, and the architecture's connections. A component without an
// explicit id attribute is identified by its name.
func (a *analyzer) collectLogical(model *ast.Model) {
	for _, la := range model.LogicalArchitectures {
		for _, comp := range la.Components {
			id := comp.Attributes.StringOr("id", comp.Name)

			info := ComponentInfo{
				ID:            id,
				Name:          comp.Name,
				ComponentType: comp.Attributes.StringOr("type", "Logical"),
				Level:         "Logical",
				Inbound:       ports(comp.InterfacesIn),
				Outbound:      ports(comp.InterfacesOut),
			}
			a.out.Components = append(a.out.Components, info)
			a.register(id, comp.Name, KindComponent)

			for _, fn := range comp.Functions {
				a.collectFunction(fn)
			}
		}

		for _, iface := range la.Interfaces {
			a.out.Interfaces = append(a.out.Interfaces, InterfaceInfo{
				Name:     iface.Name,
				From:     iface.From,
				To:       iface.To,
				Protocol: iface.Attributes.StringOr("protocol", ""),
			})
		}
	}
}

func (a *analyzer) collectFunction(fn *ast.LogicalFunction) {
	id := fn.Attributes.StringOr("id", fn.Name)

	info := FunctionInfo{ID: id, Name: fn.Name}
	if inputs, ok := fn.Attributes.Get("inputs"); ok {
		info.Inputs = inputs.Strings()
	}
	if outputs, ok := fn.Attributes.Get("outputs"); ok {
		info.Outputs = outputs.Strings()
	}

	a.out.Functions = append(a.out.Functions, info)
	a.register(id, fn.Name, KindFunction)
}

// collectPhysical folds physical nodes into the shared component
// collection so a trace can target either kind.
func (a *analyzer) collectPhysical(model *ast.Model) {
	for _, pa := range model.PhysicalArchitectures {
		for _, node := range pa.Nodes {
			id := node.Attributes.StringOr("id", node.Name)

			info := ComponentInfo{
				ID:            id,
				Name:          node.Name,
				ComponentType: node.Attributes.StringOr("type", "Physical"),
				Level:         "Physical",
			}
			a.out.Components = append(a.out.Components, info)
			a.register(id, node.Name, KindComponent)
		}
	}
}

// collectHazards registers hazards so safety traces may target them.
func (a *analyzer) collectHazards(model *ast.Model) {
	for _, sa := range model.SafetyAnalyses {
		for _, hazard := range sa.Hazards {
			id := hazard.Attributes.StringOr("id", hazard.Name)
			a.register(id, hazard.Name, KindHazard)
		}
	}
}

func (a *analyzer) collectTraces(model *ast.Model) {
	for _, trace := range model.Traces {
		a.out.Traces = append(a.out.Traces, TraceInfo{
			From:      trace.From,
			To:        trace.To,
			TraceType: trace.Type,
			Rationale: trace.Attributes.StringOr("rationale", ""),
		})
	}
}

// validateTraces enforces the traceability invariant: every trace endpoint
// must already be a key in the element registry.
func (a *analyzer) validateTraces() error {
	for _, trace := range a.out.Traces {
		if !a.out.ContainsElement(trace.From) {
			return &Error{Msg: "Trace references unknown element: " + trace.From}
		}
		if !a.out.ContainsElement(trace.To) {
			return &Error{Msg: "Trace references unknown element: " + trace.To}
		}
	}
	return nil
}

func ports(defs []*ast.InterfaceDefinition) []PortInfo {
	var out []PortInfo
	for _, def := range defs {
		out = append(out, PortInfo{
			Name:     def.Name,
			Protocol: def.Protocol,
			Format:   def.Format,
		})
	}
	return out
}
