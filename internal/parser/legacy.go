package parser

import (
	"github.com/vk/arclang/internal/ast"
	"github.com/vk/arclang/internal/token"
)

// The functions in this file parse the bare top-level blocks of the legacy
// dialect: operational_analysis, system_analysis, logical_architecture,
// physical_architecture, epbs, safety_analysis and trace. They feed the
// same model collections as the structured dialect.

func (p *Parser) parseOperationalAnalysis() error {
	p.advance() // operational_analysis

	name, err := p.expectString()
	if err != nil {
		return err
	}
	if err := p.expect(token.LBrace); err != nil {
		return err
	}

	oa := &ast.OperationalAnalysis{Name: name}
	for p.current().Kind != token.RBrace && !p.atEnd() {
		switch tok := p.current(); {
		case tok.Kind == token.Actor:
			p.advance()
			name, attrs, err := p.parseNamedAttributeBlock()
			if err != nil {
				return err
			}
			oa.Actors = append(oa.Actors, &ast.Actor{Name: name, Attributes: attrs})
		case tok.Kind == token.Ident && tok.Text == "operational_capability":
			p.advance()
			name, attrs, err := p.parseNamedAttributeBlock()
			if err != nil {
				return err
			}
			oa.Capabilities = append(oa.Capabilities, &ast.OperationalCapability{Name: name, Attributes: attrs})
		case tok.Kind == token.Ident && tok.Text == "operational_activity":
			p.advance()
			name, attrs, err := p.parseNamedAttributeBlock()
			if err != nil {
				return err
			}
			oa.Activities = append(oa.Activities, &ast.OperationalActivity{Name: name, Attributes: attrs})
		default:
			return errorf("unexpected token in operational_analysis: %s", tok)
		}
	}

	if err := p.expect(token.RBrace); err != nil {
		return err
	}
	p.model.OperationalAnalyses = append(p.model.OperationalAnalyses, oa)
	return nil
}

func (p *Parser) parseSystemAnalysis() error {
	p.advance() // system_analysis

	name, err := p.expectString()
	if err != nil {
		return err
	}
	if err := p.expect(token.LBrace); err != nil {
		return err
	}

	sa := &ast.SystemAnalysis{Name: name}
	for p.current().Kind != token.RBrace && !p.atEnd() {
		switch tok := p.current(); {
		case tok.Kind == token.Requirement:
			req, err := p.parseRequirementEntry()
			if err != nil {
				return err
			}
			sa.Requirements = append(sa.Requirements, req)
		case tok.Kind == token.Ident && tok.Text == "system_function":
			p.advance()
			name, attrs, err := p.parseNamedAttributeBlock()
			if err != nil {
				return err
			}
			sa.Functions = append(sa.Functions, &ast.SystemFunction{Name: name, Attributes: attrs})
		case tok.Kind == token.Ident && tok.Text == "system_component":
			p.advance()
			name, attrs, err := p.parseNamedAttributeBlock()
			if err != nil {
				return err
			}
			sa.Components = append(sa.Components, &ast.SystemComponent{Name: name, Attributes: attrs})
		default:
			return errorf("unexpected token in system_analysis: %s", tok)
		}
	}

	if err := p.expect(token.RBrace); err != nil {
		return err
	}
	p.model.SystemAnalyses = append(p.model.SystemAnalyses, sa)
	return nil
}

func (p *Parser) parseLogicalArchitecture() error {
	p.advance() // logical_architecture

	name, err := p.expectString()
	if err != nil {
		return err
	}

	la := &ast.LogicalArchitecture{Name: name}
	if err := p.parseLogicalBody(la); err != nil {
		return err
	}
	p.model.LogicalArchitectures = append(p.model.LogicalArchitectures, la)
	return nil
}

func (p *Parser) parsePhysicalArchitecture() error {
	p.advance() // physical_architecture

	name, err := p.expectString()
	if err != nil {
		return err
	}

	pa := &ast.PhysicalArchitecture{Name: name}
	if err := p.parsePhysicalBody(pa); err != nil {
		return err
	}
	p.model.PhysicalArchitectures = append(p.model.PhysicalArchitectures, pa)
	return nil
}

// parsePhysicalNode parses `node|component <name> ["Title"] { ... }` with
// deploys entries and generic attributes.
func (p *Parser) parsePhysicalNode() (*ast.PhysicalNode, error) {
	p.advance() // node or component

	name, err := p.parseElementName()
	if err != nil {
		return nil, err
	}

	title := ""
	if p.current().Kind == token.String {
		title = p.current().Text
		p.advance()
	}

	if err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	node := &ast.PhysicalNode{Name: name, Attributes: ast.NewAttributes()}
	if title != "" {
		node.Attributes.Set("title", ast.StringValue(title))
	}

	for p.current().Kind != token.RBrace && !p.atEnd() {
		switch tok := p.current(); {
		case tok.Kind == token.Deploys:
			dep, err := p.parseDeployment()
			if err != nil {
				return nil, err
			}
			node.Deployments = append(node.Deployments, dep)
		case tok.Kind == token.Ident && p.peek().Kind == token.Colon,
			isKeywordWithText(tok) && p.peek().Kind == token.Colon:
			key, value, err := p.parseAttribute()
			if err != nil {
				return nil, err
			}
			node.Attributes.Set(key, value)
		default:
			p.advance()
		}
	}

	if err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return node, nil
}

// parseDeployment parses `deploys "Component" [{ attrs }]`.
func (p *Parser) parseDeployment() (*ast.Deployment, error) {
	p.advance() // deploys

	component, err := p.parseElementName()
	if err != nil {
		return nil, err
	}

	attrs := ast.NewAttributes()
	if p.current().Kind == token.LBrace {
		attrs, err = p.parseAttributesBlock()
		if err != nil {
			return nil, err
		}
	}
	return &ast.Deployment{Component: component, Attributes: attrs}, nil
}

// parsePhysicalLink parses `physical_link "Name" { attrs }`; a list-valued
// `connects` attribute becomes the link's endpoint list.
func (p *Parser) parsePhysicalLink() (*ast.PhysicalLink, error) {
	p.advance() // physical_link

	name, err := p.parseElementName()
	if err != nil {
		return nil, err
	}
	attrs, err := p.parseAttributesBlock()
	if err != nil {
		return nil, err
	}

	link := &ast.PhysicalLink{Name: name, Attributes: attrs}
	if connects, ok := attrs.Get("connects"); ok {
		link.Connections = connects.Strings()
	}
	return link, nil
}

func (p *Parser) parseEpbs() error {
	p.advance() // epbs

	name, err := p.expectString()
	if err != nil {
		return err
	}
	if err := p.expect(token.LBrace); err != nil {
		return err
	}

	epbs := &ast.Epbs{Name: name}
	for p.current().Kind != token.RBrace && !p.atEnd() {
		if p.current().Kind != token.System {
			return errorf("unexpected token in epbs: %s", p.current())
		}
		system, err := p.parseEpbsSystem()
		if err != nil {
			return err
		}
		epbs.Systems = append(epbs.Systems, system)
	}

	if err := p.expect(token.RBrace); err != nil {
		return err
	}
	p.model.Epbs = append(p.model.Epbs, epbs)
	return nil
}

func (p *Parser) parseEpbsSystem() (*ast.EpbsSystem, error) {
	p.advance() // system

	name, err := p.parseElementName()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	system := &ast.EpbsSystem{Name: name, Attributes: ast.NewAttributes()}
	for p.current().Kind != token.RBrace && !p.atEnd() {
		switch tok := p.current(); {
		case tok.Kind == token.Subsystem:
			sub, err := p.parseEpbsSubsystem()
			if err != nil {
				return nil, err
			}
			system.Subsystems = append(system.Subsystems, sub)
		case tok.Kind == token.Ident, isKeywordWithText(tok):
			key, value, err := p.parseAttribute()
			if err != nil {
				return nil, err
			}
			system.Attributes.Set(key, value)
		default:
			return nil, errorf("unexpected token in epbs system: %s", tok)
		}
	}

	if err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return system, nil
}

func (p *Parser) parseEpbsSubsystem() (*ast.EpbsSubsystem, error) {
	p.advance() // subsystem

	name, err := p.parseElementName()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	sub := &ast.EpbsSubsystem{Name: name, Attributes: ast.NewAttributes()}
	for p.current().Kind != token.RBrace && !p.atEnd() {
		switch tok := p.current(); {
		case tok.Kind == token.Item:
			p.advance()
			name, attrs, err := p.parseNamedAttributeBlock()
			if err != nil {
				return nil, err
			}
			sub.Items = append(sub.Items, &ast.EpbsItem{Name: name, Attributes: attrs})
		case tok.Kind == token.Ident, isKeywordWithText(tok):
			key, value, err := p.parseAttribute()
			if err != nil {
				return nil, err
			}
			sub.Attributes.Set(key, value)
		default:
			return nil, errorf("unexpected token in epbs subsystem: %s", tok)
		}
	}

	if err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return sub, nil
}

// parseSafetyAnalysis parses the unnamed `safety_analysis { ... }` block
// holding hazards and FMEA entries.
func (p *Parser) parseSafetyAnalysis() error {
	p.advance() // safety_analysis

	if err := p.expect(token.LBrace); err != nil {
		return err
	}

	sa := &ast.SafetyAnalysis{Attributes: ast.NewAttributes()}
	for p.current().Kind != token.RBrace && !p.atEnd() {
		switch tok := p.current(); {
		case tok.Kind == token.Hazard:
			p.advance()
			name, attrs, err := p.parseNamedAttributeBlock()
			if err != nil {
				return err
			}
			sa.Hazards = append(sa.Hazards, &ast.Hazard{Name: name, Attributes: attrs})
		case tok.Kind == token.Fmea:
			p.advance()
			name, attrs, err := p.parseNamedAttributeBlock()
			if err != nil {
				return err
			}
			sa.Fmea = append(sa.Fmea, &ast.FmeaEntry{Name: name, Attributes: attrs})
		case tok.Kind == token.Ident:
			key, value, err := p.parseAttribute()
			if err != nil {
				return err
			}
			sa.Attributes.Set(key, value)
		default:
			return errorf("unexpected token in safety_analysis: %s", tok)
		}
	}

	if err := p.expect(token.RBrace); err != nil {
		return err
	}
	p.model.SafetyAnalyses = append(p.model.SafetyAnalyses, sa)
	return nil
}

// parseTrace parses `trace <from> satisfies|implements <to> [{ attrs }]`.
func (p *Parser) parseTrace() error {
	p.advance() // trace

	from, err := p.parseElementName()
	if err != nil {
		return errorf("expected trace source, found %s", p.current())
	}

	var traceType string
	switch p.current().Kind {
	case token.Satisfies:
		traceType = "satisfies"
		p.advance()
	case token.Implements:
		traceType = "implements"
		p.advance()
	case token.Deploys:
		traceType = "deploys"
		p.advance()
	default:
		return errorf("expected trace type (satisfies, implements, deploys), found %s", p.current())
	}

	to, err := p.parseElementName()
	if err != nil {
		return errorf("expected trace target, found %s", p.current())
	}

	attrs := ast.NewAttributes()
	if p.current().Kind == token.LBrace {
		attrs, err = p.parseAttributesBlock()
		if err != nil {
			return err
		}
	}

	p.model.Traces = append(p.model.Traces, &ast.Trace{
		From:       from,
		To:         to,
		Type:       traceType,
		Attributes: attrs,
	})
	return nil
}

// parseNamedAttributeBlock parses the common `<name> { attrs }` tail used
// by actor, hazard, fmea, item and the system_* element forms. The leading
// keyword has already been consumed.
func (p *Parser) parseNamedAttributeBlock() (string, *ast.Attributes, error) {
	name, err := p.parseElementName()
	if err != nil {
		return "", nil, err
	}
	attrs, err := p.parseAttributesBlock()
	if err != nil {
		return "", nil, err
	}
	return name, attrs, nil
}
