package parser

import (
	"github.com/vk/arclang/internal/ast"
	"github.com/vk/arclang/internal/token"
)

// parseRequirementsBlock parses `requirements <subtype> { req ... }`. Each
// block reduces to one SystemAnalysis named after its subtype, so that all
// dialects land in the same collection.
func (p *Parser) parseRequirementsBlock() error {
	p.advance() // requirements

	subtype := "system"
	switch tok := p.current(); tok.Kind {
	case token.Stakeholder, token.System, token.Logical, token.Physical:
		subtype = tok.Text
		p.advance()
	case token.Ident:
		subtype = tok.Text
		p.advance()
	case token.LBrace:
		// Subtype omitted; keep the default.
	default:
		return errorf("expected requirements subtype or '{', found %s", tok)
	}

	if err := p.expect(token.LBrace); err != nil {
		return err
	}

	sa := &ast.SystemAnalysis{Name: subtype}
	for p.current().Kind != token.RBrace && !p.atEnd() {
		switch tok := p.current(); {
		case tok.Kind == token.Requirement,
			tok.Kind == token.Ident && tok.Text == "req":
			req, err := p.parseRequirementEntry()
			if err != nil {
				return err
			}
			sa.Requirements = append(sa.Requirements, req)
		default:
			return errorf("unexpected token in requirements block: %s", tok)
		}
	}

	if err := p.expect(token.RBrace); err != nil {
		return err
	}
	p.model.SystemAnalyses = append(p.model.SystemAnalyses, sa)
	return nil
}

// parseRequirementEntry parses `req <id> ["Title"] { attrs }` or the
// legacy `requirement "<id>" { attrs }`. A title string is preserved under
// the "title" attribute.
func (p *Parser) parseRequirementEntry() (*ast.Requirement, error) {
	p.advance() // req or requirement

	id, err := p.parseElementName()
	if err != nil {
		return nil, errorf("expected requirement id, found %s", p.current())
	}

	title := ""
	if p.current().Kind == token.String {
		title = p.current().Text
		p.advance()
	}

	attrs, err := p.parseAttributesBlock()
	if err != nil {
		return nil, err
	}
	if title != "" {
		attrs.Set("title", ast.StringValue(title))
	}

	return &ast.Requirement{ID: id, Attributes: attrs}, nil
}

// parseArchitectureBlock dispatches `architecture <kind> { ... }` on its
// second-level keyword. Unknown kinds (operational, dataflow, ...) are
// skipped wholesale.
func (p *Parser) parseArchitectureBlock() error {
	p.advance() // architecture

	switch tok := p.current(); tok.Kind {
	case token.Logical:
		p.advance()
		la := &ast.LogicalArchitecture{Name: "logical"}
		if err := p.parseLogicalBody(la); err != nil {
			return err
		}
		p.model.LogicalArchitectures = append(p.model.LogicalArchitectures, la)
		return nil
	case token.Physical:
		p.advance()
		pa := &ast.PhysicalArchitecture{Name: "physical"}
		if err := p.parsePhysicalBody(pa); err != nil {
			return err
		}
		p.model.PhysicalArchitectures = append(p.model.PhysicalArchitectures, pa)
		return nil
	default:
		return p.skipLeadingAndBalancedBlock()
	}
}

// parseLogicalBody parses the braced body shared by `architecture logical`
// and the legacy `logical_architecture` block.
func (p *Parser) parseLogicalBody(la *ast.LogicalArchitecture) error {
	if err := p.expect(token.LBrace); err != nil {
		return err
	}

	for p.current().Kind != token.RBrace && !p.atEnd() {
		switch tok := p.current(); {
		case tok.Kind == token.Component:
			comp, err := p.parseComponent()
			if err != nil {
				return err
			}
			la.Components = append(la.Components, comp)
		case tok.Kind == token.Interface,
			tok.Kind == token.Ident && tok.Text == "connection":
			iface, err := p.parseInterfaceBlock()
			if err != nil {
				return err
			}
			la.Interfaces = append(la.Interfaces, iface)
		case tok.Kind == token.Connect:
			iface, _, err := p.parseConnect()
			if err != nil {
				return err
			}
			la.Interfaces = append(la.Interfaces, iface)
		case tok.Kind == token.Trace:
			if err := p.parseTrace(); err != nil {
				return err
			}
		default:
			return errorf("unexpected token in logical architecture: %s", tok)
		}
	}

	return p.expect(token.RBrace)
}

// parseInterfaceBlock parses a named connection between components:
// `connection "Name" { from: ... to: ... }` (or the legacy `interface`
// spelling). Anything that is not from/to lands in the attribute map.
func (p *Parser) parseInterfaceBlock() (*ast.LogicalInterface, error) {
	p.advance() // interface or connection

	name, err := p.parseElementName()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	iface := &ast.LogicalInterface{Name: name, Attributes: ast.NewAttributes()}
	for p.current().Kind != token.RBrace && !p.atEnd() {
		key, value, err := p.parseAttribute()
		if err != nil {
			return nil, err
		}
		switch key {
		case "from":
			if s, ok := value.AsString(); ok {
				iface.From = s
				continue
			}
			iface.Attributes.Set(key, value)
		case "to":
			if s, ok := value.AsString(); ok {
				iface.To = s
				continue
			}
			iface.Attributes.Set(key, value)
		default:
			iface.Attributes.Set(key, value)
		}
	}

	if err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return iface, nil
}

// parseConnect parses the sugar `connect A[.Port] -> B[.Port] [via "x"]`.
// It reduces to the same interface shape as a connection block; the via
// string becomes the protocol attribute. The returned via string lets the
// physical body build a link instead.
func (p *Parser) parseConnect() (*ast.LogicalInterface, string, error) {
	p.advance() // connect

	from, fromPort, err := p.parseEndpoint()
	if err != nil {
		return nil, "", err
	}
	if err := p.expect(token.Arrow); err != nil {
		return nil, "", err
	}
	to, _, err := p.parseEndpoint()
	if err != nil {
		return nil, "", err
	}

	via := ""
	if p.current().Kind == token.Via {
		p.advance()
		via, err = p.expectString()
		if err != nil {
			return nil, "", err
		}
	}

	iface := &ast.LogicalInterface{
		Name:       fromPort,
		From:       from,
		To:         to,
		Attributes: ast.NewAttributes(),
	}
	if via != "" {
		iface.Attributes.Set("protocol", ast.StringValue(via))
	}
	return iface, via, nil
}

// parseEndpoint parses `Component[.Port]` and returns both parts.
func (p *Parser) parseEndpoint() (component, port string, err error) {
	component, err = p.parseElementName()
	if err != nil {
		return "", "", err
	}
	if p.current().Kind == token.Dot {
		p.advance()
		port, err = p.parseElementName()
		if err != nil {
			return "", "", err
		}
	}
	return component, port, nil
}

// parsePhysicalBody parses the braced body shared by `architecture
// physical` and the legacy `physical_architecture` block. Both `node` and
// `component` introduce physical nodes; connect sugar becomes a physical
// link.
func (p *Parser) parsePhysicalBody(pa *ast.PhysicalArchitecture) error {
	if err := p.expect(token.LBrace); err != nil {
		return err
	}

	for p.current().Kind != token.RBrace && !p.atEnd() {
		switch tok := p.current(); {
		case tok.Kind == token.Node, tok.Kind == token.Component:
			node, err := p.parsePhysicalNode()
			if err != nil {
				return err
			}
			pa.Nodes = append(pa.Nodes, node)
		case tok.Kind == token.Ident && tok.Text == "physical_link":
			link, err := p.parsePhysicalLink()
			if err != nil {
				return err
			}
			pa.Links = append(pa.Links, link)
		case tok.Kind == token.Connect:
			iface, via, err := p.parseConnect()
			if err != nil {
				return err
			}
			link := &ast.PhysicalLink{
				Name:        via,
				Connections: []string{iface.From, iface.To},
				Attributes:  iface.Attributes,
			}
			pa.Links = append(pa.Links, link)
		default:
			return errorf("unexpected token in physical architecture: %s", tok)
		}
	}

	return p.expect(token.RBrace)
}
