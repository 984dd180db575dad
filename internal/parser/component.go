package parser

import (
	"github.com/vk/arclang/internal/ast"
	"github.com/vk/arclang/internal/token"
)

// parseComponent parses `component <name> ["Title"] { ... }`. The body
// mixes nested functions, port declarations in both concrete forms, and
// generic attributes; unknown tokens are dropped rather than failing, the
// same tolerance the block level has.
func (p *Parser) parseComponent() (*ast.LogicalComponent, error) {
	p.advance() // component

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

	comp := &ast.LogicalComponent{Name: name, Attributes: ast.NewAttributes()}
	if title != "" {
		comp.Attributes.Set("title", ast.StringValue(title))
	}

	for p.current().Kind != token.RBrace && !p.atEnd() {
		switch tok := p.current(); {
		case tok.Kind == token.Function:
			fn, err := p.parseFunction()
			if err != nil {
				return nil, err
			}
			comp.Functions = append(comp.Functions, fn)
		case tok.Kind == token.Provides:
			port, err := p.parsePortSugar()
			if err != nil {
				return nil, err
			}
			if port != nil {
				comp.InterfacesOut = append(comp.InterfacesOut, port)
			}
		case tok.Kind == token.Requires:
			port, err := p.parsePortSugar()
			if err != nil {
				return nil, err
			}
			if port != nil {
				comp.InterfacesIn = append(comp.InterfacesIn, port)
			}
		case tok.Kind == token.Ident && tok.Text == "interface_in":
			port, err := p.parseFieldedPort()
			if err != nil {
				return nil, err
			}
			comp.InterfacesIn = append(comp.InterfacesIn, port)
		case tok.Kind == token.Ident && tok.Text == "interface_out":
			port, err := p.parseFieldedPort()
			if err != nil {
				return nil, err
			}
			comp.InterfacesOut = append(comp.InterfacesOut, port)
		case tok.Kind == token.Ident && p.peek().Kind == token.Colon,
			isKeywordWithText(tok) && p.peek().Kind == token.Colon:
			key, value, err := p.parseAttribute()
			if err != nil {
				return nil, err
			}
			comp.Attributes.Set(key, value)
		default:
			p.advance()
		}
	}

	if err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return comp, nil
}

// parseFunction parses `function <name> { attrs }`.
func (p *Parser) parseFunction() (*ast.LogicalFunction, error) {
	p.advance() // function

	name, err := p.parseElementName()
	if err != nil {
		return nil, err
	}
	attrs, err := p.parseAttributesBlock()
	if err != nil {
		return nil, err
	}
	return &ast.LogicalFunction{Name: name, Attributes: attrs}, nil
}

// parsePortSugar parses `provides|requires interface <Name> [{ attrs }]`.
// When the interface keyword is missing the declaration contributes
// nothing; the body is optional and a bodiless port simply has no
// protocol or format.
func (p *Parser) parsePortSugar() (*ast.InterfaceDefinition, error) {
	p.advance() // provides or requires

	if p.current().Kind != token.Interface {
		return nil, nil
	}
	p.advance()

	name, err := p.parseElementName()
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
	return portFromAttributes(name, attrs), nil
}

// parseFieldedPort parses the explicit form:
// `interface_in: <Name> [{ protocol: ... format: ... }]` (and its
// interface_out twin).
func (p *Parser) parseFieldedPort() (*ast.InterfaceDefinition, error) {
	p.advance() // interface_in or interface_out
	if err := p.expect(token.Colon); err != nil {
		return nil, err
	}

	name, err := p.parseElementName()
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
	return portFromAttributes(name, attrs), nil
}

// portFromAttributes lifts the optional protocol/format attributes into
// the typed port fields; the full attribute map rides along untouched.
func portFromAttributes(name string, attrs *ast.Attributes) *ast.InterfaceDefinition {
	port := &ast.InterfaceDefinition{Name: name, Attributes: attrs}
	if protocol, ok := attrs.GetString("protocol"); ok {
		port.Protocol = protocol
	}
	if format, ok := attrs.GetString("format"); ok {
		port.Format = format
	}
	return port
}
