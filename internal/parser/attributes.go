package parser

import (
	"github.com/vk/arclang/internal/ast"
	"github.com/vk/arclang/internal/token"
)

// parseAttributesBlock parses a braced run of `key: value` pairs.
func (p *Parser) parseAttributesBlock() (*ast.Attributes, error) {
	if err := p.expect(token.LBrace); err != nil {
		return nil, err
	}
	attrs := ast.NewAttributes()
	for p.current().Kind != token.RBrace && !p.atEnd() {
		key, value, err := p.parseAttribute()
		if err != nil {
			return nil, err
		}
		attrs.Set(key, value)
	}
	if err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return attrs, nil
}

// parseAttribute parses one `key: value` pair. Reserved words double as
// attribute keys (description, priority, ...) since the lexer reclassifies
// them unconditionally.
func (p *Parser) parseAttribute() (string, ast.AttributeValue, error) {
	key, err := p.parseAttributeKey()
	if err != nil {
		return "", ast.AttributeValue{}, err
	}
	if err := p.expect(token.Colon); err != nil {
		return "", ast.AttributeValue{}, err
	}
	value, err := p.parseAttributeValue()
	if err != nil {
		return "", ast.AttributeValue{}, err
	}
	return key, value, nil
}

func (p *Parser) parseAttributeKey() (string, error) {
	tok := p.current()
	if tok.Kind == token.Ident || isKeywordWithText(tok) {
		p.advance()
		return tok.Text, nil
	}
	return "", errorf("expected attribute name, found %s", tok)
}

// isKeywordWithText reports whether the token is a reserved word carrying
// its source spelling, making it usable as an attribute key.
func isKeywordWithText(tok token.Token) bool {
	if tok.Text == "" {
		return false
	}
	_, ok := token.KeywordText(tok.Kind)
	return ok
}

// parseAttributeValue parses the small value grammar:
// string | number | [list] | bareword. Barewords, including reserved
// words, become strings.
func (p *Parser) parseAttributeValue() (ast.AttributeValue, error) {
	switch tok := p.current(); tok.Kind {
	case token.String:
		p.advance()
		return ast.StringValue(tok.Text), nil
	case token.Number:
		p.advance()
		return ast.NumberValue(tok.Num), nil
	case token.LBracket:
		return p.parseList()
	case token.Ident:
		p.advance()
		return ast.StringValue(p.glueHyphenSuffix(tok.Text)), nil
	default:
		if isKeywordWithText(tok) {
			p.advance()
			return ast.StringValue(tok.Text), nil
		}
		return ast.AttributeValue{}, errorf("expected attribute value, found %s", tok)
	}
}

// parseList parses a bracketed, comma-separated value list. Nesting and
// mixed element kinds are permitted.
func (p *Parser) parseList() (ast.AttributeValue, error) {
	if err := p.expect(token.LBracket); err != nil {
		return ast.AttributeValue{}, err
	}

	var items []ast.AttributeValue
	for p.current().Kind != token.RBracket && !p.atEnd() {
		item, err := p.parseAttributeValue()
		if err != nil {
			return ast.AttributeValue{}, err
		}
		items = append(items, item)

		if p.current().Kind == token.Comma {
			p.advance()
		} else if p.current().Kind != token.RBracket {
			return ast.AttributeValue{}, errorf("expected ',' or ']' in list, found %s", p.current())
		}
	}

	if err := p.expect(token.RBracket); err != nil {
		return ast.AttributeValue{}, err
	}
	return ast.ListValue(items), nil
}
