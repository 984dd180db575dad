// Package parser turns the lexer's token sequence into an ast.Model.
//
// The grammar has three coexisting top-level dialects that all reduce to
// the same tree:
//
//   - Dialect A: a model/system header whose braces contain metadata,
//     `requirements <subtype>` and `architecture logical|physical` blocks.
//   - Dialect B: bare legacy top-level blocks (operational_analysis,
//     system_analysis, logical_architecture, ...) with no model wrapper.
//   - Dialect C: a model/system header immediately followed by top-level
//     requirements/architecture/trace blocks outside the header's braces.
//
// Parse dispatches on the first significant token and each dialect runs as
// its own set of methods over a single shared cursor. There is no
// backtracking; disambiguation uses at most two tokens of lookahead.
// Unknown block-scoped constructs are tolerated with a brace-balanced skip
// so that older binaries keep parsing newer files.
package parser

import (
	"fmt"

	"github.com/vk/arclang/internal/ast"
	"github.com/vk/arclang/internal/token"
)

// Error is a structural parse error. The parser fails fast: the first
// structural error aborts the whole parse.
type Error struct {
	Msg string
}

func (e *Error) Error() string {
	return "parse error: " + e.Msg
}

func errorf(format string, args ...any) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

// Parser owns the token cursor for exactly one Parse call. The cursor is
// never exposed outside the instance.
type Parser struct {
	tokens []token.Token
	pos    int
	model  *ast.Model
}

// New creates a parser over a token sequence.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens, model: &ast.Model{}}
}

// Parse consumes a token sequence and produces the model.
func Parse(tokens []token.Token) (*ast.Model, error) {
	return New(tokens).Parse()
}

// Parse runs the top-level dialect dispatch until EOF.
func (p *Parser) Parse() (*ast.Model, error) {
	for !p.atEnd() {
		var err error
		switch p.current().Kind {
		case token.Model, token.System:
			err = p.parseModelHeader()
		case token.OperationalAnalysis:
			err = p.parseOperationalAnalysis()
		case token.SystemAnalysis:
			err = p.parseSystemAnalysis()
		case token.LogicalArchitecture:
			err = p.parseLogicalArchitecture()
		case token.PhysicalArchitecture:
			err = p.parsePhysicalArchitecture()
		case token.Epbs:
			err = p.parseEpbs()
		case token.SafetyAnalysis:
			err = p.parseSafetyAnalysis()
		case token.Trace:
			err = p.parseTrace()
		case token.Requirements:
			err = p.parseRequirementsBlock()
		case token.Architecture:
			err = p.parseArchitectureBlock()
		case token.Scenarios, token.Scenario, token.Ident:
			// Forward compatibility: an unsupported or unknown top-level
			// construct is skipped wholesale.
			err = p.skipUnknownConstruct()
		default:
			return nil, errorf("unexpected token at top level: %s", p.current())
		}
		if err != nil {
			return nil, err
		}
	}
	return p.model, nil
}

// parseModelHeader handles the model/system header shared by dialects A
// and C. Blocks nested inside the braces are parsed into the same model;
// once the header closes, control returns to Parse, which picks up any
// trailing dialect-C blocks.
func (p *Parser) parseModelHeader() error {
	p.advance() // model or system
	if _, err := p.parseElementName(); err != nil {
		return err
	}
	if err := p.expect(token.LBrace); err != nil {
		return err
	}

	for p.current().Kind != token.RBrace && !p.atEnd() {
		var err error
		switch p.current().Kind {
		case token.Metadata:
			p.advance()
			err = p.skipBalancedBlock()
		case token.Requirements:
			err = p.parseRequirementsBlock()
		case token.Architecture:
			err = p.parseArchitectureBlock()
		case token.Scenarios, token.Scenario:
			p.advance()
			err = p.skipLeadingAndBalancedBlock()
		case token.OperationalAnalysis:
			err = p.parseOperationalAnalysis()
		case token.SystemAnalysis:
			err = p.parseSystemAnalysis()
		case token.LogicalArchitecture:
			err = p.parseLogicalArchitecture()
		case token.PhysicalArchitecture:
			err = p.parsePhysicalArchitecture()
		case token.SafetyAnalysis:
			err = p.parseSafetyAnalysis()
		case token.Trace:
			err = p.parseTrace()
		default:
			// Unknown constructs inside the header are tolerated: skip a
			// braced block wholesale, or drop a stray token.
			if p.current().Kind == token.Ident && p.hasUpcomingBrace() {
				p.advance()
				err = p.skipLeadingAndBalancedBlock()
			} else {
				p.advance()
			}
		}
		if err != nil {
			return err
		}
	}

	return p.expect(token.RBrace)
}

// skipUnknownConstruct discards an unrecognized top-level construct: any
// leading tokens up to its opening brace, then the brace-balanced body.
// A construct with no body at all is dropped token by token.
func (p *Parser) skipUnknownConstruct() error {
	if !p.hasUpcomingBrace() {
		p.advance()
		return nil
	}
	p.advance()
	return p.skipLeadingAndBalancedBlock()
}

// hasUpcomingBrace reports whether an opening brace begins within the next
// few tokens, which is how an unknown keyword is told apart from stray
// non-block garbage.
func (p *Parser) hasUpcomingBrace() bool {
	for i := p.pos; i < len(p.tokens) && i < p.pos+3; i++ {
		switch p.tokens[i].Kind {
		case token.LBrace:
			return true
		case token.RBrace, token.EOF:
			return false
		}
	}
	return false
}

// skipLeadingAndBalancedBlock consumes tokens up to and including the next
// opening brace, then the brace-balanced body that follows.
func (p *Parser) skipLeadingAndBalancedBlock() error {
	for p.current().Kind != token.LBrace {
		if p.atEnd() {
			return errorf("expected '{' before end of file while skipping unknown block")
		}
		p.advance()
	}
	return p.skipBalancedBlock()
}

// skipBalancedBlock consumes an opening brace and tokens through its
// matching close, tracking nesting depth. This is the forward-compatibility
// mechanism invoked from every dialect branch.
func (p *Parser) skipBalancedBlock() error {
	if err := p.expect(token.LBrace); err != nil {
		return err
	}
	depth := 1
	for depth > 0 && !p.atEnd() {
		switch p.current().Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
		}
		p.advance()
	}
	if depth != 0 {
		return errorf("unmatched braces while skipping block")
	}
	return nil
}

// parseElementName accepts a quoted or bare element name. A bare name
// immediately followed by a negative integer token is re-joined, so that
// hyphenated ids such as STK-001 survive the lexer's number lookahead.
func (p *Parser) parseElementName() (string, error) {
	switch tok := p.current(); tok.Kind {
	case token.String:
		p.advance()
		return tok.Text, nil
	case token.Ident:
		p.advance()
		return p.glueHyphenSuffix(tok.Text), nil
	default:
		return "", errorf("expected element name, found %s", tok)
	}
}

// glueHyphenSuffix re-attaches a trailing "-NNN" that the lexer scanned as
// a negative number. The token's raw text keeps the digit padding.
func (p *Parser) glueHyphenSuffix(name string) string {
	for p.current().Kind == token.Number && len(p.current().Text) > 1 && p.current().Text[0] == '-' {
		name += p.current().Text
		p.advance()
	}
	return name
}

func (p *Parser) expect(kind token.Kind) error {
	if p.current().Kind != kind {
		return errorf("expected %s, found %s", kind, p.current())
	}
	p.advance()
	return nil
}

// expectString consumes a string literal and returns its value.
func (p *Parser) expectString() (string, error) {
	tok := p.current()
	if tok.Kind != token.String {
		return "", errorf("expected string literal, found %s", tok)
	}
	p.advance()
	return tok.Text, nil
}

func (p *Parser) current() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

func (p *Parser) atEnd() bool {
	return p.current().Kind == token.EOF
}
