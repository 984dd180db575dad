// Package lexer turns .arc source text into a fully materialized token
// sequence. The scan is a single forward pass over the runes of the input
// with one character of lookahead; no token is ever re-read.
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/vk/arclang/internal/token"
)

// Error is a lexical error. It carries a single human-readable message;
// the pipeline aborts on the first one found.
type Error struct {
	Msg string
}

func (e *Error) Error() string {
	return "lexer error: " + e.Msg
}

func errorf(format string, args ...any) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

// Lexer holds the scan cursor over the input. One instance serves exactly
// one Tokenize call.
type Lexer struct {
	input []rune
	pos   int
}

// New creates a lexer over the given source text.
func New(input string) *Lexer {
	return &Lexer{input: []rune(input)}
}

// Tokenize scans the whole input and returns the token sequence, always
// terminated by an EOF token on success.
func Tokenize(input string) ([]token.Token, error) {
	return New(input).Tokenize()
}

// Tokenize consumes the lexer and produces the full token sequence.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var tokens []token.Token

	for {
		l.skipWhitespace()

		if l.atEnd() {
			tokens = append(tokens, token.Token{Kind: token.EOF})
			return tokens, nil
		}

		if l.current() == '/' && l.peek() == '/' {
			l.skipLineComment()
			continue
		}

		if l.current() == '/' && l.peek() == '*' {
			if err := l.skipBlockComment(); err != nil {
				return nil, err
			}
			continue
		}

		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) next() (token.Token, error) {
	switch ch := l.current(); ch {
	case '{':
		l.advance()
		return token.Token{Kind: token.LBrace}, nil
	case '}':
		l.advance()
		return token.Token{Kind: token.RBrace}, nil
	case '[':
		l.advance()
		return token.Token{Kind: token.LBracket}, nil
	case ']':
		l.advance()
		return token.Token{Kind: token.RBracket}, nil
	case ':':
		l.advance()
		return token.Token{Kind: token.Colon}, nil
	case ',':
		l.advance()
		return token.Token{Kind: token.Comma}, nil
	case '.':
		l.advance()
		return token.Token{Kind: token.Dot}, nil
	case '-':
		if l.peek() == '>' {
			l.advance()
			l.advance()
			return token.Token{Kind: token.Arrow}, nil
		}
		if isDigit(l.peek()) {
			return l.readNumber()
		}
		l.advance()
		return token.Token{Kind: token.Minus}, nil
	case '"':
		return l.readString()
	default:
		if isDigit(ch) {
			return l.readNumber()
		}
		if unicode.IsLetter(ch) || ch == '_' {
			return l.readIdentOrKeyword(), nil
		}
		return token.Token{}, errorf("unexpected character: %q", string(ch))
	}
}

// readString decodes a double-quoted literal. Known escapes are decoded,
// any other escaped character passes through literally.
func (l *Lexer) readString() (token.Token, error) {
	l.advance() // opening quote

	var sb strings.Builder
	for !l.atEnd() && l.current() != '"' {
		if l.current() == '\\' {
			l.advance()
			if l.atEnd() {
				break
			}
			switch l.current() {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case '"':
				sb.WriteRune('"')
			case '\\':
				sb.WriteRune('\\')
			default:
				sb.WriteRune(l.current())
			}
			l.advance()
			continue
		}
		sb.WriteRune(l.current())
		l.advance()
	}

	if l.atEnd() {
		return token.Token{}, errorf("unterminated string literal")
	}

	l.advance() // closing quote
	return token.Token{Kind: token.String, Text: sb.String()}, nil
}

// readNumber scans an optionally negative numeric literal. At most one
// decimal point is accepted, and only when a digit follows it, so that
// trailing dots stay available as separate tokens. Underscores are digit
// separators and do not reach the parsed value.
func (l *Lexer) readNumber() (token.Token, error) {
	var sb strings.Builder
	hasDecimal := false

	if l.current() == '-' {
		sb.WriteRune('-')
		l.advance()
	}

	for !l.atEnd() {
		switch ch := l.current(); {
		case isDigit(ch):
			sb.WriteRune(ch)
			l.advance()
		case ch == '.' && !hasDecimal && isDigit(l.peek()):
			hasDecimal = true
			sb.WriteRune(ch)
			l.advance()
		case ch == '_':
			l.advance()
		default:
			num, err := strconv.ParseFloat(sb.String(), 64)
			if err != nil {
				return token.Token{}, errorf("invalid number: %s", sb.String())
			}
			return token.Token{Kind: token.Number, Text: sb.String(), Num: num}, nil
		}
	}

	num, err := strconv.ParseFloat(sb.String(), 64)
	if err != nil {
		return token.Token{}, errorf("invalid number: %s", sb.String())
	}
	return token.Token{Kind: token.Number, Text: sb.String(), Num: num}, nil
}

func (l *Lexer) readIdentOrKeyword() token.Token {
	start := l.pos
	for !l.atEnd() && (unicode.IsLetter(l.current()) || unicode.IsDigit(l.current()) || l.current() == '_') {
		l.advance()
	}
	text := string(l.input[start:l.pos])

	kind := token.Lookup(text)
	if kind == token.Ident {
		return token.Token{Kind: token.Ident, Text: text}
	}
	return token.Token{Kind: kind, Text: text}
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && unicode.IsSpace(l.current()) {
		l.advance()
	}
}

func (l *Lexer) skipLineComment() {
	for !l.atEnd() && l.current() != '\n' {
		l.advance()
	}
}

func (l *Lexer) skipBlockComment() error {
	l.advance() // '/'
	l.advance() // '*'

	for !l.atEnd() {
		if l.current() == '*' && l.peek() == '/' {
			l.advance()
			l.advance()
			return nil
		}
		l.advance()
	}
	return errorf("unterminated block comment")
}

func (l *Lexer) current() rune {
	return l.input[l.pos]
}

// peek returns the rune after the cursor, or 0 at end of input.
func (l *Lexer) peek() rune {
	if l.pos+1 < len(l.input) {
		return l.input[l.pos+1]
	}
	return 0
}

func (l *Lexer) advance() {
	l.pos++
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
