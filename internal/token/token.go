// Package token defines the lexical token set for the .arc architecture
// description language. Tokens are immutable values produced once by the
// lexer; the parser consumes them by position only.
package token

import "fmt"

// Kind identifies the lexical class of a token.
type Kind int

const (
	EOF Kind = iota

	// Payload-carrying kinds.
	Ident
	String
	Number

	// Punctuation.
	LBrace
	RBrace
	LBracket
	RBracket
	Colon
	Comma
	Dot
	Arrow
	Minus

	// Layer keywords (legacy bare top-level blocks).
	OperationalAnalysis
	SystemAnalysis
	LogicalArchitecture
	PhysicalArchitecture
	Epbs
	SafetyAnalysis

	// Element keywords.
	Actor
	Requirement
	Component
	Function
	Interface
	Node
	System
	Subsystem
	Item
	Hazard
	Fmea
	Trace
	Deploys
	Implements
	Satisfies

	// Structured-model keywords.
	Model
	Metadata
	Version
	Author
	Description
	Requirements
	Stakeholder
	Architecture
	Logical
	Physical
	Provides
	Requires
	Signals
	Connect
	Via
	Scenarios
	Scenario
	Steps
	Precondition
	Postcondition
	Properties
	Parent
	SafetyLevel
	Priority
	Traces
	Verification
	Rationale
)

// Token is a single lexical unit. Text carries the identifier name, the
// decoded string value, or the raw numeric spelling; Num carries the parsed
// value for Number tokens.
type Token struct {
	Kind Kind
	Text string
	Num  float64
}

// keywords is the exact-match table of reserved words. Anything not listed
// here lexes as a plain identifier.
var keywords = map[string]Kind{
	"operational_analysis":  OperationalAnalysis,
	"system_analysis":       SystemAnalysis,
	"logical_architecture":  LogicalArchitecture,
	"physical_architecture": PhysicalArchitecture,
	"epbs":                  Epbs,
	"actor":                 Actor,
	"requirement":           Requirement,
	"component":             Component,
	"function":              Function,
	"interface":             Interface,
	"node":                  Node,
	"system":                System,
	"subsystem":             Subsystem,
	"item":                  Item,
	"safety_analysis":       SafetyAnalysis,
	"hazard":                Hazard,
	"fmea":                  Fmea,
	"trace":                 Trace,
	"deploys":               Deploys,
	"implements":            Implements,
	"satisfies":             Satisfies,
	"model":                 Model,
	"metadata":              Metadata,
	"version":               Version,
	"author":                Author,
	"description":           Description,
	"requirements":          Requirements,
	"stakeholder":           Stakeholder,
	"architecture":          Architecture,
	"logical":               Logical,
	"physical":              Physical,
	"provides":              Provides,
	"requires":              Requires,
	"signals":               Signals,
	"connect":               Connect,
	"via":                   Via,
	"scenarios":             Scenarios,
	"scenario":              Scenario,
	"steps":                 Steps,
	"precondition":          Precondition,
	"postcondition":         Postcondition,
	"properties":            Properties,
	"parent":                Parent,
	"safety_level":          SafetyLevel,
	"priority":              Priority,
	"traces":                Traces,
	"verification":          Verification,
	"rationale":             Rationale,
}

// Lookup reclassifies an identifier as a keyword when it appears in the
// reserved-word table, and returns Ident otherwise.
func Lookup(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return Ident
}

// KeywordText returns the source spelling of a keyword kind. The second
// result is false for non-keyword kinds. The parser uses this to accept
// reserved words as attribute keys.
func KeywordText(k Kind) (string, bool) {
	for text, kind := range keywords {
		if kind == k {
			return text, true
		}
	}
	return "", false
}

var kindNames = map[Kind]string{
	EOF:      "end of file",
	Ident:    "identifier",
	String:   "string literal",
	Number:   "number",
	LBrace:   "'{'",
	RBrace:   "'}'",
	LBracket: "'['",
	RBracket: "']'",
	Colon:    "':'",
	Comma:    "','",
	Dot:      "'.'",
	Arrow:    "'->'",
	Minus:    "'-'",
}

// String renders the kind for error messages: punctuation and literal
// classes get a descriptive name, keywords their source spelling.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	if text, ok := KeywordText(k); ok {
		return "'" + text + "'"
	}
	return fmt.Sprintf("token(%d)", int(k))
}

// String renders the token for error messages.
func (t Token) String() string {
	switch t.Kind {
	case Ident:
		return fmt.Sprintf("identifier %q", t.Text)
	case String:
		return fmt.Sprintf("string %q", t.Text)
	case Number:
		return fmt.Sprintf("number %v", t.Num)
	default:
		return t.Kind.String()
	}
}
