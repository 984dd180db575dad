// Package ast defines the abstract syntax tree produced by the parser.
//
// The tree is rooted at Model and is strictly ownership-shaped: no node is
// shared and no node points back at its parent. Every leaf block carries a
// generic attribute map, which is how the grammar absorbs new attributes
// without schema changes. The AST is an internal compiler artifact;
// downstream consumers work against the semantic model instead.
package ast

// Model is the root of the tree. A single parse produces exactly one Model
// regardless of which source dialect was used.
type Model struct {
	OperationalAnalyses   []*OperationalAnalysis
	SystemAnalyses        []*SystemAnalysis
	LogicalArchitectures  []*LogicalArchitecture
	PhysicalArchitectures []*PhysicalArchitecture
	Epbs                  []*Epbs
	SafetyAnalyses        []*SafetyAnalysis
	Traces                []*Trace
}

// OperationalAnalysis models the operational layer: who uses the system
// and what for.
type OperationalAnalysis struct {
	Name         string
	Actors       []*Actor
	Capabilities []*OperationalCapability
	Activities   []*OperationalActivity
}

type Actor struct {
	Name       string
	Attributes *Attributes
}

type OperationalCapability struct {
	Name       string
	Attributes *Attributes
}

type OperationalActivity struct {
	Name       string
	Attributes *Attributes
}

// SystemAnalysis holds requirements and system-level functions and
// components. Dialect C `requirements <subtype>` blocks reduce to one
// SystemAnalysis per block, named after the subtype.
type SystemAnalysis struct {
	Name         string
	Requirements []*Requirement
	Functions    []*SystemFunction
	Components   []*SystemComponent
}

type Requirement struct {
	ID         string
	Attributes *Attributes
}

type SystemFunction struct {
	Name       string
	Attributes *Attributes
}

type SystemComponent struct {
	Name       string
	Attributes *Attributes
}

// LogicalArchitecture holds logical components and the interfaces
// (connections) between them.
type LogicalArchitecture struct {
	Name       string
	Components []*LogicalComponent
	Interfaces []*LogicalInterface
}

// LogicalComponent additionally owns its functions and its typed inbound
// and outbound ports.
type LogicalComponent struct {
	Name          string
	Functions     []*LogicalFunction
	InterfacesIn  []*InterfaceDefinition
	InterfacesOut []*InterfaceDefinition
	Attributes    *Attributes
}

// InterfaceDefinition is one port of a component, declared either through
// the fielded interface_in/interface_out form or the provides/requires
// sugar.
type InterfaceDefinition struct {
	Name       string
	Protocol   string
	Format     string
	Attributes *Attributes
}

type LogicalFunction struct {
	Name       string
	Attributes *Attributes
}

// LogicalInterface is a directed connection between two components,
// written as a connection/interface block or as connect sugar.
type LogicalInterface struct {
	Name       string
	From       string
	To         string
	Attributes *Attributes
}

type PhysicalArchitecture struct {
	Name  string
	Nodes []*PhysicalNode
	Links []*PhysicalLink
}

type PhysicalNode struct {
	Name        string
	Deployments []*Deployment
	Attributes  *Attributes
}

// Deployment records that a node hosts a component.
type Deployment struct {
	Component  string
	Attributes *Attributes
}

type PhysicalLink struct {
	Name        string
	Connections []string
	Attributes  *Attributes
}

// Epbs is the electronic product breakdown structure: systems made of
// subsystems made of items.
type Epbs struct {
	Name    string
	Systems []*EpbsSystem
}

type EpbsSystem struct {
	Name       string
	Subsystems []*EpbsSubsystem
	Attributes *Attributes
}

type EpbsSubsystem struct {
	Name       string
	Items      []*EpbsItem
	Attributes *Attributes
}

type EpbsItem struct {
	Name       string
	Attributes *Attributes
}

type SafetyAnalysis struct {
	Hazards    []*Hazard
	Fmea       []*FmeaEntry
	Attributes *Attributes
}

type Hazard struct {
	Name       string
	Attributes *Attributes
}

type FmeaEntry struct {
	Name       string
	Attributes *Attributes
}

// Trace is a directed link between two declared elements. The analyzer
// verifies both endpoints against the element registry.
type Trace struct {
	From       string
	To         string
	Type       string
	Attributes *Attributes
}
