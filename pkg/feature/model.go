// Package feature parses the line-oriented feature-text grammar into an
// immutable scenario model and expands Scenario Outlines over their
// Examples tables.
package feature

// StepKind identifies the primary keyword of a step. And/But lines are
// resolved to the kind of the nearest preceding primary keyword at parse
// time, so no unresolved kind ever leaves this package.
type StepKind int

const (
	Given StepKind = iota
	When
	Then
)

// String returns the keyword for the kind.
func (k StepKind) String() string {
	switch k {
	case Given:
		return "Given"
	case When:
		return "When"
	case Then:
		return "Then"
	default:
		return "unknown"
	}
}

// Table is a pipe-delimited data block. The first parsed row becomes the
// header; every data row has exactly len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// Line records where a step came from in the source text. Number is 1-based
// and survives placeholder substitution, so execution errors always point at
// the original line.
type Line struct {
	Number  int
	Text    string
	Table   *Table
	Bullets []string
}

// Step is one Given/When/Then line of scenario text, optionally carrying a
// table or bulleted content.
type Step struct {
	Kind StepKind
	Text string
	Line Line
}

// Param is one (column, value) pair chosen from an Examples row during
// outline expansion.
type Param struct {
	Name  string
	Value string
}

// Scenario is a fully expanded, executable scenario: background steps
// prepended, And/But kinds resolved, placeholders substituted.
// Outline-derived scenarios carry the chosen example-row values as Params.
type Scenario struct {
	Name   string
	Tags   []string
	Steps  []Step
	Params []Param
}

// Block is a parsed Scenario or Scenario Outline before expansion.
type Block struct {
	Name     string
	Tags     []string
	Outline  bool
	Steps    []Step
	Examples []Table
}

// Document is the parse tree of one feature text: the feature header, an
// optional background step sequence, the scenario blocks in document order
// and any feature-level shared Examples tables.
type Document struct {
	Name           string
	Tags           []string
	Background     []Step
	Blocks         []Block
	SharedExamples []Table
}
