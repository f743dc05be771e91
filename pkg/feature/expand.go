package feature

import (
	"fmt"
	"regexp"
	"slices"
)

var placeholderPattern = regexp.MustCompile(`<([^<>]+)>`)

// Scenarios expands the document into concrete scenarios: background steps
// are prepended, feature tags are merged in, and every Scenario Outline is
// expanded over the cartesian product of its Examples tables plus the
// feature-level shared ones. Expansion order is lexicographic over the table
// list, then row order within each table, and each expanded scenario is
// named "<name>(<index>)" with a 0-based index. An outline whose tables
// multiply out to zero rows expands to no scenarios at all; only an outline
// with no tables anywhere falls back to a single unexpanded scenario.
func (d *Document) Scenarios() []Scenario {
	out := make([]Scenario, 0, len(d.Blocks))

	for _, b := range d.Blocks {
		tags := mergeTags(d.Tags, b.Tags)
		steps := append(slices.Clone(d.Background), b.Steps...)

		tables := append(slices.Clone(b.Examples), d.SharedExamples...)
		if !b.Outline || len(tables) == 0 {
			out = append(out, Scenario{Name: b.Name, Tags: tags, Steps: steps})
			continue
		}
		// the expansion count is the product of row counts, so one
		// header-only table empties the whole outline
		if productSize(tables) == 0 {
			continue
		}

		indices := make([]int, len(tables))
		for idx := 0; ; idx++ {
			params, lookup := combination(tables, indices)
			out = append(out, Scenario{
				Name:   fmt.Sprintf("%s(%d)", b.Name, idx),
				Tags:   tags,
				Steps:  substituteSteps(steps, lookup),
				Params: params,
			})
			if !advance(indices, tables) {
				break
			}
		}
	}
	return out
}

// combination flattens the chosen row of every table into one ordered
// parameter list. Later tables override earlier ones on column-name
// collision in the lookup.
func combination(tables []Table, indices []int) ([]Param, map[string]string) {
	params := make([]Param, 0)
	lookup := make(map[string]string)
	for ti, t := range tables {
		row := t.Rows[indices[ti]]
		for ci, col := range t.Header {
			params = append(params, Param{Name: col, Value: row[ci]})
			lookup[col] = row[ci]
		}
	}
	return params, lookup
}

// advance increments the odometer, rightmost table fastest. Returns false
// once every combination has been produced.
func advance(indices []int, tables []Table) bool {
	for k := len(indices) - 1; k >= 0; k-- {
		indices[k]++
		if indices[k] < len(tables[k].Rows) {
			return true
		}
		indices[k] = 0
	}
	return false
}

func productSize(tables []Table) int {
	n := 1
	for _, t := range tables {
		n *= len(t.Rows)
	}
	return n
}

func substituteSteps(steps []Step, lookup map[string]string) []Step {
	out := make([]Step, len(steps))
	for i, s := range steps {
		out[i] = Step{
			Kind: s.Kind,
			Text: substitute(s.Text, lookup),
			Line: Line{
				Number:  s.Line.Number,
				Text:    substitute(s.Line.Text, lookup),
				Table:   substituteTable(s.Line.Table, lookup),
				Bullets: substituteAll(s.Line.Bullets, lookup),
			},
		}
	}
	return out
}

func substituteTable(t *Table, lookup map[string]string) *Table {
	if t == nil {
		return nil
	}
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = substituteAll(row, lookup)
	}
	return &Table{Header: substituteAll(t.Header, lookup), Rows: rows}
}

func substituteAll(values []string, lookup map[string]string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = substitute(v, lookup)
	}
	return out
}

// substitute replaces each <name> placeholder with the matching lookup
// value. Unmatched placeholders are left verbatim.
func substitute(s string, lookup map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(s, func(m string) string {
		if v, ok := lookup[m[1:len(m)-1]]; ok {
			return v
		}
		return m
	})
}

func mergeTags(parent, child []string) []string {
	if len(parent) == 0 && len(child) == 0 {
		return nil
	}
	return append(slices.Clone(parent), child...)
}
