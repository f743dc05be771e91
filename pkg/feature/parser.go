package feature

import (
	"fmt"
	"strings"
)

// ParseError reports malformed feature text. Line is the 1-based source line
// the parser rejected.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Msg)
}

type parser struct {
	doc     *Document
	pending []string // tags waiting for the next block

	inBackground bool // steps accumulate on doc.Background
	inExamples   bool // table rows accumulate on the open block's Examples
	inShared     bool // table rows accumulate on doc.SharedExamples
	inDoc        bool // inside a """ doc string
	tableStarted bool // the open Examples block already has a header row

	lastKind StepKind
	haveKind bool // lastKind is valid for And/But inheritance
	haveStep bool // a step is open for table/bullet attachment
}

// Parse consumes one feature text and returns its parse tree. Outline
// expansion is a separate pass, see Document.Scenarios.
//
// An Examples block starting at column zero (or appearing before the first
// scenario) is a feature-level shared Examples block; an indented one
// belongs to the Scenario Outline it follows.
func Parse(text string) (*Document, error) {
	p := &parser{doc: &Document{}}
	seenFeature := false
	lastLine := 1

	for _, tok := range tokenize(text) {
		lastLine = tok.number

		if p.inDoc {
			if tok.kind == lineDocString {
				p.inDoc = false
				continue
			}
			st := p.currentStep()
			st.Line.Bullets = append(st.Line.Bullets, tok.raw)
			continue
		}

		switch tok.kind {
		case lineBlank, lineComment:

		case lineFeature:
			if seenFeature {
				return nil, &ParseError{tok.number, "duplicate Feature header"}
			}
			seenFeature = true
			p.doc.Name = tok.text
			p.doc.Tags = p.takeTags()

		case lineBackground:
			if !seenFeature {
				return nil, &ParseError{tok.number, "Background before Feature header"}
			}
			p.closeBlockState()
			p.inBackground = true

		case lineScenario, lineOutline:
			if !seenFeature {
				return nil, &ParseError{tok.number, "Scenario before Feature header"}
			}
			p.closeBlockState()
			p.doc.Blocks = append(p.doc.Blocks, Block{
				Name:    tok.text,
				Tags:    p.takeTags(),
				Outline: tok.kind == lineOutline,
			})

		case lineTags:
			tags, err := splitTags(tok.text)
			if err != nil {
				return nil, &ParseError{tok.number, err.Error()}
			}
			p.pending = append(p.pending, tags...)

		case lineStep:
			if !p.inBackground && len(p.doc.Blocks) == 0 {
				return nil, &ParseError{tok.number, "step outside of a Background or Scenario"}
			}
			if p.inExamples || p.inShared {
				return nil, &ParseError{tok.number, "step after an Examples block"}
			}
			kind, ok := resolveKind(tok.keyword, p.lastKind, p.haveKind)
			if !ok {
				return nil, &ParseError{tok.number, fmt.Sprintf("%s without a preceding Given, When or Then", tok.keyword)}
			}
			p.lastKind, p.haveKind = kind, true
			step := Step{Kind: kind, Text: tok.text, Line: Line{Number: tok.number, Text: tok.raw}}
			if p.inBackground {
				p.doc.Background = append(p.doc.Background, step)
			} else {
				b := p.lastBlock()
				b.Steps = append(b.Steps, step)
			}
			p.haveStep = true

		case lineExamples:
			if tok.indent == 0 || len(p.doc.Blocks) == 0 {
				p.closeBlockState()
				p.inShared = true
				continue
			}
			b := p.lastBlock()
			if !b.Outline {
				return nil, &ParseError{tok.number, "Examples without a preceding Scenario Outline"}
			}
			p.inBackground = false
			p.haveStep = false
			p.inExamples = true
			p.tableStarted = false

		case lineTableRow:
			cells := parseTableRow(tok.text)
			if err := p.addTableRow(tok.number, cells); err != nil {
				return nil, err
			}

		case lineDocString:
			if !p.haveStep {
				return nil, &ParseError{tok.number, "doc string outside of a step"}
			}
			p.inDoc = true

		case lineBullet:
			if !p.haveStep {
				return nil, &ParseError{tok.number, "bullet outside of a step"}
			}
			st := p.currentStep()
			st.Line.Bullets = append(st.Line.Bullets, tok.text)

		default:
			return nil, &ParseError{tok.number, fmt.Sprintf("unexpected line %q", tok.raw)}
		}
	}

	if p.inDoc {
		return nil, &ParseError{lastLine, "unterminated doc string"}
	}
	if !seenFeature {
		return nil, &ParseError{1, "missing Feature header"}
	}
	return p.doc, nil
}

func (p *parser) addTableRow(line int, cells []string) error {
	switch {
	case p.inExamples:
		b := p.lastBlock()
		if !p.tableStarted {
			b.Examples = append(b.Examples, Table{Header: cells})
			p.tableStarted = true
			return nil
		}
		return appendRow(&b.Examples[len(b.Examples)-1], line, cells)

	case p.inShared:
		if !p.tableStarted {
			p.doc.SharedExamples = append(p.doc.SharedExamples, Table{Header: cells})
			p.tableStarted = true
			return nil
		}
		return appendRow(&p.doc.SharedExamples[len(p.doc.SharedExamples)-1], line, cells)

	case p.haveStep:
		st := p.currentStep()
		if st.Line.Table == nil {
			st.Line.Table = &Table{Header: cells}
			return nil
		}
		return appendRow(st.Line.Table, line, cells)

	default:
		return &ParseError{line, "table row outside of a step or Examples block"}
	}
}

func appendRow(t *Table, line int, cells []string) error {
	if len(cells) != len(t.Header) {
		return &ParseError{line, fmt.Sprintf("table row has %d cells, header has %d", len(cells), len(t.Header))}
	}
	t.Rows = append(t.Rows, cells)
	return nil
}

func (p *parser) currentStep() *Step {
	if p.inBackground {
		return &p.doc.Background[len(p.doc.Background)-1]
	}
	b := p.lastBlock()
	return &b.Steps[len(b.Steps)-1]
}

func (p *parser) lastBlock() *Block {
	return &p.doc.Blocks[len(p.doc.Blocks)-1]
}

func (p *parser) closeBlockState() {
	p.inBackground = false
	p.inExamples = false
	p.inShared = false
	p.haveStep = false
	p.haveKind = false
	p.tableStarted = false
}

func (p *parser) takeTags() []string {
	tags := p.pending
	p.pending = nil
	return tags
}

func resolveKind(keyword string, last StepKind, have bool) (StepKind, bool) {
	switch keyword {
	case "Given":
		return Given, true
	case "When":
		return When, true
	case "Then":
		return Then, true
	default: // And, But inherit the nearest primary keyword
		if !have {
			return 0, false
		}
		return last, true
	}
}

func splitTags(line string) ([]string, error) {
	fields := strings.Fields(line)
	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		if !strings.HasPrefix(f, "@") || len(f) == 1 {
			return nil, fmt.Errorf("malformed tag %q", f)
		}
		tags = append(tags, f[1:])
	}
	return tags, nil
}
