package feature

import "strings"

type lineKind int

const (
	lineBlank lineKind = iota
	lineComment
	lineFeature
	lineBackground
	lineScenario
	lineOutline
	lineExamples
	lineTags
	lineStep
	lineTableRow
	lineDocString
	lineBullet
	lineUnknown
)

// token is one classified source line.
type token struct {
	kind    lineKind
	number  int    // 1-based source line number
	text    string // payload, meaning depends on kind
	raw     string // full trimmed line, used for doc-string content
	keyword string // step keyword, set for lineStep only
	indent  int    // leading whitespace width, used to place Examples blocks
}

var stepKeywords = []string{"Given", "When", "Then", "And", "But"}

// tokenize splits the input into classified lines. CRLF and LF inputs are
// treated identically.
func tokenize(text string) []token {
	lines := strings.Split(text, "\n")
	tokens := make([]token, 0, len(lines))
	for i, raw := range lines {
		raw = strings.TrimSuffix(raw, "\r")
		tok := classify(raw)
		tok.number = i + 1
		tok.raw = strings.TrimSpace(raw)
		tokens = append(tokens, tok)
	}
	return tokens
}

func classify(raw string) token {
	trimmed := strings.TrimSpace(raw)
	indent := len(raw) - len(strings.TrimLeft(raw, " \t"))

	switch {
	case trimmed == "":
		return token{kind: lineBlank}
	case strings.HasPrefix(trimmed, "#"):
		return token{kind: lineComment}
	case strings.HasPrefix(trimmed, "Feature:"):
		return token{kind: lineFeature, text: strings.TrimSpace(trimmed[len("Feature:"):]), indent: indent}
	case strings.HasPrefix(trimmed, "Background:"):
		return token{kind: lineBackground, indent: indent}
	case strings.HasPrefix(trimmed, "Scenario Outline:"):
		return token{kind: lineOutline, text: strings.TrimSpace(trimmed[len("Scenario Outline:"):]), indent: indent}
	case strings.HasPrefix(trimmed, "Scenario:"):
		return token{kind: lineScenario, text: strings.TrimSpace(trimmed[len("Scenario:"):]), indent: indent}
	case strings.HasPrefix(trimmed, "Examples:"):
		return token{kind: lineExamples, indent: indent}
	case strings.HasPrefix(trimmed, "@"):
		return token{kind: lineTags, text: trimmed, indent: indent}
	case strings.HasPrefix(trimmed, "|"):
		return token{kind: lineTableRow, text: trimmed, indent: indent}
	case strings.HasPrefix(trimmed, `"""`):
		return token{kind: lineDocString, indent: indent}
	case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
		return token{kind: lineBullet, text: strings.TrimSpace(trimmed[2:]), indent: indent}
	}

	for _, kw := range stepKeywords {
		if trimmed == kw {
			return token{kind: lineStep, keyword: kw, indent: indent}
		}
		if strings.HasPrefix(trimmed, kw+" ") {
			return token{kind: lineStep, text: strings.TrimSpace(trimmed[len(kw):]), keyword: kw, indent: indent}
		}
	}

	return token{kind: lineUnknown, text: trimmed, indent: indent}
}

// parseTableRow splits "| a | b |" into its trimmed cells.
func parseTableRow(payload string) []string {
	payload = strings.TrimPrefix(payload, "|")
	payload = strings.TrimSuffix(payload, "|")
	parts := strings.Split(payload, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}
