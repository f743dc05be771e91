package feature

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("should parse feature header with tags and description lines", func(t *testing.T) {
		doc, err := Parse(`@billing @smoke
Feature: Checkout

  Scenario: Pay with saved card
    Given a saved card
    When the user pays
    Then the order is confirmed
`)
		require.NoError(t, err)
		require.Equal(t, "Checkout", doc.Name)
		require.Equal(t, []string{"billing", "smoke"}, doc.Tags)
		require.Len(t, doc.Blocks, 1)
		require.Equal(t, "Pay with saved card", doc.Blocks[0].Name)
		require.Len(t, doc.Blocks[0].Steps, 3)
	})

	t.Run("should resolve And and But to the nearest primary keyword", func(t *testing.T) {
		doc, err := Parse(`Feature: Inventory

  Scenario: Restock
    Given the shelf is empty
    And the warehouse has stock
    When a restock runs
    Then the shelf is full
    But the warehouse is not empty
`)
		require.NoError(t, err)

		steps := doc.Blocks[0].Steps
		kinds := make([]StepKind, 0, len(steps))
		for _, s := range steps {
			kinds = append(kinds, s.Kind)
		}
		require.Equal(t, []StepKind{Given, Given, When, Then, Then}, kinds)
	})

	t.Run("should record 1-based line numbers on steps", func(t *testing.T) {
		doc, err := Parse("Feature: X\n\nScenario: s\nGiven a\nWhen b\n")
		require.NoError(t, err)
		require.Equal(t, 4, doc.Blocks[0].Steps[0].Line.Number)
		require.Equal(t, 5, doc.Blocks[0].Steps[1].Line.Number)
	})

	t.Run("should treat CRLF input like LF input", func(t *testing.T) {
		doc, err := Parse("Feature: X\r\nScenario: s\r\nGiven a\r\n")
		require.NoError(t, err)
		require.Equal(t, "a", doc.Blocks[0].Steps[0].Text)
	})

	t.Run("should skip comments and blank lines", func(t *testing.T) {
		doc, err := Parse(`Feature: X

# this is ignored
Scenario: s
  # so is this
  Given a
`)
		require.NoError(t, err)
		require.Len(t, doc.Blocks[0].Steps, 1)
	})

	t.Run("should collect background steps separately", func(t *testing.T) {
		doc, err := Parse(`Feature: X

Background:
  Given a logged in user
  And an empty cart

Scenario: s
  When the user browses
`)
		require.NoError(t, err)
		require.Len(t, doc.Background, 2)
		require.Equal(t, Given, doc.Background[1].Kind)
		require.Len(t, doc.Blocks[0].Steps, 1)
	})

	t.Run("should attach a table to the preceding step", func(t *testing.T) {
		doc, err := Parse(`Feature: X
Scenario: s
  Given the following users
    | name  | role  |
    | alice | admin |
    | bob   | guest |
`)
		require.NoError(t, err)

		table := doc.Blocks[0].Steps[0].Line.Table
		require.NotNil(t, table)
		require.Equal(t, []string{"name", "role"}, table.Header)
		require.Equal(t, [][]string{{"alice", "admin"}, {"bob", "guest"}}, table.Rows)
	})

	t.Run("should attach bullets to the preceding step", func(t *testing.T) {
		doc, err := Parse(`Feature: X
Scenario: s
  Given a shopping list
    - milk
    * eggs
`)
		require.NoError(t, err)
		require.Equal(t, []string{"milk", "eggs"}, doc.Blocks[0].Steps[0].Line.Bullets)
	})

	t.Run("should capture doc string content verbatim as bullets", func(t *testing.T) {
		doc, err := Parse(`Feature: X
Scenario: s
  Given a request body
    """
    {"id": 1}
    """
`)
		require.NoError(t, err)
		require.Equal(t, []string{`{"id": 1}`}, doc.Blocks[0].Steps[0].Line.Bullets)
	})

	t.Run("should attach Examples tables to a Scenario Outline", func(t *testing.T) {
		doc, err := Parse(`Feature: X
Scenario Outline: add
  Given <a> and <b>
  Examples:
    | a | b |
    | 1 | 2 |
`)
		require.NoError(t, err)
		require.True(t, doc.Blocks[0].Outline)
		require.Len(t, doc.Blocks[0].Examples, 1)
		require.Equal(t, []string{"a", "b"}, doc.Blocks[0].Examples[0].Header)
	})

	t.Run("should treat a column-zero Examples block as feature-level shared", func(t *testing.T) {
		doc, err := Parse(`Feature: X

Examples:
| env   |
| dev   |
| prod  |

Scenario Outline: deploy
  Given a deploy to <env>
  Examples:
    | version |
    | v1      |
`)
		require.NoError(t, err)
		require.Len(t, doc.SharedExamples, 1)
		require.Equal(t, []string{"env"}, doc.SharedExamples[0].Header)
		require.Len(t, doc.Blocks[0].Examples, 1)
	})

	t.Run("should assign pending tags to the next scenario only", func(t *testing.T) {
		doc, err := Parse(`Feature: X

@slow
Scenario: first
  Given a

Scenario: second
  Given a
`)
		require.NoError(t, err)
		require.Equal(t, []string{"slow"}, doc.Blocks[0].Tags)
		require.Empty(t, doc.Blocks[1].Tags)
	})

	t.Run("errors", func(t *testing.T) {
		cases := []struct {
			name string
			text string
			line int
		}{
			{"missing feature header", "Scenario: s\nGiven a\n", 1},
			{"duplicate feature header", "Feature: X\nFeature: Y\n", 2},
			{"step outside scenario", "Feature: X\nGiven a\n", 2},
			{"and without primary keyword", "Feature: X\nScenario: s\nAnd a\n", 3},
			{"table row width mismatch", "Feature: X\nScenario: s\nGiven t\n| a | b |\n| 1 |\n", 5},
			{"table row outside step", "Feature: X\n| a |\n", 2},
			{"examples on a plain scenario", "Feature: X\nScenario: s\nGiven a\n  Examples:\n", 4},
			{"step after examples", "Feature: X\nScenario Outline: s\nGiven <a>\n  Examples:\n  | a |\n  | 1 |\n  When b\n", 7},
			{"bullet outside step", "Feature: X\nScenario: s\n- milk\n", 3},
			{"doc string outside step", "Feature: X\nScenario: s\n\"\"\"\n", 3},
			{"unterminated doc string", "Feature: X\nScenario: s\nGiven a\n\"\"\"\nbody\n", 6},
			{"malformed tag", "Feature: X\n@ok not-a-tag\nScenario: s\nGiven a\n", 2},
			{"unknown line", "Feature: X\nScenario: s\nwhatever\n", 3},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := Parse(tc.text)
				require.Error(t, err)

				var pe *ParseError
				require.ErrorAs(t, err, &pe)
				require.Equal(t, tc.line, pe.Line)
			})
		}
	})
}

func TestParseTableRow(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, parseTableRow("| a | b |"))
	require.Equal(t, []string{""}, parseTableRow("||"))
	require.Equal(t, []string{"a b", "c"}, parseTableRow("|  a b |c|"))
}
