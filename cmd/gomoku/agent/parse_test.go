package agent

import (
	"testing"

	"github.com/pengyumu/gomoku-ai-agent-v1/cmd/gomoku/game"
)

func TestParseDirectJSON(t *testing.T) {
	m, ok := parseMove(`{"row": 3, "col": 4}`)
	if !ok {
		t.Fatal("expected a clean JSON object to parse")
	}

	if m != (game.Move{Row: 3, Col: 4}) {
		t.Fatalf("expected (3,4), got %s", m)
	}

	m, ok = parseMove(`{"row": 2, "col": 5, "reason": "center control"}`)
	if !ok {
		t.Fatal("expected extra keys to be ignored")
	}

	if m != (game.Move{Row: 2, Col: 5}) {
		t.Fatalf("expected (2,5), got %s", m)
	}
}

func TestParseWrappedInProse(t *testing.T) {
	content := `Looking at the board, the strongest continuation is {"row": 2, "col": 5} because it extends my line.`

	m, ok := parseMove(content)
	if !ok {
		t.Fatal("expected the object to be extracted from the prose")
	}

	if m != (game.Move{Row: 2, Col: 5}) {
		t.Fatalf("expected (2,5), got %s", m)
	}
}

func TestParseFirstObjectWins(t *testing.T) {
	content := `Either {"row": 1, "col": 1} or {"row": 6, "col": 6} works here.`

	m, ok := parseMove(content)
	if !ok {
		t.Fatal("expected a move from a reply with two objects")
	}

	if m != (game.Move{Row: 1, Col: 1}) {
		t.Fatalf("expected the first object (1,1), got %s", m)
	}
}

func TestParseDecimalCoordinates(t *testing.T) {
	m, ok := parseMove(`{"row": 3.0, "col": 4.7}`)
	if !ok {
		t.Fatal("expected decimal coordinates to parse")
	}

	if m != (game.Move{Row: 3, Col: 4}) {
		t.Fatalf("expected truncation toward zero to give (3,4), got %s", m)
	}
}

func TestParseTrailingComma(t *testing.T) {
	m, ok := parseMove(`{"row": 2, "col": 5,}`)
	if !ok {
		t.Fatal("expected the trailing comma to be repaired")
	}

	if m != (game.Move{Row: 2, Col: 5}) {
		t.Fatalf("expected (2,5), got %s", m)
	}
}

func TestParseCodeFence(t *testing.T) {
	content := "```json\n{\"row\": 2, \"col\": 5}\n```"

	m, ok := parseMove(content)
	if !ok {
		t.Fatal("expected a fenced reply to parse")
	}

	if m != (game.Move{Row: 2, Col: 5}) {
		t.Fatalf("expected (2,5), got %s", m)
	}
}

func TestParseFullWidthDigits(t *testing.T) {
	m, ok := parseMove(`{"row"： ３, "col"： ４}`)
	if !ok {
		t.Fatal("expected full width punctuation and digits to be folded")
	}

	if m != (game.Move{Row: 3, Col: 4}) {
		t.Fatalf("expected (3,4), got %s", m)
	}
}

func TestParseNegativeCoordinates(t *testing.T) {

	// Off-board coordinates still parse. Legality is the caller's check,
	// not the parser's.
	m, ok := parseMove(`{"row": -1, "col": 0}`)
	if !ok {
		t.Fatal("expected negative coordinates to parse")
	}

	if m != (game.Move{Row: -1, Col: 0}) {
		t.Fatalf("expected (-1,0), got %s", m)
	}
}

func TestParseRejectsUnusable(t *testing.T) {
	unusable := []string{
		``,
		`I think row 3 col 3 is best.`,
		`[3, 4]`,
		`{"row": 3}`,
		`{"col": 4}`,
		`{"row": "three", "col": "four"}`,
		`move: 3,4`,
	}

	for _, content := range unusable {
		if m, ok := parseMove(content); ok {
			t.Fatalf("expected %q to be rejected, got %s", content, m)
		}
	}
}
