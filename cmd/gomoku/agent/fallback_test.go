package agent

import (
	"context"
	"testing"

	"github.com/pengyumu/gomoku-ai-agent-v1/cmd/gomoku/game"
)

func TestFallbackFirstLegal(t *testing.T) {
	legal := []game.Move{{Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 4, Col: 4}}

	m := fallbackMove(8, legal, FallbackFirstLegal)
	if m != (game.Move{Row: 0, Col: 2}) {
		t.Fatalf("expected the first legal move (0,2), got %s", m)
	}
}

func TestFallbackCenterNearest(t *testing.T) {
	legal := []game.Move{{Row: 0, Col: 0}, {Row: 7, Col: 7}, {Row: 4, Col: 4}, {Row: 3, Col: 4}}

	m := fallbackMove(8, legal, FallbackCenterNearest)
	if m != (game.Move{Row: 4, Col: 4}) {
		t.Fatalf("expected the center (4,4), got %s", m)
	}

	legal = []game.Move{{Row: 5, Col: 4}, {Row: 4, Col: 5}, {Row: 3, Col: 4}, {Row: 4, Col: 3}}

	m = fallbackMove(8, legal, FallbackCenterNearest)
	if m != (game.Move{Row: 3, Col: 4}) {
		t.Fatalf("expected the lowest row to win the tie, got %s", m)
	}
}

func TestCenterSortedOrdering(t *testing.T) {
	moves := []game.Move{
		{Row: 2, Col: 4},
		{Row: 3, Col: 3},
		{Row: 4, Col: 4},
		{Row: 3, Col: 4},
	}

	sorted := centerSorted(8, moves)

	// (2,4) and (3,3) are both two steps from the center, but (3,3) is
	// closer in straight line distance, so it sorts first.
	want := []game.Move{
		{Row: 4, Col: 4},
		{Row: 3, Col: 4},
		{Row: 3, Col: 3},
		{Row: 2, Col: 4},
	}

	for i := range want {
		if sorted[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], sorted[i])
		}
	}

	if moves[0] != (game.Move{Row: 2, Col: 4}) {
		t.Fatal("expected the input slice to be left untouched")
	}
}

func TestFallbackNoLegalMoves(t *testing.T) {

	// With nothing to choose from, both policies answer the center cell,
	// occupied or not. Callers only land here with no playable move left,
	// where every answer is equally unplayable.
	m := fallbackMove(8, nil, FallbackCenterNearest)
	if m != (game.Move{Row: 4, Col: 4}) {
		t.Fatalf("expected the center (4,4), got %s", m)
	}

	m = fallbackMove(5, nil, FallbackFirstLegal)
	if m != (game.Move{Row: 2, Col: 2}) {
		t.Fatalf("expected the center (2,2), got %s", m)
	}
}

func TestNewFallbackValidation(t *testing.T) {
	if _, err := NewFallback(FallbackCenterNearest); err != nil {
		t.Fatalf("expected center-nearest to construct: %s", err)
	}

	if _, err := NewFallback(FallbackFirstLegal); err != nil {
		t.Fatalf("expected first-legal to construct: %s", err)
	}

	if _, err := NewFallback("random"); err == nil {
		t.Fatal("expected an unknown policy to be rejected")
	}
}

func TestFallbackBotSelectMove(t *testing.T) {
	board, err := game.NewBoard(5)
	if err != nil {
		t.Fatalf("unable to create board: %s", err)
	}

	if err := board.ApplyMove(game.Move{Row: 0, Col: 0}); err != nil {
		t.Fatalf("unable to apply move: %s", err)
	}

	if err := board.ApplyMove(game.Move{Row: 1, Col: 1}); err != nil {
		t.Fatalf("unable to apply move: %s", err)
	}

	first, err := NewFallback(FallbackFirstLegal)
	if err != nil {
		t.Fatalf("unable to create bot: %s", err)
	}

	m, err := first.SelectMove(context.Background(), board.ToState())
	if err != nil {
		t.Fatalf("unable to select move: %s", err)
	}

	if m != (game.Move{Row: 0, Col: 1}) {
		t.Fatalf("expected the first open cell (0,1), got %s", m)
	}

	center, err := NewFallback(FallbackCenterNearest)
	if err != nil {
		t.Fatalf("unable to create bot: %s", err)
	}

	m, err = center.SelectMove(context.Background(), board.ToState())
	if err != nil {
		t.Fatalf("unable to select move: %s", err)
	}

	if m != (game.Move{Row: 2, Col: 2}) {
		t.Fatalf("expected the center (2,2), got %s", m)
	}
}
