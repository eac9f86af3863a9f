package agent

import (
	"context"
	"fmt"
	"sort"

	"github.com/pengyumu/gomoku-ai-agent-v1/cmd/gomoku/game"
)

// The fallback policies that can be configured.
const (
	FallbackFirstLegal    = "first-legal"
	FallbackCenterNearest = "center-nearest"
)

// fallbackMove chooses the default move for the policy. With no legal moves
// left the geometric center comes back as is, without an occupancy check.
func fallbackMove(size int, legal []game.Move, policy string) game.Move {
	if len(legal) == 0 {
		center := size / 2
		return game.Move{Row: center, Col: center}
	}

	switch policy {
	case FallbackCenterNearest:
		return centerSorted(size, legal)[0]
	default:
		return legal[0]
	}
}

// centerSorted returns a copy of the moves ordered center first: Manhattan
// distance to the center, ties broken by squared straight line distance,
// then by row, then by column.
func centerSorted(size int, moves []game.Move) []game.Move {
	center := size / 2

	sorted := make([]game.Move, len(moves))
	copy(sorted, moves)

	manhattan := func(m game.Move) int {
		return abs(m.Row-center) + abs(m.Col-center)
	}

	squared := func(m game.Move) int {
		dr := m.Row - center
		dc := m.Col - center
		return dr*dr + dc*dc
	}

	sort.SliceStable(sorted, func(i int, j int) bool {
		a, b := sorted[i], sorted[j]

		if manhattan(a) != manhattan(b) {
			return manhattan(a) < manhattan(b)
		}

		if squared(a) != squared(b) {
			return squared(a) < squared(b)
		}

		if a.Row != b.Row {
			return a.Row < b.Row
		}

		return a.Col < b.Col
	})

	return sorted
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

// =============================================================================

// Fallback is a deterministic agent that always plays the policy's default
// move. It is the same selector the LLM agent falls back on, packaged as a
// player for headless games.
type Fallback struct {
	policy string
}

// NewFallback constructs a fallback player for the specified policy.
func NewFallback(policy string) (*Fallback, error) {
	switch policy {
	case FallbackFirstLegal, FallbackCenterNearest:
	default:
		return nil, fmt.Errorf("unknown fallback policy %q", policy)
	}

	return &Fallback{policy: policy}, nil
}

// SelectMove implements the game agent contract.
func (f *Fallback) SelectMove(_ context.Context, state *game.State) (game.Move, error) {
	return fallbackMove(state.BoardSize(), state.LegalMoves(), f.policy), nil
}
