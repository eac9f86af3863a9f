package agent

import (
	"testing"

	"github.com/pengyumu/gomoku-ai-agent-v1/cmd/gomoku/game"
)

// testPosition builds a position directly so layouts don't need a legal
// move order.
func testPosition(size int, black []game.Move, white []game.Move) *position {
	p := position{
		size:  size,
		cells: make([]game.Player, size*size),
	}

	for _, m := range black {
		p.cells[m.Row*size+m.Col] = game.Players.Black
	}

	for _, m := range white {
		p.cells[m.Row*size+m.Col] = game.Players.White
	}

	return &p
}

// openMoves returns the empty cells of a position in row-major order.
func openMoves(p *position) []game.Move {
	var moves []game.Move
	for row := 0; row < p.size; row++ {
		for col := 0; col < p.size; col++ {
			if p.isEmpty(row, col) {
				moves = append(moves, game.Move{Row: row, Col: col})
			}
		}
	}

	return moves
}

func TestLongestChain(t *testing.T) {
	p := testPosition(8, nil, nil)

	if got := longestChain(p, game.Players.Black); got != 0 {
		t.Fatalf("expected chain 0 on an empty board, got %d", got)
	}

	p = testPosition(8, []game.Move{{Row: 3, Col: 3}}, nil)

	if got := longestChain(p, game.Players.Black); got != 1 {
		t.Fatalf("expected chain 1 for a single stone, got %d", got)
	}

	if got := longestChain(p, game.Players.White); got != 0 {
		t.Fatalf("expected chain 0 for the player with no stones, got %d", got)
	}

	p = testPosition(8,
		[]game.Move{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 3}},
		[]game.Move{{Row: 2, Col: 2}, {Row: 3, Col: 3}, {Row: 4, Col: 4}, {Row: 5, Col: 5}},
	)

	if got := longestChain(p, game.Players.Black); got != 2 {
		t.Fatalf("expected a gap to split the chain, got %d", got)
	}

	if got := longestChain(p, game.Players.White); got != 4 {
		t.Fatalf("expected the diagonal chain of 4, got %d", got)
	}
}

func TestHasOpenThree(t *testing.T) {
	p := testPosition(8,
		[]game.Move{{Row: 4, Col: 2}, {Row: 4, Col: 3}, {Row: 4, Col: 4}},
		nil,
	)

	if !hasOpenThree(p, game.Players.Black) {
		t.Fatal("expected an open three with both ends empty")
	}

	if hasOpenThree(p, game.Players.White) {
		t.Fatal("expected no open three for the player with no stones")
	}

	p = testPosition(8,
		[]game.Move{{Row: 4, Col: 2}, {Row: 4, Col: 3}, {Row: 4, Col: 4}},
		[]game.Move{{Row: 4, Col: 1}},
	)

	if hasOpenThree(p, game.Players.Black) {
		t.Fatal("expected a blocked end to break the open three")
	}

	p = testPosition(8,
		[]game.Move{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
		nil,
	)

	if hasOpenThree(p, game.Players.Black) {
		t.Fatal("expected a board edge to break the open three")
	}
}

func TestOpenFourIfPlayed(t *testing.T) {
	p := testPosition(8,
		[]game.Move{{Row: 4, Col: 1}, {Row: 4, Col: 2}, {Row: 4, Col: 3}},
		nil,
	)

	if !openFourIfPlayed(p, game.Move{Row: 4, Col: 4}, game.Players.Black) {
		t.Fatal("expected the move to create a forcing four")
	}

	p = testPosition(8,
		[]game.Move{{Row: 4, Col: 1}, {Row: 4, Col: 2}, {Row: 4, Col: 3}},
		[]game.Move{{Row: 4, Col: 0}, {Row: 4, Col: 5}},
	)

	if openFourIfPlayed(p, game.Move{Row: 4, Col: 4}, game.Players.Black) {
		t.Fatal("expected a four with both ends blocked to not be forcing")
	}

	p = testPosition(8,
		[]game.Move{{Row: 4, Col: 1}, {Row: 4, Col: 2}, {Row: 4, Col: 3}, {Row: 4, Col: 5}},
		nil,
	)

	if openFourIfPlayed(p, game.Move{Row: 4, Col: 4}, game.Players.Black) {
		t.Fatal("expected a run of five to not count as a four")
	}

	p = testPosition(8, []game.Move{{Row: 4, Col: 4}}, nil)

	if openFourIfPlayed(p, game.Move{Row: 4, Col: 4}, game.Players.Black) {
		t.Fatal("expected an occupied cell to never be a four")
	}
}

func TestDoubleOpenThreeIfPlayed(t *testing.T) {
	p := testPosition(8,
		[]game.Move{{Row: 4, Col: 5}, {Row: 4, Col: 6}, {Row: 5, Col: 4}, {Row: 6, Col: 4}},
		nil,
	)

	if !doubleOpenThreeIfPlayed(p, game.Move{Row: 4, Col: 4}, game.Players.Black) {
		t.Fatal("expected the move to fork into two open threes")
	}

	p = testPosition(8,
		[]game.Move{{Row: 4, Col: 5}, {Row: 4, Col: 6}},
		nil,
	)

	if doubleOpenThreeIfPlayed(p, game.Move{Row: 4, Col: 4}, game.Players.Black) {
		t.Fatal("expected a single open three to not be a fork")
	}

	p = testPosition(8,
		[]game.Move{{Row: 4, Col: 5}, {Row: 4, Col: 6}, {Row: 5, Col: 4}, {Row: 6, Col: 4}},
		[]game.Move{{Row: 4, Col: 7}},
	)

	if doubleOpenThreeIfPlayed(p, game.Move{Row: 4, Col: 4}, game.Players.Black) {
		t.Fatal("expected a blocked row to leave only one open three")
	}
}

func TestFindImmediateWin(t *testing.T) {
	p := testPosition(8,
		[]game.Move{{Row: 2, Col: 2}, {Row: 2, Col: 3}, {Row: 2, Col: 4}, {Row: 2, Col: 5}},
		nil,
	)

	before := p.clone()

	candidates := []game.Move{{Row: 0, Col: 0}, {Row: 2, Col: 6}, {Row: 2, Col: 1}}

	m, found := findImmediateWin(p, candidates, game.Players.Black)
	if !found {
		t.Fatal("expected a winning square for the open four")
	}

	if m != (game.Move{Row: 2, Col: 6}) {
		t.Fatalf("expected the first winning candidate (2,6), got %s", m)
	}

	if !p.equal(before) {
		t.Fatal("expected the position to be identical after the probes")
	}

	if _, found := findImmediateWin(p, candidates, game.Players.White); found {
		t.Fatal("expected no winning square for the player with no stones")
	}
}

func TestWithStoneRevertsOnPanic(t *testing.T) {
	p := testPosition(8, []game.Move{{Row: 1, Col: 1}}, nil)
	before := p.clone()

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected the check to panic")
			}
		}()

		p.withStone(game.Move{Row: 3, Col: 3}, game.Players.Black, func() bool {
			panic("probe failed")
		})
	}()

	if !p.equal(before) {
		t.Fatal("expected the stone to be reverted after a panic")
	}
}

func TestScanTacticsPriority(t *testing.T) {
	p := testPosition(8,
		[]game.Move{{Row: 2, Col: 2}, {Row: 2, Col: 3}, {Row: 2, Col: 4}, {Row: 2, Col: 5}},
		[]game.Move{{Row: 5, Col: 2}, {Row: 5, Col: 3}, {Row: 5, Col: 4}, {Row: 5, Col: 5}},
	)

	candidates := centerSorted(8, openMoves(p))

	hits := scanTactics(p, candidates, game.Players.Black, game.Players.White)
	if len(hits) < 2 {
		t.Fatalf("expected a win and a block hit, got %d hits", len(hits))
	}

	if hits[0].reason != reasonWin {
		t.Fatalf("expected the win first, got %q", hits[0].reason)
	}

	// (2,6) is nearer the center than (2,1), so the center-first scan
	// finds it first.
	if hits[0].move != (game.Move{Row: 2, Col: 6}) {
		t.Fatalf("expected the win at (2,6), got %s", hits[0].move)
	}

	if hits[1].reason != reasonBlock {
		t.Fatalf("expected the block second, got %q", hits[1].reason)
	}

	if hits[1].move != (game.Move{Row: 5, Col: 6}) {
		t.Fatalf("expected the block at (5,6), got %s", hits[1].move)
	}
}
