package agent

import (
	"github.com/pengyumu/gomoku-ai-agent-v1/cmd/gomoku/game"
)

const winLength = 5

// directions are the four axes a line of stones can run along, expressed as
// row/col deltas.
var directions = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// position is the agent's private copy of the board. Tactical probes place
// and revert stones here, never on the arena's state.
type position struct {
	size  int
	cells []game.Player
}

func newPosition(state *game.State) *position {
	size := state.BoardSize()

	p := position{
		size:  size,
		cells: make([]game.Player, size*size),
	}

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			p.cells[row*size+col] = state.At(row, col)
		}
	}

	return &p
}

func (p *position) inBounds(row int, col int) bool {
	return row >= 0 && row < p.size && col >= 0 && col < p.size
}

// at returns the player on the cell, with the zero player for empty or out
// of bounds coordinates.
func (p *position) at(row int, col int) game.Player {
	if !p.inBounds(row, col) {
		return game.Player{}
	}

	return p.cells[row*p.size+col]
}

func (p *position) isEmpty(row int, col int) bool {
	return p.inBounds(row, col) && p.cells[row*p.size+col].IsZero()
}

func (p *position) clone() *position {
	clone := position{
		size:  p.size,
		cells: make([]game.Player, len(p.cells)),
	}
	copy(clone.cells, p.cells)

	return &clone
}

func (p *position) equal(other *position) bool {
	if p.size != other.size {
		return false
	}

	for i := range p.cells {
		if p.cells[i] != other.cells[i] {
			return false
		}
	}

	return true
}

// withStone places a stone, runs the check, and restores the original cell
// contents on every exit path, including a panic inside the check.
func (p *position) withStone(m game.Move, player game.Player, check func() bool) bool {
	idx := m.Row*p.size + m.Col

	save := p.cells[idx]

	p.cells[idx] = player
	defer func() {
		p.cells[idx] = save
	}()

	return check()
}

// runInfo describes the contiguous run of one player's stones through a
// cell along a single axis.
type runInfo struct {
	length   int
	openEnds int
}

// runThrough counts the player's stones through the cell in both directions
// along the axis and reports how many of the two extending ends are empty
// cells on the board.
func (p *position) runThrough(m game.Move, player game.Player, dir [2]int) runInfo {
	length := 1

	row, col := m.Row+dir[0], m.Col+dir[1]
	for p.at(row, col) == player {
		length++
		row += dir[0]
		col += dir[1]
	}
	open := 0
	if p.isEmpty(row, col) {
		open++
	}

	row, col = m.Row-dir[0], m.Col-dir[1]
	for p.at(row, col) == player {
		length++
		row -= dir[0]
		col -= dir[1]
	}
	if p.isEmpty(row, col) {
		open++
	}

	return runInfo{length: length, openEnds: open}
}

// =============================================================================

// longestChain returns the length of the player's longest run of stones.
// Runs are measured from their head, the stone with no same-colored stone
// behind it, so they are never double counted.
func longestChain(p *position, player game.Player) int {
	best := 0

	for row := 0; row < p.size; row++ {
		for col := 0; col < p.size; col++ {
			if p.at(row, col) != player {
				continue
			}

			for _, dir := range directions {
				if p.at(row-dir[0], col-dir[1]) == player {
					continue
				}

				length := 0
				r, c := row, col
				for p.at(r, c) == player {
					length++
					r += dir[0]
					c += dir[1]
				}

				if length > best {
					best = length
				}
			}
		}
	}

	return best
}

// hasOpenThree reports whether the player has three in a row with both ends
// empty anywhere on the board. A five cell window slides along every axis
// looking for the empty, stone, stone, stone, empty shape.
func hasOpenThree(p *position, player game.Player) bool {
	for row := 0; row < p.size; row++ {
		for col := 0; col < p.size; col++ {
			for _, dir := range directions {
				endRow, endCol := row+4*dir[0], col+4*dir[1]
				if !p.inBounds(endRow, endCol) {
					continue
				}

				if !p.isEmpty(row, col) || !p.isEmpty(endRow, endCol) {
					continue
				}

				match := true
				for i := 1; i < 4; i++ {
					if p.at(row+i*dir[0], col+i*dir[1]) != player {
						match = false
						break
					}
				}

				if match {
					return true
				}
			}
		}
	}

	return false
}

// openFourIfPlayed reports whether placing the player on the empty cell
// creates a four with at least one open end, a threat that forces the
// opponent's reply.
func openFourIfPlayed(p *position, m game.Move, player game.Player) bool {
	if !p.isEmpty(m.Row, m.Col) {
		return false
	}

	return p.withStone(m, player, func() bool {
		for _, dir := range directions {
			run := p.runThrough(m, player, dir)
			if run.length == 4 && run.openEnds >= 1 {
				return true
			}
		}

		return false
	})
}

// doubleOpenThreeIfPlayed reports whether placing the player on the empty
// cell creates open threes in two or more directions at once.
func doubleOpenThreeIfPlayed(p *position, m game.Move, player game.Player) bool {
	if !p.isEmpty(m.Row, m.Col) {
		return false
	}

	return p.withStone(m, player, func() bool {
		threes := 0
		for _, dir := range directions {
			run := p.runThrough(m, player, dir)
			if run.length == 3 && run.openEnds == 2 {
				threes++
			}
		}

		return threes >= 2
	})
}

// findImmediateWin returns the first candidate that completes five in a row
// for the player. Candidates are tried in the order given. Every probe is
// reverted, so the position is identical before and after the call.
func findImmediateWin(p *position, candidates []game.Move, player game.Player) (game.Move, bool) {
	for _, m := range candidates {
		if !p.isEmpty(m.Row, m.Col) {
			continue
		}

		won := p.withStone(m, player, func() bool {
			for _, dir := range directions {
				if p.runThrough(m, player, dir).length >= winLength {
					return true
				}
			}

			return false
		})

		if won {
			return m, true
		}
	}

	return game.Move{}, false
}

// =============================================================================

// tacticalHit is a forced move found by the local scan.
type tacticalHit struct {
	move   game.Move
	reason string
}

const (
	reasonWin   = "win now"
	reasonBlock = "block loss"
	reasonFour  = "forcing four"
	reasonFork  = "double open three"
)

// scanTactics checks the position for forced moves in priority order: win
// now, block the opponent's win, make a forcing four, make a double open
// three. The first hit is always the most urgent one.
func scanTactics(p *position, candidates []game.Move, player game.Player, rival game.Player) []tacticalHit {
	var hits []tacticalHit

	if m, found := findImmediateWin(p, candidates, player); found {
		hits = append(hits, tacticalHit{move: m, reason: reasonWin})
	}

	if m, found := findImmediateWin(p, candidates, rival); found {
		hits = append(hits, tacticalHit{move: m, reason: reasonBlock})
	}

	for _, m := range candidates {
		if openFourIfPlayed(p, m, player) {
			hits = append(hits, tacticalHit{move: m, reason: reasonFour})
			break
		}
	}

	for _, m := range candidates {
		if doubleOpenThreeIfPlayed(p, m, player) {
			hits = append(hits, tacticalHit{move: m, reason: reasonFork})
			break
		}
	}

	return hits
}
