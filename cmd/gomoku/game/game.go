// Package game provides the gomoku engine: the board, the rules, and the
// contract agents implement to play.
package game

import (
	"fmt"
)

const (
	winLength = 5
	minSize   = 5
	maxSize   = 19

	// DefaultSize is the board size used when nothing else is configured.
	DefaultSize = 8
)

// directions are the four axes a line of stones can run along, expressed as
// row/col deltas. Walking one delta and its negation covers both ends.
var directions = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// Move represents a board coordinate, 0-indexed from the top-left corner.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String returns the coordinate in (row,col) form.
func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

// LastMove represents the most recent move in the game.
type LastMove struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Player Player `json:"player"`
}

// Board represents the game board and all its state.
type Board struct {
	size     int
	cells    []Player
	turn     Player
	lastMove LastMove
	history  []Move
	gameOver bool
	winner   Player
}

// NewBoard constructs a game board of the specified size. Black (X) always
// moves first.
func NewBoard(size int) (*Board, error) {
	if size < minSize || size > maxSize {
		return nil, fmt.Errorf("board size %d: must be between %d and %d", size, minSize, maxSize)
	}

	board := Board{
		size:  size,
		cells: make([]Player, size*size),
		turn:  Players.Black,
	}

	return &board, nil
}

// Size returns the width and height of the board.
func (b *Board) Size() int {
	return b.size
}

// InBounds reports whether the coordinate is on the board.
func (b *Board) InBounds(row int, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

// At returns the player occupying the cell. The zero player means the cell
// is empty. Out of bounds coordinates report empty.
func (b *Board) At(row int, col int) Player {
	if !b.InBounds(row, col) {
		return Player{}
	}

	return b.cells[row*b.size+col]
}

// IsEmpty reports whether the cell is on the board and unoccupied.
func (b *Board) IsEmpty(row int, col int) bool {
	return b.InBounds(row, col) && b.cells[row*b.size+col].IsZero()
}

// CurrentTurn returns the player who moves next.
func (b *Board) CurrentTurn() Player {
	return b.turn
}

// GameOver reports whether the game has ended.
func (b *Board) GameOver() bool {
	return b.gameOver
}

// Winner returns the winning player. The zero player means no winner, which
// with GameOver true means a draw.
func (b *Board) Winner() Player {
	return b.winner
}

// LastPlayed returns the most recent move. The zero player means no move has
// been played yet.
func (b *Board) LastPlayed() LastMove {
	return b.lastMove
}

// MoveCount returns the number of stones on the board.
func (b *Board) MoveCount() int {
	return len(b.history)
}

// History returns a copy of the moves in the order they were played.
func (b *Board) History() []Move {
	history := make([]Move, len(b.history))
	copy(history, b.history)

	return history
}

// LegalMoves returns every empty cell in row-major order. A finished game
// has no legal moves.
func (b *Board) LegalMoves() []Move {
	if b.gameOver {
		return nil
	}

	moves := make([]Move, 0, b.size*b.size-len(b.history))
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			if b.cells[row*b.size+col].IsZero() {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}

	return moves
}

// ApplyMove plays the next move for the player whose turn it is and updates
// the winner and game over state.
func (b *Board) ApplyMove(m Move) error {
	if b.gameOver {
		return fmt.Errorf("apply move %s: game is over", m)
	}

	if !b.InBounds(m.Row, m.Col) {
		return fmt.Errorf("apply move %s: out of bounds on a %dx%d board", m, b.size, b.size)
	}

	if !b.cells[m.Row*b.size+m.Col].IsZero() {
		return fmt.Errorf("apply move %s: cell is occupied", m)
	}

	player := b.turn

	b.cells[m.Row*b.size+m.Col] = player
	b.history = append(b.history, m)
	b.lastMove = LastMove{Row: m.Row, Col: m.Col, Player: player}

	// Check if this move won the game before considering a draw.
	switch {
	case b.lineThrough(m, player) >= winLength:
		b.winner = player
		b.gameOver = true

	case len(b.history) == b.size*b.size:
		b.gameOver = true
	}

	b.turn = player.Opponent()

	return nil
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	clone := Board{
		size:     b.size,
		cells:    make([]Player, len(b.cells)),
		turn:     b.turn,
		lastMove: b.lastMove,
		history:  make([]Move, len(b.history)),
		gameOver: b.gameOver,
		winner:   b.winner,
	}

	copy(clone.cells, b.cells)
	copy(clone.history, b.history)

	return &clone
}

// WinningSquare finds an empty cell that wins the game for the specified
// player when played. Cells are scanned in row-major order. Every probe is
// reversed before the function returns.
func (b *Board) WinningSquare(player Player) (Move, bool) {
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			if !b.cells[row*b.size+col].IsZero() {
				continue
			}

			m := Move{Row: row, Col: col}
			if b.WinsIfPlayed(m, player) {
				return m, true
			}
		}
	}

	return Move{}, false
}

// WinsIfPlayed places the specified move and checks if the specified player
// wins. The board is unchanged when the function returns.
func (b *Board) WinsIfPlayed(m Move, player Player) bool {
	if !b.InBounds(m.Row, m.Col) {
		return false
	}

	idx := m.Row*b.size + m.Col

	save := b.cells[idx]

	b.cells[idx] = player
	defer func() {
		b.cells[idx] = save
	}()

	return b.lineThrough(m, player) >= winLength
}

// =============================================================================

// lineThrough returns the longest contiguous run of the player's stones that
// passes through the specified cell, counted in both directions along each
// of the four axes.
func (b *Board) lineThrough(m Move, player Player) int {
	best := 0

	for _, dir := range directions {
		count := 1

		row, col := m.Row+dir[0], m.Col+dir[1]
		for b.InBounds(row, col) && b.cells[row*b.size+col] == player {
			count++
			row += dir[0]
			col += dir[1]
		}

		row, col = m.Row-dir[0], m.Col-dir[1]
		for b.InBounds(row, col) && b.cells[row*b.size+col] == player {
			count++
			row -= dir[0]
			col -= dir[1]
		}

		if count > best {
			best = count
		}
	}

	return best
}
