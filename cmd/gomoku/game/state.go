package game

import (
	"context"
	"fmt"
	"strings"
)

// Agent is the contract for anything that can choose the next move from a
// game state. Implementations must return a move; whether the move is legal
// is checked by the caller.
type Agent interface {
	SelectMove(ctx context.Context, state *State) (Move, error)
}

// State represents a read-only snapshot of the game for agents and any UI
// to consume. It stays valid after further moves are applied to the board
// it was taken from.
type State struct {
	size     int
	cells    []Player
	current  Player
	lastMove LastMove
	gameOver bool
	winner   Player
	stones   int
}

// ToState takes a snapshot of the current board.
func (b *Board) ToState() *State {
	cells := make([]Player, len(b.cells))
	copy(cells, b.cells)

	state := State{
		size:     b.size,
		cells:    cells,
		current:  b.turn,
		lastMove: b.lastMove,
		gameOver: b.gameOver,
		winner:   b.winner,
		stones:   len(b.history),
	}

	return &state
}

// BoardSize returns the width and height of the board.
func (s *State) BoardSize() int {
	return s.size
}

// CurrentPlayer returns the player who moves next.
func (s *State) CurrentPlayer() Player {
	return s.current
}

// LastPlayed returns the most recent move. The zero player means no move
// has been played yet.
func (s *State) LastPlayed() LastMove {
	return s.lastMove
}

// GameOver reports whether the game has ended.
func (s *State) GameOver() bool {
	return s.gameOver
}

// Winner returns the winning player, or the zero player for none.
func (s *State) Winner() Player {
	return s.winner
}

// MoveCount returns the number of stones on the board.
func (s *State) MoveCount() int {
	return s.stones
}

// At returns the player occupying the cell. Out of bounds coordinates
// report empty.
func (s *State) At(row int, col int) Player {
	if row < 0 || row >= s.size || col < 0 || col >= s.size {
		return Player{}
	}

	return s.cells[row*s.size+col]
}

// IsValidMove reports whether the coordinate is on the board, unoccupied,
// and the game is still in play.
func (s *State) IsValidMove(row int, col int) bool {
	if s.gameOver {
		return false
	}

	if row < 0 || row >= s.size || col < 0 || col >= s.size {
		return false
	}

	return s.cells[row*s.size+col].IsZero()
}

// LegalMoves returns every empty cell in row-major order. A finished game
// has no legal moves.
func (s *State) LegalMoves() []Move {
	if s.gameOver {
		return nil
	}

	moves := make([]Move, 0, s.size*s.size-s.stones)
	for row := 0; row < s.size; row++ {
		for col := 0; col < s.size; col++ {
			if s.cells[row*s.size+col].IsZero() {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}

	return moves
}

// FormatBoard renders the board as text. The "standard" style carries row
// and column indexes, the "plain" style is just the grid. Unknown styles
// render as standard.
func (s *State) FormatBoard(style string) string {
	var text strings.Builder

	plain := style == "plain"

	if !plain {
		text.WriteString("   ")
		for col := 0; col < s.size; col++ {
			fmt.Fprintf(&text, "%d ", col%10)
		}
		text.WriteString("\n")
	}

	for row := 0; row < s.size; row++ {
		if !plain {
			fmt.Fprintf(&text, "%2d ", row)
		}

		for col := 0; col < s.size; col++ {
			player := s.cells[row*s.size+col]

			symbol := "."
			if !player.IsZero() {
				symbol = player.String()
			}

			text.WriteString(symbol)
			if col < s.size-1 {
				text.WriteString(" ")
			}
		}
		text.WriteString("\n")
	}

	return text.String()
}
