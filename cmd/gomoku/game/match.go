package game

import (
	"context"
	"fmt"
)

// Match runs a game between two agents to completion.
type Match struct {
	board *Board
	black Agent
	white Agent
}

// NewMatch constructs a match on the specified board. Black moves first.
func NewMatch(board *Board, black Agent, white Agent) (*Match, error) {
	if board == nil {
		return nil, fmt.Errorf("match: board is required")
	}

	if black == nil || white == nil {
		return nil, fmt.Errorf("match: both agents are required")
	}

	match := Match{
		board: board,
		black: black,
		white: white,
	}

	return &match, nil
}

// Board returns the board the match is played on.
func (m *Match) Board() *Board {
	return m.board
}

// Play alternates the two agents until the game ends. The observe function,
// when provided, receives the state each move was chosen from along with the
// move. The winner is returned, with the zero player meaning a draw.
func (m *Match) Play(ctx context.Context, observe func(state *State, move Move)) (Player, error) {
	for !m.board.GameOver() {
		if err := ctx.Err(); err != nil {
			return Player{}, fmt.Errorf("match stopped: %w", err)
		}

		agent := m.black
		if m.board.CurrentTurn() == Players.White {
			agent = m.white
		}

		state := m.board.ToState()

		move, err := agent.SelectMove(ctx, state)
		if err != nil {
			return Player{}, fmt.Errorf("select move for %s: %w", m.board.CurrentTurn(), err)
		}

		if err := m.board.ApplyMove(move); err != nil {
			return Player{}, fmt.Errorf("play %s for %s: %w", move, state.CurrentPlayer(), err)
		}

		if observe != nil {
			observe(state, move)
		}
	}

	return m.board.Winner(), nil
}
