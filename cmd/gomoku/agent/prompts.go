package agent

import (
	"fmt"
	"strings"

	"github.com/pengyumu/gomoku-ai-agent-v1/cmd/gomoku/game"
)

var promptPolicy = `You are a master-level Gomoku AI on a %dx%d board (0-indexed: rows/cols 0..%d).
Return ONLY one JSON object exactly as {"row": <int>, "col": <int>} - no extra text, no code block.
Numbers must be integers (not strings). The move MUST be one of LEGAL_MOVES and on an empty cell.

DECISION ORDER (stop at the first that applies):
1) WIN NOW - if any move completes five-in-a-row for YOU, play it.
2) BLOCK LOSS - if the opponent can win next move, block that line (unless you can win now).
3) FORCING FOUR - create a forcing four ('.XXXX', 'XXXX.', or 'XXX.X').
4) OPEN THREE FIRST - when no immediate win/loss threat, prefer making an OPEN THREE for yourself ('.XXX.' or 'XX.X' if you are X; '.OOO.' or 'OO.O' if you are O) near your strongest chain.
5) DOUBLE THREAT - create two independent threats (e.g., two open threes) to force a win.
6) SHAPE & CENTER - otherwise extend your longest line with open ends; prefer central squares around (%d,%d)-(%d,%d).
7) TIE-BREAKER - if still tied, choose the earliest move in LEGAL_MOVES.
SELF-CHECK: ensure (row,col) is in LEGAL_MOVES and within 0..%d. If your chosen move is not in LEGAL_MOVES, scan LEGAL_MOVES in order and output the first move that satisfies the highest rule.`

var promptBoard = `BOARD %dx%d (0-indexed):
%s
You play as: %s
Opponent: %s
Note: if the board shows the digit '0', treat it exactly as 'O' (white stones).
LEGAL_MOVES (row,col): %s

Apply the policy above and reply with JSON only.`

var promptHints = `

TACTICAL SCAN (deterministic, trust it): %s.
The first entry is the most urgent. Play its move unless a higher rule disagrees.`

var promptAdvice = `

Context from earlier games that may help:
%s`

var promptTryAgain = `%s

Assistant:
%s

User:
You didn't provide a JSON move from LEGAL_MOVES. Please try again.`

// buildPolicy renders the system instruction for the board size.
func buildPolicy(size int) string {
	center := size / 2

	return fmt.Sprintf(promptPolicy,
		size, size, size-1,
		center-1, center-1, center, center,
		size-1)
}

// buildBoardMessage renders the user message: the board, the player
// identities, and the legal moves in the order the model should prefer.
func buildBoardMessage(state *game.State, player game.Player, rival game.Player, legal []game.Move) string {
	size := state.BoardSize()

	return fmt.Sprintf(promptBoard,
		size, size,
		state.FormatBoard("standard"),
		player, rival,
		formatMoves(legal))
}

// formatMoves renders moves the way the prompt documents them: a list of
// (row,col) pairs.
func formatMoves(moves []game.Move) string {
	var text strings.Builder

	text.WriteString("[")
	for i, m := range moves {
		if i > 0 {
			text.WriteString(", ")
		}
		text.WriteString(m.String())
	}
	text.WriteString("]")

	return text.String()
}

// formatHits renders the tactical scan results for the prompt.
func formatHits(hits []tacticalHit) string {
	var text strings.Builder

	for i, hit := range hits {
		if i > 0 {
			text.WriteString("; ")
		}
		fmt.Fprintf(&text, "%s at %s", hit.reason, hit.move)
	}

	return text.String()
}
