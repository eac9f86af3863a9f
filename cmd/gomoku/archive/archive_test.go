package archive

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pengyumu/gomoku-ai-agent-v1/cmd/gomoku/game"
)

func TestChunkText(t *testing.T) {
	text := strings.Repeat("the corner opening concedes the center ", 40)

	chunks := chunkText(text, 120)
	if len(chunks) < 2 {
		t.Fatalf("expected the text to split, got %d chunks", len(chunks))
	}

	for i, chunk := range chunks {
		if len(chunk) > 120 {
			t.Fatalf("chunk %d is %d bytes, over the limit", i, len(chunk))
		}
	}

	joined := strings.Join(chunks, " ")
	if joined != strings.Join(strings.Fields(text), " ") {
		t.Fatal("expected no words to be lost or reordered")
	}

	if got := chunkText("", 120); len(got) != 0 {
		t.Fatalf("expected no chunks for empty text, got %d", len(got))
	}

	word := strings.Repeat("x", 300)
	if got := chunkText(word, 120); len(got) != 1 || got[0] != word {
		t.Fatal("expected one oversized word to stay whole")
	}
}

func TestRenderPNG(t *testing.T) {
	board, err := game.NewBoard(5)
	if err != nil {
		t.Fatalf("unable to create board: %s", err)
	}

	if err := board.ApplyMove(game.Move{Row: 2, Col: 2}); err != nil {
		t.Fatalf("unable to apply move: %s", err)
	}

	if err := board.ApplyMove(game.Move{Row: 1, Col: 3}); err != nil {
		t.Fatalf("unable to apply move: %s", err)
	}

	image, err := renderPNG(board.ToState().FormatBoard("plain"))
	if err != nil {
		t.Fatalf("unable to render image: %s", err)
	}

	header := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	if len(image) < len(header) || !bytes.Equal(image[:len(header)], header) {
		t.Fatal("expected a png image")
	}
}

func TestClassify(t *testing.T) {
	board, err := game.NewBoard(8)
	if err != nil {
		t.Fatalf("unable to create board: %s", err)
	}

	moves := []game.Move{
		{Row: 2, Col: 2}, {Row: 5, Col: 0},
		{Row: 2, Col: 3}, {Row: 5, Col: 1},
		{Row: 2, Col: 4}, {Row: 5, Col: 2},
	}

	for _, m := range moves {
		if err := board.ApplyMove(m); err != nil {
			t.Fatalf("unable to apply move %s: %s", m, err)
		}
	}

	// X to move with three in a row: nothing is forced yet.
	feedback, err := Classify(board, game.Move{Row: 2, Col: 5})
	if err != nil {
		t.Fatalf("unable to classify: %s", err)
	}

	if feedback != FeedbackNormal {
		t.Fatalf("expected %q, got %q", FeedbackNormal, feedback)
	}

	if err := board.ApplyMove(game.Move{Row: 2, Col: 5}); err != nil {
		t.Fatalf("unable to apply move: %s", err)
	}

	// O to move against four in a row: occupying either open end blocks.
	feedback, err = Classify(board, game.Move{Row: 2, Col: 6})
	if err != nil {
		t.Fatalf("unable to classify: %s", err)
	}

	if feedback != FeedbackBlockedWin {
		t.Fatalf("expected %q, got %q", FeedbackBlockedWin, feedback)
	}

	if err := board.ApplyMove(game.Move{Row: 6, Col: 6}); err != nil {
		t.Fatalf("unable to apply move: %s", err)
	}

	// X to move completes five in a row.
	feedback, err = Classify(board, game.Move{Row: 2, Col: 6})
	if err != nil {
		t.Fatalf("unable to classify: %s", err)
	}

	if feedback != FeedbackWillWin {
		t.Fatalf("expected %q, got %q", FeedbackWillWin, feedback)
	}

	if board.GameOver() {
		t.Fatal("expected the classification to leave the board unchanged")
	}

	if _, err := Classify(board, game.Move{Row: 2, Col: 2}); err == nil {
		t.Fatal("expected an occupied cell to be rejected")
	}
}

func TestComposeAdvice(t *testing.T) {
	position := SimilarPosition{
		Score: 0.8732,
		MetaData: MetaData{
			Feedback: FeedbackWillWin,
			Moves:    []string{"(2,6)", "(2,1)"},
		},
	}

	advice := composeAdvice(position)

	if !strings.Contains(advice, "87.32%") {
		t.Fatalf("expected the similarity score in the advice, got %q", advice)
	}

	if !strings.Contains(advice, `"Will-Win"`) {
		t.Fatalf("expected the feedback label in the advice, got %q", advice)
	}

	if !strings.Contains(advice, "(2,6), (2,1)") {
		t.Fatalf("expected the archived moves in the advice, got %q", advice)
	}
}
