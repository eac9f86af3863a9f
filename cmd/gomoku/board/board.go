// Package board handles the game board and all interactions.
package board

import (
	"bufio"
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/pengyumu/gomoku-ai-agent-v1/cmd/gomoku/archive"
	"github.com/pengyumu/gomoku-ai-agent-v1/cmd/gomoku/game"
)

const (
	cellWidth  = 5
	cellHeight = 2
	padTop     = 4
	padLeft    = 1
)

const (
	hozTopRune = '━'
	hozBotRune = '▅'
	verRune    = '┃'
	space      = 32
)

const (
	markerBlack = "⚫"
	markerWhite = "⚪"
)

const (
	dirLeft  = "left"
	dirRight = "right"
	dirUp    = "up"
	dirDown  = "down"
)

// Config holds the construction settings for the game board. The Agent is
// required; a nil Archive turns position capture off.
type Config struct {
	Agent   game.Agent
	Archive *archive.Archive
	Size    int
	Sound   bool
}

// Board represents the game board and all its state.
type Board struct {
	engine        *game.Board
	agent         game.Agent
	store         *archive.Archive
	speaker       *game.Speaker
	human         game.Player
	screen        tcell.Screen
	style         tcell.Style
	size          int
	boardWidth    int
	boardHeight   int
	cursorRow     int
	cursorCol     int
	lastWinnerMsg string
	lastAgentMsg  string
	modalUp       bool
}

// New constructs a game board and renders it. The side the user plays is
// chosen at random.
func New(cfg Config) (*Board, error) {
	if cfg.Agent == nil {
		return nil, errors.New("agent is required")
	}

	size := cfg.Size
	if size == 0 {
		size = game.DefaultSize
	}

	engine, err := game.NewBoard(size)
	if err != nil {
		return nil, err
	}

	tcell.SetEncodingFallback(tcell.EncodingFallbackASCII)

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("new screen: %w", err)
	}

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("screen init: %w", err)
	}

	style := tcell.StyleDefault
	style = style.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)

	human := game.Players.Black
	nBig, err := rand.Int(rand.Reader, big.NewInt(100))
	if err != nil {
		return nil, fmt.Errorf("random number: %w", err)
	}

	if n := nBig.Int64(); n%2 == 0 {
		human = game.Players.White
	}

	board := Board{
		engine:      engine,
		agent:       cfg.Agent,
		store:       cfg.Archive,
		speaker:     game.NewSpeaker(cfg.Sound),
		human:       human,
		screen:      screen,
		style:       style,
		size:        size,
		boardWidth:  size*cellWidth + 1,
		boardHeight: size * cellHeight,
		cursorRow:   size / 2,
		cursorCol:   size / 2,
	}

	board.drawInit()

	return &board, nil
}

// Shutdown tears down the game board.
func (b *Board) Shutdown() {
	b.screen.Fini()
}

// Run starts a goroutine to handle terminal events. This is a
// blocking call.
func (b *Board) Run() chan struct{} {
	return b.pollEvents()
}

func (b *Board) newGame() {
	engine, err := game.NewBoard(b.size)
	if err != nil {
		return
	}

	b.engine = engine
	b.cursorRow = b.size / 2
	b.cursorCol = b.size / 2
	b.modalUp = false
	b.lastAgentMsg = ""

	b.drawInit()

	if b.engine.CurrentTurn() != b.human {
		b.agentTurn()
	}
}

func (b *Board) drawInit() {
	b.drawEmptyGameBoard()
	b.applyBoardState()
}

func (b *Board) drawEmptyGameBoard() {
	b.screen.Clear()

	width := b.boardWidth
	height := b.boardHeight

	style := b.style
	style = style.Background(tcell.ColorBlack).Foreground(tcell.ColorGrey)

	for h := 0; h <= height; h++ {
		for w := 0; w < width; w++ {

			// Clear the entire line.
			b.screen.SetContent(w+padLeft, h+padTop, space, nil, style)

			if h == 0 || h%cellHeight == 0 {

				// These are the '━' characters creating each row.
				b.screen.SetContent(w+padLeft, h+padTop, hozTopRune, nil, style)

				if h == height {

					// These are the '▅' characters creating the bottom row.
					b.screen.SetContent(w+padLeft, h+padTop, hozBotRune, nil, style)
				}
			}

			if w == 0 || w%cellWidth == 0 {

				// These are the '┃' characters creating each column.
				b.screen.SetContent(w+padLeft, h+padTop, verRune, nil, style)
			}
		}
	}

	b.print(10, 1, "Gomoku AI Version")

	b.print(b.boardWidth+3, padTop-1, b.helpLine())
	b.print(b.boardWidth+3, padTop+1, "Last Winner:                   ")
	b.print(b.boardWidth+3, padTop+2, fmt.Sprintf("You play: %s (%s)", markerFor(b.human), b.human))

	screenWidth, _ := b.screen.Size()

	b.drawBox(b.boardWidth+3, padTop+3, b.boardWidth+(screenWidth-b.boardWidth-2), padTop+3+10)
	b.print(b.boardWidth+4, padTop+3, " LLM PLAYER ")
}

func (b *Board) applyBoardState() {
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			player := b.engine.At(row, col)
			if player.IsZero() {
				continue
			}

			b.print(b.stoneX(col), b.stoneY(row), markerFor(player))
		}
	}

	b.print(b.boardWidth+3, padTop+1, "Last Winner: "+b.lastWinnerMsg)
	b.printAgent()
	b.printStatus()

	switch {
	case b.engine.GameOver() || b.engine.CurrentTurn() != b.human:
		b.screen.HideCursor()
	default:
		b.screen.ShowCursor(b.stoneX(b.cursorCol), b.stoneY(b.cursorRow))
	}

	b.screen.Show()
}

func (b *Board) moveCursor(direction string) {
	if b.engine.GameOver() || b.modalUp {
		return
	}

	row, col := b.cursorRow, b.cursorCol

	switch direction {
	case dirLeft:
		col--
	case dirRight:
		col++
	case dirUp:
		row--
	case dirDown:
		row++
	}

	if !b.engine.InBounds(row, col) {
		return
	}

	b.cursorRow, b.cursorCol = row, col

	b.applyBoardState()
}

func (b *Board) userTurn() {
	if b.engine.GameOver() || b.modalUp {
		return
	}

	if b.engine.CurrentTurn() != b.human {
		b.screen.Beep()
		return
	}

	move := game.Move{Row: b.cursorRow, Col: b.cursorCol}
	if !b.playMove(move) {
		b.screen.Beep()
		return
	}

	if !b.engine.GameOver() {
		b.agentTurn()
	}
}

func (b *Board) agentTurn() {
	b.lastAgentMsg = "- THINKING"
	b.printAgent()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	move, err := b.agent.SelectMove(ctx, b.engine.ToState())
	if err != nil {
		b.lastAgentMsg = err.Error()
		b.printAgent()
		return
	}

	b.lastAgentMsg = fmt.Sprintf("- I play %s CRLF", move)

	b.speaker.Say(fmt.Sprintf("I play row %d, column %d", move.Row, move.Col))

	b.playMove(move)
}

// playMove archives the position when capture is on, applies the move, and
// redraws. A move the engine rejects reports false.
func (b *Board) playMove(move game.Move) bool {
	state := b.engine.ToState()

	feedback := archive.FeedbackNormal
	if b.store != nil {
		if fb, err := archive.Classify(b.engine, move); err == nil {
			feedback = fb
		}
	}

	if err := b.engine.ApplyMove(move); err != nil {
		return false
	}

	if b.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := b.store.SavePosition(ctx, state, move, feedback); err != nil {
			b.lastAgentMsg = fmt.Sprintf("- archive: %s CRLF", err)
		}
	}

	b.applyBoardState()

	if b.engine.GameOver() {
		b.showWinner()
	}

	return true
}

// showWinner displays a modal dialog box.
func (b *Board) showWinner() {
	winner := b.engine.Winner()

	switch {
	case winner.IsZero():
		b.lastWinnerMsg = "Tie Game"
	case winner.Equal(b.human):
		b.lastWinnerMsg = fmt.Sprintf("You (%s)", winner)
	default:
		b.lastWinnerMsg = fmt.Sprintf("Gomoku AI (%s)", winner)
	}

	b.modalUp = true

	b.screen.HideCursor()
	b.drawBox(5, 8, 35, 13)

	l := len(b.lastWinnerMsg)
	b.print(20-(l/2), 10, b.lastWinnerMsg)

	switch {
	case winner.IsZero():
		b.speaker.Say("Tie game")
	case winner.Equal(b.human):
		b.speaker.Say("You win this time")
	default:
		b.speaker.Say("I win, good game")
	}
}

func (b *Board) toggleSound() {
	b.speaker.Toggle()
	b.print(b.boardWidth+3, padTop-1, b.helpLine())
}

// =============================================================================

func (b *Board) stoneX(col int) int {
	return padLeft + 2 + cellWidth*col
}

func (b *Board) stoneY(row int) int {
	return padTop + 1 + cellHeight*row
}

func (b *Board) helpLine() string {
	sound := "off"
	if b.speaker.On() {
		sound = "on"
	}

	return fmt.Sprintf("<n> new game   <s> sound %-3s   <q> quit game", sound)
}

func (b *Board) printStatus() {
	turn := b.engine.CurrentTurn()

	status := fmt.Sprintf("Turn: %s (%s)   Cursor: (%d,%d)      ",
		markerFor(turn), turn, b.cursorRow, b.cursorCol)

	b.print(padLeft, padTop+b.boardHeight+2, status)
}

func markerFor(player game.Player) string {
	if player == game.Players.Black {
		return markerBlack
	}

	return markerWhite
}

// drawBox draws an empty box on the screen.
func (b *Board) drawBox(x int, y int, width int, height int) {
	style := b.style
	style = style.Background(tcell.ColorBlack).Foreground(tcell.ColorGray)

	for h := y; h < height; h++ {
		for w := x; w < width; w++ {
			b.screen.SetContent(w, h, ' ', nil, b.style)
		}
	}

	for h := y; h < height; h++ {
		for w := x; w < width; w++ {
			if h == y {
				b.screen.SetContent(w, h, '▀', nil, style)
			}
			if h == height-1 {
				b.screen.SetContent(w, h, '▄', nil, style)
			}
			if w == x || w == width-1 {
				b.screen.SetContent(w, h, '█', nil, style)
			}
		}
	}

	b.screen.Show()
}

func (b *Board) print(x, y int, str string) {
	for _, c := range str {
		var comb []rune
		w := runewidth.RuneWidth(c)
		if w == 0 {
			comb = []rune{c}
			c = ' '
			w = 1
		}
		b.screen.SetContent(x, y, c, comb, b.style)
		x += w
	}
	b.screen.Show()
}

func (b *Board) printAgent() {
	screenWidth, _ := b.screen.Size()
	actWidth := (screenWidth - b.boardWidth - 9)

	row := b.boardWidth + 5
	col := padTop + 4

	for range 8 {
		for range actWidth {
			b.print(row, col, " ")
			row++
		}
		row = b.boardWidth + 5
		col++
	}

	row = b.boardWidth + 5
	col = padTop + 4

	scanner := bufio.NewScanner(bytes.NewReader([]byte(b.lastAgentMsg)))
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		word := scanner.Text()
		if word == "CRLF" {
			col++
			row = b.boardWidth + 5
			continue
		}

		b.print(row, col, word)

		row += len(word) + 1
		if row >= b.boardWidth+actWidth-4 {
			col++
			row = b.boardWidth + 5
		}
	}
}
