package board

import (
	"fmt"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
)

// pollEvents starts a goroutine to handle terminal events.
func (b *Board) pollEvents() chan struct{} {
	quit := make(chan struct{})

	go func() {
		defer func() {
			if r := recover(); r != nil {
				b.screen.Clear()
				fmt.Println(r)
				debug.PrintStack()
			}
		}()

		// The agent opens the game when it holds black.
		if b.engine.CurrentTurn() != b.human {
			b.agentTurn()
		}

		for {
			event := b.screen.PollEvent()

			// Check if we received a key event.
			ev, isEventKey := event.(*tcell.EventKey)
			if !isEventKey {
				if _, isResize := event.(*tcell.EventResize); isResize {
					b.screen.Sync()
				}
				continue
			}

			keyType := ev.Key()

			// Allow the user to quit the game at any time.
			if keyType == tcell.KeyEscape || (keyType == tcell.KeyRune && ev.Rune() == 'q') {
				close(quit)
				return
			}

			switch keyType {
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'n':
					b.newGame()

				case 's':
					b.toggleSound()

				case 'h':
					b.moveCursor(dirLeft)

				case 'l':
					b.moveCursor(dirRight)

				case 'k':
					b.moveCursor(dirUp)

				case 'j':
					b.moveCursor(dirDown)

				case ' ':
					b.userTurn()
				}

			case tcell.KeyLeft:
				b.moveCursor(dirLeft)

			case tcell.KeyRight:
				b.moveCursor(dirRight)

			case tcell.KeyUp:
				b.moveCursor(dirUp)

			case tcell.KeyDown:
				b.moveCursor(dirDown)

			case tcell.KeyEnter:
				b.userTurn()
			}
		}
	}()

	return quit
}
