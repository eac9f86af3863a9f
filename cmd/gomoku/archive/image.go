package archive

import (
	"bytes"
	"strings"

	"github.com/fogleman/gg"
)

/*
. . . . . . . .
. . . . . . . .
. . X . . . . .
. . . O . . . .
. . . . . . . .
*/

// renderPNG draws the plain board text as a png image that is stored
// alongside the embedding.
func renderPNG(board string) ([]byte, error) {
	const gap = 25.0
	const margin = 20.0
	const radius = 10.0

	rows := strings.Split(strings.TrimSpace(board), "\n")
	size := len(rows)

	width := int(margin*2 + gap*float64(size-1))

	dc := gg.NewContext(width, width)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	y := margin
	for _, row := range rows {
		x := margin

		for _, marker := range strings.Split(row, " ") {
			switch marker {
			case "X":
				dc.SetRGB(0, 0, 0)
			case "O":
				dc.SetRGB(1, 0, 0)
			default:
				dc.SetRGB(0, 1, 0)
			}

			dc.DrawCircle(x, y, radius)
			dc.Fill()

			x += gap
		}

		y += gap
	}

	var b bytes.Buffer
	if err := dc.EncodePNG(&b); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}
