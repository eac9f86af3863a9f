package agent

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"github.com/pengyumu/gomoku-ai-agent-v1/cmd/gomoku/game"
)

var (
	moveRegex  = regexp.MustCompile(`\{\s*"row"\s*:\s*(-?\d+(?:\.\d+)?)\s*,\s*"col"\s*:\s*(-?\d+(?:\.\d+)?)\s*\}`)
	blockRegex = regexp.MustCompile(`\{[^}]+\}`)
	tailComma  = regexp.MustCompile(`,\s*\}`)
)

// movePayload matches the JSON object the model is told to produce. Pointer
// fields make a missing key detectable after unmarshalling.
type movePayload struct {
	Row *float64 `json:"row"`
	Col *float64 `json:"col"`
}

// parseMove extracts a move from free form model output. It tries a direct
// parse of the whole text, then the strict {"row": n, "col": n} shape, then
// the first brace block with a trailing comma repair. The second return is
// false when no move could be found; the function never fails hard. Numbers
// with a fractional part are truncated toward zero.
func parseMove(content string) (game.Move, bool) {

	// Models sometimes reply with full width digits and punctuation. Fold
	// them to their ASCII forms and drop any code fence markers before
	// matching.
	content = width.Narrow.String(content)
	content = strings.TrimSpace(content)
	content = strings.Trim(content, "`")
	content = strings.TrimSpace(content)

	if m, ok := unmarshalMove(content); ok {
		return m, true
	}

	if match := moveRegex.FindStringSubmatch(content); match != nil {
		row, rowErr := strconv.ParseFloat(match[1], 64)
		col, colErr := strconv.ParseFloat(match[2], 64)
		if rowErr == nil && colErr == nil {
			return game.Move{Row: int(row), Col: int(col)}, true
		}
	}

	if block := blockRegex.FindString(content); block != "" {
		block = tailComma.ReplaceAllString(block, "}")
		if m, ok := unmarshalMove(block); ok {
			return m, true
		}
	}

	return game.Move{}, false
}

// unmarshalMove parses text that should be exactly one move object. Missing
// keys, non-numeric values, and anything that is not a JSON object all
// report false.
func unmarshalMove(text string) (game.Move, bool) {
	var payload movePayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return game.Move{}, false
	}

	if payload.Row == nil || payload.Col == nil {
		return game.Move{}, false
	}

	return game.Move{Row: int(*payload.Row), Col: int(*payload.Col)}, true
}
