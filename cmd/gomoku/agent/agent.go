// Package agent provides the LLM backed gomoku player: tactical pre-checks,
// prompt construction, response parsing, and fallback move selection.
package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/pengyumu/gomoku-ai-agent-v1/cmd/gomoku/game"
)

// The tactic modes that can be configured. Short-circuit plays a forced
// move without consulting the model; hint-only forwards the tactical scan
// to the model inside the prompt.
const (
	TacticsShortCircuit = "short-circuit"
	TacticsHintOnly     = "hint-only"
)

const (
	defaultRetries = 1
	defaultTimeout = 45 * time.Second
)

// Chatter abstracts the model service the agent consults for a move.
type Chatter interface {
	Chat(ctx context.Context, system string, user string, options ...llms.CallOption) (string, error)
}

// Memory recalls guidance captured from previously archived positions. A
// nil Memory turns recall off.
type Memory interface {
	Recall(ctx context.Context, board string) (string, error)
}

// Config holds the construction settings for an agent.
type Config struct {
	Chatter  Chatter
	Memory   Memory
	Tactics  string
	Fallback string
	Retries  int
	Timeout  time.Duration
	Debug    bool
}

// Agent is an LLM backed player. All fields are set at construction and
// never reassigned.
type Agent struct {
	chat     Chatter
	memory   Memory
	tactics  string
	fallback string
	retries  int
	timeout  time.Duration
	debug    bool
}

// New constructs an agent from the configuration. The Chatter is required;
// everything else has a default.
func New(cfg Config) (*Agent, error) {
	if cfg.Chatter == nil {
		return nil, errors.New("chatter is required")
	}

	switch cfg.Tactics {
	case "":
		cfg.Tactics = TacticsShortCircuit
	case TacticsShortCircuit, TacticsHintOnly:
	default:
		return nil, fmt.Errorf("unknown tactics mode %q", cfg.Tactics)
	}

	switch cfg.Fallback {
	case "":
		cfg.Fallback = FallbackCenterNearest
	case FallbackFirstLegal, FallbackCenterNearest:
	default:
		return nil, fmt.Errorf("unknown fallback policy %q", cfg.Fallback)
	}

	if cfg.Retries < 0 {
		return nil, fmt.Errorf("retries must not be negative, got %d", cfg.Retries)
	}

	if cfg.Retries == 0 {
		cfg.Retries = defaultRetries
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	agent := Agent{
		chat:     cfg.Chatter,
		memory:   cfg.Memory,
		tactics:  cfg.Tactics,
		fallback: cfg.Fallback,
		retries:  cfg.Retries,
		timeout:  cfg.Timeout,
		debug:    cfg.Debug,
	}

	return &agent, nil
}

// SelectMove implements the game agent contract. A move always comes back:
// any model, parsing, or validation failure lands on the fallback move, and
// the returned error is always nil.
func (a *Agent) SelectMove(ctx context.Context, state *game.State) (game.Move, error) {
	player := state.CurrentPlayer()
	rival := player.Opponent()
	size := state.BoardSize()

	legal := state.LegalMoves()
	if len(legal) == 0 {
		a.writeLog("no legal moves: falling back to the center")
		return fallbackMove(size, nil, a.fallback), nil
	}

	ordered := centerSorted(size, legal)

	// -------------------------------------------------------------------------
	// Check for forced moves before spending a model call

	pos := newPosition(state)
	hits := scanTactics(pos, ordered, player, rival)

	if a.tactics == TacticsShortCircuit && len(hits) > 0 {
		hit := hits[0]
		a.writeLogf("tactical %s: playing %s", hit.reason, hit.move)
		return hit.move, nil
	}

	// -------------------------------------------------------------------------
	// Ask the model, then validate what came back

	promptMoves := legal
	if a.fallback == FallbackCenterNearest {
		promptMoves = ordered
	}

	if move, ok := a.llmMove(ctx, state, player, rival, promptMoves, hits); ok {
		return move, nil
	}

	// -------------------------------------------------------------------------
	// Nothing usable came back, play the default

	move := fallbackMove(size, legal, a.fallback)
	a.writeLogf("fallback %s: playing %s", a.fallback, move)

	return move, nil
}

// =============================================================================

// llmMove runs the query, parse, validate loop against the model. The
// second return is false once every attempt is spent without a legal move.
func (a *Agent) llmMove(ctx context.Context, state *game.State, player game.Player, rival game.Player, legal []game.Move, hits []tacticalHit) (game.Move, bool) {
	system := buildPolicy(state.BoardSize())
	user := buildBoardMessage(state, player, rival, legal)

	if a.tactics == TacticsHintOnly && len(hits) > 0 {
		user += fmt.Sprintf(promptHints, formatHits(hits))
	}

	if a.memory != nil {
		advice, err := a.memory.Recall(ctx, state.FormatBoard("plain"))
		switch {
		case err != nil:
			a.writeLogf("recall: %s", err)
		case advice != "":
			user += fmt.Sprintf(promptAdvice, advice)
		}
	}

	// The model sometimes replies without a usable move, so we may need to
	// tell it that it didn't listen and try again. Transport and timeout
	// failures retry with the prompt unchanged.
	attempts := 1
	for ; attempts <= a.retries+1; attempts++ {
		a.writeLog(user)

		response, err := a.chatCall(ctx, system, user)
		if err != nil {
			a.writeLogf("chat attempt %d: %s", attempts, err)
			continue
		}

		a.writeLog("Response:")
		a.writeLog(response)

		move, ok := parseMove(response)
		if ok && state.IsValidMove(move.Row, move.Col) {
			a.writeLogf("attempts: %d", attempts)
			return move, true
		}

		user = fmt.Sprintf(promptTryAgain, user, response)
	}

	a.writeLogf("no usable move after %d attempts", a.retries+1)

	return game.Move{}, false
}

// chatCall makes one model call bounded by the configured timeout.
func (a *Agent) chatCall(ctx context.Context, system string, user string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	return a.chat.Chat(callCtx, system, user, llms.WithMaxTokens(5000), llms.WithTemperature(0.8))
}
