package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/pengyumu/gomoku-ai-agent-v1/cmd/gomoku/agent"
	"github.com/pengyumu/gomoku-ai-agent-v1/cmd/gomoku/archive"
	"github.com/pengyumu/gomoku-ai-agent-v1/cmd/gomoku/board"
	"github.com/pengyumu/gomoku-ai-agent-v1/cmd/gomoku/game"
	"github.com/pengyumu/gomoku-ai-agent-v1/cmd/gomoku/systems/ollama"
	"github.com/pengyumu/gomoku-ai-agent-v1/cmd/gomoku/systems/openai"
	"github.com/pengyumu/gomoku-ai-agent-v1/foundation/mongodb"
)

/*
	- Archive the random opening moves played before training matches start
	- Try a larger default model: qwen/qwen3-32b
*/

const (
	systemOpenAI = "openai"
	systemOllama = "ollama"

	defaultModel = "qwen/qwen3-8b"
	embedModel   = "mxbai-embed-large"
)

var (
	train    int
	notes    string
	reset    bool
	size     int
	llm      string
	model    string
	tactics  string
	fallback string
	sound    bool
	debugLog bool
)

func init() {

	// A .env file provides defaults without polluting the shell. Missing
	// files are fine.
	godotenv.Load()

	flag.IntVar(&train, "train", 0, "play this many training games and archive every position")
	flag.StringVar(&notes, "notes", "", "load a strategy document into the archive")
	flag.BoolVar(&reset, "reset", false, "clear the archive before training or loading notes")
	flag.IntVar(&size, "size", envInt("GOMOKU_BOARD_SIZE", game.DefaultSize), "board size")
	flag.StringVar(&llm, "llm", envString("GOMOKU_LLM_SYSTEM", systemOpenAI), "model system: openai or ollama")
	flag.StringVar(&model, "model", envString("GOMOKU_LLM_MODEL", defaultModel), "chat model")
	flag.StringVar(&tactics, "tactics", envString("GOMOKU_TACTICS", agent.TacticsShortCircuit), "tactics mode: short-circuit or hint-only")
	flag.StringVar(&fallback, "fallback", envString("GOMOKU_FALLBACK", agent.FallbackCenterNearest), "fallback policy: center-nearest or first-legal")
	flag.BoolVar(&sound, "sound", envBool("GOMOKU_SOUND", false), "speak game events")
	flag.BoolVar(&debugLog, "debug", envBool("GOMOKU_DEBUG", false), "append prompts and responses to log.txt")

	flag.Parse()
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// -------------------------------------------------------------------------
	// Connect to mongo when an archive is configured.

	var arc *archive.Archive

	if mongoURL := envString("GOMOKU_MONGO_URL", ""); mongoURL != "" {
		fmt.Println("Connecting to MongoDB ...")

		client, err := mongodb.Connect(ctx, mongoURL,
			envString("GOMOKU_MONGO_USER", ""),
			envString("GOMOKU_MONGO_PASSWORD", ""))
		if err != nil {
			return fmt.Errorf("mongo connect: %w", err)
		}
		defer client.Disconnect(ctx)

		fmt.Println("Connected to Ollama ...")

		embedder, err := ollama.NewEmbedder(envString("GOMOKU_OLLAMA_URL", ""), embedModel)
		if err != nil {
			return fmt.Errorf("ollama: %w", err)
		}

		fmt.Println("Establish archive support ...")

		arc, err = archive.New(client, embedder)
		if err != nil {
			return fmt.Errorf("new archive: %w", err)
		}
	}

	// -------------------------------------------------------------------------
	// Train, load notes, or play the game. Only the game needs the model
	// service, so training and ingestion run without a key.

	if reset {
		if arc == nil {
			return errors.New("resetting requires GOMOKU_MONGO_URL")
		}

		fmt.Println("Clearing the archive ...")

		if err := arc.DeleteAll(ctx); err != nil {
			return fmt.Errorf("delete all: %w", err)
		}

		if train == 0 && notes == "" {
			return nil
		}
	}

	switch {
	case train > 0:
		return training(arc, train, size)

	case notes != "":
		if arc == nil {
			return errors.New("loading notes requires GOMOKU_MONGO_URL")
		}
		return arc.ProcessNotes(context.Background(), notes)
	}

	// -------------------------------------------------------------------------
	// Construct the agent and hand it the board.

	chatter, err := newChatter()
	if err != nil {
		return err
	}

	cfg := agent.Config{
		Chatter:  chatter,
		Tactics:  tactics,
		Fallback: fallback,
		Debug:    debugLog,
	}

	if arc != nil {
		cfg.Memory = arc
	}

	player, err := agent.New(cfg)
	if err != nil {
		return fmt.Errorf("new agent: %w", err)
	}

	return gaming(player, arc, size, sound)
}

// newChatter opens the configured model service. The openai system works
// against any compatible endpoint, so a local server is fine.
func newChatter() (agent.Chatter, error) {
	switch llm {
	case systemOpenAI:
		key := envString("GOMOKU_LLM_KEY", os.Getenv("OPENAI_API_KEY"))
		return openai.NewChatter(envString("GOMOKU_LLM_URL", ""), key, model)

	case systemOllama:
		return ollama.NewChatter(envString("GOMOKU_OLLAMA_URL", ""), model)
	}

	return nil, fmt.Errorf("unknown llm system %q", llm)
}

// =============================================================================

// training plays bot matches and archives every position played, labeled
// with what the move accomplished.
func training(arc *archive.Archive, games int, size int) error {
	if arc == nil {
		return errors.New("training requires GOMOKU_MONGO_URL")
	}

	ctx := context.Background()

	fmt.Printf("Playing %d training games on a %dx%d board ...\n", games, size, size)

	for g := 1; g <= games; g++ {
		if err := trainingGame(ctx, arc, g, size); err != nil {
			return fmt.Errorf("game %d: %w", g, err)
		}
	}

	return nil
}

func trainingGame(ctx context.Context, arc *archive.Archive, g int, size int) error {
	gameBoard, err := game.NewBoard(size)
	if err != nil {
		return err
	}

	// A few random opening moves so the bot games don't repeat.
	opening := 2 + rand.IntN(4)
	for i := 0; i < opening; i++ {
		legal := gameBoard.LegalMoves()
		if err := gameBoard.ApplyMove(legal[rand.IntN(len(legal))]); err != nil {
			return err
		}
	}

	// Swap the policies every other game for more varied positions.
	blackPolicy, whitePolicy := agent.FallbackCenterNearest, agent.FallbackFirstLegal
	if g%2 == 0 {
		blackPolicy, whitePolicy = whitePolicy, blackPolicy
	}

	black, err := agent.NewFallback(blackPolicy)
	if err != nil {
		return err
	}

	white, err := agent.NewFallback(whitePolicy)
	if err != nil {
		return err
	}

	match, err := game.NewMatch(gameBoard, black, white)
	if err != nil {
		return err
	}

	// The shadow board trails one move behind so every move can be
	// classified against the position it was played from.
	shadow := gameBoard.Clone()

	observe := func(state *game.State, move game.Move) {
		feedback, err := archive.Classify(shadow, move)
		if err != nil {
			feedback = archive.FeedbackNormal
		}

		if err := arc.SavePosition(ctx, state, move, feedback); err != nil {
			fmt.Printf("save position: %s\n", err)
		}

		shadow.ApplyMove(move)
	}

	winner, err := match.Play(ctx, observe)
	if err != nil {
		return err
	}

	result := "tie game"
	if !winner.IsZero() {
		result = fmt.Sprintf("winner %s", winner)
	}

	fmt.Printf("Game %d: %s after %d moves\n", g, result, gameBoard.MoveCount())

	return nil
}

func gaming(player *agent.Agent, arc *archive.Archive, size int, sound bool) error {

	// -------------------------------------------------------------------------
	// Create the board and initialize the display

	board, err := board.New(board.Config{
		Agent:   player,
		Archive: arc,
		Size:    size,
		Sound:   sound,
	})
	if err != nil {
		return fmt.Errorf("new board: %w", err)
	}
	defer board.Shutdown()

	// -------------------------------------------------------------------------
	// Start handling board input

	<-board.Run()

	return nil
}

// =============================================================================

func envString(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}

	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}

	return n
}
