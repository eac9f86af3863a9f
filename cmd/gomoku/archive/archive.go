// Package archive stores played positions and strategy notes in mongodb
// and finds the closest archived material with a vector search.
package archive

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pengyumu/gomoku-ai-agent-v1/cmd/gomoku/game"
	"github.com/pengyumu/gomoku-ai-agent-v1/foundation/mongodb"
)

// The feedback labels a position can be archived with.
const (
	FeedbackWillWin    = "Will-Win"
	FeedbackBlockedWin = "Blocked-Win"
	FeedbackNormal     = "Normal-GamePlay"
)

const dbTimeout = 10 * time.Second

// ErrNoSimilar is returned when the search comes back empty, which happens
// until the first positions are archived.
var ErrNoSimilar = errors.New("no similar document found")

// Classify labels the move that is about to be played from the board: did
// it win the game, block the opponent's immediate win, or neither. The
// board is unchanged when the function returns.
func Classify(before *game.Board, move game.Move) (string, error) {
	mover := before.CurrentTurn()

	blocked := before.WinsIfPlayed(move, mover.Opponent())

	after := before.Clone()
	if err := after.ApplyMove(move); err != nil {
		return "", fmt.Errorf("apply move: %w", err)
	}

	switch {
	case after.GameOver() && after.Winner().Equal(mover):
		return FeedbackWillWin, nil
	case blocked:
		return FeedbackBlockedWin, nil
	}

	return FeedbackNormal, nil
}

// Embedder declares the behavior to produce a vector embedding for board
// or note data.
type Embedder interface {
	CreateEmbedding(ctx context.Context, input []byte) ([]float64, error)
}

// Archive provides support to store and recall gomoku positions.
type Archive struct {
	client *mongo.Client
	col    *mongo.Collection
	notes  *mongo.Collection
	embed  Embedder
}

// New constructs the archive api for use.
func New(client *mongo.Client, embed Embedder) (*Archive, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	// -------------------------------------------------------------------------
	// Create database and collections

	const dbName = "gomoku"
	const positionsName = "positions"
	const notesName = "notes"

	db := client.Database(dbName)

	col, err := mongodb.CreateCollection(ctx, db, positionsName)
	if err != nil {
		return nil, fmt.Errorf("createCollection: %w", err)
	}

	notes, err := mongodb.CreateCollection(ctx, db, notesName)
	if err != nil {
		return nil, fmt.Errorf("createCollection: %w", err)
	}

	// -------------------------------------------------------------------------
	// Create indexes

	unique := true
	col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "position_id", Value: 1}},
		Options: &options.IndexOptions{Unique: &unique},
	})
	notes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "note_id", Value: 1}},
		Options: &options.IndexOptions{Unique: &unique},
	})

	const indexName = "vector_index"
	settings := mongodb.VectorIndexSettings{
		NumDimensions: 1024,
		Path:          "embedding",
		Similarity:    "cosine",
	}

	if err := mongodb.CreateVectorIndex(ctx, col, indexName, settings); err != nil {
		return nil, fmt.Errorf("createVectorIndex: %w", err)
	}

	if err := mongodb.CreateVectorIndex(ctx, notes, indexName, settings); err != nil {
		return nil, fmt.Errorf("createVectorIndex: %w", err)
	}

	// -------------------------------------------------------------------------
	// Return the api

	arc := Archive{
		client: client,
		col:    col,
		notes:  notes,
		embed:  embed,
	}

	return &arc, nil
}

// SavePosition stores the board with the move that was played from it. A
// board that was archived before keeps its identity and collects the new
// move; the feedback always reflects the latest game.
func (arc *Archive) SavePosition(ctx context.Context, state *game.State, move game.Move, feedback string) error {
	board := state.FormatBoard("plain")

	moves := []string{move.String()}
	positionID := uuid.NewString()

	// -------------------------------------------------------------------------
	// Check if we have captured this board already so we can update the
	// moves on the position.

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	filter := bson.D{{Key: "board", Value: board}}

	var existing Position
	if err := arc.col.FindOne(dbCtx, filter).Decode(&existing); err == nil {
		positionID = existing.ID
		moves = existing.MetaData.Moves

		var foundMove bool
		for _, v := range existing.MetaData.Moves {
			if v == move.String() {
				foundMove = true
				break
			}
		}

		if !foundMove {
			moves = append([]string{move.String()}, existing.MetaData.Moves...)
		}
	}

	// -------------------------------------------------------------------------
	// Produce the embedding and the rendered image

	embedding, err := arc.embed.CreateEmbedding(ctx, []byte(board))
	if err != nil {
		return fmt.Errorf("create embedding: %w", err)
	}

	image, err := renderPNG(board)
	if err != nil {
		return fmt.Errorf("render png: %w", err)
	}

	// -------------------------------------------------------------------------
	// Save or update this position

	d := Position{
		ID:    positionID,
		Board: board,
		MetaData: MetaData{
			Stones:   state.MoveCount(),
			Moves:    moves,
			Feedback: feedback,
		},
		Embedding: embedding,
		Image:     image,
	}

	arc.col.DeleteOne(dbCtx, bson.D{{Key: "position_id", Value: positionID}})

	if _, err := arc.col.InsertOne(dbCtx, d); err != nil {
		return fmt.Errorf("insert: %w", err)
	}

	return nil
}

// FindSimilar performs a vector search to find the most similar position.
func (arc *Archive) FindSimilar(ctx context.Context, board string) (SimilarPosition, error) {
	embedding, err := arc.embed.CreateEmbedding(ctx, []byte(board))
	if err != nil {
		return SimilarPosition{}, fmt.Errorf("create embedding: %w", err)
	}

	return arc.findSimilar(ctx, embedding)
}

// Recall implements the agent memory contract. It turns the closest
// archived position and note into a short piece of advice, or nothing when
// the archive has no material yet.
func (arc *Archive) Recall(ctx context.Context, board string) (string, error) {
	embedding, err := arc.embed.CreateEmbedding(ctx, []byte(board))
	if err != nil {
		return "", fmt.Errorf("create embedding: %w", err)
	}

	var advice []string

	position, err := arc.findSimilar(ctx, embedding)
	switch {
	case errors.Is(err, ErrNoSimilar):
	case err != nil:
		return "", err
	default:
		advice = append(advice, composeAdvice(position))
	}

	note, err := arc.findNote(ctx, embedding)
	switch {
	case errors.Is(err, ErrNoSimilar):
	case err != nil:
		return "", err
	default:
		advice = append(advice, fmt.Sprintf("From the notes: %s", note.Chunk))
	}

	return strings.Join(advice, "\n"), nil
}

// DeleteAll removes every archived position and note. The collections and
// their indexes stay in place.
func (arc *Archive) DeleteAll(ctx context.Context) error {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if _, err := arc.col.DeleteMany(dbCtx, bson.D{}); err != nil {
		return fmt.Errorf("delete positions: %w", err)
	}

	if _, err := arc.notes.DeleteMany(dbCtx, bson.D{}); err != nil {
		return fmt.Errorf("delete notes: %w", err)
	}

	return nil
}

// =============================================================================

func (arc *Archive) findSimilar(ctx context.Context, embedding []float64) (SimilarPosition, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	// We want to find the nearest neighbors from the board vector embedding.
	pipeline := mongo.Pipeline{
		{{
			Key: "$vectorSearch",
			Value: bson.M{
				"index":       "vector_index",
				"exact":       true,
				"path":        "embedding",
				"queryVector": embedding,
				"limit":       1,
			}},
		},
		{{
			Key: "$project",
			Value: bson.M{
				"position_id": 1,
				"board":       1,
				"meta_data": bson.M{
					"stones":   1,
					"moves":    1,
					"feedback": 1,
				},
				"embedding": 1,
				"score": bson.M{
					"$meta": "vectorSearchScore",
				},
			}},
		},
	}

	cur, err := arc.col.Aggregate(dbCtx, pipeline)
	if err != nil {
		return SimilarPosition{}, fmt.Errorf("aggregate: %w", err)
	}
	defer cur.Close(dbCtx)

	var positions []SimilarPosition
	if err := cur.All(dbCtx, &positions); err != nil {
		return SimilarPosition{}, fmt.Errorf("all: %w", err)
	}

	if len(positions) == 0 {
		return SimilarPosition{}, ErrNoSimilar
	}

	return positions[0], nil
}

// composeAdvice renders a similar position as one line of guidance for the
// prompt.
func composeAdvice(position SimilarPosition) string {
	score := fmt.Sprintf("%.2f", position.Score*100)

	return fmt.Sprintf("A position %s%% similar to this one was archived with feedback %q. Moves tried there: %s.",
		score,
		position.MetaData.Feedback,
		strings.Join(position.MetaData.Moves, ", "))
}
