package archive

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"code.sajari.com/docconv/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// notesChunkSize bounds how much text goes into one note embedding.
const notesChunkSize = 1200

// ProcessNotes extracts the text from a strategy document, splits it into
// chunks, and stores each chunk with its vector embedding. Loading the same
// document again replaces its chunks.
func (arc *Archive) ProcessNotes(ctx context.Context, path string) error {
	res, err := docconv.ConvertPath(path)
	if err != nil {
		return fmt.Errorf("convert %s: %w", path, err)
	}

	chunks := chunkText(res.Body, notesChunkSize)
	source := filepath.Base(path)

	fmt.Printf("Found %d chunks to process\n", len(chunks))

	delCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if _, err := arc.notes.DeleteMany(delCtx, bson.D{{Key: "source", Value: source}}); err != nil {
		return fmt.Errorf("delete notes: %w", err)
	}

	for i, chunk := range chunks {
		insCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
		defer cancel()

		fmt.Printf("Processing chunk %d of %d\n", i+1, len(chunks))

		embedding, err := arc.embed.CreateEmbedding(insCtx, []byte(chunk))
		if err != nil {
			return fmt.Errorf("create embedding: %w", err)
		}

		d := Note{
			ID:        uuid.NewString(),
			Source:    source,
			Chunk:     chunk,
			Embedding: embedding,
		}

		if _, err := arc.notes.InsertOne(insCtx, d); err != nil {
			return fmt.Errorf("insert: %w", err)
		}
	}

	return nil
}

// =============================================================================

func (arc *Archive) findNote(ctx context.Context, embedding []float64) (SimilarNote, error) {
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
				"note_id": 1,
				"source":  1,
				"chunk":   1,
				"score": bson.M{
					"$meta": "vectorSearchScore",
				},
			}},
		},
	}

	cur, err := arc.notes.Aggregate(dbCtx, pipeline)
	if err != nil {
		return SimilarNote{}, fmt.Errorf("aggregate: %w", err)
	}
	defer cur.Close(dbCtx)

	var notes []SimilarNote
	if err := cur.All(dbCtx, &notes); err != nil {
		return SimilarNote{}, fmt.Errorf("all: %w", err)
	}

	if len(notes) == 0 {
		return SimilarNote{}, ErrNoSimilar
	}

	return notes[0], nil
}

// chunkText splits text into chunks of roughly the given size, breaking on
// word boundaries so no word is cut in half.
func chunkText(text string, size int) []string {
	var chunks []string
	var current strings.Builder

	for _, word := range strings.Fields(text) {
		if current.Len() > 0 && current.Len()+len(word)+1 > size {
			chunks = append(chunks, current.String())
			current.Reset()
		}

		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}
