package archive

// MetaData represents the metadata that is associated with a position.
type MetaData struct {
	Stones   int      `json:"stones" bson:"stones"`
	Moves    []string `json:"moves" bson:"moves"`
	Feedback string   `json:"feedback" bson:"feedback"`
}

// Position represents gomoku position information.
type Position struct {
	ID        string    `bson:"position_id"`
	Board     string    `bson:"board"`
	MetaData  MetaData  `bson:"meta_data"`
	Embedding []float64 `bson:"embedding"`
	Image     []byte    `bson:"image"`
}

// SimilarPosition represents a gomoku position found in the similarity
// search.
type SimilarPosition struct {
	ID        string    `bson:"position_id"`
	Board     string    `bson:"board"`
	MetaData  MetaData  `bson:"meta_data"`
	Embedding []float64 `bson:"embedding"`
	Score     float64   `bson:"score"`
}

// Note represents one chunk of strategy text pulled from a document.
type Note struct {
	ID        string    `bson:"note_id"`
	Source    string    `bson:"source"`
	Chunk     string    `bson:"chunk"`
	Embedding []float64 `bson:"embedding"`
}

// SimilarNote represents a note chunk found in the similarity search.
type SimilarNote struct {
	ID     string  `bson:"note_id"`
	Source string  `bson:"source"`
	Chunk  string  `bson:"chunk"`
	Score  float64 `bson:"score"`
}
