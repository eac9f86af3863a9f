// Package ollama provides an implementation for using ollama.
package ollama

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// Embedder implements the Embedder interface.
type Embedder struct {
	llm *ollama.LLM
}

// NewEmbedder constructs Ollama support for embedding.
func NewEmbedder(host string, model string) (*Embedder, error) {
	opts := []ollama.Option{
		ollama.WithModel(model),
	}

	if host != "" {
		opts = append(opts, ollama.WithServerURL(host))
	}

	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("embedding: %w", err)
	}

	embedder := Embedder{
		llm: llm,
	}

	return &embedder, nil
}

// CreateEmbedding implements the Embedder interface.
func (emb *Embedder) CreateEmbedding(ctx context.Context, input []byte) ([]float64, error) {
	results, err := emb.llm.CreateEmbedding(ctx, []string{string(input)})
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}

	final := make([]float64, len(results[0]))
	for i := range results[0] {
		final[i] = float64(results[0][i])
	}

	return final, nil
}

// =============================================================================

// Chatter implements the Chatter interface.
type Chatter struct {
	llm *ollama.LLM
}

// NewChatter constructs Ollama support for chatting.
func NewChatter(host string, model string) (*Chatter, error) {
	opts := []ollama.Option{
		ollama.WithModel(model),
	}

	if host != "" {
		opts = append(opts, ollama.WithServerURL(host))
	}

	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("chatting: %w", err)
	}

	chatter := Chatter{
		llm: llm,
	}

	return &chatter, nil
}

// Chat implements the Chatter interface.
func (cht *Chatter) Chat(ctx context.Context, system string, user string, options ...llms.CallOption) (string, error) {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}

	resp, err := cht.llm.GenerateContent(ctx, content, options...)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in the response")
	}

	return resp.Choices[0].Content, nil
}
