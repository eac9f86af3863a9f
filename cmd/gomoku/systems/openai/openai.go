// Package openai provides an implementation for using openai api
// compatible services.
package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Chatter implements the Chatter interface against any endpoint that
// speaks the openai chat api, including local servers.
type Chatter struct {
	llm *openai.LLM
}

// NewChatter constructs OpenAI support for chatting.
func NewChatter(url string, key string, model string) (*Chatter, error) {
	opts := []openai.Option{
		openai.WithModel(model),
		openai.WithToken(key),
	}

	if url != "" {
		opts = append(opts, openai.WithBaseURL(url))
	}

	llm, err := openai.New(opts...)
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
