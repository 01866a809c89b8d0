// Package llm wraps an OpenAI-compatible chat completion API. The default
// deployment points it at Cohere's compatibility endpoint, but any backend
// speaking the same protocol works by changing the base URL.
package llm

import (
	"context"
	"fmt"

	openai "github.com/meguminnnnnnnnn/go-openai"
)

// Message roles accepted by the chat completion API.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client is the interface the chat and extraction services depend on.
type Client interface {
	Complete(ctx context.Context, messages []Message, maxTokens int) (string, error)
	Stream(ctx context.Context, messages []Message, maxTokens int) (<-chan string, error)
}

// OpenAIClient is a Client backed by an OpenAI-compatible API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates a client for the given API key, base URL and model.
// An empty baseURL keeps the library default.
func NewOpenAIClient(apiKey, baseURL, model string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Complete sends the conversation and returns the full assistant reply.
func (c *OpenAIClient) Complete(ctx context.Context, messages []Message, maxTokens int) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, c.toRequest(messages, maxTokens))
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Stream sends the conversation and returns a channel of text chunks. The
// channel is closed when the model finishes or the stream errors.
func (c *OpenAIClient) Stream(ctx context.Context, messages []Message, maxTokens int) (<-chan string, error) {
	stream, err := c.client.CreateChatCompletionStream(ctx, c.toRequest(messages, maxTokens))
	if err != nil {
		return nil, fmt.Errorf("create chat completion stream: %w", err)
	}

	chunks := make(chan string)

	go func() {
		defer close(chunks)
		defer stream.Close()

		for {
			resp, err := stream.Recv()
			if err != nil {
				return
			}
			for _, choice := range resp.Choices {
				if choice.Delta.Content == "" {
					continue
				}
				select {
				case chunks <- choice.Delta.Content:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return chunks, nil
}

// toRequest converts our message format to the OpenAI request format.
func (c *OpenAIClient) toRequest(messages []Message, maxTokens int) openai.ChatCompletionRequest {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: out,
	}
	if maxTokens > 0 {
		req.MaxTokens = maxTokens
	}
	return req
}
