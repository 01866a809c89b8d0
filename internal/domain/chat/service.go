package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/carebridge/carebridge/internal/platform/llm"
)

const systemPrompt = `You are CareBridge, a caring and empathetic AI health companion. ALWAYS respond with exactly 2 sentences: first acknowledge their concern briefly, then ask a specific follow-up question. For serious symptoms, recommend professional medical care. Be warm, concise, and never diagnose or prescribe treatments.`

const greetingText = "Hi, I'm CareBridge, your health companion. How are you feeling today?"

const closingMessage = "Take care of yourself! I've noted our conversation for your care team."

// defaultMaxTokens keeps replies to the two-sentence format.
const defaultMaxTokens = 100

type Service struct {
	client    llm.Client
	maxTokens int
}

func NewService(client llm.Client, maxTokens int) *Service {
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Service{client: client, maxTokens: maxTokens}
}

// StreamReply streams the assistant's reply to the conversation.
func (s *Service) StreamReply(ctx context.Context, messages []llm.Message) (<-chan string, error) {
	msgs := make([]llm.Message, 0, len(messages)+1)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	msgs = append(msgs, messages...)
	return s.client.Stream(ctx, msgs, s.maxTokens)
}

// Greeting returns the fixed opening line for a new session.
func (s *Service) Greeting() string {
	return greetingText
}

// EndSession produces the closing message and a short care-team summary of
// the conversation.
func (s *Service) EndSession(ctx context.Context, messages []llm.Message) (string, string, error) {
	if len(messages) == 0 {
		return closingMessage, "", nil
	}
	var b strings.Builder
	for _, msg := range messages {
		fmt.Fprintf(&b, "%s: %s\n", strings.ToUpper(msg.Role), msg.Content)
	}
	summary, err := s.client.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: "You summarize patient health conversations for their care team. Be factual and concise."},
		{Role: llm.RoleUser, Content: "Summarize this conversation in 2-3 sentences, noting symptoms, medications, and follow-ups mentioned:\n\n" + b.String()},
	}, 0)
	if err != nil {
		return "", "", fmt.Errorf("session summary: %w", err)
	}
	return closingMessage, strings.TrimSpace(summary), nil
}
