package chat

import (
	"context"
	"strings"
	"testing"

	"github.com/carebridge/carebridge/internal/platform/llm"
)

type fakeLLM struct {
	chunks   []string
	complete string
	err      error
	got      []llm.Message
	gotMax   int
}

func (f *fakeLLM) Complete(_ context.Context, msgs []llm.Message, maxTokens int) (string, error) {
	f.got = msgs
	f.gotMax = maxTokens
	return f.complete, f.err
}

func (f *fakeLLM) Stream(_ context.Context, msgs []llm.Message, maxTokens int) (<-chan string, error) {
	f.got = msgs
	f.gotMax = maxTokens
	if f.err != nil {
		return nil, f.err
	}
	ch := make(chan string, len(f.chunks))
	for _, c := range f.chunks {
		ch <- c
	}
	close(ch)
	return ch, nil
}

func TestStreamReply_PrependsSystemPrompt(t *testing.T) {
	client := &fakeLLM{chunks: []string{"I hear you. ", "How long has this lasted?"}}
	svc := NewService(client, 0)
	ch, err := svc.StreamReply(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "my head hurts"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out strings.Builder
	for chunk := range ch {
		out.WriteString(chunk)
	}
	if out.String() != "I hear you. How long has this lasted?" {
		t.Errorf("unexpected reply: %q", out.String())
	}
	if client.got[0].Role != llm.RoleSystem || !strings.Contains(client.got[0].Content, "CareBridge") {
		t.Errorf("expected system prompt first, got %+v", client.got[0])
	}
	if client.got[1].Content != "my head hurts" {
		t.Errorf("expected user message preserved, got %+v", client.got[1])
	}
	if client.gotMax != defaultMaxTokens {
		t.Errorf("expected default max tokens %d, got %d", defaultMaxTokens, client.gotMax)
	}
}

func TestGreeting(t *testing.T) {
	svc := NewService(&fakeLLM{}, 0)
	if g := svc.Greeting(); !strings.Contains(g, "CareBridge") {
		t.Errorf("unexpected greeting: %q", g)
	}
}

func TestEndSession(t *testing.T) {
	client := &fakeLLM{complete: "Patient reported mild headaches. No medication changes."}
	svc := NewService(client, 0)
	closing, summary, err := svc.EndSession(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "I've had headaches"},
		{Role: llm.RoleAssistant, Content: "How long?"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if closing == "" {
		t.Error("expected closing message")
	}
	if summary != "Patient reported mild headaches. No medication changes." {
		t.Errorf("unexpected summary: %q", summary)
	}
	prompt := client.got[len(client.got)-1].Content
	if !strings.Contains(prompt, "USER: I've had headaches") {
		t.Errorf("expected transcript in summary prompt: %s", prompt)
	}
}

func TestEndSession_EmptyConversation(t *testing.T) {
	client := &fakeLLM{}
	svc := NewService(client, 0)
	closing, summary, err := svc.EndSession(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if closing == "" || summary != "" {
		t.Errorf("expected closing without summary, got %q / %q", closing, summary)
	}
	if client.got != nil {
		t.Error("expected no model call for empty conversation")
	}
}
