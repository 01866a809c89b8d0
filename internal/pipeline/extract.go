package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/carebridge/carebridge/internal/platform/llm"
)

// maxContextTurns bounds how much of the transcript is sent for extraction.
const maxContextTurns = 5

const extractionPrompt = `You are a medical information extraction system. Today's date is %s. Analyze the conversation below and extract any timeline-worthy events.

Extract the following types of events:
1. **Symptoms** - When the patient mentions symptoms, especially with dates (e.g., "chest pain started on January 31, 2026")
2. **Appointments** - When appointments are mentioned, scheduled, or missed
3. **Medications** - When medications are mentioned, started, stopped, or changed

For each event, extract:
- type: one of "symptom", "appointment", "medication"
- title: A concise title (e.g., "Chest pain started", "Appointment scheduled", "Started Metformin")
- date: The date mentioned (if any) in ISO format (YYYY-MM-DD), resolving relative phrases like "yesterday" against today's date, or null if not mentioned
- details: Additional context as a dictionary with relevant fields

Return ONLY valid JSON in this exact format (array of events, empty array if none found):
[
  {
    "type": "symptom",
    "title": "Chest pain started",
    "date": "2026-01-31",
    "details": {
      "description": "Patient reported chest tightness",
      "severity": "moderate",
      "duration": "ongoing"
    }
  }
]

If no timeline events are found, return an empty array: []

Be precise - only extract events that are clearly mentioned in the conversation.`

// RawEvent is one untrusted item from the model's JSON array, before
// normalization.
type RawEvent map[string]interface{}

// Extractor derives structured events from conversation text via an LLM.
type Extractor struct {
	client llm.Client
	now    func() time.Time
}

func NewExtractor(client llm.Client) *Extractor {
	return &Extractor{client: client, now: time.Now}
}

// Extract sends the recent conversation window plus the latest message to the
// model and decodes its response. Provider and parse failures are returned as
// errors so the caller can tell "nothing found" from "extraction failed".
func (e *Extractor) Extract(ctx context.Context, conversation []llm.Message, latest string) ([]RawEvent, error) {
	window := conversation
	if len(window) > maxContextTurns {
		window = window[len(window)-maxContextTurns:]
	}

	var b strings.Builder
	for _, msg := range window {
		fmt.Fprintf(&b, "%s: %s\n", strings.ToUpper(msg.Role), msg.Content)
	}
	if latest != "" {
		fmt.Fprintf(&b, "USER: %s\n", latest)
	}

	prompt := fmt.Sprintf(extractionPrompt, e.now().UTC().Format("2006-01-02"))
	msgs := []llm.Message{
		{Role: llm.RoleSystem, Content: "You are a JSON extraction system. Return only valid JSON, no other text."},
		{Role: llm.RoleUser, Content: prompt + "\n\nConversation:\n" + b.String() + "\nExtracted events (JSON only):"},
	}

	text, err := e.client.Complete(ctx, msgs, 0)
	if err != nil {
		return nil, fmt.Errorf("extraction completion: %w", err)
	}
	return decodeEvents(strings.TrimSpace(text))
}

// decodeEvents recovers a JSON array from an untrusted model response.
// Strategies, in order: balanced-bracket slice, whole response, fenced code
// block body.
func decodeEvents(text string) ([]RawEvent, error) {
	if slice := balancedArray(text); slice != "" {
		if events, ok := parseEvents(slice); ok {
			return events, nil
		}
	}
	if events, ok := parseEvents(text); ok {
		return events, nil
	}
	if body := fencedBlock(text); body != "" {
		if events, ok := parseEvents(body); ok {
			return events, nil
		}
	}
	return nil, fmt.Errorf("no JSON array in model response: %s", truncate(text, 200))
}

func parseEvents(text string) ([]RawEvent, bool) {
	var items []interface{}
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, false
	}
	events := make([]RawEvent, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]interface{}); ok {
			events = append(events, RawEvent(m))
		}
	}
	return events, true
}

// balancedArray returns the substring from the first '[' to its matching ']',
// tracking bracket depth and skipping brackets inside JSON strings. Empty
// string when no balanced array exists.
func balancedArray(text string) string {
	start := strings.IndexByte(text, '[')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

// fencedBlock returns the body of the first ``` fence, with an optional
// language tag stripped.
func fencedBlock(text string) string {
	start := strings.Index(text, "```")
	if start < 0 {
		return ""
	}
	rest := text[start+3:]
	end := strings.Index(rest, "```")
	if end < 0 {
		return ""
	}
	body := rest[:end]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 && !strings.ContainsAny(body[:nl], "[{") {
		body = body[nl+1:]
	}
	return strings.TrimSpace(body)
}
