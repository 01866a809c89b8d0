package pipeline

import "time"

// defaultTitle fills in for events the model returned without one.
const defaultTitle = "Untitled event"

// extractableTypes is what the model may produce. Alert and chat entries are
// created by the orchestrator itself, never accepted from extraction.
var extractableTypes = map[string]bool{
	"symptom": true, "appointment": true, "medication": true,
}

// Event is a normalized timeline candidate. Every field is populated.
type Event struct {
	Type    string
	Title   string
	Date    time.Time
	Details map[string]interface{}
}

// Normalize validates and fills defaults on raw extracted items. Items with a
// missing or unrecognized type are dropped. A date is kept only when it is a
// strict YYYY-MM-DD calendar date; anything else becomes today.
func Normalize(raw []RawEvent, today time.Time) []Event {
	out := make([]Event, 0, len(raw))
	for _, item := range raw {
		if item == nil {
			continue
		}
		typ, _ := item["type"].(string)
		if !extractableTypes[typ] {
			continue
		}
		title, _ := item["title"].(string)
		if title == "" {
			title = defaultTitle
		}
		date := today
		if s, ok := item["date"].(string); ok {
			if parsed, err := time.Parse("2006-01-02", s); err == nil {
				date = parsed
			}
		}
		details, _ := item["details"].(map[string]interface{})
		if details == nil {
			details = map[string]interface{}{}
		}
		out = append(out, Event{Type: typ, Title: title, Date: date, Details: details})
	}
	return out
}
