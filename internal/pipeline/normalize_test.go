package pipeline

import (
	"testing"
	"time"
)

var today = time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

func TestNormalize_KeepsValidEvent(t *testing.T) {
	raw := []RawEvent{{
		"type":    "symptom",
		"title":   "Headache",
		"date":    "2024-01-15",
		"details": map[string]interface{}{"severity": "mild"},
	}}
	out := Normalize(raw, today)
	if len(out) != 1 {
		t.Fatalf("expected 1 event, got %d", len(out))
	}
	ev := out[0]
	if ev.Type != "symptom" || ev.Title != "Headache" {
		t.Errorf("unexpected event: %+v", ev)
	}
	if !ev.Date.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected parsed date, got %v", ev.Date)
	}
	if ev.Details["severity"] != "mild" {
		t.Errorf("expected details kept, got %v", ev.Details)
	}
}

func TestNormalize_FillsDefaults(t *testing.T) {
	out := Normalize([]RawEvent{{"type": "medication"}}, today)
	if len(out) != 1 {
		t.Fatalf("expected 1 event, got %d", len(out))
	}
	ev := out[0]
	if ev.Title != "Untitled event" {
		t.Errorf("expected default title, got %q", ev.Title)
	}
	if !ev.Date.Equal(today) {
		t.Errorf("expected today for missing date, got %v", ev.Date)
	}
	if ev.Details == nil || len(ev.Details) != 0 {
		t.Errorf("expected empty details, got %v", ev.Details)
	}
}

func TestNormalize_DropsUnknownTypes(t *testing.T) {
	raw := []RawEvent{
		{"type": "labresult", "title": "X"},
		{"type": "alert", "title": "not extractable"},
		{"title": "no type at all"},
		{"type": "symptom", "title": "kept"},
	}
	out := Normalize(raw, today)
	if len(out) != 1 || out[0].Title != "kept" {
		t.Errorf("expected only the symptom event, got %+v", out)
	}
}

func TestNormalize_InvalidDateBecomesToday(t *testing.T) {
	tests := []string{"2024-13-40", "yesterday", "01/15/2024", ""}
	for _, d := range tests {
		out := Normalize([]RawEvent{{"type": "symptom", "title": "x", "date": d}}, today)
		if len(out) != 1 {
			t.Fatalf("date %q: expected 1 event", d)
		}
		if !out[0].Date.Equal(today) {
			t.Errorf("date %q: expected today substitution, got %v", d, out[0].Date)
		}
	}
}

func TestNormalize_NonMapDetailsBecomeEmpty(t *testing.T) {
	out := Normalize([]RawEvent{{"type": "symptom", "title": "x", "details": "just a string"}}, today)
	if len(out) != 1 {
		t.Fatalf("expected 1 event, got %d", len(out))
	}
	if len(out[0].Details) != 0 {
		t.Errorf("expected empty details, got %v", out[0].Details)
	}
}

func TestNormalize_EmptyInput(t *testing.T) {
	if out := Normalize(nil, today); len(out) != 0 {
		t.Errorf("expected empty output, got %+v", out)
	}
}
