package pipeline

import "strings"

// RiskLevel is the coarse triage classification for a single message.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

var highRiskKeywords = []string{
	"chest pain", "chest tightness", "difficulty breathing", "can't breathe",
	"severe pain", "unconscious", "fainted", "bleeding heavily", "suicidal",
	"want to die", "heart attack", "stroke", "seizure", "numbness",
}

var mediumRiskKeywords = []string{
	"fever", "persistent", "worsening", "dizzy", "nausea", "vomiting",
	"can't sleep", "insomnia", "anxiety", "anxious", "depressed",
	"shortness of breath", "headache", "migraine", "palpitations",
}

// AssessRisk classifies a message by keyword presence. High-risk phrases are
// checked first and win even when a medium-risk phrase also matches.
func AssessRisk(message string) RiskLevel {
	lower := strings.ToLower(message)
	for _, kw := range highRiskKeywords {
		if strings.Contains(lower, kw) {
			return RiskHigh
		}
	}
	for _, kw := range mediumRiskKeywords {
		if strings.Contains(lower, kw) {
			return RiskMedium
		}
	}
	return RiskLow
}
