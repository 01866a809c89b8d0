package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/carebridge/carebridge/internal/domain/alert"
	"github.com/carebridge/carebridge/internal/domain/timeline"
	"github.com/carebridge/carebridge/internal/platform/llm"
	"github.com/carebridge/carebridge/internal/platform/ws"
)

// maxQuoteLen caps how much of a patient message is copied into alerts and
// fallback timeline entries.
const maxQuoteLen = 200

const highRiskReasoning = "High-risk keywords detected in patient message"

type AlertStore interface {
	Create(ctx context.Context, a *alert.Alert) error
}

type TimelineStore interface {
	Add(ctx context.Context, e *timeline.Event) error
}

type RiskUpdater interface {
	UpdateRiskLevel(ctx context.Context, id uuid.UUID, level string) error
}

// Orchestrator runs the post-turn pipeline: risk triage, event extraction,
// and persistence. It is invoked after the assistant reply has been streamed
// and none of its failures reach the chat caller.
type Orchestrator struct {
	alerts    AlertStore
	events    TimelineStore
	patients  RiskUpdater
	extractor *Extractor
	publisher ws.EventPublisher
	log       zerolog.Logger
	now       func() time.Time
}

func NewOrchestrator(
	alerts AlertStore,
	events TimelineStore,
	patients RiskUpdater,
	extractor *Extractor,
	publisher ws.EventPublisher,
	logger zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		alerts:    alerts,
		events:    events,
		patients:  patients,
		extractor: extractor,
		publisher: publisher,
		log:       logger,
		now:       time.Now,
	}
}

// ProcessTurn handles one completed chat turn. Each step is wrapped
// individually so a failure in one never stops the others.
func (o *Orchestrator) ProcessTurn(ctx context.Context, patientID uuid.UUID, conversation []llm.Message, latest string) {
	log := o.log.With().Stringer("patient_id", patientID).Logger()

	// Step 1: keyword risk triage on the latest message.
	if level := AssessRisk(latest); level == RiskHigh {
		reasoning := highRiskReasoning
		a := &alert.Alert{
			PatientID: patientID,
			Severity:  "critical",
			Message:   truncate(latest, maxQuoteLen),
			Reasoning: &reasoning,
		}
		if err := o.alerts.Create(ctx, a); err != nil {
			log.Error().Err(err).Msg("alert create failed")
		} else {
			o.publish(ctx, "alert.created", patientID, a)
		}
		if err := o.patients.UpdateRiskLevel(ctx, patientID, string(RiskHigh)); err != nil {
			log.Error().Err(err).Msg("risk level update failed")
		}
	}

	// Step 2: extract, normalize, persist.
	var persisted int
	raw, err := o.extractor.Extract(ctx, conversation, latest)
	if err != nil {
		log.Warn().Err(err).Msg("event extraction failed")
	}
	for _, ev := range Normalize(raw, o.now().UTC()) {
		e := &timeline.Event{
			PatientID: patientID,
			Type:      ev.Type,
			Title:     ev.Title,
			Details:   timeline.Details(ev.Details),
			CreatedAt: ev.Date,
		}
		if err := o.events.Add(ctx, e); err != nil {
			log.Error().Err(err).Str("type", ev.Type).Msg("timeline event create failed")
			continue
		}
		persisted++
		o.publish(ctx, "timeline.created", patientID, e)
	}

	// Step 3: fallback entry so every turn leaves a trace.
	if persisted == 0 {
		e := &timeline.Event{
			PatientID: patientID,
			Type:      "chat",
			Title:     "Chat check-in",
			Details:   timeline.Details{"text": truncate(latest, maxQuoteLen)},
			CreatedAt: o.now().UTC(),
		}
		if err := o.events.Add(ctx, e); err != nil {
			log.Error().Err(err).Msg("fallback chat event create failed")
		} else {
			o.publish(ctx, "timeline.created", patientID, e)
		}
	}
}

func (o *Orchestrator) publish(ctx context.Context, eventType string, patientID uuid.UUID, payload interface{}) {
	if o.publisher == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	ev := ws.Event{
		Type:      eventType,
		Topic:     ws.PatientTopic(patientID.String()),
		PatientID: patientID.String(),
		Timestamp: o.now().UTC(),
		Data:      data,
	}
	if err := o.publisher.Publish(ctx, ev); err != nil {
		o.log.Warn().Err(err).Str("event", eventType).Msg("event publish failed")
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
