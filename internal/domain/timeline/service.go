package timeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// validEventTypes is the full store enum. Extraction only produces the first
// three; alert and chat entries come from the processing pipeline itself.
var validEventTypes = map[string]bool{
	"symptom": true, "appointment": true, "medication": true,
	"alert": true, "chat": true,
}

func (s *Service) Add(ctx context.Context, e *Event) error {
	if e.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if !validEventTypes[e.Type] {
		return fmt.Errorf("invalid type: %s", e.Type)
	}
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if e.Details == nil {
		e.Details = Details{}
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	return s.repo.Create(ctx, e)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Event, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Event, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
