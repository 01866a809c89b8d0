package alert

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var validSeverities = map[string]bool{
	"warning": true, "critical": true,
}

func (s *Service) Create(ctx context.Context, a *Alert) error {
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if strings.TrimSpace(a.Message) == "" {
		return fmt.Errorf("message is required")
	}
	if a.Severity == "" {
		a.Severity = "warning"
	}
	if !validSeverities[a.Severity] {
		return fmt.Errorf("invalid severity: %s", a.Severity)
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Alert, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Alert, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorUserID uuid.UUID, limit, offset int) ([]*Alert, int, error) {
	return s.repo.ListByDoctor(ctx, doctorUserID, limit, offset)
}

func (s *Service) Acknowledge(ctx context.Context, id uuid.UUID) error {
	return s.repo.Acknowledge(ctx, id)
}
