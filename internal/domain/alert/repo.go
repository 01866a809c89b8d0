package alert

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Alert) error
	GetByID(ctx context.Context, id uuid.UUID) (*Alert, error)
	// ListByPatient returns a patient's alerts, critical first, newest first
	// within each severity.
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Alert, int, error)
	// ListByDoctor returns alerts for every patient linked to the doctor.
	ListByDoctor(ctx context.Context, doctorUserID uuid.UUID, limit, offset int) ([]*Alert, int, error)
	// Acknowledge marks the alert acknowledged, pgx.ErrNoRows when missing.
	Acknowledge(ctx context.Context, id uuid.UUID) error
}
