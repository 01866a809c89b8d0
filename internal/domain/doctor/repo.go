package doctor

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/carebridge/carebridge/internal/domain/patient"
)

// ErrUserTaken is returned by Create when the user already has a doctor record.
var ErrUserTaken = errors.New("doctor already exists for user")

type Repository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Doctor, error)
	// Connect links a patient and a doctor by user id. Returns false when the
	// link already existed.
	Connect(ctx context.Context, patientUserID, doctorUserID uuid.UUID) (bool, error)
	// Disconnect removes the link, pgx.ErrNoRows when it did not exist.
	Disconnect(ctx context.Context, patientUserID, doctorUserID uuid.UUID) error
	ListPatients(ctx context.Context, doctorUserID uuid.UUID, limit, offset int) ([]*patient.Patient, int, error)
	ListDoctors(ctx context.Context, patientUserID uuid.UUID, limit, offset int) ([]*Doctor, int, error)
}
