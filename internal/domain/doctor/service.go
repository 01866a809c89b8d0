package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carebridge/carebridge/internal/domain/patient"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, d *Doctor) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if d.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	return s.repo.Create(ctx, d)
}

func (s *Service) GetByUserID(ctx context.Context, userID uuid.UUID) (*Doctor, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// Connect links a patient and a doctor. Linking twice is not an error; the
// returned flag reports whether a new link was made.
func (s *Service) Connect(ctx context.Context, patientUserID, doctorUserID uuid.UUID) (bool, error) {
	if patientUserID == uuid.Nil || doctorUserID == uuid.Nil {
		return false, fmt.Errorf("patient_user_id and doctor_user_id are required")
	}
	return s.repo.Connect(ctx, patientUserID, doctorUserID)
}

func (s *Service) Disconnect(ctx context.Context, patientUserID, doctorUserID uuid.UUID) error {
	if patientUserID == uuid.Nil || doctorUserID == uuid.Nil {
		return fmt.Errorf("patient_user_id and doctor_user_id are required")
	}
	return s.repo.Disconnect(ctx, patientUserID, doctorUserID)
}

func (s *Service) ListPatients(ctx context.Context, doctorUserID uuid.UUID, limit, offset int) ([]*patient.Patient, int, error) {
	return s.repo.ListPatients(ctx, doctorUserID, limit, offset)
}

func (s *Service) ListDoctors(ctx context.Context, patientUserID uuid.UUID, limit, offset int) ([]*Doctor, int, error) {
	return s.repo.ListDoctors(ctx, patientUserID, limit, offset)
}
