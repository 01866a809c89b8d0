package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrUserTaken is returned by Create when the user already has a patient record.
var ErrUserTaken = errors.New("patient already exists for user")

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Patient, error)
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	SearchByName(ctx context.Context, name string, limit, offset int) ([]*Patient, int, error)
	UpdateRiskLevel(ctx context.Context, id uuid.UUID, level string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
