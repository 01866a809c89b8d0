package patient

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

var validRiskLevels = map[string]bool{
	"low": true, "medium": true, "high": true,
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if p.Age < 0 {
		return fmt.Errorf("age must not be negative")
	}
	if p.RiskLevel == "" {
		p.RiskLevel = "low"
	}
	if !validRiskLevels[p.RiskLevel] {
		return fmt.Errorf("invalid risk_level: %s", p.RiskLevel)
	}
	if p.Conditions == nil {
		p.Conditions = []string{}
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByUserID(ctx context.Context, userID uuid.UUID) (*Patient, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) SearchByName(ctx context.Context, name string, limit, offset int) ([]*Patient, int, error) {
	if strings.TrimSpace(name) == "" {
		return nil, 0, fmt.Errorf("name is required")
	}
	return s.repo.SearchByName(ctx, name, limit, offset)
}

func (s *Service) UpdateRiskLevel(ctx context.Context, id uuid.UUID, level string) error {
	if !validRiskLevels[level] {
		return fmt.Errorf("invalid risk_level: %s", level)
	}
	return s.repo.UpdateRiskLevel(ctx, id, level)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
