package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/htmw/2025Su-ByteSquad/internal/domain"
	"github.com/htmw/2025Su-ByteSquad/internal/repository"
	apperrors "github.com/htmw/2025Su-ByteSquad/pkg/errors"
)

// SupplementService serves the supplement catalog.
type SupplementService struct {
	repo   repository.SupplementRepository
	logger *slog.Logger
}

// NewSupplementService creates a new supplement service.
func NewSupplementService(repo repository.SupplementRepository, logger *slog.Logger) *SupplementService {
	return &SupplementService{
		repo:   repo,
		logger: logger,
	}
}

// List returns available supplements, optionally filtered by category.
func (s *SupplementService) List(ctx context.Context, category string) ([]domain.Supplement, error) {
	supplements, err := s.repo.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list supplements: %w", err)
	}
	return supplements, nil
}

// GetByID returns a single supplement.
func (s *SupplementService) GetByID(ctx context.Context, id string) (*domain.Supplement, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("supplement id is required")
	}

	supplement, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get supplement: %w", err)
	}

	return supplement, nil
}
