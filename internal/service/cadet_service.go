package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/ncc-parade-api/internal/models"
	appErrors "github.com/noah-isme/ncc-parade-api/pkg/errors"
)

// CadetService is a read-through over the roster, which is owned elsewhere.
type CadetService struct {
	repo   rosterReader
	logger *zap.Logger
}

// NewCadetService constructs the cadet service.
func NewCadetService(repo rosterReader, logger *zap.Logger) *CadetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CadetService{repo: repo, logger: logger}
}

// ListActive returns active cadets matching the filter.
func (s *CadetService) ListActive(ctx context.Context, filter models.CadetFilter) ([]models.Cadet, error) {
	cadets, err := s.repo.ListActive(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list cadets")
	}
	return cadets, nil
}
