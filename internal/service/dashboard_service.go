package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/avellar-lune/academy-records/internal/models"
	appErrors "github.com/avellar-lune/academy-records/pkg/errors"
)

type statsReader interface {
	Counts(ctx context.Context) (*models.Counts, error)
}

type activityReader interface {
	Recent(ctx context.Context) ([]models.Activity, error)
}

// DashboardSummary is the aggregate payload backing the summary view.
type DashboardSummary struct {
	Counts   models.Counts     `json:"counts"`
	Activity []models.Activity `json:"activity"`
}

// DashboardService composes record counts with the recent activity feed.
type DashboardService struct {
	stats    statsReader
	activity activityReader
	logger   *zap.Logger
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(stats statsReader, activity activityReader, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{stats: stats, activity: activity, logger: logger}
}

// Counts returns aggregate record totals.
func (s *DashboardService) Counts(ctx context.Context) (*models.Counts, error) {
	counts, err := s.stats.Counts(ctx)
	if err != nil {
		return nil, appErrors.Storage(err, "failed to count records")
	}
	return counts, nil
}

// Summary returns counts plus the recent activity feed.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	counts, err := s.Counts(ctx)
	if err != nil {
		return nil, err
	}
	activity, err := s.activity.Recent(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardSummary{Counts: *counts, Activity: activity}, nil
}
