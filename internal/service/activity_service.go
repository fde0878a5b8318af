package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/avellar-lune/academy-records/internal/models"
	appErrors "github.com/avellar-lune/academy-records/pkg/errors"
)

type activityRepository interface {
	Insert(ctx context.Context, activity *models.Activity) error
	ListRecent(ctx context.Context, limit int) ([]models.Activity, error)
}

// ActivityService records human-readable descriptions of successful
// mutations and serves the recent feed. Recording failures are logged
// and never fail the mutation that triggered them.
type ActivityService struct {
	repo   activityRepository
	logger *zap.Logger
	limit  int
}

// NewActivityService constructs the service. Limit caps the recent
// feed size; non-positive values fall back to 20.
func NewActivityService(repo activityRepository, limit int, logger *zap.Logger) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limit <= 0 {
		limit = 20
	}
	return &ActivityService{repo: repo, logger: logger, limit: limit}
}

// Record appends a formatted entry to the feed.
func (s *ActivityService) Record(ctx context.Context, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	if err := s.repo.Insert(ctx, &models.Activity{Message: message}); err != nil {
		s.logger.Warn("record activity", zap.String("message", message), zap.Error(err))
		return
	}
	s.logger.Info("activity", zap.String("message", message))
}

// Recent returns the newest entries, most recent first.
func (s *ActivityService) Recent(ctx context.Context) ([]models.Activity, error) {
	activities, err := s.repo.ListRecent(ctx, s.limit)
	if err != nil {
		return nil, appErrors.Storage(err, "failed to list activity")
	}
	return activities, nil
}
