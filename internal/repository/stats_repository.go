package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/avellar-lune/academy-records/internal/models"
)

// StatsRepository answers aggregate count queries for the dashboard.
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository constructs the repository.
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Counts returns record totals across the three primary tables.
func (r *StatsRepository) Counts(ctx context.Context) (*models.Counts, error) {
	const query = `SELECT
        (SELECT COUNT(*) FROM students) AS students,
        (SELECT COUNT(*) FROM courses) AS courses,
        (SELECT COUNT(*) FROM enrollments) AS enrollments`
	var counts models.Counts
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}
	return &counts, nil
}
