package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avellar-lune/academy-records/internal/models"
)

type mockActivityRepo struct {
	entries   []models.Activity
	insertErr error
	listErr   error
	lastLimit int
}

func (m *mockActivityRepo) Insert(ctx context.Context, activity *models.Activity) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	activity.ID = int64(len(m.entries) + 1)
	m.entries = append(m.entries, *activity)
	return nil
}

func (m *mockActivityRepo) ListRecent(ctx context.Context, limit int) ([]models.Activity, error) {
	m.lastLimit = limit
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]models.Activity, len(m.entries))
	for i, e := range m.entries {
		out[len(m.entries)-1-i] = e
	}
	return out, nil
}

// recorder is the activity stub shared by the other service tests.
type recorder struct {
	messages []string
}

func (r *recorder) Record(ctx context.Context, format string, args ...interface{}) {
	r.messages = append(r.messages, fmt.Sprintf(format, args...))
}

func TestActivityServiceRecord(t *testing.T) {
	repo := &mockActivityRepo{}
	svc := NewActivityService(repo, 20, zap.NewNop())

	svc.Record(context.Background(), "Added student: %s", "Ana Silva")
	require.Len(t, repo.entries, 1)
	assert.Equal(t, "Added student: Ana Silva", repo.entries[0].Message)
}

func TestActivityServiceRecordSwallowsInsertFailure(t *testing.T) {
	repo := &mockActivityRepo{insertErr: assert.AnError}
	svc := NewActivityService(repo, 20, zap.NewNop())

	svc.Record(context.Background(), "Added student: %s", "Ana Silva")
	assert.Empty(t, repo.entries)
}

func TestActivityServiceRecent(t *testing.T) {
	repo := &mockActivityRepo{}
	svc := NewActivityService(repo, 5, zap.NewNop())
	svc.Record(context.Background(), "first")
	svc.Record(context.Background(), "second")

	activities, err := svc.Recent(context.Background())
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, "second", activities[0].Message)
	assert.Equal(t, 5, repo.lastLimit)
}
