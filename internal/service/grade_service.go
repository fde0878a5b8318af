package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/avellar-lune/academy-records/internal/models"
	appErrors "github.com/avellar-lune/academy-records/pkg/errors"
)

type gradeRepository interface {
	List(ctx context.Context, filter models.GradeFilter) ([]models.GradeDetail, error)
	ListByEnrollment(ctx context.Context, enrollmentID int64) ([]models.Grade, error)
	Create(ctx context.Context, grade *models.Grade) error
}

type enrollmentReader interface {
	FindDetailByID(ctx context.Context, id int64) (*models.EnrollmentDetail, error)
}

// AssignGradeRequest represents a single grade entry payload.
type AssignGradeRequest struct {
	EnrollmentID int64   `json:"enrollment_id" validate:"required"`
	Grade        float64 `json:"grade"`
}

// GradeService orchestrates grade entry and listing flows.
type GradeService struct {
	repo        gradeRepository
	enrollments enrollmentReader
	activity    activityRecorder
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewGradeService constructs GradeService.
func NewGradeService(repo gradeRepository, enrollments enrollmentReader, activity activityRecorder, validate *validator.Validate, logger *zap.Logger) *GradeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{repo: repo, enrollments: enrollments, activity: activity, validator: validate, logger: logger}
}

// List returns grade entries joined with student and course names,
// optionally narrowed to an exact student and/or course.
func (s *GradeService) List(ctx context.Context, filter models.GradeFilter) ([]models.GradeDetail, error) {
	grades, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Storage(err, "failed to list grades")
	}
	return grades, nil
}

// History returns the grade entries for one enrollment, oldest first.
func (s *GradeService) History(ctx context.Context, enrollmentID int64) ([]models.Grade, error) {
	if _, err := s.enrollments.FindDetailByID(ctx, enrollmentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return nil, appErrors.Storage(err, "failed to load enrollment")
	}
	grades, err := s.repo.ListByEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, appErrors.Storage(err, "failed to list enrollment grades")
	}
	return grades, nil
}

// Assign appends a new grade entry for an enrollment. Values outside
// [0, 100] are rejected; prior entries are never overwritten.
func (s *GradeService) Assign(ctx context.Context, req AssignGradeRequest) (*models.Grade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "enrollment is required")
	}
	if req.Grade < models.GradeMin || req.Grade > models.GradeMax {
		return nil, appErrors.Clone(appErrors.ErrGradeOutOfRange, "")
	}
	detail, err := s.enrollments.FindDetailByID(ctx, req.EnrollmentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return nil, appErrors.Storage(err, "failed to load enrollment")
	}
	grade := &models.Grade{EnrollmentID: req.EnrollmentID, Grade: req.Grade}
	if err := s.repo.Create(ctx, grade); err != nil {
		return nil, appErrors.Storage(err, "failed to create grade")
	}
	s.activity.Record(ctx, "Assigned grade %g to %s for %s", grade.Grade, detail.StudentName, detail.CourseName)
	return grade, nil
}
