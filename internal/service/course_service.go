package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/avellar-lune/academy-records/internal/models"
	appErrors "github.com/avellar-lune/academy-records/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error)
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	FindByName(ctx context.Context, name string) ([]models.Course, error)
	ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error)
	Roster(ctx context.Context, courseID int64) ([]models.CourseEnrollment, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	DeleteCascade(ctx context.Context, id int64) error
}

// CreateCourseRequest holds payload for creating courses. Credits is a
// pointer so an omitted value falls back to the default; a non-integer
// JSON number is rejected at decode time rather than coerced.
type CreateCourseRequest struct {
	Code       string `json:"code" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Department string `json:"department"`
	Credits    *int   `json:"credits" validate:"omitempty,gte=0"`
	Instructor string `json:"instructor"`
	Schedule   string `json:"schedule"`
	Room       string `json:"room"`
}

// UpdateCourseRequest holds payload for updating courses.
type UpdateCourseRequest struct {
	Code       string `json:"code" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Department string `json:"department"`
	Credits    *int   `json:"credits" validate:"omitempty,gte=0"`
	Instructor string `json:"instructor"`
	Schedule   string `json:"schedule"`
	Room       string `json:"room"`
}

// CourseService handles course use-cases.
type CourseService struct {
	repo      courseRepository
	activity  activityRecorder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(repo courseRepository, activity activityRecorder, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, activity: activity, validator: validate, logger: logger}
}

// List returns courses matching the optional search filter.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	courses, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Storage(err, "failed to list courses")
	}
	return courses, nil
}

// Get returns a course together with its roster.
func (s *CourseService) Get(ctx context.Context, id int64) (*models.CourseDetail, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Storage(err, "failed to load course")
	}
	roster, err := s.repo.Roster(ctx, id)
	if err != nil {
		return nil, appErrors.Storage(err, "failed to load course roster")
	}
	return &models.CourseDetail{Course: *course, Students: roster}, nil
}

// FindByName resolves a course name to exactly one course. Zero
// matches is a not-found condition; several matches are rejected as
// ambiguous instead of silently picking one.
func (s *CourseService) FindByName(ctx context.Context, name string) (*models.Course, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name is required")
	}
	matches, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, appErrors.Storage(err, "failed to look up course")
	}
	switch len(matches) {
	case 0:
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	case 1:
		course := matches[0]
		return &course, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrAmbiguousName, "name matches more than one course")
	}
}

// Create registers a new course. Credits defaults to
// models.DefaultCourseCredits when omitted.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "course code and name are required")
	}
	exists, err := s.repo.ExistsByCode(ctx, req.Code, 0)
	if err != nil {
		return nil, appErrors.Storage(err, "failed to validate code")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicateCode, "")
	}
	credits := models.DefaultCourseCredits
	if req.Credits != nil {
		credits = *req.Credits
	}
	course := &models.Course{
		Code:       req.Code,
		Name:       req.Name,
		Department: req.Department,
		Credits:    credits,
		Instructor: req.Instructor,
		Schedule:   req.Schedule,
		Room:       req.Room,
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Storage(err, "failed to create course")
	}
	s.activity.Record(ctx, "Added course: %s - %s", course.Code, course.Name)
	return course, nil
}

// Update modifies an existing course record.
func (s *CourseService) Update(ctx context.Context, id int64, req UpdateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "course code and name are required")
	}
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Storage(err, "failed to load course")
	}
	exists, err := s.repo.ExistsByCode(ctx, req.Code, id)
	if err != nil {
		return nil, appErrors.Storage(err, "failed to validate code")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicateCode, "")
	}
	course.Code = req.Code
	course.Name = req.Name
	course.Department = req.Department
	if req.Credits != nil {
		course.Credits = *req.Credits
	}
	course.Instructor = req.Instructor
	course.Schedule = req.Schedule
	course.Room = req.Room
	if err := s.repo.Update(ctx, course); err != nil {
		return nil, appErrors.Storage(err, "failed to update course")
	}
	s.activity.Record(ctx, "Updated course: %s - %s", course.Code, course.Name)
	return course, nil
}

// Delete removes a course and cascades through its enrollments and
// grades atomically.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return appErrors.Storage(err, "failed to load course")
	}
	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		return appErrors.Storage(err, "failed to delete course")
	}
	s.activity.Record(ctx, "Deleted course: %s", course.Name)
	return nil
}
