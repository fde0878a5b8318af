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

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	FindByFullName(ctx context.Context, name string) ([]models.Student, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	EnrollmentHistory(ctx context.Context, studentID int64) ([]models.StudentEnrollment, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	DeleteCascade(ctx context.Context, id int64) error
}

type activityRecorder interface {
	Record(ctx context.Context, format string, args ...interface{})
}

// CreateStudentRequest holds payload for creating students.
type CreateStudentRequest struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Email       string `json:"email" validate:"required"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth"`
	Address     string `json:"address"`
}

// UpdateStudentRequest holds payload for updating students. Field
// validation matches create; the uniqueness check excludes the row
// being updated.
type UpdateStudentRequest struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Email       string `json:"email" validate:"required"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth"`
	Address     string `json:"address"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	activity  activityRecorder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, activity activityRecorder, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, activity: activity, validator: validate, logger: logger}
}

// List returns students matching the optional search filter.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	students, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Storage(err, "failed to list students")
	}
	return students, nil
}

// Get returns a student together with its enrollment history.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.StudentDetail, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Storage(err, "failed to load student")
	}
	history, err := s.repo.EnrollmentHistory(ctx, id)
	if err != nil {
		return nil, appErrors.Storage(err, "failed to load student enrollments")
	}
	return &models.StudentDetail{Student: *student, Enrollments: history}, nil
}

// FindByName resolves a display name to exactly one student. Zero
// matches is a not-found condition; several matches are rejected as
// ambiguous instead of silently picking one.
func (s *StudentService) FindByName(ctx context.Context, name string) (*models.Student, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name is required")
	}
	matches, err := s.repo.FindByFullName(ctx, name)
	if err != nil {
		return nil, appErrors.Storage(err, "failed to look up student")
	}
	switch len(matches) {
	case 0:
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	case 1:
		student := matches[0]
		return &student, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrAmbiguousName, "name matches more than one student")
	}
}

// Create registers a new student.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "first name, last name and email are required")
	}
	exists, err := s.repo.ExistsByEmail(ctx, req.Email, 0)
	if err != nil {
		return nil, appErrors.Storage(err, "failed to validate email")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicateEmail, "")
	}
	student := &models.Student{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		DateOfBirth: req.DateOfBirth,
		Address:     req.Address,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Storage(err, "failed to create student")
	}
	s.activity.Record(ctx, "Added student: %s", student.FullName())
	return student, nil
}

// Update modifies an existing student record.
func (s *StudentService) Update(ctx context.Context, id int64, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "first name, last name and email are required")
	}
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Storage(err, "failed to load student")
	}
	exists, err := s.repo.ExistsByEmail(ctx, req.Email, id)
	if err != nil {
		return nil, appErrors.Storage(err, "failed to validate email")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicateEmail, "")
	}
	student.FirstName = req.FirstName
	student.LastName = req.LastName
	student.Email = req.Email
	student.Phone = req.Phone
	student.DateOfBirth = req.DateOfBirth
	student.Address = req.Address
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, appErrors.Storage(err, "failed to update student")
	}
	s.activity.Record(ctx, "Updated student: %s", student.FullName())
	return student, nil
}

// Delete removes a student and cascades through its enrollments and
// grades atomically.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Storage(err, "failed to load student")
	}
	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		return appErrors.Storage(err, "failed to delete student")
	}
	s.activity.Record(ctx, "Deleted student: %s", student.FullName())
	return nil
}
