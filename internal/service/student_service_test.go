package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avellar-lune/academy-records/internal/models"
	appErrors "github.com/avellar-lune/academy-records/pkg/errors"
)

type mockStudentRepo struct {
	students map[int64]models.Student
	history  map[int64][]models.StudentEnrollment
	nextID   int64
	deleted  []int64
}

func (m *mockStudentRepo) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	out := make([]models.Student, 0, len(m.students))
	for _, s := range m.students {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	if s, ok := m.students[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) FindByFullName(ctx context.Context, name string) ([]models.Student, error) {
	var matches []models.Student
	for _, s := range m.students {
		if s.FullName() == name {
			matches = append(matches, s)
		}
	}
	return matches, nil
}

func (m *mockStudentRepo) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	for _, s := range m.students {
		if s.Email == email && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStudentRepo) EnrollmentHistory(ctx context.Context, studentID int64) ([]models.StudentEnrollment, error) {
	return m.history[studentID], nil
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) error {
	if m.students == nil {
		m.students = make(map[int64]models.Student)
	}
	if student.EnrollmentDate.IsZero() {
		student.EnrollmentDate = time.Now().UTC()
	}
	m.nextID++
	student.ID = m.nextID
	m.students[student.ID] = *student
	return nil
}

func (m *mockStudentRepo) Update(ctx context.Context, student *models.Student) error {
	m.students[student.ID] = *student
	return nil
}

func (m *mockStudentRepo) DeleteCascade(ctx context.Context, id int64) error {
	delete(m.students, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func TestStudentServiceCreate(t *testing.T) {
	repo := &mockStudentRepo{}
	activity := &recorder{}
	svc := NewStudentService(repo, activity, validator.New(), zap.NewNop())

	student, err := svc.Create(context.Background(), CreateStudentRequest{
		FirstName: "Ana",
		LastName:  "Silva",
		Email:     "ana@example.com",
		Phone:     "555-1234",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), student.ID)
	assert.False(t, student.EnrollmentDate.IsZero())
	assert.Contains(t, activity.messages, "Added student: Ana Silva")
}

func TestStudentServiceCreateMissingFields(t *testing.T) {
	svc := NewStudentService(&mockStudentRepo{}, &recorder{}, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateStudentRequest{FirstName: "Ana"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestStudentServiceCreateDuplicateEmail(t *testing.T) {
	repo := &mockStudentRepo{students: map[int64]models.Student{
		1: {ID: 1, FirstName: "Ana", LastName: "Silva", Email: "ana@example.com"},
	}}
	activity := &recorder{}
	svc := NewStudentService(repo, activity, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateStudentRequest{
		FirstName: "Other", LastName: "Person", Email: "ana@example.com",
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrDuplicateEmail.Code, appErr.Code)
	assert.Empty(t, activity.messages)
}

func TestStudentServiceUpdateKeepsOwnEmail(t *testing.T) {
	repo := &mockStudentRepo{students: map[int64]models.Student{
		1: {ID: 1, FirstName: "Ana", LastName: "Silva", Email: "ana@example.com"},
	}}
	svc := NewStudentService(repo, &recorder{}, validator.New(), zap.NewNop())

	updated, err := svc.Update(context.Background(), 1, UpdateStudentRequest{
		FirstName: "Ana", LastName: "Souza", Email: "ana@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Souza", updated.LastName)
}

func TestStudentServiceUpdateNotFound(t *testing.T) {
	svc := NewStudentService(&mockStudentRepo{}, &recorder{}, validator.New(), zap.NewNop())

	_, err := svc.Update(context.Background(), 42, UpdateStudentRequest{
		FirstName: "Ana", LastName: "Silva", Email: "ana@example.com",
	})
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestStudentServiceDelete(t *testing.T) {
	repo := &mockStudentRepo{students: map[int64]models.Student{
		1: {ID: 1, FirstName: "Ana", LastName: "Silva", Email: "ana@example.com"},
	}}
	activity := &recorder{}
	svc := NewStudentService(repo, activity, validator.New(), zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Contains(t, repo.deleted, int64(1))
	assert.Contains(t, activity.messages, "Deleted student: Ana Silva")

	err := svc.Delete(context.Background(), 1)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestStudentServiceGetWithEnrollments(t *testing.T) {
	repo := &mockStudentRepo{
		students: map[int64]models.Student{1: {ID: 1, FirstName: "Ana", LastName: "Silva", Email: "ana@example.com"}},
		history:  map[int64][]models.StudentEnrollment{1: {{CourseCode: "CS101", CourseName: "Intro to Computing"}}},
	}
	svc := NewStudentService(repo, &recorder{}, validator.New(), zap.NewNop())

	detail, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, detail.Enrollments, 1)
	assert.Equal(t, "CS101", detail.Enrollments[0].CourseCode)
}

func TestStudentServiceFindByName(t *testing.T) {
	repo := &mockStudentRepo{students: map[int64]models.Student{
		1: {ID: 1, FirstName: "Ana", LastName: "Silva", Email: "ana@example.com"},
		2: {ID: 2, FirstName: "Ana", LastName: "Silva", Email: "ana2@example.com"},
		3: {ID: 3, FirstName: "Ben", LastName: "Okafor", Email: "ben@example.com"},
	}}
	svc := NewStudentService(repo, &recorder{}, validator.New(), zap.NewNop())

	student, err := svc.FindByName(context.Background(), "Ben Okafor")
	require.NoError(t, err)
	assert.Equal(t, int64(3), student.ID)

	_, err = svc.FindByName(context.Background(), "Ana Silva")
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrAmbiguousName.Code, appErr.Code)

	_, err = svc.FindByName(context.Background(), "Nobody Here")
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
