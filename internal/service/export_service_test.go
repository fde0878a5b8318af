package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avellar-lune/academy-records/internal/models"
	appErrors "github.com/avellar-lune/academy-records/pkg/errors"
)

type staticStudentLister struct {
	students []models.Student
}

func (s *staticStudentLister) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	return s.students, nil
}

type staticCourseLister struct {
	courses []models.Course
}

func (s *staticCourseLister) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	return s.courses, nil
}

func newExportFixture() (*ExportService, *recorder) {
	students := &staticStudentLister{students: []models.Student{{
		ID:             1,
		FirstName:      "Ana",
		LastName:       "Silva",
		Email:          "ana@example.com",
		Phone:          "555-1234",
		DateOfBirth:    "2001-04-12",
		Address:        "10 Oak St",
		EnrollmentDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
	}}}
	courses := &staticCourseLister{courses: []models.Course{{
		ID:         2,
		Code:       "MA201",
		Name:       "Linear Algebra",
		Department: "Mathematics",
		Credits:    4,
		Instructor: "Dr. Khan",
		Schedule:   "TT 11:00",
		Room:       "A-110",
	}}}
	activity := &recorder{}
	return NewExportService(students, courses, activity, zap.NewNop(), nil, nil), activity
}

func TestExportServiceStudentsCSV(t *testing.T) {
	svc, activity := newExportFixture()

	file, err := svc.Students(context.Background(), ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "students.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	lines := strings.Split(strings.TrimSpace(string(file.Payload)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ID,First Name,Last Name,Email,Phone,Date of Birth,Address,Enrollment Date", lines[0])
	assert.Equal(t, "1,Ana,Silva,ana@example.com,555-1234,2001-04-12,10 Oak St,2025-09-01", lines[1])
	assert.Contains(t, activity.messages, "Exported students to CSV")
}

func TestExportServiceCoursesCSV(t *testing.T) {
	svc, _ := newExportFixture()

	file, err := svc.Courses(context.Background(), ExportFormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(file.Payload)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ID,Code,Name,Department,Credits,Instructor,Schedule,Room", lines[0])
	assert.Equal(t, "2,MA201,Linear Algebra,Mathematics,4,Dr. Khan,TT 11:00,A-110", lines[1])
}

func TestExportServiceStudentsPDF(t *testing.T) {
	svc, activity := newExportFixture()

	file, err := svc.Students(context.Background(), ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "students.pdf", file.Filename)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Payload), "%PDF"))
	assert.Contains(t, activity.messages, "Exported students to PDF")
}

func TestExportServiceUnsupportedFormat(t *testing.T) {
	svc, activity := newExportFixture()

	_, err := svc.Students(context.Background(), "xlsx")
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Empty(t, activity.messages)
}
