package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/avellar-lune/academy-records/internal/models"
	appErrors "github.com/avellar-lune/academy-records/pkg/errors"
	"github.com/avellar-lune/academy-records/pkg/export"
)

type studentLister interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
}

type courseLister interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// Export formats accepted by the roster export endpoints.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

const exportDateLayout = "2006-01-02"

// ExportFile is a rendered roster export ready to serve.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders full student and course projections into
// downloadable files with a fixed header row and column order.
type ExportService struct {
	students studentLister
	courses  courseLister
	csv      csvRenderer
	pdf      pdfRenderer
	activity activityRecorder
	logger   *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(students studentLister, courses courseLister, activity activityRecorder, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{students: students, courses: courses, activity: activity, logger: logger, csv: csv, pdf: pdf}
}

// Students renders the full student table.
func (s *ExportService) Students(ctx context.Context, format string) (*ExportFile, error) {
	students, err := s.students.List(ctx, models.StudentFilter{})
	if err != nil {
		return nil, appErrors.Storage(err, "failed to list students")
	}
	dataset := export.Dataset{
		Headers: []string{"ID", "First Name", "Last Name", "Email", "Phone", "Date of Birth", "Address", "Enrollment Date"},
		Rows:    make([][]string, 0, len(students)),
	}
	for _, student := range students {
		dataset.Rows = append(dataset.Rows, []string{
			strconv.FormatInt(student.ID, 10),
			student.FirstName,
			student.LastName,
			student.Email,
			student.Phone,
			student.DateOfBirth,
			student.Address,
			student.EnrollmentDate.Format(exportDateLayout),
		})
	}
	file, err := s.render(dataset, "students", format)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "Exported students to %s", strings.ToUpper(format))
	return file, nil
}

// Courses renders the full course table.
func (s *ExportService) Courses(ctx context.Context, format string) (*ExportFile, error) {
	courses, err := s.courses.List(ctx, models.CourseFilter{})
	if err != nil {
		return nil, appErrors.Storage(err, "failed to list courses")
	}
	dataset := export.Dataset{
		Headers: []string{"ID", "Code", "Name", "Department", "Credits", "Instructor", "Schedule", "Room"},
		Rows:    make([][]string, 0, len(courses)),
	}
	for _, course := range courses {
		dataset.Rows = append(dataset.Rows, []string{
			strconv.FormatInt(course.ID, 10),
			course.Code,
			course.Name,
			course.Department,
			strconv.Itoa(course.Credits),
			course.Instructor,
			course.Schedule,
			course.Room,
		})
	}
	file, err := s.render(dataset, "courses", format)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "Exported courses to %s", strings.ToUpper(format))
	return file, nil
}

func (s *ExportService) render(dataset export.Dataset, name, format string) (*ExportFile, error) {
	switch format {
	case ExportFormatCSV, "":
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportFile{Filename: name + ".csv", ContentType: "text/csv", Payload: payload}, nil
	case ExportFormatPDF:
		payload, err := s.pdf.Render(dataset, "Academy "+name)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportFile{Filename: name + ".pdf", ContentType: "application/pdf", Payload: payload}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}
