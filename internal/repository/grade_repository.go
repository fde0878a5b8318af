package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/avellar-lune/academy-records/internal/models"
)

// GradeRepository handles persistence of grade entries.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository constructs the repository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

// List returns grades joined across enrollments, students and courses.
// Filter fields narrow the listing to an exact student and/or course.
func (r *GradeRepository) List(ctx context.Context, filter models.GradeFilter) ([]models.GradeDetail, error) {
	query := `SELECT g.id, g.enrollment_id, g.grade, g.grade_date,
        s.first_name || ' ' || s.last_name AS student_name, c.name AS course_name
        FROM grades g
        JOIN enrollments e ON e.id = g.enrollment_id
        JOIN students s ON s.id = e.student_id
        JOIN courses c ON c.id = e.course_id`
	var conditions []string
	var args []interface{}
	if filter.StudentID != 0 {
		conditions = append(conditions, "e.student_id = ?")
		args = append(args, filter.StudentID)
	}
	if filter.CourseID != 0 {
		conditions = append(conditions, "e.course_id = ?")
		args = append(args, filter.CourseID)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY g.id"

	var grades []models.GradeDetail
	if err := r.db.SelectContext(ctx, &grades, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	return grades, nil
}

// ListByEnrollment returns the grade history for one enrollment,
// oldest first.
func (r *GradeRepository) ListByEnrollment(ctx context.Context, enrollmentID int64) ([]models.Grade, error) {
	const query = `SELECT id, enrollment_id, grade, grade_date FROM grades WHERE enrollment_id = ? ORDER BY id`
	var grades []models.Grade
	if err := r.db.SelectContext(ctx, &grades, r.db.Rebind(query), enrollmentID); err != nil {
		return nil, fmt.Errorf("list enrollment grades: %w", err)
	}
	return grades, nil
}

// Create appends a new grade entry. Prior grades for the same
// enrollment are left untouched.
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	if grade.GradeDate.IsZero() {
		grade.GradeDate = time.Now().UTC()
	}
	const query = `INSERT INTO grades (enrollment_id, grade, grade_date) VALUES (?, ?, ?) RETURNING id`
	if err := r.db.GetContext(ctx, &grade.ID, r.db.Rebind(query),
		grade.EnrollmentID, grade.Grade, grade.GradeDate); err != nil {
		return fmt.Errorf("create grade: %w", err)
	}
	return nil
}
