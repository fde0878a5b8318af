package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/avellar-lune/academy-records/internal/models"
)

// CourseRepository manages persistence for course records.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns courses matching the optional search filter, ordered by id.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	query := `SELECT id, code, name, department, credits, instructor, schedule, room FROM courses`
	var args []interface{}
	if filter.Search != "" {
		query += ` WHERE (LOWER(code) LIKE ? OR LOWER(name) LIKE ? OR LOWER(department) LIKE ? OR LOWER(instructor) LIKE ?)`
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		args = append(args, pattern, pattern, pattern, pattern)
	}
	query += ` ORDER BY id`

	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// FindByID fetches a course by ID.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	const query = `SELECT id, code, name, department, credits, instructor, schedule, room FROM courses WHERE id = ?`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, r.db.Rebind(query), id); err != nil {
		return nil, err
	}
	return &course, nil
}

// FindByName returns every course whose name matches exactly. Callers
// decide how to treat zero or multiple matches.
func (r *CourseRepository) FindByName(ctx context.Context, name string) ([]models.Course, error) {
	const query = `SELECT id, code, name, department, credits, instructor, schedule, room
        FROM courses WHERE name = ? ORDER BY id`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, r.db.Rebind(query), name); err != nil {
		return nil, fmt.Errorf("find course by name: %w", err)
	}
	return courses, nil
}

// ExistsByCode checks if a course with the given code exists,
// optionally excluding an ID.
func (r *CourseRepository) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM courses WHERE code = ?"
	args := []interface{}{code}
	if excludeID != 0 {
		query += " AND id <> ?"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, r.db.Rebind(query+" LIMIT 1"), args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check code: %w", err)
	}
	return true, nil
}

// Roster lists the students enrolled in a course.
func (r *CourseRepository) Roster(ctx context.Context, courseID int64) ([]models.CourseEnrollment, error) {
	const query = `SELECT s.first_name || ' ' || s.last_name AS student_name, e.enrollment_date
        FROM enrollments e
        JOIN students s ON s.id = e.student_id
        WHERE e.course_id = ?
        ORDER BY e.id`
	var roster []models.CourseEnrollment
	if err := r.db.SelectContext(ctx, &roster, r.db.Rebind(query), courseID); err != nil {
		return nil, fmt.Errorf("list course roster: %w", err)
	}
	return roster, nil
}

// Create inserts a new course record and assigns its identity key.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	const query = `INSERT INTO courses (code, name, department, credits, instructor, schedule, room)
        VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`
	if err := r.db.GetContext(ctx, &course.ID, r.db.Rebind(query),
		course.Code, course.Name, course.Department, course.Credits,
		course.Instructor, course.Schedule, course.Room); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Update modifies an existing course.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	const query = `UPDATE courses SET code = :code, name = :name, department = :department,
        credits = :credits, instructor = :instructor, schedule = :schedule, room = :room WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

// DeleteCascade removes a course together with its enrollments and
// their grades in a single transaction.
func (r *CourseRepository) DeleteCascade(ctx context.Context, id int64) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete course tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, tx.Rebind(`DELETE FROM grades WHERE enrollment_id IN (SELECT id FROM enrollments WHERE course_id = ?)`), id); err != nil {
		return fmt.Errorf("delete course grades: %w", err)
	}
	if _, err = tx.ExecContext(ctx, tx.Rebind(`DELETE FROM enrollments WHERE course_id = ?`), id); err != nil {
		return fmt.Errorf("delete course enrollments: %w", err)
	}
	if _, err = tx.ExecContext(ctx, tx.Rebind(`DELETE FROM courses WHERE id = ?`), id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete course tx: %w", err)
	}
	return nil
}
