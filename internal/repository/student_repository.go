package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/avellar-lune/academy-records/internal/models"
)

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students matching the optional search filter, ordered
// by id.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	query := `SELECT id, first_name, last_name, email, phone, date_of_birth, address, enrollment_date FROM students`
	var args []interface{}
	if filter.Search != "" {
		query += ` WHERE (LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?)`
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		args = append(args, pattern, pattern, pattern, pattern)
	}
	query += ` ORDER BY id`

	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	const query = `SELECT id, first_name, last_name, email, phone, date_of_birth, address, enrollment_date FROM students WHERE id = ?`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, r.db.Rebind(query), id); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByFullName returns every student whose display name matches
// exactly. Callers decide how to treat zero or multiple matches.
func (r *StudentRepository) FindByFullName(ctx context.Context, name string) ([]models.Student, error) {
	const query = `SELECT id, first_name, last_name, email, phone, date_of_birth, address, enrollment_date
        FROM students WHERE first_name || ' ' || last_name = ? ORDER BY id`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, r.db.Rebind(query), name); err != nil {
		return nil, fmt.Errorf("find student by name: %w", err)
	}
	return students, nil
}

// ExistsByEmail checks if a student with the given email exists,
// optionally excluding an ID.
func (r *StudentRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM students WHERE email = ?"
	args := []interface{}{email}
	if excludeID != 0 {
		query += " AND id <> ?"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, r.db.Rebind(query+" LIMIT 1"), args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check email: %w", err)
	}
	return true, nil
}

// EnrollmentHistory lists the courses a student is enrolled in.
func (r *StudentRepository) EnrollmentHistory(ctx context.Context, studentID int64) ([]models.StudentEnrollment, error) {
	const query = `SELECT c.code AS course_code, c.name AS course_name, e.enrollment_date
        FROM enrollments e
        JOIN courses c ON c.id = e.course_id
        WHERE e.student_id = ?
        ORDER BY e.id`
	var history []models.StudentEnrollment
	if err := r.db.SelectContext(ctx, &history, r.db.Rebind(query), studentID); err != nil {
		return nil, fmt.Errorf("list student enrollments: %w", err)
	}
	return history, nil
}

// Create inserts a new student record and assigns its identity key.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.EnrollmentDate.IsZero() {
		student.EnrollmentDate = time.Now().UTC()
	}
	const query = `INSERT INTO students (first_name, last_name, email, phone, date_of_birth, address, enrollment_date)
        VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`
	if err := r.db.GetContext(ctx, &student.ID, r.db.Rebind(query),
		student.FirstName, student.LastName, student.Email, student.Phone,
		student.DateOfBirth, student.Address, student.EnrollmentDate); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update modifies an existing student. The enrollment date is not
// rewritten.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	const query = `UPDATE students SET first_name = :first_name, last_name = :last_name, email = :email,
        phone = :phone, date_of_birth = :date_of_birth, address = :address WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// DeleteCascade removes a student together with its enrollments and
// their grades in a single transaction.
func (r *StudentRepository) DeleteCascade(ctx context.Context, id int64) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete student tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, tx.Rebind(`DELETE FROM grades WHERE enrollment_id IN (SELECT id FROM enrollments WHERE student_id = ?)`), id); err != nil {
		return fmt.Errorf("delete student grades: %w", err)
	}
	if _, err = tx.ExecContext(ctx, tx.Rebind(`DELETE FROM enrollments WHERE student_id = ?`), id); err != nil {
		return fmt.Errorf("delete student enrollments: %w", err)
	}
	if _, err = tx.ExecContext(ctx, tx.Rebind(`DELETE FROM students WHERE id = ?`), id); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete student tx: %w", err)
	}
	return nil
}
