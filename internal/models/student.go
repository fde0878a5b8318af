package models

import "time"

// Student represents a learner registered at the academy.
type Student struct {
	ID             int64     `db:"id" json:"id"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	Email          string    `db:"email" json:"email"`
	Phone          string    `db:"phone" json:"phone,omitempty"`
	DateOfBirth    string    `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Address        string    `db:"address" json:"address,omitempty"`
	EnrollmentDate time.Time `db:"enrollment_date" json:"enrollment_date"`
}

// FullName returns the display name used in joined listings and the
// activity feed.
func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search string
}

// StudentEnrollment is one row of a student's enrollment history.
type StudentEnrollment struct {
	CourseCode     string    `db:"course_code" json:"course_code"`
	CourseName     string    `db:"course_name" json:"course_name"`
	EnrollmentDate time.Time `db:"enrollment_date" json:"enrollment_date"`
}

// StudentDetail contains student information with enrollment context.
type StudentDetail struct {
	Student
	Enrollments []StudentEnrollment `json:"enrollments,omitempty"`
}
