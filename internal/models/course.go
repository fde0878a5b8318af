package models

import "time"

// DefaultCourseCredits is applied when a course is created without an
// explicit credit value.
const DefaultCourseCredits = 3

// Course represents a course offered by the academy.
type Course struct {
	ID         int64  `db:"id" json:"id"`
	Code       string `db:"code" json:"code"`
	Name       string `db:"name" json:"name"`
	Department string `db:"department" json:"department,omitempty"`
	Credits    int    `db:"credits" json:"credits"`
	Instructor string `db:"instructor" json:"instructor,omitempty"`
	Schedule   string `db:"schedule" json:"schedule,omitempty"`
	Room       string `db:"room" json:"room,omitempty"`
}

// CourseFilter encapsulates allowed search parameters for listing courses.
type CourseFilter struct {
	Search string
}

// CourseEnrollment is one enrolled student on a course roster.
type CourseEnrollment struct {
	StudentName    string    `db:"student_name" json:"student_name"`
	EnrollmentDate time.Time `db:"enrollment_date" json:"enrollment_date"`
}

// CourseDetail contains course information with its roster.
type CourseDetail struct {
	Course
	Students []CourseEnrollment `json:"students,omitempty"`
}
