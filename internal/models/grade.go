package models

import "time"

// Grade bounds accepted by assign operations, inclusive.
const (
	GradeMin = 0
	GradeMax = 100
)

// Grade represents one grade entry for an enrollment. Re-grading
// appends a new row; entries are never updated in place.
type Grade struct {
	ID           int64     `db:"id" json:"id"`
	EnrollmentID int64     `db:"enrollment_id" json:"enrollment_id"`
	Grade        float64   `db:"grade" json:"grade"`
	GradeDate    time.Time `db:"grade_date" json:"grade_date"`
}

// GradeDetail enriches Grade with the student and course it belongs to.
type GradeDetail struct {
	Grade
	StudentName string `db:"student_name" json:"student_name"`
	CourseName  string `db:"course_name" json:"course_name"`
}

// GradeFilter narrows grade listings to an exact student and/or course.
type GradeFilter struct {
	StudentID int64
	CourseID  int64
}
