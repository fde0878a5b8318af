package models

import "time"

// Activity is one entry in the mutation activity feed.
type Activity struct {
	ID        int64     `db:"id" json:"id"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Counts aggregates record totals for the dashboard.
type Counts struct {
	Students    int `db:"students" json:"students"`
	Courses     int `db:"courses" json:"courses"`
	Enrollments int `db:"enrollments" json:"enrollments"`
}
