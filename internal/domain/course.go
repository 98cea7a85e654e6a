package domain

import "time"

// Course is owned by the instructor who created it.
type Course struct {
	ID           string
	Title        string
	Description  string
	InstructorID int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
