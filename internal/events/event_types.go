package events

import (
	"time"

	"github.com/classgrid/learnhub/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventCourseCreated   EventType = "course_created"
	EventCourseUpdated   EventType = "course_updated"
	EventCourseDeleted   EventType = "course_deleted"
	EventStudentEnrolled EventType = "student_enrolled"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   int64       `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"user_type"`
}

// CoursePayload payload for course lifecycle events.
type CoursePayload struct {
	CourseID     string `json:"course_id"`
	Title        string `json:"title"`
	InstructorID int64  `json:"instructor_id"`
}

// StudentEnrolledPayload payload.
type StudentEnrolledPayload struct {
	CourseID     string `json:"course_id"`
	StudentID    int64  `json:"student_id"`
	InstructorID int64  `json:"instructor_id"`
}
