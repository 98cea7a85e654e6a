package dto

import (
	"time"

	"github.com/classgrid/learnhub/internal/domain"
)

// CourseCreateRequest payload for new courses.
type CourseCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CourseUpdateRequest carries partial course changes.
type CourseUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// CourseResponse mirrors a course.
type CourseResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	InstructorID int64     `json:"instructor_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewCourseResponse maps a domain course.
func NewCourseResponse(course *domain.Course) CourseResponse {
	return CourseResponse{
		ID:           course.ID,
		Title:        course.Title,
		Description:  course.Description,
		InstructorID: course.InstructorID,
		CreatedAt:    course.CreatedAt,
		UpdatedAt:    course.UpdatedAt,
	}
}

// NewCourseListResponse maps a slice of courses.
func NewCourseListResponse(courses []*domain.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		out = append(out, NewCourseResponse(course))
	}
	return out
}

// EnrollmentResponse mirrors an enrollment.
type EnrollmentResponse struct {
	ID         int64     `json:"id"`
	StudentID  int64     `json:"student_id"`
	CourseID   string    `json:"course_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// NewEnrollmentResponse maps a domain enrollment.
func NewEnrollmentResponse(enrollment *domain.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:         enrollment.ID,
		StudentID:  enrollment.StudentID,
		CourseID:   enrollment.CourseID,
		EnrolledAt: enrollment.EnrolledAt,
	}
}
