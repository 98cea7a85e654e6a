package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/classgrid/learnhub/internal/domain"
	"github.com/classgrid/learnhub/internal/events"
	"github.com/classgrid/learnhub/internal/repository"
	apperrors "github.com/classgrid/learnhub/pkg/util"
)

// EnrollmentService implements student enrollment.
type EnrollmentService struct {
	enrollments repository.EnrollmentRepository
	courses     repository.CourseRepository
	dispatcher  events.Dispatcher
}

// NewEnrollmentService builds the service.
func NewEnrollmentService(enrollments repository.EnrollmentRepository, courses repository.CourseRepository, dispatcher events.Dispatcher) *EnrollmentService {
	return &EnrollmentService{enrollments: enrollments, courses: courses, dispatcher: dispatcher}
}

// Enroll adds the student to a course.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID int64, courseID string) (*domain.Enrollment, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Course not found")
		}
		return nil, err
	}

	exists, err := s.enrollments.Exists(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflict("Student is already enrolled in this course")
	}

	enrollment := &domain.Enrollment{StudentID: studentID, CourseID: courseID}
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventStudentEnrolled,
			ActorID:   studentID,
			Timestamp: time.Now(),
			Payload: events.StudentEnrolledPayload{
				CourseID:     courseID,
				StudentID:    studentID,
				InstructorID: course.InstructorID,
			},
		})
	}
	return enrollment, nil
}

// MyEnrollments lists the student's enrollments.
func (s *EnrollmentService) MyEnrollments(ctx context.Context, studentID int64) ([]*domain.Enrollment, error) {
	return s.enrollments.ListByStudent(ctx, studentID)
}
