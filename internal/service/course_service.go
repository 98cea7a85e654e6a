package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/classgrid/learnhub/internal/domain"
	"github.com/classgrid/learnhub/internal/events"
	"github.com/classgrid/learnhub/internal/repository"
	apperrors "github.com/classgrid/learnhub/pkg/util"
)

const (
	maxTitleLen       = 255
	maxDescriptionLen = 1000
)

// CourseService implements instructor course management. Every single-course
// operation is scoped to the calling instructor; a course owned by somebody
// else is indistinguishable from a missing one.
type CourseService struct {
	courses    repository.CourseRepository
	dispatcher events.Dispatcher
}

// NewCourseService builds the service.
func NewCourseService(courses repository.CourseRepository, dispatcher events.Dispatcher) *CourseService {
	return &CourseService{courses: courses, dispatcher: dispatcher}
}

// Create validates and persists a new course for the instructor.
func (s *CourseService) Create(ctx context.Context, instructorID int64, title, description string) (*domain.Course, error) {
	title, description, err := validateCourseData(title, description)
	if err != nil {
		return nil, err
	}

	course := &domain.Course{
		ID:           uuid.NewString(),
		Title:        title,
		Description:  description,
		InstructorID: instructorID,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	s.publishCourseEvent(ctx, events.EventCourseCreated, course)
	return course, nil
}

// Get returns a course owned by the instructor.
func (s *CourseService) Get(ctx context.Context, instructorID int64, courseID string) (*domain.Course, error) {
	course, err := s.courses.GetOwned(ctx, courseID, instructorID)
	if err != nil {
		return nil, mapCourseErr(err)
	}
	return course, nil
}

// Update applies partial changes to an owned course. Nil fields are left as-is.
func (s *CourseService) Update(ctx context.Context, instructorID int64, courseID string, title, description *string) (*domain.Course, error) {
	course, err := s.courses.GetOwned(ctx, courseID, instructorID)
	if err != nil {
		return nil, mapCourseErr(err)
	}

	newTitle := course.Title
	newDescription := course.Description
	if title != nil {
		newTitle = *title
	}
	if description != nil {
		newDescription = *description
	}
	newTitle, newDescription, err = validateCourseData(newTitle, newDescription)
	if err != nil {
		return nil, err
	}

	course.Title = newTitle
	course.Description = newDescription
	if err := s.courses.Update(ctx, course); err != nil {
		return nil, mapCourseErr(err)
	}
	course.UpdatedAt = time.Now()

	s.publishCourseEvent(ctx, events.EventCourseUpdated, course)
	return course, nil
}

// Delete removes an owned course.
func (s *CourseService) Delete(ctx context.Context, instructorID int64, courseID string) error {
	course, err := s.courses.GetOwned(ctx, courseID, instructorID)
	if err != nil {
		return mapCourseErr(err)
	}
	if err := s.courses.Delete(ctx, courseID, instructorID); err != nil {
		return mapCourseErr(err)
	}

	s.publishCourseEvent(ctx, events.EventCourseDeleted, course)
	return nil
}

// MyCourses lists courses created by the instructor.
func (s *CourseService) MyCourses(ctx context.Context, instructorID int64) ([]*domain.Course, error) {
	return s.courses.ListByInstructor(ctx, instructorID)
}

// AllCourses lists every course on the platform.
func (s *CourseService) AllCourses(ctx context.Context) ([]*domain.Course, error) {
	return s.courses.ListAll(ctx)
}

func (s *CourseService) publishCourseEvent(ctx context.Context, eventType events.EventType, course *domain.Course) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   course.InstructorID,
		Timestamp: time.Now(),
		Payload: events.CoursePayload{
			CourseID:     course.ID,
			Title:        course.Title,
			InstructorID: course.InstructorID,
		},
	})
}

func validateCourseData(title, description string) (string, string, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || len(title) > maxTitleLen {
		return "", "", apperrors.NewValidationError("Course title must be between 1 and 255 characters")
	}
	if description == "" || len(description) > maxDescriptionLen {
		return "", "", apperrors.NewValidationError("Course description must be between 1 and 1000 characters")
	}
	return title, description, nil
}

func mapCourseErr(err error) error {
	domainErr := apperrors.ToDomainError(err)
	if domainErr.Code == "NOT_FOUND" {
		return apperrors.NewNotFound("Course not found")
	}
	return domainErr
}
