package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/classgrid/learnhub/internal/domain"
	"github.com/classgrid/learnhub/internal/events"
	"github.com/classgrid/learnhub/internal/service"
	apperrors "github.com/classgrid/learnhub/pkg/util"
)

type fakeCourseRepo struct {
	courses map[string]*domain.Course
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: make(map[string]*domain.Course)}
}

func (r *fakeCourseRepo) Create(_ context.Context, course *domain.Course) error {
	course.CreatedAt = time.Now()
	course.UpdatedAt = course.CreatedAt
	r.courses[course.ID] = course
	return nil
}

func (r *fakeCourseRepo) GetOwned(_ context.Context, id string, instructorID int64) (*domain.Course, error) {
	course, ok := r.courses[id]
	if !ok || course.InstructorID != instructorID {
		return nil, pgx.ErrNoRows
	}
	copied := *course
	return &copied, nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id string) (*domain.Course, error) {
	course, ok := r.courses[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *course
	return &copied, nil
}

func (r *fakeCourseRepo) ListByInstructor(_ context.Context, instructorID int64) ([]*domain.Course, error) {
	var out []*domain.Course
	for _, course := range r.courses {
		if course.InstructorID == instructorID {
			out = append(out, course)
		}
	}
	return out, nil
}

func (r *fakeCourseRepo) ListAll(_ context.Context) ([]*domain.Course, error) {
	var out []*domain.Course
	for _, course := range r.courses {
		out = append(out, course)
	}
	return out, nil
}

func (r *fakeCourseRepo) Update(_ context.Context, course *domain.Course) error {
	existing, ok := r.courses[course.ID]
	if !ok || existing.InstructorID != course.InstructorID {
		return pgx.ErrNoRows
	}
	existing.Title = course.Title
	existing.Description = course.Description
	existing.UpdatedAt = time.Now()
	return nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, id string, instructorID int64) error {
	course, ok := r.courses[id]
	if !ok || course.InstructorID != instructorID {
		return pgx.ErrNoRows
	}
	delete(r.courses, id)
	return nil
}

func (r *fakeCourseRepo) CountByInstructor(_ context.Context, instructorID int64) (int64, error) {
	var count int64
	for _, course := range r.courses {
		if course.InstructorID == instructorID {
			count++
		}
	}
	return count, nil
}

func TestCreateCourseValidation(t *testing.T) {
	svc := service.NewCourseService(newFakeCourseRepo(), nil)
	ctx := context.Background()

	tests := []struct {
		name        string
		title       string
		description string
		wantErr     bool
	}{
		{name: "valid", title: "Go 101", description: "An introduction to Go", wantErr: false},
		{name: "empty title", title: "   ", description: "desc", wantErr: true},
		{name: "empty description", title: "Go 101", description: "", wantErr: true},
		{name: "title too long", title: strings.Repeat("x", 256), description: "desc", wantErr: true},
		{name: "description too long", title: "Go 101", description: strings.Repeat("x", 1001), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			course, err := svc.Create(ctx, 1, tt.title, tt.description)
			if tt.wantErr {
				if err == nil {
					t.Error("Create() accepted invalid input")
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if course.ID == "" {
				t.Error("course has no id")
			}
			if course.Title != strings.TrimSpace(tt.title) {
				t.Errorf("title = %q", course.Title)
			}
		})
	}
}

func TestCourseOwnership(t *testing.T) {
	repo := newFakeCourseRepo()
	svc := service.NewCourseService(repo, nil)
	ctx := context.Background()

	owned, err := svc.Create(ctx, 1, "Go 101", "An introduction to Go")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// A course owned by somebody else reads as missing, never as forbidden.
	assertNotFound := func(t *testing.T, err error) {
		t.Helper()
		var domainErr *apperrors.DomainError
		if !errors.As(err, &domainErr) {
			t.Fatalf("error = %v, want DomainError", err)
		}
		if domainErr.HTTPStatus != 404 || domainErr.Message != "Course not found" {
			t.Errorf("got status %d message %q", domainErr.HTTPStatus, domainErr.Message)
		}
	}

	if _, err := svc.Get(ctx, 2, owned.ID); err == nil {
		t.Error("Get() leaked another instructor's course")
	} else {
		assertNotFound(t, err)
	}

	newTitle := "Stolen"
	if _, err := svc.Update(ctx, 2, owned.ID, &newTitle, nil); err == nil {
		t.Error("Update() modified another instructor's course")
	} else {
		assertNotFound(t, err)
	}

	if err := svc.Delete(ctx, 2, owned.ID); err == nil {
		t.Error("Delete() removed another instructor's course")
	} else {
		assertNotFound(t, err)
	}

	if _, err := svc.Get(ctx, 1, owned.ID); err != nil {
		t.Errorf("owner Get() error = %v", err)
	}
}

func TestUpdateCoursePartial(t *testing.T) {
	repo := newFakeCourseRepo()
	svc := service.NewCourseService(repo, nil)
	ctx := context.Background()

	course, err := svc.Create(ctx, 1, "Go 101", "An introduction to Go")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	newTitle := "Go 102"
	updated, err := svc.Update(ctx, 1, course.ID, &newTitle, nil)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "Go 102" {
		t.Errorf("title = %q, want Go 102", updated.Title)
	}
	if updated.Description != "An introduction to Go" {
		t.Errorf("description changed: %q", updated.Description)
	}
}

func TestCourseEventsPublished(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	var got []events.EventType
	for _, eventType := range []events.EventType{events.EventCourseCreated, events.EventCourseUpdated, events.EventCourseDeleted} {
		eventType := eventType
		dispatcher.Subscribe(eventType, func(_ context.Context, e events.Event) error {
			got = append(got, e.Type)
			return nil
		})
	}

	svc := service.NewCourseService(newFakeCourseRepo(), dispatcher)
	ctx := context.Background()

	course, err := svc.Create(ctx, 1, "Go 101", "An introduction to Go")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	newTitle := "Go 102"
	if _, err := svc.Update(ctx, 1, course.ID, &newTitle, nil); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if err := svc.Delete(ctx, 1, course.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	want := []events.EventType{events.EventCourseCreated, events.EventCourseUpdated, events.EventCourseDeleted}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
