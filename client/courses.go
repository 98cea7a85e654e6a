package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNotAuthenticated is returned by authenticated calls when no token is
// stored.
var ErrNotAuthenticated = errors.New("not authenticated")

// Course mirrors the backend course resource.
type Course struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	InstructorID int64     `json:"instructor_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile mirrors the backend account resource.
type Profile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	UserType string `json:"user_type"`
}

// DashboardStats mirrors the instructor dashboard response.
type DashboardStats struct {
	InstructorID     int64 `json:"instructor_id"`
	TotalCourses     int64 `json:"total_courses"`
	TotalEnrollments int64 `json:"total_enrollments"`
}

// CourseInput carries course fields for create and update calls.
type CourseInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Profile fetches the instructor's profile.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.doAuthed(ctx, http.MethodGet, "/api/v1/instructor/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dashboard fetches the instructor's dashboard statistics.
func (c *Client) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var out DashboardStats
	if err := c.doAuthed(ctx, http.MethodGet, "/api/v1/instructor/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCourse creates a course owned by the authenticated instructor.
func (c *Client) CreateCourse(ctx context.Context, input CourseInput) (*Course, error) {
	var out Course
	if err := c.doAuthed(ctx, http.MethodPost, "/api/v1/instructor/courses/create", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyCourses lists the authenticated instructor's courses.
func (c *Client) MyCourses(ctx context.Context) ([]Course, error) {
	var out []Course
	if err := c.doAuthed(ctx, http.MethodGet, "/api/v1/instructor/courses/my-courses", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AllCourses lists every course on the platform.
func (c *Client) AllCourses(ctx context.Context) ([]Course, error) {
	var out []Course
	if err := c.doAuthed(ctx, http.MethodGet, "/api/v1/instructor/courses/all-courses", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Course fetches one owned course by id.
func (c *Client) Course(ctx context.Context, id string) (*Course, error) {
	var out Course
	if err := c.doAuthed(ctx, http.MethodGet, coursePath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCourse updates an owned course.
func (c *Client) UpdateCourse(ctx context.Context, id string, input CourseInput) (*Course, error) {
	var out Course
	if err := c.doAuthed(ctx, http.MethodPut, coursePath(id), input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCourse deletes an owned course.
func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.doAuthed(ctx, http.MethodDelete, coursePath(id), nil, nil)
}

func coursePath(id string) string {
	return fmt.Sprintf("/api/v1/instructor/courses/course/%s", id)
}

// doAuthed sends a bearer-authenticated JSON request.
func (c *Client) doAuthed(ctx context.Context, method, path string, body, out any) error {
	token, err := c.store.Get()
	if err != nil {
		return err
	}
	if token == "" {
		return ErrNotAuthenticated
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return backendErrorFromResponse(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
