package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classgrid/learnhub/internal/domain"
)

// EnrollmentRepository defines persistence access for enrollments.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *domain.Enrollment) error
	Exists(ctx context.Context, studentID int64, courseID string) (bool, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*domain.Enrollment, error)
	CountForInstructor(ctx context.Context, instructorID int64) (int64, error)
}

type enrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository returns a Postgres-backed implementation.
func NewEnrollmentRepository(pool *pgxpool.Pool) EnrollmentRepository {
	return &enrollmentRepository{pool: pool}
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *domain.Enrollment) error {
	const query = `
        INSERT INTO enrollments (student_id, course_id)
        VALUES ($1, $2)
        RETURNING id, enrolled_at`

	return r.pool.QueryRow(ctx, query,
		enrollment.StudentID,
		enrollment.CourseID,
	).Scan(&enrollment.ID, &enrollment.EnrolledAt)
}

func (r *enrollmentRepository) Exists(ctx context.Context, studentID int64, courseID string) (bool, error) {
	const query = `
        SELECT EXISTS(SELECT 1 FROM enrollments WHERE student_id=$1 AND course_id=$2)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, studentID, courseID).Scan(&exists)
	return exists, err
}

func (r *enrollmentRepository) ListByStudent(ctx context.Context, studentID int64) ([]*domain.Enrollment, error) {
	const query = `
        SELECT id, student_id, course_id, enrolled_at
        FROM enrollments WHERE student_id=$1 ORDER BY enrolled_at`

	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []*domain.Enrollment
	for rows.Next() {
		var enrollment domain.Enrollment
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.StudentID,
			&enrollment.CourseID,
			&enrollment.EnrolledAt,
		); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, &enrollment)
	}
	return enrollments, rows.Err()
}

func (r *enrollmentRepository) CountForInstructor(ctx context.Context, instructorID int64) (int64, error) {
	const query = `
        SELECT COUNT(*) FROM enrollments e
        JOIN courses c ON c.id = e.course_id
        WHERE c.instructor_id=$1`

	var count int64
	err := r.pool.QueryRow(ctx, query, instructorID).Scan(&count)
	return count, err
}
