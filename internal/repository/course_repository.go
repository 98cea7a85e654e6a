package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classgrid/learnhub/internal/domain"
)

// CourseRepository defines persistence access for courses. Lookups that take
// an instructorID return pgx.ErrNoRows when the course exists but is owned by
// somebody else; ownership is never leaked to the caller.
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	GetOwned(ctx context.Context, id string, instructorID int64) (*domain.Course, error)
	GetByID(ctx context.Context, id string) (*domain.Course, error)
	ListByInstructor(ctx context.Context, instructorID int64) ([]*domain.Course, error)
	ListAll(ctx context.Context) ([]*domain.Course, error)
	Update(ctx context.Context, course *domain.Course) error
	Delete(ctx context.Context, id string, instructorID int64) error
	CountByInstructor(ctx context.Context, instructorID int64) (int64, error)
}

type courseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository returns a Postgres-backed implementation.
func NewCourseRepository(pool *pgxpool.Pool) CourseRepository {
	return &courseRepository{pool: pool}
}

func (r *courseRepository) Create(ctx context.Context, course *domain.Course) error {
	const query = `
        INSERT INTO courses (id, title, description, instructor_id)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		course.ID,
		course.Title,
		course.Description,
		course.InstructorID,
	).Scan(&course.CreatedAt, &course.UpdatedAt)
}

func (r *courseRepository) GetOwned(ctx context.Context, id string, instructorID int64) (*domain.Course, error) {
	const query = `
        SELECT id, title, description, instructor_id, created_at, updated_at
        FROM courses WHERE id=$1 AND instructor_id=$2`

	return r.scanOne(r.pool.QueryRow(ctx, query, id, instructorID))
}

func (r *courseRepository) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	const query = `
        SELECT id, title, description, instructor_id, created_at, updated_at
        FROM courses WHERE id=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *courseRepository) ListByInstructor(ctx context.Context, instructorID int64) ([]*domain.Course, error) {
	const query = `
        SELECT id, title, description, instructor_id, created_at, updated_at
        FROM courses WHERE instructor_id=$1 ORDER BY created_at`

	return r.list(ctx, query, instructorID)
}

func (r *courseRepository) ListAll(ctx context.Context) ([]*domain.Course, error) {
	const query = `
        SELECT id, title, description, instructor_id, created_at, updated_at
        FROM courses ORDER BY created_at`

	return r.list(ctx, query)
}

func (r *courseRepository) Update(ctx context.Context, course *domain.Course) error {
	const query = `
        UPDATE courses SET title=$1, description=$2, updated_at=NOW()
        WHERE id=$3 AND instructor_id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		course.Title,
		course.Description,
		course.ID,
		course.InstructorID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *courseRepository) Delete(ctx context.Context, id string, instructorID int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id=$1 AND instructor_id=$2`, id, instructorID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *courseRepository) CountByInstructor(ctx context.Context, instructorID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses WHERE instructor_id=$1`, instructorID).Scan(&count)
	return count, err
}

func (r *courseRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Course, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*domain.Course
	for rows.Next() {
		var course domain.Course
		if err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.Description,
			&course.InstructorID,
			&course.CreatedAt,
			&course.UpdatedAt,
		); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}
	return courses, rows.Err()
}

func (r *courseRepository) scanOne(row pgx.Row) (*domain.Course, error) {
	var course domain.Course
	if err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.InstructorID,
		&course.CreatedAt,
		&course.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &course, nil
}
