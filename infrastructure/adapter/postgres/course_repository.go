package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/learnhub/learnhub/application/port/outbound"
	"github.com/learnhub/learnhub/domain/entity"
)

type CourseRepositoryAdapter struct {
	db *sql.DB
}

func NewCourseRepositoryAdapter(db *sql.DB) outbound.CourseRepository {
	return &CourseRepositoryAdapter{db: db}
}

const courseColumns = `id, name, description, cover_image, video_link, created_at, updated_at`

func scanCourse(row interface{ Scan(...interface{}) error }) (*entity.Course, error) {
	var c entity.Course
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CoverImage, &c.VideoLink, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CourseRepositoryAdapter) FindByID(ctx context.Context, id string) (*entity.Course, error) {
	course, err := scanCourse(r.db.QueryRowContext(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to find course: %w", err)
	}
	return course, nil
}

func (r *CourseRepositoryAdapter) FindAll(ctx context.Context, offset, limit int) ([]*entity.Course, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+courseColumns+` FROM courses ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	courses := []*entity.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate courses: %w", err)
	}

	return courses, total, nil
}

func (r *CourseRepositoryAdapter) Create(ctx context.Context, course *entity.Course) error {
	query := `INSERT INTO courses (` + courseColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		course.ID, course.Name, course.Description, course.CoverImage, course.VideoLink,
		course.CreatedAt, course.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

func (r *CourseRepositoryAdapter) Update(ctx context.Context, course *entity.Course) error {
	course.UpdatedAt = time.Now()
	query := `
		UPDATE courses
		SET name = $1, description = $2, cover_image = $3, video_link = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		course.Name, course.Description, course.CoverImage, course.VideoLink, course.UpdatedAt, course.ID)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}
	return expectOneRow(result, outbound.ErrCourseNotFound)
}

// Delete also drops every enrolment in the course.
func (r *CourseRepositoryAdapter) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	return expectOneRow(result, outbound.ErrCourseNotFound)
}
