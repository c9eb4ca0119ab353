package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/learnhub/learnhub/application/port/outbound"
	"github.com/learnhub/learnhub/domain/entity"
)

const uniqueViolation = "23505"

type UserRepositoryAdapter struct {
	db *sql.DB
}

func NewUserRepositoryAdapter(db *sql.DB) outbound.UserRepository {
	return &UserRepositoryAdapter{
		db: db,
	}
}

const userColumns = `id, name, email, password, role, profile_pic, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.ProfilePic,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns (nil, nil) when no user has that email.
func (r *UserRepositoryAdapter) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if email == "" {
		return nil, fmt.Errorf("email cannot be empty")
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	return user, nil
}

// FindByID loads the user together with its applied courses.
func (r *UserRepositoryAdapter) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if id == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}

	courses, err := r.appliedCourses(ctx, id)
	if err != nil {
		return nil, err
	}
	user.AppliedCourses = courses

	return user, nil
}

func (r *UserRepositoryAdapter) appliedCourses(ctx context.Context, userID string) ([]entity.AppliedCourse, error) {
	query := `
		SELECT course_id, completed, marks
		FROM user_courses
		WHERE user_id = $1
		ORDER BY applied_at
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load applied courses: %w", err)
	}
	defer rows.Close()

	var courses []entity.AppliedCourse
	for rows.Next() {
		var (
			course entity.AppliedCourse
			marks  sql.NullInt64
		)
		if err := rows.Scan(&course.CourseID, &course.Completed, &marks); err != nil {
			return nil, fmt.Errorf("failed to scan applied course: %w", err)
		}
		if marks.Valid {
			m := int(marks.Int64)
			course.Marks = &m
		}
		courses = append(courses, course)
	}

	return courses, rows.Err()
}

func (r *UserRepositoryAdapter) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Password,
		user.Role,
		user.ProfilePic,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return outbound.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *UserRepositoryAdapter) UpdateProfilePic(ctx context.Context, id, profilePic string) error {
	query := `UPDATE users SET profile_pic = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, profilePic, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update profile picture: %w", err)
	}
	return expectOneRow(result, outbound.ErrUserNotFound)
}

func (r *UserRepositoryAdapter) FindAll(ctx context.Context, offset, limit int, filters outbound.UserFilters) ([]*entity.User, int, error) {
	where := ""
	args := []interface{}{}
	if filters.Role != "" {
		where = " WHERE role = $1"
		args = append(args, filters.Role)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM users%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		userColumns, where, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, total, nil
}

// AddAppliedCourse is idempotent.
func (r *UserRepositoryAdapter) AddAppliedCourse(ctx context.Context, userID, courseID string) error {
	query := `
		INSERT INTO user_courses (user_id, course_id, completed, applied_at)
		VALUES ($1, $2, FALSE, $3)
		ON CONFLICT (user_id, course_id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, userID, courseID, time.Now()); err != nil {
		return fmt.Errorf("failed to apply course: %w", err)
	}
	return nil
}

func (r *UserRepositoryAdapter) CompleteAppliedCourse(ctx context.Context, userID, courseID string, marks int) error {
	query := `
		UPDATE user_courses
		SET completed = TRUE, marks = $1
		WHERE user_id = $2 AND course_id = $3
	`

	result, err := r.db.ExecContext(ctx, query, marks, userID, courseID)
	if err != nil {
		return fmt.Errorf("failed to complete course: %w", err)
	}
	return expectOneRow(result, outbound.ErrCourseNotFound)
}

func expectOneRow(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
