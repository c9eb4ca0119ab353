package outbound

import (
	"context"
	"errors"

	"github.com/learnhub/learnhub/domain/entity"
	"github.com/learnhub/learnhub/domain/valueobject"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepository is the identity store. FindByEmail returns (nil, nil) when no user matches.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	UpdateProfilePic(ctx context.Context, id, profilePic string) error
	FindAll(ctx context.Context, offset, limit int, filters UserFilters) ([]*entity.User, int, error)
	AddAppliedCourse(ctx context.Context, userID, courseID string) error
	CompleteAppliedCourse(ctx context.Context, userID, courseID string, marks int) error
}

type UserFilters struct {
	Role valueobject.Role
}
