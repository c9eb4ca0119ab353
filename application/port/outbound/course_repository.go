package outbound

import (
	"context"
	"errors"

	"github.com/learnhub/learnhub/domain/entity"
)

var ErrCourseNotFound = errors.New("course not found")

type CourseRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Course, error)
	FindAll(ctx context.Context, offset, limit int) ([]*entity.Course, int, error)
	Create(ctx context.Context, course *entity.Course) error
	Update(ctx context.Context, course *entity.Course) error
	Delete(ctx context.Context, id string) error
}
