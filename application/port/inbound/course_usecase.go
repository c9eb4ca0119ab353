package inbound

import (
	"context"

	"github.com/learnhub/learnhub/domain/entity"
)

type CourseRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CoverImage  string `json:"coverimage"`
	VideoLink   string `json:"videolink"`
}

// UpdateCourseRequest applies only the fields that are present.
type UpdateCourseRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	CoverImage  *string `json:"coverimage"`
	VideoLink   *string `json:"videolink"`
}

type ListCoursesRequest struct {
	Page  int
	Limit int
}

type ListCoursesResponse struct {
	Courses     []*entity.Course `json:"courses"`
	TotalPages  int              `json:"totalPages"`
	CurrentPage int              `json:"currentPage"`
}

type CourseUseCase interface {
	ListCourses(ctx context.Context, req ListCoursesRequest) (*ListCoursesResponse, error)
	GetCourse(ctx context.Context, id string) (*entity.Course, error)
	CreateCourse(ctx context.Context, req CourseRequest) (*entity.Course, error)
	UpdateCourse(ctx context.Context, id string, req UpdateCourseRequest) (*entity.Course, error)
	DeleteCourse(ctx context.Context, id string) error
}
