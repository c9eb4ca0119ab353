package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/learnhub/learnhub/application/port/inbound"
	"github.com/learnhub/learnhub/application/port/outbound"
	"github.com/learnhub/learnhub/application/usecase/user_management"
	"github.com/learnhub/learnhub/domain/entity"
	domainerr "github.com/learnhub/learnhub/domain/error"
)

type CourseUseCase struct {
	courseRepo outbound.CourseRepository
}

func NewCourseUseCase(courseRepo outbound.CourseRepository) *CourseUseCase {
	return &CourseUseCase{courseRepo: courseRepo}
}

func (uc *CourseUseCase) ListCourses(ctx context.Context, req inbound.ListCoursesRequest) (*inbound.ListCoursesResponse, error) {
	var offset int
	req.Page, req.Limit, offset = user_management.Paginate(req.Page, req.Limit)

	courses, total, err := uc.courseRepo.FindAll(ctx, offset, req.Limit)
	if err != nil {
		return nil, domainerr.ErrDownstream("list courses", err)
	}
	if courses == nil {
		courses = []*entity.Course{}
	}

	return &inbound.ListCoursesResponse{
		Courses:     courses,
		TotalPages:  user_management.TotalPages(total, req.Limit),
		CurrentPage: req.Page,
	}, nil
}

func (uc *CourseUseCase) GetCourse(ctx context.Context, id string) (*entity.Course, error) {
	course, err := uc.courseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, courseError(err, id, "find course")
	}
	return course, nil
}

func (uc *CourseUseCase) CreateCourse(ctx context.Context, req inbound.CourseRequest) (*entity.Course, error) {
	course, err := entity.NewCourse(uuid.NewString(), req.Name, req.Description, req.CoverImage, req.VideoLink)
	if err != nil {
		return nil, domainerr.ErrInvalidRequest(err.Error())
	}
	if err := uc.courseRepo.Create(ctx, course); err != nil {
		return nil, domainerr.ErrDownstream("create course", err)
	}
	return course, nil
}

func (uc *CourseUseCase) UpdateCourse(ctx context.Context, id string, req inbound.UpdateCourseRequest) (*entity.Course, error) {
	course, err := uc.courseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, courseError(err, id, "find course")
	}

	if req.Name != nil {
		course.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		course.Description = strings.TrimSpace(*req.Description)
	}
	if req.CoverImage != nil {
		course.CoverImage = strings.TrimSpace(*req.CoverImage)
		if course.CoverImage == "" {
			course.CoverImage = entity.DefaultCoverImage
		}
	}
	if req.VideoLink != nil {
		course.VideoLink = strings.TrimSpace(*req.VideoLink)
	}
	if err := course.Validate(); err != nil {
		return nil, domainerr.ErrInvalidRequest(err.Error())
	}
	course.UpdatedAt = time.Now()

	if err := uc.courseRepo.Update(ctx, course); err != nil {
		return nil, courseError(err, id, "update course")
	}
	return course, nil
}

func (uc *CourseUseCase) DeleteCourse(ctx context.Context, id string) error {
	if err := uc.courseRepo.Delete(ctx, id); err != nil {
		return courseError(err, id, "delete course")
	}
	return nil
}

func courseError(err error, id, operation string) error {
	if errors.Is(err, outbound.ErrCourseNotFound) {
		return domainerr.ErrCourseNotFound(id)
	}
	return domainerr.ErrDownstream(operation, err)
}
