package user_management

import (
	"context"
	"errors"
	"strings"

	"github.com/learnhub/learnhub/application/port/inbound"
	"github.com/learnhub/learnhub/application/port/outbound"
	domainerr "github.com/learnhub/learnhub/domain/error"
)

type ApplyCourseUseCase struct {
	userRepo   outbound.UserRepository
	courseRepo outbound.CourseRepository
}

func NewApplyCourseUseCase(userRepo outbound.UserRepository, courseRepo outbound.CourseRepository) *ApplyCourseUseCase {
	return &ApplyCourseUseCase{
		userRepo:   userRepo,
		courseRepo: courseRepo,
	}
}

func (uc *ApplyCourseUseCase) Execute(ctx context.Context, userID string, req inbound.ApplyCourseRequest) (*inbound.GetUserDetailResponse, error) {
	courseID := strings.TrimSpace(req.CourseID)
	if courseID == "" {
		return nil, domainerr.ErrMissingField("courseId")
	}

	user, err := findUser(ctx, uc.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if !user.CanApply() {
		return nil, domainerr.ErrForbidden("only learners can apply to courses")
	}

	if _, err := uc.courseRepo.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, outbound.ErrCourseNotFound) {
			return nil, domainerr.ErrCourseNotFound(courseID)
		}
		return nil, domainerr.ErrDownstream("find course", err)
	}

	// Applying twice is a no-op.
	if _, applied := user.FindAppliedCourse(courseID); !applied {
		if err := uc.userRepo.AddAppliedCourse(ctx, userID, courseID); err != nil {
			return nil, domainerr.ErrDownstream("apply course", err)
		}
	}

	return NewGetUserDetailUseCase(uc.userRepo).Execute(ctx, userID)
}
