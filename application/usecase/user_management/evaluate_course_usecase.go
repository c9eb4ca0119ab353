package user_management

import (
	"context"
	"strings"

	"github.com/learnhub/learnhub/application/port/inbound"
	"github.com/learnhub/learnhub/application/port/outbound"
	domainerr "github.com/learnhub/learnhub/domain/error"
)

type EvaluateCourseUseCase struct {
	userRepo outbound.UserRepository
}

func NewEvaluateCourseUseCase(userRepo outbound.UserRepository) *EvaluateCourseUseCase {
	return &EvaluateCourseUseCase{
		userRepo: userRepo,
	}
}

// Execute marks an applied course completed and records the marks.
func (uc *EvaluateCourseUseCase) Execute(ctx context.Context, userID string, req inbound.EvaluateCourseRequest) (*inbound.GetUserDetailResponse, error) {
	courseID := strings.TrimSpace(req.CourseID)
	if courseID == "" {
		return nil, domainerr.ErrMissingField("courseId")
	}
	if req.Marks == nil {
		return nil, domainerr.ErrMissingField("marks")
	}

	user, err := findUser(ctx, uc.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if _, applied := user.FindAppliedCourse(courseID); !applied {
		return nil, domainerr.ErrCourseNotApplied(courseID)
	}

	if err := uc.userRepo.CompleteAppliedCourse(ctx, userID, courseID, *req.Marks); err != nil {
		return nil, domainerr.ErrDownstream("evaluate course", err)
	}

	return NewGetUserDetailUseCase(uc.userRepo).Execute(ctx, userID)
}
