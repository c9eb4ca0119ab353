package user_management

import (
	"context"
	"errors"

	"github.com/learnhub/learnhub/application/port/inbound"
	"github.com/learnhub/learnhub/application/port/outbound"
	"github.com/learnhub/learnhub/domain/entity"
	domainerr "github.com/learnhub/learnhub/domain/error"
)

type GetUserDetailUseCase struct {
	userRepo outbound.UserRepository
}

func NewGetUserDetailUseCase(userRepo outbound.UserRepository) *GetUserDetailUseCase {
	return &GetUserDetailUseCase{
		userRepo: userRepo,
	}
}

func (uc *GetUserDetailUseCase) Execute(ctx context.Context, userID string) (*inbound.GetUserDetailResponse, error) {
	if userID == "" {
		return nil, domainerr.ErrMissingField("user id")
	}

	user, err := findUser(ctx, uc.userRepo, userID)
	if err != nil {
		return nil, err
	}

	return toUserDetail(user), nil
}

func findUser(ctx context.Context, repo outbound.UserRepository, userID string) (*entity.User, error) {
	user, err := repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			return nil, domainerr.ErrUserNotFound(userID)
		}
		return nil, domainerr.ErrDownstream("find user", err)
	}
	return user, nil
}

// toUserDetail drops the identifier and password hash.
func toUserDetail(user *entity.User) *inbound.GetUserDetailResponse {
	return &inbound.GetUserDetailResponse{
		Name:           user.Name,
		Email:          user.Email,
		Role:           user.Role.String(),
		ProfilePic:     user.ProfilePic,
		AppliedCourses: user.AppliedCourses,
	}
}
