package user_management

import (
	"context"

	"github.com/learnhub/learnhub/application/port/inbound"
	"github.com/learnhub/learnhub/application/port/outbound"
)

type UserManagementUseCaseImpl struct {
	createUserUseCase     *CreateUserUseCase
	getUserDetailUseCase  *GetUserDetailUseCase
	listUsersUseCase      *ListUsersUseCase
	applyCourseUseCase    *ApplyCourseUseCase
	evaluateCourseUseCase *EvaluateCourseUseCase
}

func NewUserManagementUseCase(
	userRepo outbound.UserRepository,
	courseRepo outbound.CourseRepository,
	passwordSvc outbound.PasswordService,
) inbound.UserManagementUseCase {
	return &UserManagementUseCaseImpl{
		createUserUseCase:     NewCreateUserUseCase(userRepo, passwordSvc),
		getUserDetailUseCase:  NewGetUserDetailUseCase(userRepo),
		listUsersUseCase:      NewListUsersUseCase(userRepo),
		applyCourseUseCase:    NewApplyCourseUseCase(userRepo, courseRepo),
		evaluateCourseUseCase: NewEvaluateCourseUseCase(userRepo),
	}
}

func (uc *UserManagementUseCaseImpl) CreateUser(ctx context.Context, req inbound.CreateUserRequest) error {
	return uc.createUserUseCase.Execute(ctx, req)
}

func (uc *UserManagementUseCaseImpl) GetUserDetail(ctx context.Context, userID string) (*inbound.GetUserDetailResponse, error) {
	return uc.getUserDetailUseCase.Execute(ctx, userID)
}

func (uc *UserManagementUseCaseImpl) ListUsers(ctx context.Context, req inbound.ListUsersRequest) (*inbound.ListUsersResponse, error) {
	return uc.listUsersUseCase.Execute(ctx, req)
}

func (uc *UserManagementUseCaseImpl) ApplyCourse(ctx context.Context, userID string, req inbound.ApplyCourseRequest) (*inbound.GetUserDetailResponse, error) {
	return uc.applyCourseUseCase.Execute(ctx, userID, req)
}

func (uc *UserManagementUseCaseImpl) EvaluateCourse(ctx context.Context, userID string, req inbound.EvaluateCourseRequest) (*inbound.GetUserDetailResponse, error) {
	return uc.evaluateCourseUseCase.Execute(ctx, userID, req)
}
