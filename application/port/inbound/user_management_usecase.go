package inbound

import (
	"context"

	"github.com/learnhub/learnhub/domain/entity"
)

// Create User
type CreateUserRequest struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Role            string
}

// Get User Detail
type GetUserDetailResponse struct {
	Name           string                 `json:"name"`
	Email          string                 `json:"email"`
	Role           string                 `json:"role"`
	ProfilePic     string                 `json:"profilePic"`
	AppliedCourses []entity.AppliedCourse `json:"appliedCourses,omitempty"`
}

// List Users
type ListUsersRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type ListUsersResponse struct {
	Users       []GetUserDetailResponse `json:"users"`
	TotalPages  int                     `json:"totalPages"`
	CurrentPage int                     `json:"currentPage"`
}

// Apply / Evaluate Course
type ApplyCourseRequest struct {
	CourseID string `json:"courseId"`
}

type EvaluateCourseRequest struct {
	CourseID string `json:"courseId"`
	Marks    *int   `json:"marks"`
}

// User Management Use Case Interface
type UserManagementUseCase interface {
	CreateUser(ctx context.Context, req CreateUserRequest) error
	GetUserDetail(ctx context.Context, userID string) (*GetUserDetailResponse, error)
	ListUsers(ctx context.Context, req ListUsersRequest) (*ListUsersResponse, error)
	ApplyCourse(ctx context.Context, userID string, req ApplyCourseRequest) (*GetUserDetailResponse, error)
	EvaluateCourse(ctx context.Context, userID string, req EvaluateCourseRequest) (*GetUserDetailResponse, error)
}
