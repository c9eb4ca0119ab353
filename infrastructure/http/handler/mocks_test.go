package handler

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/learnhub/learnhub/application/port/inbound"
	"github.com/learnhub/learnhub/domain/entity"
	"github.com/learnhub/learnhub/infrastructure/service/logger"
)

func testLogger() logger.Logger {
	return logger.NewStructuredLogger(logger.LoggerConfig{Level: "error", Format: "json", Output: &bytes.Buffer{}})
}

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, req inbound.RegisterRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockAuthUseCase) Login(ctx context.Context, req inbound.LoginRequest) (*inbound.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.LoginResponse), args.Error(1)
}

func (m *MockAuthUseCase) RestoreSession(ctx context.Context, req inbound.SessionRequest) (*inbound.SessionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.SessionResponse), args.Error(1)
}

func (m *MockAuthUseCase) OAuthConsentURL(state string) (string, error) {
	args := m.Called(state)
	return args.String(0), args.Error(1)
}

func (m *MockAuthUseCase) OAuthLogin(ctx context.Context, code string) (*inbound.OAuthLoginResponse, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.OAuthLoginResponse), args.Error(1)
}

type MockUserManagementUseCase struct {
	mock.Mock
}

func (m *MockUserManagementUseCase) CreateUser(ctx context.Context, req inbound.CreateUserRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockUserManagementUseCase) GetUserDetail(ctx context.Context, userID string) (*inbound.GetUserDetailResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.GetUserDetailResponse), args.Error(1)
}

func (m *MockUserManagementUseCase) ListUsers(ctx context.Context, req inbound.ListUsersRequest) (*inbound.ListUsersResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.ListUsersResponse), args.Error(1)
}

func (m *MockUserManagementUseCase) ApplyCourse(ctx context.Context, userID string, req inbound.ApplyCourseRequest) (*inbound.GetUserDetailResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.GetUserDetailResponse), args.Error(1)
}

func (m *MockUserManagementUseCase) EvaluateCourse(ctx context.Context, userID string, req inbound.EvaluateCourseRequest) (*inbound.GetUserDetailResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.GetUserDetailResponse), args.Error(1)
}

type MockCourseUseCase struct {
	mock.Mock
}

func (m *MockCourseUseCase) ListCourses(ctx context.Context, req inbound.ListCoursesRequest) (*inbound.ListCoursesResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.ListCoursesResponse), args.Error(1)
}

func (m *MockCourseUseCase) GetCourse(ctx context.Context, id string) (*entity.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Course), args.Error(1)
}

func (m *MockCourseUseCase) CreateCourse(ctx context.Context, req inbound.CourseRequest) (*entity.Course, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Course), args.Error(1)
}

func (m *MockCourseUseCase) UpdateCourse(ctx context.Context, id string, req inbound.UpdateCourseRequest) (*entity.Course, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Course), args.Error(1)
}

func (m *MockCourseUseCase) DeleteCourse(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAIUseCase struct {
	mock.Mock
}

func (m *MockAIUseCase) GenerateQuiz(ctx context.Context, req inbound.VideoRequest) (json.RawMessage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockAIUseCase) GenerateSummary(ctx context.Context, req inbound.VideoRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockAIUseCase) GenerateAnswer(ctx context.Context, req inbound.QuestionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockAIUseCase) Chat(ctx context.Context, req inbound.ChatRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockAIUseCase) ChatWithRAG(ctx context.Context, req inbound.QuestionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
