package user_management

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/learnhub/learnhub/application/port/inbound"
	"github.com/learnhub/learnhub/application/port/outbound"
	"github.com/learnhub/learnhub/domain/entity"
	domainerr "github.com/learnhub/learnhub/domain/error"
	"github.com/learnhub/learnhub/domain/valueobject"
)

func validRequest() inbound.CreateUserRequest {
	return inbound.CreateUserRequest{
		Name:            "Ann",
		Email:           "Ann@Example.com",
		Password:        "secret",
		ConfirmPassword: "secret",
	}
}

func TestCreateUserUseCase_Success(t *testing.T) {
	repo := new(MockUserRepository)
	pwd := new(MockPasswordService)
	repo.On("FindByEmail", mock.Anything, "ann@example.com").Return(nil, nil)
	pwd.On("HashPassword", "secret").Return("hashed", nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.ID != "" &&
			u.Name == "Ann" &&
			u.Email == "ann@example.com" &&
			u.Password == "hashed" &&
			u.Role == valueobject.RoleUser &&
			u.ProfilePic == entity.DefaultProfilePic
	})).Return(nil)

	err := NewCreateUserUseCase(repo, pwd).Execute(context.Background(), validRequest())

	require.NoError(t, err)
	repo.AssertExpectations(t)
	pwd.AssertExpectations(t)
}

func TestCreateUserUseCase_AdminRole(t *testing.T) {
	repo := new(MockUserRepository)
	pwd := new(MockPasswordService)
	repo.On("FindByEmail", mock.Anything, "ann@example.com").Return(nil, nil)
	pwd.On("HashPassword", "secret").Return("hashed", nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Role == valueobject.RoleAdmin
	})).Return(nil)

	req := validRequest()
	req.Role = "admin"
	require.NoError(t, NewCreateUserUseCase(repo, pwd).Execute(context.Background(), req))
	repo.AssertExpectations(t)
}

func TestCreateUserUseCase_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*inbound.CreateUserRequest)
		setup    func(*MockUserRepository)
		wantCode domainerr.ErrorCode
	}{
		{name: "missing name", mutate: func(r *inbound.CreateUserRequest) { r.Name = " " }, wantCode: domainerr.ErrCodeMissingField},
		{name: "missing email", mutate: func(r *inbound.CreateUserRequest) { r.Email = "" }, wantCode: domainerr.ErrCodeMissingField},
		{name: "missing password", mutate: func(r *inbound.CreateUserRequest) { r.Password = "" }, wantCode: domainerr.ErrCodeMissingField},
		{name: "bad email", mutate: func(r *inbound.CreateUserRequest) { r.Email = "nope" }, wantCode: domainerr.ErrCodeInvalidEmail},
		{name: "mismatch", mutate: func(r *inbound.CreateUserRequest) { r.ConfirmPassword = "other" }, wantCode: domainerr.ErrCodePasswordMismatch},
		{name: "unknown role", mutate: func(r *inbound.CreateUserRequest) { r.Role = "root" }, wantCode: domainerr.ErrCodeInvalidRequest},
		{
			name: "exists",
			setup: func(repo *MockUserRepository) {
				repo.On("FindByEmail", mock.Anything, "ann@example.com").Return(&entity.User{ID: "u-1"}, nil)
			},
			wantCode: domainerr.ErrCodeUserAlreadyExists,
		},
		{
			name: "store down",
			setup: func(repo *MockUserRepository) {
				repo.On("FindByEmail", mock.Anything, "ann@example.com").Return(nil, errors.New("connection refused"))
			},
			wantCode: domainerr.ErrCodeDownstreamUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			pwd := new(MockPasswordService)
			if tt.setup != nil {
				tt.setup(repo)
			}
			req := validRequest()
			if tt.mutate != nil {
				tt.mutate(&req)
			}

			err := NewCreateUserUseCase(repo, pwd).Execute(context.Background(), req)

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, domainerr.CodeOf(err))
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateUserUseCase_RaceOnInsert(t *testing.T) {
	repo := new(MockUserRepository)
	pwd := new(MockPasswordService)
	repo.On("FindByEmail", mock.Anything, "ann@example.com").Return(nil, nil)
	pwd.On("HashPassword", "secret").Return("hashed", nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(outbound.ErrUserAlreadyExists)

	err := NewCreateUserUseCase(repo, pwd).Execute(context.Background(), validRequest())

	assert.Equal(t, domainerr.ErrCodeUserAlreadyExists, domainerr.CodeOf(err))
}
