package user_management

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/learnhub/learnhub/application/port/inbound"
	"github.com/learnhub/learnhub/application/port/outbound"
	"github.com/learnhub/learnhub/domain/entity"
	domainerr "github.com/learnhub/learnhub/domain/error"
	"github.com/learnhub/learnhub/domain/valueobject"
)

type CreateUserUseCase struct {
	userRepo    outbound.UserRepository
	passwordSvc outbound.PasswordService
}

func NewCreateUserUseCase(
	userRepo outbound.UserRepository,
	passwordSvc outbound.PasswordService,
) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, req inbound.CreateUserRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domainerr.ErrMissingField("name")
	}

	creds, err := valueobject.NewRegistrationCredentials(req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		return mapCredentialError(err, req.Email)
	}

	role := valueobject.RoleUser
	if req.Role != "" {
		role, err = valueobject.ParseRole(req.Role)
		if err != nil {
			return domainerr.ErrInvalidRequest("role must be User or Admin")
		}
	}

	// Check if email already exists
	existing, err := uc.userRepo.FindByEmail(ctx, creds.Email())
	if err != nil {
		return domainerr.ErrDownstream("find user by email", err)
	}
	if existing != nil {
		return domainerr.ErrUserAlreadyExists(creds.Email())
	}

	hashedPassword, err := uc.passwordSvc.HashPassword(creds.Password())
	if err != nil {
		return domainerr.ErrInternal("failed to hash password", err)
	}

	user := entity.NewUser(uuid.NewString(), name, creds.Email(), hashedPassword, role)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, outbound.ErrUserAlreadyExists) {
			return domainerr.ErrUserAlreadyExists(creds.Email())
		}
		return domainerr.ErrDownstream("create user", err)
	}

	return nil
}

func mapCredentialError(err error, email string) error {
	switch {
	case errors.Is(err, valueobject.ErrMissingEmail):
		return domainerr.ErrMissingField("email")
	case errors.Is(err, valueobject.ErrMissingPassword):
		return domainerr.ErrMissingField("pwd")
	case errors.Is(err, valueobject.ErrInvalidEmail):
		return domainerr.ErrInvalidEmail(email)
	case errors.Is(err, valueobject.ErrPasswordMismatch):
		return domainerr.ErrPasswordMismatch()
	}
	return domainerr.ErrInvalidRequest(err.Error())
}
