package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/learnhub/learnhub/application/port/inbound"
	"github.com/learnhub/learnhub/application/port/outbound"
	"github.com/learnhub/learnhub/domain/entity"
	domainerr "github.com/learnhub/learnhub/domain/error"
	"github.com/learnhub/learnhub/domain/valueobject"
)

type AuthUseCase struct {
	users           inbound.UserManagementUseCase
	userRepo        outbound.UserRepository
	passwordService outbound.PasswordService
	issuer          *SessionIssuer
	gate            *AccessGate
	oauth           outbound.OAuthProvider
	clientURL       string
}

// NewAuthUseCase wires the login flows. oauth may be nil when Google sign-in is not configured.
func NewAuthUseCase(
	users inbound.UserManagementUseCase,
	userRepo outbound.UserRepository,
	passwordService outbound.PasswordService,
	tokenService outbound.TokenService,
	oauth outbound.OAuthProvider,
	clientURL string,
) *AuthUseCase {
	return &AuthUseCase{
		users:           users,
		userRepo:        userRepo,
		passwordService: passwordService,
		issuer:          NewSessionIssuer(tokenService),
		gate:            NewAccessGate(tokenService),
		oauth:           oauth,
		clientURL:       strings.TrimRight(clientURL, "/"),
	}
}

func (uc *AuthUseCase) Register(ctx context.Context, req inbound.RegisterRequest) error {
	return uc.users.CreateUser(ctx, inbound.CreateUserRequest{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            req.Role,
	})
}

func (uc *AuthUseCase) Login(ctx context.Context, req inbound.LoginRequest) (*inbound.LoginResponse, error) {
	credentials, err := valueobject.NewCredentials(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, valueobject.ErrMissingEmail):
			return nil, domainerr.ErrMissingField("email")
		case errors.Is(err, valueobject.ErrMissingPassword):
			return nil, domainerr.ErrMissingField("pwd")
		}
		return nil, domainerr.ErrInvalidCredentials("malformed email")
	}

	user, err := uc.userRepo.FindByEmail(ctx, credentials.Email())
	if err != nil {
		return nil, domainerr.ErrDownstream("find user by email", err)
	}
	if user == nil {
		return nil, domainerr.ErrInvalidCredentials("unknown email")
	}

	match, err := uc.passwordService.VerifyPassword(credentials.Password(), user.Password)
	if err != nil {
		return nil, domainerr.ErrInternal("failed to verify password", err)
	}
	if !match {
		return nil, domainerr.ErrInvalidCredentials("password mismatch")
	}

	return uc.startSession(user)
}

// RestoreSession admits or rejects exactly as the access gate does for protected routes.
func (uc *AuthUseCase) RestoreSession(ctx context.Context, req inbound.SessionRequest) (*inbound.SessionResponse, error) {
	decision := uc.gate.Evaluate(GateInput{
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
	})
	if !decision.Admit {
		return nil, decision.Err
	}
	return &inbound.SessionResponse{
		Payload:  decision.Identity,
		Reissued: decision.Reissued,
	}, nil
}

func (uc *AuthUseCase) OAuthConsentURL(state string) (string, error) {
	if uc.oauth == nil {
		return "", domainerr.ErrOAuthFailed("oauth provider not configured", nil)
	}
	return uc.oauth.AuthCodeURL(state), nil
}

// OAuthLogin signs in an existing account by its provider email. Unknown emails are refused
// rather than registered.
func (uc *AuthUseCase) OAuthLogin(ctx context.Context, code string) (*inbound.OAuthLoginResponse, error) {
	if uc.oauth == nil {
		return nil, domainerr.ErrOAuthFailed("oauth provider not configured", nil)
	}
	if code == "" {
		return nil, domainerr.ErrOAuthFailed("missing authorization code", nil)
	}

	profile, err := uc.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, domainerr.ErrOAuthFailed("code exchange failed", err)
	}

	email := strings.ToLower(strings.TrimSpace(profile.Email))
	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domainerr.ErrDownstream("find user by email", err)
	}
	if user == nil {
		return nil, domainerr.ErrInvalidCredentials("no account for oauth email")
	}

	if profile.Picture != "" && profile.Picture != user.ProfilePic {
		if err := uc.userRepo.UpdateProfilePic(ctx, user.ID, profile.Picture); err != nil {
			return nil, domainerr.ErrDownstream("update profile picture", err)
		}
		user.ProfilePic = profile.Picture
	}

	session, err := uc.startSession(user)
	if err != nil {
		return nil, err
	}

	home := "/user/home"
	if user.Role == valueobject.RoleAdmin {
		home = "/admin/home"
	}

	return &inbound.OAuthLoginResponse{
		LoginResponse: *session,
		RedirectURL:   uc.clientURL + home,
	}, nil
}

func (uc *AuthUseCase) startSession(user *entity.User) (*inbound.LoginResponse, error) {
	identity := outbound.Identity{
		UserID:     user.ID,
		Email:      user.Email,
		Role:       user.Role,
		ProfilePic: user.ProfilePic,
	}
	pair, err := uc.issuer.Issue(identity)
	if err != nil {
		return nil, domainerr.ErrInternal("failed to issue session", err)
	}
	return &inbound.LoginResponse{
		UserData: identity,
		Tokens:   pair,
	}, nil
}
