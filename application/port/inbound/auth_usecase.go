package inbound

import (
	"context"

	"github.com/learnhub/learnhub/application/port/outbound"
	"github.com/learnhub/learnhub/domain/valueobject"
)

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"pwd"`
	ConfirmPassword string `json:"confpwd"`
	Role            string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"pwd"`
}

// LoginResponse carries the claims shown to the client and the tokens the transport turns
// into cookies. Tokens never appear in the response body.
type LoginResponse struct {
	UserData outbound.Identity      `json:"userData"`
	Tokens   *valueobject.TokenPair `json:"-"`
}

type SessionRequest struct {
	AccessToken  string
	RefreshToken string
}

type SessionResponse struct {
	Payload  *outbound.TokenClaims    `json:"payload"`
	Reissued *valueobject.IssuedToken `json:"-"`
}

type OAuthLoginResponse struct {
	LoginResponse
	RedirectURL string `json:"-"`
}

type AuthUseCase interface {
	Register(ctx context.Context, req RegisterRequest) error
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	// RestoreSession runs the access gate on the presented tokens.
	RestoreSession(ctx context.Context, req SessionRequest) (*SessionResponse, error)
	OAuthConsentURL(state string) (string, error)
	OAuthLogin(ctx context.Context, code string) (*OAuthLoginResponse, error)
}
