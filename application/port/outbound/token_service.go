package outbound

import (
	"time"

	"github.com/learnhub/learnhub/domain/valueobject"
)

// TokenKind selects the signing secret and validity window of a token.
type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

// Identity is the part of the claims chosen by the application; timestamps are added when signing.
type Identity struct {
	UserID     string           `json:"_id"`
	Email      string           `json:"email"`
	Role       valueobject.Role `json:"role"`
	ProfilePic string           `json:"profilePic,omitempty"`
}

// TokenClaims is the decoded, verified payload of a token.
type TokenClaims struct {
	Identity
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// TokenService signs and verifies credentials. Verify fails with a domain error whose code is
// one of MalformedPayload, InvalidSignature or TokenExpired.
type TokenService interface {
	Sign(identity Identity, kind TokenKind) (string, *TokenClaims, error)
	Verify(token string, kind TokenKind) (*TokenClaims, error)
	TTL(kind TokenKind) time.Duration
}
