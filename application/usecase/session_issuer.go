package usecase

import (
	"fmt"

	"github.com/learnhub/learnhub/application/port/outbound"
	"github.com/learnhub/learnhub/domain/valueobject"
)

// SessionIssuer mints credentials from claims. It keeps no record of what it issued.
type SessionIssuer struct {
	tokens outbound.TokenService
}

func NewSessionIssuer(tokens outbound.TokenService) *SessionIssuer {
	return &SessionIssuer{tokens: tokens}
}

// Issue signs the same identity twice: once as a short-lived access token and once as a
// long-lived refresh token.
func (s *SessionIssuer) Issue(identity outbound.Identity) (*valueobject.TokenPair, error) {
	access, err := s.mint(identity, outbound.AccessToken)
	if err != nil {
		return nil, err
	}
	refresh, err := s.mint(identity, outbound.RefreshToken)
	if err != nil {
		return nil, err
	}
	return valueobject.NewTokenPair(*access, *refresh), nil
}

// Reissue mints a fresh access token carrying the identity of already-verified refresh claims.
func (s *SessionIssuer) Reissue(claims *outbound.TokenClaims) (*valueobject.IssuedToken, *outbound.TokenClaims, error) {
	if claims == nil {
		return nil, nil, fmt.Errorf("reissue: nil claims")
	}
	token, minted, err := s.tokens.Sign(claims.Identity, outbound.AccessToken)
	if err != nil {
		return nil, nil, fmt.Errorf("reissue access token: %w", err)
	}
	return &valueobject.IssuedToken{
		Value:     token,
		ExpiresAt: minted.ExpiresAt,
		MaxAge:    int(s.tokens.TTL(outbound.AccessToken).Seconds()),
	}, minted, nil
}

func (s *SessionIssuer) mint(identity outbound.Identity, kind outbound.TokenKind) (*valueobject.IssuedToken, error) {
	token, claims, err := s.tokens.Sign(identity, kind)
	if err != nil {
		return nil, fmt.Errorf("issue %s token: %w", kind, err)
	}
	return &valueobject.IssuedToken{
		Value:     token,
		ExpiresAt: claims.ExpiresAt,
		MaxAge:    int(s.tokens.TTL(kind).Seconds()),
	}, nil
}
