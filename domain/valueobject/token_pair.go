package valueobject

import "time"

// IssuedToken is a signed credential together with what the transport needs to carry it.
type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
	MaxAge    int // seconds, mirrors the token TTL
}

type TokenPair struct {
	AccessToken  IssuedToken
	RefreshToken IssuedToken
}

func NewTokenPair(accessToken, refreshToken IssuedToken) *TokenPair {
	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
}
