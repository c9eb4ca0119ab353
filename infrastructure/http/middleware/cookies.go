package middleware

import (
	"net/http"
	"time"

	"github.com/learnhub/learnhub/domain/valueobject"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// CookieConfig holds the attributes shared by every session cookie.
type CookieConfig struct {
	Secure   bool
	SameSite http.SameSite
	Domain   string
}

// SetToken writes one HttpOnly cookie whose lifetime mirrors the token TTL.
func (c CookieConfig) SetToken(w http.ResponseWriter, name string, token valueobject.IssuedToken) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token.Value,
		Path:     "/",
		Domain:   c.Domain,
		MaxAge:   token.MaxAge,
		Expires:  token.ExpiresAt,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

func (c CookieConfig) SetSession(w http.ResponseWriter, pair *valueobject.TokenPair) {
	c.SetToken(w, AccessTokenCookie, pair.AccessToken)
	c.SetToken(w, RefreshTokenCookie, pair.RefreshToken)
}

func (c CookieConfig) ClearSession(w http.ResponseWriter) {
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Domain:   c.Domain,
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HttpOnly: true,
			Secure:   c.Secure,
			SameSite: c.SameSite,
		})
	}
}

// ReadTokens returns the access and refresh cookie values; absent cookies read as "".
func ReadTokens(r *http.Request) (access, refresh string) {
	if c, err := r.Cookie(AccessTokenCookie); err == nil {
		access = c.Value
	}
	if c, err := r.Cookie(RefreshTokenCookie); err == nil {
		refresh = c.Value
	}
	return access, refresh
}
