package outbound

import "context"

// OAuthProfile is what the identity provider tells us about the signed-in account.
type OAuthProfile struct {
	Email   string
	Name    string
	Picture string
}

type OAuthProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*OAuthProfile, error)
}
