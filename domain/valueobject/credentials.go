package valueobject

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrMissingEmail     = errors.New("email is required")
	ErrMissingPassword  = errors.New("password is required")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Credentials struct {
	email    string
	password string
}

func NewCredentials(email, password string) (*Credentials, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrMissingEmail
	}
	if password == "" {
		return nil, ErrMissingPassword
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	return &Credentials{
		email:    strings.ToLower(email),
		password: password,
	}, nil
}

// NewRegistrationCredentials also checks the confirmation password.
func NewRegistrationCredentials(email, password, confirmation string) (*Credentials, error) {
	creds, err := NewCredentials(email, password)
	if err != nil {
		return nil, err
	}
	if password != confirmation {
		return nil, ErrPasswordMismatch
	}
	return creds, nil
}

func (c *Credentials) Email() string {
	return c.email
}

func (c *Credentials) Password() string {
	return c.password
}

func validateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}
