package jwt

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/learnhub/learnhub/application/port/outbound"
	domainerr "github.com/learnhub/learnhub/domain/error"
	"github.com/learnhub/learnhub/domain/valueobject"
)

var (
	ErrMissingSecret   = errors.New("signing secret is required")
	ErrSharedSecret    = errors.New("access and refresh secrets must differ")
	ErrInvalidTTL      = errors.New("token TTL must be positive")
	ErrEmptyIdentity   = errors.New("identity requires a subject or an email")
	ErrUnsupportedRole = errors.New("identity role is not supported")
)

// Config holds the two independent signing keys and their validity windows.
type Config struct {
	AccessSecret    string
	RefreshSecret   string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	Issuer          string
}

type keyring struct {
	secret []byte
	ttl    time.Duration
}

// JWTService is the token codec. It is immutable after construction and safe for concurrent use.
type JWTService struct {
	keys   map[outbound.TokenKind]keyring
	issuer string
	now    func() time.Time
}

var _ outbound.TokenService = (*JWTService)(nil)

// tokenClaims is the wire form of outbound.TokenClaims.
type tokenClaims struct {
	Email      string `json:"email,omitempty"`
	Role       string `json:"role"`
	ProfilePic string `json:"profilePic,omitempty"`
	Type       string `json:"typ"`
	jwt.RegisteredClaims
}

type Option func(*JWTService)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *JWTService) {
		s.now = now
	}
}

func NewJWTService(cfg Config, opts ...Option) (*JWTService, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, ErrMissingSecret
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, ErrSharedSecret
	}
	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 {
		return nil, ErrInvalidTTL
	}

	service := &JWTService{
		keys: map[outbound.TokenKind]keyring{
			outbound.AccessToken:  {secret: []byte(cfg.AccessSecret), ttl: cfg.AccessTokenTTL},
			outbound.RefreshToken: {secret: []byte(cfg.RefreshSecret), ttl: cfg.RefreshTokenTTL},
		},
		issuer: cfg.Issuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service, nil
}

func (s *JWTService) TTL(kind outbound.TokenKind) time.Duration {
	return s.keys[kind].ttl
}

// Sign encodes identity plus iat/exp and signs it with the key of kind.
func (s *JWTService) Sign(identity outbound.Identity, kind outbound.TokenKind) (string, *outbound.TokenClaims, error) {
	key, ok := s.keys[kind]
	if !ok {
		return "", nil, fmt.Errorf("unknown token kind: %s", kind)
	}
	if identity.UserID == "" && identity.Email == "" {
		return "", nil, ErrEmptyIdentity
	}
	if !identity.Role.Valid() {
		return "", nil, ErrUnsupportedRole
	}

	// NumericDate has second precision; truncate so the returned claims equal what Verify yields.
	issuedAt := s.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(key.ttl)

	claims := tokenClaims{
		Email:      identity.Email,
		Role:       identity.Role.String(),
		ProfilePic: identity.ProfilePic,
		Type:       string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(key.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign %s token: %w", kind, err)
	}

	return tokenString, &outbound.TokenClaims{
		Identity:  identity,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks signature, then expiry, then claim types. A complete token whose signature does
// not match is reported as InvalidSignature whatever its payload holds or when it expired.
func (s *JWTService) Verify(tokenString string, kind outbound.TokenKind) (*outbound.TokenClaims, error) {
	key, ok := s.keys[kind]
	if !ok {
		return nil, domainerr.ErrInvalidSignature(fmt.Sprintf("unknown token kind: %s", kind), nil)
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithJSONNumber(),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if s.issuer != "" {
		options = append(options, jwt.WithIssuer(s.issuer))
	}

	// MapClaims accepts any JSON object, so the signature is checked before field types are.
	raw := jwt.MapClaims{}
	_, err := jwt.NewParser(options...).ParseWithClaims(tokenString, raw, func(t *jwt.Token) (interface{}, error) {
		return key.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) && forgedSignature(tokenString, key.secret) {
			return nil, domainerr.ErrInvalidSignature("", err)
		}
		return nil, s.handleValidationError(err)
	}

	claims, err := decodeClaims(raw)
	if err != nil {
		return nil, domainerr.ErrMalformedPayload("unexpected claim types", err)
	}

	if claims.Type != string(kind) {
		return nil, domainerr.ErrInvalidSignature("token type mismatch", nil)
	}
	role, err := valueobject.ParseRole(claims.Role)
	if err != nil {
		return nil, domainerr.ErrMalformedPayload("unknown role", err)
	}
	if claims.IssuedAt == nil || !claims.ExpiresAt.After(claims.IssuedAt.Time) {
		return nil, domainerr.ErrMalformedPayload("expiry not after issued-at", nil)
	}

	return &outbound.TokenClaims{
		Identity: outbound.Identity{
			UserID:     claims.Subject,
			Email:      claims.Email,
			Role:       role,
			ProfilePic: claims.ProfilePic,
		},
		IssuedAt:  claims.IssuedAt.Time.UTC(),
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}

func (s *JWTService) handleValidationError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return domainerr.ErrMalformedPayload("", err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return domainerr.ErrInvalidSignature("", err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return domainerr.ErrTokenExpired("", err)
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return domainerr.ErrMalformedPayload("required claim missing", err)
	case errors.Is(err, jwt.ErrInvalidType):
		return domainerr.ErrMalformedPayload("registered claim has the wrong type", err)
	}
	return domainerr.ErrInvalidSignature("", err)
}

// decodeClaims converts verified claims into the typed form.
func decodeClaims(raw jwt.MapClaims) (*tokenClaims, error) {
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var claims tokenClaims
	if err := json.Unmarshal(b, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

// forgedSignature reports whether a three-segment token carries an HS256 signature that does
// not match its first two segments, whatever those segments contain.
func forgedSignature(tokenString string, secret []byte) bool {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return false
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return false
	}
	return jwt.SigningMethodHS256.Verify(parts[0]+"."+parts[1], sig, secret) != nil
}
