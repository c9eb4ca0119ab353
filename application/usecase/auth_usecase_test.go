package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/learnhub/learnhub/application/port/inbound"
	"github.com/learnhub/learnhub/application/port/outbound"
	"github.com/learnhub/learnhub/domain/entity"
	domainerr "github.com/learnhub/learnhub/domain/error"
	"github.com/learnhub/learnhub/domain/valueobject"
)

type authDeps struct {
	users *MockUserManagement
	repo  *MockUserRepository
	pwd   *MockPasswordService
	oauth *MockOAuthProvider
	clock *testClock
	codec outbound.TokenService
}

func newAuthUseCase(t *testing.T, withOAuth bool) (*AuthUseCase, *authDeps) {
	t.Helper()
	codec, clock := newCodec(t)
	d := &authDeps{
		users: new(MockUserManagement),
		repo:  new(MockUserRepository),
		pwd:   new(MockPasswordService),
		clock: clock,
		codec: codec,
	}
	var provider outbound.OAuthProvider
	if withOAuth {
		d.oauth = new(MockOAuthProvider)
		provider = d.oauth
	}
	return NewAuthUseCase(d.users, d.repo, d.pwd, codec, provider, "http://localhost:5173/"), d
}

func storedUser(role valueobject.Role) *entity.User {
	return &entity.User{
		ID:         "u-1",
		Name:       "Ann",
		Email:      "ann@example.com",
		Password:   "hashed",
		Role:       role,
		ProfilePic: entity.DefaultProfilePic,
	}
}

func TestAuthUseCase_RegisterDelegates(t *testing.T) {
	uc, d := newAuthUseCase(t, false)
	d.users.On("CreateUser", mock.Anything, inbound.CreateUserRequest{
		Name: "Ann", Email: "ann@example.com", Password: "p", ConfirmPassword: "p",
	}).Return(nil)

	err := uc.Register(context.Background(), inbound.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "p", ConfirmPassword: "p"})

	require.NoError(t, err)
	d.users.AssertExpectations(t)
}

func TestAuthUseCase_LoginIssuesSession(t *testing.T) {
	uc, d := newAuthUseCase(t, false)
	d.repo.On("FindByEmail", mock.Anything, "ann@example.com").Return(storedUser(valueobject.RoleUser), nil)
	d.pwd.On("VerifyPassword", "secret", "hashed").Return(true, nil)

	res, err := uc.Login(context.Background(), inbound.LoginRequest{Email: " Ann@Example.com ", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "u-1", res.UserData.UserID)
	assert.Equal(t, valueobject.RoleUser, res.UserData.Role)
	require.NotNil(t, res.Tokens)
	assert.Equal(t, 1800, res.Tokens.AccessToken.MaxAge)
	assert.Equal(t, 604800, res.Tokens.RefreshToken.MaxAge)

	claims, err := d.codec.Verify(res.Tokens.AccessToken.Value, outbound.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", claims.Email)
	_, err = d.codec.Verify(res.Tokens.RefreshToken.Value, outbound.RefreshToken)
	require.NoError(t, err)
}

func TestAuthUseCase_LoginFailures(t *testing.T) {
	tests := []struct {
		name     string
		req      inbound.LoginRequest
		setup    func(*authDeps)
		wantCode domainerr.ErrorCode
	}{
		{name: "missing email", req: inbound.LoginRequest{Password: "x"}, wantCode: domainerr.ErrCodeMissingField},
		{name: "missing password", req: inbound.LoginRequest{Email: "a@b.com"}, wantCode: domainerr.ErrCodeMissingField},
		{name: "malformed email", req: inbound.LoginRequest{Email: "nope", Password: "x"}, wantCode: domainerr.ErrCodeInvalidCredentials},
		{
			name: "unknown email",
			req:  inbound.LoginRequest{Email: "a@b.com", Password: "x"},
			setup: func(d *authDeps) {
				d.repo.On("FindByEmail", mock.Anything, "a@b.com").Return(nil, nil)
			},
			wantCode: domainerr.ErrCodeInvalidCredentials,
		},
		{
			name: "wrong password",
			req:  inbound.LoginRequest{Email: "ann@example.com", Password: "bad"},
			setup: func(d *authDeps) {
				d.repo.On("FindByEmail", mock.Anything, "ann@example.com").Return(storedUser(valueobject.RoleUser), nil)
				d.pwd.On("VerifyPassword", "bad", "hashed").Return(false, nil)
			},
			wantCode: domainerr.ErrCodeInvalidCredentials,
		},
		{
			name: "store down",
			req:  inbound.LoginRequest{Email: "ann@example.com", Password: "x"},
			setup: func(d *authDeps) {
				d.repo.On("FindByEmail", mock.Anything, "ann@example.com").Return(nil, errors.New("dial tcp: refused"))
			},
			wantCode: domainerr.ErrCodeDownstreamUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, d := newAuthUseCase(t, false)
			if tt.setup != nil {
				tt.setup(d)
			}

			res, err := uc.Login(context.Background(), tt.req)

			assert.Nil(t, res)
			assert.Equal(t, tt.wantCode, domainerr.CodeOf(err))
		})
	}
}

func TestAuthUseCase_LoginStoreFailure(t *testing.T) {
	uc, d := newAuthUseCase(t, false)
	d.repo.On("FindByEmail", mock.Anything, "ann@example.com").Return(nil, errors.New("dial tcp: refused"))

	_, err := uc.Login(context.Background(), inbound.LoginRequest{Email: "ann@example.com", Password: "x"})

	assert.ErrorIs(t, err, domainerr.ErrDownstreamUnavailable)
	d.pwd.AssertNotCalled(t, "VerifyPassword", mock.Anything, mock.Anything)
}

func TestAuthUseCase_RestoreSession(t *testing.T) {
	uc, d := newAuthUseCase(t, false)
	pair, err := NewSessionIssuer(d.codec).Issue(scenarioIdentity())
	require.NoError(t, err)

	d.clock.Set(10 * time.Minute)
	res, err := uc.RestoreSession(context.Background(), inbound.SessionRequest{AccessToken: pair.AccessToken.Value})
	require.NoError(t, err)
	assert.Equal(t, "u-1", res.Payload.UserID)
	assert.Nil(t, res.Reissued)

	d.clock.Set(45 * time.Minute)
	res, err = uc.RestoreSession(context.Background(), inbound.SessionRequest{
		AccessToken:  pair.AccessToken.Value,
		RefreshToken: pair.RefreshToken.Value,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Reissued)
	assert.Equal(t, t0.Add(75*time.Minute), res.Reissued.ExpiresAt)

	_, err = uc.RestoreSession(context.Background(), inbound.SessionRequest{AccessToken: pair.AccessToken.Value})
	assert.True(t, domainerr.IsTokenFailure(err))
}

func TestAuthUseCase_OAuthLogin(t *testing.T) {
	t.Run("existing admin with new picture", func(t *testing.T) {
		uc, d := newAuthUseCase(t, true)
		d.oauth.On("Exchange", mock.Anything, "code-1").Return(&outbound.OAuthProfile{Email: "Ann@Example.com", Picture: "https://img/new.png"}, nil)
		d.repo.On("FindByEmail", mock.Anything, "ann@example.com").Return(storedUser(valueobject.RoleAdmin), nil)
		d.repo.On("UpdateProfilePic", mock.Anything, "u-1", "https://img/new.png").Return(nil)

		res, err := uc.OAuthLogin(context.Background(), "code-1")

		require.NoError(t, err)
		assert.Equal(t, "http://localhost:5173/admin/home", res.RedirectURL)
		assert.Equal(t, "https://img/new.png", res.UserData.ProfilePic)
		require.NotNil(t, res.Tokens)
		d.repo.AssertExpectations(t)
	})

	t.Run("learner keeps picture", func(t *testing.T) {
		uc, d := newAuthUseCase(t, true)
		d.oauth.On("Exchange", mock.Anything, "code-1").Return(&outbound.OAuthProfile{Email: "ann@example.com", Picture: entity.DefaultProfilePic}, nil)
		d.repo.On("FindByEmail", mock.Anything, "ann@example.com").Return(storedUser(valueobject.RoleUser), nil)

		res, err := uc.OAuthLogin(context.Background(), "code-1")

		require.NoError(t, err)
		assert.Equal(t, "http://localhost:5173/user/home", res.RedirectURL)
		d.repo.AssertNotCalled(t, "UpdateProfilePic", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown account", func(t *testing.T) {
		uc, d := newAuthUseCase(t, true)
		d.oauth.On("Exchange", mock.Anything, "code-1").Return(&outbound.OAuthProfile{Email: "new@example.com"}, nil)
		d.repo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, nil)

		_, err := uc.OAuthLogin(context.Background(), "code-1")

		assert.Equal(t, domainerr.ErrCodeInvalidCredentials, domainerr.CodeOf(err))
		d.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("exchange fails", func(t *testing.T) {
		uc, d := newAuthUseCase(t, true)
		d.oauth.On("Exchange", mock.Anything, "bad").Return(nil, errors.New("invalid_grant"))

		_, err := uc.OAuthLogin(context.Background(), "bad")

		assert.Equal(t, domainerr.ErrCodeOAuthFailed, domainerr.CodeOf(err))
	})

	t.Run("not configured", func(t *testing.T) {
		uc, _ := newAuthUseCase(t, false)

		_, err := uc.OAuthConsentURL("s")
		assert.Equal(t, domainerr.ErrCodeOAuthFailed, domainerr.CodeOf(err))
		_, err = uc.OAuthLogin(context.Background(), "code-1")
		assert.Equal(t, domainerr.ErrCodeOAuthFailed, domainerr.CodeOf(err))
	})
}

func TestAuthUseCase_OAuthConsentURL(t *testing.T) {
	uc, d := newAuthUseCase(t, true)
	d.oauth.On("AuthCodeURL", "state-1").Return("https://accounts.example/auth?state=state-1")

	url, err := uc.OAuthConsentURL("state-1")

	require.NoError(t, err)
	assert.Equal(t, "https://accounts.example/auth?state=state-1", url)
}
