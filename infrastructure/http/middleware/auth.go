package middleware

import (
	"context"
	"net/http"

	"github.com/learnhub/learnhub/application/port/inbound"
	"github.com/learnhub/learnhub/application/port/outbound"
	"github.com/learnhub/learnhub/application/usecase"
	domainerr "github.com/learnhub/learnhub/domain/error"
	"github.com/learnhub/learnhub/domain/valueobject"
	"github.com/learnhub/learnhub/infrastructure/http/response"
	"github.com/learnhub/learnhub/infrastructure/service/logger"
)

type identityKey struct{}

type AuthMiddleware struct {
	gate    *usecase.AccessGate
	cookies CookieConfig
	metrics inbound.GateMetrics
	logger  logger.Logger
}

func NewAuthMiddleware(gate *usecase.AccessGate, cookies CookieConfig, metrics inbound.GateMetrics, log logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		gate:    gate,
		cookies: cookies,
		metrics: metrics,
		logger:  log,
	}
}

// RequireAuth admits the request when the access cookie is valid, or when it can be
// repaired from the refresh cookie. A repaired session gets the new access cookie.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		access, refresh := ReadTokens(r)

		decision := m.gate.Evaluate(usecase.GateInput{AccessToken: access, RefreshToken: refresh})
		m.metrics.ObserveGateDecision(string(decision.Outcome))

		if !decision.Admit {
			m.logger.Warn(ctx, "Access denied", map[string]interface{}{
				"path":   r.URL.Path,
				"reason": string(domainerr.CodeOf(decision.Err)),
				"detail": decision.Err.Error(),
			})
			response.FromError(w, decision.Err)
			return
		}

		if decision.Reissued != nil {
			m.cookies.SetToken(w, AccessTokenCookie, *decision.Reissued)
			m.logger.Info(ctx, "Access token reissued", map[string]interface{}{
				"user_id": decision.Identity.UserID,
			})
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, decision.Identity)))
	})
}

// RequireRole must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(required valueobject.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			identity := GetIdentity(ctx)

			if err := usecase.Authorize(identity, required); err != nil {
				m.metrics.ObserveForbidden(required.String())
				if identity == nil {
					logger.LogSecurityEvent(ctx, m.logger, "role_check_without_identity", "HIGH", map[string]interface{}{
						"path":     r.URL.Path,
						"required": required.String(),
					})
				} else {
					logger.LogSecurityEvent(ctx, m.logger, "role_check_failed", "MEDIUM", map[string]interface{}{
						"path":     r.URL.Path,
						"required": required.String(),
						"role":     identity.Role.String(),
						"user_id":  identity.UserID,
					})
				}
				response.FromError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func WithIdentity(ctx context.Context, identity *outbound.TokenClaims) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity retrieves the admitted caller from context
func GetIdentity(ctx context.Context) *outbound.TokenClaims {
	if claims, ok := ctx.Value(identityKey{}).(*outbound.TokenClaims); ok {
		return claims
	}
	return nil
}
