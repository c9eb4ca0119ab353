package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/learnhub/learnhub/application/port/inbound"
	domainerr "github.com/learnhub/learnhub/domain/error"
	"github.com/learnhub/learnhub/infrastructure/http/middleware"
	"github.com/learnhub/learnhub/infrastructure/http/response"
	"github.com/learnhub/learnhub/infrastructure/http/validator"
	"github.com/learnhub/learnhub/infrastructure/service/logger"
)

const oauthStateCookie = "oauthState"

type AuthHandler struct {
	authUseCase inbound.AuthUseCase
	cookies     middleware.CookieConfig
	limiter     *middleware.RateLimitMiddleware
	logger      logger.Logger
}

// NewAuthHandler builds the handler; limiter may be nil.
func NewAuthHandler(authUseCase inbound.AuthUseCase, cookies middleware.CookieConfig, limiter *middleware.RateLimitMiddleware, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		cookies:     cookies,
		limiter:     limiter,
		logger:      log,
	}
}

func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.Handle("/register", h.limited("register", h.Register)).Methods(http.MethodPost)
	router.Handle("/login", h.limited("login", h.Login)).Methods(http.MethodPost)
	router.HandleFunc("/login/tokenized", h.Tokenized).Methods(http.MethodPost)
	router.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)
	router.HandleFunc("/login/oauth/google", h.OAuthConsent).Methods(http.MethodGet)
	router.HandleFunc("/session/oauth/google", h.OAuthCallback).Methods(http.MethodGet)
}

func (h *AuthHandler) limited(scope string, fn http.HandlerFunc) http.Handler {
	if h.limiter == nil {
		return fn
	}
	return h.limiter.Limit(scope)(fn)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req inbound.RegisterRequest
	if err := validator.DecodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.authUseCase.Register(r.Context(), req); err != nil {
		fail(w, r, h.logger, "register", err)
		return
	}

	logger.LogAuthEvent(r.Context(), h.logger, "register", "", r.RemoteAddr, true, map[string]interface{}{
		"email": req.Email,
	})
	response.Success(w, http.StatusCreated, "User registered successfully", nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req inbound.LoginRequest
	if err := validator.DecodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	res, err := h.authUseCase.Login(r.Context(), req)
	if err != nil {
		logger.LogAuthEvent(r.Context(), h.logger, "login", "", r.RemoteAddr, false, map[string]interface{}{
			"reason": string(domainerr.CodeOf(err)),
		})
		fail(w, r, h.logger, "login", err)
		return
	}

	h.cookies.SetSession(w, res.Tokens)
	logger.LogAuthEvent(r.Context(), h.logger, "login", res.UserData.UserID, r.RemoteAddr, true, nil)
	response.Success(w, http.StatusOK, "Login successful", res)
}

// Tokenized restores a session from the cookies alone.
func (h *AuthHandler) Tokenized(w http.ResponseWriter, r *http.Request) {
	access, refresh := middleware.ReadTokens(r)

	res, err := h.authUseCase.RestoreSession(r.Context(), inbound.SessionRequest{
		AccessToken:  access,
		RefreshToken: refresh,
	})
	if err != nil {
		fail(w, r, h.logger, "restore session", err)
		return
	}

	if res.Reissued != nil {
		h.cookies.SetToken(w, middleware.AccessTokenCookie, *res.Reissued)
	}
	response.Success(w, http.StatusOK, "Session restored", res)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.ClearSession(w)
	response.Success(w, http.StatusOK, "Logged out", nil)
}

func (h *AuthHandler) OAuthConsent(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	url, err := h.authUseCase.OAuthConsentURL(state)
	if err != nil {
		fail(w, r, h.logger, "oauth consent", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		Domain:   h.cookies.Domain,
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, url, http.StatusFound)
}

func (h *AuthHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != query.Get("state") {
		logger.LogSecurityEvent(r.Context(), h.logger, "oauth_state_mismatch", "MEDIUM", map[string]interface{}{
			"path": r.URL.Path,
		})
		fail(w, r, h.logger, "oauth callback", domainerr.ErrOAuthFailed("state mismatch", nil))
		return
	}
	http.SetCookie(w, &http.Cookie{Name: oauthStateCookie, Value: "", Path: "/", Domain: h.cookies.Domain, MaxAge: -1})

	res, err := h.authUseCase.OAuthLogin(r.Context(), query.Get("code"))
	if err != nil {
		logger.LogAuthEvent(r.Context(), h.logger, "oauth_login", "", r.RemoteAddr, false, map[string]interface{}{
			"reason": string(domainerr.CodeOf(err)),
		})
		fail(w, r, h.logger, "oauth callback", err)
		return
	}

	h.cookies.SetSession(w, res.Tokens)
	logger.LogAuthEvent(r.Context(), h.logger, "oauth_login", res.UserData.UserID, r.RemoteAddr, true, nil)
	http.Redirect(w, r, res.RedirectURL, http.StatusFound)
}
