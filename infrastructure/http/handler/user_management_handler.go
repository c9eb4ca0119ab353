package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/learnhub/learnhub/application/port/inbound"
	"github.com/learnhub/learnhub/domain/valueobject"
	"github.com/learnhub/learnhub/infrastructure/http/middleware"
	"github.com/learnhub/learnhub/infrastructure/http/response"
	"github.com/learnhub/learnhub/infrastructure/http/validator"
	"github.com/learnhub/learnhub/infrastructure/service/logger"
)

type UserManagementHandler struct {
	userManagementUseCase inbound.UserManagementUseCase
	authMiddleware        *middleware.AuthMiddleware
	logger                logger.Logger
}

func NewUserManagementHandler(
	userManagementUseCase inbound.UserManagementUseCase,
	authMiddleware *middleware.AuthMiddleware,
	log logger.Logger,
) *UserManagementHandler {
	return &UserManagementHandler{
		userManagementUseCase: userManagementUseCase,
		authMiddleware:        authMiddleware,
		logger:                log,
	}
}

func (h *UserManagementHandler) RegisterRoutes(router *mux.Router) {
	router.Handle("/users/me", guarded(h.authMiddleware, valueobject.RoleUser, h.GetCurrentUser)).Methods(http.MethodGet)
	router.Handle("/users/me/courses", guarded(h.authMiddleware, valueobject.RoleUser, h.ApplyCourse)).Methods(http.MethodPost)
	router.Handle("/users/me/courses/evaluate", guarded(h.authMiddleware, valueobject.RoleUser, h.EvaluateCourse)).Methods(http.MethodPost)
	router.Handle("/users", guarded(h.authMiddleware, valueobject.RoleAdmin, h.ListUsers)).Methods(http.MethodGet)
}

// GetCurrentUser returns the signed-in account without its password.
func (h *UserManagementHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	user, err := h.userManagementUseCase.GetUserDetail(r.Context(), identity.UserID)
	if err != nil {
		fail(w, r, h.logger, "get current user", err)
		return
	}

	response.Success(w, http.StatusOK, "User fetched successfully", user)
}

func (h *UserManagementHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	res, err := h.userManagementUseCase.ListUsers(r.Context(), inbound.ListUsersRequest{
		Page:  queryInt(r, "page"),
		Limit: queryInt(r, "limit"),
	})
	if err != nil {
		fail(w, r, h.logger, "list users", err)
		return
	}

	response.Success(w, http.StatusOK, "Users fetched successfully", res)
}

func (h *UserManagementHandler) ApplyCourse(w http.ResponseWriter, r *http.Request) {
	var req inbound.ApplyCourseRequest
	if err := validator.DecodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	identity := middleware.GetIdentity(r.Context())
	user, err := h.userManagementUseCase.ApplyCourse(r.Context(), identity.UserID, req)
	if err != nil {
		fail(w, r, h.logger, "apply course", err)
		return
	}

	response.Success(w, http.StatusOK, "Course applied successfully", user)
}

func (h *UserManagementHandler) EvaluateCourse(w http.ResponseWriter, r *http.Request) {
	var req inbound.EvaluateCourseRequest
	if err := validator.DecodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	identity := middleware.GetIdentity(r.Context())
	user, err := h.userManagementUseCase.EvaluateCourse(r.Context(), identity.UserID, req)
	if err != nil {
		fail(w, r, h.logger, "evaluate course", err)
		return
	}

	response.Success(w, http.StatusOK, "Course evaluated successfully", user)
}
