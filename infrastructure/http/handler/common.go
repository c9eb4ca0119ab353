package handler

import (
	"net/http"
	"strconv"

	"github.com/learnhub/learnhub/domain/valueobject"
	"github.com/learnhub/learnhub/infrastructure/http/middleware"
	"github.com/learnhub/learnhub/infrastructure/http/response"
	"github.com/learnhub/learnhub/infrastructure/service/logger"
)

// guarded runs fn behind the access gate and the role check.
func guarded(auth *middleware.AuthMiddleware, role valueobject.Role, fn http.HandlerFunc) http.Handler {
	return auth.RequireAuth(auth.RequireRole(role)(fn))
}

// fail logs err and answers with its mapped status. Server-side failures log at error level.
func fail(w http.ResponseWriter, r *http.Request, log logger.Logger, operation string, err error) {
	status := response.FromError(w, err)
	fields := map[string]interface{}{
		"operation": operation,
		"status":    status,
		"path":      r.URL.Path,
	}
	if status >= http.StatusInternalServerError {
		log.Error(r.Context(), "Request failed", err, fields)
		return
	}
	fields["reason"] = err.Error()
	log.Warn(r.Context(), "Request rejected", fields)
}

func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}
