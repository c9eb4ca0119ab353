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

type CourseHandler struct {
	courseUseCase  inbound.CourseUseCase
	authMiddleware *middleware.AuthMiddleware
	logger         logger.Logger
}

func NewCourseHandler(courseUseCase inbound.CourseUseCase, authMiddleware *middleware.AuthMiddleware, log logger.Logger) *CourseHandler {
	return &CourseHandler{
		courseUseCase:  courseUseCase,
		authMiddleware: authMiddleware,
		logger:         log,
	}
}

func (h *CourseHandler) RegisterRoutes(router *mux.Router) {
	router.Handle("/courses", guarded(h.authMiddleware, valueobject.RoleUser, h.ListCourses)).Methods(http.MethodGet)
	router.Handle("/courses", guarded(h.authMiddleware, valueobject.RoleAdmin, h.CreateCourse)).Methods(http.MethodPost)
	router.Handle("/courses/{id}", guarded(h.authMiddleware, valueobject.RoleUser, h.GetCourse)).Methods(http.MethodGet)
	router.Handle("/courses/{id}", guarded(h.authMiddleware, valueobject.RoleAdmin, h.UpdateCourse)).Methods(http.MethodPut)
	router.Handle("/courses/{id}", guarded(h.authMiddleware, valueobject.RoleAdmin, h.DeleteCourse)).Methods(http.MethodDelete)
}

func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	res, err := h.courseUseCase.ListCourses(r.Context(), inbound.ListCoursesRequest{
		Page:  queryInt(r, "page"),
		Limit: queryInt(r, "limit"),
	})
	if err != nil {
		fail(w, r, h.logger, "list courses", err)
		return
	}
	response.Success(w, http.StatusOK, "Courses fetched successfully", res)
}

func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.courseUseCase.GetCourse(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		fail(w, r, h.logger, "get course", err)
		return
	}
	response.Success(w, http.StatusOK, "Course fetched successfully", course)
}

func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req inbound.CourseRequest
	if err := validator.DecodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	course, err := h.courseUseCase.CreateCourse(r.Context(), req)
	if err != nil {
		fail(w, r, h.logger, "create course", err)
		return
	}
	response.Success(w, http.StatusCreated, "Course created successfully", course)
}

func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	var req inbound.UpdateCourseRequest
	if err := validator.DecodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	course, err := h.courseUseCase.UpdateCourse(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		fail(w, r, h.logger, "update course", err)
		return
	}
	response.Success(w, http.StatusOK, "Course updated successfully", course)
}

func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	if err := h.courseUseCase.DeleteCourse(r.Context(), mux.Vars(r)["id"]); err != nil {
		fail(w, r, h.logger, "delete course", err)
		return
	}
	response.Success(w, http.StatusOK, "Course deleted successfully", nil)
}
