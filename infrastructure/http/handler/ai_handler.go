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

type AIHandler struct {
	aiUseCase      inbound.AIUseCase
	authMiddleware *middleware.AuthMiddleware
	logger         logger.Logger
}

func NewAIHandler(aiUseCase inbound.AIUseCase, authMiddleware *middleware.AuthMiddleware, log logger.Logger) *AIHandler {
	return &AIHandler{
		aiUseCase:      aiUseCase,
		authMiddleware: authMiddleware,
		logger:         log,
	}
}

func (h *AIHandler) RegisterRoutes(router *mux.Router) {
	router.Handle("/generate/quiz", guarded(h.authMiddleware, valueobject.RoleUser, h.GenerateQuiz)).Methods(http.MethodPost)
	router.Handle("/generate/summary", guarded(h.authMiddleware, valueobject.RoleUser, h.GenerateSummary)).Methods(http.MethodPost)
	router.Handle("/generate/answer", guarded(h.authMiddleware, valueobject.RoleAdmin, h.GenerateAnswer)).Methods(http.MethodPost)
	router.Handle("/chat", guarded(h.authMiddleware, valueobject.RoleUser, h.Chat)).Methods(http.MethodPost)
	router.Handle("/chat/rag", guarded(h.authMiddleware, valueobject.RoleUser, h.ChatWithRAG)).Methods(http.MethodPost)
}

func (h *AIHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var req inbound.VideoRequest
	if err := validator.DecodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	quiz, err := h.aiUseCase.GenerateQuiz(r.Context(), req)
	if err != nil {
		fail(w, r, h.logger, "generate quiz", err)
		return
	}
	response.Success(w, http.StatusOK, "Quiz generated successfully", quiz)
}

func (h *AIHandler) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	var req inbound.VideoRequest
	if err := validator.DecodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	summary, err := h.aiUseCase.GenerateSummary(r.Context(), req)
	if err != nil {
		fail(w, r, h.logger, "generate summary", err)
		return
	}
	response.Success(w, http.StatusOK, "Summary generated successfully", summary)
}

func (h *AIHandler) GenerateAnswer(w http.ResponseWriter, r *http.Request) {
	var req inbound.QuestionRequest
	if err := validator.DecodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	answer, err := h.aiUseCase.GenerateAnswer(r.Context(), req)
	if err != nil {
		fail(w, r, h.logger, "generate answer", err)
		return
	}
	response.Success(w, http.StatusOK, "Answer generated successfully", answer)
}

func (h *AIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req inbound.ChatRequest
	if err := validator.DecodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	reply, err := h.aiUseCase.Chat(r.Context(), req)
	if err != nil {
		fail(w, r, h.logger, "chat", err)
		return
	}
	response.Success(w, http.StatusOK, "Reply generated successfully", reply)
}

func (h *AIHandler) ChatWithRAG(w http.ResponseWriter, r *http.Request) {
	var req inbound.QuestionRequest
	if err := validator.DecodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	reply, err := h.aiUseCase.ChatWithRAG(r.Context(), req)
	if err != nil {
		fail(w, r, h.logger, "chat with rag", err)
		return
	}
	response.Success(w, http.StatusOK, "Reply generated successfully", reply)
}
