package inbound

import (
	"context"
	"encoding/json"
)

type VideoRequest struct {
	VideoLink string `json:"videoLink"`
}

type QuestionRequest struct {
	Question string `json:"question"`
}

// ChatRequest carries the previous messages as a flat list alternating user, model, user, ...
type ChatRequest struct {
	UserMessage string   `json:"user_message"`
	Chat        []string `json:"chat"`
}

type AIUseCase interface {
	// GenerateQuiz returns the quiz exactly as the model structured it.
	GenerateQuiz(ctx context.Context, req VideoRequest) (json.RawMessage, error)
	GenerateSummary(ctx context.Context, req VideoRequest) (string, error)
	GenerateAnswer(ctx context.Context, req QuestionRequest) (string, error)
	Chat(ctx context.Context, req ChatRequest) (string, error)
	ChatWithRAG(ctx context.Context, req QuestionRequest) (string, error)
}
