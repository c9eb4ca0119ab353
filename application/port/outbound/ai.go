package outbound

import (
	"context"
)

// ChatRole names the author of a turn in a conversation history.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

type ChatTurn struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}

// MediaPart references remote media (for example a video URL) attached to a prompt.
type MediaPart struct {
	MimeType string
	URI      string
}

// GenerativeModel is the hosted text generation service.
type GenerativeModel interface {
	Generate(ctx context.Context, prompt string, media ...MediaPart) (string, error)
	Chat(ctx context.Context, history []ChatTurn, message string) (string, error)
}

// EmbeddingProvider turns text into vectors for similarity search.
type EmbeddingProvider interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Embed(ctx context.Context, text string) ([]float32, error)
}

// AIProviderFactory bundles the services a provider offers.
type AIProviderFactory interface {
	Model() GenerativeModel
	Embeddings() EmbeddingProvider
	Provider() string
}

// Retriever returns the page contents most relevant to a query.
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]string, error)
}

type AIConfig struct {
	Provider        string
	APIKey          string
	BaseURL         string
	Model           string
	EmbeddingModel  string
	TimeoutMs       int
	MaxOutputTokens int
	Temperature     float64
	TopP            float64
	TopK            int
}
