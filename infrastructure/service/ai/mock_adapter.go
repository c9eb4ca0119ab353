package ai

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	outbound "github.com/learnhub/learnhub/application/port/outbound"
)

// MockModel provides a deterministic offline model for development and tests
type MockModel struct {
	latency time.Duration
	cache   sync.Map
}

// NewMockModel creates a new mock model
func NewMockModel(config outbound.AIConfig) *MockModel {
	latency := time.Duration(config.TimeoutMs) * time.Millisecond / 100
	return &MockModel{latency: latency}
}

func (m *MockModel) Generate(ctx context.Context, prompt string, media ...outbound.MediaPart) (string, error) {
	if err := m.wait(ctx); err != nil {
		return "", err
	}

	key := prompt
	for _, mp := range media {
		key += "|" + mp.URI
	}
	if cached, ok := m.cache.Load(key); ok {
		return cached.(string), nil
	}

	var reply string
	switch {
	case strings.Contains(prompt, "Multiple Choice Questions"):
		reply = mockQuiz(media)
	case strings.Contains(prompt, "summary"):
		reply = fmt.Sprintf("Summary of %s: the video introduces its topic, walks through examples and closes with a recap.", mediaURI(media))
	default:
		reply = "Mock answer: " + truncate(prompt, 120)
	}

	m.cache.Store(key, reply)
	return reply, nil
}

func (m *MockModel) Chat(ctx context.Context, history []outbound.ChatTurn, message string) (string, error) {
	if err := m.wait(ctx); err != nil {
		return "", err
	}
	return fmt.Sprintf("Mock reply to %q after %d turns", truncate(message, 80), len(history)), nil
}

func (m *MockModel) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(m.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// MockEmbeddingProvider provides mock embedding generation
type MockEmbeddingProvider struct {
	dimension int
}

// NewMockEmbeddingProvider creates a new mock embedding provider
func NewMockEmbeddingProvider(dimension int) *MockEmbeddingProvider {
	if dimension <= 0 {
		dimension = 64
	}
	return &MockEmbeddingProvider{dimension: dimension}
}

// Embed hashes word tokens into buckets so texts sharing words land close together.
func (m *MockEmbeddingProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	embedding := make([]float32, m.dimension)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,;:!?\"'()")
		if word == "" {
			continue
		}
		embedding[simpleHash(word)%uint32(m.dimension)]++
	}
	var norm float64
	for _, v := range embedding {
		norm += float64(v * v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range embedding {
			embedding[i] *= scale
		}
	}
	return embedding, nil
}

func (m *MockEmbeddingProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		e, err := m.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("failed to embed text %d: %w", i, err)
		}
		embeddings[i] = e
	}
	return embeddings, nil
}

// MockAIProviderFactory wires mock services
type MockAIProviderFactory struct {
	aiConfig   outbound.AIConfig
	model      *MockModel
	embeddings *MockEmbeddingProvider
}

func NewMockAIProviderFactory(config outbound.AIConfig) outbound.AIProviderFactory {
	return &MockAIProviderFactory{
		aiConfig:   config,
		model:      NewMockModel(config),
		embeddings: NewMockEmbeddingProvider(64),
	}
}

func (f *MockAIProviderFactory) Model() outbound.GenerativeModel       { return f.model }
func (f *MockAIProviderFactory) Embeddings() outbound.EmbeddingProvider { return f.embeddings }
func (f *MockAIProviderFactory) Provider() string                       { return "mock" }

func mockQuiz(media []outbound.MediaPart) string {
	var sb strings.Builder
	sb.WriteString("```json\n[")
	for i := 1; i <= 10; i++ {
		if i > 1 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `{"question":"Question %d about %s","options":["A","B","C","D"],"answer":"A"}`, i, mediaURI(media))
	}
	sb.WriteString("]\n```")
	return sb.String()
}

func mediaURI(media []outbound.MediaPart) string {
	if len(media) == 0 {
		return "the video"
	}
	return media[0].URI
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) > n {
		s = s[:n]
	}
	return s
}

func simpleHash(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = h*31 + uint32(s[i])
	}
	return h
}
