package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	outbound "github.com/learnhub/learnhub/application/port/outbound"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiAdapter implements AI services using the Gemini REST API
type GeminiAdapter struct {
	model      *GeminiModel
	embeddings *GeminiEmbeddingProvider
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(config outbound.AIConfig) outbound.AIProviderFactory {
	client := &http.Client{Timeout: time.Duration(config.TimeoutMs) * time.Millisecond}
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	if config.Model == "" {
		config.Model = "gemini-1.5-pro"
	}
	if config.EmbeddingModel == "" {
		config.EmbeddingModel = "embedding-001"
	}

	return &GeminiAdapter{
		model: &GeminiModel{
			apiKey:  config.APIKey,
			baseURL: baseURL,
			model:   config.Model,
			generation: generationConfig{
				MaxOutputTokens: config.MaxOutputTokens,
				Temperature:     config.Temperature,
				TopP:            config.TopP,
				TopK:            config.TopK,
			},
			httpClient: client,
		},
		embeddings: &GeminiEmbeddingProvider{
			apiKey:     config.APIKey,
			baseURL:    baseURL,
			model:      config.EmbeddingModel,
			httpClient: client,
		},
	}
}

func (g *GeminiAdapter) Model() outbound.GenerativeModel       { return g.model }
func (g *GeminiAdapter) Embeddings() outbound.EmbeddingProvider { return g.embeddings }
func (g *GeminiAdapter) Provider() string                       { return "gemini" }

type part struct {
	Text     string    `json:"text,omitempty"`
	FileData *fileData `json:"fileData,omitempty"`
}

type fileData struct {
	MimeType string `json:"mimeType,omitempty"`
	FileURI  string `json:"fileUri"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	Temperature     float64 `json:"temperature,omitempty"`
	TopP            float64 `json:"topP,omitempty"`
	TopK            int     `json:"topK,omitempty"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

var defaultSafetySettings = []safetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_ONLY_HIGH"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
}

type GeminiModel struct {
	apiKey, baseURL, model string
	generation             generationConfig
	httpClient             *http.Client
}

func (m *GeminiModel) Generate(ctx context.Context, prompt string, media ...outbound.MediaPart) (string, error) {
	parts := []part{{Text: prompt}}
	for _, mp := range media {
		parts = append(parts, part{FileData: &fileData{MimeType: mp.MimeType, FileURI: mp.URI}})
	}
	return m.generate(ctx, []content{{Role: string(outbound.ChatRoleUser), Parts: parts}})
}

func (m *GeminiModel) Chat(ctx context.Context, history []outbound.ChatTurn, message string) (string, error) {
	contents := make([]content, 0, len(history)+1)
	for _, turn := range history {
		contents = append(contents, content{Role: string(turn.Role), Parts: []part{{Text: turn.Text}}})
	}
	contents = append(contents, content{Role: string(outbound.ChatRoleUser), Parts: []part{{Text: message}}})
	return m.generate(ctx, contents)
}

func (m *GeminiModel) generate(ctx context.Context, contents []content) (string, error) {
	requestBody := map[string]interface{}{
		"contents":         contents,
		"generationConfig": m.generation,
		"safetySettings":   defaultSafetySettings,
	}

	var response struct {
		Candidates []struct {
			Content content `json:"content"`
		} `json:"candidates"`
		PromptFeedback struct {
			BlockReason string `json:"blockReason"`
		} `json:"promptFeedback"`
	}
	if err := postJSON(ctx, m.httpClient, m.baseURL+"/models/"+m.model+":generateContent", m.apiKey, requestBody, &response); err != nil {
		return "", err
	}
	if response.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("prompt blocked: %s", response.PromptFeedback.BlockReason)
	}
	if len(response.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	var sb strings.Builder
	for _, p := range response.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

type GeminiEmbeddingProvider struct {
	apiKey, baseURL, model string
	httpClient             *http.Client
}

func (e *GeminiEmbeddingProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	reqBody := map[string]interface{}{
		"model":    "models/" + e.model,
		"content":  content{Parts: []part{{Text: text}}},
		"taskType": "RETRIEVAL_QUERY",
	}
	var response struct {
		Embedding struct {
			Values []float32 `json:"values"`
		} `json:"embedding"`
	}
	if err := postJSON(ctx, e.httpClient, e.baseURL+"/models/"+e.model+":embedContent", e.apiKey, reqBody, &response); err != nil {
		return nil, err
	}
	if len(response.Embedding.Values) == 0 {
		return nil, fmt.Errorf("no embedding data")
	}
	return response.Embedding.Values, nil
}

func (e *GeminiEmbeddingProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	requests := make([]map[string]interface{}, len(texts))
	for i, text := range texts {
		requests[i] = map[string]interface{}{
			"model":    "models/" + e.model,
			"content":  content{Parts: []part{{Text: text}}},
			"taskType": "RETRIEVAL_DOCUMENT",
		}
	}
	var response struct {
		Embeddings []struct {
			Values []float32 `json:"values"`
		} `json:"embeddings"`
	}
	if err := postJSON(ctx, e.httpClient, e.baseURL+"/models/"+e.model+":batchEmbedContents", e.apiKey, map[string]interface{}{"requests": requests}, &response); err != nil {
		return nil, err
	}
	if len(response.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(response.Embeddings))
	}
	embeddings := make([][]float32, len(response.Embeddings))
	for i, d := range response.Embeddings {
		embeddings[i] = d.Values
	}
	return embeddings, nil
}

func postJSON(ctx context.Context, client *http.Client, url, apiKey string, body, out interface{}) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(b))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call Gemini API: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("Gemini API error: %d - %s", resp.StatusCode, string(respBody))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
