package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/learnhub/learnhub/application/port/inbound"
	"github.com/learnhub/learnhub/application/port/outbound"
	domainerr "github.com/learnhub/learnhub/domain/error"
)

const (
	quizPrompt    = `Given the following audio attached below, generate 10 accurate Multiple Choice Questions (in English), with 4 possible answers and also provide the correct answer for it according to content of the video. The questions should be related to the contents of the video. Provide output in JSON parsable format.`
	summaryPrompt = `Given the following audio attached below, generate an accurate summary (in English), according to content of the video.`
	ragPrompt     = "Answer the user's question: %s based on the given context: %s"

	ragTopK = 3
)

var codeFence = regexp.MustCompile("(?s)^\\s*```(?:json)?\\s*(.*?)\\s*```\\s*$")

type AIUseCase struct {
	model     outbound.GenerativeModel
	retriever outbound.Retriever
}

// NewAIUseCase wires the generation calls. retriever may be nil, in which case ChatWithRAG
// answers with an empty context.
func NewAIUseCase(model outbound.GenerativeModel, retriever outbound.Retriever) *AIUseCase {
	return &AIUseCase{
		model:     model,
		retriever: retriever,
	}
}

func (uc *AIUseCase) GenerateQuiz(ctx context.Context, req inbound.VideoRequest) (json.RawMessage, error) {
	media, err := videoPart(req.VideoLink)
	if err != nil {
		return nil, err
	}

	text, err := uc.model.Generate(ctx, quizPrompt, media)
	if err != nil {
		return nil, domainerr.ErrExternalService("generative model", err)
	}

	quiz, err := ParseModelJSON(text)
	if err != nil {
		return nil, domainerr.ErrExternalService("generative model", err)
	}
	return quiz, nil
}

func (uc *AIUseCase) GenerateSummary(ctx context.Context, req inbound.VideoRequest) (string, error) {
	media, err := videoPart(req.VideoLink)
	if err != nil {
		return "", err
	}

	text, err := uc.model.Generate(ctx, summaryPrompt, media)
	if err != nil {
		return "", domainerr.ErrExternalService("generative model", err)
	}
	return text, nil
}

func (uc *AIUseCase) GenerateAnswer(ctx context.Context, req inbound.QuestionRequest) (string, error) {
	if strings.TrimSpace(req.Question) == "" {
		return "", domainerr.ErrMissingField("question")
	}

	text, err := uc.model.Generate(ctx, req.Question)
	if err != nil {
		return "", domainerr.ErrExternalService("generative model", err)
	}
	return text, nil
}

func (uc *AIUseCase) Chat(ctx context.Context, req inbound.ChatRequest) (string, error) {
	if strings.TrimSpace(req.UserMessage) == "" {
		return "", domainerr.ErrMissingField("user_message")
	}

	text, err := uc.model.Chat(ctx, BuildChatHistory(req.Chat), req.UserMessage)
	if err != nil {
		return "", domainerr.ErrExternalService("generative model", err)
	}
	return text, nil
}

func (uc *AIUseCase) ChatWithRAG(ctx context.Context, req inbound.QuestionRequest) (string, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return "", domainerr.ErrMissingField("question")
	}

	var contents []string
	if uc.retriever != nil {
		var err error
		contents, err = uc.retriever.Search(ctx, question, ragTopK)
		if err != nil {
			return "", domainerr.ErrExternalService("retriever", err)
		}
	}

	text, err := uc.model.Generate(ctx, fmt.Sprintf(ragPrompt, question, strings.Join(contents, ",")))
	if err != nil {
		return "", domainerr.ErrExternalService("generative model", err)
	}
	return text, nil
}

// BuildChatHistory turns [user, model, user, model, ...] into turns. A trailing or empty model
// message is skipped; user messages are always kept.
func BuildChatHistory(messages []string) []outbound.ChatTurn {
	history := make([]outbound.ChatTurn, 0, len(messages))
	for i := 0; i < len(messages); i += 2 {
		history = append(history, outbound.ChatTurn{Role: outbound.ChatRoleUser, Text: messages[i]})
		if i+1 < len(messages) && messages[i+1] != "" {
			history = append(history, outbound.ChatTurn{Role: outbound.ChatRoleModel, Text: messages[i+1]})
		}
	}
	return history
}

// ParseModelJSON strips a surrounding markdown code fence and checks the remainder is JSON.
func ParseModelJSON(text string) (json.RawMessage, error) {
	body := strings.TrimSpace(text)
	if m := codeFence.FindStringSubmatch(body); m != nil {
		body = m[1]
	}
	if !json.Valid([]byte(body)) {
		return nil, fmt.Errorf("model output is not valid JSON")
	}
	return json.RawMessage(body), nil
}

func videoPart(link string) (outbound.MediaPart, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return outbound.MediaPart{}, domainerr.ErrMissingField("videoLink")
	}
	if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
		return outbound.MediaPart{}, domainerr.ErrInvalidRequest("videoLink must be an http(s) URL")
	}
	return outbound.MediaPart{MimeType: "video/mp4", URI: link}, nil
}
