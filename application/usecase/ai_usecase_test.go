package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/learnhub/learnhub/application/port/inbound"
	"github.com/learnhub/learnhub/application/port/outbound"
	domainerr "github.com/learnhub/learnhub/domain/error"
)

func TestBuildChatHistory(t *testing.T) {
	tests := []struct {
		name     string
		messages []string
		want     []outbound.ChatTurn
	}{
		{name: "empty", messages: nil, want: []outbound.ChatTurn{}},
		{
			name:     "alternating",
			messages: []string{"hi", "hello", "how are you"},
			want: []outbound.ChatTurn{
				{Role: outbound.ChatRoleUser, Text: "hi"},
				{Role: outbound.ChatRoleModel, Text: "hello"},
				{Role: outbound.ChatRoleUser, Text: "how are you"},
			},
		},
		{
			name:     "empty model reply skipped",
			messages: []string{"hi", "", "again", "ok"},
			want: []outbound.ChatTurn{
				{Role: outbound.ChatRoleUser, Text: "hi"},
				{Role: outbound.ChatRoleUser, Text: "again"},
				{Role: outbound.ChatRoleModel, Text: "ok"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildChatHistory(tt.messages))
		})
	}
}

func TestParseModelJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: `{"a":1}`, want: `{"a":1}`},
		{name: "json fence", in: "```json\n[{\"q\":\"x\"}]\n```", want: `[{"q":"x"}]`},
		{name: "bare fence", in: "  ```\n{\"a\":1}\n```  ", want: `{"a":1}`},
		{name: "prose", in: "Here is your quiz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseModelJSON(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestAIUseCase_GenerateQuizAttachesVideo(t *testing.T) {
	model := new(MockGenerativeModel)
	media := []outbound.MediaPart{{MimeType: "video/mp4", URI: "https://youtu.be/abc"}}
	model.On("Generate", mock.Anything, quizPrompt, media).Return("```json\n{\"questions\":[]}\n```", nil)

	quiz, err := NewAIUseCase(model, nil).GenerateQuiz(context.Background(), inbound.VideoRequest{VideoLink: " https://youtu.be/abc "})

	require.NoError(t, err)
	assert.JSONEq(t, `{"questions":[]}`, string(quiz))
	model.AssertExpectations(t)
}

func TestAIUseCase_VideoLinkValidation(t *testing.T) {
	model := new(MockGenerativeModel)
	uc := NewAIUseCase(model, nil)

	_, err := uc.GenerateSummary(context.Background(), inbound.VideoRequest{})
	assert.Equal(t, domainerr.ErrCodeMissingField, domainerr.CodeOf(err))

	_, err = uc.GenerateQuiz(context.Background(), inbound.VideoRequest{VideoLink: "file:///etc/passwd"})
	assert.Equal(t, domainerr.ErrCodeInvalidRequest, domainerr.CodeOf(err))

	model.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestAIUseCase_ModelFailureIsExternal(t *testing.T) {
	model := new(MockGenerativeModel)
	model.On("Generate", mock.Anything, "why?", mock.Anything).Return("", errors.New("quota exceeded"))

	_, err := NewAIUseCase(model, nil).GenerateAnswer(context.Background(), inbound.QuestionRequest{Question: "why?"})

	assert.Equal(t, domainerr.ErrCodeExternalServiceError, domainerr.CodeOf(err))
}

func TestAIUseCase_QuizRejectsNonJSON(t *testing.T) {
	model := new(MockGenerativeModel)
	model.On("Generate", mock.Anything, quizPrompt, mock.Anything).Return("Sorry, I cannot help", nil)

	_, err := NewAIUseCase(model, nil).GenerateQuiz(context.Background(), inbound.VideoRequest{VideoLink: "https://v/1"})

	assert.Equal(t, domainerr.ErrCodeExternalServiceError, domainerr.CodeOf(err))
}

func TestAIUseCase_ChatPassesHistory(t *testing.T) {
	model := new(MockGenerativeModel)
	history := []outbound.ChatTurn{
		{Role: outbound.ChatRoleUser, Text: "hi"},
		{Role: outbound.ChatRoleModel, Text: "hello"},
	}
	model.On("Chat", mock.Anything, history, "what is Go?").Return("A language.", nil)

	reply, err := NewAIUseCase(model, nil).Chat(context.Background(), inbound.ChatRequest{
		UserMessage: "what is Go?",
		Chat:        []string{"hi", "hello"},
	})

	require.NoError(t, err)
	assert.Equal(t, "A language.", reply)

	_, err = NewAIUseCase(model, nil).Chat(context.Background(), inbound.ChatRequest{UserMessage: "  "})
	assert.Equal(t, domainerr.ErrCodeMissingField, domainerr.CodeOf(err))
}

func TestAIUseCase_ChatWithRAGBuildsContext(t *testing.T) {
	model := new(MockGenerativeModel)
	retriever := new(MockRetriever)
	retriever.On("Search", mock.Anything, "what is a goroutine?", ragTopK).Return([]string{"page one", "page two"}, nil)
	prompt := fmt.Sprintf(ragPrompt, "what is a goroutine?", "page one,page two")
	model.On("Generate", mock.Anything, prompt, mock.Anything).Return("A lightweight thread.", nil)

	reply, err := NewAIUseCase(model, retriever).ChatWithRAG(context.Background(), inbound.QuestionRequest{Question: " what is a goroutine? "})

	require.NoError(t, err)
	assert.Equal(t, "A lightweight thread.", reply)
	retriever.AssertExpectations(t)
	model.AssertExpectations(t)
}

func TestAIUseCase_ChatWithRAGRetrieverFailure(t *testing.T) {
	model := new(MockGenerativeModel)
	retriever := new(MockRetriever)
	retriever.On("Search", mock.Anything, "q", ragTopK).Return(nil, errors.New("embedding failed"))

	_, err := NewAIUseCase(model, retriever).ChatWithRAG(context.Background(), inbound.QuestionRequest{Question: "q"})

	assert.Equal(t, domainerr.ErrCodeExternalServiceError, domainerr.CodeOf(err))
	model.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestAIUseCase_ChatWithRAGWithoutIndex(t *testing.T) {
	model := new(MockGenerativeModel)
	model.On("Generate", mock.Anything, fmt.Sprintf(ragPrompt, "q", ""), mock.Anything).Return("ok", nil)

	reply, err := NewAIUseCase(model, nil).ChatWithRAG(context.Background(), inbound.QuestionRequest{Question: "q"})

	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
}
