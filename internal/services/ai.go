package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/yukikurage/kanban-board/internal/assistant"
	"github.com/yukikurage/kanban-board/internal/constants"
	"github.com/yukikurage/kanban-board/internal/models"
)

var (
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAIEmptyResponse        = errors.New("no response from OpenAI")
)

// AIService is the assistant collaborator backed by the OpenAI chat API.
// Responses are returned as the raw message content; shaping them is the
// normalizer's job.
type AIService struct {
	client   *openai.Client
	model    string
	timeout  time.Duration
	projects *ProjectService
	tasks    *TaskService
}

var _ assistant.Client = (*AIService)(nil)

// AIOptions configures NewAIService. Zero values fall back to defaults.
type AIOptions struct {
	Model   string
	Timeout time.Duration
	BaseURL string
}

func NewAIService(apiKey string, opts AIOptions, projects *ProjectService, tasks *TaskService) *AIService {
	s := &AIService{
		model:    opts.Model,
		timeout:  opts.Timeout,
		projects: projects,
		tasks:    tasks,
	}
	if s.model == "" {
		s.model = constants.DefaultOpenAIModel
	}
	if s.timeout <= 0 {
		s.timeout = constants.DefaultAssistantTimeout
	}
	if apiKey != "" {
		cfg := openai.DefaultConfig(apiKey)
		if opts.BaseURL != "" {
			cfg.BaseURL = opts.BaseURL
		}
		s.client = openai.NewClientWithConfig(cfg)
	}
	return s
}

// Configured reports whether an API key was supplied.
func (s *AIService) Configured() bool {
	return s != nil && s.client != nil
}

// SummarizeProject asks for a JSON object {"summary", "recommendations"}
// describing the project and its board.
func (s *AIService) SummarizeProject(ctx context.Context, projectID string) ([]byte, error) {
	if !s.Configured() {
		return nil, ErrAIServiceNotConfigured
	}

	project, err := s.projects.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListProjectTasks(ctx, projectID, nil)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`You are a project management assistant. Summarize the state of the project below.

Project: %s
Description: %s

Tasks:
%s

Respond with JSON only, in this shape:
{
  "summary": "two or three sentences on overall progress",
  "recommendations": ["short actionable recommendation", "..."]
}`, project.Name, project.Description, describeTasks(tasks))

	return s.complete(ctx, prompt)
}

// AskQuestion answers a free-text question about a task, as JSON
// {"answer", "confidence"}.
func (s *AIService) AskQuestion(ctx context.Context, taskID, question string) ([]byte, error) {
	if !s.Configured() {
		return nil, ErrAIServiceNotConfigured
	}
	if len(question) > constants.MaxQuestionLength {
		return nil, fmt.Errorf("question exceeds %d characters", constants.MaxQuestionLength)
	}

	task, err := s.tasks.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`You are a project management assistant. Answer the question about the task below.

Task: %s
Status: %s
Description: %s

Question: %s

Respond with JSON only, in this shape:
{
  "answer": "your answer",
  "confidence": 0.0
}
where confidence is a number between 0 and 1.`, task.Title, task.Status, task.Description, question)

	return s.complete(ctx, prompt)
}

func (s *AIService) complete(ctx context.Context, prompt string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   constants.AssistantMaxTokens,
			Temperature: constants.AssistantTemperature,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, ErrAIEmptyResponse
	}

	return []byte(resp.Choices[0].Message.Content), nil
}

func describeTasks(tasks []models.Task) string {
	if len(tasks) == 0 {
		return "(no tasks)"
	}
	var b strings.Builder
	for _, t := range tasks {
		fmt.Fprintf(&b, "- [%s] %s: %s\n", t.Status, t.Title, t.Description)
	}
	return b.String()
}
