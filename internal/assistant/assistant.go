// Package assistant turns whatever the assistant service returns into one of
// two stable response shapes.
package assistant

import "context"

// Client is the assistant collaborator. Payloads are returned undecoded.
type Client interface {
	SummarizeProject(ctx context.Context, projectID string) ([]byte, error)
	AskQuestion(ctx context.Context, subjectID, question string) ([]byte, error)
}

type Kind string

const (
	KindSummarize   Kind = "summarize"
	KindAskQuestion Kind = "askQuestion"
)

type Summary struct {
	SummaryText     string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
	Degraded        bool     `json:"degraded"`
}

type Answer struct {
	AnswerText string  `json:"answer"`
	Confidence float64 `json:"confidence"`
	Degraded   bool    `json:"degraded"`
}

// Response holds exactly one of Summary or Answer, selected by Kind.
type Response struct {
	Kind    Kind     `json:"kind"`
	Summary *Summary `json:"summary,omitempty"`
	Answer  *Answer  `json:"answer,omitempty"`
}

const (
	SummaryPlaceholder = "Project summary generated successfully."
	AnswerPlaceholder  = "I have an answer for your question."

	SummaryFallback = "Unable to generate a summary at this time."
	AnswerFallback  = "Unable to generate an answer at this time. Please try again later."
)

// FallbackRecommendations accompany SummaryFallback.
var FallbackRecommendations = []string{
	"Please try again in a few minutes.",
	"Ensure the AI service is properly configured.",
	"Contact support if the issue persists.",
}
