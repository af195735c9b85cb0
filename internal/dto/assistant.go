package dto

// QuestionRequest is the body of the ask-a-question endpoints
type QuestionRequest struct {
	Question string `json:"question" binding:"required"`
}
