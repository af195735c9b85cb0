package constants

import "time"

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Session
const (
	SessionName         = "kanban_session"
	SessionBoardIDKey   = "board_id"
	SessionMaxAge       = 86400 * 7
	DefaultBoardIdleTTL = 30 * time.Minute
)

// Gin context keys
const (
	ContextKeyBoardSession = "board_session"
	ContextKeyBoardID      = "board_id"
	ContextKeyProject      = "project"
	ContextKeyTask         = "task"
	ContextKeyLogger       = "logger"
)

// Field limits
const (
	MaxNameLength     = 200
	MaxTitleLength    = 200
	MaxQuestionLength = 2000
)

// Assistant
const (
	DefaultOpenAIModel      = "gpt-3.5-turbo"
	DefaultAssistantTimeout = 30 * time.Second
	AssistantMaxTokens      = 500
	AssistantTemperature    = 0.3
)
