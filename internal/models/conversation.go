// internal/models/conversation.go
package models

import "time"

// TurnRole identifies who authored a conversation turn.
type TurnRole string

const (
	RoleUser TurnRole = "user"
	RoleBot  TurnRole = "bot"
)

// ConversationTurn is one persisted chat message, keyed by user for
// history replay. The resolver only produces the content; the history
// store owns the lifecycle.
type ConversationTurn struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Role      TurnRole  `json:"role"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
