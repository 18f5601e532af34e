// This file defines Message entities and related rules.
// Messages are immutable once persisted.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message represents an immutable unit of conversation content.
// CreatedAt is assigned at persistence time and defines the total
// order inside a conversation.
type Message struct {
	ID             uuid.UUID
	ConversationID uuid.UUID
	SenderID       string
	Body           string
	CreatedAt      time.Time
}
