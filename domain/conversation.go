// Package domain contains core concepts of the marketplace:
// listings, conversations between a buyer and a seller, and messages.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Conversation groups the private exchange between exactly two users
// about one listing. Identity is order-insensitive over the pair:
// participants are always stored in sorted order.
type Conversation struct {
	ID           uuid.UUID
	Participants [2]string
	ListingID    string
	LastActivity time.Time
}

// SortedPair returns the two user identifiers in lexicographic order.
// Both directions of a contact request map to the same pair.
func SortedPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// NewConversation builds a conversation with participants normalized
// to sorted order. The caller validates the pair beforehand.
func NewConversation(userA, userB, listingID string, at time.Time) Conversation {
	lo, hi := SortedPair(userA, userB)
	return Conversation{
		ID:           uuid.New(),
		Participants: [2]string{lo, hi},
		ListingID:    listingID,
		LastActivity: at,
	}
}

func (c Conversation) HasParticipant(userID string) bool {
	return c.Participants[0] == userID || c.Participants[1] == userID
}
