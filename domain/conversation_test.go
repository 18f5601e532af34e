package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_SortedPair_Is_Order_Insensitive(t *testing.T) {
	req := require.New(t)

	lo, hi := SortedPair("seller", "buyer")
	req.Equal("buyer", lo)
	req.Equal("seller", hi)

	lo, hi = SortedPair("buyer", "seller")
	req.Equal("buyer", lo)
	req.Equal("seller", hi)
}

func Test_NewConversation_Normalizes_Participants(t *testing.T) {
	req := require.New(t)
	at := time.Now().UTC()

	forward := NewConversation("buyer", "seller", "listing-1", at)
	backward := NewConversation("seller", "buyer", "listing-1", at)

	req.Equal(forward.Participants, backward.Participants)
	req.Equal([2]string{"buyer", "seller"}, forward.Participants)
}

func Test_HasParticipant(t *testing.T) {
	req := require.New(t)

	conversation := NewConversation("buyer", "seller", "listing-1", time.Now().UTC())
	req.True(conversation.HasParticipant("buyer"))
	req.True(conversation.HasParticipant("seller"))
	req.False(conversation.HasParticipant("stranger"))
}

func Test_Category_Valid(t *testing.T) {
	req := require.New(t)

	for _, category := range []Category{CategoryApartment, CategoryHouse, CategoryLand, CategoryCommercial} {
		req.True(category.Valid())
	}
	req.False(Category("castel").Valid())
	req.False(Category("").Valid())
}
