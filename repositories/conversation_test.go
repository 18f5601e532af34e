package repositories

import (
	"testing"
	"time"

	"imobiliare/domain"
	"imobiliare/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_GetOrCreate_Creates_Then_Finds(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)

	repository := NewConversationRepository(db)
	at := time.Now().UTC()

	first, created, err := repository.GetOrCreate(domain.NewConversation("buyer", "seller", "listing-1", at))
	req.NoError(err)
	req.True(created)

	// Same pair with swapped participant order must land on the same row.
	second, created, err := repository.GetOrCreate(domain.NewConversation("seller", "buyer", "listing-1", at.Add(time.Hour)))
	req.NoError(err)
	req.False(created)
	req.Equal(first.ID, second.ID)
	req.Equal(first.LastActivity, second.LastActivity)
}

func Test_GetOrCreate_Distinct_Listings_Distinct_Conversations(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)

	repository := NewConversationRepository(db)
	at := time.Now().UTC()

	first, created, err := repository.GetOrCreate(domain.NewConversation("buyer", "seller", "listing-1", at))
	req.NoError(err)
	req.True(created)

	second, created, err := repository.GetOrCreate(domain.NewConversation("buyer", "seller", "listing-2", at))
	req.NoError(err)
	req.True(created)
	req.NotEqual(first.ID, second.ID)
}

func Test_GetByID_Unknown_Conversation(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)

	repository := NewConversationRepository(db)

	_, err := repository.GetByID(uuid.New())
	req.ErrorIs(err, errors.ErrNotFound)
}

func Test_ListByUser_Returns_Both_Sides(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)

	repository := NewConversationRepository(db)
	at := time.Now().UTC()

	conversation, _, err := repository.GetOrCreate(domain.NewConversation("buyer", "seller", "listing-1", at))
	req.NoError(err)
	_, _, err = repository.GetOrCreate(domain.NewConversation("buyer", "other", "listing-2", at))
	req.NoError(err)

	forSeller, err := repository.ListByUser("seller")
	req.NoError(err)
	req.Len(forSeller, 1)
	req.Equal(conversation.ID, forSeller[0].ID)

	forBuyer, err := repository.ListByUser("buyer")
	req.NoError(err)
	req.Len(forBuyer, 2)

	forStranger, err := repository.ListByUser("stranger")
	req.NoError(err)
	req.Empty(forStranger)
}

func Test_Touch_Only_Moves_Forward(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)

	repository := NewConversationRepository(db)
	at := time.Now().UTC().Truncate(time.Millisecond)

	conversation, _, err := repository.GetOrCreate(domain.NewConversation("buyer", "seller", "listing-1", at))
	req.NoError(err)

	later := at.Add(time.Minute)
	req.NoError(repository.Touch(conversation.ID, later))

	fetched, err := repository.GetByID(conversation.ID)
	req.NoError(err)
	req.Equal(later, fetched.LastActivity)

	// An older touch must not move the activity backwards.
	req.NoError(repository.Touch(conversation.ID, at.Add(-time.Hour)))
	fetched, err = repository.GetByID(conversation.ID)
	req.NoError(err)
	req.Equal(later, fetched.LastActivity)
}

func Test_Touch_Unknown_Conversation(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)

	repository := NewConversationRepository(db)

	err := repository.Touch(uuid.New(), time.Now().UTC())
	req.ErrorIs(err, errors.ErrNotFound)
}
