//go:generate go run go.uber.org/mock/mockgen -source=conversation.go -destination=../mocks/mock_conversation_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	goerrors "errors"
	"fmt"
	"time"

	"imobiliare/domain"
	"imobiliare/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IConversationRepository interface {
	GetOrCreate(conversation domain.Conversation) (domain.Conversation, bool, error)
	GetByID(id uuid.UUID) (domain.Conversation, error)
	ListByUser(userID string) ([]domain.Conversation, error)
	Touch(id uuid.UUID, at time.Time) error
}

// ConversationRepository stores conversation documents under "conv:{id}"
// and maintains two secondary indexes:
//   - "conv:pair:{loUser}:{hiUser}:{listing}" -> conversation id, the
//     uniqueness key over the sorted participant pair and the listing;
//   - "conv:user:{user}:{id}" -> nil, the per-user inbox index.
type ConversationRepository struct {
	db *badger.DB
}

func NewConversationRepository(db *badger.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

type diskConversation struct {
	ID           uuid.UUID `json:"id"`
	Participants [2]string `json:"participants"`
	ListingID    string    `json:"listing_id"`
	LastActivity time.Time `json:"last_activity"`
}

func docKey(id uuid.UUID) []byte {
	return []byte("conv:" + id.String())
}

func pairKey(loUser, hiUser, listingID string) []byte {
	return []byte(fmt.Sprintf("conv:pair:%s:%s:%s", loUser, hiUser, listingID))
}

func userKey(userID string, id uuid.UUID) []byte {
	return []byte(fmt.Sprintf("conv:user:%s:%s", userID, id))
}

// GetOrCreate inserts the conversation unless one already exists for the
// same pair and listing, in which case the existing row wins. The check
// and the insert run in a single transaction; callers racing on the same
// pair key must additionally serialize (the service holds a per-key lock).
func (r *ConversationRepository) GetOrCreate(conversation domain.Conversation) (domain.Conversation, bool, error) {
	var result domain.Conversation
	var created bool
	err := r.db.Update(func(txn *badger.Txn) error {
		pk := pairKey(conversation.Participants[0], conversation.Participants[1], conversation.ListingID)

		item, err := txn.Get(pk)
		if err == nil {
			// A conversation already exists: load and return it.
			var existingID uuid.UUID
			if err = item.Value(func(val []byte) error {
				existingID, err = uuid.Parse(string(val))
				return err
			}); err != nil {
				return err
			}
			existing, err := getByIDTxn(txn, existingID)
			if err != nil {
				return err
			}
			result = existing
			return nil
		}
		if !goerrors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		data, err := json.Marshal(fromConversation(conversation))
		if err != nil {
			return err
		}
		if err = txn.Set(docKey(conversation.ID), data); err != nil {
			return err
		}
		if err = txn.Set(pk, []byte(conversation.ID.String())); err != nil {
			return err
		}
		for _, participant := range conversation.Participants {
			if err = txn.Set(userKey(participant, conversation.ID), nil); err != nil {
				return err
			}
		}
		result = conversation
		created = true
		return nil
	})
	if err != nil {
		return domain.Conversation{}, false, err
	}
	return result, created, nil
}

func (r *ConversationRepository) GetByID(id uuid.UUID) (domain.Conversation, error) {
	var conversation domain.Conversation
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		conversation, err = getByIDTxn(txn, id)
		return err
	})
	return conversation, err
}

// ListByUser scans the inbox index and resolves each entry to its document.
// Sorting by activity is left to the service layer.
func (r *ConversationRepository) ListByUser(userID string) ([]domain.Conversation, error) {
	var conversations []domain.Conversation
	err := r.db.View(func(txn *badger.Txn) error {
		prefixStr := fmt.Sprintf("conv:user:%s:", userID)
		prefix := []byte(prefixStr)
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id, err := uuid.Parse(string(it.Item().Key()[len(prefixStr):]))
			if err != nil {
				return err
			}
			conversation, err := getByIDTxn(txn, id)
			if err != nil {
				return err
			}
			conversations = append(conversations, conversation)
		}
		return nil
	})
	return conversations, err
}

// Touch advances LastActivity to at. Older timestamps are ignored so that
// concurrent senders never move the inbox position backwards.
func (r *ConversationRepository) Touch(id uuid.UUID, at time.Time) error {
	return r.db.Update(func(txn *badger.Txn) error {
		conversation, err := getByIDTxn(txn, id)
		if err != nil {
			return err
		}
		if !at.After(conversation.LastActivity) {
			return nil
		}
		conversation.LastActivity = at.UTC()
		data, err := json.Marshal(fromConversation(conversation))
		if err != nil {
			return err
		}
		return txn.Set(docKey(id), data)
	})
}

func getByIDTxn(txn *badger.Txn, id uuid.UUID) (domain.Conversation, error) {
	item, err := txn.Get(docKey(id))
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return domain.Conversation{}, errors.ErrNotFound
	}
	if err != nil {
		return domain.Conversation{}, err
	}
	var dc diskConversation
	if err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &dc)
	}); err != nil {
		return domain.Conversation{}, err
	}
	return toConversation(dc), nil
}

func fromConversation(c domain.Conversation) diskConversation {
	return diskConversation{
		ID:           c.ID,
		Participants: c.Participants,
		ListingID:    c.ListingID,
		LastActivity: c.LastActivity.UTC(),
	}
}

func toConversation(dc diskConversation) domain.Conversation {
	return domain.Conversation{
		ID:           dc.ID,
		Participants: dc.Participants,
		ListingID:    dc.ListingID,
		LastActivity: dc.LastActivity.UTC(),
	}
}
