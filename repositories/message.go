//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"imobiliare/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IMessageRepository interface {
	StoreMessage(message domain.Message) error
	GetMessages(conversationID uuid.UUID, cursor *string) ([]domain.Message, *string, error)
}

type MessageRepository struct {
	db            *badger.DB
	log           *slog.Logger
	limitMessages *int
	seq           atomic.Uint64
}

func NewMessageRepository(db *badger.DB, log *slog.Logger, limitMessages *int) *MessageRepository {
	return &MessageRepository{db: db, log: log, limitMessages: limitMessages}
}

// diskMessage is the stored representation of a message.
type diskMessage struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

// StoreMessage persists a message in BadgerDB.
// The key is formatted as "msg:{conversation_id}:{timestamp_padded}:{seq_padded}" to:
//  1. Ensure chronological sorting using 19-digit zero padding (lexicographical order).
//  2. Break ties deterministically with a monotonic insertion counter if two
//     messages land on the same nanosecond, so repeated reads stay stable.
func (m *MessageRepository) StoreMessage(message domain.Message) error {
	key := fmt.Sprintf("msg:%s:%019d:%012d",
		message.ConversationID,
		message.CreatedAt.UnixNano(),
		m.seq.Add(1),
	)
	bytes, err := json.Marshal(fromMessage(message))
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// GetMessages retrieves messages for a conversation using a forward prefix scan.
// Thanks to the padded timestamp in the key, messages come back oldest first.
// A nil cursor starts from the beginning; the returned cursor resumes after
// the last message of the page. Collection stops at limitMessages when set.
func (m *MessageRepository) GetMessages(conversationID uuid.UUID, cursor *string) ([]domain.Message, *string, error) {
	var raw [][]byte
	var lastKey string
	err := m.db.View(func(txn *badger.Txn) error {
		prefixStr := fmt.Sprintf("msg:%s:", conversationID)
		prefix := []byte(prefixStr)
		prefixLen := len(prefixStr)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		seekKey := prefix
		if cursor != nil {
			seekKey = append([]byte(prefixStr), []byte(*cursor)...)
		}

		it.Seek(seekKey)

		if cursor != nil && it.ValidForPrefix(prefix) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if m.limitMessages != nil && len(raw) == *m.limitMessages {
				m.log.Debug(fmt.Sprintf("Maximum of %d messages reached", *m.limitMessages))
				break
			}
			item := it.Item()
			// Memorize cursor part of the actual key
			lastKey = string(item.Key()[prefixLen:])
			err := item.Value(func(value []byte) error {
				raw = append(raw, append([]byte(nil), value...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if len(raw) == 0 {
		return nil, nil, nil
	}

	messages := make([]domain.Message, 0, len(raw))
	for _, b := range raw {
		var dm diskMessage
		if err = json.Unmarshal(b, &dm); err != nil {
			return nil, nil, err
		}
		messages = append(messages, toMessage(dm))
	}
	return messages, &lastKey, nil
}

func fromMessage(message domain.Message) diskMessage {
	return diskMessage{
		ID:             message.ID,
		ConversationID: message.ConversationID,
		SenderID:       message.SenderID,
		Body:           message.Body,
		CreatedAt:      message.CreatedAt.UTC(),
	}
}

func toMessage(dm diskMessage) domain.Message {
	return domain.Message{
		ID:             dm.ID,
		ConversationID: dm.ConversationID,
		SenderID:       dm.SenderID,
		Body:           dm.Body,
		CreatedAt:      dm.CreatedAt.UTC(),
	}
}
