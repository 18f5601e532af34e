//go:generate go run go.uber.org/mock/mockgen -source=conversation_service.go -destination=../mocks/mock_conversation_service.go -package=mocks
package services

import (
	"context"
	goerrors "errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"imobiliare/domain"
	"imobiliare/errors"
	"imobiliare/moderation"
	"imobiliare/repositories"

	"github.com/google/uuid"
)

type IConversationService interface {
	GetOrCreate(ctx context.Context, userA, userB, listingID string) (domain.Conversation, error)
	ListConversations(ctx context.Context, userID string) ([]domain.Conversation, error)
	ListMessages(ctx context.Context, conversationID uuid.UUID, requesterID string, cursor *string) ([]domain.Message, *string, error)
	SendMessage(ctx context.Context, conversationID uuid.UUID, senderID, body string) (domain.Message, error)
	Authorize(ctx context.Context, conversationID uuid.UUID, userID string) error
}

// ConversationService is the sole writer to the conversation directory
// and the message store. The realtime layer never writes anything: a
// send only becomes real once this service has persisted it.
type ConversationService struct {
	conversations repositories.IConversationRepository
	messages      repositories.IMessageRepository
	moderator     *moderation.Moderator
	log           *slog.Logger
	pairLocks     keyedLocks
}

func NewConversationService(
	conversations repositories.IConversationRepository,
	messages repositories.IMessageRepository,
	moderator *moderation.Moderator,
	log *slog.Logger,
) *ConversationService {
	return &ConversationService{
		conversations: conversations,
		messages:      messages,
		moderator:     moderator,
		log:           log,
	}
}

// GetOrCreate returns the single conversation for the unordered user
// pair and listing, creating it on first contact. Racing creators
// serialize on the pair key, so exactly one conversation can result.
func (s *ConversationService) GetOrCreate(_ context.Context, userA, userB, listingID string) (domain.Conversation, error) {
	if userA == "" || userB == "" || listingID == "" || userA == userB {
		return domain.Conversation{}, errors.ErrInvalidParticipants
	}

	lo, hi := domain.SortedPair(userA, userB)
	unlock := s.pairLocks.lock(fmt.Sprintf("%s:%s:%s", lo, hi, listingID))
	defer unlock()

	candidate := domain.NewConversation(userA, userB, listingID, time.Now().UTC())
	conversation, created, err := s.conversations.GetOrCreate(candidate)
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("%w: %v", errors.ErrUnavailable, err)
	}
	if created {
		s.log.Info("Conversation created",
			"conversation_id", conversation.ID,
			"listing_id", listingID)
	}
	return conversation, nil
}

// ListConversations returns the user's inbox, most recent activity first.
func (s *ConversationService) ListConversations(_ context.Context, userID string) ([]domain.Conversation, error) {
	conversations, err := s.conversations.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrUnavailable, err)
	}
	sort.SliceStable(conversations, func(i, j int) bool {
		return conversations[i].LastActivity.After(conversations[j].LastActivity)
	})
	return conversations, nil
}

// ListMessages returns the conversation history in ascending creation
// order. Only participants may read it.
func (s *ConversationService) ListMessages(ctx context.Context, conversationID uuid.UUID, requesterID string, cursor *string) ([]domain.Message, *string, error) {
	if err := s.Authorize(ctx, conversationID, requesterID); err != nil {
		return nil, nil, err
	}
	messages, next, err := s.messages.GetMessages(conversationID, cursor)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errors.ErrUnavailable, err)
	}
	return messages, next, nil
}

// SendMessage validates, masks and persists the message, then advances
// the conversation's activity timestamp. The message insert is the
// durability-critical half: a failed touch is logged and the send still
// succeeds, the inbox position simply lags until the next message.
func (s *ConversationService) SendMessage(_ context.Context, conversationID uuid.UUID, senderID, body string) (domain.Message, error) {
	if strings.TrimSpace(body) == "" {
		return domain.Message{}, errors.ErrInvalidBody
	}

	conversation, err := s.conversations.GetByID(conversationID)
	if err != nil {
		return domain.Message{}, asLookupError(err)
	}
	if !conversation.HasParticipant(senderID) {
		return domain.Message{}, errors.ErrForbidden
	}

	if s.moderator != nil {
		body = s.moderator.Mask(body)
	}

	message := domain.Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.messages.StoreMessage(message); err != nil {
		return domain.Message{}, fmt.Errorf("%w: %v", errors.ErrUnavailable, err)
	}

	if err := s.conversations.Touch(conversationID, message.CreatedAt); err != nil {
		s.log.Warn("Failed to touch conversation after message insert",
			"conversation_id", conversationID,
			"message_id", message.ID,
			"error", err)
	}

	return message, nil
}

// Authorize reports whether the user may act on the conversation:
// ErrNotFound when it does not exist, ErrForbidden when the user is not
// one of its two participants.
func (s *ConversationService) Authorize(_ context.Context, conversationID uuid.UUID, userID string) error {
	conversation, err := s.conversations.GetByID(conversationID)
	if err != nil {
		return asLookupError(err)
	}
	if !conversation.HasParticipant(userID) {
		return errors.ErrForbidden
	}
	return nil
}

func asLookupError(err error) error {
	if goerrors.Is(err, errors.ErrNotFound) {
		return errors.ErrNotFound
	}
	return fmt.Errorf("%w: %v", errors.ErrUnavailable, err)
}
