package gateway

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"imobiliare/auth"
	"imobiliare/domain"
	"imobiliare/errors"
	"imobiliare/realtime"
	"imobiliare/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// ChatHandler exposes the conversation surface over REST. Reads always
// come from here; sends are accepted both here and over the socket, and
// either path persists first and fans out second.
type ChatHandler struct {
	conversations services.IConversationService
	broker        *realtime.Broker
	log           *slog.Logger
}

func NewChatHandler(conversations services.IConversationService, broker *realtime.Broker, log *slog.Logger) *ChatHandler {
	return &ChatHandler{conversations: conversations, broker: broker, log: log}
}

func (h *ChatHandler) Register(group *gin.RouterGroup) {
	group.GET("/conversations", h.listConversations)
	group.POST("/conversations", h.openConversation)
	group.GET("/conversations/:id/messages", h.listMessages)
	group.POST("/conversations/:id/messages", h.sendMessage)
}

type openConversationRequest struct {
	PeerID    string `json:"peer_id" binding:"required"`
	ListingID string `json:"listing_id" binding:"required"`
}

type conversationPayload struct {
	ID           string    `json:"id"`
	Participants [2]string `json:"participants"`
	ListingID    string    `json:"listing_id"`
	LastActivity time.Time `json:"last_activity"`
}

type messagePayload struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

type sendMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

func (h *ChatHandler) openConversation(c *gin.Context) {
	var req openConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.ErrInvalidParticipants)
		return
	}

	conversation, err := h.conversations.GetOrCreate(c.Request.Context(), auth.UserID(c), req.PeerID, req.ListingID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toConversationPayload(conversation))
}

func (h *ChatHandler) listConversations(c *gin.Context) {
	conversations, err := h.conversations.ListConversations(c.Request.Context(), auth.UserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"conversations": lo.Map(conversations, func(conv domain.Conversation, _ int) conversationPayload {
			return toConversationPayload(conv)
		}),
	})
}

func (h *ChatHandler) listMessages(c *gin.Context) {
	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, errors.ErrNotFound)
		return
	}

	var cursor *string
	if raw := c.Query("cursor"); raw != "" {
		cursor = &raw
	}

	messages, next, err := h.conversations.ListMessages(c.Request.Context(), conversationID, auth.UserID(c), cursor)
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := gin.H{
		"messages": lo.Map(messages, func(msg domain.Message, _ int) messagePayload {
			return toMessagePayload(msg)
		}),
	}
	if next != nil {
		resp["next_cursor"] = *next
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) sendMessage(c *gin.Context) {
	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, errors.ErrNotFound)
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.ErrInvalidBody)
		return
	}

	message, err := h.conversations.SendMessage(c.Request.Context(), conversationID, auth.UserID(c), req.Body)
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.publish(message)
	c.JSON(http.StatusCreated, toMessagePayload(message))
}

// publish fans the persisted message out to the conversation room.
// Failures here never surface to the sender: the message is already
// durable and readers will see it on their next history fetch.
func (h *ChatHandler) publish(message domain.Message) {
	frame, err := json.Marshal(messageFrame{
		Type:    frameTypeMessage,
		Message: toMessagePayload(message),
	})
	if err != nil {
		h.log.Error("Failed to encode outbound message frame", "message_id", message.ID, "error", err)
		return
	}
	delivered := h.broker.Publish(message.ConversationID, frame)
	h.log.Debug("Published message to room",
		"conversation_id", message.ConversationID,
		"delivered", delivered)
}

func toConversationPayload(conv domain.Conversation) conversationPayload {
	return conversationPayload{
		ID:           conv.ID.String(),
		Participants: conv.Participants,
		ListingID:    conv.ListingID,
		LastActivity: conv.LastActivity,
	}
}

func toMessagePayload(msg domain.Message) messagePayload {
	return messagePayload{
		ID:             msg.ID.String(),
		ConversationID: msg.ConversationID.String(),
		SenderID:       msg.SenderID,
		Body:           msg.Body,
		CreatedAt:      msg.CreatedAt,
	}
}
