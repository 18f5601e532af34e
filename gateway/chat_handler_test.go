package gateway

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"imobiliare/auth"
	"imobiliare/domain"
	"imobiliare/errors"
	"imobiliare/mocks"
	"imobiliare/realtime"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newChatTestRouter(t *testing.T, conversations *mocks.MockIConversationService, broker *realtime.Broker) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Stand-in for the auth middleware: trust the test header.
	group := router.Group("/api/chat", func(c *gin.Context) {
		c.Set(auth.UserIDKey, c.GetHeader("X-Test-User"))
	})
	NewChatHandler(conversations, broker, slog.Default()).Register(group)
	return router
}

func performJSON(t *testing.T, router *gin.Engine, method, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", user)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestChatHandler_OpenConversation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conversations := mocks.NewMockIConversationService(ctrl)
	router := newChatTestRouter(t, conversations, realtime.NewBroker(slog.Default()))

	t.Run("should return the conversation", func(t *testing.T) {
		req := require.New(t)
		conversation := domain.NewConversation("buyer", "seller", "listing-1", time.Now().UTC())
		conversations.EXPECT().
			GetOrCreate(gomock.Any(), "buyer", "seller", "listing-1").
			Return(conversation, nil)

		recorder := performJSON(t, router, http.MethodPost, "/api/chat/conversations", "buyer", map[string]string{
			"peer_id":    "seller",
			"listing_id": "listing-1",
		})

		req.Equal(http.StatusOK, recorder.Code)
		var payload conversationPayload
		req.NoError(json.Unmarshal(recorder.Body.Bytes(), &payload))
		req.Equal(conversation.ID.String(), payload.ID)
	})

	t.Run("should map self-conversation to a bad request", func(t *testing.T) {
		req := require.New(t)
		conversations.EXPECT().
			GetOrCreate(gomock.Any(), "buyer", "buyer", "listing-1").
			Return(domain.Conversation{}, errors.ErrInvalidParticipants)

		recorder := performJSON(t, router, http.MethodPost, "/api/chat/conversations", "buyer", map[string]string{
			"peer_id":    "buyer",
			"listing_id": "listing-1",
		})
		req.Equal(http.StatusBadRequest, recorder.Code)
	})

	t.Run("should reject a body without a peer", func(t *testing.T) {
		req := require.New(t)
		recorder := performJSON(t, router, http.MethodPost, "/api/chat/conversations", "buyer", map[string]string{
			"listing_id": "listing-1",
		})
		req.Equal(http.StatusBadRequest, recorder.Code)
	})
}

func TestChatHandler_SendMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conversations := mocks.NewMockIConversationService(ctrl)
	broker := realtime.NewBroker(slog.Default())
	router := newChatTestRouter(t, conversations, broker)

	conversationID := uuid.New()

	t.Run("should persist then publish to the room", func(t *testing.T) {
		req := require.New(t)
		message := domain.Message{
			ID:             uuid.New(),
			ConversationID: conversationID,
			SenderID:       "buyer",
			Body:           "hello",
			CreatedAt:      time.Now().UTC(),
		}
		conversations.EXPECT().
			SendMessage(gomock.Any(), conversationID, "buyer", "hello").
			Return(message, nil)

		sink := &collectSink{}
		broker.Attach("watcher", sink)
		broker.Subscribe("watcher", conversationID)

		recorder := performJSON(t, router, http.MethodPost, "/api/chat/conversations/"+conversationID.String()+"/messages", "buyer", map[string]string{
			"body": "hello",
		})

		req.Equal(http.StatusCreated, recorder.Code)
		req.Len(sink.payloads, 1)
		var frame messageFrame
		req.NoError(json.Unmarshal(sink.payloads[0], &frame))
		req.Equal(frameTypeMessage, frame.Type)
		req.Equal("hello", frame.Message.Body)
	})

	t.Run("should map service errors onto status codes", func(t *testing.T) {
		req := require.New(t)
		cases := []struct {
			err    error
			status int
		}{
			{errors.ErrForbidden, http.StatusForbidden},
			{errors.ErrNotFound, http.StatusNotFound},
			{errors.ErrInvalidBody, http.StatusBadRequest},
			{errors.ErrUnavailable, http.StatusServiceUnavailable},
		}
		for _, tc := range cases {
			conversations.EXPECT().
				SendMessage(gomock.Any(), conversationID, "buyer", "hello").
				Return(domain.Message{}, tc.err)

			recorder := performJSON(t, router, http.MethodPost, "/api/chat/conversations/"+conversationID.String()+"/messages", "buyer", map[string]string{
				"body": "hello",
			})
			req.Equal(tc.status, recorder.Code)
		}
	})

	t.Run("should 404 on a malformed conversation id", func(t *testing.T) {
		req := require.New(t)
		recorder := performJSON(t, router, http.MethodPost, "/api/chat/conversations/not-a-uuid/messages", "buyer", map[string]string{
			"body": "hello",
		})
		req.Equal(http.StatusNotFound, recorder.Code)
	})
}

func TestChatHandler_ListMessages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conversations := mocks.NewMockIConversationService(ctrl)
	router := newChatTestRouter(t, conversations, realtime.NewBroker(slog.Default()))

	conversationID := uuid.New()

	t.Run("should return messages and the next cursor", func(t *testing.T) {
		req := require.New(t)
		next := "cursor-token"
		conversations.EXPECT().
			ListMessages(gomock.Any(), conversationID, "buyer", gomock.Nil()).
			Return([]domain.Message{{ID: uuid.New(), ConversationID: conversationID, SenderID: "buyer", Body: "hi"}}, &next, nil)

		recorder := performJSON(t, router, http.MethodGet, "/api/chat/conversations/"+conversationID.String()+"/messages", "buyer", nil)
		req.Equal(http.StatusOK, recorder.Code)

		var payload struct {
			Messages   []messagePayload `json:"messages"`
			NextCursor string           `json:"next_cursor"`
		}
		req.NoError(json.Unmarshal(recorder.Body.Bytes(), &payload))
		req.Len(payload.Messages, 1)
		req.Equal("cursor-token", payload.NextCursor)
	})

	t.Run("should pass the cursor through", func(t *testing.T) {
		req := require.New(t)
		cursor := "resume-here"
		conversations.EXPECT().
			ListMessages(gomock.Any(), conversationID, "buyer", &cursor).
			Return(nil, nil, nil)

		recorder := performJSON(t, router, http.MethodGet, "/api/chat/conversations/"+conversationID.String()+"/messages?cursor=resume-here", "buyer", nil)
		req.Equal(http.StatusOK, recorder.Code)
	})
}

// collectSink records published frames synchronously.
type collectSink struct {
	payloads [][]byte
}

func (s *collectSink) Send(payload []byte) error {
	s.payloads = append(s.payloads, payload)
	return nil
}
