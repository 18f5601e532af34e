package gateway

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"imobiliare/auth"
	"imobiliare/errors"
	"imobiliare/realtime"
	"imobiliare/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	frameTypeJoin    = "join"
	frameTypeLeave   = "leave"
	frameTypeMessage = "message"
	frameTypeAck     = "ack"
	frameTypeError   = "error"
)

// inboundFrame is a client request over the socket. ConversationID is
// required for every frame type; Body only for "message".
type inboundFrame struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversation_id"`
	Body           string `json:"body,omitempty"`
}

type messageFrame struct {
	Type    string         `json:"type"`
	Message messagePayload `json:"message"`
}

type ackFrame struct {
	Type           string `json:"type"`
	Op             string `json:"op"`
	ConversationID string `json:"conversation_id"`
}

type errorFrame struct {
	Type           string `json:"type"`
	Op             string `json:"op,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
	Error          string `json:"error"`
}

// SocketHandler terminates websocket sessions. Each session is one
// broker subscriber; a user chatting from two devices holds two
// independent sessions and both receive room traffic. Authorization is
// enforced per room at join time, never at publish time.
type SocketHandler struct {
	conversations services.IConversationService
	broker        *realtime.Broker
	log           *slog.Logger
	upgrader      websocket.Upgrader
	bufferSize    int
}

func NewSocketHandler(conversations services.IConversationService, broker *realtime.Broker, log *slog.Logger, bufferSize int) *SocketHandler {
	return &SocketHandler{
		conversations: conversations,
		broker:        broker,
		log:           log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		bufferSize: bufferSize,
	}
}

// Handle authenticates, upgrades and runs the session read loop until
// the client goes away.
func (h *SocketHandler) Handle(c *gin.Context) {
	claims, err := auth.ValidateToken(c.Query("token"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errors.ErrUnauthenticated.Error()})
		return
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("Websocket upgrade failed", "user_id", claims.UserID, "error", err)
		return
	}

	conn := realtime.NewConnection(claims.UserID, ws, h.bufferSize)
	conn.Start()
	h.broker.Attach(conn.ID, conn)
	defer h.broker.Detach(conn.ID)

	h.log.Info("Websocket session opened", "user_id", conn.UserID, "connection_id", conn.ID)
	defer h.log.Info("Websocket session closed", "user_id", conn.UserID, "connection_id", conn.ID)

	h.readLoop(c, conn, ws)
}

func (h *SocketHandler) readLoop(c *gin.Context, conn *realtime.Connection, ws *websocket.Conn) {
	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			conn.Close(websocket.CloseNormalClosure, "bye")
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			h.sendError(conn, "", "", "malformed frame")
			continue
		}
		h.dispatch(c, conn, frame)
	}
}

func (h *SocketHandler) dispatch(c *gin.Context, conn *realtime.Connection, frame inboundFrame) {
	conversationID, err := uuid.Parse(frame.ConversationID)
	if err != nil {
		h.sendError(conn, frame.Type, frame.ConversationID, errors.ErrNotFound.Error())
		return
	}

	switch frame.Type {
	case frameTypeJoin:
		h.join(c, conn, conversationID)
	case frameTypeLeave:
		h.broker.Unsubscribe(conn.ID, conversationID)
		h.sendAck(conn, frameTypeLeave, conversationID)
	case frameTypeMessage:
		h.message(c, conn, conversationID, frame.Body)
	default:
		h.sendError(conn, frame.Type, frame.ConversationID, "unknown frame type")
	}
}

// join subscribes the session to the room, but only after the directory
// confirms the user is a participant. A failed join leaves the session
// untouched and reports only to the offending client.
func (h *SocketHandler) join(c *gin.Context, conn *realtime.Connection, conversationID uuid.UUID) {
	if err := h.conversations.Authorize(c.Request.Context(), conversationID, conn.UserID); err != nil {
		h.sendError(conn, frameTypeJoin, conversationID.String(), err.Error())
		return
	}
	h.broker.Subscribe(conn.ID, conversationID)
	h.sendAck(conn, frameTypeJoin, conversationID)
}

func (h *SocketHandler) message(c *gin.Context, conn *realtime.Connection, conversationID uuid.UUID, body string) {
	message, err := h.conversations.SendMessage(c.Request.Context(), conversationID, conn.UserID, body)
	if err != nil {
		h.sendError(conn, frameTypeMessage, conversationID.String(), err.Error())
		return
	}

	frame, err := json.Marshal(messageFrame{Type: frameTypeMessage, Message: toMessagePayload(message)})
	if err != nil {
		h.log.Error("Failed to encode outbound message frame", "message_id", message.ID, "error", err)
		return
	}
	delivered := h.broker.Publish(conversationID, frame)
	h.log.Debug("Published message to room",
		"conversation_id", conversationID,
		"delivered", delivered)
}

func (h *SocketHandler) sendAck(conn *realtime.Connection, op string, conversationID uuid.UUID) {
	h.sendFrame(conn, ackFrame{Type: frameTypeAck, Op: op, ConversationID: conversationID.String()})
}

func (h *SocketHandler) sendError(conn *realtime.Connection, op, conversationID, msg string) {
	h.sendFrame(conn, errorFrame{Type: frameTypeError, Op: op, ConversationID: conversationID, Error: msg})
}

func (h *SocketHandler) sendFrame(conn *realtime.Connection, frame any) {
	raw, err := json.Marshal(frame)
	if err != nil {
		h.log.Error("Failed to encode control frame", "error", err)
		return
	}
	if err := conn.Send(raw); err != nil {
		h.log.Debug("Dropped control frame", "connection_id", conn.ID, "error", err)
	}
}
