package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
)

type testListingChatSuite struct {
	BaseHTTPSuite
}

func TestListingChatSuite(t *testing.T) {
	suite.Run(t, &testListingChatSuite{})
}

// TestFullContactFlow walks the whole buyer journey against a running
// node: publish a listing, contact the seller, chat in realtime and
// read the history back over REST.
func (s *testListingChatSuite) TestFullContactFlow() {
	run := uuid.NewString()[:8]
	sellerToken, sellerID := s.RegisterUser("Seller "+run, fmt.Sprintf("seller-%s@example.com", run))
	buyerToken, buyerID := s.RegisterUser("Buyer "+run, fmt.Sprintf("buyer-%s@example.com", run))
	s.Require().NotEqual(sellerID, buyerID)

	var listingID string
	s.Step("Seller publishes a listing")
	{
		var out struct {
			ID string `json:"id"`
		}
		resp := s.postListing(sellerToken, map[string]string{
			"title":       "Apartament 3 camere " + run,
			"description": "Luminos, etaj intermediar, aproape de metrou.",
			"category":    "apartament",
			"price":       "120000",
			"surface":     "72",
			"rooms":       "3",
			"county":      "Bucuresti",
			"city":        "Bucuresti",
		}, &out)
		s.Require().Equal(http.StatusCreated, resp.StatusCode)
		s.Require().NotEmpty(out.ID)
		listingID = out.ID
	}

	var conversationID string
	s.Step("Buyer opens the conversation")
	{
		var out struct {
			ID string `json:"id"`
		}
		resp := s.DoJSON(http.MethodPost, "/api/chat/conversations", buyerToken, map[string]string{
			"peer_id":    sellerID,
			"listing_id": listingID,
		}, &out)
		s.Require().Equal(http.StatusOK, resp.StatusCode)
		s.Require().NotEmpty(out.ID)
		conversationID = out.ID

		// Opening again must land on the same conversation.
		var again struct {
			ID string `json:"id"`
		}
		resp = s.DoJSON(http.MethodPost, "/api/chat/conversations", buyerToken, map[string]string{
			"peer_id":    sellerID,
			"listing_id": listingID,
		}, &again)
		s.Require().Equal(http.StatusOK, resp.StatusCode)
		s.Require().Equal(conversationID, again.ID)
	}

	s.Step("Both sides chat over the socket")
	{
		buyerWS := s.dialWS(buyerToken)
		defer buyerWS.Close()
		sellerWS := s.dialWS(sellerToken)
		defer sellerWS.Close()

		s.joinRoom(buyerWS, conversationID)
		s.joinRoom(sellerWS, conversationID)

		s.Require().NoError(buyerWS.WriteJSON(map[string]string{
			"type":            "message",
			"conversation_id": conversationID,
			"body":            "Buna ziua, mai este disponibil?",
		}))

		for _, ws := range []*websocket.Conn{buyerWS, sellerWS} {
			frame := s.readFrame(ws)
			s.Require().Equal("message", frame["type"])
			message := frame["message"].(map[string]any)
			s.Require().Equal(buyerID, message["sender_id"])
			s.Require().Equal("Buna ziua, mai este disponibil?", message["body"])
		}
	}

	s.Step("History and inbox are readable over REST")
	{
		var history struct {
			Messages []struct {
				SenderID string `json:"sender_id"`
				Body     string `json:"body"`
			} `json:"messages"`
		}
		resp := s.DoJSON(http.MethodGet, "/api/chat/conversations/"+conversationID+"/messages", sellerToken, nil, &history)
		s.Require().Equal(http.StatusOK, resp.StatusCode)
		s.Require().Len(history.Messages, 1)
		s.Require().Equal(buyerID, history.Messages[0].SenderID)

		var inbox struct {
			Conversations []struct {
				ID string `json:"id"`
			} `json:"conversations"`
		}
		resp = s.DoJSON(http.MethodGet, "/api/chat/conversations", buyerToken, nil, &inbox)
		s.Require().Equal(http.StatusOK, resp.StatusCode)
		s.Require().NotEmpty(inbox.Conversations)
		s.Require().Equal(conversationID, inbox.Conversations[0].ID)
	}

	s.Step("A third account is locked out")
	{
		intruderToken, _ := s.RegisterUser("Intruder "+run, fmt.Sprintf("intruder-%s@example.com", run))
		resp := s.DoJSON(http.MethodGet, "/api/chat/conversations/"+conversationID+"/messages", intruderToken, nil, nil)
		s.Require().Equal(http.StatusForbidden, resp.StatusCode)
	}
}

func (s *testListingChatSuite) postListing(token string, fields map[string]string, out any) *http.Response {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		s.Require().NoError(writer.WriteField(key, value))
	}
	s.Require().NoError(writer.Close())

	req, err := http.NewRequest(http.MethodPost, s.Config.APIAddr+"/api/properties", body)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	if out != nil {
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func (s *testListingChatSuite) dialWS(token string) *websocket.Conn {
	ws, _, err := websocket.DefaultDialer.Dial(s.Config.WSAddr+"/ws?token="+token, nil)
	s.Require().NoError(err, "Failed to open websocket session")
	return ws
}

func (s *testListingChatSuite) joinRoom(ws *websocket.Conn, conversationID string) {
	s.Require().NoError(ws.WriteJSON(map[string]string{
		"type":            "join",
		"conversation_id": conversationID,
	}))
	frame := s.readFrame(ws)
	s.Require().Equal("ack", frame["type"])
	s.Require().Equal("join", frame["op"])
}

func (s *testListingChatSuite) readFrame(ws *websocket.Conn) map[string]any {
	s.Require().NoError(ws.SetReadDeadline(time.Now().Add(10 * time.Second)))
	var frame map[string]any
	s.Require().NoError(ws.ReadJSON(&frame))
	return frame
}
