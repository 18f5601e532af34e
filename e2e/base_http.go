package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
)

// BaseHTTPSuite carries the shared environment config and JSON helpers
// for suites driving a running API node over its public surface.
type BaseHTTPSuite struct {
	suite.Suite
	Config Config
	client *http.Client
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseHTTPSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	s.client = &http.Client{Timeout: 30 * time.Second}
}

// Step prints a colorized header so the test log reads as a scenario.
func (s *BaseHTTPSuite) Step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// DoJSON performs one JSON request against the API and decodes the
// response body into out (when out is non-nil). The token, when set, is
// passed as a bearer credential.
func (s *BaseHTTPSuite) DoJSON(method, path, token string, body any, out any) *http.Response {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.Config.APIAddr+path, reader)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	s.Require().NoError(err, "Failed to reach API at "+s.Config.APIAddr)

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	_ = resp.Body.Close()

	logBuilder := strings.Builder{}
	fmt.Fprintf(&logBuilder, "HTTP %s %s [%d] in %v", method, path, resp.StatusCode, time.Since(start))
	if s.Config.DebugJSON {
		fmt.Fprintln(&logBuilder, "\nRESPONSE:")
		fmt.Fprintln(&logBuilder, string(raw))
	}
	s.T().Log(logBuilder.String())

	if out != nil && len(raw) > 0 {
		s.Require().NoError(json.Unmarshal(raw, out), "Failed to decode response body")
	}
	return resp
}

// RegisterUser creates a throwaway account and returns its token and id.
func (s *BaseHTTPSuite) RegisterUser(name, email string) (token, userID string) {
	var out struct {
		Token  string `json:"token"`
		UserID string `json:"user_id"`
	}
	resp := s.DoJSON(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "Str0ng-Enough-Pass!",
	}, &out)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	s.Require().NotEmpty(out.Token)
	s.Require().NotEmpty(out.UserID)
	return out.Token, out.UserID
}
