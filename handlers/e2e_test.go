package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// E2ETestSuite drives a running server over HTTP. It needs DATABASE_URL and the
// rest of the environment set up like production; set E2E_BASE_URL (default
// http://localhost:8080) and run the server first. The suite skips itself when
// no server is listening.
type E2ETestSuite struct {
	suite.Suite
	baseURL      string
	studentToken string
	adminToken   string
	eventID      string
	studentEmail string
	adminEmail   string
}

func (s *E2ETestSuite) SetupSuite() {
	s.baseURL = os.Getenv("E2E_BASE_URL")
	if s.baseURL == "" {
		s.baseURL = "http://localhost:8080"
	}
	resp, err := http.Get(s.baseURL + "/health")
	if err != nil {
		s.T().Skipf("no server at %s: %v", s.baseURL, err)
	}
	resp.Body.Close()

	stamp := time.Now().UnixNano()
	s.studentEmail = fmt.Sprintf("student%d@campus.edu", stamp)
	// Admin flows need the account on the ADMIN_EMAILS allow-list.
	s.adminEmail = os.Getenv("E2E_ADMIN_EMAIL")
}

func (s *E2ETestSuite) postJSON(path, token, body string) *http.Response {
	req, err := http.NewRequest(http.MethodPost, s.baseURL+path, bytes.NewBufferString(body))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *E2ETestSuite) do(method, path, token string, body string) *http.Response {
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, s.baseURL+path, rd)
	s.Require().NoError(err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	return resp
}

func decodeData(s *E2ETestSuite, resp *http.Response) map[string]interface{} {
	defer resp.Body.Close()
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Data
}

func (s *E2ETestSuite) Test01_Health() {
	resp, err := http.Get(s.baseURL + "/health")
	s.NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *E2ETestSuite) Test02_Signup() {
	body := fmt.Sprintf(`{"email":%q,"password":"studentpass1"}`, s.studentEmail)
	resp := s.postJSON("/register", "", body)
	defer resp.Body.Close()
	s.Equal(http.StatusCreated, resp.StatusCode)
}

func (s *E2ETestSuite) Test03_SignupConflict() {
	body := fmt.Sprintf(`{"email":%q,"password":"studentpass1"}`, s.studentEmail)
	resp := s.postJSON("/register", "", body)
	defer resp.Body.Close()
	s.Equal(http.StatusConflict, resp.StatusCode)
}

func (s *E2ETestSuite) Test04_LoginInvalid() {
	body := fmt.Sprintf(`{"email":%q,"password":"wrong"}`, s.studentEmail)
	resp := s.postJSON("/login", "", body)
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *E2ETestSuite) Test05_LoginValid() {
	body := fmt.Sprintf(`{"email":%q,"password":"studentpass1"}`, s.studentEmail)
	resp := s.postJSON("/login", "", body)
	data := decodeData(s, resp)
	token, _ := data["token"].(string)
	s.NotEmpty(token)
	s.studentToken = token
}

func (s *E2ETestSuite) Test06_ListEventsRequiresAuth() {
	resp := s.do(http.MethodGet, "/events", "", "")
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *E2ETestSuite) Test07_ListEvents() {
	resp := s.do(http.MethodGet, "/events", s.studentToken, "")
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *E2ETestSuite) Test08_CreateEventForbiddenForStudent() {
	body := `{"title":"Pop-up Event","date":"2099-01-01","startTime":"10:00","endTime":"12:00","location":"Quad","category":"social"}`
	resp := s.postJSON("/events", s.studentToken, body)
	defer resp.Body.Close()
	s.Equal(http.StatusForbidden, resp.StatusCode)
}

func (s *E2ETestSuite) Test09_AdminLogin() {
	if s.adminEmail == "" {
		s.T().Skip("E2E_ADMIN_EMAIL not set")
	}
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, s.adminEmail, os.Getenv("E2E_ADMIN_PASSWORD"))
	resp := s.postJSON("/login", "", body)
	data := decodeData(s, resp)
	token, _ := data["token"].(string)
	s.NotEmpty(token)
	s.adminToken = token
}

func (s *E2ETestSuite) Test10_AdminCreatesEvent() {
	if s.adminToken == "" {
		s.T().Skip("admin token unavailable")
	}
	body := `{"title":"Intro to Rock Climbing","description":"Bring chalk","date":"2099-01-01","startTime":"10:00","endTime":"12:00","location":"Rec Center","category":"sports","capacity":2}`
	resp := s.postJSON("/events", s.adminToken, body)
	s.Equal(http.StatusCreated, resp.StatusCode)
	data := decodeData(s, resp)
	id, _ := data["id"].(string)
	s.NotEmpty(id)
	s.eventID = id
}

func (s *E2ETestSuite) Test11_StudentRegisters() {
	if s.eventID == "" {
		s.T().Skip("no event created")
	}
	resp := s.postJSON("/events/"+s.eventID+"/register", s.studentToken, "")
	defer resp.Body.Close()
	s.Equal(http.StatusCreated, resp.StatusCode)
}

func (s *E2ETestSuite) Test12_DuplicateRegistrationConflicts() {
	if s.eventID == "" {
		s.T().Skip("no event created")
	}
	resp := s.postJSON("/events/"+s.eventID+"/register", s.studentToken, "")
	defer resp.Body.Close()
	s.Equal(http.StatusConflict, resp.StatusCode)
}

func (s *E2ETestSuite) Test13_RegistrationNotification() {
	if s.eventID == "" {
		s.T().Skip("no event created")
	}
	resp := s.do(http.MethodGet, "/notifications", s.studentToken, "")
	s.Equal(http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	s.NoError(err)
	s.Contains(string(raw), "Event Registration Confirmed")
}

func (s *E2ETestSuite) Test14_MyEvents() {
	if s.eventID == "" {
		s.T().Skip("no event created")
	}
	resp := s.do(http.MethodGet, "/me/events", s.studentToken, "")
	s.Equal(http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	s.NoError(err)
	s.Contains(string(raw), s.eventID)
}

func (s *E2ETestSuite) Test15_Unregister() {
	if s.eventID == "" {
		s.T().Skip("no event created")
	}
	resp := s.do(http.MethodDelete, "/events/"+s.eventID+"/register", s.studentToken, "")
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *E2ETestSuite) Test16_UnregisterAgainNotFound() {
	if s.eventID == "" {
		s.T().Skip("no event created")
	}
	resp := s.do(http.MethodDelete, "/events/"+s.eventID+"/register", s.studentToken, "")
	defer resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *E2ETestSuite) Test17_AdminDeletesEvent() {
	if s.adminToken == "" || s.eventID == "" {
		s.T().Skip("admin token or event unavailable")
	}
	resp := s.do(http.MethodDelete, "/events/"+s.eventID, s.adminToken, "")
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}

func TestE2E(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}
