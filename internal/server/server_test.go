package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/gitvitae/gitvitae/internal/analyzer"
)

// stubCompleter returns a fixed response or error for every call.
type stubCompleter struct {
	content string
	err     error
}

func (s *stubCompleter) CreateChatCompletion(_ context.Context, _ openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if s.err != nil {
		return openai.ChatCompletionResponse{}, s.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: s.content}},
		},
	}, nil
}

func newTestServer(client analyzer.ChatCompleter, clientErr error) *Server {
	s := New()
	s.newClient = func() (analyzer.ChatCompleter, error) {
		if clientErr != nil {
			return nil, clientErr
		}
		return client, nil
	}
	return s
}

func postJSON(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
	}
	return body["error"]
}

func TestGitLogValidation(t *testing.T) {
	s := newTestServer(nil, nil)

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", "{not json"},
		{"missing repoPath", `{"author": "jane"}`},
		{"nonexistent repo", `{"repoPath": "/definitely/not/a/repo/path"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, s, "/api/git-log", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if decodeError(t, rec) == "" {
				t.Error("error body missing")
			}
		})
	}
}

func TestAnalyzeValidation(t *testing.T) {
	s := newTestServer(&stubCompleter{}, nil)

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", "{not json"},
		{"missing commits", `{}`},
		{"empty commits", `{"commits": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, s, "/api/analyze-resume", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

const commitBody = `{"commits": [{"hash": "a1b2c3", "date": "2023-06-01", "authorName": "Jane", "authorEmail": "jane@x.com", "subject": "Add retry logic", "body": ""}]}`

func TestAnalyzeSuccess(t *testing.T) {
	partial := `{"summary": "Shipped retry logic.", "keyAchievements": ["added retries"], "technicalSkills": ["Go"], "businessImpact": [], "problemSolving": [], "leadership": []}`
	s := newTestServer(&stubCompleter{content: partial}, nil)

	rec := postJSON(t, s, "/api/analyze-resume", commitBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body.String())
	}

	var resp analyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Error("success = false, want true")
	}
	if resp.Analysis.Summary != "Shipped retry logic." {
		t.Errorf("summary = %q", resp.Analysis.Summary)
	}
	if !strings.Contains(resp.Formatted, "Key Achievements") {
		t.Errorf("formatted report missing sections:\n%s", resp.Formatted)
	}
}

func TestAnalyzeFailures(t *testing.T) {
	tests := []struct {
		name      string
		client    analyzer.ChatCompleter
		clientErr error
	}{
		{"missing api key", nil, errors.New("OPENAI_API_KEY is not set")},
		{"model transport error", &stubCompleter{err: errors.New("429 too many requests")}, nil},
		{"unparseable model response", &stubCompleter{content: "not json at all"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(tt.client, tt.clientErr)
			rec := postJSON(t, s, "/api/analyze-resume", commitBody)
			if rec.Code != http.StatusInternalServerError {
				t.Errorf("status = %d, want 500", rec.Code)
			}
			if decodeError(t, rec) == "" {
				t.Error("error body missing")
			}
		})
	}
}

func TestStaticIndexServed(t *testing.T) {
	s := newTestServer(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "gitvitae") {
		t.Error("index page not served")
	}
}
