package server_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	aiva "github.com/aivrasol/aiva"
	"github.com/aivrasol/aiva/aivatest"
	"github.com/aivrasol/aiva/content"
	"github.com/aivrasol/aiva/server"
)

type chatResponse struct {
	Success   bool   `json:"success"`
	Content   string `json:"content"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

func postChat(t *testing.T, handler http.Handler, body string) (*httptest.ResponseRecorder, chatResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/aiva/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var resp chatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return rec, resp
}

func TestChatRequiresMessages(t *testing.T) {
	for _, body := range []string{
		`{}`,
		`{"messages": []}`,
		`{"messages": "hello"}`,
		`not json`,
	} {
		provider := aivatest.NewMockProvider()
		svc := server.New(&aivatest.StaticStore{}, provider)

		rec, resp := postChat(t, svc.Handler(), body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, rec.Code)
		}
		if resp.Success {
			t.Errorf("body %q: expected success=false", body)
		}
		if provider.SendCount() != 0 {
			t.Errorf("body %q: no upstream call should be attempted", body)
		}
	}
}

func TestChatSuccess(t *testing.T) {
	provider := aivatest.NewMockProvider()
	provider.EnqueueReply("We build modern web apps! 🚀")
	store := &aivatest.StaticStore{
		ServicesData: []content.Service{{Name: "Web Development", Description: "Modern web apps"}},
	}
	svc := server.New(store, provider)

	rec, resp := postChat(t, svc.Handler(), `{"messages":[{"role":"user","content":"what do you do?"}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !resp.Success {
		t.Error("expected success=true")
	}
	if resp.Content != "We build modern web apps! 🚀" {
		t.Errorf("unexpected content %q", resp.Content)
	}
	if resp.Timestamp == "" {
		t.Error("expected a timestamp")
	}

	prompts := provider.TrackedSystemPrompts()
	if len(prompts) != 1 {
		t.Fatalf("expected 1 send, got %d", len(prompts))
	}
	if !strings.Contains(prompts[0], "- **Web Development**: Modern web apps") {
		t.Error("system prompt should carry store content")
	}
	histories := provider.TrackedHistories()
	if len(histories[0]) != 1 || histories[0][0].Content != "what do you do?" {
		t.Errorf("unexpected forwarded history %+v", histories[0])
	}
}

func TestChatUpstreamUnavailable(t *testing.T) {
	provider := aivatest.NewMockProvider()
	provider.EnqueueError(aiva.NewUnavailableError("longcat", http.StatusServiceUnavailable, "raw upstream body"))
	svc := server.New(&aivatest.StaticStore{}, provider)

	rec, resp := postChat(t, svc.Handler(), `{"messages":[{"role":"user","content":"hi"}]}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected upstream status 503, got %d", rec.Code)
	}
	if resp.Success {
		t.Error("expected success=false")
	}
	if resp.Content == "" {
		t.Error("expected non-empty fallback content")
	}
	if strings.Contains(rec.Body.String(), "raw upstream body") {
		t.Error("raw upstream error text must never reach the client")
	}
}

func TestChatRateLimited(t *testing.T) {
	provider := aivatest.NewMockProvider()
	provider.EnqueueError(aiva.NewRateLimitedError("gemini", http.StatusTooManyRequests))
	svc := server.New(&aivatest.StaticStore{}, provider)

	rec, resp := postChat(t, svc.Handler(), `{"messages":[{"role":"user","content":"hi"}]}`)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", rec.Code)
	}
	if resp.Success || resp.Content == "" {
		t.Errorf("expected failure shape with fallback content, got %+v", resp)
	}
}

func TestChatUnexpectedError(t *testing.T) {
	provider := aivatest.NewMockProvider()
	provider.EnqueueError(errors.New("boom"))
	svc := server.New(&aivatest.StaticStore{}, provider)

	rec, resp := postChat(t, svc.Handler(), `{"messages":[{"role":"user","content":"hi"}]}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if resp.Error != "Internal server error" {
		t.Errorf("unexpected error text %q", resp.Error)
	}
	if resp.Content == "" {
		t.Error("expected non-empty fallback content")
	}
	if strings.Contains(rec.Body.String(), "boom") {
		t.Error("internal error detail must never reach the client")
	}
}

func TestChatAnswersWhenStoreDown(t *testing.T) {
	provider := aivatest.NewMockProvider()
	provider.EnqueueReply("still here")
	store := &aivatest.FailingStore{Err: errors.New("connection refused")}
	svc := server.New(store, provider)

	rec, resp := postChat(t, svc.Handler(), `{"messages":[{"role":"user","content":"hi"}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp.Content != "still here" {
		t.Errorf("unexpected content %q", resp.Content)
	}

	// the prompt is still complete, with every section falling back
	prompt := provider.TrackedSystemPrompts()[0]
	for _, placeholder := range []string{
		"No services data available yet.",
		"No projects data available yet.",
		"No tech stack data available yet.",
		"No FAQs data available yet.",
		"No testimonials data available yet.",
	} {
		if !strings.Contains(prompt, placeholder) {
			t.Errorf("prompt missing placeholder %q", placeholder)
		}
	}
}

func TestHealth(t *testing.T) {
	svc := server.New(&aivatest.StaticStore{}, aivatest.NewMockProvider())

	req := httptest.NewRequest(http.MethodGet, "/aiva/health", nil)
	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Success   bool   `json:"success"`
		Service   string `json:"service"`
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.Service != "Aiva AI Assistant" || resp.Status != "operational" {
		t.Errorf("unexpected health response %+v", resp)
	}
	if resp.Timestamp == "" {
		t.Error("expected a timestamp")
	}
}

func TestChatMethodNotAllowed(t *testing.T) {
	svc := server.New(&aivatest.StaticStore{}, aivatest.NewMockProvider())

	req := httptest.NewRequest(http.MethodGet, "/aiva/chat", nil)
	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}
