package longcat_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	aiva "github.com/aivrasol/aiva"
	"github.com/aivrasol/aiva/longcat"
	"github.com/aivrasol/aiva/longcat/longcatapi"
)

func TestSendSuccess(t *testing.T) {
	var received longcatapi.ChatCompletionParams
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("expected bearer auth header, got %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decoding request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "Hello!"}},
			},
		})
	}))
	defer server.Close()

	model := longcat.New(longcat.Options{URL: server.URL, APIKey: "test-key", Model: "test-model"})

	reply, err := model.Send(context.Background(), "be helpful", []aiva.Message{
		{Role: aiva.RoleUser, Content: "hi"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if reply != "Hello!" {
		t.Errorf("expected reply 'Hello!', got %q", reply)
	}

	if received.Model != "test-model" {
		t.Errorf("expected model 'test-model', got %q", received.Model)
	}
	if received.Temperature != 0.8 {
		t.Errorf("expected temperature 0.8, got %v", received.Temperature)
	}
	if received.MaxTokens != 300 {
		t.Errorf("expected max_tokens 300, got %d", received.MaxTokens)
	}
	if len(received.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(received.Messages))
	}
	if received.Messages[0].Role != "system" || received.Messages[0].Content != "be helpful" {
		t.Errorf("expected leading system message, got %+v", received.Messages[0])
	}
}

func TestSendDefaultsEmptyRoleToUser(t *testing.T) {
	var received longcatapi.ChatCompletionParams
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "ok"}},
			},
		})
	}))
	defer server.Close()

	model := longcat.New(longcat.Options{URL: server.URL, APIKey: "test-key"})
	if _, err := model.Send(context.Background(), "system", []aiva.Message{{Content: "hi"}}); err != nil {
		t.Fatal(err)
	}
	if received.Messages[1].Role != "user" {
		t.Errorf("expected empty role to default to user, got %q", received.Messages[1].Role)
	}
}

func TestSendNoChoicesFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	model := longcat.New(longcat.Options{URL: server.URL, APIKey: "test-key"})

	reply, err := model.Send(context.Background(), "system", []aiva.Message{{Role: aiva.RoleUser, Content: "hi"}})
	if err != nil {
		t.Fatal(err)
	}
	if reply != longcat.NoReplyFallback {
		t.Errorf("expected fallback reply, got %q", reply)
	}
}

func TestSendUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	model := longcat.New(longcat.Options{URL: server.URL, APIKey: "test-key"})

	_, err := model.Send(context.Background(), "system", []aiva.Message{{Role: aiva.RoleUser, Content: "hi"}})
	var chatErr *aiva.ChatError
	if !errors.As(err, &chatErr) {
		t.Fatalf("expected *aiva.ChatError, got %v", err)
	}
	if chatErr.Kind != aiva.Unavailable {
		t.Errorf("expected kind %q, got %q", aiva.Unavailable, chatErr.Kind)
	}
	if chatErr.Status != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", chatErr.Status)
	}
}

func TestSendRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	model := longcat.New(longcat.Options{URL: server.URL, APIKey: "test-key"})

	_, err := model.Send(context.Background(), "system", []aiva.Message{{Role: aiva.RoleUser, Content: "hi"}})
	var chatErr *aiva.ChatError
	if !errors.As(err, &chatErr) {
		t.Fatalf("expected *aiva.ChatError, got %v", err)
	}
	if chatErr.Kind != aiva.RateLimited {
		t.Errorf("expected kind %q, got %q", aiva.RateLimited, chatErr.Kind)
	}
}
