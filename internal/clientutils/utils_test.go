package clientutils

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type echoResponse struct {
	Greeting string `json:"greeting"`
}

func TestDoJSONSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Test"); got != "yes" {
			t.Errorf("expected custom header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"greeting":"hello"}`))
	}))
	defer server.Close()

	result, err := DoJSON[echoResponse](context.Background(), server.Client(), JSONRequestConfig{
		URL:     server.URL,
		Headers: map[string]string{"X-Test": "yes"},
		Body:    map[string]string{"q": "hi"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Greeting != "hello" {
		t.Errorf("expected greeting 'hello', got %q", result.Greeting)
	}
}

func TestDoJSONStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := DoJSON[echoResponse](context.Background(), server.Client(), JSONRequestConfig{URL: server.URL})

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %v", err)
	}
	if httpErr.Status != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", httpErr.Status)
	}
	if httpErr.Body == "" {
		t.Error("expected body to be captured")
	}
}

func TestDoJSONDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	_, err := DoJSON[echoResponse](context.Background(), server.Client(), JSONRequestConfig{URL: server.URL})
	if err == nil {
		t.Fatal("expected decode error")
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		t.Error("decode failure must not be reported as an HTTP status error")
	}
}
