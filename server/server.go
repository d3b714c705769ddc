// Package server exposes the assistant over HTTP. Every request is computed
// from a fresh content snapshot; failures at any layer are normalized into a
// renderable fallback message so the chat widget always has something to
// show.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	aiva "github.com/aivrasol/aiva"
	"github.com/aivrasol/aiva/content"
	"github.com/aivrasol/aiva/prompt"
)

const serviceName = "Aiva AI Assistant"

// User-facing fallback copy. The upstream's own error text never reaches
// the client; one of these strings is rendered instead.
const (
	connectFallback = "I apologize, but I'm having trouble connecting right now. Please try again in a moment, or feel free to explore our services and portfolio directly on the website."

	busyFallback = "I'm helping a lot of visitors right now! Please give me a moment and ask again."

	technicalFallback = "I apologize for the inconvenience. Our AI assistant is experiencing technical difficulties. Please try again later or contact our team directly through the contact form."
)

// Service is the assistant gateway.
type Service struct {
	store    content.Store
	provider aiva.ChatProvider
}

func New(store content.Store, provider aiva.ChatProvider) *Service {
	return &Service{store: store, provider: provider}
}

// Handler returns the gateway's HTTP handler.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/aiva/chat", s.handleChat)
	mux.HandleFunc("/aiva/health", s.handleHealth)
	return corsMiddleware(loggingMiddleware(mux))
}

// Run serves the gateway until the context is canceled, then shuts down
// gracefully.
func (s *Service) Run(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	log.Printf("[INFO] Aiva gateway listening on %s (provider: %s)", addr, s.provider.Provider())

	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

type chatRequest struct {
	Messages []aiva.Message `json:"messages"`
}

type chatResponse struct {
	Success   bool   `json:"success"`
	Content   string `json:"content,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

type healthResponse struct {
	Success   bool   `json:"success"`
	Service   string `json:"service"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func (s *Service) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	requestID := uuid.NewString()

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) == 0 {
		writeJSON(w, http.StatusBadRequest, chatResponse{
			Success: false,
			Error:   "Invalid request: messages array is required",
		})
		return
	}

	snapshot := content.LoadSnapshot(r.Context(), s.store)
	systemPrompt := prompt.Build(snapshot)

	reply, err := s.provider.Send(r.Context(), systemPrompt, req.Messages)
	if err != nil {
		s.writeFailure(w, requestID, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Success:   true,
		Content:   reply,
		Timestamp: timestamp(),
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Success:   true,
		Service:   serviceName,
		Status:    "operational",
		Timestamp: timestamp(),
	})
}

// writeFailure converts a provider error into the matching HTTP status and
// fallback copy. Rate limits and outages render similar text but are logged
// under distinct kinds for telemetry.
func (s *Service) writeFailure(w http.ResponseWriter, requestID string, err error) {
	var chatErr *aiva.ChatError
	if errors.As(err, &chatErr) {
		switch chatErr.Kind {
		case aiva.RateLimited:
			log.Printf("[WARN] request %s: upstream rate limited: %v", requestID, chatErr)
			writeJSON(w, statusOr(chatErr.Status, http.StatusTooManyRequests), chatResponse{
				Success: false,
				Error:   "AI service temporarily unavailable. Please try again.",
				Content: busyFallback,
			})
			return
		case aiva.Unavailable:
			log.Printf("[ERROR] request %s: upstream unavailable: %v", requestID, chatErr)
			writeJSON(w, statusOr(chatErr.Status, http.StatusServiceUnavailable), chatResponse{
				Success: false,
				Error:   "AI service temporarily unavailable. Please try again.",
				Content: connectFallback,
			})
			return
		}
	}

	log.Printf("[ERROR] request %s: assistant error: %v", requestID, err)
	writeJSON(w, http.StatusInternalServerError, chatResponse{
		Success: false,
		Error:   "Internal server error",
		Content: technicalFallback,
	})
}

func statusOr(status, fallback int) int {
	if status >= 400 {
		return status
	}
	return fallback
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] writing response: %v", err)
	}
}
