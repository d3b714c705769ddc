// Package aivatest provides test doubles for the assistant: a mock chat
// provider that replays queued results and content stores with fixed or
// failing behavior.
package aivatest

import (
	"context"
	"errors"

	aiva "github.com/aivrasol/aiva"
	"github.com/aivrasol/aiva/content"
)

// MockSendResult is a result for a mocked `Send` call.
// It can either be a reply or an error.
type MockSendResult struct {
	Reply string
	Error error
}

// MockProvider is a mock chat provider for testing purposes that tracks
// inputs and returns predefined outputs.
type MockProvider struct {
	mockedResults []MockSendResult

	trackedSystemPrompts []string
	trackedHistories     [][]aiva.Message

	provider string
}

// NewMockProvider constructs a mock provider instance.
func NewMockProvider() *MockProvider {
	return &MockProvider{provider: "mock"}
}

// Provider returns the provider name of the mock.
func (m *MockProvider) Provider() string {
	return m.provider
}

// SetProvider overrides the provider name returned by the mock.
func (m *MockProvider) SetProvider(provider string) {
	m.provider = provider
}

// EnqueueReply queues a successful send result.
func (m *MockProvider) EnqueueReply(reply string) {
	m.mockedResults = append(m.mockedResults, MockSendResult{Reply: reply})
}

// EnqueueError queues a failing send result.
func (m *MockProvider) EnqueueError(err error) {
	m.mockedResults = append(m.mockedResults, MockSendResult{Error: err})
}

// Send returns the next mocked result, tracking the provided input.
func (m *MockProvider) Send(_ context.Context, systemPrompt string, history []aiva.Message) (string, error) {
	if len(m.mockedResults) == 0 {
		return "", errors.New("no mocked send results available")
	}

	result := m.mockedResults[0]
	m.mockedResults = m.mockedResults[1:]
	m.trackedSystemPrompts = append(m.trackedSystemPrompts, systemPrompt)
	m.trackedHistories = append(m.trackedHistories, history)

	if result.Error != nil {
		return "", result.Error
	}
	return result.Reply, nil
}

// SendCount reports how many sends the mock has served.
func (m *MockProvider) SendCount() int {
	return len(m.trackedHistories)
}

// TrackedSystemPrompts returns the system prompts passed to Send, in order.
func (m *MockProvider) TrackedSystemPrompts() []string {
	return m.trackedSystemPrompts
}

// TrackedHistories returns the conversation histories passed to Send, in order.
func (m *MockProvider) TrackedHistories() [][]aiva.Message {
	return m.trackedHistories
}

// StaticStore is a content.Store serving fixed collections.
type StaticStore struct {
	ServicesData     []content.Service
	ProjectsData     []content.Project
	TechStacksData   []content.TechStack
	FaqsData         []content.Faq
	TestimonialsData []content.Testimonial
}

func (s *StaticStore) Services(context.Context) ([]content.Service, error) {
	return s.ServicesData, nil
}

func (s *StaticStore) Projects(context.Context) ([]content.Project, error) {
	return s.ProjectsData, nil
}

func (s *StaticStore) TechStacks(context.Context) ([]content.TechStack, error) {
	return s.TechStacksData, nil
}

func (s *StaticStore) Faqs(context.Context) ([]content.Faq, error) {
	return s.FaqsData, nil
}

func (s *StaticStore) Testimonials(context.Context) ([]content.Testimonial, error) {
	return s.TestimonialsData, nil
}

// FailingStore is a content.Store whose every fetch fails.
type FailingStore struct {
	Err error
}

func (s *FailingStore) Services(context.Context) ([]content.Service, error) {
	return nil, s.Err
}

func (s *FailingStore) Projects(context.Context) ([]content.Project, error) {
	return nil, s.Err
}

func (s *FailingStore) TechStacks(context.Context) ([]content.TechStack, error) {
	return nil, s.Err
}

func (s *FailingStore) Faqs(context.Context) ([]content.Faq, error) {
	return nil, s.Err
}

func (s *FailingStore) Testimonials(context.Context) ([]content.Testimonial, error) {
	return nil, s.Err
}
