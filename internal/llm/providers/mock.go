package providers

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/erandawijewantha/personalized-health-coach/internal/llm"
	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

// MockProvider is an in-memory llm.Provider for tests and offline runs.
// Responses are returned in FIFO order; when the queue is empty the
// default response is used. Safe for concurrent use.
type MockProvider struct {
	mu        sync.Mutex
	responses []string
	defaults  string
	err       error
	errCount  int
	requests  []llm.CompletionRequest
}

// NewMockProvider creates a mock provider with a generic default response.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		defaults: "RECOMMENDATION: Stay consistent with your current routine.\nREASONING: Based on your recent activity.\nCATEGORY: general",
	}
}

// Name returns the provider name.
func (m *MockProvider) Name() string {
	return "mock"
}

// QueueResponse appends a canned response to the FIFO queue.
func (m *MockProvider) QueueResponse(content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, content)
}

// SetDefaultResponse sets the response used when the queue is empty.
func (m *MockProvider) SetDefaultResponse(content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaults = content
}

// SetError makes the next n completions fail with err. n <= 0 means
// every completion fails until the error is cleared.
func (m *MockProvider) SetError(err error, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	m.errCount = n
}

// Requests returns a copy of all completion requests seen so far.
func (m *MockProvider) Requests() []llm.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]llm.CompletionRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// CallCount returns the number of completions attempted.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Complete returns the next queued response or the configured error.
func (m *MockProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	if m.err != nil {
		err := m.err
		if m.errCount > 0 {
			m.errCount--
			if m.errCount == 0 {
				m.err = nil
			}
		}
		return nil, err
	}

	content := m.defaults
	if len(m.responses) > 0 {
		content = m.responses[0]
		m.responses = m.responses[1:]
	}

	return &llm.CompletionResponse{
		ID:           uuid.New().String(),
		Model:        "mock-model",
		Message:      llm.NewAssistantMessage(content),
		FinishReason: llm.FinishReasonStop,
	}, nil
}

// Health always reports healthy.
func (m *MockProvider) Health(ctx context.Context) types.HealthStatus {
	return types.NewHealthStatus(types.HealthStateHealthy, "")
}
