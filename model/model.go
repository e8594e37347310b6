package model

import (
	"context"
	"fmt"
	"sync"
)

// Message is one turn of conversational input.
type Message struct {
	Role string `json:"role"` // "user" or "assistant"
	Text string `json:"text"`
}

// Request is the normalized model input.
type Request struct {
	System   string    `json:"system,omitempty"`
	Messages []Message `json:"messages"`
}

// Usage captures token usage statistics for a completion.
type Usage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

// Response is a completed (non-streaming) model turn.
type Response struct {
	Text  string `json:"text"`
	Usage Usage  `json:"usage"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", ...
}

// Model is the minimal interface the agent constructor requires.
type Model interface {
	Complete(ctx context.Context, req Request) (Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
// It replies with a canned response keyed by the last message text and
// records every request it receives.
type MockModel struct {
	mu        sync.Mutex
	info      Info
	responses map[string]string
	requests  []Request
}

// NewMockModel constructs a MockModel.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (m *MockModel) AddResponse(prompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prompt] = response
}

// Complete implements Model.
func (m *MockModel) Complete(_ context.Context, req Request) (Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	if len(req.Messages) == 0 {
		return Response{}, fmt.Errorf("no messages provided")
	}
	last := req.Messages[len(req.Messages)-1].Text
	text, ok := m.responses[last]
	if !ok {
		text = "mock response"
	}
	return Response{Text: text}, nil
}

// Requests returns a copy of all requests seen so far.
func (m *MockModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Info returns metadata describing the mock.
func (m *MockModel) Info() Info { return m.info }
