package mock

import (
	"context"
)

// MockCompleter is a test double for ai.Completer.
// It allows custom behavior injection via function fields.
type MockCompleter struct {
	// CompleteFunc is called by Complete if set.
	// If nil, returns an empty JSON object.
	CompleteFunc func(ctx context.Context, system, user string) (string, error)

	callCount  int
	lastSystem string
	lastUser   string
}

// NewMockCompleter creates a mock completer with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockCompleter().
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{}
}

// Complete records the prompts and returns the configured response.
// Default behavior: returns "{}", a valid but empty JSON payload.
func (m *MockCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	m.callCount++
	m.lastSystem = system
	m.lastUser = user

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, system, user)
	}

	return "{}", nil
}

// CallCount returns the number of times Complete was called.
func (m *MockCompleter) CallCount() int {
	return m.callCount
}

// LastSystem returns the system prompt from the most recent call.
func (m *MockCompleter) LastSystem() string {
	return m.lastSystem
}

// LastUser returns the user prompt from the most recent call.
func (m *MockCompleter) LastUser() string {
	return m.lastUser
}

// Reset clears the call count, recorded prompts, and custom functions.
func (m *MockCompleter) Reset() {
	m.callCount = 0
	m.lastSystem = ""
	m.lastUser = ""
	m.CompleteFunc = nil
}
