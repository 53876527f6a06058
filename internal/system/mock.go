package system

import (
	"context"
	"sync"
)

// MockExecutor is a mock implementation of CommandExecutor for testing
type MockExecutor struct {
	mu sync.Mutex

	// Calls records every invocation
	Calls []MockExecCall

	// Err is returned by every call when set
	Err error
}

// MockExecCall represents a recorded execution
type MockExecCall struct {
	Method string
	Env    []string
	Name   string
	Args   []string
}

// NewMockExecutor creates a new mock executor
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{}
}

func (m *MockExecutor) record(method string, env []string, name string, args []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, MockExecCall{Method: method, Env: env, Name: name, Args: args})
}

func (m *MockExecutor) ExecuteInteractive(ctx context.Context, env []string, name string, args ...string) error {
	m.record("ExecuteInteractive", env, name, args)
	return m.Err
}

func (m *MockExecutor) ReplaceProcess(env []string, name string, args ...string) error {
	m.record("ReplaceProcess", env, name, args)
	return m.Err
}

// LastCall returns the most recent recorded call, or nil
func (m *MockExecutor) LastCall() *MockExecCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return nil
	}
	return &m.Calls[len(m.Calls)-1]
}
