package store

import (
	"fmt"
	"sort"
	"sync"
)

// MockStore is an in-memory implementation of Store for testing. It does
// not implement LocalFSStore, which makes it useful for exercising the
// capability checks around profile operations.
type MockStore struct {
	mu sync.RWMutex

	// Objects tracks the mock's valid paths and their metadata
	Objects map[StorePath]*ObjectInfo

	// Errors allows injecting errors for specific operations
	Errors map[string]error

	// CallLog records all method calls for verification
	CallLog []MockCall
}

// MockCall represents a recorded method call
type MockCall struct {
	Method string
	Args   []interface{}
}

var _ Store = (*MockStore)(nil)

// NewMockStore creates a new mock store
func NewMockStore() *MockStore {
	return &MockStore{
		Objects: make(map[StorePath]*ObjectInfo),
		Errors:  make(map[string]error),
		CallLog: make([]MockCall, 0),
	}
}

func (m *MockStore) record(method string, args ...interface{}) {
	m.CallLog = append(m.CallLog, MockCall{Method: method, Args: args})
}

// SetError sets an error to be returned for a specific operation
func (m *MockStore) SetError(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[operation] = err
}

// AddObject adds a valid path with the given references to the mock
func (m *MockStore) AddObject(p StorePath, references ...StorePath) *ObjectInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	info := &ObjectInfo{Path: p, References: references}
	m.Objects[p] = info
	return info
}

// GetCallsFor returns all calls for a specific method
func (m *MockStore) GetCallsFor(method string) []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var calls []MockCall
	for _, c := range m.CallLog {
		if c.Method == method {
			calls = append(calls, c)
		}
	}
	return calls
}

func (m *MockStore) QueryAllValidPaths() ([]StorePath, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("QueryAllValidPaths")

	if err := m.Errors["QueryAllValidPaths"]; err != nil {
		return nil, err
	}

	paths := make([]StorePath, 0, len(m.Objects))
	for p := range m.Objects {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })
	return paths, nil
}

func (m *MockStore) IsValidPath(p StorePath) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("IsValidPath", p)

	if err := m.Errors["IsValidPath"]; err != nil {
		return false, err
	}

	_, ok := m.Objects[p]
	return ok, nil
}

func (m *MockStore) QueryByName(name string) ([]StorePath, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("QueryByName", name)

	if err := m.Errors["QueryByName"]; err != nil {
		return nil, err
	}

	var matches []StorePath
	for p := range m.Objects {
		if p.Name() == name {
			matches = append(matches, p)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i] < matches[j] })
	return matches, nil
}

func (m *MockStore) PathInfo(p StorePath) (*ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("PathInfo", p)

	if err := m.Errors["PathInfo"]; err != nil {
		return nil, err
	}

	info, ok := m.Objects[p]
	if !ok {
		return nil, fmt.Errorf("no such store path %s", p)
	}
	return info, nil
}

func (m *MockStore) References(p StorePath) ([]StorePath, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("References", p)

	if err := m.Errors["References"]; err != nil {
		return nil, err
	}

	info, ok := m.Objects[p]
	if !ok {
		return nil, fmt.Errorf("no such store path %s", p)
	}
	return info.References, nil
}

func (m *MockStore) ComputeClosure(roots []StorePath) ([]StorePath, error) {
	m.mu.Lock()
	m.record("ComputeClosure", roots)
	err := m.Errors["ComputeClosure"]
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}

	return closure(roots, func(p StorePath) ([]StorePath, error) {
		m.mu.RLock()
		defer m.mu.RUnlock()
		info, ok := m.Objects[p]
		if !ok {
			return nil, fmt.Errorf("no such store path %s", p)
		}
		return info.References, nil
	})
}
