package nexus

import "sync"

// Call records one NETCONF exchange seen by the mock session.
type Call struct {
	Op      string // "edit-config", "get", "close-session"
	Payload string
}

// MockSession implements Session and records every call, for driver and
// plugin tests. EditErrs are consumed one per edit-config in order; a nil
// entry means success. GetReply is returned for every get.
type MockSession struct {
	mu       sync.Mutex
	calls    []Call
	EditErrs []error
	GetReply string
	GetErr   error
}

// NewMockSession creates an empty MockSession.
func NewMockSession() *MockSession {
	return &MockSession{}
}

func (m *MockSession) EditConfig(config string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Op: "edit-config", Payload: config})

	if len(m.EditErrs) == 0 {
		return nil
	}
	err := m.EditErrs[0]
	m.EditErrs = m.EditErrs[1:]
	return err
}

func (m *MockSession) Get(filter string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Op: "get", Payload: filter})

	if m.GetErr != nil {
		return "", m.GetErr
	}
	return m.GetReply, nil
}

func (m *MockSession) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Op: "close-session"})
	return nil
}

// Calls returns a copy of the recorded exchanges.
func (m *MockSession) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// Ops returns just the operation names, in order.
func (m *MockSession) Ops() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ops := make([]string, len(m.calls))
	for i, c := range m.calls {
		ops[i] = c.Op
	}
	return ops
}
