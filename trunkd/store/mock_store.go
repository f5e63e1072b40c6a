package store

import "sync"

// MockStore is an in-memory Store for tests and development.
type MockStore struct {
	mu          sync.Mutex
	Bindings    map[string][]PortBinding
	Switches    map[int64]Switch
	Credentials map[int64]Credential
	Networks    map[string][]Network
}

// NewMockStore returns an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		Bindings:    make(map[string][]PortBinding),
		Switches:    make(map[int64]Switch),
		Credentials: make(map[int64]Credential),
		Networks:    make(map[string][]Network),
	}
}

func (m *MockStore) PortBindingsForHost(fqdn string) ([]PortBinding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bindings, ok := m.Bindings[fqdn]
	if !ok || len(bindings) == 0 {
		return nil, ErrNotFound
	}
	out := make([]PortBinding, len(bindings))
	copy(out, bindings)
	return out, nil
}

func (m *MockStore) SwitchByID(id int64) (*Switch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sw, ok := m.Switches[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &sw, nil
}

func (m *MockStore) CredentialByID(id int64) (*Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cred, ok := m.Credentials[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &cred, nil
}

func (m *MockStore) NetworksForHost(hostname string) ([]Network, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	networks := m.Networks[hostname]
	out := make([]Network, len(networks))
	copy(out, networks)
	return out, nil
}
