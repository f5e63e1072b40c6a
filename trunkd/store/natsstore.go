package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// NATS subjects the control-plane store answers on.
const (
	SubjectPortBindings = "psvm.store.bindings"
	SubjectSwitch       = "psvm.store.switch"
	SubjectCredential   = "psvm.store.credential"
	SubjectNetworks     = "psvm.store.networks"
)

// errNotFound is the error code the store service replies with for empty
// lookups.
const errNotFound = "not_found"

// NATSStore implements Store over the platform bus: each lookup is one
// request-reply round trip to the control-plane store service.
type NATSStore struct {
	conn    *nats.Conn
	timeout time.Duration
}

// NewNATSStore wraps an established NATS connection as a Store.
func NewNATSStore(conn *nats.Conn) *NATSStore {
	return &NATSStore{conn: conn, timeout: 10 * time.Second}
}

type storeRequest struct {
	RequestID string `json:"request_id"`
	Host      string `json:"host,omitempty"`
	ID        int64  `json:"id,omitempty"`
}

type bindingsResponse struct {
	Bindings []PortBinding `json:"bindings"`
	Error    string        `json:"error,omitempty"`
}

type switchResponse struct {
	Switch *Switch `json:"switch"`
	Error  string  `json:"error,omitempty"`
}

type credentialResponse struct {
	Credential *Credential `json:"credential"`
	Error      string      `json:"error,omitempty"`
}

type networksResponse struct {
	Networks []Network `json:"networks"`
	Error    string    `json:"error,omitempty"`
}

// request performs one JSON request-reply exchange on the bus.
func request[Out any](s *NATSStore, subject string, req storeRequest) (*Out, error) {
	req.RequestID = uuid.NewString()

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal store request: %w", err)
	}

	msg, err := s.conn.Request(subject, payload, s.timeout)
	if err != nil {
		return nil, fmt.Errorf("store request to %s: %w", subject, err)
	}

	var out Out
	if err := json.Unmarshal(msg.Data, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal store response from %s: %w", subject, err)
	}
	return &out, nil
}

// respErr maps a response error code onto the Store error surface.
func respErr(subject, code string) error {
	if code == errNotFound {
		return ErrNotFound
	}
	return fmt.Errorf("store error from %s: %s", subject, code)
}

func (s *NATSStore) PortBindingsForHost(fqdn string) ([]PortBinding, error) {
	resp, err := request[bindingsResponse](s, SubjectPortBindings, storeRequest{Host: fqdn})
	if err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, respErr(SubjectPortBindings, resp.Error)
	}
	if len(resp.Bindings) == 0 {
		return nil, ErrNotFound
	}
	return resp.Bindings, nil
}

func (s *NATSStore) SwitchByID(id int64) (*Switch, error) {
	resp, err := request[switchResponse](s, SubjectSwitch, storeRequest{ID: id})
	if err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, respErr(SubjectSwitch, resp.Error)
	}
	if resp.Switch == nil {
		return nil, ErrNotFound
	}
	return resp.Switch, nil
}

func (s *NATSStore) CredentialByID(id int64) (*Credential, error) {
	resp, err := request[credentialResponse](s, SubjectCredential, storeRequest{ID: id})
	if err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, respErr(SubjectCredential, resp.Error)
	}
	if resp.Credential == nil {
		return nil, ErrNotFound
	}
	return resp.Credential, nil
}

func (s *NATSStore) NetworksForHost(hostname string) ([]Network, error) {
	resp, err := request[networksResponse](s, SubjectNetworks, storeRequest{Host: hostname})
	if err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, respErr(SubjectNetworks, resp.Error)
	}
	return resp.Networks, nil
}
