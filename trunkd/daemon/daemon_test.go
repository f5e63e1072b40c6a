package daemon

import (
	"context"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mulgadc/trunkd/trunkd/config"
	"github.com/mulgadc/trunkd/trunkd/store"
)

func testDaemonConfig() *config.Config {
	return &config.Config{
		NATS: config.NATSConfig{Host: "127.0.0.1:4222"},
		Psvm: config.PsvmConfig{
			Enabled:     true,
			Plugin:      "cisco.nexus.plugin",
			Driver:      "cisco.nexus.driver",
			IgnoreVlans: []int{1},
		},
	}
}

// newTestDaemon builds a daemon wired to a mock store, without a bus
// connection. Handlers are exercised with reply-less messages.
func newTestDaemon(t *testing.T) *Daemon {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return &Daemon{
		cfg:      testDaemonConfig(),
		hostname: "compute1",
		store:    store.NewMockStore(),
		subs:     make(map[string]*nats.Subscription),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func TestNewDaemon_RequiresEnabled(t *testing.T) {
	cfg := testDaemonConfig()
	cfg.Psvm.Enabled = false

	_, err := NewDaemon(cfg)
	assert.Error(t, err)
}

func TestNewDaemon_Enabled(t *testing.T) {
	d, err := NewDaemon(testDaemonConfig())
	require.NoError(t, err)
	assert.NotNil(t, d)
	d.Stop()
}

func TestManagerConfigMapping(t *testing.T) {
	d := newTestDaemon(t)
	mc := d.managerConfig()

	assert.Equal(t, "cisco.nexus.plugin", mc.Plugin)
	assert.Equal(t, "cisco.nexus.driver", mc.Driver)
	assert.Equal(t, []int{1}, mc.KeepVlans)
}

// A host with no bindings is a clean no-op for every event.
func TestHandleVlanAdd_NoBindings(t *testing.T) {
	d := newTestDaemon(t)

	msg := &nats.Msg{Data: []byte(`{"request_id":"r1","vlan":777}`)}
	assert.NotPanics(t, func() { d.handleVlanAdd(msg) })
}

func TestHandleVlanAdd_InvalidPayload(t *testing.T) {
	d := newTestDaemon(t)

	msg := &nats.Msg{Data: []byte(`{not json`)}
	assert.NotPanics(t, func() { d.handleVlanAdd(msg) })
}

func TestHandleVlanDelete_OutOfRange(t *testing.T) {
	d := newTestDaemon(t)

	msg := &nats.Msg{Data: []byte(`{"vlan":5000}`)}
	assert.NotPanics(t, func() { d.handleVlanDelete(msg) })
}

func TestHandleSync_NoBindings(t *testing.T) {
	d := newTestDaemon(t)

	msg := &nats.Msg{Data: []byte(`{}`)}
	assert.NotPanics(t, func() { d.handleSync(msg) })
}

func TestEventResponse_RespondWithoutReplySubject(t *testing.T) {
	resp := EventResponse{Host: "compute1", Success: true}
	assert.NotPanics(t, func() { resp.Respond(&nats.Msg{}) })
}

func TestSyncPhysicalNetwork_NoBindings(t *testing.T) {
	d := newTestDaemon(t)
	assert.NoError(t, d.syncPhysicalNetwork())
}
