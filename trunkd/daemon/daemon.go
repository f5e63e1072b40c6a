// Package daemon runs the host-side switch trunking service: it listens on
// the platform bus for VLAN lifecycle events and sync requests for this
// host and drives the switch vlan manager in response.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/mulgadc/trunkd/trunkd/config"
	"github.com/mulgadc/trunkd/trunkd/manager"
	"github.com/mulgadc/trunkd/trunkd/store"
	"github.com/mulgadc/trunkd/trunkd/utils"
)

// Bus subjects. The vlan add/delete and host-sync subjects are suffixed
// with the hostname: switch programming is always on behalf of one host's
// cabling. SubjectSyncAll lets the control plane sweep the whole fleet.
const (
	SubjectVlanAdd    = "psvm.vlan.add"
	SubjectVlanDelete = "psvm.vlan.delete"
	SubjectSync       = "psvm.sync"
	SubjectSyncAll    = "psvm.sync.all"
)

// Daemon wires the bus subscriptions to the switch vlan manager.
type Daemon struct {
	cfg      *config.Config
	hostname string

	natsConn *nats.Conn
	store    store.Store
	subs     map[string]*nats.Subscription

	ctx    context.Context
	cancel context.CancelFunc
}

// NewDaemon builds a daemon from loaded configuration.
func NewDaemon(cfg *config.Config) (*Daemon, error) {
	if !cfg.Psvm.Enabled {
		return nil, fmt.Errorf("physical switch vlan management is disabled (psvm.enabled=false)")
	}

	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("failed to read hostname: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Daemon{
		cfg:      cfg,
		hostname: hostname,
		subs:     make(map[string]*nats.Subscription),
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// managerConfig maps the loaded config onto the manager's knobs.
func (d *Daemon) managerConfig() manager.Config {
	return manager.Config{
		Plugin:    d.cfg.Psvm.Plugin,
		Driver:    d.cfg.Psvm.Driver,
		KeepVlans: d.cfg.Psvm.IgnoreVlans,
	}
}

// Start connects to the bus and subscribes to this host's switch events.
// It blocks until ctx is cancelled via Stop.
func (d *Daemon) Start() error {
	nc, err := utils.ConnectNATS(d.cfg.NATS.Host, d.cfg.NATS.ACL.Token)
	if err != nil {
		slog.Error("Failed to connect to NATS", "err", err)
		return err
	}
	d.natsConn = nc
	d.store = store.NewNATSStore(nc)

	if err := d.subscribe(); err != nil {
		nc.Close()
		return err
	}

	d.startHeartbeat()
	d.startSyncTicker()

	slog.Info("trunkd daemon started",
		"host", d.hostname,
		"plugin", d.cfg.Psvm.Plugin,
		"driver", d.cfg.Psvm.Driver,
		"keep_vlans", d.cfg.Psvm.IgnoreVlans,
	)

	<-d.ctx.Done()

	d.drain()
	return nil
}

// Stop cancels the daemon's run loop and background goroutines.
func (d *Daemon) Stop() {
	d.cancel()
}

func (d *Daemon) subscribe() error {
	hostSubject := func(prefix string) string {
		return fmt.Sprintf("%s.%s", prefix, d.hostname)
	}

	subscriptions := map[string]nats.MsgHandler{
		hostSubject(SubjectVlanAdd):    d.handleVlanAdd,
		hostSubject(SubjectVlanDelete): d.handleVlanDelete,
		hostSubject(SubjectSync):       d.handleSync,
		SubjectSyncAll:                 d.handleSync,
	}

	for subject, handler := range subscriptions {
		sub, err := d.natsConn.Subscribe(subject, handler)
		if err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
		}
		d.subs[subject] = sub
		slog.Debug("Subscribed", "subject", subject)
	}
	return nil
}

func (d *Daemon) drain() {
	for subject, sub := range d.subs {
		if err := sub.Unsubscribe(); err != nil {
			slog.Debug("Failed to unsubscribe", "subject", subject, "err", err)
		}
	}
	if d.natsConn != nil {
		d.natsConn.Close()
	}
	slog.Info("trunkd daemon stopped", "host", d.hostname)
}

// startSyncTicker runs the periodic physical-network sync when configured.
// The engine does not poll switches on its own; this ticker is the
// externally timed sync event source.
func (d *Daemon) startSyncTicker() {
	if d.cfg.Psvm.SyncInterval <= 0 {
		slog.Debug("Periodic sync disabled")
		return
	}
	interval := time.Duration(d.cfg.Psvm.SyncInterval) * time.Second

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-d.ctx.Done():
				return
			case <-ticker.C:
				if err := d.syncPhysicalNetwork(); err != nil {
					slog.Error("Periodic sync failed", "err", err)
				}
			}
		}
	}()

	slog.Info("Periodic sync started", "interval", interval)
}

// syncPhysicalNetwork runs one full sync pass for this host.
func (d *Daemon) syncPhysicalNetwork() error {
	mgr, err := manager.New(d.store, d.managerConfig())
	if err != nil {
		return err
	}
	if mgr == nil {
		slog.Debug("Host has no switch port bindings, skipping sync", "host", d.hostname)
		return nil
	}
	return mgr.SyncPhysicalNetwork()
}
