// Package manager fans the switch-programming operations out across the
// port bindings of one compute host. One manager instance corresponds to
// one host-side event (VLAN plugged, VLAN unplugged, periodic sync).
package manager

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strings"

	"github.com/mulgadc/trunkd/trunkd/plugin"
	"github.com/mulgadc/trunkd/trunkd/store"
)

// Config selects the switch plugin family and its policy knobs.
type Config struct {
	// Plugin is the psvm.plugin selector name.
	Plugin string
	// Driver is the psvm.driver selector name, passed through to the plugin.
	Driver string
	// KeepVlans are never removed from a trunk during sync.
	KeepVlans []int
}

// Error wraps a plugin failure with the host and VLAN context the external
// caller reports on.
type Error struct {
	Host  string
	VLAN  int
	Cause error
}

func (e *Error) Error() string {
	if e.VLAN != 0 {
		return fmt.Sprintf("switch vlan manager failed for host %s vlan %d: %v", e.Host, e.VLAN, e.Cause)
	}
	return fmt.Sprintf("switch vlan manager failed for host %s: %v", e.Host, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// Manager drives the configured switch plugin across this host's bindings.
type Manager struct {
	store    store.Store
	cfg      Config
	hostname string
	fqdn     string
	bindings []store.PortBinding
}

// New builds a manager for the local host. When the store has no bindings
// for the host it returns (nil, nil): the host is simply not cabled to any
// managed switch and every operation is a no-op for the caller to skip.
// Other store failures propagate.
func New(st store.Store, cfg Config) (*Manager, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("failed to read hostname: %w", err)
	}
	return NewForHost(st, cfg, hostname, fqdn(hostname))
}

// NewForHost is New with explicit host identity, for tests and tooling.
func NewForHost(st store.Store, cfg Config, hostname, fqdn string) (*Manager, error) {
	bindings, err := st.PortBindingsForHost(fqdn)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.Debug("No switch port bindings for host", "host", fqdn)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load port bindings for %s: %w", fqdn, err)
	}

	slog.Debug("Switch vlan manager ready", "host", fqdn, "bindings", len(bindings))
	return &Manager{
		store:    st,
		cfg:      cfg,
		hostname: hostname,
		fqdn:     fqdn,
		bindings: bindings,
	}, nil
}

// fqdn resolves the host's fully qualified name, falling back to the bare
// hostname when reverse lookup is unavailable.
func fqdn(hostname string) string {
	addrs, err := net.LookupHost(hostname)
	if err != nil || len(addrs) == 0 {
		return hostname
	}
	names, err := net.LookupAddr(addrs[0])
	if err != nil || len(names) == 0 {
		return hostname
	}
	return strings.TrimSuffix(names[0], ".")
}

// pluginFor resolves the switch and credential behind a binding and builds
// the configured plugin for it.
func (m *Manager) pluginFor(binding store.PortBinding) (plugin.Plugin, error) {
	sw, err := m.store.SwitchByID(binding.SwitchID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve switch %d: %w", binding.SwitchID, err)
	}
	cred, err := m.store.CredentialByID(sw.CredentialID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve credential %d for switch %s: %w", sw.CredentialID, sw.IP, err)
	}
	return plugin.New(m.cfg.Plugin, plugin.Params{
		Host:      sw.IP,
		Username:  cred.UserName,
		Password:  cred.Password,
		Driver:    m.cfg.Driver,
		KeepVlans: m.cfg.KeepVlans,
	})
}

// AddVlanToSwitch trunks the VLAN on every switch port bound to this host.
func (m *Manager) AddVlanToSwitch(vlanID int) error {
	for _, binding := range m.bindings {
		p, err := m.pluginFor(binding)
		if err != nil {
			return &Error{Host: m.hostname, VLAN: vlanID, Cause: err}
		}
		if err := p.AddVlan(binding.SwitchPort, vlanID); err != nil {
			slog.Error("Failed to provision VLAN for host",
				"vlan", vlanID, "host", m.hostname, "port", binding.SwitchPort, "err", err)
			return &Error{Host: m.hostname, VLAN: vlanID, Cause: err}
		}
	}
	return nil
}

// DeleteVlanFromSwitch removes the VLAN from every trunk bound to this host.
func (m *Manager) DeleteVlanFromSwitch(vlanID int) error {
	for _, binding := range m.bindings {
		p, err := m.pluginFor(binding)
		if err != nil {
			return &Error{Host: m.hostname, VLAN: vlanID, Cause: err}
		}
		if err := p.DeleteVlan(binding.SwitchPort, vlanID); err != nil {
			slog.Error("Failed to deprovision VLAN for host",
				"vlan", vlanID, "host", m.hostname, "port", binding.SwitchPort, "err", err)
			return &Error{Host: m.hostname, VLAN: vlanID, Cause: err}
		}
	}
	return nil
}

// SyncPhysicalNetwork reconciles every bound switch port against the
// networks the control plane expects on this host. The network list is read
// once and shared across bindings.
func (m *Manager) SyncPhysicalNetwork() error {
	networks, err := m.store.NetworksForHost(m.hostname)
	if err != nil {
		return &Error{Host: m.hostname, Cause: fmt.Errorf("failed to load networks: %w", err)}
	}

	for _, binding := range m.bindings {
		p, err := m.pluginFor(binding)
		if err != nil {
			return &Error{Host: m.hostname, Cause: err}
		}
		if err := p.Sync(binding.SwitchPort, networks); err != nil {
			slog.Error("Failed to sync networks for host",
				"host", m.hostname, "port", binding.SwitchPort, "err", err)
			return &Error{Host: m.hostname, Cause: err}
		}
	}
	return nil
}

// Bindings exposes the loaded bindings for status reporting.
func (m *Manager) Bindings() []store.PortBinding {
	return m.bindings
}
