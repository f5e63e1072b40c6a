// Package plugin defines the contract between the host manager and a
// switch-family implementation, and a name registry so the family is
// selectable from configuration.
package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mulgadc/trunkd/trunkd/store"
)

// Default selector names, matching the psvm.plugin and psvm.driver config
// keys.
const (
	DefaultPlugin = "cisco.nexus.plugin"
	DefaultDriver = "cisco.nexus.driver"
)

// Params carries everything a plugin needs to reach and program one switch.
type Params struct {
	Host     string
	Username string
	Password string
	// Driver selects the transport implementation within the plugin family.
	Driver string
	// KeepVlans are never removed from a trunk during Sync, regardless of
	// control-plane state. Typically the native VLAN.
	KeepVlans []int
}

// Plugin is the three-operation facade the host manager drives. All three
// are idempotent against switch state.
type Plugin interface {
	// AddVlan ensures the VLAN exists on the switch and is allowed on the
	// port's trunk.
	AddVlan(switchPort string, vlanID int) error
	// DeleteVlan removes the VLAN from the port's trunk. The VLAN stays
	// defined on the switch; other ports may still carry it.
	DeleteVlan(switchPort string, vlanID int) error
	// Sync reconciles the port's trunk allowed list against the expected
	// networks, adding what is missing and removing the excess.
	Sync(switchPort string, networks []store.Network) error
}

// Constructor builds a plugin bound to one switch.
type Constructor func(Params) (Plugin, error)

var (
	mu       sync.RWMutex
	registry = make(map[string]Constructor)
)

// Register makes a plugin family available under a selector name. Called
// from package init; duplicate names panic.
func Register(name string, ctor Constructor) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("plugin: Register called twice for %q", name))
	}
	registry[name] = ctor
}

// New builds the named plugin for one switch.
func New(name string, p Params) (Plugin, error) {
	mu.RLock()
	ctor, ok := registry[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown switch plugin %q (registered: %v)", name, Names())
	}
	return ctor(p)
}

// Names lists the registered selector names.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
