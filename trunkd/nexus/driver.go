package nexus

import (
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/mulgadc/trunkd/trunkd/vlan"
)

// Params configures one driver session to one switch.
type Params struct {
	Host     string
	Username string
	Password string
}

// swallowableVlanStateErrs are vendor error fragments that may legitimately
// appear when activating or no-shutting a VLAN (extended-range VLANs
// 1006-4094 reject state changes; duplicate names are harmless). The switch
// provides no machine-readable codes, so matching is by substring against
// the stringified error.
var swallowableVlanStateErrs = []string{
	"Can't modify state for extended",
	"Command is only allowed on VLAN",
	"VLAN with the same name exists",
}

// sessionExceededErr is the one transport failure worth retrying: the switch
// caps concurrent NETCONF sessions and sheds new ones with this message.
const sessionExceededErr = "xml session exceeded max allowed"

const maxConnectRetries = 7

// sleep is swapped out by the connect-retry tests.
var sleep = time.Sleep

// Driver owns a single NETCONF-over-SSHv2 session to one Nexus switch. The
// operational methods are only valid between a successful Open and Close;
// callers must guarantee Close on every exit path.
type Driver struct {
	params Params
	sess   Session
}

// Open connects to the switch and returns a live driver. Only the
// session-exceeded transient is retried, with a jittered backoff, at most
// maxConnectRetries times; every other failure maps to ConnectError
// immediately.
func Open(p Params) (*Driver, error) {
	return OpenWith(p, DialNETCONF)
}

// OpenWith is Open with an explicit dialer, for tests.
func OpenWith(p Params, dial Dialer) (*Driver, error) {
	for attempt := 0; ; attempt++ {
		sess, err := dial(p)
		if err == nil {
			slog.Debug("Connected to nexus switch", "host", p.Host, "profile", deviceProfile)
			return &Driver{params: p, sess: sess}, nil
		}
		if !strings.Contains(err.Error(), sessionExceededErr) {
			return nil, &ConnectError{Host: p.Host, Cause: err}
		}
		if attempt >= maxConnectRetries {
			slog.Debug("Retries to connect to nexus switch exceeded", "host", p.Host)
			return nil, &ConnectError{Host: p.Host, Cause: err}
		}
		backoff := time.Duration((rand.Float64() + 0.37) * float64(time.Second))
		slog.Debug("Retrying connection to nexus switch", "host", p.Host, "attempt", attempt+1, "backoff", backoff)
		sleep(backoff)
	}
}

// Close issues close-session. Best effort: the switch may already have
// dropped the transport.
func (d *Driver) Close() {
	if err := d.sess.Close(); err != nil {
		slog.Debug("Failed to close nexus session", "host", d.params.Host, "err", err)
	}
	slog.Debug("Disconnected from nexus switch", "host", d.params.Host)
}

// Host returns the switch address this driver is bound to.
func (d *Driver) Host() string { return d.params.Host }

// editConfig applies a wrapped snippet to the running config. An error whose
// message contains one of allowedErrs is logged and treated as success;
// anything else becomes a ConfigError.
func (d *Driver) editConfig(config string, allowedErrs []string) error {
	err := d.sess.EditConfig(config)
	if err == nil {
		return nil
	}
	for _, allowed := range allowedErrs {
		if strings.Contains(err.Error(), allowed) {
			slog.Debug("Ignoring allowed nexus error", "host", d.params.Host, "match", allowed, "err", err)
			return nil
		}
	}
	return &ConfigError{Config: config, Cause: err}
}

// CreateVlan defines the VLANs in vlanExpr on the switch, then activates and
// no-shuts them. The state changes tolerate the swallowable vendor errors;
// the create itself does not.
func (d *Driver) CreateVlan(vlanExpr string) error {
	if err := d.editConfig(wrapExecConf(snippetCreateVlan(vlanExpr)), nil); err != nil {
		return err
	}

	state := []string{
		snippetVlanActive(vlanExpr),
		snippetVlanNoShutdown(vlanExpr),
	}
	for _, snippet := range state {
		if err := d.editConfig(wrapExecConf(snippet), swallowableVlanStateErrs); err != nil {
			return err
		}
	}
	return nil
}

// DeleteVlan removes the VLANs in vlanExpr from the switch globally.
func (d *Driver) DeleteVlan(vlanExpr string) error {
	return d.editConfig(wrapExecConf(snippetNoVlan(vlanExpr)), nil)
}

// EnableVlanOnTrunk adds vlanExpr to the trunk allowed list of an interface.
func (d *Driver) EnableVlanOnTrunk(vlanExpr string, intf vlan.Interface) error {
	config := wrapExecConf(snippetTrunkAdd(intf, vlanExpr))
	slog.Debug("NexusDriver trunk add", "host", d.params.Host, "config", config)
	return d.editConfig(config, nil)
}

// DisableVlanOnTrunk removes vlanExpr from the trunk allowed list of an
// interface.
func (d *Driver) DisableVlanOnTrunk(vlanExpr string, intf vlan.Interface) error {
	config := wrapExecConf(snippetTrunkRemove(intf, vlanExpr))
	slog.Debug("NexusDriver trunk remove", "host", d.params.Host, "config", config)
	return d.editConfig(config, nil)
}

// CreateAndTrunkVlan creates the VLANs in vlanExpr and adds them to the
// interface trunk in one pass. The trunk add is issued with the caller's
// expression verbatim, not per id.
func (d *Driver) CreateAndTrunkVlan(vlanExpr string, intf vlan.Interface) error {
	if err := d.CreateVlan(vlanExpr); err != nil {
		return err
	}
	slog.Debug("NexusDriver created VLAN", "host", d.params.Host, "vlan", vlanExpr)
	return d.EnableVlanOnTrunk(vlanExpr, intf)
}

// DeleteAndUntrunkVlan deletes the VLANs in vlanExpr globally and removes
// them from the interface trunk.
func (d *Driver) DeleteAndUntrunkVlan(vlanExpr string, intf vlan.Interface) error {
	if err := d.DeleteVlan(vlanExpr); err != nil {
		return err
	}
	return d.DisableVlanOnTrunk(vlanExpr, intf)
}

// InterfaceVlanList returns the expanded trunk allowed-vlan set currently
// configured on the named interface.
func (d *Driver) InterfaceVlanList(fullName string) ([]int, error) {
	reply, err := d.sess.Get(filterShowRunInterface(fullName))
	if err != nil {
		return nil, &ConfigError{Config: filterShowRunInterface(fullName), Cause: err}
	}
	return ParseAllowedVlans(reply)
}

// SpanUsage returns the switch's spanning-tree ports*vlans logical resource
// usage.
func (d *Driver) SpanUsage() (string, error) {
	reply, err := d.sess.Get(filterShowSpanInfoGlobalSnippet)
	if err != nil {
		return "", &ConfigError{Config: filterShowSpanInfoGlobalSnippet, Cause: err}
	}
	return ParseSpanUsage(reply)
}
