package nexus

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/mulgadc/trunkd/trunkd/plugin"
	"github.com/mulgadc/trunkd/trunkd/store"
	"github.com/mulgadc/trunkd/trunkd/vlan"
)

func init() {
	plugin.Register(plugin.DefaultPlugin, NewPlugin)
}

// dialers maps the psvm.driver selector names this family understands onto
// their transports.
var dialers = map[string]Dialer{
	plugin.DefaultDriver: DialNETCONF,
}

// chunkLimit caps the number of range tokens per switch request. Larger
// requests trip the Nexus XML size limit.
const chunkLimit = 400

// Plugin programs one Nexus switch through the driver. Each operation opens
// its own session and closes it on every exit path.
type Plugin struct {
	params plugin.Params
	dial   Dialer
}

// NewPlugin builds a Nexus plugin for one switch from the manager's params.
func NewPlugin(p plugin.Params) (plugin.Plugin, error) {
	name := p.Driver
	if name == "" {
		name = plugin.DefaultDriver
	}
	dial, ok := dialers[name]
	if !ok {
		return nil, fmt.Errorf("unknown nexus driver %q", name)
	}
	return &Plugin{params: p, dial: dial}, nil
}

// open acquires a driver session. A connect failure is logged and reported
// as a nil driver: the switch is unreachable, the caller skips it. Only
// in-session operation failures propagate as errors.
func (p *Plugin) open() *Driver {
	d, err := OpenWith(Params{
		Host:     p.params.Host,
		Username: p.params.Username,
		Password: p.params.Password,
	}, p.dial)
	if err != nil {
		slog.Error("Nexus plugin: driver failed to connect", "host", p.params.Host, "err", err)
		return nil
	}
	return d
}

// AddVlan creates the VLAN on the switch and allows it on the port's trunk.
func (p *Plugin) AddVlan(switchPort string, vlanID int) error {
	intf, err := vlan.ParseInterface(switchPort)
	if err != nil {
		return err
	}
	d := p.open()
	if d == nil {
		return nil
	}
	defer d.Close()
	return d.CreateAndTrunkVlan(strconv.Itoa(vlanID), intf)
}

// DeleteVlan removes the VLAN from the port's trunk allowed list. The VLAN
// definition stays on the switch; other ports may still use it.
func (p *Plugin) DeleteVlan(switchPort string, vlanID int) error {
	intf, err := vlan.ParseInterface(switchPort)
	if err != nil {
		return err
	}
	d := p.open()
	if d == nil {
		return nil
	}
	defer d.Close()
	return d.DisableVlanOnTrunk(strconv.Itoa(vlanID), intf)
}

// Sync reconciles the port's trunk allowed list against the expected
// networks inside a single switch session: read the current list, provision
// the missing VLANs, then strip the excess ones. VLANs in KeepVlans are
// never removed.
func (p *Plugin) Sync(switchPort string, networks []store.Network) error {
	intf, err := vlan.ParseInterface(switchPort)
	if err != nil {
		return err
	}
	d := p.open()
	if d == nil {
		return nil
	}
	defer d.Close()

	current, err := d.InterfaceVlanList(intf.FullName())
	if err != nil {
		return err
	}

	present := make(map[int]bool, len(current))
	for _, id := range current {
		present[id] = true
	}
	expected := make(map[int]bool, len(networks))
	for _, n := range networks {
		expected[n.VLAN] = true
	}
	keep := make(map[int]bool, len(p.params.KeepVlans))
	for _, id := range p.params.KeepVlans {
		keep[id] = true
	}

	var missing, excess []int
	for id := range expected {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	for id := range present {
		if !expected[id] && !keep[id] {
			excess = append(excess, id)
		}
	}
	sort.Ints(missing)
	sort.Ints(excess)

	if len(missing) > 0 {
		err := applyChunked(vlan.Compress(missing), func(expr string) error {
			return d.CreateAndTrunkVlan(expr, intf)
		})
		if err != nil {
			return err
		}
		slog.Info("Missing VLANs synced to switch",
			"host", p.params.Host, "interface", intf.FullName(), "vlans", missing)
	}

	if len(excess) > 0 {
		err := applyChunked(vlan.Compress(excess), func(expr string) error {
			return d.DisableVlanOnTrunk(expr, intf)
		})
		if err != nil {
			return err
		}
		slog.Info("Excess VLANs removed from switch",
			"host", p.params.Host, "interface", intf.FullName(), "vlans", excess)
	}

	return nil
}

// applyChunked issues apply once per chunk of at most chunkLimit tokens.
func applyChunked(tokens []string, apply func(expr string) error) error {
	for _, span := range chunkBounds(len(tokens), chunkLimit) {
		if err := apply(vlan.Join(tokens[span[0] : span[1]+1])); err != nil {
			return err
		}
	}
	return nil
}

// chunkBounds splits a token list of the given length into inclusive
// [start, end] spans of at most limit tokens. The arithmetic reproduces the
// long-standing provisioning behavior exactly, including the trailing
// single-token span when the length is one past a multiple of limit; the
// conformance test pins the emitted spans.
func chunkBounds(listLen, limit int) [][2]int {
	if listLen == 0 {
		return nil
	}
	var spans [][2]int
	subqty := listLen / limit
	start := 0
	end := listLen - 1
	if subqty > 0 {
		end = limit - 1
	}
	for x := 0; x < subqty; x++ {
		spans = append(spans, [2]int{start, end})
		if end+1 < listLen-1 {
			start = end + 1
		} else {
			start = listLen - 1
		}
		if x < subqty-1 {
			end = end + limit
		} else {
			end = listLen - 1
		}
	}
	if start != end {
		spans = append(spans, [2]int{start, end})
	} else if start%limit == 0 {
		spans = append(spans, [2]int{start, end})
	}
	return spans
}
