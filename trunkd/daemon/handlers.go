package daemon

import (
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/mulgadc/trunkd/trunkd/manager"
	"github.com/mulgadc/trunkd/trunkd/vlan"
)

// VlanEvent is the payload of a vlan add/delete request for one host.
type VlanEvent struct {
	RequestID string `json:"request_id"`
	VLAN      int    `json:"vlan"`
}

// EventResponse reports the outcome of a bus-triggered operation.
type EventResponse struct {
	RequestID string `json:"request_id,omitempty"`
	Host      string `json:"host"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// Respond replies to a request message, if a reply was asked for.
func (r EventResponse) Respond(msg *nats.Msg) {
	if msg.Reply == "" {
		return
	}
	response, err := json.Marshal(r)
	if err != nil {
		slog.Error("Failed to marshal response", "err", err)
		return
	}
	msg.Respond(response)
}

// withManager builds a manager for this host and hands it to op. A host
// without bindings is a successful no-op.
func (d *Daemon) withManager(op func(*manager.Manager) error) error {
	mgr, err := manager.New(d.store, d.managerConfig())
	if err != nil {
		return err
	}
	if mgr == nil {
		slog.Debug("Host has no switch port bindings, skipping", "host", d.hostname)
		return nil
	}
	return op(mgr)
}

func (d *Daemon) handleVlanAdd(msg *nats.Msg) {
	var event VlanEvent
	resp := EventResponse{Host: d.hostname}

	if err := json.Unmarshal(msg.Data, &event); err != nil {
		slog.Error("Invalid vlan add event", "err", err)
		resp.Error = err.Error()
		resp.Respond(msg)
		return
	}
	resp.RequestID = event.RequestID

	if event.VLAN < vlan.MinID || event.VLAN > vlan.MaxID {
		slog.Error("Vlan add event out of range", "vlan", event.VLAN)
		resp.Error = "vlan id out of range"
		resp.Respond(msg)
		return
	}

	slog.Info("Provisioning VLAN on bound switch ports", "vlan", event.VLAN, "host", d.hostname)
	err := d.withManager(func(mgr *manager.Manager) error {
		return mgr.AddVlanToSwitch(event.VLAN)
	})
	if err != nil {
		slog.Error("Vlan add failed", "vlan", event.VLAN, "err", err)
		resp.Error = err.Error()
		resp.Respond(msg)
		return
	}

	resp.Success = true
	resp.Respond(msg)
}

func (d *Daemon) handleVlanDelete(msg *nats.Msg) {
	var event VlanEvent
	resp := EventResponse{Host: d.hostname}

	if err := json.Unmarshal(msg.Data, &event); err != nil {
		slog.Error("Invalid vlan delete event", "err", err)
		resp.Error = err.Error()
		resp.Respond(msg)
		return
	}
	resp.RequestID = event.RequestID

	if event.VLAN < vlan.MinID || event.VLAN > vlan.MaxID {
		slog.Error("Vlan delete event out of range", "vlan", event.VLAN)
		resp.Error = "vlan id out of range"
		resp.Respond(msg)
		return
	}

	slog.Info("Deprovisioning VLAN from bound switch ports", "vlan", event.VLAN, "host", d.hostname)
	err := d.withManager(func(mgr *manager.Manager) error {
		return mgr.DeleteVlanFromSwitch(event.VLAN)
	})
	if err != nil {
		slog.Error("Vlan delete failed", "vlan", event.VLAN, "err", err)
		resp.Error = err.Error()
		resp.Respond(msg)
		return
	}

	resp.Success = true
	resp.Respond(msg)
}

func (d *Daemon) handleSync(msg *nats.Msg) {
	resp := EventResponse{Host: d.hostname}

	slog.Info("Syncing physical network", "host", d.hostname)
	if err := d.syncPhysicalNetwork(); err != nil {
		slog.Error("Sync failed", "err", err)
		resp.Error = err.Error()
		resp.Respond(msg)
		return
	}

	resp.Success = true
	resp.Respond(msg)
}
