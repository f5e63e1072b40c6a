package daemon

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

const heartbeatInterval = 10 * time.Second

// Heartbeat is the liveness record this daemon publishes to the bus.
type Heartbeat struct {
	Host      string `json:"host"`
	Timestamp string `json:"timestamp"`
	Plugin    string `json:"plugin"`
	Enabled   bool   `json:"enabled"`
}

// startHeartbeat launches a goroutine that publishes this daemon's
// heartbeat every heartbeatInterval. It fires immediately on start, then
// repeats on a ticker. The goroutine exits when d.ctx is cancelled.
func (d *Daemon) startHeartbeat() {
	go func() {
		// Fire immediately on startup
		d.publishHeartbeat()

		ticker := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()

		for {
			select {
			case <-d.ctx.Done():
				slog.Debug("Heartbeat goroutine stopping")
				return
			case <-ticker.C:
				d.publishHeartbeat()
			}
		}
	}()

	slog.Info("Heartbeat started", "interval", heartbeatInterval)
}

func (d *Daemon) publishHeartbeat() {
	h := Heartbeat{
		Host:      d.hostname,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Plugin:    d.cfg.Psvm.Plugin,
		Enabled:   d.cfg.Psvm.Enabled,
	}

	payload, err := json.Marshal(h)
	if err != nil {
		slog.Warn("Failed to marshal heartbeat", "err", err)
		return
	}

	subject := fmt.Sprintf("psvm.heartbeat.%s", d.hostname)
	if err := d.natsConn.Publish(subject, payload); err != nil {
		slog.Warn("Failed to publish heartbeat", "err", err)
	} else {
		slog.Debug("Heartbeat published", "host", h.Host)
	}
}
