package daemon

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/mulgadc/trunkd/trunkd/config"
	"github.com/mulgadc/trunkd/trunkd/utils"
)

var serviceName = "trunkd"

// Service implements the platform service interface around the daemon.
type Service struct {
	Config *config.Config
}

// New creates a new trunkd Service.
func New(cfg *config.Config) (*Service, error) {
	return &Service{Config: cfg}, nil
}

// Start starts the trunkd service and blocks until shutdown.
func (svc *Service) Start() (int, error) {
	if _, err := maxprocs.Set(); err != nil {
		slog.Warn("Failed to set GOMAXPROCS", "err", err)
	}

	if svc.Config.Daemon.BaseDir != "" {
		if err := utils.WritePidFile(svc.Config.Daemon.BaseDir, serviceName, os.Getpid()); err != nil {
			slog.Error("Failed to write pid file", "err", err)
		}
	}

	d, err := NewDaemon(svc.Config)
	if err != nil {
		slog.Error("Failed to initialise trunkd daemon", "err", err)
		return 0, err
	}

	// Cancel the daemon's run loop on SIGINT/SIGTERM
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Shutdown signal received")
		d.Stop()
	}()

	if err := d.Start(); err != nil {
		return 0, err
	}

	return os.Getpid(), nil
}

// Stop stops a running trunkd service via its pid file.
func (svc *Service) Stop() error {
	return utils.StopProcess(svc.Config.Daemon.BaseDir, serviceName)
}

// Status returns the trunkd service status.
func (svc *Service) Status() (string, error) {
	pid, err := utils.ReadPidFile(svc.Config.Daemon.BaseDir, serviceName)
	if err != nil {
		return "stopped", nil
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return "stopped", nil
	}
	if err := proc.Signal(syscall.Signal(0)); err != nil {
		return "stopped", nil
	}
	return fmt.Sprintf("running (pid %d)", pid), nil
}

// Shutdown gracefully shuts down the trunkd service.
func (svc *Service) Shutdown() error {
	return svc.Stop()
}

// Reload reloads the trunkd service configuration.
func (svc *Service) Reload() error {
	return nil
}
