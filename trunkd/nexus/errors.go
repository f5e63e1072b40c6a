package nexus

import "fmt"

// ConnectError reports a failed NETCONF/SSH connection to a switch, after
// any retries have been exhausted.
type ConnectError struct {
	Host  string
	Cause error
}

func (e *ConnectError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("failed to connect to nexus switch %s", e.Host)
	}
	return fmt.Sprintf("failed to connect to nexus switch %s: %v", e.Host, e.Cause)
}

func (e *ConnectError) Unwrap() error { return e.Cause }

// ConfigError reports a switch rejecting a configuration request. Config
// carries the offending payload for operator debugging.
type ConfigError struct {
	Config string
	Cause  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("nexus config failed: %v (config: %s)", e.Cause, e.Config)
}

func (e *ConfigError) Unwrap() error { return e.Cause }
