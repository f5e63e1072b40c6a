package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Cleanup(func() { viper.Reset() })
}

func writeConfig(t *testing.T, toml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trunkd.toml")
	require.NoError(t, os.WriteFile(path, []byte(toml), 0600))
	return path
}

func TestLoadConfig_ValidTOMLFile(t *testing.T) {
	resetViper(t)
	path := writeConfig(t, `
[daemon]
base_dir = "/var/run/trunkd"

[nats]
host = "127.0.0.1:4222"

[nats.acl]
token = "nats_testtoken"

[psvm]
enabled = true
ignore_vlans = [1, 134]
sync_interval = 300
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "/var/run/trunkd", cfg.Daemon.BaseDir)
	assert.Equal(t, "127.0.0.1:4222", cfg.NATS.Host)
	assert.Equal(t, "nats_testtoken", cfg.NATS.ACL.Token)
	assert.True(t, cfg.Psvm.Enabled)
	assert.Equal(t, []int{1, 134}, cfg.Psvm.IgnoreVlans)
	assert.Equal(t, 300, cfg.Psvm.SyncInterval)
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetViper(t)
	path := writeConfig(t, `
[nats]
host = "127.0.0.1:4222"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "cisco.nexus.plugin", cfg.Psvm.Plugin)
	assert.Equal(t, "cisco.nexus.driver", cfg.Psvm.Driver)
	assert.Equal(t, []int{1}, cfg.Psvm.IgnoreVlans)
	assert.Equal(t, 0, cfg.Psvm.SyncInterval)
	assert.False(t, cfg.Psvm.Enabled)
}

func TestLoadConfig_MissingNATSHost(t *testing.T) {
	resetViper(t)
	path := writeConfig(t, `
[psvm]
enabled = true
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_InvalidIgnoreVlans(t *testing.T) {
	resetViper(t)
	path := writeConfig(t, `
[nats]
host = "127.0.0.1:4222"

[psvm]
ignore_vlans = [0]
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
