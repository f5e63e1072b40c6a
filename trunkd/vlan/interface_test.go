package vlan

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInterface(t *testing.T) {
	tests := []struct {
		name  string
		label string
		kind  Kind
		id    string
	}{
		{"Short port-channel", "po101", PortChannel, "101"},
		{"Long port-channel", "port-channel101", PortChannel, "101"},
		{"Short ethernet", "e1/3", Ethernet, "1/3"},
		{"Long ethernet", "ethernet1/3", Ethernet, "1/3"},
		{"Mixed case", "Po101", PortChannel, "101"},
		{"Upper ethernet", "Ethernet100/1/17", Ethernet, "100/1/17"},
		{"Eth abbreviation", "eth2/4", Ethernet, "2/4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intf, err := ParseInterface(tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, intf.Kind)
			assert.Equal(t, tt.id, intf.ID)
		})
	}
}

func TestParseInterface_Unsupported(t *testing.T) {
	for _, label := range []string{"vlan10", "fa0/1", "mgmt0", ""} {
		_, err := ParseInterface(label)
		assert.True(t, errors.Is(err, ErrUnsupportedInterfaceKind), "label %q", label)
	}
}

func TestInterfaceFullName(t *testing.T) {
	intf, err := ParseInterface("po101")
	require.NoError(t, err)
	assert.Equal(t, "port-channel101", intf.FullName())

	intf, err = ParseInterface("e1/3")
	require.NoError(t, err)
	assert.Equal(t, "ethernet1/3", intf.FullName())
}
