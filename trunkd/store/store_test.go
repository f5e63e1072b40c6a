package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockStore_PortBindings(t *testing.T) {
	st := NewMockStore()
	st.Bindings["host1.example.com"] = []PortBinding{
		{ID: 1, SwitchID: 1, ComputeNodeID: 7, SwitchPort: "po101"},
	}

	bindings, err := st.PortBindingsForHost("host1.example.com")
	require.NoError(t, err)
	require.Len(t, bindings, 1)
	assert.Equal(t, "po101", bindings[0].SwitchPort)

	_, err = st.PortBindingsForHost("unknown.example.com")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMockStore_SwitchAndCredential(t *testing.T) {
	st := NewMockStore()
	st.Switches[1] = Switch{ID: 1, IP: "10.10.10.1", CredentialID: 5}
	st.Credentials[5] = Credential{ID: 5, UserName: "admin", Password: "secret"}

	sw, err := st.SwitchByID(1)
	require.NoError(t, err)
	assert.Equal(t, "10.10.10.1", sw.IP)

	cred, err := st.CredentialByID(sw.CredentialID)
	require.NoError(t, err)
	assert.Equal(t, "admin", cred.UserName)

	_, err = st.SwitchByID(99)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = st.CredentialByID(99)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMockStore_NetworksEmptyIsNotError(t *testing.T) {
	st := NewMockStore()

	networks, err := st.NetworksForHost("host1")
	require.NoError(t, err)
	assert.Empty(t, networks)
}

func TestRespErr(t *testing.T) {
	assert.True(t, errors.Is(respErr(SubjectSwitch, "not_found"), ErrNotFound))

	err := respErr(SubjectSwitch, "internal")
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "internal")
}
