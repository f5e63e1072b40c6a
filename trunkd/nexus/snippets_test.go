package nexus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mulgadc/trunkd/trunkd/vlan"
)

// The expected payloads below are the byte-exact requests captured from the
// production switch management stack. Any drift breaks compatibility with
// the recorded switch-reply fixtures.

const wantCreateVlan777 = "\n" +
	"      <config xmlns:xc=\"urn:ietf:params:xml:ns:netconf:base:1.0\">\n" +
	"        <configure>\n" +
	"          <__XML__MODE__exec_configure>\n" +
	"            <vlan>\n" +
	"              <vlan-id-create-delete>\n" +
	"                <__XML__PARAM_value>777</__XML__PARAM_value>\n" +
	"                <__XML__MODE_vlan>\n" +
	"                </__XML__MODE_vlan>\n" +
	"              </vlan-id-create-delete>\n" +
	"            </vlan>\n" +
	"\n" +
	"          </__XML__MODE__exec_configure>\n" +
	"        </configure>\n" +
	"      </config>\n"

const wantActiveVlan777 = "\n" +
	"      <config xmlns:xc=\"urn:ietf:params:xml:ns:netconf:base:1.0\">\n" +
	"        <configure>\n" +
	"          <__XML__MODE__exec_configure>\n" +
	"            <vlan>\n" +
	"              <vlan-id-create-delete>\n" +
	"                <__XML__PARAM_value>777</__XML__PARAM_value>\n" +
	"                <__XML__MODE_vlan>\n" +
	"                  <state>\n" +
	"                    <vstate>active</vstate>\n" +
	"                  </state>\n" +
	"                </__XML__MODE_vlan>\n" +
	"              </vlan-id-create-delete>\n" +
	"            </vlan>\n" +
	"\n" +
	"          </__XML__MODE__exec_configure>\n" +
	"        </configure>\n" +
	"      </config>\n"

const wantNoShutdownVlan777 = "\n" +
	"      <config xmlns:xc=\"urn:ietf:params:xml:ns:netconf:base:1.0\">\n" +
	"        <configure>\n" +
	"          <__XML__MODE__exec_configure>\n" +
	"            <vlan>\n" +
	"              <vlan-id-create-delete>\n" +
	"                <__XML__PARAM_value>777</__XML__PARAM_value>\n" +
	"                <__XML__MODE_vlan>\n" +
	"                  <no>\n" +
	"                    <shutdown/>\n" +
	"                  </no>\n" +
	"                </__XML__MODE_vlan>\n" +
	"              </vlan-id-create-delete>\n" +
	"            </vlan>\n" +
	"\n" +
	"          </__XML__MODE__exec_configure>\n" +
	"        </configure>\n" +
	"      </config>\n"

const wantTrunkAdd777Po101 = "\n" +
	"      <config xmlns:xc=\"urn:ietf:params:xml:ns:netconf:base:1.0\">\n" +
	"        <configure>\n" +
	"          <__XML__MODE__exec_configure>\n" +
	"          <interface>\n" +
	"            <port-channel>\n" +
	"              <interface>101</interface>\n" +
	"              <__XML__MODE_if-eth-port-channel-switch>\n" +
	"                <switchport>\n" +
	"                  <trunk>\n" +
	"                    <allowed>\n" +
	"                      <vlan>\n" +
	"                        <add>\n" +
	"                          <add-vlans>777</add-vlans>\n" +
	"                        </add>\n" +
	"                      </vlan>\n" +
	"                    </allowed>\n" +
	"                  </trunk>\n" +
	"                </switchport>\n" +
	"              </__XML__MODE_if-eth-port-channel-switch>\n" +
	"            </port-channel>\n" +
	"          </interface>\n" +
	"\n" +
	"          </__XML__MODE__exec_configure>\n" +
	"        </configure>\n" +
	"      </config>\n"

const wantTrunkRemove777Po101 = "\n" +
	"      <config xmlns:xc=\"urn:ietf:params:xml:ns:netconf:base:1.0\">\n" +
	"        <configure>\n" +
	"          <__XML__MODE__exec_configure>\n" +
	"          <interface>\n" +
	"            <port-channel>\n" +
	"              <interface>101</interface>\n" +
	"              <__XML__MODE_if-eth-port-channel-switch>\n" +
	"                <switchport>\n" +
	"                  <trunk>\n" +
	"                    <allowed>\n" +
	"                      <vlan>\n" +
	"                        <remove>\n" +
	"                          <remove-vlans>777</remove-vlans>\n" +
	"                        </remove>\n" +
	"                      </vlan>\n" +
	"                    </allowed>\n" +
	"                  </trunk>\n" +
	"                </switchport>\n" +
	"              </__XML__MODE_if-eth-port-channel-switch>\n" +
	"            </port-channel>\n" +
	"          </interface>\n" +
	"\n" +
	"          </__XML__MODE__exec_configure>\n" +
	"        </configure>\n" +
	"      </config>\n"

const wantShowRunPo101 = "\n" +
	"      <show xmlns=\"http://www.cisco.com/nxos:1.0:vlan_mgr_cli\">\n" +
	"        <running-config>\n" +
	"          <interface/>\n" +
	"            <interface>port-channel101</interface>\n" +
	"        </running-config>\n" +
	"      </show>\n"

func po101(t *testing.T) vlan.Interface {
	t.Helper()
	intf, err := vlan.ParseInterface("po101")
	require.NoError(t, err)
	return intf
}

func TestSnippetCreateVlanSequence(t *testing.T) {
	assert.Equal(t, wantCreateVlan777, wrapExecConf(snippetCreateVlan("777")))
	assert.Equal(t, wantActiveVlan777, wrapExecConf(snippetVlanActive("777")))
	assert.Equal(t, wantNoShutdownVlan777, wrapExecConf(snippetVlanNoShutdown("777")))
}

func TestSnippetTrunkAddRemove(t *testing.T) {
	intf := po101(t)
	assert.Equal(t, wantTrunkAdd777Po101, wrapExecConf(snippetTrunkAdd(intf, "777")))
	assert.Equal(t, wantTrunkRemove777Po101, wrapExecConf(snippetTrunkRemove(intf, "777")))
}

func TestSnippetTrunkEthernetMode(t *testing.T) {
	intf, err := vlan.ParseInterface("e1/3")
	require.NoError(t, err)

	body := wrapExecConf(snippetTrunkAdd(intf, "42"))
	assert.Contains(t, body, "<ethernet>")
	assert.Contains(t, body, "<interface>1/3</interface>")
	assert.Contains(t, body, "<__XML__MODE_if-ethernet-switch>")
	assert.Contains(t, body, "<add-vlans>42</add-vlans>")
	assert.NotContains(t, body, "port-channel")
}

func TestSnippetNoVlan(t *testing.T) {
	body := wrapExecConf(snippetNoVlan("777"))
	assert.Contains(t, body, "<no>")
	assert.Contains(t, body, "<__XML__PARAM_value>777</__XML__PARAM_value>")
	assert.Contains(t, body, "<vlan-id-create-delete>")
}

func TestFilterShowRunInterface(t *testing.T) {
	assert.Equal(t, wantShowRunPo101, filterShowRunInterface("port-channel101"))
}

// Range expressions pass through the codec untouched; compression happens
// upstream.
func TestSnippetVlanExpressionVerbatim(t *testing.T) {
	body := wrapExecConf(snippetCreateVlan("111,138,200-299"))
	assert.Contains(t, body, "<__XML__PARAM_value>111,138,200-299</__XML__PARAM_value>")
}
