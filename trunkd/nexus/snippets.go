package nexus

import (
	"fmt"

	"github.com/mulgadc/trunkd/trunkd/vlan"
)

// NX-OS NETCONF payload templates. These are wire-compatible with the
// switch-reply fixtures captured from production Nexus gear: the
// __XML__MODE_* nesting, indentation, and surrounding newlines are all part
// of the contract, so edits here must keep the rendered bytes stable.

const execConfSnippet = "\n" +
	`      <config xmlns:xc="urn:ietf:params:xml:ns:netconf:base:1.0">
        <configure>
          <__XML__MODE__exec_configure>
%s
          </__XML__MODE__exec_configure>
        </configure>
      </config>
`

const cmdVlanConfSnippet = `            <vlan>
              <vlan-id-create-delete>
                <__XML__PARAM_value>%s</__XML__PARAM_value>
                <__XML__MODE_vlan>
                </__XML__MODE_vlan>
              </vlan-id-create-delete>
            </vlan>
`

const cmdVlanActiveSnippet = `            <vlan>
              <vlan-id-create-delete>
                <__XML__PARAM_value>%s</__XML__PARAM_value>
                <__XML__MODE_vlan>
                  <state>
                    <vstate>active</vstate>
                  </state>
                </__XML__MODE_vlan>
              </vlan-id-create-delete>
            </vlan>
`

const cmdVlanNoShutdownSnippet = `            <vlan>
              <vlan-id-create-delete>
                <__XML__PARAM_value>%s</__XML__PARAM_value>
                <__XML__MODE_vlan>
                  <no>
                    <shutdown/>
                  </no>
                </__XML__MODE_vlan>
              </vlan-id-create-delete>
            </vlan>
`

const cmdNoVlanConfSnippet = `            <no>
              <vlan>
                <vlan-id-create-delete>
                  <__XML__PARAM_value>%s</__XML__PARAM_value>
                </vlan-id-create-delete>
              </vlan>
            </no>
`

const cmdIntVlanAddSnippet = `          <interface>
            <%s>
              <interface>%s</interface>
              <__XML__MODE_%s>
                <switchport>
                  <trunk>
                    <allowed>
                      <vlan>
                        <add>
                          <add-vlans>%s</add-vlans>
                        </add>
                      </vlan>
                    </allowed>
                  </trunk>
                </switchport>
              </__XML__MODE_%s>
            </%s>
          </interface>
`

const cmdIntVlanRemoveSnippet = `          <interface>
            <%s>
              <interface>%s</interface>
              <__XML__MODE_%s>
                <switchport>
                  <trunk>
                    <allowed>
                      <vlan>
                        <remove>
                          <remove-vlans>%s</remove-vlans>
                        </remove>
                      </vlan>
                    </allowed>
                  </trunk>
                </switchport>
              </__XML__MODE_%s>
            </%s>
          </interface>
`

const filterShowRunInterfaceSnippet = "\n      " +
	`<show xmlns="http://www.cisco.com/nxos:1.0:vlan_mgr_cli">
        <running-config>
          <interface/>
            <interface>%s</interface>
        </running-config>
      </show>
`

const filterShowSpanInfoGlobalSnippet = "\n      " +
	`<show xmlns="http://www.cisco.com/nxos:1.0:vlan_mgr_cli">
        <spanning-tree>
          <internal>
            <info>
              <global/>
            </info>
          </internal>
        </spanning-tree>
      </show>
`

// xmlMode maps an interface kind onto the NX-OS switchport mode element for
// trunk add/remove requests.
func xmlMode(kind vlan.Kind) string {
	if kind == vlan.PortChannel {
		return "if-eth-port-channel-switch"
	}
	return "if-ethernet-switch"
}

// wrapExecConf wraps an inner snippet in the exec-configure envelope every
// edit-config request carries.
func wrapExecConf(body string) string {
	return fmt.Sprintf(execConfSnippet, body)
}

func snippetCreateVlan(vlanExpr string) string {
	return fmt.Sprintf(cmdVlanConfSnippet, vlanExpr)
}

func snippetVlanActive(vlanExpr string) string {
	return fmt.Sprintf(cmdVlanActiveSnippet, vlanExpr)
}

func snippetVlanNoShutdown(vlanExpr string) string {
	return fmt.Sprintf(cmdVlanNoShutdownSnippet, vlanExpr)
}

func snippetNoVlan(vlanExpr string) string {
	return fmt.Sprintf(cmdNoVlanConfSnippet, vlanExpr)
}

func snippetTrunkAdd(intf vlan.Interface, vlanExpr string) string {
	mode := xmlMode(intf.Kind)
	return fmt.Sprintf(cmdIntVlanAddSnippet,
		intf.Kind, intf.ID, mode, vlanExpr, mode, intf.Kind)
}

func snippetTrunkRemove(intf vlan.Interface, vlanExpr string) string {
	mode := xmlMode(intf.Kind)
	return fmt.Sprintf(cmdIntVlanRemoveSnippet,
		intf.Kind, intf.ID, mode, vlanExpr, mode, intf.Kind)
}

func filterShowRunInterface(fullName string) string {
	return fmt.Sprintf(filterShowRunInterfaceSnippet, fullName)
}
