/*
Copyright © 2025 Mulga Defense Corporation

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"strconv"

	"github.com/mulgadc/trunkd/trunkd/manager"
	"github.com/mulgadc/trunkd/trunkd/store"
	"github.com/mulgadc/trunkd/trunkd/utils"
	"github.com/mulgadc/trunkd/trunkd/vlan"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var vlanCmd = &cobra.Command{
	Use:   "vlan",
	Short: "Provision or deprovision a VLAN on this host's switch ports",
}

var vlanAddCmd = &cobra.Command{
	Use:   "add <vlan-id>",
	Short: "Trunk a VLAN on every switch port bound to this host",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVlanOp(args[0], func(mgr *manager.Manager, id int) error {
			return mgr.AddVlanToSwitch(id)
		}, "added to")
	},
}

var vlanDeleteCmd = &cobra.Command{
	Use:   "delete <vlan-id>",
	Short: "Remove a VLAN from every trunk bound to this host",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVlanOp(args[0], func(mgr *manager.Manager, id int) error {
			return mgr.DeleteVlanFromSwitch(id)
		}, "removed from")
	},
}

func runVlanOp(arg string, op func(*manager.Manager, int) error, verb string) error {
	if appConfig == nil {
		return fmt.Errorf("configuration not loaded")
	}

	id, err := strconv.Atoi(arg)
	if err != nil || id < vlan.MinID || id > vlan.MaxID {
		return fmt.Errorf("invalid vlan id %q", arg)
	}

	nc, err := utils.ConnectNATS(appConfig.NATS.Host, appConfig.NATS.ACL.Token)
	if err != nil {
		return err
	}
	defer nc.Close()

	mgr, err := manager.New(store.NewNATSStore(nc), manager.Config{
		Plugin:    appConfig.Psvm.Plugin,
		Driver:    appConfig.Psvm.Driver,
		KeepVlans: appConfig.Psvm.IgnoreVlans,
	})
	if err != nil {
		return err
	}
	if mgr == nil {
		pterm.Warning.Println("This host has no switch port bindings")
		return nil
	}

	if err := op(mgr, id); err != nil {
		return err
	}

	pterm.Success.Printfln("VLAN %d %s %d switch port binding(s)", id, verb, len(mgr.Bindings()))
	return nil
}

func init() {
	rootCmd.AddCommand(vlanCmd)
	vlanCmd.AddCommand(vlanAddCmd)
	vlanCmd.AddCommand(vlanDeleteCmd)
}
