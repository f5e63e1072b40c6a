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

	"github.com/mulgadc/trunkd/trunkd/manager"
	"github.com/mulgadc/trunkd/trunkd/nexus"
	"github.com/mulgadc/trunkd/trunkd/store"
	"github.com/mulgadc/trunkd/trunkd/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var showSpanUsage bool

// syncCmd runs one reconcile pass for this host's switch ports.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile this host's switch trunks against the control plane",
	RunE: func(cmd *cobra.Command, args []string) error {
		if appConfig == nil {
			return fmt.Errorf("configuration not loaded")
		}

		nc, err := utils.ConnectNATS(appConfig.NATS.Host, appConfig.NATS.ACL.Token)
		if err != nil {
			return err
		}
		defer nc.Close()

		st := store.NewNATSStore(nc)
		mgr, err := manager.New(st, manager.Config{
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

		if showSpanUsage {
			return printSpanUsage(st, mgr)
		}

		if err := mgr.SyncPhysicalNetwork(); err != nil {
			return err
		}

		pterm.Success.Printfln("Synced %d switch port binding(s)", len(mgr.Bindings()))
		return nil
	},
}

// printSpanUsage queries each bound switch for its spanning-tree logical
// port usage and renders the results.
func printSpanUsage(st store.Store, mgr *manager.Manager) error {
	tableData := pterm.TableData{
		{"Switch", "Port", "Ports*VLANs"},
	}

	for _, binding := range mgr.Bindings() {
		sw, err := st.SwitchByID(binding.SwitchID)
		if err != nil {
			return err
		}
		cred, err := st.CredentialByID(sw.CredentialID)
		if err != nil {
			return err
		}

		drv, err := nexus.Open(nexus.Params{
			Host:     sw.IP,
			Username: cred.UserName,
			Password: cred.Password,
		})
		if err != nil {
			return err
		}
		usage, err := drv.SpanUsage()
		drv.Close()
		if err != nil {
			return err
		}

		tableData = append(tableData, []string{sw.IP, binding.SwitchPort, usage})
	}

	return pterm.DefaultTable.WithHasHeader().WithLeftAlignment().WithData(tableData).Render()
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().BoolVar(&showSpanUsage, "span-usage", false, "print spanning-tree ports*vlans usage instead of syncing")
}
