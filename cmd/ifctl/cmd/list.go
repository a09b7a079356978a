/*
Copyright (c) Facebook, Inc. and its affiliates.

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
	"os"

	"github.com/facebook/ifctl/iface"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var listAllFlag bool

func init() {
	RootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVarP(&listAllFlag, "all", "a", false, "list every link via rtnetlink, not only those with an IPv4 address")
}

func listResults(all bool) ([]iface.Result, error) {
	if all {
		return iface.ListAll(iface.NetlinkLister{})
	}
	return iface.List()
}

func listRun(all bool) error {
	results, err := listResults(all)
	if err != nil {
		return err
	}
	return writeTable(os.Stdout, results)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List network interfaces",
	Long:  "List network interfaces. Without --all only interfaces with an IPv4 address are reported, one row per address.",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()

		if err := listRun(listAllFlag); err != nil {
			log.Fatal(err)
		}
	},
}
