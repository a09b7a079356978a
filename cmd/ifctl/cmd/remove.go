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
	"fmt"

	"github.com/facebook/ifctl/iface"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(removeCmd)
}

func removeRun(name string) error {
	i, err := iface.Open(name)
	if err != nil {
		return err
	}
	prev, err := i.RemoveIPv4()
	if iface.IsNotConfigured(err) {
		fmt.Println(okString(), name, "has no IPv4 address")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println(okString(), "removed", prev, "from", name)
	return nil
}

var removeCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: "Remove the primary IPv4 address of an interface",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		ConfigureVerbosity()

		if err := removeRun(args[0]); err != nil {
			log.Fatal(err)
		}
	},
}
