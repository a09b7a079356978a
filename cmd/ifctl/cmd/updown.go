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
	RootCmd.AddCommand(upCmd)
	RootCmd.AddCommand(downCmd)
}

// upDownRun changes every named interface and reports each on its own
func upDownRun(names []string, up bool) error {
	failed := 0
	for _, name := range names {
		err := func() error {
			i, err := iface.Open(name)
			if err != nil {
				return err
			}
			if up {
				return i.Up()
			}
			return i.Down()
		}()
		if err != nil {
			failed++
			fmt.Println(failString(), err)
			continue
		}
		fmt.Println(okString(), name, stateString(up))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d interfaces failed", failed, len(names))
	}
	return nil
}

var upCmd = &cobra.Command{
	Use:   "up NAME...",
	Short: "Bring interfaces administratively up",
	Args:  cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		ConfigureVerbosity()

		if err := upDownRun(args, true); err != nil {
			log.Fatal(err)
		}
	},
}

var downCmd = &cobra.Command{
	Use:   "down NAME...",
	Short: "Bring interfaces administratively down",
	Args:  cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		ConfigureVerbosity()

		if err := upDownRun(args, false); err != nil {
			log.Fatal(err)
		}
	},
}
