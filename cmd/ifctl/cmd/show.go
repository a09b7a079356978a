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
	"io"
	"os"

	"github.com/facebook/ifctl/iface"
	"github.com/shirou/gopsutil/net"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(showCmd)
}

// counters returns the kernel traffic counters of name
func counters(name string) (*net.IOCountersStat, error) {
	stats, err := net.IOCounters(true)
	if err != nil {
		return nil, err
	}
	for idx := range stats {
		if stats[idx].Name == name {
			return &stats[idx], nil
		}
	}
	return nil, fmt.Errorf("no counters for %s", name)
}

func printShow(w io.Writer, i *iface.Interface, stat *net.IOCountersStat) {
	fmt.Fprintln(w, i.Summary())
	if flags, err := i.Flags(); err != nil {
		fmt.Fprintf(w, "\tflags: %v\n", err)
	} else {
		fmt.Fprintf(w, "\tstate %s flags <%v>\n", stateString(flags&iface.FlagUp != 0), flags)
	}
	if mtu, err := i.MTU(); err == nil {
		fmt.Fprintf(w, "\tmtu %d\n", mtu)
	}
	if hw, err := i.Physical(); err == nil {
		fmt.Fprintf(w, "\tether %s\n", hw)
	}
	if stat != nil {
		fmt.Fprintf(w, "\tRX packets %d bytes %d errors %d dropped %d\n", stat.PacketsRecv, stat.BytesRecv, stat.Errin, stat.Dropin)
		fmt.Fprintf(w, "\tTX packets %d bytes %d errors %d dropped %d\n", stat.PacketsSent, stat.BytesSent, stat.Errout, stat.Dropout)
	}
}

func showRun(name string) error {
	i, err := iface.Open(name)
	if err != nil {
		return err
	}
	stat, err := counters(name)
	if err != nil {
		log.Warningf("failed to read counters: %v", err)
	}
	printShow(os.Stdout, i, stat)
	return nil
}

var showCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show details of one interface",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		ConfigureVerbosity()

		if err := showRun(args[0]); err != nil {
			log.Fatal(err)
		}
	},
}
