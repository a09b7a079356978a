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
	"net/netip"

	"github.com/facebook/ifctl/iface"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// status prefixes, colored unless stdout isn't a terminal
func okString() string { return color.GreenString("[ OK ]") }
func failString() string { return color.RedString("[FAIL]") }

func stateString(up bool) string {
	if up {
		return color.GreenString("UP")
	}
	return color.RedString("DOWN")
}

// addrString renders an optional address the way a table cell wants it
func addrString(addr netip.Addr, err error) string {
	switch {
	case err == nil:
		return addr.String()
	case iface.IsNotConfigured(err):
		return "-"
	default:
		return color.RedString("error")
	}
}

func listRow(r iface.Result) []string {
	if r.Err != nil {
		return []string{r.Name, "", "", "", "", "", "", "", "", r.Err.Error()}
	}
	i := r.Interface
	row := []string{i.Name(), fmt.Sprintf("%d", i.Index())}
	flags, err := i.Flags()
	if err != nil {
		return append(row, "", "", "", "", "", "", "", err.Error())
	}
	row = append(row, stateString(flags&iface.FlagUp != 0), flags.String())
	mtu := ""
	if v, err := i.MTU(); err == nil {
		mtu = fmt.Sprintf("%d", v)
	}
	hw := "-"
	if v, err := i.Physical(); err == nil {
		hw = v.String()
	}
	row = append(row,
		mtu,
		hw,
		addrString(i.IPv4()),
		addrString(i.Netmask()),
		addrString(i.Broadcast()),
		"",
	)
	return row
}

func writeTable(w io.Writer, results []iface.Result) error {
	table := tablewriter.NewWriter(w)
	table.Header("name", "index", "state", "flags", "mtu", "hwaddr", "inet", "netmask", "broadcast", "error")
	for _, r := range results {
		if err := table.Append(listRow(r)); err != nil {
			return err
		}
	}
	return table.Render()
}
