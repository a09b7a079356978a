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
	"github.com/facebook/ifctl/ifconfig"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	setIPv4Flag      string
	setNetmaskFlag   string
	setBroadcastFlag string
	setHWAddrFlag    string
	setMTUFlag       int
)

func init() {
	RootCmd.AddCommand(setCmd)
	setCmd.Flags().StringVar(&setIPv4Flag, "ipv4", "", "primary IPv4 address")
	setCmd.Flags().StringVar(&setNetmaskFlag, "netmask", "", "netmask, i.e. 255.255.255.0")
	setCmd.Flags().StringVar(&setBroadcastFlag, "broadcast", "", "broadcast address")
	setCmd.Flags().StringVar(&setHWAddrFlag, "hwaddr", "", "Ethernet hardware address. Most drivers want the interface down first")
	setCmd.Flags().IntVar(&setMTUFlag, "mtu", 0, "MTU in bytes")
}

func setRun(c *ifconfig.InterfaceConfig) error {
	r := ifconfig.ApplyInterface(ifconfig.ControllerOpener(iface.Default), c)
	if r.Err != nil {
		return r.Err
	}
	if len(r.Changed) == 0 {
		return fmt.Errorf("nothing to set, see --help")
	}
	fmt.Println(okString(), c.Name, r.Changed)
	return nil
}

var setCmd = &cobra.Command{
	Use:   "set NAME",
	Short: "Set addresses, hardware address or MTU of an interface",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		ConfigureVerbosity()

		c := &ifconfig.InterfaceConfig{
			Name:      args[0],
			IPv4:      setIPv4Flag,
			Netmask:   setNetmaskFlag,
			Broadcast: setBroadcastFlag,
			HWAddr:    setHWAddrFlag,
			MTU:       setMTUFlag,
		}
		if err := setRun(c); err != nil {
			log.Fatal(err)
		}
	},
}
