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

package iface

import (
	"strings"
)

// Flags represents a value of ifr_flags
type Flags uint16

// Interface flags as defined in linux/if.h
const (
	FlagUp Flags = 1 << iota
	FlagBroadcast
	FlagDebug
	FlagLoopback
	FlagPointToPoint
	FlagNoTrailers
	FlagRunning
	FlagNoARP
	FlagPromisc
	FlagAllMulti
	FlagMaster
	FlagSlave
	FlagMulticast
	FlagPortSel
	FlagAutoMedia
	FlagDynamic
)

var flagNames = []string{
	"up",           // IFF_UP
	"broadcast",    // IFF_BROADCAST
	"debug",        // IFF_DEBUG
	"loopback",     // IFF_LOOPBACK
	"pointtopoint", // IFF_POINTOPOINT
	"notrailers",   // IFF_NOTRAILERS
	"running",      // IFF_RUNNING
	"noarp",        // IFF_NOARP
	"promisc",      // IFF_PROMISC
	"allmulti",     // IFF_ALLMULTI
	"master",       // IFF_MASTER
	"slave",        // IFF_SLAVE
	"multicast",    // IFF_MULTICAST
	"portsel",      // IFF_PORTSEL
	"automedia",    // IFF_AUTOMEDIA
	"dynamic",      // IFF_DYNAMIC
}

// String implements fmt.Stringer interface
func (f Flags) String() string {
	names := []string{}
	for i, name := range flagNames {
		if f&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, "|")
}
