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
	"fmt"
	"net/netip"
)

// Summary queries and formats the IPv4 address, netmask and broadcast
// address. Each value fails on its own and is rendered in place:
//
//	eth0 (2): inet 10.0.0.2 netmask 255.255.255.0 broadcast 10.0.0.255
//	eth1 (3): inet <not configured> netmask <not configured> broadcast <not configured>
func (i *Interface) Summary() string {
	return fmt.Sprintf("%s (%d): inet %s netmask %s broadcast %s",
		i.Name(), i.Index(),
		describe(i.IPv4()),
		describe(i.Netmask()),
		describe(i.Broadcast()),
	)
}

func describe(addr netip.Addr, err error) string {
	switch {
	case err == nil:
		return addr.String()
	case IsNotConfigured(err):
		return "<not configured>"
	default:
		return fmt.Sprintf("<error: %v>", err)
	}
}
