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
	"net"
	"net/netip"

	"github.com/facebook/ifctl/ifreq"
)

// query issues a single read-only request on its own socket
func (i *Interface) query(op string, req uint) (*ifreq.Ifreq, error) {
	ifr, err := i.newRequest(op, nil)
	if err != nil {
		return nil, err
	}
	err = exchange(i.dialer, op, i.Name(), func(conn Conn) error {
		return request(conn, op, req, ifr)
	})
	if err != nil {
		return nil, err
	}
	return ifr, nil
}

func (i *Interface) inet4(op string, req uint) (netip.Addr, error) {
	ifr, err := i.query(op, req)
	if err != nil {
		return netip.Addr{}, err
	}
	addr, err := ifr.Inet4Addr()
	if err != nil {
		return netip.Addr{}, &OpError{Op: op, Name: i.Name(), Kind: KindRequest, Req: req, Err: err}
	}
	return addr, nil
}

// Flags returns the interface flags
func (i *Interface) Flags() (Flags, error) {
	ifr, err := i.query("Flags", ifreq.SIOCGIFFLAGS)
	if err != nil {
		return 0, err
	}
	return Flags(ifr.Uint16()), nil
}

// IsUp reports whether the interface is administratively up
func (i *Interface) IsUp() (bool, error) {
	f, err := i.Flags()
	if err != nil {
		return false, err
	}
	return f&FlagUp != 0, nil
}

// IPv4 returns the primary IPv4 address.
// An interface without one yields an error matching ErrNotConfigured.
func (i *Interface) IPv4() (netip.Addr, error) {
	return i.inet4("IPv4", ifreq.SIOCGIFADDR)
}

// Netmask returns the netmask of the primary IPv4 address
func (i *Interface) Netmask() (netip.Addr, error) {
	return i.inet4("Netmask", ifreq.SIOCGIFNETMASK)
}

// Broadcast returns the broadcast address of the primary IPv4 address.
// The kernel reports 0.0.0.0 when none is set, that is returned as ErrNotConfigured.
func (i *Interface) Broadcast() (netip.Addr, error) {
	const op = "Broadcast"
	addr, err := i.inet4(op, ifreq.SIOCGIFBRDADDR)
	if err != nil {
		return netip.Addr{}, err
	}
	if addr.IsUnspecified() {
		return netip.Addr{}, &OpError{Op: op, Name: i.Name(), Kind: KindRequest, Req: ifreq.SIOCGIFBRDADDR, Err: ErrNotConfigured}
	}
	return addr, nil
}

// Physical returns the hardware address.
// Links without one (ARPHRD_NONE, i.e. tun) yield ErrNotConfigured.
func (i *Interface) Physical() (net.HardwareAddr, error) {
	const op = "Physical"
	ifr, err := i.query(op, ifreq.SIOCGIFHWADDR)
	if err != nil {
		return nil, err
	}
	family, hw := ifr.HardwareAddr()
	if family == ifreq.ARPHRD_NONE {
		return nil, &OpError{Op: op, Name: i.Name(), Kind: KindRequest, Req: ifreq.SIOCGIFHWADDR, Err: ErrNotConfigured}
	}
	return hw, nil
}

// MTU returns the interface MTU
func (i *Interface) MTU() (int, error) {
	ifr, err := i.query("MTU", ifreq.SIOCGIFMTU)
	if err != nil {
		return 0, err
	}
	return int(ifr.Int32()), nil
}
