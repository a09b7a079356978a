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
	log "github.com/sirupsen/logrus"
)

// Up brings the interface administratively up
func (i *Interface) Up() error {
	return i.setFlag("Up", FlagUp, true)
}

// Down brings the interface administratively down
func (i *Interface) Down() error {
	return i.setFlag("Down", FlagUp, false)
}

// setFlag reads the current flags and writes them back with only flag changed.
// Nothing is written if flag already has the wanted value.
func (i *Interface) setFlag(op string, flag Flags, on bool) error {
	ifr, err := i.newRequest(op, nil)
	if err != nil {
		return err
	}
	return exchange(i.dialer, op, i.Name(), func(conn Conn) error {
		if err := request(conn, op, ifreq.SIOCGIFFLAGS, ifr); err != nil {
			return err
		}
		cur := Flags(ifr.Uint16())
		want := cur &^ flag
		if on {
			want = cur | flag
		}
		if want == cur {
			log.Debugf("%s: flags %v unchanged", i.Name(), cur)
			return nil
		}
		if err := flagsPayload(want).apply(ifr); err != nil {
			return &OpError{Op: op, Name: i.Name(), Kind: KindEncoding, Err: err}
		}
		return request(conn, op, ifreq.SIOCSIFFLAGS, ifr)
	})
}

// set issues a single write request. The payload is validated before dialing.
func (i *Interface) set(op string, req uint, p payload) error {
	ifr, err := i.newRequest(op, p)
	if err != nil {
		return err
	}
	return exchange(i.dialer, op, i.Name(), func(conn Conn) error {
		return request(conn, op, req, ifr)
	})
}

// SetIPv4 sets the primary IPv4 address
func (i *Interface) SetIPv4(addr netip.Addr) error {
	return i.set("SetIPv4", ifreq.SIOCSIFADDR, inet4Payload(addr))
}

// SetNetmask sets the netmask of the primary IPv4 address
func (i *Interface) SetNetmask(mask netip.Addr) error {
	return i.set("SetNetmask", ifreq.SIOCSIFNETMASK, inet4Payload(mask))
}

// SetBroadcast sets the broadcast address of the primary IPv4 address
func (i *Interface) SetBroadcast(addr netip.Addr) error {
	return i.set("SetBroadcast", ifreq.SIOCSIFBRDADDR, inet4Payload(addr))
}

// SetPhysical sets the Ethernet hardware address. Most drivers require the
// interface to be down.
func (i *Interface) SetPhysical(hw net.HardwareAddr) error {
	return i.set("SetPhysical", ifreq.SIOCSIFHWADDR, hardwarePayload(hw))
}

// SetMTU sets the interface MTU
func (i *Interface) SetMTU(mtu int) error {
	return i.set("SetMTU", ifreq.SIOCSIFMTU, mtuPayload(mtu))
}

// RemoveIPv4 removes the primary IPv4 address by assigning 0.0.0.0 and
// returns the address it replaced. If no address is configured nothing is
// written and the error matches ErrNotConfigured.
func (i *Interface) RemoveIPv4() (netip.Addr, error) {
	const op = "RemoveIPv4"
	ifr, err := i.newRequest(op, nil)
	if err != nil {
		return netip.Addr{}, err
	}
	var prev netip.Addr
	err = exchange(i.dialer, op, i.Name(), func(conn Conn) error {
		if err := request(conn, op, ifreq.SIOCGIFADDR, ifr); err != nil {
			return err
		}
		addr, err := ifr.Inet4Addr()
		if err != nil {
			return &OpError{Op: op, Name: i.Name(), Kind: KindRequest, Req: ifreq.SIOCGIFADDR, Err: err}
		}
		if err := inet4Payload(netip.IPv4Unspecified()).apply(ifr); err != nil {
			return &OpError{Op: op, Name: i.Name(), Kind: KindEncoding, Err: err}
		}
		if err := request(conn, op, ifreq.SIOCSIFADDR, ifr); err != nil {
			return err
		}
		prev = addr
		return nil
	})
	if err != nil {
		return netip.Addr{}, err
	}
	log.Debugf("%s: removed %v", i.Name(), prev)
	return prev, nil
}
