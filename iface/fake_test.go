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
	"sync"

	"github.com/facebook/ifctl/ifreq"
)

// fakeLink is the state of one interface inside fakeKernel
type fakeLink struct {
	index    uint32
	flags    Flags
	addr     netip.Addr
	mask     netip.Addr
	brd      netip.Addr
	hwFamily uint16
	hw       net.HardwareAddr
	mtu      int32
}

// fakeKernel answers SIOC* requests from memory, close enough to
// net/ipv4/devinet.c for the properties tested here
type fakeKernel struct {
	sync.Mutex
	links map[string]*fakeLink
	order []string
	// open counts sockets not closed yet
	open  int
	dials int
}

func newFakeKernel() *fakeKernel {
	return &fakeKernel{links: map[string]*fakeLink{}}
}

func (k *fakeKernel) add(name string, l *fakeLink) {
	k.links[name] = l
	k.order = append(k.order, name)
}

func (k *fakeKernel) Dial() (Conn, error) {
	k.Lock()
	defer k.Unlock()
	k.open++
	k.dials++
	return &fakeConn{k: k}, nil
}

type fakeConn struct {
	k      *fakeKernel
	closed bool
}

func (c *fakeConn) Close() error {
	c.k.Lock()
	defer c.k.Unlock()
	if c.closed {
		return ifreq.Errno(9) // EBADF
	}
	c.closed = true
	c.k.open--
	return nil
}

func (c *fakeConn) Ifconf(buf []byte) (int, error) {
	c.k.Lock()
	defer c.k.Unlock()
	names := []string{}
	for _, name := range c.k.order {
		if l, ok := c.k.links[name]; ok && l.addr.IsValid() {
			names = append(names, name)
		}
	}
	if buf == nil {
		return len(names) * ifreq.SizeofIfreq, nil
	}
	n := 0
	for _, name := range names {
		if n+ifreq.SizeofIfreq > len(buf) {
			break
		}
		copy(buf[n:n+ifreq.IFNAMSIZ], name)
		n += ifreq.SizeofIfreq
	}
	return n, nil
}

func (c *fakeConn) Ioctl(req uint, ifr *ifreq.Ifreq) error {
	c.k.Lock()
	defer c.k.Unlock()
	l, ok := c.k.links[ifr.Name()]
	if !ok {
		return ifreq.ENODEV
	}
	switch req {
	case ifreq.SIOCGIFINDEX:
		ifr.SetUint32(l.index)
	case ifreq.SIOCGIFFLAGS:
		ifr.SetUint16(uint16(l.flags))
	case ifreq.SIOCSIFFLAGS:
		l.flags = Flags(ifr.Uint16())
	case ifreq.SIOCGIFMTU:
		ifr.SetInt32(l.mtu)
	case ifreq.SIOCSIFMTU:
		l.mtu = ifr.Int32()
	case ifreq.SIOCGIFHWADDR:
		return ifr.SetHardwareAddr(l.hwFamily, l.hw)
	case ifreq.SIOCSIFHWADDR:
		l.hwFamily, l.hw = ifr.HardwareAddr()
	case ifreq.SIOCGIFADDR, ifreq.SIOCGIFNETMASK, ifreq.SIOCGIFBRDADDR:
		if !l.addr.IsValid() {
			return ifreq.EADDRNOTAVAIL
		}
		v := map[uint]netip.Addr{ifreq.SIOCGIFADDR: l.addr, ifreq.SIOCGIFNETMASK: l.mask, ifreq.SIOCGIFBRDADDR: l.brd}[req]
		return ifr.SetInet4Addr(v)
	case ifreq.SIOCSIFADDR:
		a, err := ifr.Inet4Addr()
		if err != nil {
			return ifreq.EINVAL
		}
		if a.IsUnspecified() {
			l.addr, l.mask, l.brd = netip.Addr{}, netip.Addr{}, netip.Addr{}
			return nil
		}
		l.addr = a
		if !l.mask.IsValid() {
			l.mask = netip.AddrFrom4([4]byte{255, 0, 0, 0})
		}
		l.brd = netip.IPv4Unspecified()
	case ifreq.SIOCSIFNETMASK, ifreq.SIOCSIFBRDADDR:
		if !l.addr.IsValid() {
			return ifreq.EADDRNOTAVAIL
		}
		a, err := ifr.Inet4Addr()
		if err != nil {
			return ifreq.EINVAL
		}
		if req == ifreq.SIOCSIFNETMASK {
			l.mask = a
		} else {
			l.brd = a
		}
	default:
		return ifreq.EINVAL
	}
	return nil
}

// newTestKernel has a loopback, a configured ethernet link and a bare tun
func newTestKernel() *fakeKernel {
	k := newFakeKernel()
	k.add("lo", &fakeLink{
		index:    1,
		flags:    FlagUp | FlagLoopback | FlagRunning,
		addr:     netip.MustParseAddr("127.0.0.1"),
		mask:     netip.MustParseAddr("255.0.0.0"),
		brd:      netip.IPv4Unspecified(),
		hwFamily: 772, // ARPHRD_LOOPBACK
		hw:       net.HardwareAddr{0, 0, 0, 0, 0, 0},
		mtu:      65536,
	})
	k.add("eth0", &fakeLink{
		index:    3,
		flags:    FlagUp | FlagBroadcast | FlagRunning | FlagMulticast,
		addr:     netip.MustParseAddr("192.168.26.219"),
		mask:     netip.MustParseAddr("255.255.255.0"),
		brd:      netip.MustParseAddr("192.168.26.255"),
		hwFamily: ifreq.ARPHRD_ETHER,
		hw:       net.HardwareAddr{0x28, 0xd0, 0xea, 0xf2, 0xb3, 0x54},
		mtu:      1500,
	})
	k.add("tun0", &fakeLink{
		index:    7,
		flags:    FlagPointToPoint | FlagNoARP | FlagMulticast,
		hwFamily: ifreq.ARPHRD_NONE,
		hw:       net.HardwareAddr{0, 0, 0, 0, 0, 0},
		mtu:      1500,
	})
	return k
}
