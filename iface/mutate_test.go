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
	"testing"

	"github.com/facebook/ifctl/ifreq"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestUpDownFakeKernel(t *testing.T) {
	k := newTestKernel()
	i := openFake(t, k, "eth0")

	require.NoError(t, i.Down())
	up, err := i.IsUp()
	require.NoError(t, err)
	require.False(t, up)
	// every other flag survives
	require.Equal(t, FlagBroadcast|FlagRunning|FlagMulticast, k.links["eth0"].flags)

	require.NoError(t, i.Up())
	up, err = i.IsUp()
	require.NoError(t, err)
	require.True(t, up)
	require.Equal(t, FlagUp|FlagBroadcast|FlagRunning|FlagMulticast, k.links["eth0"].flags)
	require.Zero(t, k.open)
}

func TestUpIdempotent(t *testing.T) {
	k := newTestKernel()
	i := openFake(t, k, "tun0")

	require.NoError(t, i.Up())
	once := k.links["tun0"].flags
	require.NoError(t, i.Up())
	require.Equal(t, once, k.links["tun0"].flags)
	require.Equal(t, FlagUp|FlagPointToPoint|FlagNoARP|FlagMulticast, once)
}

func setupOpened(t *testing.T) (*Interface, *MockDialer, *MockConn) {
	c, dialer, conn := setupMocks(t)
	expectOpen(t, dialer, conn, "eth0", 3)
	i, err := c.Open("eth0")
	require.NoError(t, err)
	return i, dialer, conn
}

var upDownTestcases = []struct {
	name  string
	up    bool
	cur   Flags
	want  Flags
	write bool
}{
	{name: "up from down", up: true, cur: FlagBroadcast | FlagMulticast, want: FlagUp | FlagBroadcast | FlagMulticast, write: true},
	{name: "up when up", up: true, cur: FlagUp | FlagRunning},
	{name: "down from up", up: false, cur: FlagUp | FlagRunning | FlagPromisc, want: FlagRunning | FlagPromisc, write: true},
	{name: "down when down", up: false, cur: FlagLoopback},
}

func TestUpDownReadModifyWrite(t *testing.T) {
	for _, tc := range upDownTestcases {
		t.Run(tc.name, func(t *testing.T) {
			i, dialer, conn := setupOpened(t)
			calls := []any{
				dialer.EXPECT().Dial().Return(conn, nil),
				conn.EXPECT().Ioctl(uint(ifreq.SIOCGIFFLAGS), gomock.Any()).DoAndReturn(func(_ uint, ifr *ifreq.Ifreq) error {
					ifr.SetUint16(uint16(tc.cur))
					return nil
				}),
			}
			if tc.write {
				calls = append(calls, conn.EXPECT().Ioctl(uint(ifreq.SIOCSIFFLAGS), gomock.Any()).DoAndReturn(func(_ uint, ifr *ifreq.Ifreq) error {
					require.Equal(t, "eth0", ifr.Name())
					require.Equal(t, tc.want, Flags(ifr.Uint16()))
					return nil
				}))
			}
			calls = append(calls, conn.EXPECT().Close().Return(nil))
			gomock.InOrder(calls...)

			if tc.up {
				require.NoError(t, i.Up())
			} else {
				require.NoError(t, i.Down())
			}
		})
	}
}

func TestUpPermissionDenied(t *testing.T) {
	i, dialer, conn := setupOpened(t)
	gomock.InOrder(
		dialer.EXPECT().Dial().Return(conn, nil),
		conn.EXPECT().Ioctl(uint(ifreq.SIOCGIFFLAGS), gomock.Any()).Return(nil),
		conn.EXPECT().Ioctl(uint(ifreq.SIOCSIFFLAGS), gomock.Any()).Return(ifreq.Errno(1)),
		conn.EXPECT().Close().Return(nil),
	)
	err := i.Up()
	require.ErrorIs(t, err, ifreq.Errno(1))
	require.Equal(t, "Up eth0: SIOCSIFFLAGS: operation not permitted", err.Error())
}

func TestSetters(t *testing.T) {
	k := newTestKernel()
	i := openFake(t, k, "eth0")

	require.NoError(t, i.SetIPv4(netip.MustParseAddr("10.1.2.3")))
	require.NoError(t, i.SetNetmask(netip.MustParseAddr("255.255.0.0")))
	require.NoError(t, i.SetBroadcast(netip.MustParseAddr("10.1.255.255")))
	hw := net.HardwareAddr{0x02, 0, 0, 0, 0, 0x01}
	require.NoError(t, i.SetPhysical(hw))
	require.NoError(t, i.SetMTU(9000))

	addr, err := i.IPv4()
	require.NoError(t, err)
	require.Equal(t, netip.MustParseAddr("10.1.2.3"), addr)
	mask, err := i.Netmask()
	require.NoError(t, err)
	require.Equal(t, netip.MustParseAddr("255.255.0.0"), mask)
	brd, err := i.Broadcast()
	require.NoError(t, err)
	require.Equal(t, netip.MustParseAddr("10.1.255.255"), brd)
	got, err := i.Physical()
	require.NoError(t, err)
	require.Equal(t, hw, got)
	require.Equal(t, uint16(ifreq.ARPHRD_ETHER), k.links["eth0"].hwFamily)
	mtu, err := i.MTU()
	require.NoError(t, err)
	require.Equal(t, 9000, mtu)
	require.Zero(t, k.open)
}

func TestSetIPv4Payload(t *testing.T) {
	i, dialer, conn := setupOpened(t)
	gomock.InOrder(
		dialer.EXPECT().Dial().Return(conn, nil),
		conn.EXPECT().Ioctl(uint(ifreq.SIOCSIFADDR), gomock.Any()).DoAndReturn(func(_ uint, ifr *ifreq.Ifreq) error {
			require.Equal(t, "eth0", ifr.Name())
			addr, err := ifr.Inet4Addr()
			require.NoError(t, err)
			require.Equal(t, netip.MustParseAddr("192.168.26.219"), addr)
			return nil
		}),
		conn.EXPECT().Close().Return(nil),
	)
	require.NoError(t, i.SetIPv4(netip.MustParseAddr("::ffff:192.168.26.219")))
}

func TestSettersRejectInvalidInputWithoutDialing(t *testing.T) {
	// setupOpened leaves no further expectations: any Dial fails the test
	i, _, _ := setupOpened(t)
	v6 := netip.MustParseAddr("2001:db8::1")

	for name, err := range map[string]error{
		"SetIPv4":      i.SetIPv4(v6),
		"SetNetmask":   i.SetNetmask(netip.Addr{}),
		"SetBroadcast": i.SetBroadcast(v6),
		"SetPhysical":  i.SetPhysical(net.HardwareAddr{1, 2, 3}),
		"SetMTU":       i.SetMTU(0),
		"SetMTU neg":   i.SetMTU(-5),
	} {
		kind, ok := KindOf(err)
		require.True(t, ok, name)
		require.Equal(t, KindEncoding, kind, name)
	}
}

func TestSetNetmaskWithoutAddress(t *testing.T) {
	k := newTestKernel()
	i := openFake(t, k, "tun0")
	err := i.SetNetmask(netip.MustParseAddr("255.255.255.0"))
	require.True(t, IsNotConfigured(err))
}

func TestRemoveIPv4(t *testing.T) {
	k := newTestKernel()
	i := openFake(t, k, "eth0")

	prev, err := i.RemoveIPv4()
	require.NoError(t, err)
	require.Equal(t, netip.MustParseAddr("192.168.26.219"), prev)

	_, err = i.IPv4()
	require.True(t, IsNotConfigured(err))

	// nothing left to remove
	_, err = i.RemoveIPv4()
	require.True(t, IsNotConfigured(err))
	require.Zero(t, k.open)
}

func TestRemoveIPv4WritesZeroAddress(t *testing.T) {
	i, dialer, conn := setupOpened(t)
	gomock.InOrder(
		dialer.EXPECT().Dial().Return(conn, nil),
		conn.EXPECT().Ioctl(uint(ifreq.SIOCGIFADDR), gomock.Any()).DoAndReturn(func(_ uint, ifr *ifreq.Ifreq) error {
			return ifr.SetInet4Addr(netip.MustParseAddr("10.0.0.2"))
		}),
		conn.EXPECT().Ioctl(uint(ifreq.SIOCSIFADDR), gomock.Any()).DoAndReturn(func(_ uint, ifr *ifreq.Ifreq) error {
			addr, err := ifr.Inet4Addr()
			require.NoError(t, err)
			require.Equal(t, netip.IPv4Unspecified(), addr)
			return nil
		}),
		conn.EXPECT().Close().Return(nil),
	)
	prev, err := i.RemoveIPv4()
	require.NoError(t, err)
	require.Equal(t, netip.MustParseAddr("10.0.0.2"), prev)
}

func TestRemoveIPv4WriteFailure(t *testing.T) {
	i, dialer, conn := setupOpened(t)
	gomock.InOrder(
		dialer.EXPECT().Dial().Return(conn, nil),
		conn.EXPECT().Ioctl(uint(ifreq.SIOCGIFADDR), gomock.Any()).DoAndReturn(func(_ uint, ifr *ifreq.Ifreq) error {
			return ifr.SetInet4Addr(netip.MustParseAddr("10.0.0.2"))
		}),
		conn.EXPECT().Ioctl(uint(ifreq.SIOCSIFADDR), gomock.Any()).Return(ifreq.Errno(1)),
		conn.EXPECT().Close().Return(nil),
	)
	prev, err := i.RemoveIPv4()
	require.False(t, prev.IsValid())
	require.ErrorIs(t, err, ifreq.Errno(1))
}
