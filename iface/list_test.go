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
	"errors"
	"testing"

	"github.com/facebook/ifctl/ifreq"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fillIfconf returns a DoAndReturn func writing one record per name like SIOCGIFCONF does
func fillIfconf(names ...string) func(buf []byte) (int, error) {
	return func(buf []byte) (int, error) {
		for i, name := range names {
			copy(buf[i*ifreq.SizeofIfreq:], name)
		}
		return len(names) * ifreq.SizeofIfreq, nil
	}
}

func TestListTwoPhase(t *testing.T) {
	c, dialer, conn := setupMocks(t)
	gomock.InOrder(
		dialer.EXPECT().Dial().Return(conn, nil),
		conn.EXPECT().Ifconf(nil).Return(2*ifreq.SizeofIfreq, nil),
		conn.EXPECT().Ifconf(gomock.Len(2*ifreq.SizeofIfreq)).DoAndReturn(fillIfconf("lo", "eth0")),
		conn.EXPECT().Close().Return(nil),
	)
	expectOpen(t, dialer, conn, "lo", 1)
	expectOpen(t, dialer, conn, "eth0", 3)

	results, err := c.List()
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "lo", results[0].Name)
	require.NoError(t, results[0].Err)
	require.Equal(t, uint32(1), results[0].Interface.Index())
	require.Equal(t, "eth0", results[1].Name)
	require.NoError(t, results[1].Err)
	require.Equal(t, uint32(3), results[1].Interface.Index())
}

func TestListIsolatesResolutionFailure(t *testing.T) {
	c, dialer, conn := setupMocks(t)
	gomock.InOrder(
		dialer.EXPECT().Dial().Return(conn, nil),
		conn.EXPECT().Ifconf(nil).Return(3*ifreq.SizeofIfreq, nil),
		conn.EXPECT().Ifconf(gomock.Any()).DoAndReturn(fillIfconf("lo", "veth9", "eth0")),
		conn.EXPECT().Close().Return(nil),
	)
	expectOpen(t, dialer, conn, "lo", 1)
	// veth9 is removed between the two phases
	gomock.InOrder(
		dialer.EXPECT().Dial().Return(conn, nil),
		conn.EXPECT().Ioctl(uint(ifreq.SIOCGIFINDEX), gomock.Any()).Return(ifreq.ENODEV),
		conn.EXPECT().Close().Return(nil),
	)
	expectOpen(t, dialer, conn, "eth0", 3)

	results, err := c.List()
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.NoError(t, results[0].Err)
	require.Equal(t, "veth9", results[1].Name)
	require.Nil(t, results[1].Interface)
	require.ErrorIs(t, results[1].Err, ifreq.ENODEV)
	require.NoError(t, results[2].Err)
	require.Equal(t, "eth0", results[2].Interface.Name())
}

func TestListEmpty(t *testing.T) {
	c, dialer, conn := setupMocks(t)
	gomock.InOrder(
		dialer.EXPECT().Dial().Return(conn, nil),
		conn.EXPECT().Ifconf(nil).Return(0, nil),
		conn.EXPECT().Close().Return(nil),
	)
	results, err := c.List()
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestListProbeFailure(t *testing.T) {
	c, dialer, conn := setupMocks(t)
	gomock.InOrder(
		dialer.EXPECT().Dial().Return(conn, nil),
		conn.EXPECT().Ifconf(nil).Return(0, ifreq.EINVAL),
		conn.EXPECT().Close().Return(nil),
	)
	results, err := c.List()
	require.Nil(t, results)
	require.ErrorIs(t, err, ifreq.EINVAL)
	require.Equal(t, "List: SIOCGIFCONF: invalid argument", err.Error())
}

func TestListBogusLength(t *testing.T) {
	c, dialer, conn := setupMocks(t)
	gomock.InOrder(
		dialer.EXPECT().Dial().Return(conn, nil),
		conn.EXPECT().Ifconf(nil).Return(ifreq.SizeofIfreq, nil),
		conn.EXPECT().Ifconf(gomock.Any()).Return(4*ifreq.SizeofIfreq, nil),
		conn.EXPECT().Close().Return(nil),
	)
	_, err := c.List()
	require.Error(t, err)
}

func TestListFakeKernel(t *testing.T) {
	k := newTestKernel()
	results, err := New(k).List()
	require.NoError(t, err)
	// tun0 has no IPv4 address so SIOCGIFCONF doesn't report it
	require.Len(t, results, 2)
	require.Equal(t, "lo", results[0].Name)
	require.Equal(t, "eth0", results[1].Name)
	require.Zero(t, k.open)
}

type stubLister struct {
	names []string
	err   error
}

func (s stubLister) Links() ([]string, error) {
	return s.names, s.err
}

func TestListAll(t *testing.T) {
	k := newTestKernel()
	results, err := New(k).ListAll(stubLister{names: []string{"lo", "eth0", "tun0", "gone0"}})
	require.NoError(t, err)
	require.Len(t, results, 4)
	require.Equal(t, uint32(7), results[2].Interface.Index())
	require.ErrorIs(t, results[3].Err, ifreq.ENODEV)
	require.Zero(t, k.open)
}

func TestListAllListerFailure(t *testing.T) {
	c, _, _ := setupMocks(t)
	_, err := c.ListAll(stubLister{err: errors.New("netlink is down")})
	require.EqualError(t, err, "listing links: netlink is down")
}
