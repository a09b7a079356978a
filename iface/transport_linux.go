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

	"github.com/facebook/ifctl/ifreq"
)

// SocketDialer opens AF_INET datagram sockets for ioctl requests
type SocketDialer struct{}

// Dial creates a new control-plane socket
func (SocketDialer) Dial() (Conn, error) {
	fd, err := ifreq.Socket(ifreq.AF_INET, ifreq.SOCK_DGRAM|ifreq.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create socket for ioctl: %w", err)
	}
	return &socketConn{fd: fd}, nil
}

type socketConn struct {
	fd int
}

func (c *socketConn) Ioctl(req uint, ifr *ifreq.Ifreq) error {
	return ifreq.IoctlIfreq(c.fd, req, ifr)
}

func (c *socketConn) Ifconf(buf []byte) (int, error) {
	return ifreq.IoctlIfconf(c.fd, buf)
}

func (c *socketConn) Close() error {
	return ifreq.Close(c.fd)
}
