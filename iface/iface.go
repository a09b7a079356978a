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

/*
Package iface reads and changes the state of Linux network interfaces
through the SIOC* ioctls on short-lived control-plane sockets.

An Interface is a resolved name/index pair. It holds no kernel resources:
every operation opens its own socket, issues its requests and closes the
socket before returning.
*/
package iface

import (
	"errors"

	"github.com/facebook/ifctl/ifreq"
	log "github.com/sirupsen/logrus"
)

// Interface is a network interface resolved by name
type Interface struct {
	name   [ifreq.IFNAMSIZ]byte
	index  uint32
	dialer Dialer
}

// Name returns the interface name as known to the kernel
func (i *Interface) Name() string {
	return ifreq.ByteSliceToString(i.name[:])
}

// Index returns the kernel interface index resolved at open time
func (i *Interface) Index() uint32 {
	return i.index
}

// String implements fmt.Stringer interface. It never queries the kernel,
// see Summary for that.
func (i *Interface) String() string {
	return i.Name()
}

// Controller resolves interfaces using its Dialer for every request
type Controller struct {
	dialer Dialer
}

// New returns a Controller which dials control-plane sockets with d
func New(d Dialer) *Controller {
	return &Controller{dialer: d}
}

// Default is the Controller used by the package level functions
var Default = New(SocketDialer{})

// Open resolves name using the Default controller
func Open(name string) (*Interface, error) {
	return Default.Open(name)
}

// Open validates name and resolves its interface index.
// Invalid names are rejected before any socket is created.
func (c *Controller) Open(name string) (*Interface, error) {
	const op = "Open"
	ifr, err := ifreq.NewIfreq(name)
	if err != nil {
		return nil, &OpError{Op: op, Name: name, Kind: KindEncoding, Err: err}
	}
	err = exchange(c.dialer, op, name, func(conn Conn) error {
		return request(conn, op, ifreq.SIOCGIFINDEX, ifr)
	})
	if err != nil {
		return nil, err
	}

	i := &Interface{index: ifr.Uint32(), dialer: c.dialer}
	copy(i.name[:], name)
	log.Debugf("%s: index %d", name, i.index)
	return i, nil
}

// exchange dials a control-plane socket, runs fn on it and closes it on
// every path. A close failure is reported even when fn succeeded.
func exchange(d Dialer, op, name string, fn func(conn Conn) error) (err error) {
	conn, err := d.Dial()
	if err != nil {
		return &OpError{Op: op, Name: name, Kind: KindSocket, Err: err}
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			closeErr := &OpError{Op: op, Name: name, Kind: KindClose, Err: cerr}
			if err == nil {
				err = closeErr
			} else {
				err = errors.Join(err, closeErr)
			}
		}
	}()
	return fn(conn)
}

// request issues exactly one ioctl
func request(conn Conn, op string, req uint, ifr *ifreq.Ifreq) error {
	log.Debugf("%s: %s", ifr.Name(), ifreq.RequestName(req))
	if err := conn.Ioctl(req, ifr); err != nil {
		return requestError(op, ifr.Name(), req, err)
	}
	return nil
}
