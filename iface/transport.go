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
	"github.com/facebook/ifctl/ifreq"
)

//go:generate mockgen -source=transport.go -destination=transport_mock.go -package=iface

// Dialer opens control-plane sockets. Every operation dials its own socket
// and closes it before returning.
type Dialer interface {
	Dial() (Conn, error)
}

// Conn is a control-plane socket. It only addresses requests to the kernel,
// no data is ever sent or received on it.
type Conn interface {
	// Ioctl issues a single request for the interface named in ifr.
	// Queries fill ifr in place.
	Ioctl(req uint, ifr *ifreq.Ifreq) error
	// Ifconf issues SIOCGIFCONF over buf and returns the byte length
	// reported by the kernel. A nil buf asks for the size needed.
	Ifconf(buf []byte) (int, error)
	// Close releases the socket
	Close() error
}
