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
	"math"
	"net"
	"net/netip"

	"github.com/facebook/ifctl/ifreq"
)

// payload fills the request union for one operation.
// Queries use no payload and get a zeroed union.
type payload interface {
	apply(ifr *ifreq.Ifreq) error
}

type flagsPayload Flags

func (p flagsPayload) apply(ifr *ifreq.Ifreq) error {
	ifr.SetUint16(uint16(p))
	return nil
}

type inet4Payload netip.Addr

func (p inet4Payload) apply(ifr *ifreq.Ifreq) error {
	return ifr.SetInet4Addr(netip.Addr(p))
}

type hardwarePayload net.HardwareAddr

func (p hardwarePayload) apply(ifr *ifreq.Ifreq) error {
	return ifr.SetHardwareAddr(ifreq.ARPHRD_ETHER, net.HardwareAddr(p))
}

type mtuPayload int

func (p mtuPayload) apply(ifr *ifreq.Ifreq) error {
	if p <= 0 || p > math.MaxInt32 {
		return fmt.Errorf("mtu %d out of range", int(p))
	}
	ifr.SetInt32(int32(p))
	return nil
}

// newRequest builds the request descriptor for op addressed to the handle's name
func (i *Interface) newRequest(op string, p payload) (*ifreq.Ifreq, error) {
	ifr, err := ifreq.NewIfreq(i.Name())
	if err == nil && p != nil {
		err = p.apply(ifr)
	}
	if err != nil {
		return nil, &OpError{Op: op, Name: i.Name(), Kind: KindEncoding, Err: err}
	}
	return ifr, nil
}
