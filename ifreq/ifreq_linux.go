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
Package ifreq is a type-safe wrapper around the kernel's struct ifreq and
struct ifconf, the records used by the SIOC* network device ioctls described
in netdevice(7).

Field offsets and union layout stay inside this package.
*/
package ifreq

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strings"
)

// HardwareAddrLen is the length of an Ethernet hardware address
const HardwareAddrLen = 6

// sockaddr layout inside the ifr_ifru union
const (
	sockaddrFamilyOff = 0
	sockaddrDataOff   = 2 // sa_data
	sockaddrInet4Off  = 4 // sin_addr, sa_data[2:6]
)

// Errors returned while building or decoding requests
var (
	ErrInvalidName     = errors.New("invalid interface name")
	ErrNameEmpty       = fmt.Errorf("%w: empty name", ErrInvalidName)
	ErrNameNUL         = fmt.Errorf("%w: name contains NUL byte", ErrInvalidName)
	ErrNameTooLong     = fmt.Errorf("%w: name longer than %d bytes", ErrInvalidName, IFNAMSIZ-1)
	ErrFamily          = errors.New("unexpected address family")
	ErrHardwareAddrLen = fmt.Errorf("hardware address must be %d bytes", HardwareAddrLen)
)

// ifreq mirrors struct ifreq from linux/if.h
type ifreq struct {
	Ifrn [IFNAMSIZ]byte
	Ifru [ifruSize]byte
}

// SizeofIfreq is the size of a single struct ifreq record as laid out by the kernel
const SizeofIfreq = IFNAMSIZ + ifruSize

// An Ifreq carries an interface name and a union of request specific data
// which can be accessed using the Ifreq's methods. To create an Ifreq, use
// the NewIfreq function.
type Ifreq struct{ raw ifreq }

// ValidateName checks that name can be stored in struct ifreq without truncation
func ValidateName(name string) error {
	switch {
	case name == "":
		return ErrNameEmpty
	case strings.IndexByte(name, 0) >= 0:
		return ErrNameNUL
	case len(name) >= IFNAMSIZ:
		return ErrNameTooLong
	}
	return nil
}

// NewIfreq creates an Ifreq with the input network interface name.
// Names that would be truncated or cut short by an embedded NUL are rejected.
func NewIfreq(name string) (*Ifreq, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	var ifr ifreq
	copy(ifr.Ifrn[:], name)

	return &Ifreq{raw: ifr}, nil
}

// Name returns the interface name associated with the Ifreq.
func (ifr *Ifreq) Name() string {
	return ByteSliceToString(ifr.raw.Ifrn[:])
}

// Clear zeroes the request union, keeping the name.
func (ifr *Ifreq) Clear() {
	ifr.raw.Ifru = [ifruSize]byte{}
}

// Uint16 returns the union as ifr_flags.
func (ifr *Ifreq) Uint16() uint16 {
	return binary.NativeEndian.Uint16(ifr.raw.Ifru[:2])
}

// SetUint16 clears the union and stores v as ifr_flags.
func (ifr *Ifreq) SetUint16(v uint16) {
	ifr.Clear()
	binary.NativeEndian.PutUint16(ifr.raw.Ifru[:2], v)
}

// Uint32 returns the union as ifr_ifindex.
func (ifr *Ifreq) Uint32() uint32 {
	return binary.NativeEndian.Uint32(ifr.raw.Ifru[:4])
}

// SetUint32 clears the union and stores v as ifr_ifindex.
func (ifr *Ifreq) SetUint32(v uint32) {
	ifr.Clear()
	binary.NativeEndian.PutUint32(ifr.raw.Ifru[:4], v)
}

// Int32 returns the union as ifr_mtu.
func (ifr *Ifreq) Int32() int32 {
	return int32(ifr.Uint32())
}

// SetInt32 clears the union and stores v as ifr_mtu.
func (ifr *Ifreq) SetInt32(v int32) {
	ifr.SetUint32(uint32(v))
}

func (ifr *Ifreq) family() uint16 {
	return binary.NativeEndian.Uint16(ifr.raw.Ifru[sockaddrFamilyOff:])
}

// Inet4Addr returns the IPv4 address stored in the union's sockaddr_in
// (ifr_addr, ifr_netmask, ifr_broadaddr share the slot).
func (ifr *Ifreq) Inet4Addr() (netip.Addr, error) {
	if f := ifr.family(); f != AF_INET {
		return netip.Addr{}, fmt.Errorf("%w %d, want AF_INET", ErrFamily, f)
	}
	var a [4]byte
	copy(a[:], ifr.raw.Ifru[sockaddrInet4Off:sockaddrInet4Off+4])
	return netip.AddrFrom4(a), nil
}

// SetInet4Addr clears the union and stores addr as an AF_INET sockaddr_in.
// IPv4-mapped IPv6 addresses are unmapped first.
func (ifr *Ifreq) SetInet4Addr(addr netip.Addr) error {
	addr = addr.Unmap()
	if !addr.Is4() {
		return fmt.Errorf("%w: %v is not an IPv4 address", ErrFamily, addr)
	}
	ifr.Clear()
	binary.NativeEndian.PutUint16(ifr.raw.Ifru[sockaddrFamilyOff:], AF_INET)
	a := addr.As4()
	copy(ifr.raw.Ifru[sockaddrInet4Off:], a[:])
	return nil
}

// HardwareAddr returns ifr_hwaddr: the ARPHRD_* family and the first
// HardwareAddrLen bytes of sa_data.
func (ifr *Ifreq) HardwareAddr() (uint16, net.HardwareAddr) {
	hw := make(net.HardwareAddr, HardwareAddrLen)
	copy(hw, ifr.raw.Ifru[sockaddrDataOff:sockaddrDataOff+HardwareAddrLen])
	return ifr.family(), hw
}

// SetHardwareAddr clears the union and stores hw as ifr_hwaddr with the given ARPHRD_* family.
func (ifr *Ifreq) SetHardwareAddr(family uint16, hw net.HardwareAddr) error {
	if len(hw) != HardwareAddrLen {
		return fmt.Errorf("%w, got %d", ErrHardwareAddrLen, len(hw))
	}
	ifr.Clear()
	binary.NativeEndian.PutUint16(ifr.raw.Ifru[sockaddrFamilyOff:], family)
	copy(ifr.raw.Ifru[sockaddrDataOff:], hw)
	return nil
}
