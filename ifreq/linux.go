//go:build linux

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

package ifreq

import (
	"fmt"
	"runtime"
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// bridging to upstream

// Errno is an alias
type Errno = unix.Errno

// Socket is unix.Socket
func Socket(domain, typ, proto int) (fd int, err error) { return unix.Socket(domain, typ, proto) }

// Close is unix.Close
func Close(fd int) (err error) { return unix.Close(fd) }

// ByteSliceToString is unix.ByteSliceToString
func ByteSliceToString(b []byte) string { return unix.ByteSliceToString(b) }

const (
	AF_INET        = unix.AF_INET        //nolint:revive
	ARPHRD_ETHER   = unix.ARPHRD_ETHER   //nolint:revive
	ARPHRD_NONE    = unix.ARPHRD_NONE    //nolint:revive
	IFNAMSIZ       = unix.IFNAMSIZ       //nolint:revive
	SIOCGIFADDR    = unix.SIOCGIFADDR    //nolint:revive
	SIOCGIFBRDADDR = unix.SIOCGIFBRDADDR //nolint:revive
	SIOCGIFCONF    = unix.SIOCGIFCONF    //nolint:revive
	SIOCGIFFLAGS   = unix.SIOCGIFFLAGS   //nolint:revive
	SIOCGIFHWADDR  = unix.SIOCGIFHWADDR  //nolint:revive
	SIOCGIFINDEX   = unix.SIOCGIFINDEX   //nolint:revive
	SIOCGIFMTU     = unix.SIOCGIFMTU     //nolint:revive
	SIOCGIFNETMASK = unix.SIOCGIFNETMASK //nolint:revive
	SIOCSIFADDR    = unix.SIOCSIFADDR    //nolint:revive
	SIOCSIFBRDADDR = unix.SIOCSIFBRDADDR //nolint:revive
	SIOCSIFFLAGS   = unix.SIOCSIFFLAGS   //nolint:revive
	SIOCSIFHWADDR  = unix.SIOCSIFHWADDR  //nolint:revive
	SIOCSIFMTU     = unix.SIOCSIFMTU     //nolint:revive
	SIOCSIFNETMASK = unix.SIOCSIFNETMASK //nolint:revive
	SOCK_CLOEXEC   = unix.SOCK_CLOEXEC   //nolint:revive
	SOCK_DGRAM     = unix.SOCK_DGRAM     //nolint:revive
	SYS_IOCTL      = unix.SYS_IOCTL      //nolint:revive
	EADDRNOTAVAIL  = unix.EADDRNOTAVAIL  //nolint:revive
	EAGAIN         = unix.EAGAIN         //nolint:revive
	EINVAL         = unix.EINVAL         //nolint:revive
	ENODEV         = unix.ENODEV         //nolint:revive
)

var requestNames = map[uint]string{
	SIOCGIFADDR:    "SIOCGIFADDR",
	SIOCGIFBRDADDR: "SIOCGIFBRDADDR",
	SIOCGIFCONF:    "SIOCGIFCONF",
	SIOCGIFFLAGS:   "SIOCGIFFLAGS",
	SIOCGIFHWADDR:  "SIOCGIFHWADDR",
	SIOCGIFINDEX:   "SIOCGIFINDEX",
	SIOCGIFMTU:     "SIOCGIFMTU",
	SIOCGIFNETMASK: "SIOCGIFNETMASK",
	SIOCSIFADDR:    "SIOCSIFADDR",
	SIOCSIFBRDADDR: "SIOCSIFBRDADDR",
	SIOCSIFFLAGS:   "SIOCSIFFLAGS",
	SIOCSIFHWADDR:  "SIOCSIFHWADDR",
	SIOCSIFMTU:     "SIOCSIFMTU",
	SIOCSIFNETMASK: "SIOCSIFNETMASK",
}

// RequestName returns the symbolic name of a SIOC* request code
func RequestName(req uint) string {
	if name, ok := requestNames[req]; ok {
		return name
	}
	return fmt.Sprintf("ioctl(%#x)", req)
}

var (
	errEAGAIN        error = syscall.EAGAIN
	errEINVAL        error = syscall.EINVAL
	errENODEV        error = syscall.ENODEV
	errEADDRNOTAVAIL error = syscall.EADDRNOTAVAIL
)

// IoctlIfreq performs an ioctl using an Ifreq structure for input and/or output.
// See the netdevice(7) man page for details.
func IoctlIfreq(fd int, req uint, ifr *Ifreq) error {
	return ioctlPtr(fd, req, unsafe.Pointer(&ifr.raw))
}

// IoctlIfconf performs SIOCGIFCONF over buf and returns the length in bytes
// reported back by the kernel. With an empty buf the kernel only reports the
// buffer size needed to hold every record.
func IoctlIfconf(fd int, buf []byte) (int, error) {
	ifc := ifconf{Len: int32(len(buf))}
	if len(buf) > 0 {
		ifc.Buf = unsafe.Pointer(&buf[0])
	}
	err := ioctlPtr(fd, SIOCGIFCONF, unsafe.Pointer(&ifc))
	runtime.KeepAlive(buf)
	if err != nil {
		return 0, err
	}
	return int(ifc.Len), nil
}

func ioctlPtr(fd int, req uint, arg unsafe.Pointer) (err error) {
	_, _, e1 := unix.Syscall(SYS_IOCTL, uintptr(fd), uintptr(req), uintptr(arg))
	if e1 != 0 {
		err = errnoErr(e1)
	}
	return
}

// errnoErr returns common boxed Errno values, to prevent
// allocations at runtime.
func errnoErr(e syscall.Errno) error {
	switch e {
	case 0:
		return nil
	case EAGAIN:
		return errEAGAIN
	case EINVAL:
		return errEINVAL
	case ENODEV:
		return errENODEV
	case EADDRNOTAVAIL:
		return errEADDRNOTAVAIL
	}
	return e
}
