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
	"unsafe"
)

// ifconf mirrors struct ifconf from linux/if.h.
// Buf is kept as unsafe.Pointer so the buffer stays reachable during the syscall.
type ifconf struct {
	Len int32
	Buf unsafe.Pointer
}

// ParseIfconf splits a buffer filled by SIOCGIFCONF into records and
// returns the interface name of each one, in kernel order.
// A trailing partial record is ignored.
func ParseIfconf(buf []byte) []string {
	names := make([]string, 0, len(buf)/SizeofIfreq)
	for off := 0; off+SizeofIfreq <= len(buf); off += SizeofIfreq {
		names = append(names, ByteSliceToString(buf[off:off+IFNAMSIZ]))
	}
	return names
}
