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
	log "github.com/sirupsen/logrus"
)

// Result is the outcome of resolving one enumerated interface.
// Exactly one of Interface and Err is set.
type Result struct {
	Name      string
	Interface *Interface
	Err       error
}

// List enumerates interfaces using the Default controller
func List() ([]Result, error) {
	return Default.List()
}

// ListAll enumerates every link using the Default controller
func ListAll(l LinkLister) ([]Result, error) {
	return Default.ListAll(l)
}

// List enumerates the interfaces configured on the host with SIOCGIFCONF and
// resolves each of them like Open. The kernel doesn't report the number of
// records up front, so the buffer is sized by a first probing call.
//
// The returned error only covers the enumeration itself. A name that fails
// to resolve, i.e. because it vanished between the two calls, gets its own
// failed Result and doesn't affect the others.
func (c *Controller) List() ([]Result, error) {
	names, err := c.enumerate()
	if err != nil {
		return nil, err
	}
	return c.resolve(names), nil
}

// ListAll is like List but takes the names from l, which also sees links
// without an IPv4 address.
func (c *Controller) ListAll(l LinkLister) ([]Result, error) {
	names, err := l.Links()
	if err != nil {
		return nil, fmt.Errorf("listing links: %w", err)
	}
	return c.resolve(names), nil
}

func (c *Controller) enumerate() ([]string, error) {
	const op = "List"
	var names []string
	err := exchange(c.dialer, op, "", func(conn Conn) error {
		size, err := conn.Ifconf(nil)
		if err != nil {
			return requestError(op, "", ifreq.SIOCGIFCONF, err)
		}
		log.Debugf("SIOCGIFCONF: %d bytes needed", size)
		if size <= 0 {
			return nil
		}

		buf := make([]byte, size)
		n, err := conn.Ifconf(buf)
		if err != nil {
			return requestError(op, "", ifreq.SIOCGIFCONF, err)
		}
		if n < 0 || n > size {
			return requestError(op, "", ifreq.SIOCGIFCONF, fmt.Errorf("kernel reported %d bytes for a %d byte buffer", n, size))
		}
		names = ifreq.ParseIfconf(buf[:n])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (c *Controller) resolve(names []string) []Result {
	results := make([]Result, 0, len(names))
	for _, name := range names {
		i, err := c.Open(name)
		if err != nil {
			log.Debugf("failed to resolve %q: %v", name, err)
		}
		results = append(results, Result{Name: name, Interface: i, Err: err})
	}
	return results
}
