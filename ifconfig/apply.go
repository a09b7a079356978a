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

package ifconfig

import (
	"fmt"
	"net"
	"net/netip"

	"github.com/facebook/ifctl/iface"
	log "github.com/sirupsen/logrus"
)

// Link is the part of *iface.Interface used to converge an interface
type Link interface {
	Name() string
	Up() error
	Down() error
	SetIPv4(addr netip.Addr) error
	SetNetmask(mask netip.Addr) error
	SetBroadcast(addr netip.Addr) error
	SetPhysical(hw net.HardwareAddr) error
	SetMTU(mtu int) error
	RemoveIPv4() (netip.Addr, error)
}

// Opener resolves an interface name to a Link
type Opener func(name string) (Link, error)

// ControllerOpener returns an Opener backed by c
func ControllerOpener(c *iface.Controller) Opener {
	return func(name string) (Link, error) {
		i, err := c.Open(name)
		if err != nil {
			return nil, err
		}
		return i, nil
	}
}

// Result is the outcome of applying one InterfaceConfig
type Result struct {
	Name string
	// Changed lists the steps that were carried out, in order
	Changed []string
	Err     error
}

// Apply converges every interface in cfg. Interfaces are independent:
// a failure stops the remaining steps of its own interface only.
func Apply(open Opener, cfg *Config) []Result {
	results := make([]Result, 0, len(cfg.Interfaces))
	for idx := range cfg.Interfaces {
		r := ApplyInterface(open, &cfg.Interfaces[idx])
		if r.Err != nil {
			log.Errorf("%s: %v", r.Name, r.Err)
		} else {
			log.Infof("%s: applied %v", r.Name, r.Changed)
		}
		results = append(results, r)
	}
	return results
}

// ApplyInterface converges a single interface in a fixed order:
// down, hwaddr, mtu, address removal or assignment, netmask, broadcast, up.
// Taking the link down first lets drivers accept a new hardware address.
func ApplyInterface(open Opener, c *InterfaceConfig) Result {
	r := Result{Name: c.Name, Changed: []string{}}
	d, err := c.parse()
	if err != nil {
		r.Err = fmt.Errorf("invalid config: %w", err)
		return r
	}
	link, err := open(d.name)
	if err != nil {
		r.Err = err
		return r
	}
	// step runs fn unless an earlier step failed
	step := func(name string, fn func() error) {
		if r.Err != nil {
			return
		}
		if err := fn(); err != nil {
			r.Err = fmt.Errorf("%s: %w", name, err)
			return
		}
		r.Changed = append(r.Changed, name)
	}

	if d.state == StateDown {
		step("down", link.Down)
	}
	if d.hwaddr != nil {
		step("hwaddr", func() error { return link.SetPhysical(d.hwaddr) })
	}
	if d.mtu > 0 {
		step("mtu", func() error { return link.SetMTU(d.mtu) })
	}
	if d.removeIPv4 && r.Err == nil {
		prev, err := link.RemoveIPv4()
		switch {
		case err == nil:
			log.Debugf("%s: removed %v", d.name, prev)
			r.Changed = append(r.Changed, "remove_ipv4")
		case iface.IsNotConfigured(err):
			// already gone
		default:
			r.Err = fmt.Errorf("remove_ipv4: %w", err)
		}
	}
	if d.ipv4.IsValid() {
		step("ipv4", func() error { return link.SetIPv4(d.ipv4) })
	}
	if d.netmask.IsValid() {
		step("netmask", func() error { return link.SetNetmask(d.netmask) })
	}
	if d.broadcast.IsValid() {
		step("broadcast", func() error { return link.SetBroadcast(d.broadcast) })
	}
	if d.state == StateUp {
		step("up", link.Up)
	}
	return r
}

// Failed returns the results that carry an error
func Failed(results []Result) []Result {
	failed := []Result{}
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
