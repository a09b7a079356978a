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
Package ifconfig describes the desired state of network interfaces in a YAML
file and applies it through package iface.
*/
package ifconfig

import (
	"fmt"
	"net"
	"net/netip"
	"os"
	"slices"

	"github.com/facebook/ifctl/ifreq"
	log "github.com/sirupsen/logrus"
	yaml "gopkg.in/yaml.v2"
)

// Administrative states
const (
	StateLeave = ""
	StateUp    = "up"
	StateDown  = "down"
)

// InterfaceConfig is the desired state of one interface.
// Empty fields are left as they are.
type InterfaceConfig struct {
	Name       string `yaml:"name"`
	State      string `yaml:"state"`       // up, down or empty to leave it
	IPv4       string `yaml:"ipv4"`        // primary address
	Netmask    string `yaml:"netmask"`     // dotted quad
	Broadcast  string `yaml:"broadcast"`   // dotted quad
	HWAddr     string `yaml:"hwaddr"`      // 6 octet MAC
	MTU        int    `yaml:"mtu"`         // 0 leaves the MTU alone
	RemoveIPv4 bool   `yaml:"remove_ipv4"` // drop the primary address
}

// desired is InterfaceConfig with every value parsed
type desired struct {
	name       string
	state      string
	ipv4       netip.Addr
	netmask    netip.Addr
	broadcast  netip.Addr
	hwaddr     net.HardwareAddr
	mtu        int
	removeIPv4 bool
}

func parseIPv4(field, s string) (netip.Addr, error) {
	if s == "" {
		return netip.Addr{}, nil
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%s: %w", field, err)
	}
	if !addr.Unmap().Is4() {
		return netip.Addr{}, fmt.Errorf("%s: %s is not an IPv4 address", field, s)
	}
	return addr.Unmap(), nil
}

func (c *InterfaceConfig) parse() (*desired, error) {
	if err := ifreq.ValidateName(c.Name); err != nil {
		return nil, fmt.Errorf("name %q: %w", c.Name, err)
	}
	d := &desired{name: c.Name, state: c.State, mtu: c.MTU, removeIPv4: c.RemoveIPv4}
	if c.State != StateLeave && c.State != StateUp && c.State != StateDown {
		return nil, fmt.Errorf("state must be either %q, %q or empty", StateUp, StateDown)
	}
	var err error
	if d.ipv4, err = parseIPv4("ipv4", c.IPv4); err != nil {
		return nil, err
	}
	if d.netmask, err = parseIPv4("netmask", c.Netmask); err != nil {
		return nil, err
	}
	if d.broadcast, err = parseIPv4("broadcast", c.Broadcast); err != nil {
		return nil, err
	}
	if c.HWAddr != "" {
		d.hwaddr, err = net.ParseMAC(c.HWAddr)
		if err != nil {
			return nil, fmt.Errorf("hwaddr: %w", err)
		}
		if len(d.hwaddr) != ifreq.HardwareAddrLen {
			return nil, fmt.Errorf("hwaddr: %w, got %d", ifreq.ErrHardwareAddrLen, len(d.hwaddr))
		}
	}
	if c.MTU < 0 {
		return nil, fmt.Errorf("mtu must be 0 or positive")
	}
	if c.RemoveIPv4 && c.IPv4 != "" {
		return nil, fmt.Errorf("remove_ipv4 and ipv4 are mutually exclusive")
	}
	// without an address the kernel has nothing to attach them to
	if c.RemoveIPv4 && (c.Netmask != "" || c.Broadcast != "") {
		return nil, fmt.Errorf("remove_ipv4 excludes netmask and broadcast")
	}
	return d, nil
}

// Validate InterfaceConfig is sane
func (c *InterfaceConfig) Validate() error {
	_, err := c.parse()
	return err
}

// Config is the desired state of a set of interfaces
type Config struct {
	Interfaces []InterfaceConfig `yaml:"interfaces"`
}

// DefaultConfig returns Config initialized with default values
func DefaultConfig() *Config {
	return &Config{Interfaces: []InterfaceConfig{}}
}

// Validate config is sane
func (c *Config) Validate() error {
	seen := map[string]bool{}
	for idx := range c.Interfaces {
		ic := &c.Interfaces[idx]
		if err := ic.Validate(); err != nil {
			return fmt.Errorf("invalid interface #%d: %w", idx, err)
		}
		if seen[ic.Name] {
			return fmt.Errorf("interface %q listed more than once", ic.Name)
		}
		seen[ic.Name] = true
	}
	return nil
}

// ReadConfig reads config from the file
func ReadConfig(path string) (*Config, error) {
	c := DefaultConfig()
	cData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	err = yaml.UnmarshalStrict(cData, &c)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// ApplyOverrides applies CLI flag overrides to cfg in place.
// ifaces limits the config to the named interfaces, state overrides the state of every remaining one.
func ApplyOverrides(cfg *Config, ifaces []string, state string, setFlags map[string]bool) {
	warn := func(name string) {
		log.Warningf("overriding %s from CLI flag", name)
	}
	if setFlags["iface"] {
		warn("iface")
		kept := []InterfaceConfig{}
		for _, ic := range cfg.Interfaces {
			if slices.Contains(ifaces, ic.Name) {
				kept = append(kept, ic)
			}
		}
		cfg.Interfaces = kept
	}
	if setFlags["state"] {
		warn("state")
		for idx := range cfg.Interfaces {
			cfg.Interfaces[idx].State = state
		}
	}
}

// PrepareConfig prepares final version of config based on on-disk config and CLI flags, and validates resulting config.
// See ApplyOverrides for the flags.
func PrepareConfig(cfgPath string, ifaces []string, state string, setFlags map[string]bool) (*Config, error) {
	cfg, err := ReadConfig(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("reading config from %q: %w", cfgPath, err)
	}
	ApplyOverrides(cfg, ifaces, state, setFlags)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	log.Debugf("config: %+v", cfg)
	return cfg, nil
}
