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
Package exporter reports interface state as Prometheus metrics.
The kernel is queried on every scrape, concurrent scrapes share one pass.
*/
package exporter

import (
	"strconv"

	"github.com/facebook/ifctl/iface"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Lister enumerates interfaces, *iface.Controller is one
type Lister interface {
	List() ([]iface.Result, error)
}

// ListerFunc adapts a function to Lister
type ListerFunc func() ([]iface.Result, error)

// List calls f
func (f ListerFunc) List() ([]iface.Result, error) {
	return f()
}

// sample is what one scrape learned about one interface
type sample struct {
	name   string
	index  uint32
	up     *bool
	mtu    *int
	hwaddr string
	ipv4   string
}

type snapshot struct {
	samples       []sample
	resolveErrors int
}

// Collector implements prometheus.Collector
type Collector struct {
	lister Lister
	group  singleflight.Group

	upDesc      *prometheus.Desc
	mtuDesc     *prometheus.Desc
	infoDesc    *prometheus.Desc
	resolveDesc *prometheus.Desc
}

// NewCollector returns a Collector which enumerates with l on every scrape
func NewCollector(l Lister) *Collector {
	return &Collector{
		lister: l,
		upDesc: prometheus.NewDesc(
			"ifctl_interface_up", "Whether the interface is administratively up", []string{"name"}, nil,
		),
		mtuDesc: prometheus.NewDesc(
			"ifctl_interface_mtu", "Interface MTU in bytes", []string{"name"}, nil,
		),
		infoDesc: prometheus.NewDesc(
			"ifctl_interface_info", "Interface identity, always 1", []string{"name", "index", "hwaddr", "ipv4"}, nil,
		),
		resolveDesc: prometheus.NewDesc(
			"ifctl_resolve_errors", "Enumerated interfaces that failed to resolve during the last scrape", nil, nil,
		),
	}
}

// Describe implements prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.upDesc
	ch <- c.mtuDesc
	ch <- c.infoDesc
	ch <- c.resolveDesc
}

// Collect implements prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	v, err, shared := c.group.Do("scrape", func() (any, error) {
		return c.scrape()
	})
	if err != nil {
		log.Errorf("failed to enumerate interfaces: %v", err)
		ch <- prometheus.NewInvalidMetric(c.infoDesc, err)
		return
	}
	if shared {
		log.Debug("sharing scrape result")
	}
	snap := v.(*snapshot)
	for _, s := range snap.samples {
		if s.up != nil {
			up := 0.0
			if *s.up {
				up = 1
			}
			ch <- prometheus.MustNewConstMetric(c.upDesc, prometheus.GaugeValue, up, s.name)
		}
		if s.mtu != nil {
			ch <- prometheus.MustNewConstMetric(c.mtuDesc, prometheus.GaugeValue, float64(*s.mtu), s.name)
		}
		ch <- prometheus.MustNewConstMetric(c.infoDesc, prometheus.GaugeValue, 1,
			s.name, strconv.FormatUint(uint64(s.index), 10), s.hwaddr, s.ipv4)
	}
	ch <- prometheus.MustNewConstMetric(c.resolveDesc, prometheus.GaugeValue, float64(snap.resolveErrors))
}

func (c *Collector) scrape() (*snapshot, error) {
	results, err := c.lister.List()
	if err != nil {
		return nil, err
	}
	snap := &snapshot{samples: []sample{}}
	seen := map[string]bool{}
	for _, r := range results {
		if r.Err != nil {
			log.Warningf("%s: %v", r.Name, r.Err)
			snap.resolveErrors++
			continue
		}
		// SIOCGIFCONF reports one record per address
		if seen[r.Name] {
			continue
		}
		seen[r.Name] = true
		snap.samples = append(snap.samples, query(r.Interface))
	}
	return snap, nil
}

// query collects what it can, a failed query drops that value only
func query(i *iface.Interface) sample {
	s := sample{name: i.Name(), index: i.Index()}
	if up, err := i.IsUp(); err != nil {
		log.Warningf("%s: %v", i.Name(), err)
	} else {
		s.up = &up
	}
	if mtu, err := i.MTU(); err != nil {
		log.Warningf("%s: %v", i.Name(), err)
	} else {
		s.mtu = &mtu
	}
	if hw, err := i.Physical(); err == nil {
		s.hwaddr = hw.String()
	} else if !iface.IsNotConfigured(err) {
		log.Warningf("%s: %v", i.Name(), err)
	}
	if addr, err := i.IPv4(); err == nil {
		s.ipv4 = addr.String()
	} else if !iface.IsNotConfigured(err) {
		log.Warningf("%s: %v", i.Name(), err)
	}
	return s
}
