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
	"github.com/jsimonetti/rtnetlink/rtnl"
	errors "github.com/pkg/errors"
)

// LinkLister returns the names of links known to the kernel
type LinkLister interface {
	Links() ([]string, error)
}

// NetlinkLister lists links with an rtnetlink dump
type NetlinkLister struct{}

// Links returns the names of all links
func (NetlinkLister) Links() ([]string, error) {
	conn, err := rtnl.Dial(nil)
	if err != nil {
		return nil, errors.Wrap(err, "can't establish netlink connection")
	}
	defer conn.Close()

	links, err := conn.Links()
	if err != nil {
		return nil, errors.Wrap(err, "can't dump links")
	}
	names := make([]string, 0, len(links))
	for _, l := range links {
		names = append(names, l.Name)
	}
	return names, nil
}
