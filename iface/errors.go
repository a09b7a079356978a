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
	"errors"
	"fmt"
	"strings"

	"github.com/facebook/ifctl/ifreq"
)

// Kind classifies where an operation failed
type Kind int

// Failure kinds
const (
	// KindSocket means the control-plane socket could not be created
	KindSocket Kind = iota
	// KindRequest means the kernel rejected the request
	KindRequest
	// KindClose means the control-plane socket could not be released
	KindClose
	// KindEncoding means the input was rejected before any kernel call
	KindEncoding
)

var kindNames = []string{"socket", "request", "close", "encoding"}

// String implements fmt.Stringer interface
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "?"
}

// ErrNotConfigured is matched by errors of queries against an attribute the
// interface doesn't have, i.e. an IPv4 address that was never assigned.
// It is distinct from transport failures and from a literal 0.0.0.0.
var ErrNotConfigured = errors.New("not configured")

// OpError is returned by every operation in this package
type OpError struct {
	// Op is the operation, i.e. "IPv4"
	Op string
	// Name is the interface name, empty for host-wide operations
	Name string
	Kind Kind
	// Req is the SIOC* request code for KindRequest failures
	Req uint
	Err error
}

func (e *OpError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Name != "" {
		b.WriteString(" ")
		b.WriteString(e.Name)
	}
	switch e.Kind {
	case KindRequest:
		b.WriteString(": ")
		b.WriteString(ifreq.RequestName(e.Req))
	case KindSocket, KindClose:
		b.WriteString(": ")
		b.WriteString(e.Kind.String())
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Errno returns the OS error code behind the failure, if any
func (e *OpError) Errno() (ifreq.Errno, bool) {
	var errno ifreq.Errno
	if errors.As(e.Err, &errno) {
		return errno, true
	}
	return 0, false
}

// IsNotConfigured reports whether err means the queried attribute is not set
func IsNotConfigured(err error) bool {
	return errors.Is(err, ErrNotConfigured)
}

// KindOf returns the Kind of the first OpError in err's chain
func KindOf(err error) (Kind, bool) {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Kind, true
	}
	return 0, false
}

func requestError(op, name string, req uint, err error) *OpError {
	if errors.Is(err, ifreq.EADDRNOTAVAIL) {
		err = fmt.Errorf("%w: %w", ErrNotConfigured, err)
	}
	return &OpError{Op: op, Name: name, Kind: KindRequest, Req: req, Err: err}
}
