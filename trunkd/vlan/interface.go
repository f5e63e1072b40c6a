package vlan

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the physical interface flavour a switch port label resolves to.
// The NX-OS XML schemas for ethernet and port-channel interfaces differ, so
// the codec needs the distinction.
type Kind string

const (
	Ethernet    Kind = "ethernet"
	PortChannel Kind = "port-channel"
)

// ErrUnsupportedInterfaceKind reports a port label whose alphabetic prefix
// is neither ethernet nor port-channel. It indicates an operator or binding
// configuration bug.
var ErrUnsupportedInterfaceKind = errors.New("unsupported interface kind")

// Interface is a normalized switch port reference: the kind plus the bare
// numeric identifier ("101", "1/3").
type Interface struct {
	Kind Kind
	ID   string
}

// ParseInterface normalizes a free-form port label ("po101",
// "port-channel101", "e1/3") into an Interface. Digits and slashes form the
// id; the first letter of the remaining prefix selects the kind.
func ParseInterface(label string) (Interface, error) {
	var id, prefix strings.Builder
	for _, r := range label {
		switch {
		case r >= '0' && r <= '9' || r == '/':
			id.WriteRune(r)
		case r >= 'a' && r <= 'z':
			prefix.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			prefix.WriteRune(r + ('a' - 'A'))
		}
	}

	p := prefix.String()
	switch {
	case strings.HasPrefix(p, "p"):
		return Interface{Kind: PortChannel, ID: id.String()}, nil
	case strings.HasPrefix(p, "e"):
		return Interface{Kind: Ethernet, ID: id.String()}, nil
	}
	return Interface{}, fmt.Errorf("%w: %q", ErrUnsupportedInterfaceKind, label)
}

// FullName reconstructs the canonical long form ("port-channel101") used by
// show-running-config requests.
func (i Interface) FullName() string {
	return string(i.Kind) + i.ID
}
