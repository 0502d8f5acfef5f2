// Package resolve defines the endpoint data model and the resolution engine
// that turns a hostname/port request into an ordered list of endpoints on
// the event-loop worker, delivering the outcome through a completion
// callback exactly once per accepted request.
package resolve

import (
	"fmt"
	"net"
)

// Family tags an endpoint with its address family.
type Family int

const (
	// FamilyIPv4 marks an IPv4 endpoint.
	FamilyIPv4 Family = iota + 1
	// FamilyIPv6 marks an IPv6 endpoint.
	FamilyIPv6
)

// String returns the display name of the family.
func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "IPv4"
	case FamilyIPv6:
		return "IPv6"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// MarshalYAML encodes the family by name so persisted history stays readable.
func (f Family) MarshalYAML() (any, error) {
	return f.String(), nil
}

// UnmarshalYAML decodes a family encoded by MarshalYAML.
func (f *Family) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	switch s {
	case "IPv4":
		*f = FamilyIPv4
	case "IPv6":
		*f = FamilyIPv6
	default:
		return fmt.Errorf("unknown address family %q", s)
	}
	return nil
}

// FamilyOf classifies an IP address as IPv4 or IPv6.
// Four-byte-representable addresses count as IPv4, everything else as IPv6.
func FamilyOf(ip net.IP) Family {
	if ip.To4() != nil {
		return FamilyIPv4
	}
	return FamilyIPv6
}

// Endpoint is one resolved network address plus its address family.
// Immutable once produced; it has no identity beyond its value.
type Endpoint struct {
	Address string `yaml:"address"`
	Family  Family `yaml:"family"`
}

// String renders the endpoint for logs and error messages.
func (e Endpoint) String() string {
	return e.Address + "/" + e.Family.String()
}
