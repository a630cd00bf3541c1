// Package netdev abstracts the kernel's view of network links so the
// naming engine can run against fixed device lists in tests.
package netdev

import "errors"

var (
	ErrDeviceLookup    = errors.New("device lookup failed")
	ErrDeviceAttribute = errors.New("device attribute unavailable")
)

// Device is one kernel network link.
type Device struct {
	// Name is the current interface name.
	Name string

	// Kind is the link kind as reported by the kernel: "device" for
	// plain hardware NICs, "vlan", "bond", "bridge" and so on for
	// software links stacked on top of them.
	Kind string
}

// Enumerator lists Ethernet links and resolves their hardware addresses.
type Enumerator interface {
	// Ethernet returns all links with Ethernet framing.
	Ethernet() ([]Device, error)

	// HardwareAddr returns the hardware address of the named link as
	// reported by the kernel.
	HardwareAddr(name string) (string, error)
}
