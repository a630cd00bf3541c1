package netdev

import (
	"fmt"

	"github.com/vishvananda/netlink"
)

// NetlinkEnumerator queries the kernel over rtnetlink.
type NetlinkEnumerator struct{}

// NewNetlinkEnumerator creates an Enumerator backed by the kernel.
func NewNetlinkEnumerator() *NetlinkEnumerator {
	return &NetlinkEnumerator{}
}

func (e *NetlinkEnumerator) Ethernet() ([]Device, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, fmt.Errorf("%w: list links: %v", ErrDeviceLookup, err)
	}

	var devices []Device
	for _, l := range links {
		if l.Attrs().EncapType != "ether" {
			continue
		}
		devices = append(devices, Device{Name: l.Attrs().Name, Kind: l.Type()})
	}
	return devices, nil
}

func (e *NetlinkEnumerator) HardwareAddr(name string) (string, error) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrDeviceLookup, name, err)
	}
	addr := link.Attrs().HardwareAddr
	if len(addr) == 0 {
		return "", fmt.Errorf("%w: %q has no hardware address", ErrDeviceAttribute, name)
	}
	return addr.String(), nil
}
