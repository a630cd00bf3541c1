// Package event reads the uevent environment the device manager hands to
// helpers it spawns: INTERFACE names the network device the event is about
// and DEVPATH locates it in sysfs.
package event

import (
	"os"
	"strings"
)

const virtualDevpathPrefix = "/devices/virtual"

// DeviceName returns the name of the device the current event is about,
// empty when not running from an event.
func DeviceName() string {
	return os.Getenv("INTERFACE")
}

// Devpath returns the sysfs path of the event device, empty when unset.
func Devpath() string {
	return os.Getenv("DEVPATH")
}

// Virtual reports whether the event device is virtual (bridges, bonds,
// vlans and the like). Virtual devices never get persistent names.
func Virtual() bool {
	return strings.HasPrefix(Devpath(), virtualDevpathPrefix)
}
