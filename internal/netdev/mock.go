package netdev

import "fmt"

// MockEnumerator implements Enumerator for testing.
type MockEnumerator struct {
	Devices []Device
	Addrs   map[string]string

	EthernetErr     error
	HardwareAddrErr error
}

// NewMockEnumerator creates an empty MockEnumerator.
func NewMockEnumerator() *MockEnumerator {
	return &MockEnumerator{Addrs: make(map[string]string)}
}

// Add registers a device with its hardware address.
func (m *MockEnumerator) Add(name, kind, addr string) {
	m.Devices = append(m.Devices, Device{Name: name, Kind: kind})
	m.Addrs[name] = addr
}

func (m *MockEnumerator) Ethernet() ([]Device, error) {
	if m.EthernetErr != nil {
		return nil, m.EthernetErr
	}
	return m.Devices, nil
}

func (m *MockEnumerator) HardwareAddr(name string) (string, error) {
	if m.HardwareAddrErr != nil {
		return "", m.HardwareAddrErr
	}
	addr, ok := m.Addrs[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrDeviceAttribute, name)
	}
	return addr, nil
}
