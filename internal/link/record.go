// Package link maintains the persistent mapping between hardware addresses
// and stable prefixed interface names: one record per named device, written
// as a systemd .link file so the OS link-naming subsystem applies the name
// on every subsequent boot.
package link

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ifprefix/ifprefix/internal/hwaddr"
	"github.com/ifprefix/ifprefix/internal/netdev"
)

const (
	// Record filenames sort after the distribution defaults and before
	// the administrator range.
	recordFilePrefix = "71-net-ifnames-prefix-"
	recordFileExt    = ".link"

	// Longest interface name a record may carry.
	maxNameLen = 16
)

var (
	ErrInvalidName   = errors.New("invalid link name")
	ErrInvalidSuffix = errors.New("link name has no decimal suffix")
)

// Record binds one hardware address to one stable interface name. It is
// the in-memory form of a single record file.
type Record struct {
	// Name is the interface name, leading alphabetic prefix plus
	// decimal sequence number.
	Name string

	// Sequence is the numeric suffix of Name.
	Sequence uint64

	// HardwareAddr is the canonical (uppercase, colon separated)
	// hardware address.
	HardwareAddr string
}

// NewRecord validates name and addr and builds the Record. The name must be
// non-empty, at most 16 bytes and end in a decimal sequence number; the
// address may use any accepted notation and is stored canonicalized.
func NewRecord(name, addr string) (Record, error) {
	seq, err := nameSequence(name)
	if err != nil {
		return Record{}, err
	}
	canonical, err := hwaddr.Normalize(addr)
	if err != nil {
		return Record{}, err
	}
	return Record{Name: name, Sequence: seq, HardwareAddr: canonical}, nil
}

// NewRecordFromDevice builds a Record carrying the hardware address the
// kernel reports for device.
func NewRecordFromDevice(devices netdev.Enumerator, name, device string) (Record, error) {
	addr, err := devices.HardwareAddr(device)
	if err != nil {
		return Record{}, err
	}
	return NewRecord(name, addr)
}

// Path returns the record's filename under dir.
func (r Record) Path(dir string) string {
	return filepath.Join(dir, recordFilePrefix+r.Name+recordFileExt)
}

// WriteFile persists the record under dir, creating dir if needed. An
// existing record for the same name is replaced. The write goes through a
// temp file and rename so a crash never leaves a half-written record for
// the next boot to parse.
func (r Record) WriteFile(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create records directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, recordFilePrefix+"*.tmp")
	if err != nil {
		return fmt.Errorf("create temp record: %w", err)
	}
	tmpName := tmp.Name()

	content := fmt.Sprintf("[Match]\nMACAddress=%s\n\n[Link]\nName=%s\n", r.HardwareAddr, r.Name)
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp record: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp record: %w", err)
	}
	if err := os.Rename(tmpName, r.Path(dir)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp to record file: %w", err)
	}

	return nil
}

// NamedWithPrefix reports whether name is prefix immediately followed by a
// decimal sequence number. Devices already named this way need no record.
func NamedWithPrefix(name, prefix string) bool {
	if leadingAlpha(name) != prefix {
		return false
	}
	_, err := nameSequence(name)
	return err == nil
}

// nameSequence validates name and extracts its decimal suffix.
func nameSequence(name string) (uint64, error) {
	if name == "" || len(name) > maxNameLen {
		return 0, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	seq, err := strconv.ParseUint(name[len(leadingAlpha(name)):], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSuffix, name)
	}
	return seq, nil
}

// leadingAlpha returns the run of ASCII letters at the start of name,
// possibly empty.
func leadingAlpha(name string) string {
	i := 0
	for i < len(name) && alpha(name[i]) {
		i++
	}
	return name[:i]
}

func alpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
