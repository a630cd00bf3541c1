package link

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/ini.v1"

	"github.com/ifprefix/ifprefix/internal/netdev"
)

var (
	ErrMalformedRecord = errors.New("malformed record file")
	ErrSequenceParse   = errors.New("cannot parse sequence number")
)

// Roster is the reconciled view of every link claiming the active prefix,
// merged from two sources: links the kernel knows right now and records
// already on disk. Most devices appear in both, newly plugged hardware only
// in the kernel, unplugged hardware only on disk. A Roster is immutable
// once loaded.
type Roster struct {
	prefix  string
	ordered []Record
	byAddr  map[string]Record
}

// LoadRoster builds the Roster for prefix from the kernel's link list and
// the record files under dir.
func LoadRoster(devices netdev.Enumerator, dir, prefix string, log *zerolog.Logger) (*Roster, error) {
	r := &Roster{prefix: prefix, byAddr: make(map[string]Record)}

	if err := r.fromKernel(devices); err != nil {
		return nil, err
	}
	if err := r.fromRecords(dir, log); err != nil {
		return nil, err
	}

	// Links known to the kernel and recorded on disk were collected
	// twice. Ordering by sequence brings the copies together.
	slices.SortStableFunc(r.ordered, func(a, b Record) int {
		return cmp.Compare(a.Sequence, b.Sequence)
	})
	r.ordered = slices.Compact(r.ordered)

	log.Debug().Int("links", len(r.ordered)).Str("prefix", prefix).Msg("Reconciled link roster")

	return r, nil
}

// ForHardwareAddr returns the on-disk record claiming addr.
func (r *Roster) ForHardwareAddr(addr string) (Record, bool) {
	rec, ok := r.byAddr[addr]
	return rec, ok
}

// Links returns the merged, sequence-ordered view of the roster.
func (r *Roster) Links() []Record {
	return slices.Clone(r.ordered)
}

// NextName allocates the next never-used name: the highest claimed
// sequence plus one, or <prefix>0 when nothing claims the prefix yet.
// Sequences freed by unplugged hardware are not reused, so a returning
// device cannot collide with a later allocation.
func (r *Roster) NextName() (string, error) {
	if len(r.ordered) == 0 {
		return r.prefix + "0", nil
	}
	last := r.ordered[len(r.ordered)-1]
	seq, err := strconv.ParseUint(strings.TrimPrefix(last.Name, r.prefix), 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrSequenceParse, last.Name)
	}
	return r.prefix + strconv.FormatUint(seq+1, 10), nil
}

func (r *Roster) fromKernel(devices netdev.Enumerator) error {
	devs, err := devices.Ethernet()
	if err != nil {
		return fmt.Errorf("enumerate kernel links: %w", err)
	}

	for _, d := range devs {
		if !strings.HasPrefix(d.Name, r.prefix) {
			continue
		}
		switch d.Kind {
		case "vlan", "bond", "bridge":
			continue
		}
		addr, err := devices.HardwareAddr(d.Name)
		if err != nil {
			return err
		}
		rec, err := NewRecord(d.Name, addr)
		if err != nil {
			return fmt.Errorf("kernel link %s: %w", d.Name, err)
		}
		r.ordered = append(r.ordered, rec)
	}

	return nil
}

func (r *Roster) fromRecords(dir string, log *zerolog.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read records directory: %w", err)
	}

	for _, entry := range entries {
		filename := entry.Name()
		if !strings.HasPrefix(filename, recordFilePrefix) || !strings.HasSuffix(filename, recordFileExt) {
			continue
		}
		path := filepath.Join(dir, filename)

		f, err := ini.Load(path)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformedRecord, path, err)
		}
		match, err := f.GetSection("Match")
		if err != nil {
			return fmt.Errorf("%w: %s: no [Match] section", ErrMalformedRecord, path)
		}
		linkSect, err := f.GetSection("Link")
		if err != nil {
			return fmt.Errorf("%w: %s: no [Link] section", ErrMalformedRecord, path)
		}
		addr, err := match.GetKey("MACAddress")
		if err != nil {
			return fmt.Errorf("%w: %s: no MACAddress in [Match]", ErrMalformedRecord, path)
		}
		name, err := linkSect.GetKey("Name")
		if err != nil {
			return fmt.Errorf("%w: %s: no Name in [Link]", ErrMalformedRecord, path)
		}

		if !NamedWithPrefix(name.String(), r.prefix) {
			log.Warn().Str("file", path).Str("name", name.String()).Msg("Record belongs to a different prefix, skipping")
			continue
		}

		rec, err := NewRecord(name.String(), addr.String())
		if err != nil {
			return fmt.Errorf("record %s: %w", path, err)
		}
		r.byAddr[rec.HardwareAddr] = rec
		r.ordered = append(r.ordered, rec)
	}

	return nil
}
