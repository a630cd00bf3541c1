package link

import (
	"github.com/rs/zerolog"

	"github.com/ifprefix/ifprefix/internal/hwaddr"
	"github.com/ifprefix/ifprefix/internal/lock"
	"github.com/ifprefix/ifprefix/internal/netdev"
)

// EnsureName returns the stable name for device, allocating the next free
// one and persisting its record when the device's hardware address has no
// record yet. The whole load-check-allocate-write cycle runs under lk, so
// concurrent invocations for different devices serialize and never hand
// out the same name twice.
func EnsureName(devices netdev.Enumerator, lk *lock.NamedLock, dir, prefix, device string, log *zerolog.Logger) (string, error) {
	if err := lk.Acquire(); err != nil {
		return "", err
	}
	defer lk.Release()

	roster, err := LoadRoster(devices, dir, prefix, log)
	if err != nil {
		return "", err
	}

	addr, err := devices.HardwareAddr(device)
	if err != nil {
		return "", err
	}
	addr, err = hwaddr.Normalize(addr)
	if err != nil {
		return "", err
	}

	if rec, ok := roster.ForHardwareAddr(addr); ok {
		log.Info().Str("device", device).Str("name", rec.Name).Msg("Record already exists for the device, keeping it")
		return rec.Name, nil
	}

	name, err := roster.NextName()
	if err != nil {
		return "", err
	}
	rec, err := NewRecord(name, addr)
	if err != nil {
		return "", err
	}
	if err := rec.WriteFile(dir); err != nil {
		return "", err
	}

	log.Debug().Str("path", rec.Path(dir)).Msg("New record written")
	log.Debug().Msg("Consider rebuilding the initramfs, e.g. with \"dracut -f\", so the name applies on early boot")

	return rec.Name, nil
}
