package hwaddr

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidAddress = errors.New("invalid hardware address")

// Valid reports whether addr is an EUI-48 hardware address: six groups of
// two hex digits, separated by colons or hyphens in any mix.
func Valid(addr string) bool {
	groups := strings.Split(strings.ReplaceAll(addr, "-", ":"), ":")
	if len(groups) != 6 {
		return false
	}
	for _, g := range groups {
		if len(g) != 2 {
			return false
		}
		if !hexDigit(g[0]) || !hexDigit(g[1]) {
			return false
		}
	}
	return true
}

// Normalize rewrites addr into the canonical form used throughout the
// records: uppercase hex groups joined by colons. It is idempotent.
func Normalize(addr string) (string, error) {
	if !Valid(addr) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}
	return strings.ToUpper(strings.ReplaceAll(addr, "-", ":")), nil
}

func hexDigit(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'f':
		return true
	case c >= 'A' && c <= 'F':
		return true
	}
	return false
}
