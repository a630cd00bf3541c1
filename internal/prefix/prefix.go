package prefix

import (
	"fmt"
	"os"
	"regexp"
)

// Prefixes already handed out by the kernel (eth), biosdevname (em) and
// udev's net_id builtin. Claiming one of these would fight the scheme that
// owns it.
var reserved = map[string]struct{}{
	"eth": {},
	"eno": {},
	"ens": {},
	"enb": {},
	"enc": {},
	"enx": {},
	"enP": {},
	"enp": {},
	"env": {},
	"ena": {},
	"em":  {},
}

var cmdlineRe = regexp.MustCompile(`net\.ifnames\.prefix=([[:alpha:]]+)`)

// FromCmdline extracts the requested interface name prefix from the kernel
// command line at path. A command line without the option yields the empty
// string and no error.
func FromCmdline(path string) (string, error) {
	cmdline, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read kernel command line: %w", err)
	}
	m := cmdlineRe.FindSubmatch(cmdline)
	if m == nil {
		return "", nil
	}
	return string(m[1]), nil
}

// Valid reports whether p is usable as a naming prefix: ASCII letters only,
// short enough to leave room for a sequence number within the kernel's
// 16-byte interface name limit, and not reserved by another naming scheme.
func Valid(p string) bool {
	if p == "" || len(p) >= 16 {
		return false
	}
	for i := 0; i < len(p); i++ {
		if !alpha(p[i]) {
			return false
		}
	}
	_, taken := reserved[p]
	return !taken
}

func alpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
