package fingerprint

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/host"
)

// uname-style system names for the GOOS values gopsutil reports.
var systemNames = map[string]string{
	"linux":     "Linux",
	"darwin":    "Darwin",
	"freebsd":   "FreeBSD",
	"openbsd":   "OpenBSD",
	"netbsd":    "NetBSD",
	"dragonfly": "DragonFly",
	"solaris":   "SunOS",
	"aix":       "AIX",
	"windows":   "Windows",
}

// HostInfo fingerprints any host gopsutil supports. Like Uname, a failed
// query fails the whole fingerprint.
type HostInfo struct {
	info func() (*host.InfoStat, error)
}

// NewHostInfo returns a HostInfo fingerprinter backed by gopsutil.
func NewHostInfo() *HostInfo {
	return &HostInfo{info: host.Info}
}

// Fingerprint returns s, r, m in that order.
func (h *HostInfo) Fingerprint() (Fingerprint, error) {
	hi, err := h.info()
	if err != nil {
		return nil, fmt.Errorf("reading host info: %w", err)
	}

	sysname := hi.OS
	if name, ok := systemNames[hi.OS]; ok {
		sysname = name
	}

	return Fingerprint{
		{Key: "s", Value: sysname},
		{Key: "r", Value: hi.KernelVersion},
		{Key: "m", Value: hi.KernelArch},
	}, nil
}
