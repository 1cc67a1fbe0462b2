package fingerprint

import (
	"strconv"
	"strings"
)

const (
	productKey = `SOFTWARE\Microsoft\Windows NT\CurrentVersion`
	cpuKey     = `Hardware\Description\System\CentralProcessor\0`

	// Drops the "Family X Model YY Stepping Z" tail of the CPU identifier.
	cpuCutMarker = " Family "
)

// Registry fingerprints Windows hosts from the system registry. Lookups that
// fail produce empty values; it never returns an error.
type Registry struct {
	query func(path, name string) (string, bool)
}

// NewRegistry returns a Registry fingerprinter reading HKEY_LOCAL_MACHINE.
func NewRegistry() *Registry {
	return &Registry{query: queryRegistry}
}

// Fingerprint returns r, m, s in that order.
func (r *Registry) Fingerprint() (Fingerprint, error) {
	product, _ := r.query(productKey, "ProductName")

	cpu, ok := r.query(cpuKey, "Identifier")
	if ok {
		if cut := strings.Index(cpu, cpuCutMarker); cut >= 0 {
			cpu = cpu[:cut]
		}
	}

	return Fingerprint{
		{Key: "r", Value: product},
		{Key: "m", Value: cpu},
		{Key: "s", Value: windowsTag()},
	}, nil
}

func windowsTag() string {
	if strconv.IntSize == 64 {
		return "Windows64"
	}
	return "Windows32"
}
