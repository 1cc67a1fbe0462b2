//go:build !unix && !windows

package fingerprint

func native() Fingerprinter {
	return NewHostInfo()
}
