// Package fingerprint describes the host platform as the short query
// parameters sent along with a pingback.
//
// Each platform gets its own Fingerprinter: Uname on unix builds, Registry on
// Windows builds, and HostInfo (gopsutil) everywhere else or when selected
// explicitly in the config. Parameter order is part of the wire format.
package fingerprint

import (
	"fmt"
	"strings"
)

// Kinds accepted by New.
const (
	KindNative   = "native"
	KindHostInfo = "hostinfo"
)

// Param is a single query parameter. Value is kept unescaped.
type Param struct {
	Key   string
	Value string
}

// Fingerprint is an ordered list of platform parameters.
type Fingerprint []Param

// Fingerprinter produces the platform fingerprint using local calls only.
type Fingerprinter interface {
	Fingerprint() (Fingerprint, error)
}

// New returns the Fingerprinter for the given kind.
func New(kind string) (Fingerprinter, error) {
	switch kind {
	case "", KindNative:
		return native(), nil
	case KindHostInfo:
		return NewHostInfo(), nil
	default:
		return nil, fmt.Errorf("unknown fingerprint kind %q (want %s or %s)", kind, KindNative, KindHostInfo)
	}
}

// Encode renders the fingerprint as a query string (k=v&k=v) in order,
// escaping every value.
func (f Fingerprint) Encode() string {
	parts := make([]string, 0, len(f))
	for _, p := range f {
		parts = append(parts, p.Key+"="+Escape(p.Value))
	}
	return strings.Join(parts, "&")
}

// Get returns the raw value for key.
func (f Fingerprint) Get(key string) (string, bool) {
	for _, p := range f {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

const upperhex = "0123456789ABCDEF"

// Escape percent-encodes every byte outside the RFC 3986 unreserved set,
// space included (%20, never '+').
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}
