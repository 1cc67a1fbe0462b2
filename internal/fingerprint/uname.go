package fingerprint

import "fmt"

// Uname fingerprints POSIX hosts from the uname(2) system name, kernel
// release and machine fields. A failed query fails the whole fingerprint.
type Uname struct {
	uname func() (sysname, release, machine string, err error)
}

// NewUname returns a Uname fingerprinter backed by the system call.
func NewUname() *Uname {
	return &Uname{uname: systemUname}
}

// Fingerprint returns s, r, m in that order.
func (u *Uname) Fingerprint() (Fingerprint, error) {
	sysname, release, machine, err := u.uname()
	if err != nil {
		return nil, fmt.Errorf("querying uname: %w", err)
	}

	return Fingerprint{
		{Key: "s", Value: sysname},
		{Key: "r", Value: release},
		{Key: "m", Value: machine},
	}, nil
}
