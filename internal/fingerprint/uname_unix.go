//go:build unix

package fingerprint

import (
	"golang.org/x/sys/unix"
)

func systemUname() (string, string, string, error) {
	var utb unix.Utsname
	if err := unix.Uname(&utb); err != nil {
		return "", "", "", err
	}
	return unix.ByteSliceToString(utb.Sysname[:]),
		unix.ByteSliceToString(utb.Release[:]),
		unix.ByteSliceToString(utb.Machine[:]),
		nil
}

func native() Fingerprinter {
	return NewUname()
}
