//go:build !unix

package fingerprint

import (
	"errors"
	"runtime"
)

func systemUname() (string, string, string, error) {
	return "", "", "", errors.New("uname is not available on " + runtime.GOOS)
}
