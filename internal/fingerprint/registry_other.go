//go:build !windows

package fingerprint

func queryRegistry(path, name string) (string, bool) {
	return "", false
}
