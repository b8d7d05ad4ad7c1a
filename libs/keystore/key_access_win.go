//go:build windows

package keystore

// keyAccess is a no-op on windows, which has no unix-style file modes.
func keyAccess(string) error {
	return nil
}
