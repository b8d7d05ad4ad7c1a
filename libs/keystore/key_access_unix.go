//go:build darwin || freebsd || linux

package keystore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// keyAccess errors if the key file is readable by anyone but the owner.
func keyAccess(path string) error {
	st, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// existence is checked by the caller
			return nil
		}
		return err
	}

	if mode := st.Mode(); mode&0077 != 0 {
		return fmt.Errorf("keystore: wrong key file permissions, required: 0600, got: %#o", mode)
	}
	return nil
}
