package keystore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// fsKeystore implements Keystore over the FileSystem. Each key lives in its
// own file, named after the Base32 encoding of its KeyName, with 0600 access.
type fsKeystore struct {
	path string
}

// NewFSKeystore creates a Keystore over the given directory, creating the
// directory if it does not exist yet.
func NewFSKeystore(path string) (Keystore, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("keystore: creating dir: %w", err)
	}

	return &fsKeystore{path: path}, nil
}

func (f *fsKeystore) Put(n KeyName, k PrivKey) error {
	path := f.pathTo(n.Base32())

	_, err := os.Stat(path)
	if err == nil {
		return fmt.Errorf("keystore: key '%s' already exists", n)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("keystore: checking key '%s': %w", n, err)
	}

	if err := os.WriteFile(path, k.Body, 0600); err != nil {
		return fmt.Errorf("keystore: writing key '%s': %w", n, err)
	}
	return nil
}

func (f *fsKeystore) Get(n KeyName) (PrivKey, error) {
	path := f.pathTo(n.Base32())

	if err := keyAccess(path); err != nil {
		return PrivKey{}, err
	}

	body, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return PrivKey{}, fmt.Errorf("%w: %s", ErrNotFound, n)
		}
		return PrivKey{}, fmt.Errorf("keystore: reading key '%s': %w", n, err)
	}

	return PrivKey{Body: body}, nil
}

func (f *fsKeystore) Delete(n KeyName) error {
	if err := os.Remove(f.pathTo(n.Base32())); err != nil {
		return fmt.Errorf("keystore: removing key '%s': %w", n, err)
	}
	return nil
}

func (f *fsKeystore) List() ([]KeyName, error) {
	entries, err := os.ReadDir(f.path)
	if err != nil {
		return nil, fmt.Errorf("keystore: listing dir: %w", err)
	}

	keys := make([]KeyName, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		name, err := KeyNameFromBase32(e.Name())
		if err != nil {
			// not a key file, skip
			continue
		}
		keys = append(keys, name)
	}

	return keys, nil
}

func (f *fsKeystore) pathTo(file string) string {
	return filepath.Join(f.path, file)
}
