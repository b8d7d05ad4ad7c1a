// Package keystore provides persistence for the node's private keys.
package keystore

import (
	"encoding/base32"
	"errors"
	"fmt"
)

// ErrNotFound is returned when the requested key is not in the Keystore.
var ErrNotFound = errors.New("keystore: key not found")

// PrivKey is a wrapper around a serialized private key.
type PrivKey struct {
	Body []byte
}

// KeyName is a human-readable identifier of a key in the Keystore.
type KeyName string

func (k KeyName) String() string {
	return string(k)
}

// Base32 encodes the KeyName so it is safe to use as a file name.
func (k KeyName) Base32() string {
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString([]byte(k))
}

// KeyNameFromBase32 decodes a KeyName previously encoded with Base32.
func KeyNameFromBase32(bn string) (KeyName, error) {
	name, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(bn)
	if err != nil {
		return "", fmt.Errorf("keystore: decoding key name: %w", err)
	}

	return KeyName(name), nil
}

// Keystore stores and provides access to serialized private keys.
type Keystore interface {
	// Put stores the given key under the given name.
	Put(KeyName, PrivKey) error
	// Get reads the key stored under the given name.
	Get(KeyName) (PrivKey, error)
	// Delete removes the key stored under the given name.
	Delete(KeyName) error
	// List reports the names of all stored keys.
	List() ([]KeyName, error)
}
