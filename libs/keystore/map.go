package keystore

import (
	"fmt"
	"sync"
)

// mapKeystore is an in-memory Keystore implementation for tests and
// ephemeral nodes.
type mapKeystore struct {
	keys   map[KeyName]PrivKey
	keysLk sync.Mutex
}

// NewMapKeystore constructs an in-memory Keystore.
func NewMapKeystore() Keystore {
	return &mapKeystore{keys: make(map[KeyName]PrivKey)}
}

func (m *mapKeystore) Put(n KeyName, k PrivKey) error {
	m.keysLk.Lock()
	defer m.keysLk.Unlock()

	if _, ok := m.keys[n]; ok {
		return fmt.Errorf("keystore: key '%s' already exists", n)
	}

	m.keys[n] = k
	return nil
}

func (m *mapKeystore) Get(n KeyName) (PrivKey, error) {
	m.keysLk.Lock()
	defer m.keysLk.Unlock()

	k, ok := m.keys[n]
	if !ok {
		return PrivKey{}, fmt.Errorf("%w: %s", ErrNotFound, n)
	}

	return k, nil
}

func (m *mapKeystore) Delete(n KeyName) error {
	m.keysLk.Lock()
	defer m.keysLk.Unlock()

	if _, ok := m.keys[n]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, n)
	}

	delete(m.keys, n)
	return nil
}

func (m *mapKeystore) List() ([]KeyName, error) {
	m.keysLk.Lock()
	defer m.keysLk.Unlock()

	keys := make([]KeyName, 0, len(m.keys))
	for k := range m.keys {
		keys = append(keys, k)
	}

	return keys, nil
}
