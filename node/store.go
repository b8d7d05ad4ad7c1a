package node

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ipfs/go-datastore"
	dsbadger "github.com/ipfs/go-ds-badger4"
	"github.com/mitchellh/go-homedir"

	"github.com/celestiaorg/celestia-light/libs/fslock"
	"github.com/celestiaorg/celestia-light/libs/keystore"
)

var (
	// ErrOpened is thrown on attempt to open an already open/in-use Store.
	ErrOpened = errors.New("node: store is in use")
	// ErrNotInited is thrown on attempt to open a Store without
	// initialization.
	ErrNotInited = errors.New("node: store is not initialized")
)

// Store encapsulates the node's on-disk state under a root directory, e.g.
// '~/.celestia-light': config, keys and the datastore.
type Store struct {
	path    string
	dirLock *fslock.Locker

	lk   sync.RWMutex
	keys keystore.Keystore
	data datastore.Batching
}

// OpenStore opens the FS Store under the given 'path'. The Store must be
// initialized first, otherwise ErrNotInited is thrown. OpenStore takes a file
// lock on the directory, so only one Store can be open at a time under the
// given 'path', otherwise ErrOpened is thrown.
func OpenStore(path string) (*Store, error) {
	path, err := storePath(path)
	if err != nil {
		return nil, err
	}

	flock, err := fslock.Lock(lockPath(path))
	if err != nil {
		if errors.Is(err, fslock.ErrLocked) {
			return nil, ErrOpened
		}
		return nil, err
	}

	if !IsInit(path) {
		flock.Unlock() //nolint:errcheck
		return nil, ErrNotInited
	}

	return &Store{
		path:    path,
		dirLock: flock,
	}, nil
}

// Path reports the FileSystem path of the Store.
func (s *Store) Path() string {
	return s.path
}

// Config loads the stored node Config.
func (s *Store) Config() (*Config, error) {
	cfg, err := LoadConfig(configPath(s.path))
	if err != nil {
		return nil, fmt.Errorf("node: loading config: %w", err)
	}

	return cfg, nil
}

// PutConfig alters the stored node Config.
func (s *Store) PutConfig(cfg *Config) error {
	if err := SaveConfig(configPath(s.path), cfg); err != nil {
		return fmt.Errorf("node: saving config: %w", err)
	}

	return nil
}

// Keystore provides a Keystore to access the node's keys.
func (s *Store) Keystore() (keystore.Keystore, error) {
	s.lk.Lock()
	defer s.lk.Unlock()

	if s.keys != nil {
		return s.keys, nil
	}

	keys, err := keystore.NewFSKeystore(keysPath(s.path))
	if err != nil {
		return nil, fmt.Errorf("node: opening keystore: %w", err)
	}

	s.keys = keys
	return keys, nil
}

// Datastore provides the disk-backed KV store the node's subsystems persist
// their data in.
func (s *Store) Datastore() (datastore.Batching, error) {
	s.lk.Lock()
	defer s.lk.Unlock()

	if s.data != nil {
		return s.data, nil
	}

	opts := dsbadger.DefaultOptions
	data, err := dsbadger.NewDatastore(dataPath(s.path), &opts)
	if err != nil {
		return nil, fmt.Errorf("node: opening datastore: %w", err)
	}

	s.data = data
	return data, nil
}

// Close closes the Store, freeing the acquired directory lock and the
// datastore.
func (s *Store) Close() error {
	defer s.dirLock.Unlock() //nolint:errcheck

	s.lk.Lock()
	defer s.lk.Unlock()

	if s.data != nil {
		return s.data.Close()
	}
	return nil
}

// Init initializes the node FS Store in the directory under 'path' with the
// given Config persisted on disk.
func Init(path string, cfg *Config) error {
	path, err := storePath(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log.Infof("initializing store over '%s'", path)

	if err := initDir(path); err != nil {
		return err
	}

	flock, err := fslock.Lock(lockPath(path))
	if err != nil {
		if errors.Is(err, fslock.ErrLocked) {
			return ErrOpened
		}
		return err
	}
	defer flock.Unlock() //nolint:errcheck

	if err := initDir(keysPath(path)); err != nil {
		return err
	}
	if err := initDir(dataPath(path)); err != nil {
		return err
	}

	cfgPath := configPath(path)
	if _, err := os.Stat(cfgPath); err == nil {
		log.Infow("config already exists", "path", cfgPath)
		return nil
	}

	if err := SaveConfig(cfgPath, cfg); err != nil {
		return err
	}
	log.Infow("saved config", "path", cfgPath)
	return nil
}

// IsInit checks whether a FS Store was set up under the given 'path'.
func IsInit(path string) bool {
	path, err := storePath(path)
	if err != nil {
		return false
	}

	_, err = LoadConfig(configPath(path))
	return err == nil
}

func storePath(path string) (string, error) {
	return homedir.Expand(filepath.Clean(path))
}

func configPath(base string) string {
	return filepath.Join(base, "config.toml")
}

func lockPath(base string) string {
	return filepath.Join(base, "lock")
}

func keysPath(base string) string {
	return filepath.Join(base, "keys")
}

func dataPath(base string) string {
	return filepath.Join(base, "data")
}

func initDir(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.MkdirAll(path, 0755)
}
