package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/celestia-light/build"
)

func TestInitAndOpenStore(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, IsInit(dir))

	require.NoError(t, Init(dir, DefaultConfig(build.Private)))
	assert.True(t, IsInit(dir))

	// Init over an existing store keeps the persisted config
	require.NoError(t, Init(dir, DefaultConfig(build.Private)))

	store, err := OpenStore(dir)
	require.NoError(t, err)

	cfg, err := store.Config()
	require.NoError(t, err)
	assert.Equal(t, build.Private.String(), cfg.P2P.Network)

	ks, err := store.Keystore()
	require.NoError(t, err)
	require.NotNil(t, ks)

	// the directory is locked while the store is open
	_, err = OpenStore(dir)
	assert.ErrorIs(t, err, ErrOpened)

	require.NoError(t, store.Close())

	// and reopens fine after Close
	store, err = OpenStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestOpenStoreNotInited(t *testing.T) {
	_, err := OpenStore(t.TempDir())
	assert.ErrorIs(t, err, ErrNotInited)
}

func TestIdentityPersists(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(dir, DefaultConfig(build.Private)))

	store, err := OpenStore(dir)
	require.NoError(t, err)

	ks, err := store.Keystore()
	require.NoError(t, err)

	priv1, err := identity(ks)
	require.NoError(t, err)
	priv2, err := identity(ks)
	require.NoError(t, err)
	assert.True(t, priv1.Equals(priv2))

	require.NoError(t, store.Close())
}
