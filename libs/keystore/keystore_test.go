package keystore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSKeystore(t *testing.T) {
	ks, err := NewFSKeystore(t.TempDir())
	require.NoError(t, err)

	key := PrivKey{Body: []byte("secret")}
	require.NoError(t, ks.Put("p2p-key", key))

	got, err := ks.Get("p2p-key")
	require.NoError(t, err)
	assert.Equal(t, key, got)

	// second Put under the same name must not silently overwrite
	require.Error(t, ks.Put("p2p-key", PrivKey{Body: []byte("other")}))

	names, err := ks.List()
	require.NoError(t, err)
	assert.Equal(t, []KeyName{"p2p-key"}, names)

	require.NoError(t, ks.Delete("p2p-key"))
	_, err = ks.Get("p2p-key")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMapKeystore(t *testing.T) {
	ks := NewMapKeystore()

	_, err := ks.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, ks.Put("k", PrivKey{Body: []byte{1, 2, 3}}))
	got, err := ks.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got.Body)
}

func FuzzKeyNameBase32(f *testing.F) {
	for _, c := range []string{"p2p-key", "test2", ">F?FD?FDSJFKL$&*(#W)"} {
		f.Add(c)
	}

	f.Fuzz(func(t *testing.T, data string) {
		k := KeyName(data)
		decoded, err := KeyNameFromBase32(k.Base32())
		if err != nil {
			t.Errorf("decoding base32: %v", err)
		}
		if decoded != k {
			t.Errorf("round-trip mismatch: %q != %q", decoded, k)
		}
	})
}
