package node

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/celestia-light/build"
)

func TestConfigDefaultsValid(t *testing.T) {
	cfg := DefaultConfig(build.DefaultNetwork)
	require.NoError(t, cfg.Validate())
}

func TestConfigEncodeDecode(t *testing.T) {
	cfg := DefaultConfig(build.Mocha)
	cfg.P2P.TrustedPeers = []string{
		"/ip4/1.2.3.4/tcp/2121/p2p/12D3KooWCBAbQbJSpCpCGKzqz3rAN4ixYbc63K68zJg9aisuAajg",
	}
	cfg.DAS.SampleAmount = 32
	cfg.Pruner.Enabled = false

	var buf bytes.Buffer
	require.NoError(t, cfg.Encode(&buf))

	var got Config
	require.NoError(t, got.Decode(&buf))
	assert.Equal(t, *cfg, got)
}

func TestConfigValidateRejectsUnknownNetwork(t *testing.T) {
	cfg := DefaultConfig(build.DefaultNetwork)
	cfg.P2P.Network = "definitely-not-a-network"
	assert.Error(t, cfg.Validate())
}
