package node

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/celestiaorg/celestia-light/build"
	"github.com/celestiaorg/celestia-light/pruner"
	"github.com/celestiaorg/celestia-light/share/availability/light"
)

// Config is the main configuration structure for a Node. It combines
// configuration units for all Node subsystems.
type Config struct {
	P2P    P2PConfig
	Header HeaderConfig
	DAS    DASConfig
	Pruner PrunerConfig
}

// P2PConfig combines all configuration fields for the networking layer.
type P2PConfig struct {
	// Network is the name of the DA network the node joins.
	Network string
	// ListenAddresses is the multiaddresses the libp2p host listens on.
	ListenAddresses []string
	// BootstrapPeers overrides the network's built-in bootstrap peers when
	// non-empty.
	BootstrapPeers []string
	// TrustedPeers are peers the node trusts for head requests. Defaults to
	// the bootstrap peers when empty.
	TrustedPeers []string
	// PeerExchange toggles gossipsub peer exchange.
	PeerExchange bool
}

// HeaderConfig combines all configuration fields for header syncing.
type HeaderConfig struct {
	// TrustingPeriod is the period through which a stored header is
	// considered subjectively valid.
	TrustingPeriod time.Duration
	// BlockTime is the expected block production interval of the network.
	BlockTime time.Duration
	// MaxRequestSize is the max amount of headers requested per batch.
	MaxRequestSize uint64
}

// DASConfig combines all configuration fields for the data availability
// sampler.
type DASConfig struct {
	// SampleAmount is the amount of shares sampled per square.
	SampleAmount uint
	// SamplingRange is the maximum amount of heights per catchup job.
	SamplingRange uint64
	// ConcurrencyLimit is the maximum amount of concurrently running workers.
	ConcurrencyLimit int
	// SampleFrom is the height sampling starts from on an empty checkpoint.
	SampleFrom uint64
	// SampleTimeout is the maximum amount of time a single sample may take.
	SampleTimeout time.Duration
}

// PrunerConfig combines all configuration fields for pruning.
type PrunerConfig struct {
	// Enabled toggles pruning of historical headers and sampling results.
	Enabled bool
	// PruneCycle is the frequency of pruning sweeps.
	PruneCycle time.Duration
	// RetentionDepth is the amount of recent heights kept around.
	RetentionDepth uint64
}

// DefaultConfig provides a default Config for the given network.
func DefaultConfig(network build.Network) *Config {
	return &Config{
		P2P: P2PConfig{
			Network: network.String(),
			ListenAddresses: []string{
				"/ip4/0.0.0.0/tcp/2121",
				"/ip6/::/tcp/2121",
			},
			PeerExchange: true,
		},
		Header: HeaderConfig{
			TrustingPeriod: 168 * time.Hour,
			BlockTime:      build.BlockTime,
			MaxRequestSize: 512,
		},
		DAS: DASConfig{
			SampleAmount:     light.DefaultSampleAmount,
			SamplingRange:    100,
			ConcurrencyLimit: 16,
			SampleFrom:       1,
			SampleTimeout:    time.Minute,
		},
		Pruner: PrunerConfig{
			Enabled:        true,
			PruneCycle:     time.Minute * 5,
			RetentionDepth: pruner.DefaultRetentionDepth,
		},
	}
}

// Validate performs basic validation of the Config.
func (cfg *Config) Validate() error {
	if _, err := build.Network(cfg.P2P.Network).Validate(); err != nil {
		return fmt.Errorf("node: %w: %s", err, cfg.P2P.Network)
	}
	if len(cfg.P2P.ListenAddresses) == 0 {
		return fmt.Errorf("node: no listen addresses configured")
	}
	if cfg.Header.TrustingPeriod <= 0 || cfg.Header.BlockTime <= 0 || cfg.Header.MaxRequestSize == 0 {
		return fmt.Errorf("node: invalid header config")
	}
	if cfg.DAS.SampleAmount == 0 || cfg.DAS.SampleFrom == 0 {
		return fmt.Errorf("node: invalid das config")
	}
	if cfg.Pruner.Enabled && (cfg.Pruner.PruneCycle <= 0 || cfg.Pruner.RetentionDepth == 0) {
		return fmt.Errorf("node: invalid pruner config")
	}
	return nil
}

// SaveConfig saves Config 'cfg' under the given 'path'.
func SaveConfig(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return cfg.Encode(f)
}

// LoadConfig loads Config from the given 'path'.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	return &cfg, cfg.Decode(f)
}

// Encode flushes the Config into w in TOML format.
func (cfg *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Decode reads a TOML Config from r.
func (cfg *Config) Decode(r io.Reader) error {
	_, err := toml.NewDecoder(r).Decode(cfg)
	return err
}
