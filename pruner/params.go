package pruner

import (
	"fmt"
	"time"
)

// DefaultRetentionDepth is the amount of most recent heights whose headers
// and sampling results are kept around.
const DefaultRetentionDepth uint64 = 100_000

// Option configures the pruning Service.
type Option func(*Params)

// Params is the set of parameters that must be configured for the pruning
// Service.
type Params struct {
	// PruneCycle is the frequency at which the pruning Service runs a sweep.
	PruneCycle time.Duration
	// RetentionDepth is the amount of heights below the local head that are
	// retained. Everything older gets pruned.
	RetentionDepth uint64
}

func DefaultParams() Params {
	return Params{
		PruneCycle:     time.Minute * 5,
		RetentionDepth: DefaultRetentionDepth,
	}
}

func (p *Params) Validate() error {
	if p.PruneCycle <= 0 {
		return fmt.Errorf("pruner: invalid prune cycle, value should be positive and non-zero")
	}
	if p.RetentionDepth == 0 {
		return fmt.Errorf("pruner: invalid retention depth, value should be positive and non-zero")
	}
	return nil
}

// WithPruneCycle configures how often the pruning Service triggers a sweep.
func WithPruneCycle(cycle time.Duration) Option {
	return func(p *Params) {
		p.PruneCycle = cycle
	}
}

// WithRetentionDepth configures the amount of most recent heights retained.
func WithRetentionDepth(depth uint64) Option {
	return func(p *Params) {
		p.RetentionDepth = depth
	}
}
