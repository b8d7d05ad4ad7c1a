package das

import (
	"fmt"
	"time"

	"github.com/celestiaorg/celestia-light/events"
)

// errInvalidOption is an error that is returned by Parameters.Validate
// when supplied with invalid values.
// This error will also be returned by NewDASer if supplied with an invalid option
var errInvalidOption = fmt.Errorf("das: invalid option")

func errInvalidOptionValue(optionName string, value string) error {
	return fmt.Errorf("%w: value %s cannot be %s", errInvalidOption, optionName, value)
}

// Option is the functional option that is applied to the DASer instance
// to configure DASing parameters (the Parameters struct)
type Option func(*DASer)

// Parameters is the set of parameters that must be configured for the DASer.
type Parameters struct {
	// SamplingRange is the maximum amount of headers processed in one job.
	SamplingRange uint64

	// ConcurrencyLimit defines the maximum amount of sampling workers running in parallel.
	ConcurrencyLimit int

	// BackgroundStoreInterval is the period of time for background checkpointStore to perform a
	// checkpoint backup.
	BackgroundStoreInterval time.Duration

	// SampleFrom is the height sampling will start from if no previous checkpoint was saved
	SampleFrom uint64

	// SampleTimeout is a maximum amount time sampling of single block may take until it will be
	// canceled.
	SampleTimeout time.Duration

	// BackoffInitialInterval is the delay before the first retry of a failed height.
	BackoffInitialInterval time.Duration

	// BackoffMultiplier scales the delay between subsequent retries of the same height.
	BackoffMultiplier int

	// BackoffMaxRetryCount is the amount of retries of a failed height after which it will only
	// be retried at the longest backoff interval.
	BackoffMaxRetryCount int
}

// DefaultParameters returns the default configuration values for the daser parameters
func DefaultParameters() Parameters {
	return Parameters{
		SamplingRange:           100,
		ConcurrencyLimit:        16,
		BackgroundStoreInterval: 10 * time.Minute,
		SampleFrom:              1,
		SampleTimeout:           time.Minute,
		BackoffInitialInterval:  time.Minute,
		BackoffMultiplier:       4,
		BackoffMaxRetryCount:    10,
	}
}

// Validate validates the values in Parameters
func (p *Parameters) Validate() error {
	if p.SamplingRange <= 0 {
		return errInvalidOptionValue("SamplingRange", "negative or 0")
	}
	if p.ConcurrencyLimit <= 0 {
		return errInvalidOptionValue("ConcurrencyLimit", "negative or 0")
	}
	if p.SampleFrom <= 0 {
		return errInvalidOptionValue("SampleFrom", "negative or 0")
	}
	if p.SampleTimeout <= 0 {
		return errInvalidOptionValue("SampleTimeout", "negative or 0")
	}
	if p.BackoffInitialInterval <= 0 {
		return errInvalidOptionValue("BackoffInitialInterval", "negative or 0")
	}
	if p.BackoffMultiplier <= 0 {
		return errInvalidOptionValue("BackoffMultiplier", "negative or 0")
	}
	if p.BackoffMaxRetryCount < 0 {
		return errInvalidOptionValue("BackoffMaxRetryCount", "negative")
	}
	return nil
}

// WithSamplingRange is a functional option to configure the daser's `SamplingRange` parameter
func WithSamplingRange(samplingRange uint64) Option {
	return func(d *DASer) {
		d.params.SamplingRange = samplingRange
	}
}

// WithConcurrencyLimit is a functional option to configure the daser's `ConcurrencyLimit` parameter
func WithConcurrencyLimit(concurrencyLimit int) Option {
	return func(d *DASer) {
		d.params.ConcurrencyLimit = concurrencyLimit
	}
}

// WithBackgroundStoreInterval is a functional option to configure the daser's
// `BackgroundStoreInterval` parameter
func WithBackgroundStoreInterval(backgroundStoreInterval time.Duration) Option {
	return func(d *DASer) {
		d.params.BackgroundStoreInterval = backgroundStoreInterval
	}
}

// WithSampleFrom is a functional option to configure the daser's `SampleFrom` parameter
func WithSampleFrom(sampleFrom uint64) Option {
	return func(d *DASer) {
		d.params.SampleFrom = sampleFrom
	}
}

// WithSampleTimeout is a functional option to configure the daser's `SampleTimeout` parameter
func WithSampleTimeout(sampleTimeout time.Duration) Option {
	return func(d *DASer) {
		d.params.SampleTimeout = sampleTimeout
	}
}

// WithBackoff is a functional option to configure the retry backoff of failed heights
func WithBackoff(initialInterval time.Duration, multiplier, maxRetryCount int) Option {
	return func(d *DASer) {
		d.params.BackoffInitialInterval = initialInterval
		d.params.BackoffMultiplier = multiplier
		d.params.BackoffMaxRetryCount = maxRetryCount
	}
}

// WithEvents is a functional option setting the publisher sampling lifecycle
// failures are delivered to
func WithEvents(pub events.Publisher) Option {
	return func(d *DASer) {
		d.events = pub
	}
}
