package shrexnd

import (
	"fmt"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"github.com/libp2p/go-libp2p/core/protocol"
)

var log = logging.Logger("shrex/nd")

const (
	// requestSizeCap is the maximum expected size of an incoming sample request
	// in bytes. Requests over the cap fail the exchange.
	requestSizeCap = 256
	// responseSizeCap is the maximum expected size of a sample response: one
	// share plus the NMT proof path for it.
	responseSizeCap = 64 << 10
)

// protocolID builds a protocol id for sample exchange on the given network.
func protocolID(network string) protocol.ID {
	return protocol.ID(fmt.Sprintf("/%s/shrex/nd/v0.0.3", network))
}

// Option is the functional option that is applied to the shrex/nd protocol to
// configure its parameters.
type Option func(*Parameters)

// Parameters is the set of parameters that must be configured for the shrex/nd
// protocol.
type Parameters struct {
	// ReadTimeout sets the timeout for reading messages from the stream.
	ReadTimeout time.Duration

	// WriteTimeout sets the timeout for writing messages to the stream.
	WriteTimeout time.Duration

	// ServeTimeout defines the deadline for serving a single request.
	ServeTimeout time.Duration
}

func DefaultParameters() *Parameters {
	return &Parameters{
		ReadTimeout:  time.Second * 5,
		WriteTimeout: time.Second * 10,
		ServeTimeout: time.Second * 10,
	}
}

const errSuffix = "value should be positive and non-zero"

func (p *Parameters) Validate() error {
	if p.ReadTimeout <= 0 {
		return fmt.Errorf("invalid stream read timeout: %v, %s", p.ReadTimeout, errSuffix)
	}
	if p.WriteTimeout <= 0 {
		return fmt.Errorf("invalid write timeout: %v, %s", p.WriteTimeout, errSuffix)
	}
	if p.ServeTimeout <= 0 {
		return fmt.Errorf("invalid serve timeout: %v, %s", p.ServeTimeout, errSuffix)
	}
	return nil
}

// WithReadTimeout is a functional option that configures the
// `ReadTimeout` parameter.
func WithReadTimeout(timeout time.Duration) Option {
	return func(p *Parameters) {
		p.ReadTimeout = timeout
	}
}

// WithWriteTimeout is a functional option that configures the
// `WriteTimeout` parameter.
func WithWriteTimeout(timeout time.Duration) Option {
	return func(p *Parameters) {
		p.WriteTimeout = timeout
	}
}

// WithServeTimeout is a functional option that configures the
// `ServeTimeout` parameter.
func WithServeTimeout(timeout time.Duration) Option {
	return func(p *Parameters) {
		p.ServeTimeout = timeout
	}
}
