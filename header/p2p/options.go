package p2p

import (
	"fmt"
	"time"
)

// ClientOption is a functional option that configures the Exchange client.
type ClientOption func(*ClientParameters)

// ClientParameters is the set of parameters that must be configured for
// the exchange client.
type ClientParameters struct {
	// MinResponses defines the minimum number of head responses to aggregate
	// before deciding on the network head.
	MinResponses int
	// MaxRequestSize defines the max amount of headers that can be handled
	// with one request.
	MaxRequestSize uint64
	// MaxHeadersPerRequest defines the max amount of headers in a single
	// request sent to one peer during a range request.
	MaxHeadersPerRequest uint64
	// MaxAwaitingTime specifies the duration for which a disconnected peer is
	// remembered before it is dropped from the tracker.
	MaxAwaitingTime time.Duration
	// DefaultScore specifies the score a freshly connected peer starts with.
	DefaultScore float32
	// RequestTimeout defines a timeout after which a single range request to
	// one peer is retried against another.
	RequestTimeout time.Duration
	// MaxPeerTrackerSize specifies the max number of peers the tracker holds.
	MaxPeerTrackerSize int

	gcCycle time.Duration
}

// DefaultClientParameters returns the default params to configure the exchange
// client.
func DefaultClientParameters() ClientParameters {
	return ClientParameters{
		MinResponses:         2,
		MaxRequestSize:       512,
		MaxHeadersPerRequest: 64,
		MaxAwaitingTime:      time.Hour,
		DefaultScore:         1,
		RequestTimeout:       time.Second * 8,
		MaxPeerTrackerSize:   100,
		gcCycle:              time.Minute * 30,
	}
}

func (p *ClientParameters) Validate() error {
	if p.MinResponses <= 0 {
		return fmt.Errorf("header/p2p: invalid MinResponses: %d", p.MinResponses)
	}
	if p.MaxRequestSize == 0 {
		return fmt.Errorf("header/p2p: invalid MaxRequestSize: %d", p.MaxRequestSize)
	}
	if p.MaxHeadersPerRequest == 0 || p.MaxHeadersPerRequest > p.MaxRequestSize {
		return fmt.Errorf("header/p2p: invalid MaxHeadersPerRequest: %d", p.MaxHeadersPerRequest)
	}
	if p.MaxAwaitingTime <= 0 {
		return fmt.Errorf("header/p2p: invalid MaxAwaitingTime: %v", p.MaxAwaitingTime)
	}
	if p.DefaultScore <= 0 {
		return fmt.Errorf("header/p2p: invalid DefaultScore: %f", p.DefaultScore)
	}
	if p.RequestTimeout <= 0 {
		return fmt.Errorf("header/p2p: invalid RequestTimeout: %v", p.RequestTimeout)
	}
	if p.MaxPeerTrackerSize <= 0 {
		return fmt.Errorf("header/p2p: invalid MaxPeerTrackerSize: %d", p.MaxPeerTrackerSize)
	}
	return nil
}

// WithMinResponses sets the minimum amount of head responses to aggregate.
func WithMinResponses(responses int) ClientOption {
	return func(p *ClientParameters) {
		p.MinResponses = responses
	}
}

// WithMaxHeadersPerRequest sets the max amount of headers requested from a
// single peer at once.
func WithMaxHeadersPerRequest(amount uint64) ClientOption {
	return func(p *ClientParameters) {
		p.MaxHeadersPerRequest = amount
	}
}

// WithRequestTimeout sets the timeout for a single peer request.
func WithRequestTimeout(timeout time.Duration) ClientOption {
	return func(p *ClientParameters) {
		p.RequestTimeout = timeout
	}
}

// ServerOption is a functional option that configures the ExchangeServer.
type ServerOption func(*ServerParameters)

// ServerParameters is the set of parameters that must be configured for
// the exchange server.
type ServerParameters struct {
	// WriteDeadline sets the timeout for sending messages to the stream.
	WriteDeadline time.Duration
	// ReadDeadline sets the timeout for reading messages from the stream.
	ReadDeadline time.Duration
	// MaxRequestSize defines the max amount of headers served in one response.
	MaxRequestSize uint64
	// RangeRequestTimeout bounds the store lookup for a range request.
	RangeRequestTimeout time.Duration
}

// DefaultServerParameters returns the default params to configure the exchange
// server.
func DefaultServerParameters() ServerParameters {
	return ServerParameters{
		WriteDeadline:       time.Second * 8,
		ReadDeadline:        time.Minute,
		MaxRequestSize:      512,
		RangeRequestTimeout: time.Second * 5,
	}
}

func (p *ServerParameters) Validate() error {
	if p.WriteDeadline <= 0 {
		return fmt.Errorf("header/p2p: invalid WriteDeadline: %v", p.WriteDeadline)
	}
	if p.ReadDeadline <= 0 {
		return fmt.Errorf("header/p2p: invalid ReadDeadline: %v", p.ReadDeadline)
	}
	if p.MaxRequestSize == 0 {
		return fmt.Errorf("header/p2p: invalid MaxRequestSize: %d", p.MaxRequestSize)
	}
	if p.RangeRequestTimeout <= 0 {
		return fmt.Errorf("header/p2p: invalid RangeRequestTimeout: %v", p.RangeRequestTimeout)
	}
	return nil
}

// WithMaxRequestSize sets the max amount of headers served in one response.
func WithMaxRequestSize(size uint64) ServerOption {
	return func(p *ServerParameters) {
		p.MaxRequestSize = size
	}
}
