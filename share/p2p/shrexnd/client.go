package shrexnd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/core/protocol"

	"github.com/celestiaorg/go-libp2p-messenger/serde"
	"github.com/celestiaorg/nmt"

	"github.com/celestiaorg/celestia-light/share"
	pb "github.com/celestiaorg/celestia-light/share/p2p/shrexnd/pb"
)

var (
	// ErrNotFound is returned when the peer does not have the requested sample.
	ErrNotFound = errors.New("shrex/nd: requested sample not found")
	// ErrInvalidResponse is returned when the peer responds with a structurally
	// broken message. The peer is at fault and must not be retried.
	ErrInvalidResponse = errors.New("shrex/nd: invalid response")
)

// Client implements the client side of the shrex/nd protocol. It requests a
// single share together with its row inclusion proof and verifies the proof
// against the given root before handing the sample to the caller.
type Client struct {
	params     *Parameters
	protocolID protocol.ID

	host host.Host
}

// NewClient creates a new shrex/nd client.
func NewClient(host host.Host, network string, opts ...Option) (*Client, error) {
	params := DefaultParameters()
	for _, opt := range opts {
		opt(params)
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("shrex-nd: client creation failed: %w", err)
	}

	return &Client{
		params:     params,
		protocolID: protocolID(network),
		host:       host,
	}, nil
}

// GetSample requests the share at the given square coordinates from the peer
// and verifies it against the root. A share.ErrInvalidProof return means the
// peer served a structurally valid proof that does not match the root.
func (c *Client) GetSample(
	ctx context.Context,
	root *share.Root,
	row, col int,
	peerID peer.ID,
) (*share.Sample, error) {
	if err := (share.SampleCoords{Row: row, Col: col}).Validate(root.SquareWidth()); err != nil {
		return nil, err
	}

	stream, err := c.host.NewStream(ctx, peerID, c.protocolID)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	req := &pb.SampleRequest{
		RootHash: root.Hash(),
		Row:      uint32(row),
		Col:      uint32(col),
	}

	// if context doesn't have a deadline use the default one
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.params.ReadTimeout)
	}
	if err = stream.SetDeadline(deadline); err != nil {
		log.Debugw("client: setting deadline", "err", err)
	}

	_, err = serde.Write(stream, req)
	if err != nil {
		return nil, fmt.Errorf("client: writing request: %w", err)
	}

	if err = stream.CloseWrite(); err != nil {
		log.Debugw("client: closing write side of the stream", "err", err)
	}

	var resp pb.SampleResponse
	_, err = serde.Read(io.LimitReader(stream, responseSizeCap), &resp)
	if err != nil {
		return nil, fmt.Errorf("client: reading response: %w", err)
	}

	if err = statusToErr(resp.Status); err != nil {
		return nil, err
	}

	sample, err := responseToSample(&resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidResponse, err)
	}

	if err = sample.Verify(root, row, col); err != nil {
		return nil, err
	}

	return sample, nil
}

// responseToSample converts a proto response to a share.Sample.
func responseToSample(resp *pb.SampleResponse) (*share.Sample, error) {
	shr, err := share.NewShare(resp.Share)
	if err != nil {
		return nil, err
	}
	if resp.Proof == nil {
		return nil, errors.New("response without proof")
	}

	var proof nmt.Proof
	if len(resp.Proof.LeafHash) > 0 {
		proof = nmt.NewAbsenceProof(
			int(resp.Proof.Start),
			int(resp.Proof.End),
			resp.Proof.Nodes,
			resp.Proof.LeafHash,
			resp.Proof.IsMaxNamespaceIgnored,
		)
	} else {
		proof = nmt.NewInclusionProof(
			int(resp.Proof.Start),
			int(resp.Proof.End),
			resp.Proof.Nodes,
			resp.Proof.IsMaxNamespaceIgnored,
		)
	}

	return &share.Sample{
		Share: shr,
		Proof: &proof,
	}, nil
}

func statusToErr(code pb.SampleResponse_StatusCode) error {
	switch code {
	case pb.SampleResponse_OK:
		return nil
	case pb.SampleResponse_NOT_FOUND:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: status %s", ErrInvalidResponse, code.String())
	}
}
