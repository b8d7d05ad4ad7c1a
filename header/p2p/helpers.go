package p2p

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/core/protocol"

	"github.com/celestiaorg/go-libp2p-messenger/serde"

	"github.com/celestiaorg/celestia-light/header"
	p2p_pb "github.com/celestiaorg/celestia-light/header/p2p/pb"
)

const (
	// requestSizeCap limits the size of an inbound request. A valid request is
	// a few dozen bytes, anything bigger is garbage.
	requestSizeCap = 1024
	// responseSizeCap limits the total size of responses read per request.
	responseSizeCap = 10 << 20
)

func protocolID(network string) protocol.ID {
	return protocol.ID(fmt.Sprintf("/%s/header-ex/v0.0.3", network))
}

func pubsubTopicID(network string) string {
	return fmt.Sprintf("/%s/header-sub/v0.0.1", network)
}

// sendMessage opens a stream to the given peer and sends a HeaderRequest over
// it. It returns the responses, the total size of fetched data and the request
// duration in milliseconds.
func sendMessage(
	ctx context.Context,
	host host.Host,
	to peer.ID,
	protocol protocol.ID,
	req *p2p_pb.HeaderRequest,
) ([]*p2p_pb.HeaderResponse, uint64, uint64, error) {
	startTime := time.Now()
	stream, err := host.NewStream(ctx, to, protocol)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("header/p2p: failed to open a new stream: %w", err)
	}

	// set stream deadline from the context deadline.
	// if it is empty, then we assume that it will
	// hang until the server will close the stream by the timeout.
	if dl, ok := ctx.Deadline(); ok {
		if err = stream.SetDeadline(dl); err != nil {
			log.Debugw("error setting deadline: %s", err)
		}
	}

	// send request
	_, err = serde.Write(stream, req)
	if err != nil {
		stream.Reset() //nolint:errcheck
		return nil, 0, 0, fmt.Errorf("header/p2p: failed to write a request: %w", err)
	}

	err = stream.CloseWrite()
	if err != nil {
		return nil, 0, 0, err
	}

	// a malicious server may try to flood us, so responses are read through a
	// hard total size cap
	reader := io.LimitReader(stream, responseSizeCap)
	headers := make([]*p2p_pb.HeaderResponse, 0)
	totalResponseSize := uint64(0)
	for i := uint64(0); i < req.Amount; i++ {
		resp := new(p2p_pb.HeaderResponse)
		msgSize, err := serde.Read(reader, resp)
		if err != nil {
			if err == io.EOF {
				break
			}
			stream.Reset() //nolint:errcheck
			return nil, 0, 0, fmt.Errorf("header/p2p: failed to read a response: %w", err)
		}

		totalResponseSize += uint64(msgSize)
		headers = append(headers, resp)
	}

	duration := time.Since(startTime).Milliseconds()
	if err = stream.Close(); err != nil {
		log.Errorw("closing stream", "err", err)
	}

	return headers, totalResponseSize, uint64(duration), nil
}

// convertStatusCodeToError converts passed status code into an error.
func convertStatusCodeToError(code p2p_pb.StatusCode) error {
	switch code {
	case p2p_pb.StatusCode_OK:
		return nil
	case p2p_pb.StatusCode_NOT_FOUND:
		return header.ErrNotFound
	default:
		return fmt.Errorf("unknown status code %d", code)
	}
}
