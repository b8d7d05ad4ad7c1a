package shrexnd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/protocol"
	"go.uber.org/zap"

	"github.com/celestiaorg/go-libp2p-messenger/serde"

	"github.com/celestiaorg/celestia-light/share"
	pb "github.com/celestiaorg/celestia-light/share/p2p/shrexnd/pb"
)

// Accessor gives the Server access to samples of locally stored data squares.
type Accessor interface {
	// Sample returns the share at the given coordinates of the square
	// committed to by the root hash, with its row inclusion proof.
	// Must return ErrNotFound when the square or coordinates are unknown.
	Sample(ctx context.Context, rootHash []byte, row, col int) (*share.Sample, error)
}

// Server implements the server side of the shrex/nd protocol, serving shares
// with proofs to remote peers.
type Server struct {
	params     *Parameters
	protocolID protocol.ID

	accessor Accessor
	host     host.Host

	cancel context.CancelFunc
}

// NewServer creates a new shrex/nd server.
func NewServer(host host.Host, network string, accessor Accessor, opts ...Option) (*Server, error) {
	params := DefaultParameters()
	for _, opt := range opts {
		opt(params)
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("shrex-nd: server creation failed: %w", err)
	}

	return &Server{
		params:     params,
		protocolID: protocolID(network),
		accessor:   accessor,
		host:       host,
	}, nil
}

// Start sets the stream handler for the protocol.
func (srv *Server) Start(context.Context) error {
	ctx, cancel := context.WithCancel(context.Background())
	srv.cancel = cancel

	srv.host.SetStreamHandler(srv.protocolID, func(s network.Stream) {
		srv.handleSample(ctx, s)
	})
	return nil
}

// Stop removes the stream handler.
func (srv *Server) Stop(context.Context) error {
	srv.cancel()
	srv.host.RemoveStreamHandler(srv.protocolID)
	return nil
}

func (srv *Server) handleSample(ctx context.Context, stream network.Stream) {
	logger := log.With("peer", stream.Conn().RemotePeer())

	err := stream.SetReadDeadline(time.Now().Add(srv.params.ReadTimeout))
	if err != nil {
		logger.Debugw("server: setting read deadline", "err", err)
	}

	var req pb.SampleRequest
	_, err = serde.Read(io.LimitReader(stream, requestSizeCap), &req)
	if err != nil {
		logger.Warnw("server: reading request", "err", err)
		stream.Reset() //nolint:errcheck
		return
	}
	logger = logger.With("row", req.Row, "col", req.Col)

	if err = stream.CloseRead(); err != nil {
		logger.Debugw("server: closing read side of the stream", "err", err)
	}

	if err = validateRequest(&req); err != nil {
		logger.Debugw("server: invalid request", "err", err)
		srv.respondStatus(logger, stream, pb.SampleResponse_INVALID)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, srv.params.ServeTimeout)
	defer cancel()

	sample, err := srv.accessor.Sample(ctx, req.RootHash, int(req.Row), int(req.Col))
	switch {
	case errors.Is(err, ErrNotFound):
		srv.respondStatus(logger, stream, pb.SampleResponse_NOT_FOUND)
		return
	case err != nil:
		logger.Errorw("server: retrieving sample", "err", err)
		srv.respondStatus(logger, stream, pb.SampleResponse_INTERNAL)
		return
	}

	srv.respond(logger, stream, sampleToResponse(sample))
}

// validateRequest checks correctness of the request.
func validateRequest(req *pb.SampleRequest) error {
	if len(req.RootHash) == 0 {
		return errors.New("empty root hash")
	}
	return nil
}

func (srv *Server) respondStatus(
	logger *zap.SugaredLogger,
	stream network.Stream,
	status pb.SampleResponse_StatusCode,
) {
	srv.respond(logger, stream, &pb.SampleResponse{Status: status})
}

// sampleToResponse encodes a sample into a proto response with OK status.
func sampleToResponse(sample *share.Sample) *pb.SampleResponse {
	return &pb.SampleResponse{
		Status: pb.SampleResponse_OK,
		Share:  sample.Share,
		Proof: &pb.Proof{
			Start:                 int64(sample.Proof.Start()),
			End:                   int64(sample.Proof.End()),
			Nodes:                 sample.Proof.Nodes(),
			LeafHash:              sample.Proof.LeafHash(),
			IsMaxNamespaceIgnored: sample.Proof.IsMaxNamespaceIDIgnored(),
		},
	}
}

func (srv *Server) respond(logger *zap.SugaredLogger, stream network.Stream, resp *pb.SampleResponse) {
	err := stream.SetWriteDeadline(time.Now().Add(srv.params.WriteTimeout))
	if err != nil {
		logger.Debugw("server: setting write deadline", "err", err)
	}

	_, err = serde.Write(stream, resp)
	if err != nil {
		logger.Warnw("server: writing response", "err", err)
		stream.Reset() //nolint:errcheck
		return
	}

	if err = stream.Close(); err != nil {
		logger.Debugw("server: closing stream", "err", err)
	}
}
