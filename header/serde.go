package header

import (
	"fmt"
	"time"

	pubsub_pb "github.com/libp2p/go-libp2p-pubsub/pb"
	"golang.org/x/crypto/blake2b"

	header_pb "github.com/celestiaorg/celestia-light/header/pb"
	"github.com/celestiaorg/celestia-light/share"
)

// MarshalExtendedHeader serializes the given ExtendedHeader to bytes using
// protobuf.
func MarshalExtendedHeader(in *ExtendedHeader) ([]byte, error) {
	return ExtendedHeaderToProto(in).Marshal()
}

// UnmarshalExtendedHeader deserializes the given data into a new
// ExtendedHeader.
func UnmarshalExtendedHeader(data []byte) (*ExtendedHeader, error) {
	in := &header_pb.ExtendedHeader{}
	if err := in.Unmarshal(data); err != nil {
		return nil, err
	}
	return ExtendedHeaderFromProto(in)
}

// ExtendedHeaderToProto converts the ExtendedHeader to its protobuf
// representation.
func ExtendedHeaderToProto(in *ExtendedHeader) *header_pb.ExtendedHeader {
	out := &header_pb.ExtendedHeader{
		ChainId:            in.ChainID,
		Height:             in.Height,
		Time:               in.Time.UnixNano(),
		LastHeaderHash:     in.LastHeaderHash,
		DataHash:           in.DataHash,
		ValidatorsHash:     in.ValidatorsHash,
		NextValidatorsHash: in.NextValidatorsHash,
	}
	if in.DAH != nil {
		out.Dah = &header_pb.DataAvailabilityHeader{
			RowRoots:    in.DAH.RowRoots,
			ColumnRoots: in.DAH.ColumnRoots,
		}
	}
	return out
}

// ExtendedHeaderFromProto converts the protobuf representation back to an
// ExtendedHeader.
func ExtendedHeaderFromProto(in *header_pb.ExtendedHeader) (*ExtendedHeader, error) {
	out := &ExtendedHeader{
		RawHeader: RawHeader{
			ChainID:            in.ChainId,
			Height:             in.Height,
			Time:               time.Unix(0, in.Time).UTC(),
			LastHeaderHash:     in.LastHeaderHash,
			DataHash:           in.DataHash,
			ValidatorsHash:     in.ValidatorsHash,
			NextValidatorsHash: in.NextValidatorsHash,
		},
	}
	if in.Dah != nil {
		out.DAH = &share.Root{
			RowRoots:    in.Dah.RowRoots,
			ColumnRoots: in.Dah.ColumnRoots,
		}
	}
	return out, nil
}

// MarshalBinary marshals ExtendedHeader to binary.
func (eh *ExtendedHeader) MarshalBinary() ([]byte, error) {
	return MarshalExtendedHeader(eh)
}

// UnmarshalBinary unmarshals ExtendedHeader from binary.
func (eh *ExtendedHeader) UnmarshalBinary(data []byte) error {
	if eh == nil {
		return fmt.Errorf("header: cannot UnmarshalBinary - nil ExtendedHeader")
	}
	out, err := UnmarshalExtendedHeader(data)
	if err != nil {
		return err
	}
	*eh = *out
	return nil
}

// MsgID computes an id for the given pubsub message to deduplicate gossip.
// Hashing the whole message makes malformed equivocations distinguishable.
func MsgID(pmsg *pubsub_pb.Message) string {
	mID := func(data []byte) string {
		hash := blake2b.Sum256(data)
		return string(hash[:])
	}
	h, err := UnmarshalExtendedHeader(pmsg.Data)
	if err != nil || h.Validate() != nil {
		return mID(pmsg.Data)
	}
	return h.Hash().String()
}
