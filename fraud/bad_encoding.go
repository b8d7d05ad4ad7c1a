package fraud

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/celestiaorg/celestia-light/header"
	"github.com/celestiaorg/celestia-light/share"
)

// BadEncodingProof is the evidence of a broken data-availability guarantee for
// a single height. It is produced when sampling observed structurally valid
// NMT proofs that do not match the root committed to by the header, served by
// two independent peers.
type BadEncodingProof struct {
	HeaderHash  header.Hash        `json:"header_hash"`
	BlockHeight uint64             `json:"block_height"`
	Coords      share.SampleCoords `json:"coords"`
}

// CreateBadEncodingProof builds a BadEncodingProof out of the byzantine error
// sampling escalated for the given header.
func CreateBadEncodingProof(hash header.Hash, height uint64, byzErr *share.ErrByzantine) *BadEncodingProof {
	return &BadEncodingProof{
		HeaderHash:  hash,
		BlockHeight: height,
		Coords:      byzErr.Coords,
	}
}

// Height returns the height of the block the proof incriminates.
func (p *BadEncodingProof) Height() uint64 {
	return p.BlockHeight
}

// Validate performs basic consistency checks of the proof against the header
// it incriminates.
func (p *BadEncodingProof) Validate(h *header.ExtendedHeader) error {
	if p.BlockHeight == 0 {
		return errors.New("fraud: proof with zero height")
	}
	if h.Height != p.BlockHeight {
		return fmt.Errorf("fraud: proof height %d does not match header height %d", p.BlockHeight, h.Height)
	}
	if h.Hash().String() != p.HeaderHash.String() {
		return fmt.Errorf("fraud: proof hash %s does not match header hash %s", p.HeaderHash, h.Hash())
	}
	if width := h.DAH.SquareWidth(); p.Coords.Row >= width || p.Coords.Col >= width {
		return fmt.Errorf("fraud: proof coordinates (%d, %d) outside of square width %d",
			p.Coords.Row, p.Coords.Col, width)
	}
	return nil
}

// MarshalBinary converts the proof to its canonical serialized form.
func (p *BadEncodingProof) MarshalBinary() ([]byte, error) {
	return json.Marshal(p)
}

// UnmarshalBinary parses the canonical serialized form of the proof.
func (p *BadEncodingProof) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, p)
}

func (p *BadEncodingProof) String() string {
	return fmt.Sprintf("bad encoding proof: height %d, sample (%d, %d)",
		p.BlockHeight, p.Coords.Row, p.Coords.Col)
}
