package header

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/celestiaorg/celestia-light/share"
)

// Hash is the canonical blake2b-256 identity of a header.
type Hash []byte

func (h Hash) String() string {
	return hex.EncodeToString(h)
}

// hashSize is the size of Hash in bytes.
const hashSize = blake2b.Size256

// RawHeader is the core chain header a block producer signs over.
type RawHeader struct {
	ChainID            string
	Height             uint64
	Time               time.Time
	LastHeaderHash     Hash
	DataHash           Hash
	ValidatorsHash     Hash
	NextValidatorsHash Hash
}

// ExtendedHeader represents a wrapped RawHeader with the commitment to
// the data in the block extended over a 2D erasure-coded square. It is the
// minimal header a light node needs to sample data availability.
type ExtendedHeader struct {
	RawHeader
	DAH *share.Root
}

// Hash computes the identity of the header over its raw fields. The result is
// stable across marshalling round trips.
func (eh *ExtendedHeader) Hash() Hash {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	h.Write([]byte(eh.ChainID))
	binHeight := make([]byte, 8)
	for i := 0; i < 8; i++ {
		binHeight[i] = byte(eh.Height >> (56 - 8*i))
	}
	h.Write(binHeight)
	binTime := make([]byte, 8)
	nanos := eh.Time.UnixNano()
	for i := 0; i < 8; i++ {
		binTime[i] = byte(uint64(nanos) >> (56 - 8*i))
	}
	h.Write(binTime)
	h.Write(eh.LastHeaderHash)
	h.Write(eh.DataHash)
	h.Write(eh.ValidatorsHash)
	h.Write(eh.NextValidatorsHash)
	return h.Sum(nil)
}

// IsZero reports whether the header is empty.
func (eh *ExtendedHeader) IsZero() bool {
	return eh == nil || eh.Height == 0
}

// Validate performs basic stateless validation of the header fields and
// checks the DAH actually commits to the DataHash.
func (eh *ExtendedHeader) Validate() error {
	if eh.ChainID == "" {
		return fmt.Errorf("header: empty chain id")
	}
	if eh.Height == 0 {
		return fmt.Errorf("header: zero height")
	}
	if eh.Time.IsZero() {
		return fmt.Errorf("header: zero time")
	}
	if eh.Height > 1 && len(eh.LastHeaderHash) != hashSize {
		return fmt.Errorf("header: invalid last header hash size %d", len(eh.LastHeaderHash))
	}
	if len(eh.ValidatorsHash) != hashSize {
		return fmt.Errorf("header: invalid validators hash size %d", len(eh.ValidatorsHash))
	}
	if len(eh.NextValidatorsHash) != hashSize {
		return fmt.Errorf("header: invalid next validators hash size %d", len(eh.NextValidatorsHash))
	}
	if eh.DAH == nil {
		return fmt.Errorf("header: nil data availability header")
	}
	if err := eh.DAH.ValidateBasic(); err != nil {
		return fmt.Errorf("header: validating DAH: %w", err)
	}
	dahHash := eh.DAH.Hash()
	if !bytes.Equal(eh.DataHash, dahHash) {
		return fmt.Errorf("header: DAH hash %X does not match DataHash %X", dahHash, eh.DataHash)
	}
	return nil
}

// Verify validates the given untrusted header against the trusted one.
// For an adjacent untrusted header the hash chain and the validator set
// transition must match exactly. Non-adjacent headers get height and chain id
// checks only, further trust is subjective.
func (eh *ExtendedHeader) Verify(untrst *ExtendedHeader) error {
	if untrst.ChainID != eh.ChainID {
		return &VerifyError{Reason: fmt.Errorf("wrong chain id %s, expected %s", untrst.ChainID, eh.ChainID)}
	}
	if untrst.Height <= eh.Height {
		return &VerifyError{Reason: fmt.Errorf("known header height %d, current %d", untrst.Height, eh.Height)}
	}
	if !untrst.Time.After(eh.Time) {
		return &VerifyError{Reason: fmt.Errorf("expected new header time %v to be after current %v", untrst.Time, eh.Time)}
	}

	if untrst.Height != eh.Height+1 {
		return nil
	}
	if !bytes.Equal(untrst.LastHeaderHash, eh.Hash()) {
		return &VerifyError{Reason: fmt.Errorf("expected last header hash %s, got %s", eh.Hash(), untrst.LastHeaderHash)}
	}
	if !bytes.Equal(untrst.ValidatorsHash, eh.NextValidatorsHash) {
		return &VerifyError{
			Reason: fmt.Errorf("expected validators hash %s, got %s", eh.NextValidatorsHash, untrst.ValidatorsHash),
		}
	}
	return nil
}

func (eh *ExtendedHeader) String() string {
	return fmt.Sprintf("height: %d, hash: %s", eh.Height, eh.Hash())
}
