package headertest

import (
	"testing"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/celestiaorg/celestia-light/header"
	"github.com/celestiaorg/celestia-light/share"
)

// TestChainID is the chain id TestSuite generates headers for.
const TestChainID = "private"

// TestSuite provides everything you need to test chain of Headers.
// If not, please don't hesitate to extend it for your case.
type TestSuite struct {
	t *testing.T

	head *header.ExtendedHeader
}

// NewTestSuite setups a new test suite.
func NewTestSuite(t *testing.T) *TestSuite {
	return &TestSuite{t: t}
}

// Head returns the current head of the suite's chain, generating genesis on
// the first call.
func (s *TestSuite) Head() *header.ExtendedHeader {
	if s.head == nil {
		s.head = s.genesis()
	}
	return s.head
}

func (s *TestSuite) genesis() *header.ExtendedHeader {
	dah := share.EmptyRoot()
	return &header.ExtendedHeader{
		RawHeader: header.RawHeader{
			ChainID:            TestChainID,
			Height:             1,
			Time:               time.Now().UTC(),
			DataHash:           dah.Hash(),
			ValidatorsHash:     valHash(TestChainID, 1),
			NextValidatorsHash: valHash(TestChainID, 2),
		},
		DAH: dah,
	}
}

// GenExtendedHeaders generates the given amount of headers on top of the
// current head.
func (s *TestSuite) GenExtendedHeaders(num int) []*header.ExtendedHeader {
	headers := make([]*header.ExtendedHeader, num)
	for i := range headers {
		headers[i] = s.NextHeader()
	}
	return headers
}

// NextHeader generates the next valid header in the chain committing to an
// empty data square.
func (s *TestSuite) NextHeader() *header.ExtendedHeader {
	return s.NextWithRoot(share.EmptyRoot())
}

// NextWithRoot generates the next valid header committing to the given Root.
func (s *TestSuite) NextWithRoot(dah *share.Root) *header.ExtendedHeader {
	head := s.Head()
	next := &header.ExtendedHeader{
		RawHeader: header.RawHeader{
			ChainID:            head.ChainID,
			Height:             head.Height + 1,
			Time:               head.Time.Add(time.Nanosecond),
			LastHeaderHash:     head.Hash(),
			DataHash:           dah.Hash(),
			ValidatorsHash:     head.NextValidatorsHash,
			NextValidatorsHash: valHash(head.ChainID, head.Height+2),
		},
		DAH: dah,
	}
	s.head = next
	return next
}

// valHash derives a deterministic validator set hash, so independently
// generated suites produce verifiable chains.
func valHash(chainID string, height uint64) header.Hash {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	h.Write([]byte(chainID))
	var bin [8]byte
	for i := 0; i < 8; i++ {
		bin[i] = byte(height >> (56 - 8*i))
	}
	h.Write(bin[:])
	return h.Sum(nil)
}
