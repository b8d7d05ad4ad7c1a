package share

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/celestiaorg/nmt"
)

var (
	// ErrInvalidProof means the proof is structurally valid but does not fold
	// to the committed root. It is a hard verification failure for the peer
	// that served it and is never retried against the same peer.
	ErrInvalidProof = errors.New("share: proof does not match root")

	// ErrNamespaceAbsent means a structurally valid absence proof: the queried
	// namespace holds no data under the given root.
	ErrNamespaceAbsent = errors.New("share: namespace absent under root")
)

// SampleCoords is a point in the 2D space of a data square.
type SampleCoords struct {
	Row, Col int
}

// Validate checks the coordinates fit into a square of the given width.
func (c SampleCoords) Validate(squareWidth int) error {
	if c.Row < 0 || c.Col < 0 || c.Row >= squareWidth || c.Col >= squareWidth {
		return fmt.Errorf("share: sample coordinates (%d, %d) outside of square %d",
			c.Row, c.Col, squareWidth)
	}
	return nil
}

// Sample is a single share of a data square together with the NMT proof of its
// inclusion under the owning row's root.
type Sample struct {
	Share Share
	Proof *nmt.Proof
}

// Verify checks the Sample against the row root the given Root commits to for
// the coordinates. Shares outside of the original data quadrant carry the
// parity namespace.
func (s *Sample) Verify(root *Root, row, col int) error {
	if s.Proof == nil {
		return fmt.Errorf("share: sample without proof")
	}
	width := root.SquareWidth()
	if err := (SampleCoords{Row: row, Col: col}).Validate(width); err != nil {
		return err
	}
	if _, err := NewShare(s.Share); err != nil {
		return err
	}

	namespace := sampleNamespace(s.Share, row, col, width)
	if !namespace.Equals(GetNamespace(s.Share)) {
		return fmt.Errorf("share: sample at (%d, %d) carries unexpected namespace %s",
			row, col, GetNamespace(s.Share))
	}
	// VerifyInclusion re-prepends the namespace to every leaf, so the share
	// is passed without its namespace prefix.
	leaf := [][]byte{s.Share[NamespaceSize:]}
	if !s.Proof.VerifyInclusion(sha256.New(), namespace.ToNMT(), leaf, root.RowRoots[row]) {
		return ErrInvalidProof
	}
	return nil
}

// sampleNamespace returns the namespace a share at the given coordinates is
// expected to carry. Shares in the extended quadrants are parity shares.
func sampleNamespace(sh Share, row, col, squareWidth int) Namespace {
	if row >= squareWidth/2 || col >= squareWidth/2 {
		return ParitySharesNamespace
	}
	return GetNamespace(sh)
}
