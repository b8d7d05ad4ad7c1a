package sharetest

import (
	"bytes"
	"context"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/celestia-light/share"
	"github.com/celestiaorg/celestia-light/share/p2p/shrexnd"
)

// Square is a fabricated extended data square for tests. Parity shares carry
// random payloads instead of real erasure coding, but rows and columns commit
// to the same share bytes, so inclusion proofs verify like the real thing.
type Square struct {
	t *testing.T

	shares [][]share.Share
	root   *share.Root
}

// NewSquare fabricates a Square with the given original(pre-extension) width.
// Original shares are sorted row-major across the whole original quadrant, so
// both row and column trees observe non-decreasing namespaces.
func NewSquare(t *testing.T, odsWidth int) *Square {
	w, extended := odsWidth, odsWidth*2

	orig := RandSortedShares(t, w*w)
	shares := make([][]share.Share, extended)
	for i := range shares {
		shares[i] = make([]share.Share, extended)
		for j := range shares[i] {
			if i < w && j < w {
				shares[i][j] = orig[i*w+j]
			} else {
				shares[i][j] = randParityShare(t)
			}
		}
	}

	rowRoots := make([][]byte, extended)
	colRoots := make([][]byte, extended)
	for i := 0; i < extended; i++ {
		rowRoots[i] = RowRoot(t, shares[i])

		col := make([]share.Share, extended)
		for j := 0; j < extended; j++ {
			col[j] = shares[j][i]
		}
		colRoots[i] = RowRoot(t, col)
	}

	return &Square{
		t:      t,
		shares: shares,
		root:   &share.Root{RowRoots: rowRoots, ColumnRoots: colRoots},
	}
}

// Root returns the Root the Square commits to.
func (s *Square) Root() *share.Root {
	return s.root
}

// Sample implements shrexnd.Accessor over the Square.
func (s *Square) Sample(_ context.Context, rootHash []byte, row, col int) (*share.Sample, error) {
	if !bytes.Equal(rootHash, s.root.Hash()) {
		return nil, shrexnd.ErrNotFound
	}
	if row < 0 || col < 0 || row >= len(s.shares) || col >= len(s.shares) {
		return nil, shrexnd.ErrNotFound
	}

	_, proof := ProveShare(s.t, s.shares[row], col)
	return &share.Sample{
		Share: s.shares[row][col],
		Proof: &proof,
	}, nil
}

// LyingAccessor serves samples of the Inner Square for whatever root is
// requested. Served proofs are structurally valid but mismatch the requested
// root, imitating a byzantine peer.
type LyingAccessor struct {
	Inner *Square
}

func (a *LyingAccessor) Sample(ctx context.Context, _ []byte, row, col int) (*share.Sample, error) {
	return a.Inner.Sample(ctx, a.Inner.Root().Hash(), row, col)
}

func randParityShare(t *testing.T) share.Share {
	shr := make([]byte, share.ShareSize)
	copy(shr, share.ParitySharesNamespace)
	_, err := rand.Read(shr[share.NamespaceSize:])
	require.NoError(t, err)
	return shr
}
