package sharetest

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"sort"
	"testing"

	"github.com/celestiaorg/nmt"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/celestia-light/share"
)

// RandNamespace provides a random non-reserved namespace.
func RandNamespace() share.Namespace {
	ns := make([]byte, share.NamespaceSize)
	_, err := rand.Read(ns[1:])
	if err != nil {
		panic(err)
	}
	// keep the first byte zero so the namespace always sorts below parity
	ns[0] = 0
	return ns
}

// RandShares provides 'total' shares of the given namespace filled with random data.
func RandShares(t *testing.T, ns share.Namespace, total int) []share.Share {
	shares := make([]share.Share, total)
	for i := range shares {
		shr := make([]byte, share.ShareSize)
		copy(shr, ns)
		_, err := rand.Read(shr[share.NamespaceSize:])
		require.NoError(t, err)
		shares[i] = shr
	}
	return shares
}

// RandSortedShares provides shares of random namespaces sorted by namespace,
// as an NMT requires.
func RandSortedShares(t *testing.T, total int) []share.Share {
	shares := make([]share.Share, total)
	for i := range shares {
		shares[i] = RandShares(t, RandNamespace(), 1)[0]
	}
	sort.Slice(shares, func(i, j int) bool {
		return bytes.Compare(shares[i][:share.NamespaceSize], shares[j][:share.NamespaceSize]) < 0
	})
	return shares
}

// RowRoot builds an NMT over the given shares and returns its root.
func RowRoot(t *testing.T, shares []share.Share) []byte {
	tree := newTree()
	for _, shr := range shares {
		require.NoError(t, tree.Push([]byte(shr)))
	}
	root, err := tree.Root()
	require.NoError(t, err)
	return root
}

// ProveShare builds an NMT over the given shares and proves the share at idx.
func ProveShare(t *testing.T, shares []share.Share, idx int) ([]byte, nmt.Proof) {
	tree := newTree()
	for _, shr := range shares {
		require.NoError(t, tree.Push([]byte(shr)))
	}
	root, err := tree.Root()
	require.NoError(t, err)
	proof, err := tree.ProveRange(idx, idx+1)
	require.NoError(t, err)
	return root, proof
}

// ProveNamespace builds an NMT over the given shares and proves the whole
// namespace, which may produce an absence proof.
func ProveNamespace(t *testing.T, shares []share.Share, ns share.Namespace) ([]byte, nmt.Proof) {
	tree := newTree()
	for _, shr := range shares {
		require.NoError(t, tree.Push([]byte(shr)))
	}
	root, err := tree.Root()
	require.NoError(t, err)
	proof, err := tree.ProveNamespace(ns.ToNMT())
	require.NoError(t, err)
	return root, proof
}

// RandRoot builds a random but structurally valid Root of the given square width.
// Roots are real NMT roots, so min/max namespace bounds hold.
func RandRoot(t *testing.T, squareWidth int) *share.Root {
	rowRoots := make([][]byte, squareWidth)
	colRoots := make([][]byte, squareWidth)
	for i := 0; i < squareWidth; i++ {
		rowRoots[i] = RowRoot(t, RandSortedShares(t, squareWidth))
		colRoots[i] = RowRoot(t, RandSortedShares(t, squareWidth))
	}
	return &share.Root{RowRoots: rowRoots, ColumnRoots: colRoots}
}

func newTree() *nmt.NamespacedMerkleTree {
	return nmt.New(
		sha256.New(),
		nmt.NamespaceIDSize(share.NamespaceSize),
		nmt.IgnoreMaxNamespace(true),
	)
}
