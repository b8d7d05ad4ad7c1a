package share_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/celestia-light/share"
	"github.com/celestiaorg/celestia-light/share/sharetest"
)

func TestSampleVerify(t *testing.T) {
	const width = 4

	rows := make([][]share.Share, width)
	root := &share.Root{}
	for i := range rows {
		rows[i] = sharetest.RandSortedShares(t, width)
		root.RowRoots = append(root.RowRoots, sharetest.RowRoot(t, rows[i]))
		root.ColumnRoots = append(root.ColumnRoots, sharetest.RowRoot(t, sharetest.RandSortedShares(t, width)))
	}
	require.NoError(t, root.ValidateBasic())

	rowRoot, proof := sharetest.ProveShare(t, rows[1], 0)
	root.RowRoots[1] = rowRoot

	sample := &share.Sample{Share: rows[1][0], Proof: &proof}
	assert.NoError(t, sample.Verify(root, 1, 0))

	// same proof against a different row root must fail hard
	assert.ErrorIs(t, sample.Verify(root, 0, 0), share.ErrInvalidProof)

	// coordinates outside of the square are rejected before verification
	assert.Error(t, sample.Verify(root, width, 0))
	assert.Error(t, sample.Verify(root, 0, -1))
}

func TestSampleVerifyParityNamespace(t *testing.T) {
	const width = 2

	// the second half of the row is parity data and must carry
	// the parity namespace
	shares := append(
		sharetest.RandShares(t, sharetest.RandNamespace(), 1),
		sharetest.RandShares(t, share.ParitySharesNamespace, 1)...,
	)
	rowRoot, proof := sharetest.ProveShare(t, shares, 1)
	root := &share.Root{
		RowRoots:    [][]byte{rowRoot, sharetest.RowRoot(t, sharetest.RandSortedShares(t, width))},
		ColumnRoots: [][]byte{rowRoot, rowRoot},
	}

	sample := &share.Sample{Share: shares[1], Proof: &proof}
	assert.NoError(t, sample.Verify(root, 0, 1))
}

func TestSampleVerifyInvalidShareSize(t *testing.T) {
	shares := sharetest.RandSortedShares(t, 2)
	rowRoot, proof := sharetest.ProveShare(t, shares, 0)
	root := &share.Root{
		RowRoots:    [][]byte{rowRoot, rowRoot},
		ColumnRoots: [][]byte{rowRoot, rowRoot},
	}

	sample := &share.Sample{Share: shares[0][:511], Proof: &proof}
	var errSize *share.ErrInvalidShareSize
	assert.ErrorAs(t, sample.Verify(root, 0, 0), &errSize)
}

func TestNamespacedSharesVerify(t *testing.T) {
	ns := sharetest.RandNamespace()
	shares := sharetest.RandShares(t, ns, 4)
	rowRoot, proof := sharetest.ProveNamespace(t, shares, ns)

	root := &share.Root{
		RowRoots:    [][]byte{rowRoot},
		ColumnRoots: [][]byte{rowRoot},
	}

	nsShares := share.NamespacedShares{{Shares: shares, Proof: &proof}}
	assert.NoError(t, nsShares.Verify(root, ns))

	// tampered share breaks verification
	tampered := make([]share.Share, len(shares))
	copy(tampered, shares)
	tampered[0] = append(share.Share{}, shares[0]...)
	tampered[0][share.NamespaceSize] ^= 0xFF
	assert.ErrorIs(t,
		share.NamespacedShares{{Shares: tampered, Proof: &proof}}.Verify(root, ns),
		share.ErrInvalidProof,
	)
}

func TestNamespacedSharesAbsence(t *testing.T) {
	nsWithLastByte := func(b byte) share.Namespace {
		ns := make(share.Namespace, share.NamespaceSize)
		ns[share.NamespaceSize-1] = b
		return ns
	}

	// namespaces 1, 2, 4, 5 are present, 3 is absent but within the row range
	var shares []share.Share
	for _, b := range []byte{1, 2, 4, 5} {
		shares = append(shares, sharetest.RandShares(t, nsWithLastByte(b), 1)...)
	}
	absent := nsWithLastByte(3)

	rowRoot, proof := sharetest.ProveNamespace(t, shares, absent)
	require.True(t, proof.IsOfAbsence())

	root := &share.Root{
		RowRoots:    [][]byte{rowRoot},
		ColumnRoots: [][]byte{rowRoot},
	}
	nsShares := share.NamespacedShares{{Proof: &proof}}
	assert.ErrorIs(t, nsShares.Verify(root, absent), share.ErrNamespaceAbsent)
}
