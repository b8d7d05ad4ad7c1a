package share

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShare(t *testing.T) {
	for _, size := range []int{0, 100, ShareSize - 1, ShareSize + 1, 2 * ShareSize} {
		_, err := NewShare(make([]byte, size))
		var errSize *ErrInvalidShareSize
		require.ErrorAs(t, err, &errSize)
		assert.Equal(t, size, errSize.Size)
	}

	raw := make([]byte, ShareSize)
	copy(raw, bytes.Repeat([]byte{7}, NamespaceSize))
	sh, err := NewShare(raw)
	require.NoError(t, err)
	assert.Equal(t, Namespace(raw[:NamespaceSize]), GetNamespace(sh))
	assert.Equal(t, raw, []byte(sh))
}

func TestNamespaceValidate(t *testing.T) {
	assert.Error(t, Namespace(make([]byte, NamespaceSize-1)).Validate())
	assert.Error(t, Namespace(make([]byte, NamespaceSize+1)).Validate())
	assert.NoError(t, Namespace(make([]byte, NamespaceSize)).Validate())
	assert.NoError(t, ParitySharesNamespace.Validate())
}

func TestRootValidateBasic(t *testing.T) {
	root := func(rows, cols, size int) *Root {
		r := &Root{}
		for i := 0; i < rows; i++ {
			r.RowRoots = append(r.RowRoots, make([]byte, size))
		}
		for i := 0; i < cols; i++ {
			r.ColumnRoots = append(r.ColumnRoots, make([]byte, size))
		}
		return r
	}

	assert.Error(t, root(0, 0, nmtRootSize).ValidateBasic(), "empty root")
	assert.Error(t, root(2, 4, nmtRootSize).ValidateBasic(), "unequal axes")
	assert.Error(t, root(3, 3, nmtRootSize).ValidateBasic(), "not a power of two")
	assert.Error(t, root(2, 2, nmtRootSize-1).ValidateBasic(), "wrong root size")
	assert.NoError(t, root(1, 1, nmtRootSize).ValidateBasic())
	assert.NoError(t, root(4, 4, nmtRootSize).ValidateBasic())
}

func TestRootHashDeterministic(t *testing.T) {
	r := &Root{
		RowRoots:    [][]byte{bytes.Repeat([]byte{1}, nmtRootSize)},
		ColumnRoots: [][]byte{bytes.Repeat([]byte{2}, nmtRootSize)},
	}
	assert.Equal(t, r.Hash(), r.Hash())
	assert.Equal(t, 1, r.SquareWidth())
}
