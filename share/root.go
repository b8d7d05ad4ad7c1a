package share

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// nmtRootSize is the size of a namespaced Merkle tree root:
// min namespace + max namespace + sha256 digest.
const nmtRootSize = 2*NamespaceSize + sha256.Size

// Root is the commitment to the erasure-coded data square of a block:
// the roots of NMTs built over its rows and columns.
type Root struct {
	RowRoots    [][]byte
	ColumnRoots [][]byte
}

// SquareWidth returns the width of the extended data square the Root commits to.
func (r *Root) SquareWidth() int {
	return len(r.RowRoots)
}

// Hash computes the digest committing to all row and column roots.
func (r *Root) Hash() []byte {
	h := sha256.New()
	for _, root := range r.RowRoots {
		h.Write(root)
	}
	for _, root := range r.ColumnRoots {
		h.Write(root)
	}
	return h.Sum(nil)
}

func (r *Root) String() string {
	return hex.EncodeToString(r.Hash())
}

// ValidateBasic performs structural consistency checks over the Root.
func (r *Root) ValidateBasic() error {
	if len(r.RowRoots) == 0 || len(r.ColumnRoots) == 0 {
		return fmt.Errorf("share: empty data availability root")
	}
	if len(r.RowRoots) != len(r.ColumnRoots) {
		return fmt.Errorf("share: unequal axis roots: %d rows, %d columns",
			len(r.RowRoots), len(r.ColumnRoots))
	}
	width := len(r.RowRoots)
	if width&(width-1) != 0 {
		return fmt.Errorf("share: square width must be a power of two, got %d", width)
	}
	for _, axis := range [][][]byte{r.RowRoots, r.ColumnRoots} {
		for _, root := range axis {
			if len(root) != nmtRootSize {
				return fmt.Errorf("share: invalid axis root size: %d, must be %d", len(root), nmtRootSize)
			}
		}
	}
	return nil
}
