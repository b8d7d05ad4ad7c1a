package share

import (
	"crypto/sha256"
	"sync"

	"github.com/celestiaorg/nmt"
)

var (
	emptyRoot     *Root
	emptyRootOnce sync.Once
)

// EmptyRoot returns the Root of the minimal 1x1 data square an empty block
// commits to.
func EmptyRoot() *Root {
	emptyRootOnce.Do(func() {
		tree := nmt.New(
			sha256.New(),
			nmt.NamespaceIDSize(NamespaceSize),
			nmt.IgnoreMaxNamespace(true),
		)
		if err := tree.Push(make([]byte, ShareSize)); err != nil {
			panic(err)
		}
		root, err := tree.Root()
		if err != nil {
			panic(err)
		}
		emptyRoot = &Root{
			RowRoots:    [][]byte{root},
			ColumnRoots: [][]byte{root},
		}
	})
	return emptyRoot
}
