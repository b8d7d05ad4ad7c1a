package share

import (
	"crypto/sha256"
	"fmt"

	"github.com/celestiaorg/nmt"
)

// NamespacedRow is a row's worth of shares belonging to a single namespace,
// together with the proof of their position under the row root. For rows
// holding no data of the namespace the row carries an absence proof and no
// shares.
type NamespacedRow struct {
	Shares []Share
	Proof  *nmt.Proof
}

// NamespacedShares is a namespace's data across all rows it spans.
type NamespacedShares []NamespacedRow

// Flatten joins all rows into a single share slice.
func (ns NamespacedShares) Flatten() []Share {
	var shares []Share
	for _, row := range ns {
		shares = append(shares, row.Shares...)
	}
	return shares
}

// Verify checks every row bundle against the corresponding row root of the
// Root. Rows must be given in the order of the square's rows that intersect
// the namespace. Absence rows verify via their absence proof and are reported
// through ErrNamespaceAbsent only when the whole namespace is empty.
func (ns NamespacedShares) Verify(root *Root, namespace Namespace) error {
	originRows := rowsWithNamespace(root, namespace)
	if len(originRows) != len(ns) {
		return fmt.Errorf("share: row mismatch: namespace spans %d rows, response has %d",
			len(originRows), len(ns))
	}

	empty := true
	for i, row := range ns {
		if err := row.verify(root.RowRoots[originRows[i]], namespace); err != nil {
			return err
		}
		if len(row.Shares) > 0 {
			empty = false
		}
	}
	if empty {
		return ErrNamespaceAbsent
	}
	return nil
}

func (row NamespacedRow) verify(rowRoot []byte, namespace Namespace) error {
	if row.Proof == nil {
		return fmt.Errorf("share: row without proof")
	}

	// absence proof: no shares, proof must still fold to the root
	if row.Proof.IsOfAbsence() {
		if len(row.Shares) != 0 {
			return fmt.Errorf("share: absence proof with %d shares", len(row.Shares))
		}
		if !row.Proof.VerifyNamespace(sha256.New(), namespace.ToNMT(), nil, rowRoot) {
			return ErrInvalidProof
		}
		return nil
	}

	leaves := make([][]byte, 0, len(row.Shares))
	for _, sh := range row.Shares {
		if _, err := NewShare(sh); err != nil {
			return err
		}
		if !GetNamespace(sh).Equals(namespace) {
			return fmt.Errorf("share: row contains share of foreign namespace %s", GetNamespace(sh))
		}
		leaves = append(leaves, sh)
	}
	if !row.Proof.VerifyNamespace(sha256.New(), namespace.ToNMT(), leaves, rowRoot) {
		return ErrInvalidProof
	}
	return nil
}

// rowsWithNamespace returns indexes of rows whose namespace range may include
// the given namespace, judging by the min/max namespace bounds of the row
// roots.
func rowsWithNamespace(root *Root, namespace Namespace) []int {
	var rows []int
	for i, rowRoot := range root.RowRoots {
		minNs := Namespace(rowRoot[:NamespaceSize])
		maxNs := Namespace(rowRoot[NamespaceSize : 2*NamespaceSize])
		if string(namespace) >= string(minNs) && string(namespace) <= string(maxNs) {
			rows = append(rows, i)
		}
	}
	return rows
}
