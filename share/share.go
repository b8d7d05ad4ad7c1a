package share

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/celestiaorg/nmt/namespace"
)

const (
	// ShareSize is the network-wide size of a share in bytes.
	ShareSize = 512
	// NamespaceSize is the size of a namespace prefixing every share.
	NamespaceSize = 29
)

// Share is a fixed-size data chunk of a data square.
// The first NamespaceSize bytes are the namespace of its data.
type Share []byte

// ErrInvalidShareSize is returned when a share does not have ShareSize length.
type ErrInvalidShareSize struct {
	Size int
}

func (e *ErrInvalidShareSize) Error() string {
	return fmt.Sprintf("share: invalid size: %d, must be %d", e.Size, ShareSize)
}

// NewShare validates and converts raw bytes into a Share.
// The only validation performed is the exact-length check.
func NewShare(data []byte) (Share, error) {
	if len(data) != ShareSize {
		return nil, &ErrInvalidShareSize{Size: len(data)}
	}
	return Share(data), nil
}

// GetNamespace extracts the namespace prefix of the share.
func GetNamespace(s Share) Namespace {
	return Namespace(s[:NamespaceSize])
}

// Namespace is an application-defined tag prefixed to a share,
// scoping queries to a subset of a block's data.
type Namespace []byte

// ParitySharesNamespace is the reserved namespace of shares from the
// erasure-coded part of the extended data square.
var ParitySharesNamespace = Namespace(bytes.Repeat([]byte{0xFF}, NamespaceSize))

// ToNMT converts the Namespace to an NMT namespace ID.
func (n Namespace) ToNMT() namespace.ID {
	return namespace.ID(n)
}

// Equals reports whether two namespaces are the same.
func (n Namespace) Equals(other Namespace) bool {
	return bytes.Equal(n, other)
}

func (n Namespace) String() string {
	return hex.EncodeToString(n)
}

// Validate checks the namespace for the correct length.
func (n Namespace) Validate() error {
	if len(n) != NamespaceSize {
		return fmt.Errorf("share: invalid namespace size: %d, must be %d", len(n), NamespaceSize)
	}
	return nil
}
