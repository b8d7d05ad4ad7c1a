package header

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a header is missing from a Store or could
	// not be served by any peer.
	ErrNotFound = errors.New("header: not found")

	// ErrNoHead is returned when the Store is empty and has no chain head.
	ErrNoHead = fmt.Errorf("header/store: no chain head")

	// ErrHeadersLimitExceeded is returned when a range request exceeds the
	// protocol limit of headers per request.
	ErrHeadersLimitExceeded = errors.New("header: requested headers limit exceeded")
)

// ErrNonAdjacent is returned when Store is appended with a header not adjacent
// to the stored head.
type ErrNonAdjacent struct {
	Head      uint64
	Attempted uint64
}

func (ena *ErrNonAdjacent) Error() string {
	return fmt.Sprintf("header/store: non-adjacent: head %d, attempted %d", ena.Head, ena.Attempted)
}

// VerifyError is thrown if the untrusted header failed Verify against the
// trusted one.
type VerifyError struct {
	Reason error
}

func (vr *VerifyError) Error() string {
	return fmt.Sprintf("header: verify: %s", vr.Reason.Error())
}

func (vr *VerifyError) Unwrap() error {
	return vr.Reason
}
