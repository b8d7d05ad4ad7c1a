package share

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// AvailabilityTimeout specifies timeout for DA validation during which data
// has to be found on the network, otherwise ErrNotAvailable is fired.
const AvailabilityTimeout = 10 * time.Minute

// ErrNotAvailable is returned whenever DA sampling fails because the data
// simply could not be retrieved from any peer in time. It explicitly does NOT
// mean the data is provably withheld or wrong, see ErrByzantine.
var ErrNotAvailable = errors.New("share: data not available")

// ErrByzantine is returned when sampling observed a structurally valid proof
// that mismatches the committed root, corroborated by a second independent
// peer. It means the data-availability guarantee of the chain is broken for
// the given height.
type ErrByzantine struct {
	Height uint64
	Coords SampleCoords
}

func (e *ErrByzantine) Error() string {
	return fmt.Sprintf("share: byzantine error: invalid encoding proven at height %d, sample (%d, %d)",
		e.Height, e.Coords.Row, e.Coords.Col)
}

// Availability defines the interface for validating availability of the data
// committed to by a header's Root.
type Availability interface {
	// SharesAvailable subjectively validates if the data committed to the
	// given Root is available on the network.
	SharesAvailable(ctx context.Context, root *Root, height uint64) error
}
