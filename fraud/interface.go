package fraud

import (
	"context"
)

// Reporter accepts locally produced fraud proofs.
type Reporter interface {
	// Report hands a proof of broken data availability over to the service.
	// Only the first reported proof takes effect, subsequent reports are
	// no-ops.
	Report(context.Context, *BadEncodingProof) error
}

// Subscriber encompasses the behavior necessary to subscribe to fraud proof
// events.
type Subscriber interface {
	// Subscribe creates a Subscription that fires once the first valid proof
	// is reported. Subscriptions made after a proof was reported receive it
	// immediately.
	Subscribe() Subscription
}

// Subscription delivers the reported proof.
type Subscription interface {
	// Proof blocks until a proof is reported or the context is canceled.
	Proof(context.Context) (*BadEncodingProof, error)
	Cancel()
}
