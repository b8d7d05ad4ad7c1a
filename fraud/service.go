package fraud

import (
	"context"
	"sync"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("fraud")

// Service collects locally produced fraud proofs and fans the first valid one
// out to subscribers. The network compromise signal is binary, so everything
// past the first proof carries no extra information and is dropped.
type Service struct {
	lk    sync.Mutex
	proof *BadEncodingProof
	subs  map[*subscription]struct{}
}

// NewService creates a new local fraud Service.
func NewService() *Service {
	return &Service{
		subs: make(map[*subscription]struct{}),
	}
}

// Report stores the given proof and wakes all subscribers. The first proof
// wins, any further reports are ignored.
func (s *Service) Report(_ context.Context, p *BadEncodingProof) error {
	s.lk.Lock()
	defer s.lk.Unlock()

	if s.proof != nil {
		log.Debugw("dropping fraud proof, one is already reported",
			"height", p.Height(), "reported_height", s.proof.Height())
		return nil
	}

	log.Errorw("network compromise detected", "proof", p.String())
	s.proof = p
	for sub := range s.subs {
		sub.deliver(p)
	}
	return nil
}

// Get returns the reported proof, if any.
func (s *Service) Get() *BadEncodingProof {
	s.lk.Lock()
	defer s.lk.Unlock()
	return s.proof
}

// Subscribe registers a new Subscription for the compromise signal.
func (s *Service) Subscribe() Subscription {
	s.lk.Lock()
	defer s.lk.Unlock()

	sub := &subscription{
		svc:     s,
		proofCh: make(chan *BadEncodingProof, 1),
	}
	s.subs[sub] = struct{}{}
	if s.proof != nil {
		sub.deliver(s.proof)
	}
	return sub
}

func (s *Service) unsubscribe(sub *subscription) {
	s.lk.Lock()
	defer s.lk.Unlock()
	delete(s.subs, sub)
}

type subscription struct {
	svc     *Service
	proofCh chan *BadEncodingProof

	once sync.Once
}

func (s *subscription) deliver(p *BadEncodingProof) {
	s.once.Do(func() {
		s.proofCh <- p
	})
}

func (s *subscription) Proof(ctx context.Context) (*BadEncodingProof, error) {
	select {
	case p := <-s.proofCh:
		return p, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *subscription) Cancel() {
	s.svc.unsubscribe(s)
}
