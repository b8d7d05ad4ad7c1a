package p2p

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/libp2p/go-libp2p/core/peer"
)

// peerStat represents a peer's average statistic.
type peerStat struct {
	pLk    sync.RWMutex
	peerID peer.ID
	// score is the average speed per single request
	peerScore float32
	// removedAt is set when the peer disconnects and decides when the tracker
	// forgets the peer entirely.
	removedAt time.Time
}

// updateStats recalculates the peer score by averaging with the speed of the
// last request.
func (p *peerStat) updateStats(amount, duration uint64) {
	p.pLk.Lock()
	defer p.pLk.Unlock()
	var averageSpeed float32
	if duration != 0 {
		averageSpeed = float32(amount / duration)
	}
	if p.peerScore == 0.0 {
		p.peerScore = averageSpeed
		return
	}
	p.peerScore = (p.peerScore + averageSpeed) / 2
}

// decreaseScore punishes the peer for a transient failure, a not found
// response or an empty one, without blocking it.
func (p *peerStat) decreaseScore() {
	p.pLk.Lock()
	defer p.pLk.Unlock()
	p.peerScore -= p.peerScore * 0.2
}

// score returns the peer's latest score.
func (p *peerStat) score() float32 {
	p.pLk.RLock()
	defer p.pLk.RUnlock()
	return p.peerScore
}

type peerStats []*peerStat

func newPeerStats() peerStats {
	ps := make(peerStats, 0)
	heap.Init(&ps)
	return ps
}

// peerQueue is a score-ordered queue of peers available for requests within a
// single session.
type peerQueue struct {
	ctx context.Context

	statsLk sync.Mutex
	stats   peerStats

	havePeer chan struct{}
}

func newPeerQueue(ctx context.Context, stats []*peerStat) *peerQueue {
	pq := &peerQueue{
		ctx:      ctx,
		stats:    newPeerStats(),
		havePeer: make(chan struct{}, 1),
	}
	for _, stat := range stats {
		pq.push(stat)
	}
	return pq
}

// waitPop removes the peer with the highest score from the queue, blocking
// until one is available. It returns an empty stat when the context is done.
func (p *peerQueue) waitPop(ctx context.Context) *peerStat {
	for {
		p.statsLk.Lock()
		if p.stats.Len() > 0 {
			stat := heap.Pop(&p.stats).(*peerStat)
			p.statsLk.Unlock()
			return stat
		}
		p.statsLk.Unlock()

		select {
		case <-ctx.Done():
			return &peerStat{}
		case <-p.ctx.Done():
			return &peerStat{}
		case <-p.havePeer:
		}
	}
}

// push adds the peer to the queue.
func (p *peerQueue) push(stat *peerStat) {
	p.statsLk.Lock()
	heap.Push(&p.stats, stat)
	p.statsLk.Unlock()

	select {
	case p.havePeer <- struct{}{}:
	default:
	}
}

func (p *peerQueue) len() int {
	p.statsLk.Lock()
	defer p.statsLk.Unlock()
	return p.stats.Len()
}

/*
Further methods make peerStats implement heap.Interface:

	type Interface interface {
		sort.Interface
		Push(x any)
		Pop() any
	}
*/
func (pq peerStats) Len() int { return len(pq) }

func (pq peerStats) Less(i, j int) bool {
	return pq[i].score() > pq[j].score()
}

func (pq peerStats) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *peerStats) Push(x any) {
	item := x.(*peerStat)
	*pq = append(*pq, item)
}

func (pq *peerStats) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[0 : n-1]
	return item
}
