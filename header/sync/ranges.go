package sync

import (
	"sync"

	"github.com/celestiaorg/celestia-light/header"
)

// ranges keeps non-overlapping and non-adjacent ranges of headers received from
// the network awaiting to be appended to the store.
type ranges struct {
	lk     sync.Mutex
	ranges []*headerRange
}

// Head returns the highest header of all the ranges, or nil if empty.
func (rs *ranges) Head() *header.ExtendedHeader {
	rs.lk.Lock()
	defer rs.lk.Unlock()

	ln := len(rs.ranges)
	if ln == 0 {
		return nil
	}

	return rs.ranges[ln-1].Head()
}

// Add appends the new header to the latest known range if it is adjacent to
// its head, or starts a new range.
func (rs *ranges) Add(h *header.ExtendedHeader) {
	rs.lk.Lock()
	defer rs.lk.Unlock()

	ln := len(rs.ranges)
	if ln != 0 {
		head := rs.ranges[ln-1].Head()
		// ignore headers we already know about
		if head.Height >= h.Height {
			return
		}
		if head.Height+1 == h.Height {
			rs.ranges[ln-1].Append(h)
			return
		}
	}

	rs.ranges = append(rs.ranges, newRange(h))
}

// FirstRangeWithin checks if the first range is within the given height span [start:end]
// and returns it.
func (rs *ranges) FirstRangeWithin(start, end uint64) (*headerRange, bool) {
	r, ok := rs.First()
	if !ok {
		return nil, false
	}

	if r.Start() >= start && r.Start() <= end {
		return r, true
	}

	return nil, false
}

// First provides the first non-empty range, while cleaning up the emptied ones.
func (rs *ranges) First() (*headerRange, bool) {
	rs.lk.Lock()
	defer rs.lk.Unlock()

	for len(rs.ranges) > 0 {
		r := rs.ranges[0]
		if !r.Empty() {
			return r, true
		}
		rs.ranges = rs.ranges[1:]
	}

	return nil, false
}

// headerRange is a contiguous, ascending range of headers.
type headerRange struct {
	lk      sync.RWMutex
	headers []*header.ExtendedHeader
	start   uint64
}

func newRange(h *header.ExtendedHeader) *headerRange {
	return &headerRange{
		headers: []*header.ExtendedHeader{h},
		start:   h.Height,
	}
}

// Append appends new headers to the range.
func (r *headerRange) Append(headers ...*header.ExtendedHeader) {
	r.lk.Lock()
	defer r.lk.Unlock()
	r.headers = append(r.headers, headers...)
}

// Empty reports if the range is empty.
func (r *headerRange) Empty() bool {
	r.lk.RLock()
	defer r.lk.RUnlock()
	return len(r.headers) == 0
}

// Start gives the height of the lowest header in the range.
func (r *headerRange) Start() uint64 {
	r.lk.RLock()
	defer r.lk.RUnlock()
	return r.start
}

// Head returns the highest header in the range, or nil if the range is emptied.
func (r *headerRange) Head() *header.ExtendedHeader {
	r.lk.RLock()
	defer r.lk.RUnlock()

	ln := len(r.headers)
	if ln == 0 {
		return nil
	}
	return r.headers[ln-1]
}

// Before truncates and returns all the headers of the range lower or equal to the given
// height, together with their amount.
func (r *headerRange) Before(end uint64) ([]*header.ExtendedHeader, uint64) {
	r.lk.Lock()
	defer r.lk.Unlock()

	amnt := uint64(len(r.headers))
	if r.start+amnt-1 > end {
		amnt = end - r.start + 1
	}

	out := r.headers[:amnt]
	r.headers = r.headers[amnt:]
	if len(r.headers) != 0 {
		r.start = r.headers[0].Height
	}

	return out, amnt
}
