package sync

import (
	stdsync "sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/celestiaorg/celestia-light/header/headertest"
)

func TestAddParallel(t *testing.T) {
	var pending ranges

	n := 500
	suite := headertest.NewTestSuite(t)
	headers := suite.GenExtendedHeaders(n)

	wg := &stdsync.WaitGroup{}
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			pending.Add(headers[i])
			wg.Done()
		}(i)
	}
	wg.Wait()

	last := uint64(0)
	for _, r := range pending.ranges {
		assert.Greater(t, r.start, last)
		last = r.start
	}
}

func TestRangeBefore(t *testing.T) {
	suite := headertest.NewTestSuite(t)
	headers := suite.GenExtendedHeaders(10) // heights [2:11]

	r := newRange(headers[0])
	r.Append(headers[1:]...)

	// truncate only the first half
	out, ln := r.Before(6)
	assert.EqualValues(t, 5, ln)
	assert.Len(t, out, 5)
	assert.EqualValues(t, 7, r.Start())

	// and then the rest
	out, ln = r.Before(11)
	assert.EqualValues(t, 5, ln)
	assert.Len(t, out, 5)
	assert.True(t, r.Empty())
}
