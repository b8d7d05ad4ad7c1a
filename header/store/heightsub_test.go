package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/celestiaorg/celestia-light/header/headertest"
)

func TestHeightSub(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	suite := headertest.NewTestSuite(t)
	// suite heights start from 2, so headers[i] has height i+2
	headers := suite.GenExtendedHeaders(110)

	hs := newHeightSub()

	// assert subscription returns nil for past heights
	{
		hs.SetHeight(99)
		hs.Pub(headers[98]) // height 100

		h, err := hs.Sub(ctx, 10)
		assert.ErrorIs(t, err, errElapsedHeight)
		assert.Nil(t, h)
	}

	// assert actual subscription works
	{
		go func() {
			// fixes flakiness on CI
			time.Sleep(time.Millisecond)

			hs.Pub(headers[99], headers[100]) // heights 101 and 102
		}()

		h, err := hs.Sub(ctx, 101)
		assert.NoError(t, err)
		assert.NotNil(t, h)
	}
}
