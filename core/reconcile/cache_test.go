package reconcile

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedFeed_ReusesSnapshotWithinTTL(t *testing.T) {
	src := &fakeFeed{records: []FeedRecord{{Key: "A"}}}
	cache := NewCachedFeed(src, time.Minute)

	for i := 0; i < 3; i++ {
		recs, err := cache.FetchSnapshot(context.Background())
		require.NoError(t, err)
		assert.Len(t, recs, 1)
	}
	assert.Equal(t, int32(1), src.calls.Load())

	cache.Invalidate()
	_, err := cache.FetchSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestCachedFeed_Expires(t *testing.T) {
	src := &fakeFeed{records: []FeedRecord{{Key: "A"}}}
	cache := NewCachedFeed(src, 10*time.Millisecond)

	_, _ = cache.FetchSnapshot(context.Background())
	time.Sleep(20 * time.Millisecond)
	_, _ = cache.FetchSnapshot(context.Background())
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestCachedFeed_ErrorsAreNotCached(t *testing.T) {
	src := &fakeFeed{err: errors.New("feed down")}
	cache := NewCachedFeed(src, time.Minute)

	_, err := cache.FetchSnapshot(context.Background())
	assert.Error(t, err)
	_, err = cache.FetchSnapshot(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestCachedFeed_ConcurrentCallers(t *testing.T) {
	src := &fakeFeed{records: []FeedRecord{{Key: "A"}}}
	cache := NewCachedFeed(src, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			recs, err := cache.FetchSnapshot(context.Background())
			assert.NoError(t, err)
			assert.Len(t, recs, 1)
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, src.calls.Load(), int32(20))
	assert.GreaterOrEqual(t, src.calls.Load(), int32(1))
}
