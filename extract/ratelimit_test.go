package extract_test

import (
	"context"
	"testing"
	"time"

	"github.com/notioc/canvasdex/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter(t *testing.T) {
	t.Parallel()

	t.Run("allows immediate request when under limit", func(t *testing.T) {
		t.Parallel()

		limiter := extract.NewRateLimiter(10)

		start := time.Now()
		err := limiter.Wait(context.Background(), "school.test")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "first request should be immediate")
	})

	t.Run("rate limits requests to same domain", func(t *testing.T) {
		t.Parallel()

		limiter := extract.NewRateLimiter(10) // 100ms between requests

		err := limiter.Wait(context.Background(), "school.test")
		require.NoError(t, err)

		start := time.Now()
		err = limiter.Wait(context.Background(), "school.test")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, elapsed, 80*time.Millisecond, "should wait for rate limit")
	})

	t.Run("different domains have independent limits", func(t *testing.T) {
		t.Parallel()

		limiter := extract.NewRateLimiter(10)

		err := limiter.Wait(context.Background(), "a.test")
		require.NoError(t, err)

		start := time.Now()
		err = limiter.Wait(context.Background(), "b.test")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "second domain should not wait")
	})

	t.Run("returns error on context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := extract.NewRateLimiter(1)

		err := limiter.Wait(context.Background(), "slow.test")
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err = limiter.Wait(ctx, "slow.test")
		assert.Error(t, err)
	})
}
