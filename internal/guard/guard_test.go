package guard_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"quotedesk/internal/guard"
)

func TestLoadOnce(t *testing.T) {
	t.Parallel()

	var g guard.LoadOnce

	// Assert: unknown keys need a fetch
	require.True(t, g.ShouldFetch("IBM", false))
	require.False(t, g.Loaded("IBM"))

	// Act: the attempt completes
	g.MarkAttempted("IBM")

	// Assert: the key is skipped unless forced
	require.False(t, g.ShouldFetch("IBM", false))
	require.True(t, g.ShouldFetch("IBM", true))
	require.True(t, g.ShouldFetch("MSFT", false))
}

func TestLoadOnce_Concurrent(t *testing.T) {
	t.Parallel()

	var g guard.LoadOnce
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := []string{"A", "B"}[i%2]
			g.MarkAttempted(key)
			_ = g.ShouldFetch(key, false)
		}()
	}
	wg.Wait()

	require.True(t, g.Loaded("A"))
	require.True(t, g.Loaded("B"))
}
