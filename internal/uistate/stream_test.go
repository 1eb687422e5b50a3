package uistate_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"quotedesk/internal/uistate"
)

func TestStream_StartsIdle(t *testing.T) {
	t.Parallel()

	s := uistate.NewStream[string]()
	require.Equal(t, "idle", s.Current().String())
}

func TestStream_StaleResolveIsRejected(t *testing.T) {
	t.Parallel()

	// Arrange: two overlapping requests
	s := uistate.NewStream[string]()
	slow := s.Begin()
	fast := s.Begin()

	// Act: the newer one resolves first, then the stale one
	require.True(t, s.Resolve(fast, uistate.Success("new")))
	require.False(t, s.Resolve(slow, uistate.Success("old")))

	// Assert: the newer value stays
	s.Current().Match(
		func() { t.Fatal("unexpected idle") },
		func() { t.Fatal("unexpected loading") },
		func(data string, ok bool) {
			require.True(t, ok)
			require.Equal(t, "new", data)
		},
		func(msg string) { t.Fatalf("unexpected error %s", msg) },
	)
}

func TestStream_ResetInvalidatesTickets(t *testing.T) {
	t.Parallel()

	s := uistate.NewStream[int]()
	ticket := s.Begin()
	s.Reset()

	require.False(t, s.Resolve(ticket, uistate.Success(1)))
	require.Equal(t, "idle", s.Current().String())
}

func TestStream_Run(t *testing.T) {
	t.Parallel()

	s := uistate.NewStream[int]()

	require.True(t, s.Run(t.Context(), func(context.Context) (int, error) { return 3, nil }))
	require.Equal(t, "success", s.Current().String())

	require.True(t, s.Run(t.Context(), func(context.Context) (int, error) { return 0, errors.New("boom") }))
	require.Equal(t, "error(boom)", s.Current().String())
}

func TestStream_RunCancelledDoesNotResolve(t *testing.T) {
	t.Parallel()

	s := uistate.NewStream[int]()
	ctx, cancel := context.WithCancel(t.Context())

	applied := s.Run(ctx, func(context.Context) (int, error) {
		cancel()
		return 1, nil
	})

	require.False(t, applied)
	require.Equal(t, "loading", s.Current().String())
}

func TestStream_Subscribe(t *testing.T) {
	t.Parallel()

	s := uistate.NewStream[int]()
	ctx, cancel := context.WithCancel(t.Context())
	ch := s.Subscribe(ctx)

	// Assert: the current state is delivered first
	require.Equal(t, "idle", (<-ch).String())

	// Act: change the state twice without reading
	ticket := s.Begin()
	s.Resolve(ticket, uistate.Success(5))

	// Assert: only the latest state is pending
	require.Equal(t, "success", (<-ch).String())

	// Assert: the channel closes with the context
	cancel()
	require.Eventually(t, func() bool {
		_, ok := <-ch
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestAwait(t *testing.T) {
	t.Parallel()

	s := uistate.NewStream[string]()
	ticket := s.Begin()

	go func() {
		time.Sleep(10 * time.Millisecond)
		s.Resolve(ticket, uistate.Error[string]("down"))
	}()

	state, err := uistate.Await(t.Context(), s)
	require.NoError(t, err)
	require.Equal(t, "error(down)", state.String())
}

func TestAwait_ContextDone(t *testing.T) {
	t.Parallel()

	s := uistate.NewStream[string]()
	s.Begin()

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()

	state, err := uistate.Await(ctx, s)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, "loading", state.String())
}

func TestStream_Settle(t *testing.T) {
	t.Parallel()

	s := uistate.NewStream[int]()
	ticket := s.Begin()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	require.False(t, s.Settle(ctx, ticket, 1, nil))

	require.True(t, s.Settle(t.Context(), ticket, 0, errors.New("bad")))
	require.Equal(t, "error(bad)", s.Current().String())
}
