package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aussiebroadwan/janus/pkg/slogx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestMemoryNotifier(t *testing.T) {
	ctx := context.Background()
	n := NewMemoryNotifier()

	a, cancelA, err := n.Subscribe(ctx, "ana")
	require.NoError(t, err)
	b, cancelB, err := n.Subscribe(ctx, "bo")
	require.NoError(t, err)
	defer cancelB()

	require.NoError(t, n.Publish(ctx, "ana"))
	require.NoError(t, n.Publish(ctx, "ana")) // coalesces, never blocks

	select {
	case <-a:
	default:
		t.Fatal("ana should be signalled")
	}
	select {
	case <-b:
		t.Fatal("bo should not be signalled")
	default:
	}

	cancelA()
	cancelA()
	require.Zero(t, n.Subscribers("ana"))
	require.NoError(t, n.Publish(ctx, "ana"))
}

func TestRedisNotifier(t *testing.T) {
	ctx := context.Background()

	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	// Two instances sharing one redis.
	first := NewRedisNotifier(client, slogx.Discard())
	second := NewRedisNotifier(client, slogx.Discard())
	require.NoError(t, first.Start(ctx))
	defer first.Stop()
	require.NoError(t, second.Start(ctx))
	defer second.Stop()

	signal, cancel, err := second.Subscribe(ctx, "ana")
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, first.Publish(ctx, "ana"))

	select {
	case <-signal:
	case <-time.After(2 * time.Second):
		t.Fatal("signal did not cross instances")
	}
}
