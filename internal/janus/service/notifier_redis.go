package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"
)

const pendingChannelPrefix = "janus:pending:"

// RedisNotifier shares pending signals between instances. Publish goes to
// redis; one pattern subscription per process relays every message into a
// local MemoryNotifier, which is where waiters subscribe.
type RedisNotifier struct {
	Client *redis.Client
	Logger *slog.Logger

	local  *MemoryNotifier
	pubsub *redis.PubSub
	doneCh chan struct{}
}

func NewRedisNotifier(client *redis.Client, logger *slog.Logger) *RedisNotifier {
	return &RedisNotifier{
		Client: client,
		Logger: logger,
		local:  NewMemoryNotifier(),
		doneCh: make(chan struct{}),
	}
}

// Start subscribes to the pending channels and begins relaying. It returns
// once redis has confirmed the subscription.
func (n *RedisNotifier) Start(ctx context.Context) error {
	n.pubsub = n.Client.PSubscribe(ctx, pendingChannelPrefix+"*")
	if _, err := n.pubsub.Receive(ctx); err != nil {
		_ = n.pubsub.Close()
		return err
	}

	go n.run()
	n.Logger.Info("redis notifier started", "pattern", pendingChannelPrefix+"*")
	return nil
}

// Stop closes the subscription and waits for the relay to exit.
func (n *RedisNotifier) Stop() {
	if n.pubsub == nil {
		return
	}
	_ = n.pubsub.Close()
	<-n.doneCh
	n.Logger.Info("redis notifier stopped")
}

func (n *RedisNotifier) run() {
	defer close(n.doneCh)

	for msg := range n.pubsub.Channel() {
		userID := strings.TrimPrefix(msg.Channel, pendingChannelPrefix)
		n.local.signal(userID)
	}
}

func (n *RedisNotifier) Publish(ctx context.Context, userID string) error {
	return n.Client.Publish(ctx, pendingChannelPrefix+userID, "pending").Err()
}

func (n *RedisNotifier) Subscribe(ctx context.Context, userID string) (<-chan struct{}, func(), error) {
	return n.local.Subscribe(ctx, userID)
}
