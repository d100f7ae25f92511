package service

import (
	"context"
	"sync"
)

// Notifier wakes long-poll waiters when a user gets a new pending request.
// Signals carry no payload and may be dropped; waiters always re-read the
// ledger after waking.
type Notifier interface {
	Publish(ctx context.Context, userID string) error
	// Subscribe returns a channel that receives a value after each Publish
	// for userID, and a func that releases the subscription.
	Subscribe(ctx context.Context, userID string) (<-chan struct{}, func(), error)
}

// MemoryNotifier fans signals out to waiters in this process.
type MemoryNotifier struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{subs: make(map[string]map[chan struct{}]struct{})}
}

func (n *MemoryNotifier) Publish(_ context.Context, userID string) error {
	n.signal(userID)
	return nil
}

func (n *MemoryNotifier) signal(userID string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for ch := range n.subs[userID] {
		select {
		case ch <- struct{}{}:
		default: // already signalled
		}
	}
}

func (n *MemoryNotifier) Subscribe(_ context.Context, userID string) (<-chan struct{}, func(), error) {
	ch := make(chan struct{}, 1)

	n.mu.Lock()
	set, ok := n.subs[userID]
	if !ok {
		set = make(map[chan struct{}]struct{})
		n.subs[userID] = set
	}
	set[ch] = struct{}{}
	n.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			delete(n.subs[userID], ch)
			if len(n.subs[userID]) == 0 {
				delete(n.subs, userID)
			}
		})
	}
	return ch, cancel, nil
}

// Subscribers reports how many waiters are registered for userID.
func (n *MemoryNotifier) Subscribers(userID string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs[userID])
}
