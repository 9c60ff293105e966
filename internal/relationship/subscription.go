package relationship

import (
	"context"
	"sync"

	"planetpal/internal/dbmongo"
)

type UpdateKind string

const (
	UpdateInitial  UpdateKind = "initial"
	UpdateReceived UpdateKind = UpdateKind(dbmongo.ChangeReceived)
	UpdateSent     UpdateKind = UpdateKind(dbmongo.ChangeSent)
	UpdateFriends  UpdateKind = UpdateKind(dbmongo.ChangeFriends)
)

// Update carries a fresh snapshot after one change, or the error that
// prevented building it. An Update wrapping ErrSubscriptionClosed is the
// last one a subscription delivers.
type Update struct {
	Kind     UpdateKind
	Snapshot *Snapshot
	Err      error
}

// Subscription is a live view of one account's relationships. The owner
// must call Close when done with it.
type Subscription struct {
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

// Subscribe delivers an initial snapshot and then one snapshot per change,
// in order, to onUpdate on a single goroutine. onUpdate must not call Close.
func (m *Manager) Subscribe(ctx context.Context, selfID string, onUpdate func(Update)) (*Subscription, error) {
	if selfID == "" {
		return nil, validationErr("account id is required")
	}
	if onUpdate == nil {
		return nil, validationErr("update callback is required")
	}

	subCtx, cancel := context.WithCancel(ctx)
	changes, err := m.store.Watch(subCtx, selfID)
	if err != nil {
		cancel()
		return nil, storeErr("watch", err)
	}

	sub := &Subscription{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	activeSubscriptions.Inc()
	m.logger.Debug("subscription opened", "account", selfID)

	go func() {
		defer close(sub.done)
		defer activeSubscriptions.Dec()

		m.deliver(subCtx, selfID, UpdateInitial, onUpdate)
		for {
			select {
			case <-subCtx.Done():
				return
			case kind, ok := <-changes:
				if !ok {
					if subCtx.Err() == nil {
						onUpdate(Update{Err: ErrSubscriptionClosed})
					}
					return
				}
				m.deliver(subCtx, selfID, UpdateKind(kind), onUpdate)
			}
		}
	}()

	return sub, nil
}

func (m *Manager) deliver(ctx context.Context, selfID string, kind UpdateKind, onUpdate func(Update)) {
	snap, err := m.loadSnapshot(ctx, selfID)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		m.logger.Warn("subscription snapshot failed", "account", selfID, "kind", kind, "error", err)
		onUpdate(Update{Kind: kind, Err: err})
		return
	}
	onUpdate(Update{Kind: kind, Snapshot: snap})
}

// Close stops delivery and waits until the callback has returned for the
// last time. It is safe to call more than once.
func (s *Subscription) Close() {
	s.closeOnce.Do(s.cancel)
	<-s.done
}

// Done is closed once the subscription has stopped delivering.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}
