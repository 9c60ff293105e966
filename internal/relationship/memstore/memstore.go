// Package memstore is an in-process relationship store with the same
// semantics as the MongoDB one, including change notifications. The
// relationship manager and handler tests run against it.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"planetpal/internal/dbmongo"
)

type watcher struct {
	accountID string
	ch        chan dbmongo.ChangeKind
	ctx       context.Context
}

type Store struct {
	mu          sync.RWMutex
	accounts    map[string]*dbmongo.Account
	requests    map[string]*dbmongo.FriendRequest
	friendships map[string]*dbmongo.Friendship
	watchers    map[*watcher]struct{}
	now         func() time.Time
}

func New() *Store {
	return &Store{
		accounts:    make(map[string]*dbmongo.Account),
		requests:    make(map[string]*dbmongo.FriendRequest),
		friendships: make(map[string]*dbmongo.Friendship),
		watchers:    make(map[*watcher]struct{}),
		now:         time.Now,
	}
}

func (s *Store) PutAccount(acc *dbmongo.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *acc
	cp.SearchName = dbmongo.SearchKey(acc.DisplayName)
	s.accounts[acc.ID] = &cp
}

func (s *Store) Account(id string) (*dbmongo.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[id]
	if !ok {
		return nil, false
	}
	cp := *acc
	return &cp, true
}

func (s *Store) SearchAccounts(_ context.Context, prefix, excludeID string, limit int) ([]*dbmongo.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*dbmongo.Account{}
	for _, acc := range s.accounts {
		if acc.ID == excludeID || !strings.HasPrefix(acc.SearchName, prefix) {
			continue
		}
		cp := *acc
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SearchName != out[j].SearchName {
			return out[i].SearchName < out[j].SearchName
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) AccountsByID(_ context.Context, ids []string) (map[string]*dbmongo.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]*dbmongo.Account, len(ids))
	for _, id := range ids {
		if acc, ok := s.accounts[id]; ok {
			cp := *acc
			out[id] = &cp
		}
	}
	return out, nil
}

func (s *Store) SentRequests(_ context.Context, accountID string) ([]*dbmongo.FriendRequest, error) {
	return s.filterRequests(func(r *dbmongo.FriendRequest) bool { return r.FromID == accountID }), nil
}

func (s *Store) ReceivedRequests(_ context.Context, accountID string) ([]*dbmongo.FriendRequest, error) {
	return s.filterRequests(func(r *dbmongo.FriendRequest) bool { return r.ToID == accountID }), nil
}

func (s *Store) filterRequests(keep func(*dbmongo.FriendRequest) bool) []*dbmongo.FriendRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*dbmongo.FriendRequest{}
	for _, r := range s.requests {
		if keep(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) Friendships(_ context.Context, accountID string) ([]*dbmongo.Friendship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*dbmongo.Friendship{}
	for _, f := range s.friendships {
		if f.Users[0] == accountID || f.Users[1] == accountID {
			cp := *f
			cp.Users = append([]string(nil), f.Users...)
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AcceptedAt.Equal(out[j].AcceptedAt) {
			return out[i].AcceptedAt.Before(out[j].AcceptedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) RequestByID(_ context.Context, requestID string) (*dbmongo.FriendRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.requests[requestID]
	if !ok {
		return nil, fmt.Errorf("friend request %s: %w", requestID, dbmongo.ErrNotFound)
	}
	cp := *r
	return &cp, nil
}

func (s *Store) CreateRequest(_ context.Context, req *dbmongo.FriendRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req.ID = dbmongo.RequestID(req.FromID, req.ToID)
	if req.Status == "" {
		req.Status = dbmongo.RequestStatusPending
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = s.now()
	}

	if _, ok := s.friendships[dbmongo.PairID(req.FromID, req.ToID)]; ok {
		return dbmongo.ErrAlreadyFriends
	}
	if _, ok := s.requests[dbmongo.RequestID(req.ToID, req.FromID)]; ok {
		return dbmongo.ErrReverseRequest
	}
	if _, ok := s.requests[req.ID]; ok {
		return dbmongo.ErrDuplicate
	}

	cp := *req
	s.requests[req.ID] = &cp
	s.notifyRequest(req)
	return nil
}

func (s *Store) AcceptRequest(_ context.Context, requestID, accepterID string, countBothSides bool) (*dbmongo.Friendship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[requestID]
	if !ok || req.ToID != accepterID {
		return nil, fmt.Errorf("friend request %s: %w", requestID, dbmongo.ErrNotFound)
	}

	f := dbmongo.NewFriendship(req, s.now())
	if _, exists := s.friendships[f.ID]; exists {
		return nil, dbmongo.ErrAlreadyFriends
	}

	delete(s.requests, requestID)
	s.friendships[f.ID] = f
	if acc, ok := s.accounts[accepterID]; ok {
		acc.FriendCount++
	}
	if countBothSides {
		if acc, ok := s.accounts[req.FromID]; ok {
			acc.FriendCount++
		}
	}

	s.notifyRequest(req)
	s.notify(req.FromID, dbmongo.ChangeFriends)
	s.notify(req.ToID, dbmongo.ChangeFriends)

	cp := *f
	cp.Users = append([]string(nil), f.Users...)
	return &cp, nil
}

func (s *Store) DeleteRequest(_ context.Context, requestID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[requestID]
	if !ok {
		return fmt.Errorf("friend request %s: %w", requestID, dbmongo.ErrNotFound)
	}
	delete(s.requests, requestID)
	s.notifyRequest(req)
	return nil
}

// Watch registers a change listener for accountID until ctx ends.
func (s *Store) Watch(ctx context.Context, accountID string) (<-chan dbmongo.ChangeKind, error) {
	w := &watcher{
		accountID: accountID,
		ch:        make(chan dbmongo.ChangeKind, 64),
		ctx:       ctx,
	}

	s.mu.Lock()
	s.watchers[w] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, w)
		close(w.ch)
		s.mu.Unlock()
	}()
	return w.ch, nil
}

// Watchers reports how many listeners are registered.
func (s *Store) Watchers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.watchers)
}

func (s *Store) notifyRequest(req *dbmongo.FriendRequest) {
	s.notify(req.FromID, dbmongo.ChangeSent)
	s.notify(req.ToID, dbmongo.ChangeReceived)
}

// notify must be called with mu held for writing. A listener whose buffer
// is full misses the event; the next one it receives still carries a fresh
// snapshot.
func (s *Store) notify(accountID string, kind dbmongo.ChangeKind) {
	for w := range s.watchers {
		if w.accountID != accountID || w.ctx.Err() != nil {
			continue
		}
		select {
		case w.ch <- kind:
		default:
		}
	}
}
