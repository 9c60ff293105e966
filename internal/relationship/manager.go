// Package relationship owns the friend request and friendship lifecycle.
package relationship

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"planetpal/internal/config"
	"planetpal/internal/dbmongo"
)

type PlanetView struct {
	AccountID    string  `json:"account_id"`
	DisplayName  string  `json:"display_name"`
	PlanetName   string  `json:"planet_name"`
	PlanetHealth float64 `json:"planet_health"`
}

type Manager struct {
	store  Store
	events EventPublisher
	cfg    config.RelationshipConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewManager builds a manager over store. events may be nil.
func NewManager(store Store, events EventPublisher, cfg *config.Config) *Manager {
	return &Manager{
		store:  store,
		events: events,
		cfg:    cfg.Relationship,
		logger: slog.Default().With("component", "relationship"),
		now:    time.Now,
	}
}

// Search finds accounts whose name starts with query, case-insensitively.
// The caller is never part of the result.
func (m *Manager) Search(ctx context.Context, selfID, query string) (accounts []*dbmongo.Account, err error) {
	ctx, done := m.track(ctx, "Search", selfID)
	defer func() { done(err) }()

	prefix := dbmongo.SearchKey(query)
	if prefix == "" {
		return nil, validationErr("search query must not be empty")
	}

	found, err := m.store.SearchAccounts(ctx, prefix, selfID, m.cfg.SearchLimit)
	if err != nil {
		return nil, storeErr("search accounts", err)
	}

	accounts = make([]*dbmongo.Account, 0, len(found))
	for _, acc := range found {
		if acc.ID != selfID {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

// Snapshot loads the three relationship views of selfID concurrently.
func (m *Manager) Snapshot(ctx context.Context, selfID string) (snap *Snapshot, err error) {
	ctx, done := m.track(ctx, "Snapshot", selfID)
	defer func() { done(err) }()

	return m.loadSnapshot(ctx, selfID)
}

func (m *Manager) loadSnapshot(ctx context.Context, selfID string) (*Snapshot, error) {
	if selfID == "" {
		return nil, validationErr("account id is required")
	}

	var (
		sent, received []*dbmongo.FriendRequest
		friends        []FriendSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if sent, err = m.store.SentRequests(gctx, selfID); err != nil {
			return storeErr("sent requests", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if received, err = m.store.ReceivedRequests(gctx, selfID); err != nil {
			return storeErr("received requests", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		friends, err = m.friendSummaries(gctx, selfID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewSnapshot(selfID, friends, sent, received), nil
}

func (m *Manager) friendSummaries(ctx context.Context, selfID string) ([]FriendSummary, error) {
	friendships, err := m.store.Friendships(ctx, selfID)
	if err != nil {
		return nil, storeErr("friendships", err)
	}
	if len(friendships) == 0 {
		return []FriendSummary{}, nil
	}

	ids := make([]string, 0, len(friendships))
	for _, f := range friendships {
		ids = append(ids, f.Other(selfID))
	}
	accounts, err := m.store.AccountsByID(ctx, ids)
	if err != nil {
		return nil, storeErr("friend accounts", err)
	}

	summaries := make([]FriendSummary, 0, len(friendships))
	for _, f := range friendships {
		other := f.Other(selfID)
		summary := FriendSummary{AccountID: other, Since: f.AcceptedAt}
		if acc, ok := accounts[other]; ok {
			summary.DisplayName = acc.DisplayName
			summary.PlanetName = acc.PlanetName
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (m *Manager) Status(ctx context.Context, selfID, otherID string) (st Status, err error) {
	ctx, done := m.track(ctx, "Status", selfID)
	defer func() { done(err) }()

	if otherID == "" {
		return "", validationErr("other account id is required")
	}
	snap, err := m.loadSnapshot(ctx, selfID)
	if err != nil {
		return "", err
	}
	return snap.Status(otherID), nil
}

// SendRequest creates the pending request selfID -> otherID.
func (m *Manager) SendRequest(ctx context.Context, selfID, otherID string) (req *dbmongo.FriendRequest, err error) {
	ctx, done := m.track(ctx, "SendRequest", selfID)
	defer func() { done(err) }()

	if otherID == "" {
		return nil, validationErr("target account id is required")
	}
	if otherID == selfID {
		return nil, validationErr("cannot send a friend request to yourself")
	}

	snap, err := m.loadSnapshot(ctx, selfID)
	if err != nil {
		return nil, err
	}
	switch snap.Status(otherID) {
	case StatusFriends:
		return nil, ErrAlreadyFriends
	case StatusPendingOutgoing:
		return nil, ErrRequestAlreadyPending
	case StatusPendingIncoming:
		return nil, ErrIncomingRequestExists
	}

	accounts, err := m.store.AccountsByID(ctx, []string{selfID, otherID})
	if err != nil {
		return nil, storeErr("load accounts", err)
	}
	target, ok := accounts[otherID]
	if !ok {
		return nil, ErrAccountNotFound
	}

	req = &dbmongo.FriendRequest{
		ID:        dbmongo.RequestID(selfID, otherID),
		FromID:    selfID,
		ToID:      otherID,
		ToName:    target.DisplayName,
		Status:    dbmongo.RequestStatusPending,
		CreatedAt: m.now(),
	}
	if self, ok := accounts[selfID]; ok {
		req.FromName = self.DisplayName
	}

	if err := m.store.CreateRequest(ctx, req); err != nil {
		switch {
		case errors.Is(err, dbmongo.ErrDuplicate):
			return nil, ErrRequestAlreadyPending
		case errors.Is(err, dbmongo.ErrReverseRequest):
			return nil, ErrIncomingRequestExists
		case errors.Is(err, dbmongo.ErrAlreadyFriends):
			return nil, ErrAlreadyFriends
		}
		return nil, storeErr("create request", err)
	}

	m.logger.Info("friend request sent", "from", selfID, "to", otherID)
	m.publish(ctx, EventRequestSent, req, selfID)
	return req, nil
}

// AcceptRequest turns a request addressed to selfID into a friendship.
func (m *Manager) AcceptRequest(ctx context.Context, selfID, requestID string) (f *dbmongo.Friendship, err error) {
	ctx, done := m.track(ctx, "AcceptRequest", selfID)
	defer func() { done(err) }()

	req, err := m.requestFor(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.ToID != selfID {
		return nil, m.roleError(req, selfID, ErrNotRecipient)
	}

	f, err = m.store.AcceptRequest(ctx, requestID, selfID, m.cfg.CountBothSides)
	if err != nil {
		switch {
		case errors.Is(err, dbmongo.ErrNotFound):
			return nil, ErrRequestNotFound
		case errors.Is(err, dbmongo.ErrAlreadyFriends):
			return nil, ErrAlreadyFriends
		}
		return nil, storeErr("accept request", err)
	}

	m.logger.Info("friend request accepted", "from", req.FromID, "to", selfID)
	m.publish(ctx, EventRequestAccepted, req, selfID)
	return f, nil
}

// RejectRequest drops a request addressed to selfID.
func (m *Manager) RejectRequest(ctx context.Context, selfID, requestID string) (err error) {
	ctx, done := m.track(ctx, "RejectRequest", selfID)
	defer func() { done(err) }()

	req, err := m.requestFor(ctx, requestID)
	if err != nil {
		return err
	}
	if req.ToID != selfID {
		return m.roleError(req, selfID, ErrNotRecipient)
	}
	if err := m.deleteRequest(ctx, requestID); err != nil {
		return err
	}

	m.logger.Info("friend request rejected", "from", req.FromID, "to", selfID)
	m.publish(ctx, EventRequestRejected, req, selfID)
	return nil
}

// CancelRequest withdraws a request selfID sent.
func (m *Manager) CancelRequest(ctx context.Context, selfID, requestID string) (err error) {
	ctx, done := m.track(ctx, "CancelRequest", selfID)
	defer func() { done(err) }()

	req, err := m.requestFor(ctx, requestID)
	if err != nil {
		return err
	}
	if req.FromID != selfID {
		return m.roleError(req, selfID, ErrNotSender)
	}
	if err := m.deleteRequest(ctx, requestID); err != nil {
		return err
	}

	m.logger.Info("friend request cancelled", "from", selfID, "to", req.ToID)
	m.publish(ctx, EventRequestCancelled, req, selfID)
	return nil
}

// ListFriends returns selfID's friends, oldest friendship first, capped at
// the configured limit.
func (m *Manager) ListFriends(ctx context.Context, selfID string) (friends []FriendSummary, err error) {
	ctx, done := m.track(ctx, "ListFriends", selfID)
	defer func() { done(err) }()

	if selfID == "" {
		return nil, validationErr("account id is required")
	}
	friends, err = m.friendSummaries(ctx, selfID)
	if err != nil {
		return nil, err
	}
	if limit := m.cfg.FriendListLimit; limit > 0 && len(friends) > limit {
		friends = friends[:limit]
	}
	return friends, nil
}

// FriendPlanet is the read-only wellness state of one of selfID's friends.
func (m *Manager) FriendPlanet(ctx context.Context, selfID, friendID string) (view *PlanetView, err error) {
	ctx, done := m.track(ctx, "FriendPlanet", selfID)
	defer func() { done(err) }()

	if friendID == "" {
		return nil, validationErr("friend account id is required")
	}

	friendships, err := m.store.Friendships(ctx, selfID)
	if err != nil {
		return nil, storeErr("friendships", err)
	}
	pair := dbmongo.PairID(selfID, friendID)
	found := false
	for _, f := range friendships {
		if f.ID == pair {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrNotFriends
	}

	accounts, err := m.store.AccountsByID(ctx, []string{friendID})
	if err != nil {
		return nil, storeErr("friend account", err)
	}
	acc, ok := accounts[friendID]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return &PlanetView{
		AccountID:    acc.ID,
		DisplayName:  acc.DisplayName,
		PlanetName:   acc.PlanetName,
		PlanetHealth: acc.PlanetHealth,
	}, nil
}

func (m *Manager) requestFor(ctx context.Context, requestID string) (*dbmongo.FriendRequest, error) {
	if requestID == "" {
		return nil, validationErr("request id is required")
	}
	req, err := m.store.RequestByID(ctx, requestID)
	if errors.Is(err, dbmongo.ErrNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, storeErr("load request", err)
	}
	return req, nil
}

// roleError hides requests the caller takes no part in.
func (m *Manager) roleError(req *dbmongo.FriendRequest, selfID string, roleErr error) error {
	if req.FromID != selfID && req.ToID != selfID {
		return ErrRequestNotFound
	}
	return roleErr
}

func (m *Manager) deleteRequest(ctx context.Context, requestID string) error {
	err := m.store.DeleteRequest(ctx, requestID)
	if errors.Is(err, dbmongo.ErrNotFound) {
		return ErrRequestNotFound
	}
	if err != nil {
		return storeErr("delete request", err)
	}
	return nil
}

func (m *Manager) publish(ctx context.Context, typ EventType, req *dbmongo.FriendRequest, actorID string) {
	if m.events == nil {
		return
	}
	m.events.Publish(context.WithoutCancel(ctx), Event{
		Type:    typ,
		Request: req,
		ActorID: actorID,
		At:      m.now(),
	})
}
