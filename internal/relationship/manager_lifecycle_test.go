package relationship

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planetpal/internal/config"
	"planetpal/internal/dbmongo"
	"planetpal/internal/relationship/memstore"
)

func newTestManager(t *testing.T, rc config.RelationshipConfig) (*Manager, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	for _, acc := range []*dbmongo.Account{
		{ID: "u1", DisplayName: "Alice", PlanetName: "Gaia", PlanetHealth: 80},
		{ID: "u2", DisplayName: "Bea", PlanetName: "Verdant", PlanetHealth: 64},
		{ID: "u3", DisplayName: "Alina", PlanetName: "Ocean", PlanetHealth: 90},
		{ID: "u4", DisplayName: "Carl", PlanetName: "Dust", PlanetHealth: 12},
	} {
		store.PutAccount(acc)
	}
	return NewManager(store, nil, &config.Config{Relationship: rc}), store
}

func friendIDs(friends []FriendSummary) []string {
	ids := make([]string, 0, len(friends))
	for _, f := range friends {
		ids = append(ids, f.AccountID)
	}
	return ids
}

func TestManager_SendAndAccept_IsSymmetric(t *testing.T) {
	m, store := newTestManager(t, config.RelationshipConfig{})
	ctx := context.Background()

	req, err := m.SendRequest(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.Equal(t, "u1_u2", req.ID)
	assert.Equal(t, "Alice", req.FromName)
	assert.Equal(t, "Bea", req.ToName)

	bSnap, err := m.Snapshot(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, bSnap.Received, 1)
	assert.Equal(t, "u1", bSnap.Received[0].FromID)

	_, err = m.AcceptRequest(ctx, "u2", bSnap.Received[0].ID)
	require.NoError(t, err)

	aFriends, err := m.ListFriends(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, aFriends, 1)
	assert.Equal(t, "u2", aFriends[0].AccountID)
	assert.Equal(t, "Bea", aFriends[0].DisplayName)

	bFriends, err := m.ListFriends(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, friendIDs(bFriends))

	for _, id := range []string{"u1", "u2"} {
		snap, err := m.Snapshot(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, snap.Sent)
		assert.Empty(t, snap.Received)
	}

	accepter, _ := store.Account("u2")
	requester, _ := store.Account("u1")
	assert.Equal(t, int64(1), accepter.FriendCount)
	assert.Equal(t, int64(0), requester.FriendCount, "only the accepting side is counted by default")
}

func TestManager_CountBothSides(t *testing.T) {
	m, store := newTestManager(t, config.RelationshipConfig{CountBothSides: true})
	ctx := context.Background()

	_, err := m.SendRequest(ctx, "u1", "u2")
	require.NoError(t, err)
	_, err = m.AcceptRequest(ctx, "u2", "u1_u2")
	require.NoError(t, err)

	for _, id := range []string{"u1", "u2"} {
		acc, _ := store.Account(id)
		assert.Equal(t, int64(1), acc.FriendCount, id)
	}
}

func TestManager_StatusIsComplementary(t *testing.T) {
	m, _ := newTestManager(t, config.RelationshipConfig{})
	ctx := context.Background()

	status := func(self, other string) Status {
		st, err := m.Status(ctx, self, other)
		require.NoError(t, err)
		return st
	}

	assert.Equal(t, StatusNone, status("u1", "u2"))
	assert.Equal(t, StatusNone, status("u2", "u1"))

	_, err := m.SendRequest(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.Equal(t, StatusPendingOutgoing, status("u1", "u2"))
	assert.Equal(t, StatusPendingIncoming, status("u2", "u1"))

	_, err = m.AcceptRequest(ctx, "u2", "u1_u2")
	require.NoError(t, err)
	assert.Equal(t, StatusFriends, status("u1", "u2"))
	assert.Equal(t, StatusFriends, status("u2", "u1"))
}

func TestManager_SendRequest_Preconditions(t *testing.T) {
	m, _ := newTestManager(t, config.RelationshipConfig{})
	ctx := context.Background()

	_, err := m.SendRequest(ctx, "u1", "u2")
	require.NoError(t, err)

	_, err = m.SendRequest(ctx, "u1", "u2")
	assert.True(t, errors.Is(err, ErrRequestAlreadyPending))
	sent, err := m.Snapshot(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, sent.Sent, 1, "second send leaves exactly one request")

	_, err = m.SendRequest(ctx, "u2", "u1")
	assert.True(t, errors.Is(err, ErrIncomingRequestExists))

	_, err = m.AcceptRequest(ctx, "u2", "u1_u2")
	require.NoError(t, err)
	_, err = m.SendRequest(ctx, "u2", "u1")
	assert.True(t, errors.Is(err, ErrAlreadyFriends))

	_, err = m.SendRequest(ctx, "u1", "u1")
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = m.SendRequest(ctx, "u1", "")
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = m.SendRequest(ctx, "u1", "ghost")
	assert.True(t, errors.Is(err, ErrAccountNotFound))
}

func TestManager_RejectThenResend(t *testing.T) {
	m, _ := newTestManager(t, config.RelationshipConfig{})
	ctx := context.Background()

	_, err := m.SendRequest(ctx, "u1", "u2")
	require.NoError(t, err)

	assert.True(t, errors.Is(m.RejectRequest(ctx, "u1", "u1_u2"), ErrNotRecipient), "sender cannot reject")
	assert.True(t, errors.Is(m.RejectRequest(ctx, "u4", "u1_u2"), ErrRequestNotFound), "outsiders do not see the request")

	require.NoError(t, m.RejectRequest(ctx, "u2", "u1_u2"))

	st, err := m.Status(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.Equal(t, StatusNone, st)

	_, err = m.SendRequest(ctx, "u1", "u2")
	assert.NoError(t, err)
}

func TestManager_CancelBeforeResponse(t *testing.T) {
	m, _ := newTestManager(t, config.RelationshipConfig{})
	ctx := context.Background()

	_, err := m.SendRequest(ctx, "u1", "u2")
	require.NoError(t, err)

	assert.True(t, errors.Is(m.CancelRequest(ctx, "u2", "u1_u2"), ErrNotSender))
	require.NoError(t, m.CancelRequest(ctx, "u1", "u1_u2"))

	bSnap, err := m.Snapshot(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, bSnap.Received)

	aSnap, err := m.Snapshot(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, aSnap.Sent)
	assert.Equal(t, StatusNone, aSnap.Status("u2"))

	assert.True(t, errors.Is(m.CancelRequest(ctx, "u1", "u1_u2"), ErrRequestNotFound))
	_, err = m.AcceptRequest(ctx, "u2", "u1_u2")
	assert.True(t, errors.Is(err, ErrRequestNotFound))
}

func TestManager_Search(t *testing.T) {
	m, _ := newTestManager(t, config.RelationshipConfig{SearchLimit: 10})
	ctx := context.Background()

	found, err := m.Search(ctx, "u1", "  ALI ")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "u3", found[0].ID, "the caller never finds itself")

	found, err = m.Search(ctx, "u4", "ali")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = m.Search(ctx, "u1", "zz")
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = m.Search(ctx, "u1", "   ")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestManager_ListFriendsLimit(t *testing.T) {
	m, _ := newTestManager(t, config.RelationshipConfig{FriendListLimit: 2})
	ctx := context.Background()

	for _, other := range []string{"u2", "u3", "u4"} {
		_, err := m.SendRequest(ctx, other, "u1")
		require.NoError(t, err)
		_, err = m.AcceptRequest(ctx, "u1", dbmongo.RequestID(other, "u1"))
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}

	friends, err := m.ListFriends(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u2", "u3"}, friendIDs(friends))

	snap, err := m.Snapshot(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, snap.Friends, 3, "snapshots are never capped")
}

func TestManager_FriendPlanet(t *testing.T) {
	m, _ := newTestManager(t, config.RelationshipConfig{})
	ctx := context.Background()

	_, err := m.FriendPlanet(ctx, "u1", "u2")
	assert.True(t, errors.Is(err, ErrNotFriends))

	_, err = m.SendRequest(ctx, "u1", "u2")
	require.NoError(t, err)
	_, err = m.AcceptRequest(ctx, "u2", "u1_u2")
	require.NoError(t, err)

	view, err := m.FriendPlanet(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.Equal(t, "Verdant", view.PlanetName)
	assert.Equal(t, 64.0, view.PlanetHealth)

	view, err = m.FriendPlanet(ctx, "u2", "u1")
	require.NoError(t, err)
	assert.Equal(t, 80.0, view.PlanetHealth)
}
