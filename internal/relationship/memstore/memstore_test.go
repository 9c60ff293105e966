package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planetpal/internal/dbmongo"
)

func TestStore_CreateRequestRules(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.CreateRequest(ctx, &dbmongo.FriendRequest{FromID: "a", ToID: "b"}))
	assert.True(t, errors.Is(s.CreateRequest(ctx, &dbmongo.FriendRequest{FromID: "a", ToID: "b"}), dbmongo.ErrDuplicate))
	assert.True(t, errors.Is(s.CreateRequest(ctx, &dbmongo.FriendRequest{FromID: "b", ToID: "a"}), dbmongo.ErrReverseRequest))

	_, err := s.AcceptRequest(ctx, "a_b", "a", false)
	assert.True(t, errors.Is(err, dbmongo.ErrNotFound), "the sender cannot accept")

	f, err := s.AcceptRequest(ctx, "a_b", "b", false)
	require.NoError(t, err)
	assert.Equal(t, "a_b", f.ID)

	assert.True(t, errors.Is(s.CreateRequest(ctx, &dbmongo.FriendRequest{FromID: "b", ToID: "a"}), dbmongo.ErrAlreadyFriends))
}

func TestStore_ConcurrentSendsLeaveOneRequest(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			errs <- s.CreateRequest(ctx, &dbmongo.FriendRequest{FromID: "a", ToID: "b"})
		}()
		go func() {
			defer wg.Done()
			errs <- s.CreateRequest(ctx, &dbmongo.FriendRequest{FromID: "b", ToID: "a"})
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)

	sentA, _ := s.SentRequests(ctx, "a")
	sentB, _ := s.SentRequests(ctx, "b")
	assert.Equal(t, 1, len(sentA)+len(sentB))
}

func TestStore_SearchAccounts(t *testing.T) {
	s := New()
	s.PutAccount(&dbmongo.Account{ID: "1", DisplayName: "Alice"})
	s.PutAccount(&dbmongo.Account{ID: "2", DisplayName: "alina"})
	s.PutAccount(&dbmongo.Account{ID: "3", DisplayName: "Bob"})

	found, err := s.SearchAccounts(context.Background(), "ali", "", 0)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "1", found[0].ID)

	found, err = s.SearchAccounts(context.Background(), "ali", "1", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "2", found[0].ID)

	found, err = s.SearchAccounts(context.Background(), "", "", 1)
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestStore_SearchAccountsBeyondBMP(t *testing.T) {
	s := New()
	s.PutAccount(&dbmongo.Account{ID: "1", DisplayName: "Ana🚀"})
	s.PutAccount(&dbmongo.Account{ID: "2", DisplayName: "Ana"})
	s.PutAccount(&dbmongo.Account{ID: "3", DisplayName: "Anb"})

	found, err := s.SearchAccounts(context.Background(), "ana", "", 0)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "2", found[0].ID)
	assert.Equal(t, "1", found[1].ID)
}

func TestStore_Watch(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())

	aChanges, err := s.Watch(ctx, "a")
	require.NoError(t, err)
	bChanges, err := s.Watch(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Watchers())

	require.NoError(t, s.CreateRequest(context.Background(), &dbmongo.FriendRequest{FromID: "a", ToID: "b"}))
	assert.Equal(t, dbmongo.ChangeSent, <-aChanges)
	assert.Equal(t, dbmongo.ChangeReceived, <-bChanges)

	require.NoError(t, s.DeleteRequest(context.Background(), "a_b"))
	assert.Equal(t, dbmongo.ChangeSent, <-aChanges)
	assert.Equal(t, dbmongo.ChangeReceived, <-bChanges)

	cancel()
	assert.Eventually(t, func() bool { return s.Watchers() == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-aChanges
	assert.False(t, open)
}
