package dbmongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIDs(t *testing.T) {
	assert.Equal(t, "u1_u2", RequestID("u1", "u2"))
	assert.Equal(t, "u2_u1", RequestID("u2", "u1"))

	assert.Equal(t, "u1_u2", PairID("u1", "u2"))
	assert.Equal(t, "u1_u2", PairID("u2", "u1"))
}

func TestNewFriendship(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	accepted := created.Add(time.Hour)
	req := &FriendRequest{ID: "zed_amy", FromID: "zed", ToID: "amy", CreatedAt: created}

	f := NewFriendship(req, accepted)

	assert.Equal(t, "amy_zed", f.ID)
	assert.Equal(t, []string{"amy", "zed"}, f.Users)
	assert.Equal(t, "zed", f.RequestedBy)
	assert.Equal(t, FriendshipStatusAccepted, f.Status)
	assert.Equal(t, created, f.CreatedAt)
	assert.Equal(t, accepted, f.AcceptedAt)

	assert.Equal(t, "zed", f.Other("amy"))
	assert.Equal(t, "amy", f.Other("zed"))
}

func TestSearchKey(t *testing.T) {
	assert.Equal(t, "bea", SearchKey("  Bea "))
	assert.Equal(t, "", SearchKey("   "))
}

func TestClassifyChange(t *testing.T) {
	tests := []struct {
		name   string
		coll   string
		docID  string
		want   ChangeKind
		wantOK bool
	}{
		{"sent request", FriendRequestsCollection, "u1_u2", ChangeSent, true},
		{"received request", FriendRequestsCollection, "u2_u1", ChangeReceived, true},
		{"friendship", FriendshipsCollection, "u1_u2", ChangeFriends, true},
		{"unrelated request", FriendRequestsCollection, "u11_u2", "", false},
		{"other collection", AccountsCollection, "u1", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := classifyChange("u1", tt.coll, tt.docID)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTaskStates_Completed(t *testing.T) {
	yes, no := true, false
	assert.Equal(t, 0, TaskStates{}.Completed())
	assert.Equal(t, 2, TaskStates{Water: &yes, Meals: &no, Sleep: &yes}.Completed())
	assert.Equal(t, "u1_2026-10-17", DailyTasksID("u1", "2026-10-17"))
}
