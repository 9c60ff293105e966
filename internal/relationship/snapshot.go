package relationship

import (
	"time"

	"planetpal/internal/dbmongo"
)

// Status is the state of the edge between the snapshot owner and another account.
type Status string

const (
	StatusNone            Status = "none"
	StatusPendingOutgoing Status = "pending_outgoing"
	StatusPendingIncoming Status = "pending_incoming"
	StatusFriends         Status = "friends"
)

type FriendSummary struct {
	AccountID   string    `json:"account_id"`
	DisplayName string    `json:"display_name"`
	PlanetName  string    `json:"planet_name"`
	Since       time.Time `json:"since"`
}

// Snapshot is everything one account's relationship views show at a
// point in time.
type Snapshot struct {
	AccountID string
	Friends   []FriendSummary
	Sent      []*dbmongo.FriendRequest
	Received  []*dbmongo.FriendRequest

	friendIDs    map[string]struct{}
	sentTo       map[string]struct{}
	receivedFrom map[string]struct{}
}

func NewSnapshot(accountID string, friends []FriendSummary, sent, received []*dbmongo.FriendRequest) *Snapshot {
	s := &Snapshot{
		AccountID:    accountID,
		Friends:      friends,
		Sent:         sent,
		Received:     received,
		friendIDs:    make(map[string]struct{}, len(friends)),
		sentTo:       make(map[string]struct{}, len(sent)),
		receivedFrom: make(map[string]struct{}, len(received)),
	}
	for _, f := range friends {
		s.friendIDs[f.AccountID] = struct{}{}
	}
	for _, r := range sent {
		s.sentTo[r.ToID] = struct{}{}
	}
	for _, r := range received {
		s.receivedFrom[r.FromID] = struct{}{}
	}
	return s
}

// Status never touches the store.
func (s *Snapshot) Status(otherID string) Status {
	if _, ok := s.friendIDs[otherID]; ok {
		return StatusFriends
	}
	if _, ok := s.sentTo[otherID]; ok {
		return StatusPendingOutgoing
	}
	if _, ok := s.receivedFrom[otherID]; ok {
		return StatusPendingIncoming
	}
	return StatusNone
}

func (s *Snapshot) IsFriend(otherID string) bool {
	_, ok := s.friendIDs[otherID]
	return ok
}
