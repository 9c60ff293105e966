package dbmongo

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound       = errors.New("document not found")
	ErrDuplicate      = errors.New("document already exists")
	ErrReverseRequest = errors.New("a request in the opposite direction exists")
	ErrAlreadyFriends = errors.New("accounts are already friends")
)

const (
	RequestStatusPending     = "pending"
	FriendshipStatusAccepted = "accepted"
)

// DefaultPlanetHealth is the wellness value of a freshly created planet.
const DefaultPlanetHealth = 100

type Account struct {
	ID           string    `bson:"_id" json:"id"`
	DisplayName  string    `bson:"displayName" json:"display_name"`
	SearchName   string    `bson:"searchName" json:"-"`
	PlanetName   string    `bson:"planetName" json:"planet_name"`
	Email        string    `bson:"email,omitempty" json:"email,omitempty"`
	FriendCount  int64     `bson:"friendCount" json:"friend_count"`
	PlanetHealth float64   `bson:"planetHealth" json:"planet_health"`
	CreatedAt    time.Time `bson:"createdAt" json:"created_at"`
}

// SearchKey is the normalized form names are searched by.
func SearchKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FriendRequest is a pending, directed proposal. One document serves as
// both the sender's "sent" entry and the recipient's "received" entry.
type FriendRequest struct {
	ID        string    `bson:"_id" json:"id"`
	FromID    string    `bson:"fromId" json:"from_id"`
	ToID      string    `bson:"toId" json:"to_id"`
	FromName  string    `bson:"fromName" json:"from_name"`
	ToName    string    `bson:"toName" json:"to_name"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}

// Friendship is keyed by the sorted account pair, so a friendship is
// symmetric by construction.
type Friendship struct {
	ID          string    `bson:"_id" json:"id"`
	Users       []string  `bson:"users" json:"users"`
	RequestedBy string    `bson:"requestedBy" json:"requested_by"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"createdAt" json:"created_at"`
	AcceptedAt  time.Time `bson:"acceptedAt" json:"accepted_at"`
}

// Other returns the participant that is not accountID.
func (f *Friendship) Other(accountID string) string {
	for _, u := range f.Users {
		if u != accountID {
			return u
		}
	}
	return ""
}

// RequestID is the deterministic key of the request fromID -> toID.
func RequestID(fromID, toID string) string {
	return fromID + "_" + toID
}

// PairID is the order-independent key of the friendship between a and b.
func PairID(a, b string) string {
	lo, hi := SortedPair(a, b)
	return lo + "_" + hi
}

func SortedPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

func NewFriendship(req *FriendRequest, acceptedAt time.Time) *Friendship {
	lo, hi := SortedPair(req.FromID, req.ToID)
	return &Friendship{
		ID:          PairID(lo, hi),
		Users:       []string{lo, hi},
		RequestedBy: req.FromID,
		Status:      FriendshipStatusAccepted,
		CreatedAt:   req.CreatedAt,
		AcceptedAt:  acceptedAt,
	}
}

// ChangeKind names which of an account's relationship views changed.
type ChangeKind string

const (
	ChangeReceived ChangeKind = "received"
	ChangeSent     ChangeKind = "sent"
	ChangeFriends  ChangeKind = "friends"
)
