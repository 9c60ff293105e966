package relationship

//go:generate mockgen -source=store.go -destination=mock_store.go -package=relationship

import (
	"context"
	"time"

	"planetpal/internal/dbmongo"
)

// Store is the document store the manager runs on. CreateRequest and
// AcceptRequest must be atomic; dbmongo.RelationshipStore uses transactions
// and memstore a mutex.
type Store interface {
	SearchAccounts(ctx context.Context, prefix, excludeID string, limit int) ([]*dbmongo.Account, error)
	AccountsByID(ctx context.Context, ids []string) (map[string]*dbmongo.Account, error)
	SentRequests(ctx context.Context, accountID string) ([]*dbmongo.FriendRequest, error)
	ReceivedRequests(ctx context.Context, accountID string) ([]*dbmongo.FriendRequest, error)
	Friendships(ctx context.Context, accountID string) ([]*dbmongo.Friendship, error)
	RequestByID(ctx context.Context, requestID string) (*dbmongo.FriendRequest, error)
	CreateRequest(ctx context.Context, req *dbmongo.FriendRequest) error
	AcceptRequest(ctx context.Context, requestID, accepterID string, countBothSides bool) (*dbmongo.Friendship, error)
	DeleteRequest(ctx context.Context, requestID string) error
	Watch(ctx context.Context, accountID string) (<-chan dbmongo.ChangeKind, error)
}

type EventType string

const (
	EventRequestSent      EventType = "request_sent"
	EventRequestAccepted  EventType = "request_accepted"
	EventRequestRejected  EventType = "request_rejected"
	EventRequestCancelled EventType = "request_cancelled"
)

// Event describes a completed relationship mutation.
type Event struct {
	Type    EventType
	Request *dbmongo.FriendRequest
	ActorID string
	At      time.Time
}

// EventPublisher is told about every successful mutation. Publish must
// not block the caller for long.
type EventPublisher interface {
	Publish(ctx context.Context, ev Event)
}
