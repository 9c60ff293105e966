package dbmongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RelationshipStore keeps friend requests and friendships. Every mutation
// that touches more than one document runs in a single transaction, which
// requires MongoDB to run as a replica set.
type RelationshipStore struct {
	client      *mongo.Client
	db          *mongo.Database
	accounts    *AccountStore
	requests    *mongo.Collection
	friendships *mongo.Collection
	pairs       *mongo.Collection
	now         func() time.Time
}

func NewRelationshipStore(mc *MongoClient, accounts *AccountStore) *RelationshipStore {
	return &RelationshipStore{
		client:      mc.Client,
		db:          mc.Database,
		accounts:    accounts,
		requests:    mc.Database.Collection(FriendRequestsCollection),
		friendships: mc.Database.Collection(FriendshipsCollection),
		pairs:       mc.Database.Collection(RequestPairsCollection),
		now:         time.Now,
	}
}

func (s *RelationshipStore) SearchAccounts(ctx context.Context, prefix, excludeID string, limit int) ([]*Account, error) {
	return s.accounts.SearchPrefix(ctx, prefix, excludeID, limit)
}

func (s *RelationshipStore) AccountsByID(ctx context.Context, ids []string) (map[string]*Account, error) {
	return s.accounts.ByIDs(ctx, ids)
}

func (s *RelationshipStore) SentRequests(ctx context.Context, accountID string) ([]*FriendRequest, error) {
	return s.findRequests(ctx, bson.M{"fromId": accountID})
}

func (s *RelationshipStore) ReceivedRequests(ctx context.Context, accountID string) ([]*FriendRequest, error) {
	return s.findRequests(ctx, bson.M{"toId": accountID})
}

func (s *RelationshipStore) findRequests(ctx context.Context, filter bson.M) ([]*FriendRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := s.requests.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query friend requests: %w", err)
	}
	requests := []*FriendRequest{}
	if err := cur.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode friend requests: %w", err)
	}
	return requests, nil
}

func (s *RelationshipStore) Friendships(ctx context.Context, accountID string) ([]*Friendship, error) {
	opts := options.Find().SetSort(bson.D{{Key: "acceptedAt", Value: 1}})
	cur, err := s.friendships.Find(ctx, bson.M{"users": accountID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query friendships: %w", err)
	}
	friendships := []*Friendship{}
	if err := cur.All(ctx, &friendships); err != nil {
		return nil, fmt.Errorf("failed to decode friendships: %w", err)
	}
	return friendships, nil
}

func (s *RelationshipStore) RequestByID(ctx context.Context, requestID string) (*FriendRequest, error) {
	var req FriendRequest
	err := s.requests.FindOne(ctx, bson.M{"_id": requestID}).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("friend request %s: %w", requestID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get friend request: %w", err)
	}
	return &req, nil
}

// CreateRequest inserts req under its deterministic id. Inside one
// transaction it refuses pairs that are already friends or that have a
// request pending in the other direction.
//
// Requests in opposite directions are different documents, so the
// transaction first writes the pair marker shared by both directions.
// Two concurrent sends between the same accounts then conflict on that
// document and the retried loser sees the winner's request.
func (s *RelationshipStore) CreateRequest(ctx context.Context, req *FriendRequest) error {
	req.ID = RequestID(req.FromID, req.ToID)
	if req.Status == "" {
		req.Status = RequestStatusPending
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = s.now()
	}

	return s.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if err := s.claimPair(sc, req); err != nil {
			return err
		}

		if exists, err := s.exists(sc, s.friendships, PairID(req.FromID, req.ToID)); err != nil {
			return err
		} else if exists {
			return ErrAlreadyFriends
		}

		if exists, err := s.exists(sc, s.requests, RequestID(req.ToID, req.FromID)); err != nil {
			return err
		} else if exists {
			return ErrReverseRequest
		}

		if _, err := s.requests.InsertOne(sc, req); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrDuplicate
			}
			return fmt.Errorf("failed to insert friend request: %w", err)
		}
		return nil
	})
}

// AcceptRequest removes the request addressed to accepterID, materializes
// the friendship and bumps the friend counter, all or nothing.
func (s *RelationshipStore) AcceptRequest(ctx context.Context, requestID, accepterID string, countBothSides bool) (*Friendship, error) {
	var friendship *Friendship

	err := s.withTransaction(ctx, func(sc mongo.SessionContext) error {
		var req FriendRequest
		err := s.requests.FindOneAndDelete(sc, bson.M{"_id": requestID, "toId": accepterID}).Decode(&req)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("friend request %s: %w", requestID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to remove friend request: %w", err)
		}

		f := NewFriendship(&req, s.now())
		if _, err := s.friendships.InsertOne(sc, f); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrAlreadyFriends
			}
			return fmt.Errorf("failed to insert friendship: %w", err)
		}

		counted := []string{accepterID}
		if countBothSides {
			counted = append(counted, req.FromID)
		}
		accounts := s.db.Collection(AccountsCollection)
		if _, err := accounts.UpdateMany(sc,
			bson.M{"_id": bson.M{"$in": counted}},
			bson.M{"$inc": bson.M{"friendCount": 1}},
		); err != nil {
			return fmt.Errorf("failed to update friend count: %w", err)
		}

		friendship = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return friendship, nil
}

func (s *RelationshipStore) DeleteRequest(ctx context.Context, requestID string) error {
	res, err := s.requests.DeleteOne(ctx, bson.M{"_id": requestID})
	if err != nil {
		return fmt.Errorf("failed to delete friend request: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("friend request %s: %w", requestID, ErrNotFound)
	}
	return nil
}

func (s *RelationshipStore) claimPair(sc mongo.SessionContext, req *FriendRequest) error {
	_, err := s.pairs.UpdateOne(sc,
		bson.M{"_id": PairID(req.FromID, req.ToID)},
		bson.M{
			"$inc": bson.M{"requests": 1},
			"$set": bson.M{"lastRequestAt": req.CreatedAt, "lastFromId": req.FromID},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to claim request pair: %w", err)
	}
	return nil
}

func (s *RelationshipStore) exists(ctx context.Context, coll *mongo.Collection, id string) (bool, error) {
	err := coll.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up %s in %s: %w", id, coll.Name(), err)
	}
	return true, nil
}

func (s *RelationshipStore) withTransaction(ctx context.Context, fn func(mongo.SessionContext) error) error {
	sess, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

type changeEvent struct {
	NS struct {
		Coll string `bson:"coll"`
	} `bson:"ns"`
	DocumentKey struct {
		ID string `bson:"_id"`
	} `bson:"documentKey"`
}

// Watch streams which of accountID's views changed. The channel is closed
// when ctx ends or the change stream fails.
func (s *RelationshipStore) Watch(ctx context.Context, accountID string) (<-chan ChangeKind, error) {
	id := regexp.QuoteMeta(accountID)
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"ns.coll": bson.M{"$in": bson.A{FriendRequestsCollection, FriendshipsCollection}},
			"$or": bson.A{
				bson.M{"documentKey._id": bson.M{"$regex": "^" + id + "_"}},
				bson.M{"documentKey._id": bson.M{"$regex": "_" + id + "$"}},
			},
		}}},
	}

	stream, err := s.db.Watch(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to open change stream: %w", err)
	}

	out := make(chan ChangeKind, 16)
	go func() {
		defer close(out)
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			var ev changeEvent
			if err := stream.Decode(&ev); err != nil {
				slog.Warn("undecodable change event", "account", accountID, "error", err)
				continue
			}
			kind, ok := classifyChange(accountID, ev.NS.Coll, ev.DocumentKey.ID)
			if !ok {
				continue
			}
			select {
			case out <- kind:
			case <-ctx.Done():
				return
			}
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			slog.Error("change stream failed", "account", accountID, "error", err)
		}
	}()
	return out, nil
}

func classifyChange(accountID, coll, docID string) (ChangeKind, bool) {
	switch coll {
	case FriendshipsCollection:
		return ChangeFriends, true
	case FriendRequestsCollection:
		if strings.HasPrefix(docID, accountID+"_") {
			return ChangeSent, true
		}
		if strings.HasSuffix(docID, "_"+accountID) {
			return ChangeReceived, true
		}
	}
	return "", false
}
