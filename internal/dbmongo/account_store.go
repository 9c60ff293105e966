package dbmongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AccountStore struct {
	coll *mongo.Collection
}

func NewAccountStore(mc *MongoClient) *AccountStore {
	return &AccountStore{coll: mc.Database.Collection(AccountsCollection)}
}

func (s *AccountStore) Create(ctx context.Context, acc *Account) error {
	acc.SearchName = SearchKey(acc.DisplayName)
	if _, err := s.coll.InsertOne(ctx, acc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("account %s: %w", acc.ID, ErrDuplicate)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (s *AccountStore) ByID(ctx context.Context, id string) (*Account, error) {
	var acc Account
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&acc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("account %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &acc, nil
}

// ByIDs returns the accounts that exist among ids, keyed by id.
func (s *AccountStore) ByIDs(ctx context.Context, ids []string) (map[string]*Account, error) {
	out := make(map[string]*Account, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}
	var accounts []*Account
	if err := cur.All(ctx, &accounts); err != nil {
		return nil, fmt.Errorf("failed to decode accounts: %w", err)
	}
	for _, acc := range accounts {
		out[acc.ID] = acc
	}
	return out, nil
}

// SearchPrefix finds accounts whose normalized name starts with prefix,
// ordered by name. excludeID is never returned. An anchored regex without
// flags is served by the searchName index as a bounded range.
func (s *AccountStore) SearchPrefix(ctx context.Context, prefix, excludeID string, limit int) ([]*Account, error) {
	filter := bson.M{
		"searchName": bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)},
		"_id":        bson.M{"$ne": excludeID},
	}
	opts := options.Find().SetSort(bson.D{{Key: "searchName", Value: 1}, {Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search accounts: %w", err)
	}
	accounts := []*Account{}
	if err := cur.All(ctx, &accounts); err != nil {
		return nil, fmt.Errorf("failed to decode accounts: %w", err)
	}
	return accounts, nil
}

func (s *AccountStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("account %s: %w", id, ErrNotFound)
	}
	return nil
}
