package dbmongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Daily wellness tasks. A nil state means the task has not been answered
// for the day yet.
const (
	TaskWater    = "water"
	TaskMeals    = "meals"
	TaskExercise = "exercise"
	TaskSleep    = "sleep"
)

var DailyTaskNames = []string{TaskWater, TaskMeals, TaskExercise, TaskSleep}

type TaskStates struct {
	Water    *bool `bson:"water" json:"water"`
	Meals    *bool `bson:"meals" json:"meals"`
	Exercise *bool `bson:"exercise" json:"exercise"`
	Sleep    *bool `bson:"sleep" json:"sleep"`
}

// Completed counts the tasks marked done.
func (t TaskStates) Completed() int {
	n := 0
	for _, v := range []*bool{t.Water, t.Meals, t.Exercise, t.Sleep} {
		if v != nil && *v {
			n++
		}
	}
	return n
}

// DailyTasks is one account's task log for one UTC day (YYYY-MM-DD).
type DailyTasks struct {
	ID             string     `bson:"_id" json:"id"`
	AccountID      string     `bson:"accountId" json:"account_id"`
	Date           string     `bson:"date" json:"date"`
	Tasks          TaskStates `bson:"tasks" json:"tasks"`
	CompletedCount int        `bson:"completedCount" json:"completed_count"`
	LastUpdated    time.Time  `bson:"lastUpdated" json:"last_updated"`
}

func DailyTasksID(accountID, date string) string {
	return accountID + "_" + date
}

type TaskStore struct {
	coll *mongo.Collection
}

func NewTaskStore(mc *MongoClient) *TaskStore {
	return &TaskStore{coll: mc.Database.Collection(DailyTasksCollection)}
}

// SetTask records one task state for the day and recomputes completedCount
// in the same update, so concurrent updates of different tasks never leave
// a stale count.
func (s *TaskStore) SetTask(ctx context.Context, accountID, date, task string, value *bool, at time.Time) (*DailyTasks, error) {
	var state interface{}
	if value != nil {
		state = *value
	}

	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"accountId":     accountID,
			"date":          date,
			"tasks." + task: state,
			"lastUpdated":   at,
		}}},
		{{Key: "$set", Value: bson.M{
			"completedCount": bson.M{"$size": bson.M{"$filter": bson.M{
				"input": bson.M{"$objectToArray": "$tasks"},
				"cond":  bson.M{"$eq": bson.A{"$$this.v", true}},
			}}},
		}}},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var day DailyTasks
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": DailyTasksID(accountID, date)}, update, opts).Decode(&day)
	if err != nil {
		return nil, fmt.Errorf("failed to update daily tasks: %w", err)
	}
	return &day, nil
}

func (s *TaskStore) Day(ctx context.Context, accountID, date string) (*DailyTasks, error) {
	var day DailyTasks
	err := s.coll.FindOne(ctx, bson.M{"_id": DailyTasksID(accountID, date)}).Decode(&day)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("daily tasks %s %s: %w", accountID, date, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily tasks: %w", err)
	}
	return &day, nil
}

// History returns the most recent logged days, newest first.
func (s *TaskStore) History(ctx context.Context, accountID string, limit int) ([]*DailyTasks, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := s.coll.Find(ctx, bson.M{"accountId": accountID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily tasks: %w", err)
	}
	days := []*DailyTasks{}
	if err := cur.All(ctx, &days); err != nil {
		return nil, fmt.Errorf("failed to decode daily tasks: %w", err)
	}
	return days, nil
}
