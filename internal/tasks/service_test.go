package tasks

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planetpal/internal/dbmongo"
)

// 23:30 in UTC-5 is already the next day in UTC.
var fixedNow = time.Date(2026, 10, 17, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))

func newTestService(t *testing.T) (*Service, *MockStore) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	store := NewMockStore(ctrl)
	svc := NewService(store)
	svc.now = func() time.Time { return fixedNow }
	return svc, store
}

func TestService_Today(t *testing.T) {
	ctx := context.Background()

	t.Run("empty day", func(t *testing.T) {
		svc, store := newTestService(t)
		store.EXPECT().Day(ctx, "u1", "2026-10-18").
			Return(nil, fmt.Errorf("daily tasks: %w", dbmongo.ErrNotFound))

		day, err := svc.Today(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "2026-10-18", day.Date)
		assert.Equal(t, "u1_2026-10-18", day.ID)
		assert.Zero(t, day.CompletedCount)
		assert.Nil(t, day.Tasks.Water)
	})

	t.Run("logged day", func(t *testing.T) {
		svc, store := newTestService(t)
		yes := true
		stored := &dbmongo.DailyTasks{Date: "2026-10-18", Tasks: dbmongo.TaskStates{Water: &yes}, CompletedCount: 1}
		store.EXPECT().Day(ctx, "u1", "2026-10-18").Return(stored, nil)

		day, err := svc.Today(ctx, "u1")
		require.NoError(t, err)
		assert.Same(t, stored, day)
	})

	t.Run("store failure", func(t *testing.T) {
		svc, store := newTestService(t)
		store.EXPECT().Day(ctx, "u1", "2026-10-18").Return(nil, errors.New("mongo down"))

		_, err := svc.Today(ctx, "u1")
		require.EqualError(t, err, "mongo down")
	})
}

func TestService_SetTask(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		task      string
		state     string
		wantValue *bool
		wantErr   error
	}{
		{name: "done", task: dbmongo.TaskWater, state: StateDone, wantValue: boolPtr(true)},
		{name: "missed", task: dbmongo.TaskSleep, state: StateMissed, wantValue: boolPtr(false)},
		{name: "clear", task: dbmongo.TaskMeals, state: StateClear},
		{name: "unknown task", task: "meditate", state: StateDone, wantErr: ErrUnknownTask},
		{name: "invalid state", task: dbmongo.TaskExercise, state: "maybe", wantErr: ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestService(t)
			if tt.wantErr == nil {
				store.EXPECT().SetTask(ctx, "u1", "2026-10-18", tt.task, gomock.Any(), fixedNow).DoAndReturn(
					func(_ context.Context, _, date, _ string, value *bool, _ time.Time) (*dbmongo.DailyTasks, error) {
						assert.Equal(t, tt.wantValue, value)
						return &dbmongo.DailyTasks{Date: date}, nil
					})
			}

			day, err := svc.SetTask(ctx, "u1", tt.task, tt.state)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, day)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "2026-10-18", day.Date)
		})
	}
}

func TestService_History(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		days  int
		limit int
	}{
		{name: "default", days: 0, limit: defaultHistoryDays},
		{name: "negative", days: -3, limit: defaultHistoryDays},
		{name: "explicit", days: 3, limit: 3},
		{name: "capped", days: 400, limit: maxHistoryDays},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestService(t)
			store.EXPECT().History(ctx, "u1", tt.limit).Return([]*dbmongo.DailyTasks{}, nil)

			days, err := svc.History(ctx, "u1", tt.days)
			require.NoError(t, err)
			assert.Empty(t, days)
		})
	}
}

func boolPtr(v bool) *bool {
	return &v
}
