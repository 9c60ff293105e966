// Package tasks logs the daily wellness tasks behind an account's planet.
package tasks

//go:generate mockgen -source=service.go -destination=mock_store.go -package=tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"planetpal/internal/dbmongo"
)

const (
	StateDone   = "done"
	StateMissed = "missed"
	StateClear  = "clear"

	defaultHistoryDays = 7
	maxHistoryDays     = 31

	dateLayout = "2006-01-02"
)

var (
	ErrUnknownTask  = errors.New("unknown task")
	ErrInvalidState = errors.New("task state must be done, missed or clear")
)

var taskUpdates = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "planetpal_task_updates_total",
		Help: "Daily task updates by task and state",
	},
	[]string{"task", "state"},
)

// Store persists daily task logs. It is satisfied by *dbmongo.TaskStore.
type Store interface {
	SetTask(ctx context.Context, accountID, date, task string, value *bool, at time.Time) (*dbmongo.DailyTasks, error)
	Day(ctx context.Context, accountID, date string) (*dbmongo.DailyTasks, error)
	History(ctx context.Context, accountID string, limit int) ([]*dbmongo.DailyTasks, error)
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// today is the UTC calendar day tasks are filed under.
func (s *Service) today() string {
	return s.now().UTC().Format(dateLayout)
}

// Today returns the current day's log. A day nobody answered yet comes
// back empty rather than as an error.
func (s *Service) Today(ctx context.Context, accountID string) (*dbmongo.DailyTasks, error) {
	date := s.today()
	day, err := s.store.Day(ctx, accountID, date)
	if errors.Is(err, dbmongo.ErrNotFound) {
		return &dbmongo.DailyTasks{
			ID:        dbmongo.DailyTasksID(accountID, date),
			AccountID: accountID,
			Date:      date,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return day, nil
}

// SetTask answers one of today's tasks. state is done, missed or clear.
func (s *Service) SetTask(ctx context.Context, accountID, task, state string) (*dbmongo.DailyTasks, error) {
	if !slices.Contains(dbmongo.DailyTaskNames, task) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTask, task)
	}
	value, err := parseState(state)
	if err != nil {
		return nil, err
	}

	day, err := s.store.SetTask(ctx, accountID, s.today(), task, value, s.now())
	if err != nil {
		return nil, err
	}

	taskUpdates.WithLabelValues(task, state).Inc()
	slog.DebugContext(ctx, "daily task updated", "account", accountID, "task", task, "state", state, "completed", day.CompletedCount)
	return day, nil
}

// History returns up to days logged days, newest first.
func (s *Service) History(ctx context.Context, accountID string, days int) ([]*dbmongo.DailyTasks, error) {
	if days <= 0 {
		days = defaultHistoryDays
	}
	if days > maxHistoryDays {
		days = maxHistoryDays
	}
	return s.store.History(ctx, accountID, days)
}

func parseState(state string) (*bool, error) {
	switch state {
	case StateDone:
		v := true
		return &v, nil
	case StateMissed:
		v := false
		return &v, nil
	case StateClear:
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidState, state)
}
